package vm

import (
	"strings"
	"testing"
)

func TestDisassembleSimpleChunk(t *testing.T) {
	chunk := NewChunk()
	idx := chunk.AddConstant(NumberVal(1.2))
	chunk.WriteOp(OP_CONSTANT, 123)
	chunk.Write(byte(idx), 123)
	chunk.WriteOp(OP_RETURN, 123)

	got := Disassemble(chunk, "test")

	want := "== test ==\n" +
		"0000  123 CONSTANT            0 '1.2'\n" +
		"0002    | RETURN\n"
	if got != want {
		t.Errorf("wrong listing.\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDisassembleJump(t *testing.T) {
	chunk := NewChunk()
	chunk.WriteOp(OP_JUMP_IF_FALSE, 1)
	chunk.Write(0x00, 1)
	chunk.Write(0x04, 1)
	chunk.WriteOp(OP_NIL, 2)

	got := Disassemble(chunk, "jump")
	if !strings.Contains(got, "JUMP_IF_FALSE") {
		t.Fatalf("missing mnemonic:\n%s", got)
	}
	// target is operand base (offset+3) plus the distance
	if !strings.Contains(got, "-> 7") {
		t.Errorf("wrong jump target:\n%s", got)
	}
}

func TestDisassembleCompiledScript(t *testing.T) {
	fn := mustCompile(t, "var a = 1; print a;")
	got := Disassemble(fn.Chunk, "<script>")

	for _, want := range []string{"== <script> ==", "CONSTANT", "DEFINE_GLOBAL", "GET_GLOBAL", "PRINT", "RETURN", "'a'"} {
		if !strings.Contains(got, want) {
			t.Errorf("listing missing %q:\n%s", want, got)
		}
	}
}

func TestDisassembleAllOpcodesKnown(t *testing.T) {
	fn := mustCompile(t, `
		var g = 1;
		{ var l = g; l = l + 1; g = l; }
		if (g > 0 and g < 10 or false) print g; else print !g;
		while (g < 3) g = g + 1;
		for (var i = 0; i < 2; i = i + 1) print i == 1;
		fun f(x) { return -x / 2 * 3 - 1; }
		print f(g) != nil;
		print "s" + "t";
	`)

	got := Disassemble(fn.Chunk, "<script>")
	if strings.Contains(got, "Unknown opcode") {
		t.Errorf("listing contains unknown opcodes:\n%s", got)
	}
}
