package vm

import (
	"fmt"
	"strings"
)

// Disassemble returns a human-readable listing of a chunk's bytecode.
func Disassemble(chunk *Chunk, name string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "== %s ==\n", name)

	offset := 0
	for offset < len(chunk.Code) {
		offset = disassembleInstruction(&sb, chunk, offset)
	}

	return sb.String()
}

func disassembleInstruction(sb *strings.Builder, chunk *Chunk, offset int) int {
	fmt.Fprintf(sb, "%04d ", offset)

	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		sb.WriteString("   | ")
	} else {
		fmt.Fprintf(sb, "%4d ", chunk.Lines[offset])
	}

	op := Opcode(chunk.Code[offset])

	switch op {
	case OP_CONSTANT, OP_GET_GLOBAL, OP_DEFINE_GLOBAL, OP_SET_GLOBAL:
		return constantInstruction(sb, OpcodeNames[op], chunk, offset)
	case OP_GET_LOCAL, OP_SET_LOCAL, OP_CALL:
		return byteInstruction(sb, OpcodeNames[op], chunk, offset)
	case OP_JUMP, OP_JUMP_IF_FALSE:
		return jumpInstruction(sb, OpcodeNames[op], 1, chunk, offset)
	case OP_LOOP:
		return jumpInstruction(sb, OpcodeNames[op], -1, chunk, offset)
	default:
		if name, ok := OpcodeNames[op]; ok {
			return simpleInstruction(sb, name, offset)
		}
		fmt.Fprintf(sb, "Unknown opcode %d\n", op)
		return offset + 1
	}
}

func simpleInstruction(sb *strings.Builder, name string, offset int) int {
	fmt.Fprintf(sb, "%s\n", name)
	return offset + 1
}

func constantInstruction(sb *strings.Builder, name string, chunk *Chunk, offset int) int {
	idx := int(chunk.Code[offset+1])

	if idx < len(chunk.Constants) {
		fmt.Fprintf(sb, "%-16s %4d '%s'\n", name, idx, chunk.Constants[idx].Inspect())
	} else {
		fmt.Fprintf(sb, "%-16s %4d (invalid)\n", name, idx)
	}

	return offset + 2
}

func byteInstruction(sb *strings.Builder, name string, chunk *Chunk, offset int) int {
	slot := chunk.Code[offset+1]
	fmt.Fprintf(sb, "%-16s %4d\n", name, slot)
	return offset + 2
}

func jumpInstruction(sb *strings.Builder, name string, sign int, chunk *Chunk, offset int) int {
	jump := int(chunk.Code[offset+1])<<8 | int(chunk.Code[offset+2])
	target := offset + 3 + sign*jump
	fmt.Fprintf(sb, "%-16s %4d -> %d\n", name, offset, target)
	return offset + 3
}
