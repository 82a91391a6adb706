// Package vm implements the bytecode compiler and virtual machine for Lox.
//
// The compiler is single-pass: a Pratt parser pulls tokens from the lexer and
// emits instructions directly into a chunk, with no AST in between. The VM
// executes chunks on a shared value stack with explicit call frames.
package vm

// Opcode represents a single VM instruction.
type Opcode byte

const (
	OP_CONSTANT Opcode = iota // Push constant from pool (operand: u8 index)
	OP_NIL                    // Push nil
	OP_TRUE                   // Push true
	OP_FALSE                  // Push false
	OP_POP                    // Discard top of stack

	OP_GET_LOCAL     // Push local by slot (operand: u8 slot)
	OP_SET_LOCAL     // Store top of stack into slot, leaves value
	OP_GET_GLOBAL    // Push global by name (operand: u8 name constant)
	OP_DEFINE_GLOBAL // Insert/overwrite global, pops value
	OP_SET_GLOBAL    // Update existing global, leaves value

	OP_EQUAL   // ==
	OP_GREATER // >
	OP_LESS    // <

	OP_ADD      // + (numbers, or concatenation when either side is a string)
	OP_SUBTRACT // -
	OP_MULTIPLY // *
	OP_DIVIDE   // /

	OP_NOT    // ! (truthiness-based)
	OP_NEGATE // unary -

	OP_PRINT // Pop and display

	OP_JUMP          // Unconditional forward jump (operand: u16 offset)
	OP_JUMP_IF_FALSE // Forward jump when top of stack is falsey, does not pop
	OP_LOOP          // Backward jump (operand: u16 offset)

	OP_CALL   // Call value at stack[top-argc] (operand: u8 argc)
	OP_RETURN // Return from the current frame
)

// OpcodeNames maps opcodes to their string names (for the disassembler).
var OpcodeNames = map[Opcode]string{
	OP_CONSTANT: "CONSTANT",
	OP_NIL:      "NIL",
	OP_TRUE:     "TRUE",
	OP_FALSE:    "FALSE",
	OP_POP:      "POP",

	OP_GET_LOCAL:     "GET_LOCAL",
	OP_SET_LOCAL:     "SET_LOCAL",
	OP_GET_GLOBAL:    "GET_GLOBAL",
	OP_DEFINE_GLOBAL: "DEFINE_GLOBAL",
	OP_SET_GLOBAL:    "SET_GLOBAL",

	OP_EQUAL:   "EQUAL",
	OP_GREATER: "GREATER",
	OP_LESS:    "LESS",

	OP_ADD:      "ADD",
	OP_SUBTRACT: "SUBTRACT",
	OP_MULTIPLY: "MULTIPLY",
	OP_DIVIDE:   "DIVIDE",

	OP_NOT:    "NOT",
	OP_NEGATE: "NEGATE",

	OP_PRINT: "PRINT",

	OP_JUMP:          "JUMP",
	OP_JUMP_IF_FALSE: "JUMP_IF_FALSE",
	OP_LOOP:          "LOOP",

	OP_CALL:   "CALL",
	OP_RETURN: "RETURN",
}
