package vm

import (
	"fmt"
	"io"
	"math"

	"github.com/funvibe/golox/internal/lexer"
	"github.com/funvibe/golox/internal/token"
)

// Precedence orders the expression operators, lowest to highest. The Pratt
// loop keeps consuming infix operators while the next token's precedence is
// at least the one requested.
type Precedence int

const (
	PREC_NONE       Precedence = iota
	PREC_ASSIGNMENT            // =
	PREC_OR                    // or
	PREC_AND                   // and
	PREC_EQUALITY              // == !=
	PREC_COMPARISON            // < > <= >=
	PREC_TERM                  // + -
	PREC_FACTOR                // * /
	PREC_UNARY                 // ! -
	PREC_CALL                  // . ()
	PREC_PRIMARY
)

// FunctionType distinguishes top-level code from function bodies.
type FunctionType int

const (
	TYPE_SCRIPT FunctionType = iota
	TYPE_FUNCTION
)

// MaxLocals bounds the per-function locals table; slots are addressed by a
// single byte.
const MaxLocals = 256

type parseFn func(canAssign bool)

// ParseRule holds the prefix rule, infix rule and precedence for one token
// kind. The table drives parsePrecedence.
type ParseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

// Compiler holds the state for one function being compiled. Nested function
// declarations push a new Compiler linked through enclosing.
type Compiler struct {
	function   *FunctionObject
	funcType   FunctionType
	locals     []Local
	scopeDepth int
	enclosing  *Compiler
}

func newCompiler(name string, ft FunctionType, enclosing *Compiler) *Compiler {
	c := &Compiler{
		function:  NewFunction(name),
		funcType:  ft,
		locals:    make([]Local, 0, MaxLocals),
		enclosing: enclosing,
	}

	// slot 0 belongs to the function value itself
	c.locals = append(c.locals, Local{Depth: 0})

	return c
}

// Parser owns the token stream and emits bytecode while parsing. It keeps
// two tokens of lookahead (previous and current) and a stack of per-function
// Compilers.
type Parser struct {
	lexer             *lexer.Lexer
	current, previous token.Token

	hadError  bool
	panicMode bool
	errors    int

	compiler *Compiler
	rules    map[token.Type]ParseRule

	interner    *internTable
	errOut      io.Writer
	disassemble bool
}

// CompileError reports a failed compilation. The individual diagnostics have
// already been written to the diagnostics writer.
type CompileError struct {
	Errors int
}

func (e *CompileError) Error() string {
	if e.Errors == 1 {
		return "compilation failed with 1 error"
	}
	return fmt.Sprintf("compilation failed with %d errors", e.Errors)
}

// Compile turns source text into the top-level script function. Diagnostics
// go to errOut as they are found; on any error the chunk is discarded and a
// *CompileError returned.
func Compile(source string, interner *internTable, errOut io.Writer, disassemble bool) (*FunctionObject, error) {
	p := &Parser{
		lexer:       lexer.New(source),
		compiler:    newCompiler("", TYPE_SCRIPT, nil),
		interner:    interner,
		errOut:      errOut,
		disassemble: disassemble,
	}
	p.buildRuleTable()

	p.advance()
	for !p.match(token.EOF) {
		p.declaration()
	}

	fn := p.endCompiler()
	if p.hadError {
		return nil, &CompileError{Errors: p.errors}
	}
	return fn, nil
}

// Token stream helpers

func (p *Parser) advance() {
	p.previous = p.current

	for {
		p.current = p.lexer.NextToken()
		if p.current.Type != token.Error {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) consume(expected token.Type, msg string) {
	if p.current.Type == expected {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

func (p *Parser) match(t token.Type) bool {
	if !p.check(t) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) check(t token.Type) bool {
	return p.current.Type == t
}

// parsePrecedence parses any expression at the given precedence level or
// higher: run the prefix rule for the token just consumed, then keep running
// infix rules while the upcoming operator binds at least as tightly.
func (p *Parser) parsePrecedence(precedence Precedence) {
	p.advance()

	prefix := p.getRule(p.previous.Type).prefix
	if prefix == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := precedence <= PREC_ASSIGNMENT
	prefix(canAssign)

	for precedence <= p.getRule(p.current.Type).precedence {
		p.advance()
		p.getRule(p.previous.Type).infix(canAssign)
	}

	if canAssign && p.match(token.Equal) {
		p.error("Invalid assignment target.")
	}
}

func (p *Parser) getRule(t token.Type) ParseRule {
	return p.rules[t]
}

// Emission helpers

func (p *Parser) currentChunk() *Chunk {
	return p.compiler.function.Chunk
}

func (p *Parser) emitByte(b byte) {
	p.currentChunk().Write(b, p.previous.Line)
}

func (p *Parser) emitOp(op Opcode) {
	p.currentChunk().WriteOp(op, p.previous.Line)
}

func (p *Parser) emitOps(op1, op2 Opcode) {
	p.emitOp(op1)
	p.emitOp(op2)
}

func (p *Parser) emitConstant(value Value) {
	p.emitOp(OP_CONSTANT)
	p.emitByte(p.makeConstant(value))
}

func (p *Parser) makeConstant(value Value) byte {
	idx := p.currentChunk().AddConstant(value)
	if idx > math.MaxUint8 {
		p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

// emitJump emits a forward jump with a two-byte placeholder operand and
// returns the operand's offset for patchJump.
func (p *Parser) emitJump(op Opcode) int {
	p.emitOp(op)
	p.emitByte(0xff)
	p.emitByte(0xff)
	return p.currentChunk().Len() - 2
}

// patchJump back-fills a forward jump operand with the distance from the
// operand to the current end of the chunk.
func (p *Parser) patchJump(offset int) {
	chunk := p.currentChunk()

	// -2 adjusts for the operand bytes themselves
	jump := chunk.Len() - offset - 2
	if jump > math.MaxUint16 {
		p.error("Too much code to jump over.")
	}

	chunk.Code[offset] = byte((jump >> 8) & 0xff)
	chunk.Code[offset+1] = byte(jump & 0xff)
}

// emitLoop emits a backward jump to loopStart.
func (p *Parser) emitLoop(loopStart int) {
	p.emitOp(OP_LOOP)

	offset := p.currentChunk().Len() - loopStart + 2
	if offset > math.MaxUint16 {
		p.error("Loop body too large.")
	}

	p.emitByte(byte((offset >> 8) & 0xff))
	p.emitByte(byte(offset & 0xff))
}

func (p *Parser) emitReturn() {
	p.emitOp(OP_NIL)
	p.emitOp(OP_RETURN)
}

// endCompiler finishes the current function (implicit nil return) and pops
// back to the enclosing compiler.
func (p *Parser) endCompiler() *FunctionObject {
	p.emitReturn()

	fn := p.compiler.function
	p.compiler = p.compiler.enclosing

	if p.disassemble && !p.hadError {
		name := fn.Name
		if name == "" {
			name = "<script>"
		}
		fmt.Fprint(p.errOut, Disassemble(fn.Chunk, name))
	}

	return fn
}

// Error reporting

func (p *Parser) errorAtCurrent(msg string) {
	p.errorAt(p.current, msg)
}

func (p *Parser) error(msg string) {
	p.errorAt(p.previous, msg)
}

func (p *Parser) errorAt(tok token.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true
	p.errors++

	fmt.Fprintf(p.errOut, "[line %d] Error", tok.Line)
	if tok.Type == token.EOF {
		fmt.Fprint(p.errOut, " at end")
	} else if tok.Type != token.Error {
		fmt.Fprintf(p.errOut, " at '%s'", tok.Lexeme)
	}
	fmt.Fprintf(p.errOut, ": %s\n", msg)
}

// synchronize skips tokens until a statement boundary so one mistake does
// not cascade into a wall of diagnostics.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.Type != token.EOF {
		if p.previous.Type == token.Semicolon {
			return
		}

		switch p.current.Type {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}

func (p *Parser) buildRuleTable() {
	p.rules = map[token.Type]ParseRule{
		token.LeftParen:    {prefix: p.grouping, infix: p.call, precedence: PREC_CALL},
		token.RightParen:   {},
		token.LeftBrace:    {},
		token.RightBrace:   {},
		token.Comma:        {},
		token.Dot:          {infix: p.dot, precedence: PREC_CALL},
		token.Minus:        {prefix: p.unary, infix: p.binary, precedence: PREC_TERM},
		token.Plus:         {infix: p.binary, precedence: PREC_TERM},
		token.Semicolon:    {},
		token.Slash:        {infix: p.binary, precedence: PREC_FACTOR},
		token.Star:         {infix: p.binary, precedence: PREC_FACTOR},
		token.Bang:         {prefix: p.unary},
		token.BangEqual:    {infix: p.binary, precedence: PREC_EQUALITY},
		token.Equal:        {},
		token.EqualEqual:   {infix: p.binary, precedence: PREC_EQUALITY},
		token.Greater:      {infix: p.binary, precedence: PREC_COMPARISON},
		token.GreaterEqual: {infix: p.binary, precedence: PREC_COMPARISON},
		token.Less:         {infix: p.binary, precedence: PREC_COMPARISON},
		token.LessEqual:    {infix: p.binary, precedence: PREC_COMPARISON},
		token.Identifier:   {prefix: p.variable},
		token.String:       {prefix: p.stringLiteral},
		token.Number:       {prefix: p.number},
		token.And:          {infix: p.and, precedence: PREC_AND},
		token.Class:        {},
		token.Else:         {},
		token.False:        {prefix: p.literal},
		token.For:          {},
		token.Fun:          {},
		token.If:           {},
		token.Nil:          {prefix: p.literal},
		token.Or:           {infix: p.or, precedence: PREC_OR},
		token.Print:        {},
		token.Return:       {},
		token.Super:        {prefix: p.reserved},
		token.This:         {prefix: p.reserved},
		token.True:         {prefix: p.literal},
		token.Var:          {},
		token.While:        {},
		token.Error:        {},
		token.EOF:          {},
	}
}
