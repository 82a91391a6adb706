package vm

import (
	"strconv"

	"github.com/funvibe/golox/internal/token"
)

func (p *Parser) expression() {
	p.parsePrecedence(PREC_ASSIGNMENT)
}

func (p *Parser) number(canAssign bool) {
	value, _ := strconv.ParseFloat(p.previous.Lexeme, 64)
	p.emitConstant(NumberVal(value))
}

func (p *Parser) stringLiteral(canAssign bool) {
	// trim the surrounding quotes; the lexer guarantees both are present
	lexeme := p.previous.Lexeme
	s := p.interner.Intern(lexeme[1 : len(lexeme)-1])
	p.emitConstant(ObjVal(s))
}

func (p *Parser) literal(canAssign bool) {
	switch p.previous.Type {
	case token.Nil:
		p.emitOp(OP_NIL)
	case token.True:
		p.emitOp(OP_TRUE)
	case token.False:
		p.emitOp(OP_FALSE)
	}
}

func (p *Parser) grouping(canAssign bool) {
	p.expression()
	p.consume(token.RightParen, "Expect ')' after expression.")
}

func (p *Parser) unary(canAssign bool) {
	operator := p.previous.Type

	// compile the operand first; the instruction negates the result
	p.parsePrecedence(PREC_UNARY)

	switch operator {
	case token.Bang:
		p.emitOp(OP_NOT)
	case token.Minus:
		p.emitOp(OP_NEGATE)
	}
}

func (p *Parser) binary(canAssign bool) {
	operator := p.previous.Type
	rule := p.getRule(operator)

	// one level above: binary operators are left-associative
	p.parsePrecedence(rule.precedence + 1)

	switch operator {
	case token.BangEqual:
		p.emitOps(OP_EQUAL, OP_NOT)
	case token.EqualEqual:
		p.emitOp(OP_EQUAL)
	case token.Greater:
		p.emitOp(OP_GREATER)
	case token.GreaterEqual:
		p.emitOps(OP_LESS, OP_NOT)
	case token.Less:
		p.emitOp(OP_LESS)
	case token.LessEqual:
		p.emitOps(OP_GREATER, OP_NOT)
	case token.Plus:
		p.emitOp(OP_ADD)
	case token.Minus:
		p.emitOp(OP_SUBTRACT)
	case token.Star:
		p.emitOp(OP_MULTIPLY)
	case token.Slash:
		p.emitOp(OP_DIVIDE)
	}
}

// and short-circuits: when the left side is falsey it stays on the stack and
// the right side is skipped, otherwise the left is popped and the right side
// becomes the result.
func (p *Parser) and(canAssign bool) {
	endJump := p.emitJump(OP_JUMP_IF_FALSE)

	p.emitOp(OP_POP)
	p.parsePrecedence(PREC_AND)

	p.patchJump(endJump)
}

// or short-circuits: a truthy left side jumps over the right operand and
// stays as the result.
func (p *Parser) or(canAssign bool) {
	elseJump := p.emitJump(OP_JUMP_IF_FALSE)
	endJump := p.emitJump(OP_JUMP)

	p.patchJump(elseJump)
	p.emitOp(OP_POP)

	p.parsePrecedence(PREC_OR)
	p.patchJump(endJump)
}

func (p *Parser) variable(canAssign bool) {
	p.namedVariable(p.previous, canAssign)
}

// namedVariable resolves an identifier as a local slot or, failing that, a
// global name constant, and emits the matching get or set instruction.
func (p *Parser) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp Opcode
	var arg byte

	slot, found := p.resolveLocal(p.compiler, name)
	if found {
		arg = slot
		getOp, setOp = OP_GET_LOCAL, OP_SET_LOCAL
	} else {
		arg = p.identifierConstant(name)
		getOp, setOp = OP_GET_GLOBAL, OP_SET_GLOBAL
	}

	if canAssign && p.match(token.Equal) {
		p.expression()
		p.emitOp(setOp)
		p.emitByte(arg)
	} else {
		p.emitOp(getOp)
		p.emitByte(arg)
	}
}

func (p *Parser) call(canAssign bool) {
	argCount := p.argumentList()
	p.emitOp(OP_CALL)
	p.emitByte(argCount)
}

func (p *Parser) argumentList() byte {
	var argCount int
	if !p.check(token.RightParen) {
		for {
			p.expression()
			if argCount == 255 {
				p.error("Can't have more than 255 arguments.")
			}
			argCount++
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.consume(token.RightParen, "Expect ')' after arguments.")
	return byte(argCount)
}

// dot would be property access; there are no classes to access properties on.
func (p *Parser) dot(canAssign bool) {
	p.error("Classes are not implemented.")
}

// reserved rejects 'this' and 'super', which are scanned but have no code
// generation without classes.
func (p *Parser) reserved(canAssign bool) {
	p.error("Classes are not implemented.")
}
