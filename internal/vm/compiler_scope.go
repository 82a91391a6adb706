package vm

import (
	"github.com/funvibe/golox/internal/token"
)

// Local is a compile-time record of a block-scoped variable. Its index in
// the locals table is its runtime stack slot relative to the frame base.
// Depth -1 marks a declared-but-uninitialized local, which is how reading a
// variable inside its own initializer is caught.
type Local struct {
	Name  string
	Depth int
}

func (p *Parser) beginScope() {
	p.compiler.scopeDepth++
}

// endScope pops every local that belonged to the closed scope, one OP_POP
// each, so the stack returns to its pre-block height.
func (p *Parser) endScope() {
	c := p.compiler
	c.scopeDepth--

	for len(c.locals) > 0 && c.locals[len(c.locals)-1].Depth > c.scopeDepth {
		p.emitOp(OP_POP)
		c.locals = c.locals[:len(c.locals)-1]
	}
}

// parseVariable consumes the variable name. At global scope it returns the
// name's constant index; inside a block it declares a local and the returned
// index is unused.
func (p *Parser) parseVariable(errMsg string) byte {
	p.consume(token.Identifier, errMsg)

	p.declareVariable()
	if p.compiler.scopeDepth > 0 {
		return 0
	}

	return p.identifierConstant(p.previous)
}

// identifierConstant interns the name and stores it in the constant pool so
// the VM can key the globals map by object identity.
func (p *Parser) identifierConstant(name token.Token) byte {
	return p.makeConstant(ObjVal(p.interner.Intern(name.Lexeme)))
}

// declareVariable records a new local in the current block. Globals are late
// bound and need no declaration.
func (p *Parser) declareVariable() {
	if p.compiler.scopeDepth == 0 {
		return
	}

	name := p.previous
	for i := len(p.compiler.locals) - 1; i >= 0; i-- {
		local := p.compiler.locals[i]
		if local.Depth != -1 && local.Depth < p.compiler.scopeDepth {
			break
		}
		if local.Name == name.Lexeme {
			p.error("Already a variable with this name in this scope.")
		}
	}

	p.addLocal(name)
}

func (p *Parser) addLocal(name token.Token) {
	if len(p.compiler.locals) >= MaxLocals {
		p.error("Too many local variables in function.")
		return
	}

	p.compiler.locals = append(p.compiler.locals, Local{
		Name:  name.Lexeme,
		Depth: -1,
	})
}

// defineVariable makes the variable available. A global gets an explicit
// define instruction; a local is simply marked initialized, its value is
// already sitting in its slot.
func (p *Parser) defineVariable(global byte) {
	if p.compiler.scopeDepth > 0 {
		p.markInitialized()
		return
	}

	p.emitOp(OP_DEFINE_GLOBAL)
	p.emitByte(global)
}

func (p *Parser) markInitialized() {
	if p.compiler.scopeDepth == 0 {
		return
	}
	p.compiler.locals[len(p.compiler.locals)-1].Depth = p.compiler.scopeDepth
}

// resolveLocal scans the locals back to front for the name and returns its
// slot. A hit on an uninitialized local means the variable appears in its
// own initializer.
func (p *Parser) resolveLocal(c *Compiler, name token.Token) (byte, bool) {
	for i := len(c.locals) - 1; i >= 0; i-- {
		local := c.locals[i]
		if local.Name == name.Lexeme {
			if local.Depth == -1 {
				p.error("Can't read local variable in its own initializer.")
			}
			return byte(i), true
		}
	}
	return 0, false
}
