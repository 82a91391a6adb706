package vm

import (
	"io"
	"os"
)

// Interp is the embeddable interpreter: one intern table and one VM whose
// globals persist across Interpret calls, which is what makes the REPL's
// line-at-a-time mode work.
//
// The core is single-threaded; concurrent use of a single Interp requires
// external serialization. Distinct Interps are fully independent.
type Interp struct {
	interner *internTable
	vm       *VM

	out         io.Writer
	errOut      io.Writer
	disassemble bool
}

func NewInterp() *Interp {
	i := &Interp{
		interner: newInternTable(),
		out:      os.Stdout,
		errOut:   os.Stderr,
	}
	i.vm = newVM(i.interner, i.out, i.errOut)
	return i
}

// SetOutput redirects program output (print, println).
func (i *Interp) SetOutput(w io.Writer) {
	i.out = w
	i.vm.out = w
}

// SetErrOutput redirects diagnostics: compile errors and disassembly/trace
// listings. Runtime errors are returned from Interpret, not written here.
func (i *Interp) SetErrOutput(w io.Writer) {
	i.errOut = w
	i.vm.errOut = w
}

// SetTrace dumps the stack and each instruction before it executes.
func (i *Interp) SetTrace(on bool) {
	i.vm.trace = on
}

// SetDisassemble prints each compiled chunk before execution.
func (i *Interp) SetDisassemble(on bool) {
	i.disassemble = on
}

// RegisterNative exposes a host function to programs. Call it before
// Interpret; a negative arity means variadic.
func (i *Interp) RegisterNative(name string, arity int, fn NativeFn) {
	i.vm.DefineNative(name, arity, fn)
}

// Interpret compiles and runs one source unit. The returned error is a
// *CompileError (diagnostics already written to the error output) or a
// *RuntimeError (message includes the frame trace); nil means success.
func (i *Interp) Interpret(source string) error {
	script, err := Compile(source, i.interner, i.errOut, i.disassemble)
	if err != nil {
		return err
	}
	return i.vm.Run(script)
}
