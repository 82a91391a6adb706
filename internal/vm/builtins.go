package vm

import (
	"fmt"
	"time"
)

// print renders a value with the same display rules as string coercion.
// OP_PRINT does not append a newline; the println native does.
func (vm *VM) print(v Value) {
	fmt.Fprint(vm.out, v.Inspect())
}

// DefineNative binds a host function into the globals under name. A negative
// arity makes the native variadic.
func (vm *VM) DefineNative(name string, arity int, fn NativeFn) {
	key := vm.interner.Intern(name)
	vm.globals[key] = ObjVal(&NativeObject{Name: name, Arity: arity, Fn: fn})
}

// registerBuiltins installs the default native functions.
func (vm *VM) registerBuiltins() {
	vm.DefineNative("clock", 0, func(args []Value) Value {
		return NumberVal(time.Since(vm.start).Seconds())
	})

	// println prints its first argument, or only a newline when called with
	// none; any further arguments are ignored
	vm.DefineNative("println", -1, func(args []Value) Value {
		if len(args) == 0 {
			fmt.Fprintln(vm.out)
		} else {
			fmt.Fprintln(vm.out, args[0].Inspect())
		}
		return NilVal()
	})
}
