package vm

// run is the dispatch loop: fetch a byte, advance, branch on opcode. It
// returns when the last frame's OP_RETURN executes, or with a runtime error.
func (vm *VM) run() error {
	frame := vm.currentFrame()

	for {
		if vm.trace {
			vm.traceInstruction(frame)
		}

		op := Opcode(vm.readByte(frame))

		switch op {
		case OP_CONSTANT:
			if err := vm.push(vm.readConstant(frame)); err != nil {
				return err
			}

		case OP_NIL:
			if err := vm.push(NilVal()); err != nil {
				return err
			}
		case OP_TRUE:
			if err := vm.push(BoolVal(true)); err != nil {
				return err
			}
		case OP_FALSE:
			if err := vm.push(BoolVal(false)); err != nil {
				return err
			}

		case OP_POP:
			vm.pop()

		case OP_GET_LOCAL:
			slot := vm.readByte(frame)
			if err := vm.push(vm.stack[frame.base+int(slot)]); err != nil {
				return err
			}

		case OP_SET_LOCAL:
			slot := vm.readByte(frame)
			vm.stack[frame.base+int(slot)] = vm.peek(0)

		case OP_GET_GLOBAL:
			name := vm.readString(frame)
			value, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			if err := vm.push(value); err != nil {
				return err
			}

		case OP_DEFINE_GLOBAL:
			name := vm.readString(frame)
			vm.globals[name] = vm.peek(0)
			vm.pop()

		case OP_SET_GLOBAL:
			name := vm.readString(frame)
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			// assignment is an expression: the value stays on the stack
			vm.globals[name] = vm.peek(0)

		case OP_EQUAL:
			b := vm.pop()
			a := vm.pop()
			if err := vm.push(BoolVal(a.Equals(b))); err != nil {
				return err
			}

		case OP_GREATER, OP_LESS, OP_ADD, OP_SUBTRACT, OP_MULTIPLY, OP_DIVIDE:
			if err := vm.binaryOp(op); err != nil {
				return err
			}

		case OP_NOT:
			if err := vm.push(BoolVal(vm.pop().IsFalsey())); err != nil {
				return err
			}

		case OP_NEGATE:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			if err := vm.push(NumberVal(-vm.pop().AsNumber())); err != nil {
				return err
			}

		case OP_PRINT:
			vm.print(vm.pop())

		case OP_JUMP:
			offset := vm.readShort(frame)
			frame.ip += offset

		case OP_JUMP_IF_FALSE:
			offset := vm.readShort(frame)
			if vm.peek(0).IsFalsey() {
				frame.ip += offset
			}

		case OP_LOOP:
			offset := vm.readShort(frame)
			frame.ip -= offset

		case OP_CALL:
			argCount := int(vm.readByte(frame))
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			frame = vm.currentFrame()

		case OP_RETURN:
			result := vm.pop()
			vm.frameCount--
			if vm.frameCount == 0 {
				// the script function itself is still on the stack
				vm.pop()
				return nil
			}

			vm.sp = frame.base
			if err := vm.push(result); err != nil {
				return err
			}
			frame = vm.currentFrame()

		default:
			return vm.runtimeError("Unknown opcode %d.", op)
		}
	}
}

// binaryOp pops two operands and applies a numeric operator. OP_ADD also
// handles concatenation: when either side is a string, the other operand is
// rendered to its display form and the two are joined.
func (vm *VM) binaryOp(op Opcode) error {
	right := vm.pop()
	left := vm.pop()

	if op == OP_ADD && (left.IsString() || right.IsString()) {
		s := vm.interner.Intern(left.Inspect() + right.Inspect())
		return vm.push(ObjVal(s))
	}

	if !left.IsNumber() || !right.IsNumber() {
		if op == OP_ADD {
			return vm.runtimeError("Invalid operation on these operands.")
		}
		return vm.runtimeError("Operands must be numbers.")
	}

	a, b := left.AsNumber(), right.AsNumber()

	switch op {
	case OP_ADD:
		return vm.push(NumberVal(a + b))
	case OP_SUBTRACT:
		return vm.push(NumberVal(a - b))
	case OP_MULTIPLY:
		return vm.push(NumberVal(a * b))
	case OP_DIVIDE:
		// division by zero follows IEEE-754: inf or nan, never an error
		return vm.push(NumberVal(a / b))
	case OP_GREATER:
		return vm.push(BoolVal(a > b))
	case OP_LESS:
		return vm.push(BoolVal(a < b))
	}
	return nil
}
