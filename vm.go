package wormula

// vmExec is one function body's live execution context: its operand
// stack, its locals, and the State the runtime's host functions read
// and write through.
type vmExec struct {
	stack  operandStack
	locals *locals
	state  *State
}

// run interprets fn's instructions against st using rt's host
// function table. It never returns an error directly — a malformed
// program or a runtime trap (bad regex, out-of-range slot, stack
// underflow) panics, and callers recover at the Instance boundary,
// per spec.md §7.
func (rt *Runtime) run(fn funcBody, st *State) int64 {
	vm := &vmExec{locals: newLocals(fn.locals), state: st}
	for _, ins := range fn.code {
		vm.step(rt, ins)
	}
	if len(vm.stack.data) == 0 {
		return 0
	}
	return vm.stack.popI64()
}

func (vm *vmExec) step(rt *Runtime, ins Instruction) {
	switch v := ins.(type) {
	case IGetLocal:
		vm.stack.pushI64(int64(vm.locals.get(v.Index)))
	case ISetLocal:
		vm.locals.set(v.Index, uint64(vm.stack.popI64()))
	case ITeeLocal:
		vm.locals.set(v.Index, vm.stack.top())
	case II32Const:
		vm.stack.pushI32(v.Value)
	case II64Const:
		vm.stack.pushI64(v.Value)
	case IF64Const:
		vm.stack.pushF64(v.Value)
	case ICall:
		rt.call(vm, v.FuncIndex)
	case IDrop:
		vm.stack.drop()
	case II32Store8:
		b := byte(vm.stack.popI32())
		offset := int(vm.stack.popI32())
		vm.state.arena[offset] = b
	case IEnd:
		// marks the end of a body; nothing to execute
	default:
		panic(EvalError{Message: "unknown instruction in generated bytecode"})
	}
}
