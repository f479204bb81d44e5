package wormula

// Runtime implements the fixed host-function import table from
// spec.md §4.5 (funcMakeState..funcRtlGetBool in vm_abi.go). A single
// Runtime is shared by every CompiledTerm a Context compiles — it
// holds no per-formula state itself, only the behavior the generated
// bytecode calls into; all mutable state lives on the *State each
// call operates against.
//
// Argument passing is this implementation's own choice, not dictated
// by spec.md: every host call pops its arguments off the operand
// stack in reverse declaration order and pushes its single result (if
// any), the same convention a stack-machine VM's native calls use.
type Runtime struct{}

// NewRuntime constructs the shared runtime a Context uses to compile
// and run every formula, standing in for AOT-compiling wormrtl.wasm.
func NewRuntime() *Runtime { return &Runtime{} }

// call dispatches a single ICall by import index against vm's stack
// and state.
func (rt *Runtime) call(vm *vmExec, funcIndex int) {
	switch funcIndex {
	case funcMakeState:
		vm.stack.pushI64(0)

	case funcFreeState:
		vm.stack.drop()

	case funcMakeI64:
		v := vm.stack.popI64()
		vm.stack.pushI64(vm.state.allocSlot(i64Value(v)))

	case funcMakeF64:
		v := vm.stack.popF64()
		vm.stack.pushI64(vm.state.allocSlot(f64Value(v)))

	case funcAllocString:
		n := int(vm.stack.popI32())
		vm.stack.pushI32(int32(vm.state.allocString(n)))

	case funcGetStringBuf:
		// identity in this flat-arena model: alloc_string already
		// returned the buffer's offset.

	case funcMakeString:
		n := int(vm.stack.popI32())
		offset := int(vm.stack.popI32())
		vm.stack.pushI64(vm.state.allocSlot(stringValue(vm.state.stringAt(offset, n))))

	case funcMakeRegex:
		n := int(vm.stack.popI32())
		offset := int(vm.stack.popI32())
		vm.stack.pushI64(vm.state.allocSlot(regexValue(vm.state.stringAt(offset, n))))

	case funcRtlAnd:
		rhs := vm.stack.popI64()
		lhs := vm.stack.popI64()
		vm.stack.pushI64(vm.state.boolSlot(vm.rtlGetBool(lhs) && vm.rtlGetBool(rhs)))

	case funcRtlOr:
		rhs := vm.stack.popI64()
		lhs := vm.stack.popI64()
		vm.stack.pushI64(vm.state.boolSlot(vm.rtlGetBool(lhs) || vm.rtlGetBool(rhs)))

	case funcRtlNot:
		v := vm.stack.popI64()
		vm.stack.pushI64(vm.state.boolSlot(!vm.rtlGetBool(v)))

	case funcRtlEq:
		rhs := vm.stack.popI64()
		lhs := vm.stack.popI64()
		vm.stack.pushI64(vm.state.boolSlot(vm.rtlEq(lhs, rhs)))

	case funcRtlGetBool:
		v := vm.stack.popI64()
		if vm.rtlGetBool(v) {
			vm.stack.pushI64(1)
		} else {
			vm.stack.pushI64(0)
		}

	default:
		panic(EvalError{Message: "call to unknown runtime function"})
	}
}


// rtlGetBool reads a slot's truthiness: any nonzero i64 is true,
// matching spec.md §4.5's rtl_get_bool.
func (vm *vmExec) rtlGetBool(slotIdx int64) bool {
	return vm.state.slot(slotIdx).i64 != 0
}

// rtlEq implements spec.md §4.5's polymorphic equality: i64/i64,
// f64/f64, string/string numerically or byte-wise respectively,
// string/regex (either order) via regexp match, everything else
// false.
func (vm *vmExec) rtlEq(lhsIdx, rhsIdx int64) bool {
	lhs := vm.state.slot(lhsIdx)
	rhs := vm.state.slot(rhsIdx)

	switch {
	case lhs.kind == kindI64 && rhs.kind == kindI64:
		return lhs.i64 == rhs.i64
	case lhs.kind == kindF64 && rhs.kind == kindF64:
		return lhs.f64 == rhs.f64
	case lhs.kind == kindString && rhs.kind == kindString:
		return lhs.str == rhs.str
	case lhs.kind == kindString && rhs.kind == kindRegex:
		return matchRegex(vm.state, rhs, lhs.str)
	case lhs.kind == kindRegex && rhs.kind == kindString:
		return matchRegex(vm.state, lhs, rhs.str)
	default:
		return false
	}
}

// matchRegex compiles (once, cached) the pattern held in regexSlot
// and matches it against s. An invalid pattern traps the VM, caught
// at the Instance boundary per spec.md §7.
func matchRegex(st *State, regexSlot *value, s string) bool {
	p := st.pattern(regexSlot)
	if p.err != nil {
		panic(EvalError{Message: "invalid regex pattern: " + p.err.Error()})
	}
	return p.re.MatchString(s)
}
