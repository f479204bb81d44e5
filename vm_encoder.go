package wormula

// Assemble validates a Program's structural invariants before it's
// handed to the VM. The teacher's encoder resolves jump labels into
// byte offsets in a two-pass scheme; this module's instruction set
// has no branches at all (a formula's AST is evaluated by a
// straight-line sequence of calls, never a loop or conditional jump),
// so there is nothing to resolve here — each function body is its own
// "bytecode", executed directly by the VM in vm.go. What's left from
// the original two-pass shape is a single validation pass: every call
// target must be either a fixed runtime import or a function this
// Program actually declares.
func Assemble(p *Program) (*Program, error) {
	for _, fn := range []funcBody{p.load, p.eval, p.cleanup} {
		for _, ins := range fn.code {
			call, ok := ins.(ICall)
			if !ok {
				continue
			}
			if call.FuncIndex < 0 || call.FuncIndex > funcCleanup {
				return nil, CompileError{Message: "call to undefined function index"}
			}
		}
	}
	return p, nil
}
