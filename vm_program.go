package wormula

import "fmt"

// funcBody is one function's generated instructions.
type funcBody struct {
	name   string
	locals int
	code   []Instruction
}

// Program is the assembled form of a compiled formula: the fixed
// import table from vm_abi.go plus the three generated function
// bodies, per spec.md §4.6.
type Program struct {
	load    funcBody
	eval    funcBody
	cleanup funcBody
}

// newProgram creates an empty Program with the declared local count
// shared by load and eval, per spec.md §4.3's four(+one)-local layout.
func newProgram() *Program {
	return &Program{
		load:    funcBody{name: "load", locals: localVarResult + 1},
		eval:    funcBody{name: "eval", locals: localVarResult + 1},
		cleanup: funcBody{name: "cleanup", locals: localState + 1},
	}
}

// Disassemble renders the Program as readable mnemonic text, one
// function per block, for the CLI's -disasm flag and for tests that
// assert on the shape of generated bytecode.
func (p *Program) Disassemble() string {
	o := newDisasmWriter("  ")
	for _, fn := range []funcBody{p.load, p.eval, p.cleanup} {
		o.writeil(fmt.Sprintf("func %s (locals=%d)", fn.name, fn.locals))
		o.indent()
		for i, ins := range fn.code {
			o.writeil(fmt.Sprintf("%3d  %s", i, disasmLine(ins)))
		}
		o.unindent()
	}
	return o.String()
}

func disasmLine(ins Instruction) string {
	switch v := ins.(type) {
	case IGetLocal:
		return fmt.Sprintf("%s %d", v.Name(), v.Index)
	case ISetLocal:
		return fmt.Sprintf("%s %d", v.Name(), v.Index)
	case ITeeLocal:
		return fmt.Sprintf("%s %d", v.Name(), v.Index)
	case II32Const:
		return fmt.Sprintf("%s %d", v.Name(), v.Value)
	case II64Const:
		return fmt.Sprintf("%s %d", v.Name(), v.Value)
	case IF64Const:
		return fmt.Sprintf("%s %g", v.Name(), v.Value)
	case ICall:
		return fmt.Sprintf("%s %s", v.Name(), funcName(v.FuncIndex))
	default:
		return ins.Name()
	}
}

func funcName(idx int) string {
	names := []string{
		"make_state", "free_state", "make_i64", "make_f64",
		"rtl_eq", "rtl_get_bool", "rtl_and", "rtl_or", "rtl_not",
		"alloc_string", "get_string_buf", "make_string", "make_regex",
		"load", "eval", "cleanup",
	}
	if idx >= 0 && idx < len(names) {
		return names[idx]
	}
	return fmt.Sprintf("func[%d]", idx)
}
