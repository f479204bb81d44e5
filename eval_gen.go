package wormula

// evalGen implements the eval-pass generator (spec.md §4.4): it walks
// an already-loaded Term — one whose every Variable/literal has been
// replaced with a LoadedTerm by the loader — and emits, for every
// node, a constant push of its operand slot numbers followed by a
// call to the matching rtl_* primitive. Each primitive's result is
// itself a slot number (the State's well-known trueSlot/falseSlot), so a
// parent node threads it through exactly like any other operand,
// bottoming out in a single rtl_get_bool call that reads the final
// boolean back out.
type evalGen struct {
	code []Instruction
}

func newEvalGen() *evalGen { return &evalGen{} }

// generate emits t's evaluation bytecode followed by the closing
// rtl_get_bool call that produces eval()'s return value.
func (g *evalGen) generate(t Term) error {
	if err := g.emit(t); err != nil {
		return err
	}
	g.code = append(g.code, ICall{FuncIndex: funcRtlGetBool})
	return nil
}

func (g *evalGen) emit(t Term) error {
	switch v := t.(type) {
	case LoadedTerm:
		g.code = append(g.code, II64Const{Value: v.Slot})
		return nil

	case Not:
		if err := g.emit(v.Inner); err != nil {
			return err
		}
		g.code = append(g.code, ICall{FuncIndex: funcRtlNot})
		return nil

	case And:
		return g.emitBinary(v.Left, v.Right, funcRtlAnd)
	case Or:
		return g.emitBinary(v.Left, v.Right, funcRtlOr)
	case Eq:
		return g.emitBinary(v.Left, v.Right, funcRtlEq)

	case Lt, Le, Gt, Ge:
		return CompileError{Message: "comparison operators are reserved and not yet supported by the evaluator"}

	default:
		return CompileError{Message: "term reached the eval pass without being loaded first"}
	}
}

func (g *evalGen) emitBinary(left, right Term, fn int) error {
	if err := g.emit(left); err != nil {
		return err
	}
	if err := g.emit(right); err != nil {
		return err
	}
	g.code = append(g.code, ICall{FuncIndex: fn})
	return nil
}
