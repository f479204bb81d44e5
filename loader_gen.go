package wormula

import "strconv"

// loader implements the load-pass generator (spec.md §4.3): it walks
// a parsed Term, assigns a runtime slot to every distinct Variable and
// every literal it encounters, and emits the bytecode that
// materializes each literal into its slot when run against a fresh
// State. The tree it returns has every Variable and literal replaced
// by a LoadedTerm, exactly as spec.md requires.
//
// Slot numbers are not local to one loader: they are drawn from
// ctx.nextSlot, a single counter a Context keeps for its entire
// lifetime. This is what lets two formulas compiled from the same
// Context share slot indices for a variable of the same name (spec.md
// §3's sharing invariant) — a loader never resets or re-bases the
// counter, it only ever advances it.
//
// The literal arena offset, by contrast, genuinely is per-formula: a
// literal's alloc_string call always appends at the arena's current
// length within *that formula's* load run, so arenaOffset starts back
// at zero for every loader.
type loader struct {
	ctx *Context

	// lenientSlots caches the fallback slot chosen for an undefined
	// variable when the Context isn't running in strict mode, so a
	// name referenced more than once in one formula still gets a
	// single slot. It is never merged into ctx.varSlots: an undefined
	// name stays undefined for every other formula this Context
	// compiles, matching the original's int_build_loader, which never
	// records a slot -1 lookup back into self.variables.
	lenientSlots map[string]int64

	arenaOffset int
	code        []Instruction
}

// newLoader builds a loader drawing its slot numbers from ctx.
func newLoader(ctx *Context) *loader {
	return &loader{ctx: ctx, lenientSlots: make(map[string]int64)}
}

// load rewrites t, resolving every Variable against ctx.varSlots and
// appending literal-materialization instructions to ld.code.
func (ld *loader) load(t Term) (Term, error) {
	switch v := t.(type) {
	case Ident:
		slot, err := ld.resolveVar(v.Name)
		if err != nil {
			return nil, err
		}
		return LoadedTerm{Slot: slot}, nil

	case Int:
		return ld.emitI64(v.Value), nil

	case Float:
		return ld.emitF64(v.Value), nil

	case String:
		return ld.emitBytes(v.Value, funcMakeString), nil

	case Regex:
		return ld.emitBytes(v.Value, funcMakeRegex), nil

	case Not:
		inner, err := ld.load(v.Inner)
		if err != nil {
			return nil, err
		}
		return Not{Inner: inner}, nil

	case And:
		return ld.loadBinary(v.Left, v.Right, func(l, r Term) Term { return And{Left: l, Right: r} })
	case Or:
		return ld.loadBinary(v.Left, v.Right, func(l, r Term) Term { return Or{Left: l, Right: r} })
	case Eq:
		return ld.loadBinary(v.Left, v.Right, func(l, r Term) Term { return Eq{Left: l, Right: r} })
	case Lt:
		return ld.loadBinary(v.Left, v.Right, func(l, r Term) Term { return Lt{Left: l, Right: r} })
	case Le:
		return ld.loadBinary(v.Left, v.Right, func(l, r Term) Term { return Le{Left: l, Right: r} })
	case Gt:
		return ld.loadBinary(v.Left, v.Right, func(l, r Term) Term { return Gt{Left: l, Right: r} })
	case Ge:
		return ld.loadBinary(v.Left, v.Right, func(l, r Term) Term { return Ge{Left: l, Right: r} })

	case LoadedTerm:
		return v, nil

	default:
		return nil, CompileError{Message: "unsupported term reached the load pass"}
	}
}

// resolveVar returns the slot bound to name. A name registered via
// Context.DefineVar always resolves to its shared slot. An
// unregistered name is a hard CompileError under the Context's
// default strict mode; in non-strict mode it falls back to a slot of
// its own, cached for the rest of this one load() call but never
// shared with the Context's variable table — matching the original's
// "an undefined variable gets its own dead slot" behavior.
func (ld *loader) resolveVar(name string) (int64, error) {
	if slot, ok := ld.ctx.varSlots[name]; ok {
		return slot, nil
	}
	if ld.ctx.cfg.GetBool("compiler.strict_undefined_vars") {
		return 0, CompileError{Message: "variable " + strconv.Quote(name) + " was never defined via Context.DefineVar"}
	}
	if slot, ok := ld.lenientSlots[name]; ok {
		return slot, nil
	}
	slot := ld.ctx.allocSlot()
	ld.lenientSlots[name] = slot
	return slot, nil
}

func (ld *loader) loadBinary(left, right Term, build func(Term, Term) Term) (Term, error) {
	lt, err := ld.load(left)
	if err != nil {
		return nil, err
	}
	rt, err := ld.load(right)
	if err != nil {
		return nil, err
	}
	return build(lt, rt), nil
}

// emitI64 appends the bytecode for make_i64(v) and returns the
// LoadedTerm referencing the slot it will land in.
func (ld *loader) emitI64(v int64) Term {
	slot := ld.ctx.allocSlot()
	ld.code = append(ld.code,
		II64Const{Value: v},
		ICall{FuncIndex: funcMakeI64},
		IDrop{},
	)
	return LoadedTerm{Slot: slot}
}

// emitF64 appends the bytecode for make_f64(v).
func (ld *loader) emitF64(v float64) Term {
	slot := ld.ctx.allocSlot()
	ld.code = append(ld.code,
		IF64Const{Value: v},
		ICall{FuncIndex: funcMakeF64},
		IDrop{},
	)
	return LoadedTerm{Slot: slot}
}

// emitBytes appends the bytecode for alloc_string + get_string_buf +
// one i32.store8 per byte + a call to makeFn (funcMakeString or funcMakeRegex),
// following spec.md §4.3's documented byte-by-byte materialization.
func (ld *loader) emitBytes(s string, makeFn int) Term {
	slot := ld.ctx.allocSlot()

	data := []byte(s)
	offset := ld.arenaOffset
	ld.arenaOffset += len(data)

	ld.code = append(ld.code,
		II32Const{Value: int32(len(data))},
		ICall{FuncIndex: funcAllocString},
		ICall{FuncIndex: funcGetStringBuf},
		IDrop{},
	)
	for i, b := range data {
		ld.code = append(ld.code,
			II32Const{Value: int32(offset + i)},
			II32Const{Value: int32(b)},
			II32Store8{},
		)
	}
	ld.code = append(ld.code,
		II32Const{Value: int32(offset)},
		II32Const{Value: int32(len(data))},
		ICall{FuncIndex: makeFn},
		IDrop{},
	)
	return LoadedTerm{Slot: slot}
}
