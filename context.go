package wormula

import "strconv"

// Kind identifies the runtime type a Variable carries. It mirrors the
// value kinds in value.go but is exported for callers constructing
// Variable handles through Context.DefineVar.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindRegex
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindRegex:
		return "regex"
	default:
		return "unknown"
	}
}

// Context owns one shared Runtime, a monotonic slot counter, and the
// registry of named variables every formula it compiles draws from.
// It is not safe for concurrent use — per spec.md §5, a Context and
// everything reachable from it is confined to a single goroutine at a
// time.
//
// The slot counter (nextSlot) is the heart of spec.md §3's sharing
// invariant: it is seeded once from "runtime.reserved_slots" and then
// only ever advances, across every Compile call this Context makes.
// Context.DefineVar draws a variable's slot from it exactly once; the
// loader generator draws a fresh slot from it for every literal a
// formula contains. Two formulas compiled from the same Context that
// both reference "x" therefore agree on "x"'s slot automatically, the
// same way the original's Context::define_var/int_build_loader share
// one self.locals counter.
type Context struct {
	rt  *Runtime
	cfg *Config

	nextSlot int64
	varSlots map[string]int64
	varKinds map[string]Kind
}

// NewContext constructs a Context with default configuration,
// standing in for the AOT-compile step a real sandboxed-VM backend
// would perform once up front.
func NewContext() (*Context, error) {
	return NewContextWithConfig(NewConfig())
}

// NewContextWithConfig constructs a Context honoring cfg. In
// particular, cfg's "compiler.strict_undefined_vars" decides what the
// loader does about a formula variable that was never passed to
// DefineVar: true (the default) rejects eagerly with a CompileError,
// matching SPEC_FULL.md's Open Question resolution; false falls back
// to the original implementation's behavior of giving the variable a
// slot of its own that no Instance ever writes to, leaving rtl_eq's
// catch-all false to decide any comparison against it.
func NewContextWithConfig(cfg *Config) (*Context, error) {
	reserved := int64(cfg.GetInt("runtime.reserved_slots"))
	return &Context{
		rt:       NewRuntime(),
		cfg:      cfg,
		nextSlot: reserved,
		varSlots: make(map[string]int64),
		varKinds: make(map[string]Kind),
	}, nil
}

// allocSlot hands out the next free slot past the reserved range,
// advancing the Context's counter for good — the single source every
// DefineVar call and every loader literal draws from.
func (c *Context) allocSlot() int64 {
	slot := c.nextSlot
	c.nextSlot++
	return slot
}

// DefineVar registers name as a variable of runtime kind k, shared by
// every formula this Context compiles from now on, per spec.md §3/§6.
// Calling it again for a name already registered with the same kind
// is a no-op (the name keeps its original slot); calling it again
// with a different kind is a CompileError, since every formula
// sharing this Context's slot for name would otherwise disagree about
// what's stored there.
func (c *Context) DefineVar(name string, k Kind) error {
	if existing, ok := c.varKinds[name]; ok {
		if existing != k {
			return CompileError{Message: "variable " + strconv.Quote(name) + " was already defined as " + existing.String() + ", not " + k.String()}
		}
		return nil
	}
	c.varSlots[name] = c.allocSlot()
	c.varKinds[name] = k
	return nil
}

// Compile parses formula, runs it through the loader and evaluator
// generators, and eagerly executes the resulting load bytecode once
// against a fresh State — the CompiledTerm's one state handle for the
// rest of its lifetime, per spec.md §3 ("the result of its one-time
// load call") and the original's compile(), which calls fm_init
// inline rather than deferring it to instantiation.
func (c *Context) Compile(formula string) (*CompiledTerm, error) {
	term, err := ParseFormula(formula)
	if err != nil {
		return nil, err
	}

	slotBase := c.nextSlot
	ld := newLoader(c)
	loaded, err := ld.load(term)
	if err != nil {
		return nil, err
	}

	eg := newEvalGen()
	if err := eg.generate(loaded); err != nil {
		return nil, err
	}

	p := newProgram()
	p.load.code = ld.code
	p.eval.code = eg.code

	p, err = Assemble(p)
	if err != nil {
		return nil, err
	}

	ct := &CompiledTerm{ctx: c, program: p}

	reserved := int64(c.cfg.GetInt("runtime.reserved_slots"))
	st := newState(reserved)
	// st.next must start where the loader's slot predictions started
	// (slotBase, captured before ld.load ran), not where the Context's
	// counter has ended up after — every variable and literal this
	// formula touched has already advanced c.nextSlot past it.
	st.next = slotBase

	if err := ct.runLoad(st); err != nil {
		return nil, err
	}
	ct.state = st
	return ct, nil
}

// CompiledTerm is one formula's assembled bytecode plus the state
// produced by running its load pass once at Compile time. Every
// Instance this CompiledTerm creates shares that one state, so a
// Variable bound through one Instance is visible to every other
// Instance from the same CompiledTerm — Instantiate is consequently
// cheap, exactly as spec.md §3 describes. Per spec.md §7, a
// CompiledTerm that has trapped once during Compile or Run is
// considered closed and rejects further calls with ErrClosed.
type CompiledTerm struct {
	ctx     *Context
	program *Program
	state   *State
	trapped bool
}

// runLoad executes prog's load function against st, converting any
// trap into an error instead of letting Compile itself panic.
func (ct *CompiledTerm) runLoad(st *State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = trapToError(r)
		}
	}()
	ct.ctx.rt.run(ct.program.load, st)
	return nil
}

// Disassemble renders this term's assembled bytecode as readable
// mnemonic text, for the CLI's -disasm flag and for tests asserting
// on emitted instruction shape.
func (ct *CompiledTerm) Disassemble() string {
	return ct.program.Disassemble()
}

// Instantiate returns a new Instance sharing this CompiledTerm's one
// State. It performs no VM work of its own — the load pass already
// ran once, at Compile time — so repeated Instantiate calls are cheap
// and every Instance they produce observes the same Variable bindings.
func (ct *CompiledTerm) Instantiate() (*Instance, error) {
	if ct.trapped {
		return nil, ErrClosed
	}
	return &Instance{compiled: ct}, nil
}

// Instance is one handle onto a CompiledTerm's shared State, ready to
// be Run repeatedly as its bound Variables change.
type Instance struct {
	compiled *CompiledTerm
}

// GetVariable looks up name in the owning Context's variable registry
// and returns a Variable handle bound to this Instance's (shared)
// State, per spec.md §3/§6's InstantiatedTerm::get_variable. It fails
// if name was never passed to Context.DefineVar.
func (inst *Instance) GetVariable(name string) (*Variable, error) {
	if inst.compiled.trapped {
		return nil, ErrClosed
	}
	slot, ok := inst.compiled.ctx.varSlots[name]
	if !ok {
		return nil, CompileError{Message: "variable " + strconv.Quote(name) + " was never defined via Context.DefineVar"}
	}
	return &Variable{
		name:  name,
		slot:  slot,
		kind:  inst.compiled.ctx.varKinds[name],
		state: inst.compiled.state,
	}, nil
}

// Run executes the eval pass against the instance's current variable
// bindings and returns the formula's boolean result. A trap (an
// invalid regex pattern, an out-of-range slot) is recovered here and
// reported as an EvalError; the owning CompiledTerm is then closed.
func (inst *Instance) Run() (result bool, err error) {
	if inst.compiled.trapped {
		return false, ErrClosed
	}
	defer func() {
		if r := recover(); r != nil {
			inst.compiled.trapped = true
			err = trapToError(r)
		}
	}()
	v := inst.compiled.ctx.rt.run(inst.compiled.program.eval, inst.compiled.state)
	return v != 0, nil
}

// Variable is a named, typed handle a caller uses to change a bound
// value before the next Run, without recompiling or re-instantiating.
// Every Variable GetVariable returns for a given name and CompiledTerm
// writes through to that CompiledTerm's single shared State, so a
// mutation made through one Instance's Variable is visible to every
// other Instance of the same CompiledTerm.
type Variable struct {
	name  string
	slot  int64
	kind  Kind
	state *State
}

func (v *Variable) checkKind(k Kind) error {
	if v.kind != k {
		return EvalError{Message: "variable " + strconv.Quote(v.name) + " was defined as " + v.kind.String() + ", not " + k.String()}
	}
	return nil
}

// SetInt sets an int-kinded variable's value.
func (v *Variable) SetInt(val int64) error {
	if err := v.checkKind(KindInt); err != nil {
		return err
	}
	*v.state.slot(v.slot) = i64Value(val)
	return nil
}

// SetFloat sets a float-kinded variable's value.
func (v *Variable) SetFloat(val float64) error {
	if err := v.checkKind(KindFloat); err != nil {
		return err
	}
	*v.state.slot(v.slot) = f64Value(val)
	return nil
}

// SetString sets a string-kinded variable's value.
func (v *Variable) SetString(val string) error {
	if err := v.checkKind(KindString); err != nil {
		return err
	}
	*v.state.slot(v.slot) = stringValue(val)
	return nil
}

// SetRegex sets a regex-kinded variable's pattern. The pattern is
// compiled lazily on first match, so a malformed pattern only traps
// when an Eq actually exercises it.
func (v *Variable) SetRegex(pattern string) error {
	if err := v.checkKind(KindRegex); err != nil {
		return err
	}
	*v.state.slot(v.slot) = regexValue(pattern)
	return nil
}

// trapToError converts a recovered panic into an error value. Traps
// raised deliberately by this package are already EvalError/CompileError;
// anything else (a slice-index panic, say) is wrapped so Compile/Run
// never lets a raw panic value escape as an error.
func trapToError(r any) error {
	switch e := r.(type) {
	case EvalError:
		return e
	case CompileError:
		return e
	case error:
		return EvalError{Message: e.Error()}
	default:
		return EvalError{Message: "unexpected VM trap"}
	}
}
