package wormula

import "fmt"

// Term is the abstract syntax tree produced by the parser and
// consumed by the code generators. It is a tagged variant: exactly
// one of the concrete types below satisfies it at a time.
type Term interface {
	// isTerm is unexported so only the types declared in this file
	// can implement Term.
	isTerm()
}

// Int is a numeric literal. The parser never produces Int directly —
// see parser.go — but it remains part of the AST vocabulary for
// programmatic construction.
type Int struct{ Value int64 }

// Float is a numeric literal. The parser routes every numeric
// literal, integer-looking or not, through Float.
type Float struct{ Value float64 }

// String is a quoted textual literal.
type String struct{ Value string }

// Regex is a `/pattern/` literal.
type Regex struct{ Value string }

// Ident is an unresolved identifier — a reference to a variable by
// name, later replaced with a LoadedTerm by the loader generator once
// its slot is known. Named Ident rather than Variable to avoid
// colliding with the host-facing Variable handle in context.go, which
// spec.md also calls "Variable" but is a distinct concept (a named,
// typed input a caller mutates between Run calls).
type Ident struct{ Name string }

// LoadedTerm is a placeholder that refers to an already-populated
// runtime value slot. It is produced exclusively by the loader
// generator (see loader_gen.go) and must never appear in a
// user-built AST or in the output of the parser.
type LoadedTerm struct{ Slot int64 }

// Not negates its operand.
type Not struct{ Inner Term }

// And, Or, Eq, Lt, Le, Gt, Ge are binary operators. Lt/Le/Gt/Ge are
// reserved for a future extension: the parser never produces them and
// the evaluator generator rejects them explicitly.
type (
	And struct{ Left, Right Term }
	Or  struct{ Left, Right Term }
	Eq  struct{ Left, Right Term }
	Lt  struct{ Left, Right Term }
	Le  struct{ Left, Right Term }
	Gt  struct{ Left, Right Term }
	Ge  struct{ Left, Right Term }
)

func (Int) isTerm()        {}
func (Float) isTerm()      {}
func (String) isTerm()     {}
func (Regex) isTerm()      {}
func (Ident) isTerm()      {}
func (LoadedTerm) isTerm() {}
func (Not) isTerm()        {}
func (And) isTerm()        {}
func (Or) isTerm()         {}
func (Eq) isTerm()         {}
func (Lt) isTerm()         {}
func (Le) isTerm()         {}
func (Gt) isTerm()         {}
func (Ge) isTerm()         {}

// String renders a Term back into formula syntax. It is used by
// tests to check the parse/print round-trip law, and is handy for
// error messages.
func (t Int) String() string      { return fmt.Sprintf("%d", t.Value) }
func (t Float) String() string    { return fmt.Sprintf("%g", t.Value) }
func (t String) String() string   { return fmt.Sprintf("%q", t.Value) }
func (t Regex) String() string    { return fmt.Sprintf("/%s/", t.Value) }
func (t Ident) String() string { return t.Name }
func (t LoadedTerm) String() string {
	return fmt.Sprintf("<loaded:%d>", t.Slot)
}
// Not around an Eq renders as "!=", the only syntax the parser produces
// a Not from; any other Not renders as "not X", which the grammar does
// not accept.
func (t Not) String() string {
	if eq, ok := t.Inner.(Eq); ok {
		return fmt.Sprintf("%s != %s", stringOf(eq.Left), stringOf(eq.Right))
	}
	return fmt.Sprintf("not %s", stringOf(t.Inner))
}
func (t And) String() string {
	return fmt.Sprintf("%s and %s", stringOf(t.Left), stringOf(t.Right))
}
func (t Or) String() string {
	return fmt.Sprintf("%s or %s", stringOf(t.Left), stringOf(t.Right))
}
func (t Eq) String() string {
	return fmt.Sprintf("%s == %s", stringOf(t.Left), stringOf(t.Right))
}
func (t Lt) String() string { return fmt.Sprintf("%s < %s", stringOf(t.Left), stringOf(t.Right)) }
func (t Le) String() string { return fmt.Sprintf("%s <= %s", stringOf(t.Left), stringOf(t.Right)) }
func (t Gt) String() string { return fmt.Sprintf("%s > %s", stringOf(t.Left), stringOf(t.Right)) }
func (t Ge) String() string { return fmt.Sprintf("%s >= %s", stringOf(t.Left), stringOf(t.Right)) }

// stringOf renders any Term, falling back to a generic representation
// for variants that don't implement fmt.Stringer (there are none
// today, but this keeps the helper total as the AST grows).
func stringOf(t Term) string {
	if s, ok := t.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%#v", t)
}

// arity checks: Not takes one operand, every other operator takes
// exactly two. This is enforced structurally by the Go types above —
// there is no way to construct an And with three operands — so no
// runtime arity check is needed. This comment exists because
// spec.md calls out "no arity drift" as an invariant worth stating
// explicitly: it holds by construction here, not by validation.
