package wormula

import "fmt"

// ParsingError is returned by Parse when the input doesn't match the
// formula grammar. Pos is a rune offset into the source, matching
// spec.md §4.1's "structured error indicating the position of the
// mismatch" — parse failures are values, never panics.
type ParsingError struct {
	Message string
	Pos     int
}

func (e ParsingError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Message, e.Pos)
}

// CompileError is returned by Context.Compile. It covers both kinds
// of compile-time failure spec.md §7 lists as recoverable: an
// unsupported operator reaching the evaluator generator, and a
// Variable that was never registered with DefineVar.
type CompileError struct {
	Message string
}

func (e CompileError) Error() string { return e.Message }

// EvalError wraps a runtime trap (slot out of range, regex compile
// failure) recovered at the Instance/CompiledTerm boundary. Per
// spec.md §7, a CompiledTerm is considered unusable after a trap;
// ErrClosed is returned by any subsequent call against it.
type EvalError struct {
	Message string
}

func (e EvalError) Error() string { return e.Message }

// ErrClosed is returned by Instantiate/Run against a CompiledTerm
// that already trapped once.
var ErrClosed = CompileError{Message: "compiled term is closed after a prior evaluation trap"}
