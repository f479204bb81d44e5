package wormula

// This file is the single source of truth for the VM's fixed ABI
// layout — spec.md §4.6 and §9 both call for one place, not two
// generators independently agreeing on the same magic numbers.

// Import function indices, in the fixed order spec.md §4.5 lists.
// Every generated module imports exactly these, in exactly this
// order, before its own `load`/`eval`/`cleanup` bodies.
const (
	funcMakeState = iota
	funcFreeState
	funcMakeI64
	funcMakeF64
	funcRtlEq
	funcRtlGetBool
	funcRtlAnd
	funcRtlOr
	funcRtlNot
	funcAllocString
	funcGetStringBuf
	funcMakeString
	funcMakeRegex

	// numImports is the count of the fixed import table above;
	// exported functions are indexed starting here.
	numImports
)

// Exported entry point indices, fixed per spec.md §4.6.
const (
	funcLoad    = numImports + iota // 13
	funcEval                        // 14
	funcCleanup                     // 15
)

// Local slot indices shared by the load and eval function bodies, per
// the four(+one)-local layout in spec.md §4.3. Both generators must
// agree on these; that agreement lives here, not in either generator.
// The present load and eval bodies emit no local.get/local.set at all:
// newProgram uses this layout only to size each body's locals.
const (
	localState      = iota // pointer-shaped handle to the active *State
	localResult             // scratch i64 result of the last runtime call
	localMemBufPtr          // scratch i32 arena offset
	localStringHandle      // scratch i32/i64 handle to a just-built string/regex slot
	localVarResult          // scratch i64, reserved for ABI-layout fidelity; unused by the present bodies
)
