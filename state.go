package wormula

import "regexp"

// compiledPattern caches a regexp.Regexp alongside the error from
// trying to compile it, so a bad pattern only traps the first time
// it's actually matched against, not merely constructed.
type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// reservedSlots mirrors the original's reserved_slots: every State
// carries this many well-known slots before user slots start, so the
// loader generator's variable/literal numbering never collides with
// the constant-boolean slots at the top of that range.
const reservedSlots = 1000

// State is one evaluation's typed slot table plus a scratch byte
// arena backing string and regex payloads. It is the runtime's
// in-process stand-in for a sandboxed VM's linear memory plus
// whatever side table the host functions use to track typed values —
// see SPEC_FULL.md §4.5.
type State struct {
	slots    []value
	arena    []byte
	next     int64
	reserved int64
}

// newState allocates a State whose reserved range is [0, reserved),
// with the boolean constants living at the top of that range
// (reserved-1 = true, reserved-2 = false) so they never collide with
// the loader generator's variable/literal numbering, which starts
// counting up from reserved. reserved overrides the package default
// (reservedSlots) when a Context's "runtime.reserved_slots" config
// value has been changed from NewConfig's default.
func newState(reserved int64) *State {
	s := &State{
		slots:    make([]value, reserved),
		next:     reserved,
		reserved: reserved,
	}
	*s.slot(s.trueSlot()) = i64Value(1)
	*s.slot(s.falseSlot()) = i64Value(0)
	return s
}

// trueSlot and falseSlot are this State's well-known constant slots,
// read by every rtl_and/rtl_or/rtl_not/rtl_eq call instead of
// allocating a fresh slot for a boolean result.
func (s *State) trueSlot() int64  { return s.reserved - 1 }
func (s *State) falseSlot() int64 { return s.reserved - 2 }

// boolSlot picks the well-known constant slot for b.
func (s *State) boolSlot(b bool) int64 {
	if b {
		return s.trueSlot()
	}
	return s.falseSlot()
}

// allocSlot reserves the next free slot past the well-known reserved
// range and stores v in it, returning the slot index — the runtime's
// equivalent of int_build_loader / make_i64 / make_string picking a
// fresh slot for a freshly materialized value.
func (s *State) allocSlot(v value) int64 {
	idx := s.next
	s.next++
	*s.slot(idx) = v
	return idx
}

// slot grows the slot table as needed and returns a pointer to the
// value at idx, panicking (a VM trap, recovered at the Instance
// boundary) if idx is negative.
func (s *State) slot(idx int64) *value {
	if idx < 0 {
		panic(EvalError{Message: "slot index out of range"})
	}
	if int(idx) >= len(s.slots) {
		grown := make([]value, idx+1)
		copy(grown, s.slots)
		s.slots = grown
	}
	return &s.slots[idx]
}

// allocString appends n zero bytes to the arena and returns the
// offset where they start — the analogue of alloc_string/get_string_buf
// from spec.md §4.5.
func (s *State) allocString(n int) int {
	offset := len(s.arena)
	s.arena = append(s.arena, make([]byte, n)...)
	return offset
}

// stringAt reads back n bytes written at offset by the loader pass.
func (s *State) stringAt(offset, n int) string {
	return string(s.arena[offset : offset+n])
}

// pattern lazily compiles and caches the regexp for a kindRegex slot.
func (s *State) pattern(v *value) *compiledPattern {
	if v.compiledRegex == nil {
		re, err := regexp.Compile(v.str)
		v.compiledRegex = &compiledPattern{re: re, err: err}
	}
	return v.compiledRegex
}
