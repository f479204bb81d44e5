package wormula

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateReservedSlotsHoldBooleanConstants(t *testing.T) {
	st := newState(reservedSlots)
	assert.Equal(t, int64(1), st.slots[st.trueSlot()].i64)
	assert.Equal(t, int64(0), st.slots[st.falseSlot()].i64)
}

func TestStateSlotGrowsOnDemand(t *testing.T) {
	st := newState(reservedSlots)
	idx := int64(len(st.slots) + 10)
	v := st.slot(idx)
	assert.Equal(t, kindUndefined, v.kind)
	assert.True(t, len(st.slots) > int(idx))
}

func TestStateSlotRejectsNegativeIndex(t *testing.T) {
	st := newState(reservedSlots)
	assert.Panics(t, func() {
		st.slot(-1)
	})
}

func TestAllocStringRoundTrips(t *testing.T) {
	st := newState(reservedSlots)
	offset := st.allocString(5)
	copy(st.arena[offset:offset+5], []byte("hello"))
	assert.Equal(t, "hello", st.stringAt(offset, 5))
}

func TestAllocSlotAssignsSequentially(t *testing.T) {
	st := newState(reservedSlots)
	st.next = reservedSlots
	a := st.allocSlot(i64Value(1))
	b := st.allocSlot(i64Value(2))
	assert.Equal(t, int64(reservedSlots), a)
	assert.Equal(t, int64(reservedSlots+1), b)
}

func TestPatternCachesCompileResult(t *testing.T) {
	st := newState(reservedSlots)
	v := regexValue("^foo")
	p1 := st.pattern(&v)
	p2 := st.pattern(&v)
	assert.Same(t, p1, p2)
	assert.NoError(t, p1.err)
}

func TestPatternCompileErrorIsCached(t *testing.T) {
	st := newState(reservedSlots)
	v := regexValue("(")
	p := st.pattern(&v)
	assert.Error(t, p.err)
}
