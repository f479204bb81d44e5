package wormula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderAssignsStableVariableSlots(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	require.NoError(t, ctx.DefineVar("x", KindFloat))

	term, err := ParseFormula(`x == 3.0 and x == 4.0`)
	require.NoError(t, err)

	ld := newLoader(ctx)
	loaded, err := ld.load(term)
	require.NoError(t, err)

	and := loaded.(And)
	left := and.Left.(Eq).Left.(LoadedTerm)
	right := and.Right.(Eq).Left.(LoadedTerm)
	assert.Equal(t, left.Slot, right.Slot, "x should resolve to the same slot both times, since it's registered once on the Context")
	assert.Equal(t, int64(reservedSlots), left.Slot)
}

func TestLoaderRejectsNothingButBuildsLiteralBytecode(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	require.NoError(t, ctx.DefineVar("x", KindFloat))

	term, err := ParseFormula(`x == 3.0`)
	require.NoError(t, err)

	ld := newLoader(ctx)
	_, err = ld.load(term)
	require.NoError(t, err)
	assert.NotEmpty(t, ld.code)
}

func TestLoaderReusesContextSlotCounterAcrossFormulas(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	require.NoError(t, ctx.DefineVar("x", KindFloat))

	first, err := ParseFormula(`x == 3.0`)
	require.NoError(t, err)
	ld1 := newLoader(ctx)
	_, err = ld1.load(first)
	require.NoError(t, err)

	second, err := ParseFormula(`x == 4.0`)
	require.NoError(t, err)
	ld2 := newLoader(ctx)
	loaded2, err := ld2.load(second)
	require.NoError(t, err)

	// x keeps its slot from the first formula; the second formula's
	// literal should land past it, not reuse reservedSlots again.
	xSlot := loaded2.(Eq).Left.(LoadedTerm).Slot
	litSlot := loaded2.(Eq).Right.(LoadedTerm).Slot
	assert.Equal(t, int64(reservedSlots), xSlot)
	assert.Greater(t, litSlot, xSlot)
}

func TestLoaderLenientModeGivesUndefinedVariableItsOwnSlot(t *testing.T) {
	cfg := NewConfig()
	cfg.SetBool("compiler.strict_undefined_vars", false)
	ctx, err := NewContextWithConfig(cfg)
	require.NoError(t, err)

	term, err := ParseFormula(`x == 3.0`)
	require.NoError(t, err)

	ld := newLoader(ctx)
	loaded, err := ld.load(term)
	require.NoError(t, err)

	eq := loaded.(Eq)
	xSlot := eq.Left.(LoadedTerm).Slot
	_, definedOnContext := ctx.varSlots["x"]
	assert.False(t, definedOnContext, "a lenient-mode fallback slot must never be recorded on the Context")
	assert.NotEqual(t, eq.Right.(LoadedTerm).Slot, xSlot)
}

func TestEvalGenRejectsComparisonOperators(t *testing.T) {
	g := newEvalGen()
	err := g.generate(Ge{Left: LoadedTerm{Slot: reservedSlots}, Right: LoadedTerm{Slot: reservedSlots + 1}})
	require.Error(t, err)
	assert.IsType(t, CompileError{}, err)
}

func TestEvalGenRejectsUnloadedTerm(t *testing.T) {
	g := newEvalGen()
	err := g.generate(Ident{Name: "x"})
	require.Error(t, err)
}
