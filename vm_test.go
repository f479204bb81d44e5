package wormula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVMRunsGeneratedLoadAndEval(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	require.NoError(t, ctx.DefineVar("x", KindFloat))

	term, err := ctx.Compile(`x == 3.0`)
	require.NoError(t, err)

	inst, err := term.Instantiate()
	require.NoError(t, err)

	v, err := inst.GetVariable("x")
	require.NoError(t, err)

	require.NoError(t, v.SetFloat(3.0))
	result, err := inst.Run()
	require.NoError(t, err)
	assert.True(t, result)

	require.NoError(t, v.SetFloat(4.0))
	result, err = inst.Run()
	require.NoError(t, err)
	assert.False(t, result)
}

func TestAssembleRejectsBadCallTarget(t *testing.T) {
	p := newProgram()
	p.eval.code = []Instruction{ICall{FuncIndex: 999}}

	_, err := Assemble(p)
	require.Error(t, err)
	assert.IsType(t, CompileError{}, err)
}

func TestDisassembleListsEveryFunction(t *testing.T) {
	ctx, err := NewContext()
	require.NoError(t, err)
	require.NoError(t, ctx.DefineVar("x", KindFloat))

	term, err := ctx.Compile(`x == 3.0`)
	require.NoError(t, err)

	out := term.Disassemble()
	assert.Contains(t, out, "func load")
	assert.Contains(t, out, "func eval")
	assert.Contains(t, out, "func cleanup")
	assert.Contains(t, out, "rtl_eq")
	assert.Contains(t, out, "rtl_get_bool")
}

func TestOperandStackUnderflowTraps(t *testing.T) {
	rt := NewRuntime()
	st := newState(reservedSlots)

	fn := funcBody{name: "eval", locals: 1, code: []Instruction{
		ICall{FuncIndex: funcRtlNot},
	}}

	assert.Panics(t, func() {
		rt.run(fn, st)
	})
}
