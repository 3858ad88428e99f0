package compiler_test

import (
	"testing"

	"github.com/jcorbin/snow/value"
	"github.com/jcorbin/snow/vm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVM(t *testing.T) *vm.VM {
	t.Helper()
	v := vm.New()
	require.NoError(t, v.Init())
	return v
}

func intVal(t *testing.T, n int64) value.Value {
	t.Helper()
	v, ok := value.FromInt(n)
	require.True(t, ok)
	return v
}

func Test_arithmetic(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("3 + 4")
	require.NoError(t, err)
	n, ok := result.Int()
	require.True(t, ok)
	assert.EqualValues(t, 7, n)
}

func Test_operatorPrecedence(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("2 + 3 * 4")
	require.NoError(t, err)
	n, _ := result.Int()
	assert.EqualValues(t, 14, n)
}

func Test_closureCapturesAndMutatesUpvalue(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("x = 10; f = { x = x + 1; x }; f(); f()")
	require.NoError(t, err)
	n, ok := result.Int()
	require.True(t, ok)
	assert.EqualValues(t, 12, n)
}

func Test_namedArguments(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("f = |a, b| a - b; f(b: 2, a: 10)")
	require.NoError(t, err)
	n, _ := result.Int()
	assert.EqualValues(t, 8, n)
}

func Test_arrayLiteralPushAndGet(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("a = @(1, 2, 3); a.push(4); a.get(3)")
	require.NoError(t, err)
	n, _ := result.Int()
	assert.EqualValues(t, 4, n)
}

func Test_arrayIndexing(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("a = @(1, 2, 3); a[1]")
	require.NoError(t, err)
	n, _ := result.Int()
	assert.EqualValues(t, 2, n)
}

func Test_objectMemberGetSet(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("o = __make_object__(); o.x = 5; o.x")
	require.NoError(t, err)
	n, _ := result.Int()
	assert.EqualValues(t, 5, n)
}

func Test_objectMissingMemberIsNil(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("o = __make_object__(); o.y")
	require.NoError(t, err)
	assert.Equal(t, value.Nil, result)
}

func Test_fiberResumeYieldsToItsRealResumerAcrossNesting(t *testing.T) {
	// outer builds inner and resumes it; inner's first act is to resume
	// its caller argument right back — which must resolve to outer, not
	// to inner itself, even though inner is the fiber actually Running at
	// that moment. Then outer's own resume of inner completes the chain.
	v := newVM(t)
	outer, err := v.Eval(`
		outer = __make_fiber__(|caller, it| {
			inner = __make_fiber__(|caller2, it2| {
				x = caller2.resume(it2 + 1)
				x + 1
			})
			v = inner.resume(it)
			v + 10
		})
		outer
	`)
	require.NoError(t, err)

	r1, err := v.CallMethod(outer, "resume", intVal(t, 5))
	require.NoError(t, err)
	n1, ok := r1.Int()
	require.True(t, ok)
	assert.EqualValues(t, 6, n1)

	r2, err := v.CallMethod(outer, "resume", intVal(t, 100))
	require.NoError(t, err)
	n2, ok := r2.Int()
	require.True(t, ok)
	assert.EqualValues(t, 111, n2)
}

func Test_tryCatchCatchesRaisedValue(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("try { __raise__(42) } catch (e) { e }")
	require.NoError(t, err)
	n, ok := result.Int()
	require.True(t, ok)
	assert.EqualValues(t, 42, n)
}

func Test_tryCatchBodyResultWhenNoRaise(t *testing.T) {
	v := newVM(t)
	result, err := v.Eval("try { 1 + 1 } catch (e) { e }")
	require.NoError(t, err)
	n, _ := result.Int()
	assert.EqualValues(t, 2, n)
}

func Test_compileErrorOnUnexpectedToken(t *testing.T) {
	v := newVM(t)
	_, err := v.Eval("+")
	require.Error(t, err)
}
