package invoke_test

import (
	"testing"

	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_frameLocalGetSet(t *testing.T) {
	f := &invoke.Frame{Locals: []value.Value{value.Nil, value.Nil}}
	f.SetLocal(1, mustInt(t, 42))
	assert.Equal(t, mustInt(t, 42), f.GetLocal(1))
	assert.Equal(t, value.Nil, f.GetLocal(0))
}

func Test_frameLocalOutOfRangeIsNil(t *testing.T) {
	f := &invoke.Frame{Locals: []value.Value{value.Nil}}
	assert.Equal(t, value.Nil, f.GetLocal(5))
}

func Test_frameUpvalueWalksDefinitionContextChain(t *testing.T) {
	outer := &invoke.Frame{Locals: []value.Value{mustInt(t, 7)}}
	inner := &invoke.Frame{Locals: []value.Value{value.Nil}, DefinitionContext: outer}

	v, err := inner.GetUpvalue(invoke.UpvalueRef{Level: 1, Index: 0})
	require.NoError(t, err)
	assert.Equal(t, mustInt(t, 7), v)
}

func Test_frameUpvalueSetPropagates(t *testing.T) {
	outer := &invoke.Frame{Locals: []value.Value{value.Nil}}
	inner := &invoke.Frame{Locals: []value.Value{}, DefinitionContext: outer}

	require.NoError(t, inner.SetUpvalue(invoke.UpvalueRef{Level: 1, Index: 0}, mustInt(t, 3)))
	assert.Equal(t, mustInt(t, 3), outer.GetLocal(0))
}

func Test_frameUpvalueBeyondChainErrors(t *testing.T) {
	f := &invoke.Frame{Locals: []value.Value{}}
	_, err := f.GetUpvalue(invoke.UpvalueRef{Level: 1, Index: 0})
	require.Error(t, err)
	var undef invoke.UpvalueUndefinedError
	assert.ErrorAs(t, err, &undef)
}

func Test_frameHandlerStack(t *testing.T) {
	f := &invoke.Frame{}
	f.PushHandler(invoke.Handler{LocalsDepth: 1})
	f.PushHandler(invoke.Handler{LocalsDepth: 2})

	h, ok := f.PopHandler()
	require.True(t, ok)
	assert.Equal(t, 2, h.LocalsDepth)
	assert.Len(t, f.Handlers(), 1)

	h, ok = f.PopHandler()
	require.True(t, ok)
	assert.Equal(t, 1, h.LocalsDepth)

	_, ok = f.PopHandler()
	assert.False(t, ok)
}
