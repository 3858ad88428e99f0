package value_test

import (
	"testing"

	"github.com/jcorbin/snow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_tagRoundTrip(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		for _, n := range []int64{0, 1, -1, 42, value.MaxInt, value.MinInt} {
			v, ok := value.FromInt(n)
			require.True(t, ok, "expected %v to be encodable", n)
			got, ok := v.Int()
			require.True(t, ok, "expected %v to decode as an int", v)
			assert.Equal(t, n, got)
			assert.Equal(t, value.KindInt, v.Kind())
		}
	})

	t.Run("int out of range", func(t *testing.T) {
		_, ok := value.FromInt(value.MaxInt + 1)
		assert.False(t, ok)
		_, ok = value.FromInt(value.MinInt - 1)
		assert.False(t, ok)
	})

	t.Run("float", func(t *testing.T) {
		for _, f := range []float32{0, 1, -1, 3.5, -99.25} {
			v := value.FromFloat(f)
			got, ok := v.Float()
			require.True(t, ok)
			assert.Equal(t, f, got)
			assert.Equal(t, value.KindFloat, v.Kind())
		}
	})

	t.Run("symbol", func(t *testing.T) {
		for _, id := range []uint64{0, 1, 12345} {
			v := value.FromSymbol(id)
			got, ok := v.Symbol()
			require.True(t, ok)
			assert.Equal(t, id, got)
			assert.Equal(t, value.KindSymbol, v.Kind())
		}
	})
}

func Test_singletons(t *testing.T) {
	for _, tc := range []struct {
		name string
		v    value.Value
		kind value.Kind
	}{
		{"nil", value.Nil, value.KindNil},
		{"false", value.False, value.KindFalse},
		{"true", value.True, value.KindTrue},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.v.Kind())
			assert.True(t, value.Equal(tc.v, tc.v), "equal to itself")
		})
	}

	assert.NotEqual(t, value.Nil, value.False)
	assert.NotEqual(t, value.Nil, value.True)
	assert.NotEqual(t, value.False, value.True)
	assert.NotEqual(t, value.Undefined, value.Nil, "undefined must differ from nil")
}

func Test_truthy(t *testing.T) {
	assert.False(t, value.Nil.IsTruthy())
	assert.False(t, value.False.IsTruthy())
	assert.True(t, value.True.IsTruthy())
	one, _ := value.FromInt(1)
	assert.True(t, one.IsTruthy())
	zero, _ := value.FromInt(0)
	assert.True(t, zero.IsTruthy(), "0 is truthy; only nil/false are falsy")
}

func Test_undefinedIsDistinctFromNil(t *testing.T) {
	assert.True(t, value.Undefined.IsUndefined())
	assert.False(t, value.Nil.IsUndefined())
}
