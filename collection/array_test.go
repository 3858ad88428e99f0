package collection_test

import (
	"testing"

	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intVal(t *testing.T, n int64) value.Value {
	t.Helper()
	v, ok := value.FromInt(n)
	require.True(t, ok)
	return v
}

func Test_arrayPushAndGet(t *testing.T) {
	a := collection.NewArray()
	a.Push(intVal(t, 1))
	a.Push(intVal(t, 2))
	a.Push(intVal(t, 3))
	require.Equal(t, 3, a.Len())

	assert.Equal(t, intVal(t, 1), a.Get(0))
	assert.Equal(t, intVal(t, 3), a.Get(2))
}

func Test_arrayNegativeIndex(t *testing.T) {
	a := collection.FromSlice([]value.Value{intVal(t, 1), intVal(t, 2), intVal(t, 3)})
	assert.Equal(t, intVal(t, 3), a.Get(-1), "negative index normalized (S3)")
	assert.Equal(t, intVal(t, 1), a.Get(-3))
}

func Test_arrayOutOfRangeReadReturnsNil(t *testing.T) {
	a := collection.FromSlice([]value.Value{intVal(t, 1)})
	assert.Equal(t, value.Nil, a.Get(5))
	assert.Equal(t, value.Nil, a.Get(-5))
}

func Test_arraySetExtendsWithNil(t *testing.T) {
	a := collection.NewArray()
	require.NoError(t, a.Set(3, intVal(t, 9)))
	require.Equal(t, 4, a.Len())
	assert.Equal(t, value.Nil, a.Get(0))
	assert.Equal(t, value.Nil, a.Get(1))
	assert.Equal(t, value.Nil, a.Get(2))
	assert.Equal(t, intVal(t, 9), a.Get(3))
}

func Test_arraySetNegativeOutOfRangeErrors(t *testing.T) {
	a := collection.NewArray()
	err := a.Set(-1, intVal(t, 1))
	require.Error(t, err)
	var oob collection.IndexOutOfRangeError
	assert.ErrorAs(t, err, &oob)
}

func Test_arrayPopAndReverse(t *testing.T) {
	a := collection.FromSlice([]value.Value{intVal(t, 1), intVal(t, 2), intVal(t, 3)})
	assert.Equal(t, intVal(t, 3), a.Pop())
	require.Equal(t, 2, a.Len())

	a.Reverse()
	assert.Equal(t, []value.Value{intVal(t, 2), intVal(t, 1)}, a.Slice())
}

func Test_arrayEachStopsEarly(t *testing.T) {
	a := collection.FromSlice([]value.Value{intVal(t, 1), intVal(t, 2), intVal(t, 3)})
	var seen []int64
	a.Each(func(i int, v value.Value) bool {
		n, _ := v.Int()
		seen = append(seen, n)
		return n != 2
	})
	assert.Equal(t, []int64{1, 2}, seen)
}
