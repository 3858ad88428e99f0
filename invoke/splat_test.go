package invoke_test

import (
	"testing"

	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/invoke"
	"github.com/jcorbin/snow/object"
	"github.com/jcorbin/snow/symbol"
	"github.com/jcorbin/snow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_splatArrayAppendsPositional(t *testing.T) {
	heap := &object.Heap{}
	arr := collection.FromSlice([]value.Value{mustInt(t, 1), mustInt(t, 2)})
	h, obj := heap.New()
	obj.SetNative(arr)

	args := &invoke.Arguments{Positional: []value.Value{mustInt(t, 0)}}
	require.NoError(t, invoke.ExpandSplat(heap, args, value.FromHandle(h)))
	assert.Equal(t, []value.Value{mustInt(t, 0), mustInt(t, 1), mustInt(t, 2)}, args.Positional)
}

func Test_splatMapSymbolKeysBecomeNamed(t *testing.T) {
	heap := &object.Heap{}
	var sym symbol.Table
	k := sym.Intern("k")

	m := collection.NewMap(collection.ArbitraryKey, collection.InsertionOrdered)
	require.NoError(t, m.Set(value.FromSymbol(uint64(k)), mustInt(t, 9)))
	h, obj := heap.New()
	obj.SetNative(m)

	args := &invoke.Arguments{}
	require.NoError(t, invoke.ExpandSplat(heap, args, value.FromHandle(h)))
	require.Len(t, args.Named, 1)
	assert.Equal(t, k, args.Named[0].Name)
	assert.Equal(t, mustInt(t, 9), args.Named[0].Value)
}

func Test_splatMapNonSymbolKeysBecomePositional(t *testing.T) {
	heap := &object.Heap{}
	m := collection.NewMap(collection.ArbitraryKey, collection.InsertionOrdered)
	require.NoError(t, m.Set(mustInt(t, 1), mustInt(t, 100)))
	h, obj := heap.New()
	obj.SetNative(m)

	args := &invoke.Arguments{}
	require.NoError(t, invoke.ExpandSplat(heap, args, value.FromHandle(h)))
	assert.Empty(t, args.Named)
	assert.Equal(t, []value.Value{mustInt(t, 1), mustInt(t, 100)}, args.Positional, "non-symbol key/value pair both kept, positionally")
}

func Test_splatArgumentsMergesBoth(t *testing.T) {
	heap := &object.Heap{}
	var sym symbol.Table
	n := sym.Intern("n")

	inner := &invoke.Arguments{
		Positional: []value.Value{mustInt(t, 1)},
		Named:      []invoke.NamedArg{{Name: n, Value: mustInt(t, 2)}},
	}
	h, obj := heap.New()
	obj.SetNative(inner)

	args := &invoke.Arguments{}
	require.NoError(t, invoke.ExpandSplat(heap, args, value.FromHandle(h)))
	assert.Equal(t, []value.Value{mustInt(t, 1)}, args.Positional)
	require.Len(t, args.Named, 1)
	assert.Equal(t, n, args.Named[0].Name)
}

func Test_splatNonSplattable(t *testing.T) {
	heap := &object.Heap{}
	args := &invoke.Arguments{}
	err := invoke.ExpandSplat(heap, args, mustInt(t, 5))
	require.Error(t, err)
	var ns invoke.NotSplattableError
	assert.ErrorAs(t, err, &ns)
}
