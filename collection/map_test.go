package collection_test

import (
	"testing"

	"github.com/jcorbin/snow/collection"
	"github.com/jcorbin/snow/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_mapGetSetDelete(t *testing.T) {
	for _, mode := range []collection.KeyMode{collection.ArbitraryKey, collection.ImmediateKey} {
		for _, order := range []collection.Order{collection.Hashed, collection.InsertionOrdered} {
			m := collection.NewMap(mode, order)
			k, v := intVal(t, 1), intVal(t, 100)
			require.NoError(t, m.Set(k, v))
			assert.True(t, m.Has(k))
			assert.Equal(t, v, m.Get(k))

			m.Delete(k)
			assert.False(t, m.Has(k))
			assert.Equal(t, value.Nil, m.Get(k))
		}
	}
}

func Test_mapOverwrite(t *testing.T) {
	m := collection.NewMap(collection.ArbitraryKey, collection.Hashed)
	k := intVal(t, 1)
	require.NoError(t, m.Set(k, intVal(t, 1)))
	require.NoError(t, m.Set(k, intVal(t, 2)))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, intVal(t, 2), m.Get(k))
}

func Test_mapMissingKeyReturnsNil(t *testing.T) {
	m := collection.NewMap(collection.ArbitraryKey, collection.Hashed)
	assert.Equal(t, value.Nil, m.Get(intVal(t, 42)))
}

func Test_mapImmediateKeyRejectsObjectKey(t *testing.T) {
	m := collection.NewMap(collection.ImmediateKey, collection.Hashed)
	objKey := value.FromHandle(value.Handle(16)) // 16-byte aligned fake handle
	err := m.Set(objKey, intVal(t, 1))
	require.Error(t, err)
	var nie collection.NotImmediateError
	assert.ErrorAs(t, err, &nie)
}

func Test_mapInsertionOrderPreserved(t *testing.T) {
	m := collection.NewMap(collection.ArbitraryKey, collection.InsertionOrdered)
	order := []int64{5, 1, 3, 2}
	for _, n := range order {
		require.NoError(t, m.Set(intVal(t, n), intVal(t, n*10)))
	}
	var got []int64
	m.Each(func(k, v value.Value) bool {
		n, _ := k.Int()
		got = append(got, n)
		return true
	})
	assert.Equal(t, order, got)
}

func Test_mapPairsForSplat(t *testing.T) {
	m := collection.NewMap(collection.ArbitraryKey, collection.InsertionOrdered)
	require.NoError(t, m.Set(intVal(t, 1), intVal(t, 10)))
	require.NoError(t, m.Set(intVal(t, 2), intVal(t, 20)))
	keys, vals := m.Pairs()
	assert.Equal(t, []value.Value{intVal(t, 1), intVal(t, 2)}, keys)
	assert.Equal(t, []value.Value{intVal(t, 10), intVal(t, 20)}, vals)
}
