package ds

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkedHashMap_Keys(t *testing.T) {
	lhm := NewLinkedHashMap[string, int]()

	assert.Empty(t, lhm.Keys())

	lhm.Put("b.d2s", 1)
	lhm.Put("a.sss", 2)
	lhm.Put("b.d2s", 3)

	assert.Equal(t, []string{"b.d2s", "a.sss"}, lhm.Keys())
	assert.Equal(t, 2, lhm.Len())

	value, ok := lhm.Get("b.d2s")
	assert.True(t, ok)
	assert.Equal(t, 3, value)
	_, ok = lhm.Get("c.d2x")
	assert.False(t, ok)
}

func TestLinkedHashMap_MarshalJSON(t *testing.T) {
	lhm := NewLinkedHashMap[string, any]()
	lhm.Put("def", 1)
	lhm.Put("abc", []string{"tbk"})

	bs, err := json.Marshal(lhm)
	require.NoError(t, err)
	assert.Equal(t, `{"def":1,"abc":["tbk"]}`, string(bs))

	bs, err = json.Marshal(NewLinkedHashMap[string, int]())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(bs))
}

func TestDumpJSON(t *testing.T) {
	assert.Equal(t, `{"code":"tbk"}`, DumpJSON(map[string]string{"code": "tbk"}))
	assert.Contains(t, DumpJSON(make(chan int)), "DumpJSON error")
}
