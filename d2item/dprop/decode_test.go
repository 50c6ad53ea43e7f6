package dprop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/dfixture"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

func TestDecodeList(t *testing.T) {
	registry := dfixture.Registry()
	w := dfixture.NewBitWriter()
	dfixture.WriteProperties(
		w, registry,
		[]dfixture.Property{
			{StatID: 0, Values: []int64{-5}},
			{StatID: 17, Values: []int64{40, 35}},
			{StatID: 107, Values: []int64{149, 3}},
			{StatID: 204, Values: []int64{7, 54, 20, 30}},
		},
	)
	bs := w.Bytes()

	reader := lbits.NewBitsReader(bs)
	properties, err := DecodeList(reader, registry)
	require.NoError(t, err)
	assert.Equal(
		t,
		[]Property{
			{StatID: 0, Name: "strength", Params: []int64{-5}},
			{StatID: 17, Name: "item_maxdamage_percent", Params: []int64{40, 35}},
			{StatID: 107, Name: "item_singleskill", Params: []int64{149, 3}},
			{StatID: 204, Name: "item_charged_skill", Params: []int64{7, 54, 20, 30}},
		},
		properties,
	)
	// 9 + 8, 9 + 9 + 9, 9 + 9 + 3, 9 + 32, then the terminator
	assert.Equal(t, 17+27+21+41+9, reader.BitPosition())
}

func TestDecodeList_Empty(t *testing.T) {
	w := dfixture.NewBitWriter().WriteBits(dregistry.StatTerminator, dregistry.StatIDBits)
	reader := lbits.NewBitsReader(w.Bytes())

	properties, err := DecodeList(reader, dfixture.Registry())
	require.NoError(t, err)
	assert.Empty(t, properties)
	assert.Equal(t, dregistry.StatIDBits, reader.BitPosition())
}

func TestDecodeList_UnknownStat(t *testing.T) {
	registry := dfixture.Registry()
	w := dfixture.NewBitWriter()
	w.WriteBits(0, 3)
	dfixture.WriteProperties(
		w, registry,
		[]dfixture.Property{
			{StatID: 39, Values: []int64{30}},
			{StatID: 300},
		},
	)
	reader := lbits.NewBitsReader(w.Bytes())
	require.NoError(t, reader.Skip(3))

	_, err := DecodeList(reader, registry)
	require.Error(t, err)
	assert.Equal(t, derr.KindUnknownStatID, derr.KindOf(err))
	// the unknown id starts at bit 3 + 9 + 8 = 20
	assert.Equal(t, 2, derr.OffsetOf(err))
	assert.Equal(t, 29, reader.BitPosition())
}

func TestDecodeList_Truncated(t *testing.T) {
	registry := dfixture.Registry()
	w := dfixture.NewBitWriter()
	dfixture.WriteProperties(w, registry, []dfixture.Property{{StatID: 7, Values: []int64{100}}})
	bs := w.Bytes()

	_, err := DecodeList(lbits.NewBitsReader(bs[:2]), registry)
	require.Error(t, err)
	assert.Equal(t, derr.KindUnexpectedEndOfData, derr.KindOf(err))
	assert.Equal(t, 2, derr.OffsetOf(err))
}
