package datma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/dfixture"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/drarity"
)

func TestDecode(t *testing.T) {
	registry := dfixture.Registry()
	bs := dfixture.ThirdPartyStash(
		registry,
		dfixture.SimpleItem("gcv"),
		dfixture.Item{
			Socketed:      true,
			Code:          "lrg",
			Rarity:        drarity.Normal{},
			Defense:       20,
			NumSockets:    3,
			SocketedItems: []dfixture.Item{dfixture.SimpleItem("r01")},
		},
	)

	stash, err := Decode(bs, registry)
	require.NoError(t, err)
	assert.Equal(t, Header{NumItems: 2, Version: Version}, stash.Header)
	assert.Equal(t, dkind.ThirdPartyStash, stash.Kind())

	placed := stash.Items()
	require.Len(t, placed, 2)
	for _, p := range placed {
		assert.Equal(t, ditem.SectionStash, p.Section)
		assert.Equal(t, 0, p.Page)
	}
	assert.Equal(t, "gcv", placed[0].Item.Code)
	assert.Len(t, placed[1].Item.SocketedItems, 1)
}

func TestDecode_UnsupportedVersion(t *testing.T) {
	registry := dfixture.Registry()
	bs := dfixture.ThirdPartyStash(registry)
	bs[5] = 87

	_, err := Decode(bs, registry)
	require.Error(t, err)
	assert.Equal(t, derr.KindUnsupportedVersion, derr.KindOf(err))
	assert.Equal(t, 5, derr.OffsetOf(err))
}

func TestDecode_Truncated(t *testing.T) {
	registry := dfixture.Registry()
	bs := dfixture.ThirdPartyStash(registry, dfixture.SimpleItem("hp1"), dfixture.SimpleItem("tbk"))

	for cut := 0; cut < len(bs); cut++ {
		_, err := Decode(bs[:cut], registry)
		require.Error(t, err, "cut at %d", cut)
		assert.Equal(t, derr.KindUnexpectedEndOfData, derr.KindOf(err), "cut at %d", cut)
		assert.Equal(t, cut, derr.OffsetOf(err), "cut at %d", cut)
	}
}
