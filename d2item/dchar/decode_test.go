package dchar

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/dfixture"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/drarity"
)

func classicCharacter() dfixture.Character {
	return dfixture.Character{
		Name:  "Akara",
		Class: 1,
		Level: 24,
		Stats: []dfixture.Stat{
			{ID: 0, Value: 45},
			{ID: 12, Value: 24},
			{ID: 14, Value: 12345},
		},
		Items: []dfixture.Item{
			dfixture.SimpleItem("hp1"),
			{Code: "cap", Rarity: drarity.Normal{}, Defense: 3, MaxDurability: 12, Durability: 12},
		},
		Corpses: [][]dfixture.Item{
			{dfixture.SimpleItem("tbk")},
		},
	}
}

func TestDecode_Classic(t *testing.T) {
	registry := dfixture.Registry()
	bs := dfixture.CharacterSave(registry, classicCharacter())

	save, err := Decode(bs, registry)
	require.NoError(t, err)

	assert.Equal(t, uint32(Version), save.Header.Version)
	assert.Equal(t, uint32(len(bs)), save.Header.FileSize)
	assert.Equal(t, "Akara", save.Header.Name)
	assert.Equal(t, uint8(1), save.Header.Class)
	assert.Equal(t, uint8(24), save.Header.Level)
	assert.False(t, save.Header.IsExpansion())
	assert.Equal(
		t,
		[]Stat{
			{ID: 0, Name: "strength", Value: 45},
			{ID: 12, Name: "level", Value: 24},
			{ID: 14, Name: "gold", Value: 12345},
		},
		save.Stats,
	)
	assert.Len(t, save.Inventory, 2)
	require.Len(t, save.Corpses, 1)
	assert.Len(t, save.Corpses[0].Unknown, CorpseUnknown)
	assert.Empty(t, save.MercItems)
	assert.Nil(t, save.Golem)

	assert.Equal(t, dkind.Character, save.Kind())
	placed := save.Items()
	assert.Equal(
		t,
		[]string{ditem.SectionCharacter, ditem.SectionCharacter, ditem.SectionCorpse},
		lo.Map(placed, func(p ditem.Placed, _ int) string { return p.Section }),
	)
	assert.Equal(
		t,
		[]string{"hp1", "cap", "tbk"},
		lo.Map(placed, func(p ditem.Placed, _ int) string { return p.Item.Code }),
	)
}

func TestDecode_ExpansionWithMercAndGolem(t *testing.T) {
	registry := dfixture.Registry()
	character := classicCharacter()
	character.Status = StatusExpansion
	character.MercID = 0x1234
	character.Corpses = nil
	character.MercItems = []dfixture.Item{
		{Code: "jav", Rarity: drarity.Unique{ID: 12}, Quantity: 80},
	}
	character.Golem = &dfixture.Item{Code: "rin", Rarity: drarity.Magic{Prefix: 1, Suffix: 2}}

	save, err := Decode(dfixture.CharacterSave(registry, character), registry)
	require.NoError(t, err)

	assert.True(t, save.Header.IsExpansion())
	assert.True(t, save.Header.HasMerc())
	assert.Equal(t, uint32(0x1234), save.Header.MercID)
	assert.Empty(t, save.Corpses)
	require.NotNil(t, save.Golem)

	placed := save.Items()
	assert.Equal(
		t,
		[]string{ditem.SectionCharacter, ditem.SectionCharacter, ditem.SectionMerc, ditem.SectionGolem},
		lo.Map(placed, func(p ditem.Placed, _ int) string { return p.Section }),
	)
	assert.Equal(t, "rin", placed[3].Item.Code)
	assert.True(t, lo.EveryBy(placed, func(p ditem.Placed) bool { return p.Page == 0 }))
}

func TestDecode_ExpansionWithoutMerc(t *testing.T) {
	registry := dfixture.Registry()
	character := classicCharacter()
	character.Status = StatusExpansion

	save, err := Decode(dfixture.CharacterSave(registry, character), registry)
	require.NoError(t, err)
	assert.False(t, save.Header.HasMerc())
	assert.Empty(t, save.MercItems)
	assert.Nil(t, save.Golem)
}

func TestDecode_Header(t *testing.T) {
	registry := dfixture.Registry()
	bs := dfixture.CharacterSave(registry, classicCharacter())

	badMagic := append([]byte{}, bs...)
	badMagic[0] = 0x00
	_, err := Decode(badMagic, registry)
	require.Error(t, err)
	assert.Equal(t, derr.KindInvalidHeader, derr.KindOf(err))
	assert.Equal(t, 0, derr.OffsetOf(err))

	badVersion := append([]byte{}, bs...)
	badVersion[4] = 0x59
	_, err = Decode(badVersion, registry)
	require.Error(t, err)
	assert.Equal(t, derr.KindUnsupportedVersion, derr.KindOf(err))
	assert.Equal(t, 4, derr.OffsetOf(err))

	_, err = Decode(bs[:HeaderSize-1], registry)
	require.Error(t, err)
	assert.Equal(t, derr.KindUnexpectedEndOfData, derr.KindOf(err))
	assert.Equal(t, HeaderSize-1, derr.OffsetOf(err))
}

func TestDecode_UnknownCharacterStat(t *testing.T) {
	registry := dfixture.Registry()
	character := classicCharacter()
	// stat 39 is an item stat without a character save width
	character.Stats = []dfixture.Stat{{ID: 39, Value: 1}}

	_, err := Decode(dfixture.CharacterSave(registry, character), registry)
	require.Error(t, err)
	assert.Equal(t, derr.KindUnknownStatID, derr.KindOf(err))
	assert.Equal(t, HeaderSize+len(StatsMagic), derr.OffsetOf(err))
}

func TestDecode_Truncated(t *testing.T) {
	registry := dfixture.Registry()
	character := classicCharacter()
	character.Status = StatusExpansion
	character.MercID = 1
	character.MercItems = []dfixture.Item{dfixture.SimpleItem("hp1")}
	bs := dfixture.CharacterSave(registry, character)

	for cut := 0; cut < len(bs); cut++ {
		_, err := Decode(bs[:cut], registry)
		require.Error(t, err, "cut at %d", cut)
		assert.Equal(t, derr.KindUnexpectedEndOfData, derr.KindOf(err), "cut at %d", cut)
		assert.Equal(t, cut, derr.OffsetOf(err), "cut at %d", cut)
	}
}
