package d2item

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/dfixture"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/drarity"
	"golang.org/x/sync/errgroup"
)

type EndToEndTestSuite struct {
	Registry *dregistry.Registry
	Files    map[dkind.Kind][]byte
	R        *require.Assertions
	suite.Suite
}

func (suite *EndToEndTestSuite) SetupSuite() {
	suite.R = suite.Require()

	tables := dfixture.Tables()
	registry, err := BuildRegistry(tables.Armors, tables.Weapons, tables.Miscs, tables.Stats)
	suite.R.NoError(err)
	suite.Registry = registry

	charm := dfixture.Item{
		Identified: true,
		Code:       "jew",
		Rarity:     drarity.Rare{Names: drarity.Names{Name1: 9, Name2: 10, Suffixes: []uint16{33}}},
		MagicProperties: []dfixture.Property{
			{StatID: 39, Values: []int64{15}},
		},
	}
	shield := dfixture.Item{
		Socketed:      true,
		Code:          "lrg",
		Rarity:        drarity.Superior{ID: 2},
		Defense:       18,
		MaxDurability: 40,
		Durability:    33,
		NumSockets:    2,
		SocketedItems: []dfixture.Item{dfixture.SimpleItem("gcv"), charm},
	}
	suite.Files = map[dkind.Kind][]byte{
		dkind.SingleItem: dfixture.EncodeItems(registry, shield),
		dkind.Character: dfixture.CharacterSave(
			registry,
			dfixture.Character{
				Name:      "Warriv",
				Status:    dfixture.StatusExpansion,
				MercID:    7,
				Stats:     []dfixture.Stat{{ID: 1, Value: 20}},
				Items:     []dfixture.Item{shield},
				Corpses:   [][]dfixture.Item{{dfixture.SimpleItem("hp1")}},
				MercItems: []dfixture.Item{charm},
			},
		),
		dkind.PersonalStash: dfixture.PersonalStash(
			registry, "02",
			dfixture.Page{},
			dfixture.Page{Items: []dfixture.Item{dfixture.SimpleItem("tbk")}},
		),
		dkind.SharedStash: dfixture.SharedStash(
			registry, "02", 100,
			dfixture.Page{Name: "shared", Items: []dfixture.Item{charm, shield}},
		),
		dkind.ThirdPartyStash: dfixture.ThirdPartyStash(registry, shield, charm),
	}
}

func (suite *EndToEndTestSuite) TestClassify() {
	for kind, bs := range suite.Files {
		suite.Equal(kind, ClassifyContainer(bs), kind.String())
	}
	suite.Equal(dkind.Unknown, ClassifyContainer([]byte("PK\x03\x04")))
	suite.Equal(dkind.Unknown, ClassifyContainer(nil))
}

func (suite *EndToEndTestSuite) TestDecode() {
	type expectation struct {
		sections []string
		pages    []int
	}
	expectations := map[dkind.Kind]expectation{
		dkind.SingleItem: {
			sections: []string{ditem.SectionItem},
			pages:    []int{0},
		},
		dkind.Character: {
			sections: []string{ditem.SectionCharacter, ditem.SectionCorpse, ditem.SectionMerc},
			pages:    []int{0, 0, 0},
		},
		dkind.PersonalStash: {
			sections: []string{ditem.SectionPage},
			pages:    []int{2},
		},
		dkind.SharedStash: {
			sections: []string{ditem.SectionPage, ditem.SectionPage},
			pages:    []int{1, 1},
		},
		dkind.ThirdPartyStash: {
			sections: []string{ditem.SectionStash, ditem.SectionStash},
			pages:    []int{0, 0},
		},
	}

	for kind, bs := range suite.Files {
		container, err := Decode(bs, suite.Registry)
		suite.R.NoError(err, kind.String())
		suite.Equal(kind, container.Kind())

		placed := container.Items()
		suite.Equal(expectations[kind].sections, lo.Map(placed, func(p ditem.Placed, _ int) string { return p.Section }))
		suite.Equal(expectations[kind].pages, lo.Map(placed, func(p ditem.Placed, _ int) int { return p.Page }))
	}
}

func (suite *EndToEndTestSuite) TestDecode_SocketedItemsStayNested() {
	container, err := DecodeSingleItem(suite.Files[dkind.SingleItem], suite.Registry)
	suite.R.NoError(err)

	shield := container.Item
	suite.Equal("lrg", shield.Code)
	suite.Equal(18, shield.Extended.Defense)
	suite.R.Len(shield.SocketedItems, 2)
	suite.Equal("gcv", shield.SocketedItems[0].Code)
	suite.Equal(drarity.TagRare, shield.SocketedItems[1].Extended.RarityTag())
	suite.Len(ditem.Flatten(lo.Map(container.Items(), func(p ditem.Placed, _ int) ditem.Item { return p.Item })), 3)
}

func (suite *EndToEndTestSuite) TestDecode_Truncated() {
	for kind, bs := range suite.Files {
		for cut := 0; cut < len(bs); cut++ {
			_, err := DecodeContainer(kind, bs[:cut], suite.Registry)
			suite.R.Error(err, "%s cut at %d", kind, cut)
			suite.Equal(derr.KindUnexpectedEndOfData, derr.KindOf(err), "%s cut at %d", kind, cut)
			suite.Equal(cut, derr.OffsetOf(err), "%s cut at %d", kind, cut)
		}
	}
}

func (suite *EndToEndTestSuite) TestDecode_Concurrent() {
	group := errgroup.Group{}
	group.SetLimit(8)
	for i := 0; i < 64; i++ {
		for _, bs := range suite.Files {
			group.Go(func() error {
				_, err := Decode(bs, suite.Registry)
				return err
			})
		}
	}
	suite.NoError(group.Wait())
}

func (suite *EndToEndTestSuite) TestDecodeContainer_Errors() {
	_, err := DecodeContainer(dkind.SingleItem, suite.Files[dkind.SingleItem], nil)
	suite.R.Error(err)
	suite.Equal(derr.KindRegistryNotInitialized, derr.KindOf(err))
	suite.Equal(0, derr.OffsetOf(err))

	_, err = DecodeSingleItem(suite.Files[dkind.SingleItem], nil)
	suite.Equal(derr.KindRegistryNotInitialized, derr.KindOf(err))

	_, err = DecodeContainer(dkind.Unknown, suite.Files[dkind.SingleItem], suite.Registry)
	suite.R.Error(err)
	suite.Equal(derr.KindUnrecognizedContainerKind, derr.KindOf(err))
	suite.Equal(0, derr.OffsetOf(err))

	_, err = Decode([]byte("PK\x03\x04"), suite.Registry)
	suite.Equal(derr.KindUnrecognizedContainerKind, derr.KindOf(err))

	_, err = DecodeContainer(dkind.ThirdPartyStash, suite.Files[dkind.SingleItem], suite.Registry)
	suite.Equal(derr.KindInvalidHeader, derr.KindOf(err))
}

func TestEndToEndTestSuite(t *testing.T) {
	suite.Run(t, new(EndToEndTestSuite))
}
