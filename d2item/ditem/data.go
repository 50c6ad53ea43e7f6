// Package ditem decodes single item records, recursing into socketed items.
package ditem

import (
	"encoding/json"

	"github.com/thanhnguyen2187/horadric/d2item/dprop"
	"github.com/thanhnguyen2187/horadric/d2item/drarity"
)

type (
	Item struct {
		Identified   bool `json:"identified"`
		Socketed     bool `json:"socketed"`
		New          bool `json:"new"`
		Ear          bool `json:"ear"`
		Starter      bool `json:"starter"`
		Simple       bool `json:"simple"`
		Ethereal     bool `json:"ethereal"`
		Personalized bool `json:"personalized"`
		Runeword     bool `json:"runeword"`

		Location uint8 `json:"location"`
		Equipped uint8 `json:"equipped"`
		X        uint8 `json:"x"`
		Y        uint8 `json:"y"`
		Panel    uint8 `json:"panel"`

		Code    string `json:"code,omitempty"`
		EarData *Ear   `json:"ear_data,omitempty"`

		// NumSocketedItems is the count of child records following this one in the stream.
		NumSocketedItems int       `json:"num_socketed_items"`
		Extended         *Extended `json:"extended,omitempty"`
		SocketedItems    []Item    `json:"socketed_items"`
	}
	Ear struct {
		Class uint8  `json:"class"`
		Level uint8  `json:"level"`
		Name  string `json:"name"`
	}
	Extended struct {
		ID                  uint32             `json:"id"`
		Level               uint8              `json:"level"`
		Rarity              drarity.Payload    `json:"-"`
		HasMultiplePictures bool               `json:"has_multiple_pictures"`
		PictureID           uint8              `json:"picture_id"`
		ClassSpecific       bool               `json:"class_specific"`
		AutoAffixID         uint16             `json:"auto_affix_id"`
		RunewordID          uint16             `json:"runeword_id"`
		PersonalizedName    string             `json:"personalized_name,omitempty"`
		TomeSuffix          uint8              `json:"tome_suffix"`
		RealmData           []uint32           `json:"realm_data,omitempty"`
		Defense             int                `json:"defense"`
		MaxDurability       int                `json:"max_durability"`
		Durability          int                `json:"durability"`
		Quantity            int                `json:"quantity"`
		NumSockets          int                `json:"num_sockets"`
		SetBonusMask        uint8              `json:"set_bonus_mask"`
		MagicProperties     []dprop.Property   `json:"magic_properties"`
		SetBonusProperties  [][]dprop.Property `json:"set_bonus_properties"`
		RunewordProperties  []dprop.Property   `json:"runeword_properties"`
	}
	// Placed is an item together with where it was found inside its container. Page is 1-based
	// for stash pages and 0 everywhere else.
	Placed struct {
		Section string `json:"section"`
		Page    int    `json:"page"`
		Item    Item   `json:"item"`
	}
)

const (
	SectionCharacter = "character"
	SectionCorpse    = "corpse"
	SectionMerc      = "merc"
	SectionGolem     = "golem"
	SectionPage      = "page"
	SectionStash     = "stash"
	SectionItem      = "item"
)

const (
	CodeChars       = 4
	CodeCharBits    = 8
	NameCharBits    = 7
	MaxNameLength   = 15
	NumSocketedBits = 3
	SimpleCountBits = 1
	IDBits          = 32
	LevelBits       = 7
	PictureBits     = 3
	AutoAffixBits   = 11
	RunewordIDBits  = 12
	RunewordPadBits = 4
	TomeSuffixBits  = 5
	RealmDataWords  = 3
	DefenseBits     = 11
	DefenseBias     = 10
	DurabilityBits  = 8
	DurabilityPad   = 1
	QuantityBits    = 9
	NumSocketsBits  = 4
	SetBonusBits    = 5
	EarClassBits    = 3
	EarLevelBits    = 7
	MaxNestingDepth = 3
)

var (
	MagicBytes = []byte("JM")
	TomeCodes  = []string{"tbk", "ibk"}
)

func (e Extended) RarityTag() drarity.Tag {
	if e.Rarity == nil {
		return 0
	}
	return e.Rarity.Tag()
}

func (e Extended) MarshalJSON() ([]byte, error) {
	type plain Extended
	return json.Marshal(
		struct {
			plain
			Rarity     drarity.Tag     `json:"rarity"`
			RarityData drarity.Payload `json:"rarity_data"`
		}{
			plain:      plain(e),
			Rarity:     e.RarityTag(),
			RarityData: e.Rarity,
		},
	)
}

// SocketCapacity is the number of children an item may carry. Simple items and ears have none.
func (r Item) SocketCapacity() int {
	if r.Extended == nil {
		return 0
	}
	return r.Extended.NumSockets
}
