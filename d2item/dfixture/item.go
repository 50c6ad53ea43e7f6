package dfixture

import (
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/d2item/drarity"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
)

type (
	Property struct {
		StatID uint16
		Values []int64
	}
	Item struct {
		Identified   bool
		Socketed     bool
		New          bool
		Ear          bool
		Starter      bool
		Simple       bool
		Ethereal     bool
		Personalized bool
		Runeword     bool

		Location uint8
		Equipped uint8
		X        uint8
		Y        uint8
		Panel    uint8

		Code     string
		EarClass uint8
		EarLevel uint8
		EarName  string

		ID        uint32
		Level     uint8
		Quality   uint8
		Rarity    drarity.Payload
		PictureID *uint8
		AutoAffix *uint16

		RunewordID       uint16
		PersonalizedName string
		TomeSuffix       uint8
		RealmData        []uint32
		Defense          int
		MaxDurability    int
		Durability       int
		Quantity         int
		NumSockets       int
		SetBonusMask     uint8

		MagicProperties    []Property
		SetBonusProperties [][]Property
		RunewordProperties []Property

		SocketedItems []Item

		// NumSocketedItems overrides len(SocketedItems) in the header when set.
		NumSocketedItems *int
	}
)

func Ptr[T any](t T) *T {
	return &t
}

func SimpleItem(code string) Item {
	return Item{
		Identified: true,
		Simple:     true,
		Code:       code,
	}
}

func writeName(w *BitWriter, name string) {
	w.WriteChars(name, 7)
	w.WriteBits(0, 7)
}

func writeRarity(w *BitWriter, payload drarity.Payload) {
	writeNames := func(names drarity.Names) {
		w.WriteBits(uint64(names.Name1), 8)
		w.WriteBits(uint64(names.Name2), 8)
		for slot := 0; slot < drarity.RareAffixSlots; slot++ {
			affixes := names.Prefixes
			if slot%2 == 1 {
				affixes = names.Suffixes
			}
			if slot/2 < len(affixes) {
				w.WriteBool(true)
				w.WriteBits(uint64(affixes[slot/2]), 11)
			} else {
				w.WriteBool(false)
			}
		}
	}

	switch p := payload.(type) {
	case drarity.LowQuality:
		w.WriteBits(uint64(p.ID), 3)
	case drarity.Superior:
		w.WriteBits(uint64(p.ID), 3)
	case drarity.Magic:
		w.WriteBits(uint64(p.Prefix), 11)
		w.WriteBits(uint64(p.Suffix), 11)
	case drarity.Set:
		w.WriteBits(uint64(p.ID), 12)
	case drarity.Unique:
		w.WriteBits(uint64(p.ID), 12)
	case drarity.Rare:
		writeNames(p.Names)
	case drarity.Crafted:
		writeNames(p.Names)
	}
}

// WriteProperties writes a terminated list. Stats unknown to the registry are written as a bare
// identifier.
func WriteProperties(w *BitWriter, registry *dregistry.Registry, properties []Property) {
	for _, property := range properties {
		w.WriteBits(uint64(property.StatID), dregistry.StatIDBits)
		layout, ok := registry.StatLayout(property.StatID)
		if !ok {
			continue
		}
		for i, param := range layout.Params {
			w.WriteBits(uint64(property.Values[i]+param.Bias), param.Bits)
		}
	}
	w.WriteBits(dregistry.StatTerminator, dregistry.StatIDBits)
}

func (item Item) quality() uint8 {
	if item.Quality != 0 || item.Rarity == nil {
		return item.Quality
	}
	return uint8(item.Rarity.Tag())
}

func EncodeItem(w *BitWriter, registry *dregistry.Registry, item Item) {
	w.WriteBytes([]byte("JM"))
	w.WriteBits(0, 4).WriteBool(item.Identified).WriteBits(0, 6)
	w.WriteBool(item.Socketed).WriteBits(0, 1).WriteBool(item.New).WriteBits(0, 2)
	w.WriteBool(item.Ear).WriteBool(item.Starter).WriteBits(0, 3)
	w.WriteBool(item.Simple).WriteBool(item.Ethereal).WriteBits(0, 1)
	w.WriteBool(item.Personalized).WriteBits(0, 1).WriteBool(item.Runeword)
	w.WriteBits(101, 15)
	w.WriteBits(uint64(item.Location), 3).WriteBits(uint64(item.Equipped), 4)
	w.WriteBits(uint64(item.X), 4).WriteBits(uint64(item.Y), 4).WriteBits(uint64(item.Panel), 3)

	if item.Ear {
		w.WriteBits(uint64(item.EarClass), 3).WriteBits(uint64(item.EarLevel), 7)
		writeName(w, item.EarName)
		w.Align()
		return
	}

	code := item.Code
	for len(code) < 4 {
		code += " "
	}
	w.WriteChars(code, 8)
	numSocketed := len(item.SocketedItems)
	if item.NumSocketedItems != nil {
		numSocketed = *item.NumSocketedItems
	}
	if item.Simple {
		w.WriteBits(uint64(numSocketed), 1)
	} else {
		w.WriteBits(uint64(numSocketed), 3)
	}

	if !item.Simple {
		encodeExtended(w, registry, item)
	}
	w.Align()

	for _, child := range item.SocketedItems {
		EncodeItem(w, registry, child)
	}
}

func encodeExtended(w *BitWriter, registry *dregistry.Registry, item Item) {
	w.WriteBits(uint64(item.ID), 32).WriteBits(uint64(item.Level), 7).WriteBits(uint64(item.quality()), 4)
	w.WriteBool(item.PictureID != nil)
	if item.PictureID != nil {
		w.WriteBits(uint64(*item.PictureID), 3)
	}
	w.WriteBool(item.AutoAffix != nil)
	if item.AutoAffix != nil {
		w.WriteBits(uint64(*item.AutoAffix), 11)
	}
	writeRarity(w, item.Rarity)

	if item.Runeword {
		w.WriteBits(uint64(item.RunewordID), 12).WriteBits(5, 4)
	}
	if item.Personalized {
		writeName(w, item.PersonalizedName)
	}
	if lo.Contains([]string{"tbk", "ibk"}, item.Code) {
		w.WriteBits(uint64(item.TomeSuffix), 5)
	}
	w.WriteBool(len(item.RealmData) > 0)
	for _, word := range item.RealmData {
		w.WriteBits(uint64(word), 32)
	}

	if registry.IsArmor(item.Code) {
		w.WriteBits(uint64(item.Defense+10), 11)
	}
	if registry.IsArmor(item.Code) || registry.IsWeapon(item.Code) {
		w.WriteBits(uint64(item.MaxDurability), 8)
		if item.MaxDurability > 0 {
			w.WriteBits(uint64(item.Durability), 8).WriteBits(0, 1)
		}
	}
	if registry.IsStackable(item.Code) {
		w.WriteBits(uint64(item.Quantity), 9)
	}
	if item.Socketed {
		w.WriteBits(uint64(item.NumSockets), 4)
	}
	if item.quality() == uint8(drarity.TagSet) {
		w.WriteBits(uint64(item.SetBonusMask), 5)
	}

	WriteProperties(w, registry, item.MagicProperties)
	for _, properties := range item.SetBonusProperties {
		WriteProperties(w, registry, properties)
	}
	if item.Runeword {
		WriteProperties(w, registry, item.RunewordProperties)
	}
}

func EncodeItems(registry *dregistry.Registry, items ...Item) []byte {
	w := NewBitWriter()
	for _, item := range items {
		EncodeItem(w, registry, item)
	}
	return w.Bytes()
}

// WriteSection writes the "JM" + count framing followed by the items.
func WriteSection(w *BitWriter, registry *dregistry.Registry, items []Item) {
	w.WriteBytes([]byte("JM"))
	w.WriteUint16(uint16(len(items)))
	for _, item := range items {
		EncodeItem(w, registry, item)
	}
}
