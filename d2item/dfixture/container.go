package dfixture

import (
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
)

type (
	Page struct {
		Flags uint32
		Name  string
		Items []Item
	}
	Stat struct {
		ID    uint16
		Value uint64
	}
	Character struct {
		Name      string
		Class     uint8
		Level     uint8
		Status    uint8
		MercID    uint32
		Stats     []Stat
		Items     []Item
		Corpses   [][]Item
		MercItems []Item
		Golem     *Item
	}
)

const (
	StatusExpansion = 0x20
)

func writePages(w *BitWriter, registry *dregistry.Registry, withFlags bool, pages []Page) {
	w.WriteUint32(uint32(len(pages)))
	for _, page := range pages {
		w.WriteBytes([]byte("ST"))
		if withFlags {
			w.WriteUint32(page.Flags)
		}
		w.WriteBytes(append([]byte(page.Name), 0))
		WriteSection(w, registry, page.Items)
	}
}

func PersonalStash(registry *dregistry.Registry, version string, pages ...Page) []byte {
	w := NewBitWriter()
	w.WriteBytes([]byte("CSTM" + version))
	w.WriteUint32(0)
	writePages(w, registry, version == "02", pages)
	return w.Bytes()
}

func SharedStash(registry *dregistry.Registry, version string, gold uint32, pages ...Page) []byte {
	w := NewBitWriter()
	w.WriteBytes([]byte("SSS\x00" + version))
	if version == "02" {
		w.WriteUint32(gold)
	}
	writePages(w, registry, version == "02", pages)
	return w.Bytes()
}

func ThirdPartyStash(registry *dregistry.Registry, items ...Item) []byte {
	w := NewBitWriter()
	w.WriteBytes([]byte("D2X"))
	w.WriteUint16(uint16(len(items)))
	w.WriteUint16(96)
	w.WriteUint32(0)
	for _, item := range items {
		EncodeItem(w, registry, item)
	}
	return w.Bytes()
}

func CharacterSave(registry *dregistry.Registry, character Character) []byte {
	w := NewBitWriter()
	w.WriteUint32(0xAA55AA55)
	w.WriteUint32(96)
	w.WriteUint32(0) // file size, patched below
	w.WriteUint32(0)
	w.WriteUint32(0)
	name := make([]byte, 16)
	copy(name, character.Name)
	w.WriteBytes(name)
	w.WriteUint8(character.Status)
	w.PadTo(40)
	w.WriteUint8(character.Class)
	w.PadTo(43)
	w.WriteUint8(character.Level)
	w.PadTo(179)
	w.WriteUint32(character.MercID)
	w.PadTo(765)

	w.WriteBytes([]byte("gf"))
	for _, stat := range character.Stats {
		def, _ := registry.Stat(stat.ID)
		w.WriteBits(uint64(stat.ID), dregistry.StatIDBits)
		w.WriteBits(stat.Value, def.CharSaveBits)
	}
	w.WriteBits(dregistry.StatTerminator, dregistry.StatIDBits)
	w.WriteBytes([]byte("if"))
	w.WriteBytes(make([]byte, 30))

	WriteSection(w, registry, character.Items)
	w.WriteBytes([]byte("JM"))
	w.WriteUint16(uint16(len(character.Corpses)))
	for _, corpse := range character.Corpses {
		w.WriteBytes(make([]byte, 12))
		WriteSection(w, registry, corpse)
	}

	if character.Status&StatusExpansion != 0 {
		w.WriteBytes([]byte("jf"))
		if character.MercID != 0 {
			WriteSection(w, registry, character.MercItems)
		}
		w.WriteBytes([]byte("kf"))
		if character.Golem != nil {
			w.WriteUint8(1)
			EncodeItem(w, registry, *character.Golem)
		} else {
			w.WriteUint8(0)
		}
	}

	w.PutUint32At(8, uint32(w.Len()))
	return w.Bytes()
}
