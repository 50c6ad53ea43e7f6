package dchar

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

// DecodeStats reads the bit packed attribute section. Value widths come from the CSvBits column
// of the stat table.
func DecodeStats(reader *lbits.Reader, registry *dregistry.Registry) ([]Stat, error) {
	if err := reader.ExpectBytes(StatsMagic, "stats header"); err != nil {
		return nil, err
	}

	stats := make([]Stat, 0)
	for {
		offset := reader.Position()
		id, err := reader.ReadBits(dregistry.StatIDBits)
		if err != nil {
			return nil, err
		}
		if id == dregistry.StatTerminator {
			break
		}
		def, ok := registry.Stat(uint16(id))
		if !ok || def.CharSaveBits == 0 {
			return nil, derr.Newf(derr.KindUnknownStatID, offset, "character stat %d is not in the registry", id)
		}
		value, err := reader.ReadBits(def.CharSaveBits)
		if err != nil {
			return nil, err
		}
		stats = append(
			stats,
			Stat{
				ID:    def.ID,
				Name:  def.Name,
				Value: value,
			},
		)
	}
	reader.Align()

	return stats, nil
}

func skipSkills(reader *lbits.Reader) error {
	if err := reader.ExpectBytes(SkillsMagic, "skills header"); err != nil {
		return err
	}
	return reader.Skip(SkillsSize * 8)
}

func decodeCorpses(reader *lbits.Reader, registry *dregistry.Registry) ([]Corpse, error) {
	if err := reader.ExpectBytes(ditem.MagicBytes, "corpse header"); err != nil {
		return nil, err
	}
	numCorpses, err := reader.ReadUint16()
	if err != nil {
		return nil, err
	}

	corpses := make([]Corpse, 0, numCorpses)
	for i := 0; i < int(numCorpses); i++ {
		corpse := Corpse{}
		corpse.Unknown, err = reader.ReadBytes(CorpseUnknown)
		if err != nil {
			return nil, err
		}
		corpse.Items, err = ditem.DecodeSection(reader, registry)
		if err != nil {
			return nil, errors.Wrapf(err, "corpse %d", i+1)
		}
		corpses = append(corpses, corpse)
	}
	return corpses, nil
}

func decodeGolem(reader *lbits.Reader, registry *dregistry.Registry) (*ditem.Item, error) {
	if err := reader.ExpectBytes(GolemMagic, "golem header"); err != nil {
		return nil, err
	}
	hasGolem, err := reader.ReadUint8()
	if err != nil {
		return nil, err
	}
	if hasGolem == 0 {
		return nil, nil
	}
	return ditem.Decode(reader, registry)
}

func Decode(bs []byte, registry *dregistry.Registry) (*Save, error) {
	reader := lbits.NewBitsReader(bs)
	save := Save{}

	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "dchar.Decode error reading header")
	}
	save.Header = *header

	save.Stats, err = DecodeStats(reader, registry)
	if err != nil {
		return nil, errors.Wrap(err, "dchar.Decode error reading stats")
	}
	if err := skipSkills(reader); err != nil {
		return nil, errors.Wrap(err, "dchar.Decode error reading skills")
	}

	save.Inventory, err = ditem.DecodeSection(reader, registry)
	if err != nil {
		return nil, errors.Wrap(err, "dchar.Decode error reading character items")
	}
	save.Corpses, err = decodeCorpses(reader, registry)
	if err != nil {
		return nil, errors.Wrap(err, "dchar.Decode error reading corpse items")
	}

	save.MercItems = make([]ditem.Item, 0)
	if !save.Header.IsExpansion() {
		return &save, nil
	}
	if err := reader.ExpectBytes(MercMagic, "mercenary header"); err != nil {
		return nil, errors.Wrap(err, "dchar.Decode error reading mercenary items")
	}
	if save.Header.HasMerc() {
		save.MercItems, err = ditem.DecodeSection(reader, registry)
		if err != nil {
			return nil, errors.Wrap(err, "dchar.Decode error reading mercenary items")
		}
	}
	save.Golem, err = decodeGolem(reader, registry)
	if err != nil {
		return nil, errors.Wrap(err, "dchar.Decode error reading golem item")
	}

	return &save, nil
}

func (r *Save) Kind() dkind.Kind {
	return dkind.Character
}

// Items lists worn and inventory items, then corpse items, then mercenary items and the golem.
func (r *Save) Items() []ditem.Placed {
	placed := ditem.Place(r.Inventory, ditem.SectionCharacter, 0)
	placed = append(
		placed,
		lo.FlatMap(
			r.Corpses,
			func(corpse Corpse, _ int) []ditem.Placed {
				return ditem.Place(corpse.Items, ditem.SectionCorpse, 0)
			},
		)...,
	)
	placed = append(placed, ditem.Place(r.MercItems, ditem.SectionMerc, 0)...)
	if r.Golem != nil {
		placed = append(placed, ditem.Place([]ditem.Item{*r.Golem}, ditem.SectionGolem, 0)...)
	}
	return placed
}
