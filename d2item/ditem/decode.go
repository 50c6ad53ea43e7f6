package ditem

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/dprop"
	"github.com/thanhnguyen2187/horadric/d2item/drarity"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
	"github.com/thanhnguyen2187/horadric/ds"
)

type bitField struct {
	bits   int
	target any
}

// readFields reads consecutive bit fields; a nil target skips the bits.
func readFields(reader *lbits.Reader, fields []bitField) error {
	for _, field := range fields {
		value, err := reader.ReadBits(field.bits)
		if err != nil {
			return err
		}
		switch target := field.target.(type) {
		case nil:
		case *bool:
			*target = value == 1
		case *uint8:
			*target = uint8(value)
		case *uint16:
			*target = uint16(value)
		case *uint32:
			*target = uint32(value)
		case *int:
			*target = int(value)
		default:
			return ds.ErrUnreachableCode{Caller: "ditem.readFields", Value: field.target}
		}
	}
	return nil
}

func readName(reader *lbits.Reader) (string, error) {
	offset := reader.Position()
	bs := make([]byte, 0, MaxNameLength)
	for {
		c, err := reader.ReadBits(NameCharBits)
		if err != nil {
			return "", err
		}
		if c == 0 {
			return string(bs), nil
		}
		if len(bs) == MaxNameLength {
			return "", derr.Newf(derr.KindInvalidStringLength, offset, "name is longer than %d characters", MaxNameLength)
		}
		bs = append(bs, byte(c))
	}
}

func decodeHeader(reader *lbits.Reader) (*Item, error) {
	if err := reader.ExpectBytes(MagicBytes, "item header"); err != nil {
		return nil, err
	}

	item := Item{}
	fields := []bitField{
		{4, nil},
		{1, &item.Identified},
		{6, nil},
		{1, &item.Socketed},
		{1, nil},
		{1, &item.New},
		{2, nil},
		{1, &item.Ear},
		{1, &item.Starter},
		{3, nil},
		{1, &item.Simple},
		{1, &item.Ethereal},
		{1, nil},
		{1, &item.Personalized},
		{1, nil},
		{1, &item.Runeword},
		{15, nil},
		{3, &item.Location},
		{4, &item.Equipped},
		{4, &item.X},
		{4, &item.Y},
		{3, &item.Panel},
	}
	if err := readFields(reader, fields); err != nil {
		return nil, err
	}
	return &item, nil
}

func decodeEar(reader *lbits.Reader) (*Ear, error) {
	ear := Ear{}
	fields := []bitField{
		{EarClassBits, &ear.Class},
		{EarLevelBits, &ear.Level},
	}
	if err := readFields(reader, fields); err != nil {
		return nil, err
	}
	name, err := readName(reader)
	if err != nil {
		return nil, err
	}
	ear.Name = name
	return &ear, nil
}

func decodePropertyLists(reader *lbits.Reader, registry *dregistry.Registry, item Item, extended *Extended) error {
	var err error
	extended.MagicProperties, err = dprop.DecodeList(reader, registry)
	if err != nil {
		return errors.Wrap(err, "magic properties")
	}

	extended.SetBonusProperties = make([][]dprop.Property, 0)
	for i := 0; i < SetBonusBits; i++ {
		if extended.SetBonusMask&(1<<i) == 0 {
			continue
		}
		properties, err := dprop.DecodeList(reader, registry)
		if err != nil {
			return errors.Wrapf(err, "set bonus properties %d", i)
		}
		extended.SetBonusProperties = append(extended.SetBonusProperties, properties)
	}

	if item.Runeword {
		extended.RunewordProperties, err = dprop.DecodeList(reader, registry)
		if err != nil {
			return errors.Wrap(err, "runeword properties")
		}
	}
	return nil
}

func decodeExtended(reader *lbits.Reader, registry *dregistry.Registry, item Item, codeOffset int) (*Extended, error) {
	def, ok := registry.Item(item.Code)
	if !ok {
		return nil, derr.Newf(derr.KindUnknownItemCode, codeOffset, `code "%s" is not in the registry`, item.Code)
	}

	extended := Extended{}
	if err := readFields(reader, []bitField{{IDBits, &extended.ID}, {LevelBits, &extended.Level}}); err != nil {
		return nil, err
	}
	tag, err := drarity.ReadTag(reader)
	if err != nil {
		return nil, err
	}

	if err := readFields(reader, []bitField{{1, &extended.HasMultiplePictures}}); err != nil {
		return nil, err
	}
	if extended.HasMultiplePictures {
		if err := readFields(reader, []bitField{{PictureBits, &extended.PictureID}}); err != nil {
			return nil, err
		}
	}
	if err := readFields(reader, []bitField{{1, &extended.ClassSpecific}}); err != nil {
		return nil, err
	}
	if extended.ClassSpecific {
		if err := readFields(reader, []bitField{{AutoAffixBits, &extended.AutoAffixID}}); err != nil {
			return nil, err
		}
	}

	extended.Rarity, err = drarity.Decode(reader, tag)
	if err != nil {
		return nil, err
	}

	if item.Runeword {
		if err := readFields(reader, []bitField{{RunewordIDBits, &extended.RunewordID}, {RunewordPadBits, nil}}); err != nil {
			return nil, err
		}
	}
	if item.Personalized {
		extended.PersonalizedName, err = readName(reader)
		if err != nil {
			return nil, errors.Wrap(err, "personalized name")
		}
	}
	if lo.Contains(TomeCodes, item.Code) {
		if err := readFields(reader, []bitField{{TomeSuffixBits, &extended.TomeSuffix}}); err != nil {
			return nil, err
		}
	}

	hasRealmData := false
	if err := readFields(reader, []bitField{{1, &hasRealmData}}); err != nil {
		return nil, err
	}
	if hasRealmData {
		extended.RealmData = make([]uint32, RealmDataWords)
		for i := range extended.RealmData {
			if err := readFields(reader, []bitField{{32, &extended.RealmData[i]}}); err != nil {
				return nil, err
			}
		}
	}

	if def.Category == dregistry.CategoryArmor {
		if err := readFields(reader, []bitField{{DefenseBits, &extended.Defense}}); err != nil {
			return nil, err
		}
		extended.Defense -= DefenseBias
	}
	if def.Category == dregistry.CategoryArmor || def.Category == dregistry.CategoryWeapon {
		if err := readFields(reader, []bitField{{DurabilityBits, &extended.MaxDurability}}); err != nil {
			return nil, err
		}
		if extended.MaxDurability > 0 {
			fields := []bitField{{DurabilityBits, &extended.Durability}, {DurabilityPad, nil}}
			if err := readFields(reader, fields); err != nil {
				return nil, err
			}
		}
	}
	if def.Stackable {
		if err := readFields(reader, []bitField{{QuantityBits, &extended.Quantity}}); err != nil {
			return nil, err
		}
	}
	if item.Socketed {
		if err := readFields(reader, []bitField{{NumSocketsBits, &extended.NumSockets}}); err != nil {
			return nil, err
		}
	}
	if tag == drarity.TagSet {
		if err := readFields(reader, []bitField{{SetBonusBits, &extended.SetBonusMask}}); err != nil {
			return nil, err
		}
	}

	if err := decodePropertyLists(reader, registry, item, &extended); err != nil {
		return nil, err
	}

	return &extended, nil
}

// Decode reads one item record starting at a byte boundary, then every socketed item that
// follows it. The cursor is left at the byte after the last child.
func Decode(reader *lbits.Reader, registry *dregistry.Registry) (*Item, error) {
	return decode(reader, registry, 0)
}

func decode(reader *lbits.Reader, registry *dregistry.Registry, depth int) (*Item, error) {
	start := reader.Position()
	item, err := decodeHeader(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "ditem.Decode error at item starting at byte %d", start)
	}

	item.SocketedItems = make([]Item, 0)
	if item.Ear {
		item.EarData, err = decodeEar(reader)
		if err != nil {
			return nil, errors.Wrapf(err, "ditem.Decode error reading ear starting at byte %d", start)
		}
		reader.Align()
		return item, nil
	}

	codeOffset := reader.Position()
	code, err := reader.ReadChars(CodeChars, CodeCharBits)
	if err != nil {
		return nil, errors.Wrapf(err, "ditem.Decode error reading code of item starting at byte %d", start)
	}
	item.Code = strings.TrimRight(code, " \u0000")
	// simple items keep a single bit for the count, the bits up to the next byte are padding
	socketedBits := NumSocketedBits
	if item.Simple {
		socketedBits = SimpleCountBits
	}
	if err := readFields(reader, []bitField{{socketedBits, &item.NumSocketedItems}}); err != nil {
		return nil, errors.Wrapf(err, `ditem.Decode error reading "%s" starting at byte %d`, item.Code, start)
	}

	if !item.Simple {
		item.Extended, err = decodeExtended(reader, registry, *item, codeOffset)
		if err != nil {
			return nil, errors.Wrapf(err, `ditem.Decode error reading "%s" starting at byte %d`, item.Code, start)
		}
	}
	reader.Align()

	if item.NumSocketedItems > item.SocketCapacity() {
		return nil, derr.Newf(
			derr.KindInvalidSocketCount, reader.Position(),
			`"%s" starting at byte %d holds %d items in %d sockets`,
			item.Code, start, item.NumSocketedItems, item.SocketCapacity(),
		)
	}
	if item.NumSocketedItems > 0 && depth >= MaxNestingDepth {
		return nil, derr.Newf(
			derr.KindInvalidSocketCount, reader.Position(),
			`"%s" starting at byte %d is nested %d levels deep`, item.Code, start, depth,
		)
	}
	for i := 0; i < item.NumSocketedItems; i++ {
		child, err := decode(reader, registry, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, `ditem.Decode error reading socket %d of "%s"`, i+1, item.Code)
		}
		item.SocketedItems = append(item.SocketedItems, *child)
	}

	return item, nil
}

// DecodeList reads count items back to back; socketed items are not part of the count.
func DecodeList(reader *lbits.Reader, registry *dregistry.Registry, count int) ([]Item, error) {
	items := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		item, err := Decode(reader, registry)
		if err != nil {
			return nil, errors.Wrapf(err, "ditem.DecodeList error reading item %d of %d", i+1, count)
		}
		items = append(items, *item)
	}
	return items, nil
}

// DecodeSection reads the "JM" + item count framing shared by every container, then the items.
func DecodeSection(reader *lbits.Reader, registry *dregistry.Registry) ([]Item, error) {
	if err := reader.ExpectBytes(MagicBytes, "item list header"); err != nil {
		return nil, errors.Wrap(err, "ditem.DecodeSection error")
	}
	count, err := reader.ReadUint16()
	if err != nil {
		return nil, errors.Wrap(err, "ditem.DecodeSection error reading item count")
	}
	return DecodeList(reader, registry, int(count))
}
