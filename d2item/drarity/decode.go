package drarity

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

func ReadTag(reader *lbits.Reader) (Tag, error) {
	offset := reader.Position()
	raw, err := reader.ReadBits(TagBits)
	if err != nil {
		return 0, errors.Wrap(err, "drarity.ReadTag error")
	}
	tag := Tag(raw)
	if !tag.Valid() {
		return 0, derr.Newf(derr.KindUnrecognizedRarityTag, offset, "quality %d", raw)
	}
	return tag, nil
}

func readID[T uint8 | uint16](reader *lbits.Reader, bits int) (T, error) {
	raw, err := reader.ReadBits(bits)
	if err != nil {
		return 0, err
	}
	return T(raw), nil
}

func decodeNames(reader *lbits.Reader) (*Names, error) {
	names := Names{
		Prefixes: make([]uint16, 0, MaxAffixes),
		Suffixes: make([]uint16, 0, MaxAffixes),
	}
	var err error
	names.Name1, err = readID[uint8](reader, RareNameBits)
	if err != nil {
		return nil, err
	}
	names.Name2, err = readID[uint8](reader, RareNameBits)
	if err != nil {
		return nil, err
	}

	offset := reader.Position()
	for slot := 0; slot < RareAffixSlots; slot++ {
		present, err := reader.ReadBool()
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		affix, err := readID[uint16](reader, AffixBits)
		if err != nil {
			return nil, err
		}
		if slot%2 == 0 {
			names.Prefixes = append(names.Prefixes, affix)
		} else {
			names.Suffixes = append(names.Suffixes, affix)
		}
	}
	if len(names.Prefixes) > MaxAffixes || len(names.Suffixes) > MaxAffixes {
		return nil, derr.Newf(
			derr.KindInvalidAffixCount, offset,
			"%d prefixes and %d suffixes", len(names.Prefixes), len(names.Suffixes),
		)
	}

	return &names, nil
}

// Decode reads the payload selected by a tag obtained from ReadTag.
func Decode(reader *lbits.Reader, tag Tag) (Payload, error) {
	var (
		payload Payload
		err     error
	)
	switch tag {
	case TagNormal:
		payload = Normal{}
	case TagLowQuality:
		p := LowQuality{}
		p.ID, err = readID[uint8](reader, LowQualityBits)
		payload = p
	case TagSuperior:
		p := Superior{}
		p.ID, err = readID[uint8](reader, SuperiorBits)
		payload = p
	case TagMagic:
		p := Magic{}
		p.Prefix, err = readID[uint16](reader, AffixBits)
		if err == nil {
			p.Suffix, err = readID[uint16](reader, AffixBits)
		}
		payload = p
	case TagSet:
		p := Set{}
		p.ID, err = readID[uint16](reader, SetBits)
		payload = p
	case TagUnique:
		p := Unique{}
		p.ID, err = readID[uint16](reader, UniqueBits)
		payload = p
	case TagRare, TagCrafted:
		names, namesErr := decodeNames(reader)
		if namesErr != nil {
			err = namesErr
			break
		}
		if tag == TagRare {
			payload = Rare{*names}
		} else {
			payload = Crafted{*names}
		}
	default:
		return nil, derr.Newf(derr.KindUnrecognizedRarityTag, reader.Position(), "quality %d", int(tag))
	}
	if err != nil {
		err := errors.Wrapf(err, `drarity.Decode error reading %s payload`, tag)
		return nil, err
	}

	return payload, nil
}
