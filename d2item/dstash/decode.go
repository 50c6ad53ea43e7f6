package dstash

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

func readVersion(reader *lbits.Reader) (string, error) {
	offset := reader.Position()
	version, err := reader.ReadString(VersionSize)
	if err != nil {
		return "", err
	}
	if version != VersionPlain && version != VersionFlags {
		return "", derr.Newf(derr.KindUnsupportedVersion, offset, `stash version "%s"`, version)
	}
	return version, nil
}

func DecodeHeader(reader *lbits.Reader, kind dkind.Kind) (*Header, error) {
	header := Header{Kind: kind}
	var err error
	switch kind {
	case dkind.PersonalStash:
		if err := reader.ExpectBytes(dkind.PersonalStashMagic, "personal stash header"); err != nil {
			return nil, err
		}
		header.Version, err = readVersion(reader)
		if err != nil {
			return nil, err
		}
		// unused, gold is only kept in the shared stash
		if err := reader.Skip(32); err != nil {
			return nil, err
		}
	case dkind.SharedStash:
		if err := reader.ExpectBytes(dkind.SharedStashMagic, "shared stash header"); err != nil {
			return nil, err
		}
		header.Version, err = readVersion(reader)
		if err != nil {
			return nil, err
		}
		if header.Version == VersionFlags {
			header.Gold, err = reader.ReadUint32()
			if err != nil {
				return nil, err
			}
		}
	default:
		return nil, derr.Newf(derr.KindUnrecognizedContainerKind, reader.Position(), "%s is not a stash", kind)
	}

	header.NumPages, err = reader.ReadUint32()
	if err != nil {
		return nil, err
	}
	return &header, nil
}

func DecodePage(reader *lbits.Reader, registry *dregistry.Registry, header Header) (*Page, error) {
	if err := reader.ExpectBytes(PageMagic, "page header"); err != nil {
		return nil, err
	}
	page := Page{}
	var err error
	if header.HasPageFlags() {
		page.Flags, err = reader.ReadUint32()
		if err != nil {
			return nil, err
		}
	}
	page.Name, err = reader.ReadCString(MaxPageName)
	if err != nil {
		return nil, err
	}
	page.Items, err = ditem.DecodeSection(reader, registry)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func Decode(bs []byte, kind dkind.Kind, registry *dregistry.Registry) (*Stash, error) {
	reader := lbits.NewBitsReader(bs)

	header, err := DecodeHeader(reader, kind)
	if err != nil {
		return nil, errors.Wrap(err, "dstash.Decode error reading header")
	}

	stash := Stash{
		Header: *header,
		Pages:  make([]Page, 0),
	}
	for i := 0; i < int(header.NumPages); i++ {
		page, err := DecodePage(reader, registry, *header)
		if err != nil {
			return nil, errors.Wrapf(err, "dstash.Decode error reading page %d of %d", i+1, header.NumPages)
		}
		stash.Pages = append(stash.Pages, *page)
	}

	return &stash, nil
}

func (r *Stash) Kind() dkind.Kind {
	return r.Header.Kind
}

func (r *Stash) Items() []ditem.Placed {
	return lo.FlatMap(
		r.Pages,
		func(page Page, index int) []ditem.Placed {
			return ditem.Place(page.Items, ditem.SectionPage, index+1)
		},
	)
}
