// Package datma decodes the .d2x stash files written by ATMA and GoMule.
package datma

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

type (
	Header struct {
		NumItems uint16 `json:"num_items"`
		Version  uint16 `json:"version"`
		Checksum uint32 `json:"checksum"`
	}
	Stash struct {
		Header Header       `json:"header"`
		Stored []ditem.Item `json:"stored"`
	}
)

const (
	Version = 96
)

func createVersionReadFunction(reader *lbits.Reader) lbits.ReadFunction {
	return func() (any, error) {
		offset := reader.Position()
		version, err := reader.ReadUint16()
		if err != nil {
			return nil, err
		}
		if version != Version {
			return nil, derr.Newf(derr.KindUnsupportedVersion, offset, "version %d, only %d is supported", version, Version)
		}
		return version, nil
	}
}

func DecodeHeader(reader *lbits.Reader) (*Header, error) {
	readMagic := func() (any, error) {
		return nil, reader.ExpectBytes(dkind.ThirdPartyStashMagic, "stash header")
	}
	instructions := []lbits.Instruction{
		{"", readMagic},
		{"num_items", lbits.CreateUint16ReadFunction(reader)},
		{"version", createVersionReadFunction(reader)},
		{"checksum", lbits.CreateUint32ReadFunction(reader)},
	}
	return lbits.ExecuteInstructions[Header](instructions)
}

func Decode(bs []byte, registry *dregistry.Registry) (*Stash, error) {
	reader := lbits.NewBitsReader(bs)

	header, err := DecodeHeader(reader)
	if err != nil {
		return nil, errors.Wrap(err, "datma.Decode error reading header")
	}
	items, err := ditem.DecodeList(reader, registry, int(header.NumItems))
	if err != nil {
		return nil, errors.Wrap(err, "datma.Decode error reading items")
	}

	return &Stash{
		Header: *header,
		Stored: items,
	}, nil
}

func (r *Stash) Kind() dkind.Kind {
	return dkind.ThirdPartyStash
}

func (r *Stash) Items() []ditem.Placed {
	return ditem.Place(r.Stored, ditem.SectionStash, 0)
}
