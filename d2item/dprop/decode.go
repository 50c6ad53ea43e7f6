// Package dprop decodes the terminated property lists attached to extended items.
package dprop

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

type (
	Property struct {
		StatID uint16  `json:"stat_id"`
		Name   string  `json:"name"`
		Params []int64 `json:"params"`
	}
)

func DecodeProperty(reader *lbits.Reader, layout dregistry.StatLayout) (*Property, error) {
	property := Property{
		StatID: layout.ID,
		Name:   layout.Name,
		Params: make([]int64, 0, len(layout.Params)),
	}
	for _, param := range layout.Params {
		raw, err := reader.ReadBits(param.Bits)
		if err != nil {
			err := errors.Wrapf(err, `DecodeProperty error reading "%s" of stat %d`, param.Name, layout.ID)
			return nil, err
		}
		property.Params = append(property.Params, int64(raw)-param.Bias)
	}
	return &property, nil
}

// DecodeList reads (stat id, params) entries until the terminator id. An id the registry cannot
// resolve stops the list right after the id field, since its width is unknown.
func DecodeList(reader *lbits.Reader, registry *dregistry.Registry) ([]Property, error) {
	properties := make([]Property, 0)
	for {
		offset := reader.Position()
		statID, err := reader.ReadBits(dregistry.StatIDBits)
		if err != nil {
			err := errors.Wrap(err, "dprop.DecodeList error")
			return nil, err
		}
		if statID == dregistry.StatTerminator {
			return properties, nil
		}

		layout, ok := registry.StatLayout(uint16(statID))
		if !ok {
			return nil, derr.Newf(derr.KindUnknownStatID, offset, "stat %d is not in the registry", statID)
		}
		property, err := DecodeProperty(reader, layout)
		if err != nil {
			err := errors.Wrap(err, "dprop.DecodeList error")
			return nil, err
		}
		properties = append(properties, *property)
	}
}
