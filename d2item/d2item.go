// Package d2item decodes the item records stored in Diablo II character saves, PlugY stashes,
// third-party stash files and single item exports.
//
// A Registry is built once from the game's text tables and shared by every decode. Decoding is a
// pure function of the input bytes and the registry, so any number of decodes may run at once.
package d2item

import (
	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/horadric/d2item/datma"
	"github.com/thanhnguyen2187/horadric/d2item/dchar"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/d2item/dstash"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

type (
	Container interface {
		Kind() dkind.Kind
		// Items lists the top-level items in the order they appear in the file, each tagged with
		// where it was found. Socketed items stay nested inside their parent.
		Items() []ditem.Placed
	}
	SingleItem struct {
		Item ditem.Item `json:"item"`
	}
)

var (
	_ Container = (*dchar.Save)(nil)
	_ Container = (*dstash.Stash)(nil)
	_ Container = (*datma.Stash)(nil)
	_ Container = (*SingleItem)(nil)
)

func (r *SingleItem) Kind() dkind.Kind {
	return dkind.SingleItem
}

func (r *SingleItem) Items() []ditem.Placed {
	return ditem.Place([]ditem.Item{r.Item}, ditem.SectionItem, 0)
}

func ClassifyContainer(bs []byte) dkind.Kind {
	return dkind.Classify(bs)
}

func BuildRegistry(
	armors []dregistry.ItemDef,
	weapons []dregistry.ItemDef,
	miscs []dregistry.ItemDef,
	stats []dregistry.StatDef,
) (*dregistry.Registry, error) {
	return dregistry.Build(armors, weapons, miscs, stats)
}

func DecodeSingleItem(bs []byte, registry *dregistry.Registry) (*SingleItem, error) {
	if registry == nil {
		return nil, derr.New(derr.KindRegistryNotInitialized, 0, "a registry is needed to decode items")
	}
	reader := lbits.NewBitsReader(bs)
	item, err := ditem.Decode(reader, registry)
	if err != nil {
		return nil, errors.Wrap(err, "DecodeSingleItem error")
	}
	return &SingleItem{Item: *item}, nil
}

// DecodeContainer decodes bs as the given kind. The whole decode fails on the first error, which
// keeps the offset of the byte where decoding broke down.
func DecodeContainer(kind dkind.Kind, bs []byte, registry *dregistry.Registry) (Container, error) {
	if registry == nil {
		return nil, derr.New(derr.KindRegistryNotInitialized, 0, "a registry is needed to decode items")
	}

	var (
		container Container
		err       error
	)
	switch kind {
	case dkind.Character:
		container, err = dchar.Decode(bs, registry)
	case dkind.PersonalStash, dkind.SharedStash:
		container, err = dstash.Decode(bs, kind, registry)
	case dkind.ThirdPartyStash:
		container, err = datma.Decode(bs, registry)
	case dkind.SingleItem:
		container, err = DecodeSingleItem(bs, registry)
	default:
		return nil, derr.Newf(derr.KindUnrecognizedContainerKind, 0, "cannot decode %s", kind)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "DecodeContainer error decoding %s", kind)
	}
	return container, nil
}

// Decode classifies bs by its leading bytes, then decodes it.
func Decode(bs []byte, registry *dregistry.Registry) (Container, error) {
	return DecodeContainer(ClassifyContainer(bs), bs, registry)
}
