package cli

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/d2item"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/dfile"
	"github.com/thanhnguyen2187/horadric/ds"
	"golang.org/x/sync/errgroup"
)

type (
	// Result is what one input file turns into. A file that fails to decode keeps its kind and the
	// error, the other files are still decoded.
	Result struct {
		Kind   dkind.Kind     `json:"kind"`
		Items  []ditem.Placed `json:"items"`
		Error  string         `json:"error,omitempty"`
		Offset *int           `json:"offset,omitempty"`
	}
)

// FlattenPlaced lists socketed items after their parent, carrying the parent's provenance.
func FlattenPlaced(placed []ditem.Placed) []ditem.Placed {
	return lo.FlatMap(
		placed,
		func(p ditem.Placed, _ int) []ditem.Placed {
			return ditem.Place(ditem.Flatten([]ditem.Item{p.Item}), p.Section, p.Page)
		},
	)
}

func decodeFile(registry *dregistry.Registry, bs []byte, flat bool) Result {
	result := Result{
		Kind:  d2item.ClassifyContainer(bs),
		Items: make([]ditem.Placed, 0),
	}
	container, err := d2item.DecodeContainer(result.Kind, bs, registry)
	if err != nil {
		result.Error = err.Error()
		if offset := derr.OffsetOf(err); offset >= 0 {
			result.Offset = &offset
		}
		return result
	}
	result.Items = container.Items()
	if flat {
		result.Items = FlattenPlaced(result.Items)
	}
	return result
}

// DecodeFiles decodes up to jobs files at once. Results keep the order of paths; a path given
// more than once is decoded once, at its first position.
func DecodeFiles(
	logger *slog.Logger,
	registry *dregistry.Registry,
	paths []string,
	jobs int,
	flat bool,
) (*ds.LinkedHashMap[string, Result], error) {
	paths = lo.Uniq(paths)
	results := make([]Result, len(paths))
	group := errgroup.Group{}
	group.SetLimit(max(jobs, 1))
	for i, path := range paths {
		group.Go(func() error {
			bs, err := dfile.Read(path)
			if err != nil {
				return errors.Wrap(err, "DecodeFiles error")
			}
			results[i] = decodeFile(registry, bs, flat)
			if results[i].Error != "" {
				logger.Warn("failed to decode", slog.String("path", path), slog.String("error", results[i].Error))
				return nil
			}
			logger.Debug(
				"decoded file",
				slog.String("path", path),
				slog.String("kind", results[i].Kind.String()),
				slog.Int("items", len(results[i].Items)),
			)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	lhm := ds.NewLinkedHashMap[string, Result]()
	for i, path := range paths {
		lhm.Put(path, results[i])
	}
	return lhm, nil
}
