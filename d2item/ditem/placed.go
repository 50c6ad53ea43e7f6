package ditem

import (
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/ds"
)

func Place(items []Item, section string, page int) []Placed {
	return lo.Map(
		items,
		func(item Item, _ int) Placed {
			return Placed{
				Section: section,
				Page:    page,
				Item:    item,
			}
		},
	)
}

// Flatten lists every item in stream order, each parent right before its socketed items.
func Flatten(items []Item) []Item {
	result := make([]Item, 0, len(items))
	stack := ds.NewStack[Item]()
	stack.PushReversed(items)
	for {
		item, ok := stack.Pop()
		if !ok {
			return result
		}
		result = append(result, item)
		stack.PushReversed(item.SocketedItems)
	}
}
