package dregistry

import (
	"sort"

	"github.com/samber/lo"
)

func (r *Registry) Item(code string) (ItemDef, bool) {
	def, ok := r.items[code]
	return def, ok
}

func (r *Registry) IsArmor(code string) bool {
	def, ok := r.items[code]
	return ok && def.Category == CategoryArmor
}

func (r *Registry) IsWeapon(code string) bool {
	def, ok := r.items[code]
	return ok && def.Category == CategoryWeapon
}

func (r *Registry) IsStackable(code string) bool {
	def, ok := r.items[code]
	return ok && def.Stackable
}

func (r *Registry) Stat(id uint16) (StatDef, bool) {
	def, ok := r.stats[id]
	return def, ok
}

// StatLayout resolves the bit fields following a stat identifier in an item property list.
// Stats that are never saved on items have no layout.
func (r *Registry) StatLayout(id uint16) (StatLayout, bool) {
	layout, ok := r.layouts[id]
	return layout, ok
}

func (r *Registry) NumItems() int {
	return len(r.items)
}

func (r *Registry) NumStats() int {
	return len(r.stats)
}

func (r *Registry) StatIDs() []uint16 {
	ids := lo.Keys(r.stats)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
