package dregistry

import (
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/ds"
)

func Build(armors []ItemDef, weapons []ItemDef, miscs []ItemDef, stats []StatDef) (*Registry, error) {
	registry := Registry{
		items:   map[string]ItemDef{},
		stats:   map[uint16]StatDef{},
		layouts: map[uint16]StatLayout{},
	}

	tables := []lo.Tuple2[Category, []ItemDef]{
		lo.T2(CategoryArmor, armors),
		lo.T2(CategoryWeapon, weapons),
		lo.T2(CategoryMisc, miscs),
	}
	for _, table := range tables {
		for _, def := range table.B {
			if len(def.Code) == 0 || len(def.Code) > 4 {
				return nil, errors.Errorf("dregistry.Build error: invalid %s code %s", table.A, ds.DumpJSON(def))
			}
			if existed, ok := registry.items[def.Code]; ok {
				return nil, errors.Errorf(
					`dregistry.Build error: code "%s" defined as both %s and %s`,
					def.Code, existed.Category, table.A,
				)
			}
			def.Category = table.A
			registry.items[def.Code] = def
		}
	}

	for _, def := range stats {
		if def.ID >= StatTerminator {
			return nil, errors.Errorf("dregistry.Build error: stat id out of range %s", ds.DumpJSON(def))
		}
		if _, ok := registry.stats[def.ID]; ok {
			return nil, errors.Errorf("dregistry.Build error: duplicated stat id %d", def.ID)
		}
		if def.SaveBits < 0 || def.SaveBits > MaxParamBits ||
			def.SaveParamBits < 0 || def.SaveParamBits > MaxParamBits ||
			def.CharSaveBits < 0 || def.CharSaveBits > MaxParamBits {
			return nil, errors.Errorf("dregistry.Build error: invalid bit width %s", ds.DumpJSON(def))
		}
		registry.stats[def.ID] = def
	}

	for _, def := range registry.stats {
		if def.SaveBits == 0 {
			continue
		}
		layout, err := buildLayout(def, registry.stats)
		if err != nil {
			return nil, errors.Wrap(err, "dregistry.Build error")
		}
		registry.layouts[def.ID] = layout
	}

	return &registry, nil
}

func valueParam(def StatDef) Param {
	return Param{
		Name: def.Name,
		Bits: def.SaveBits,
		Bias: int64(def.SaveAdd),
	}
}

func buildLayout(def StatDef, stats map[uint16]StatDef) (StatLayout, error) {
	layout := StatLayout{
		ID:   def.ID,
		Name: def.Name,
	}

	switch def.Encode {
	case EncodeSkillOnEvent:
		layout.Params = []Param{
			{Name: "level", Bits: 6},
			{Name: "skill", Bits: 10},
			{Name: "chance", Bits: def.SaveBits},
		}
		return layout, nil
	case EncodeChargedSkill:
		layout.Params = []Param{
			{Name: "level", Bits: 6},
			{Name: "skill", Bits: 10},
			{Name: "charges", Bits: 8},
			{Name: "max_charges", Bits: 8},
		}
		return layout, nil
	}

	if def.SaveParamBits > 0 {
		layout.Params = append(layout.Params, Param{Name: "param", Bits: def.SaveParamBits})
	}
	layout.Params = append(layout.Params, valueParam(def))
	for _, chainedID := range statChains[def.ID] {
		chained, ok := stats[chainedID]
		if !ok || chained.SaveBits == 0 {
			return StatLayout{}, errors.Errorf("stat %d is followed by stat %d which is not defined", def.ID, chainedID)
		}
		layout.Params = append(layout.Params, valueParam(chained))
	}

	return layout, nil
}
