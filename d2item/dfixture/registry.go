package dfixture

import (
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
)

func Tables() dregistry.Tables {
	return dregistry.Tables{
		Armors: []dregistry.ItemDef{
			{Code: "cap", Name: "Cap"},
			{Code: "lrg", Name: "Large Shield"},
		},
		Weapons: []dregistry.ItemDef{
			{Code: "hax", Name: "Hand Axe"},
			{Code: "jav", Name: "Javelin", Stackable: true},
			{Code: "crs", Name: "Crystal Sword"},
		},
		Miscs: []dregistry.ItemDef{
			{Code: "tbk", Name: "Tome of Town Portal", Stackable: true},
			{Code: "hp1", Name: "Minor Healing Potion"},
			{Code: "r01", Name: "El Rune"},
			{Code: "r02", Name: "Eld Rune"},
			{Code: "gcv", Name: "Chipped Amethyst"},
			{Code: "jew", Name: "Jewel"},
			{Code: "rin", Name: "Ring"},
		},
		Stats: []dregistry.StatDef{
			{ID: 0, Name: "strength", SaveBits: 8, SaveAdd: 32, CharSaveBits: 10},
			{ID: 1, Name: "energy", SaveBits: 7, SaveAdd: 32, CharSaveBits: 10},
			{ID: 7, Name: "maxhp", SaveBits: 9, SaveAdd: 32, CharSaveBits: 21},
			{ID: 12, Name: "level", CharSaveBits: 7},
			{ID: 14, Name: "gold", CharSaveBits: 20},
			{ID: 16, Name: "item_armor_percent", SaveBits: 9},
			{ID: 17, Name: "item_maxdamage_percent", SaveBits: 9},
			{ID: 18, Name: "item_mindamage_percent", SaveBits: 9},
			{ID: 31, Name: "armorclass", SaveBits: 11, SaveAdd: 10},
			{ID: 39, Name: "fireresist", SaveBits: 8, SaveAdd: 50},
			{ID: 54, Name: "coldmindam", SaveBits: 8},
			{ID: 55, Name: "coldmaxdam", SaveBits: 9},
			{ID: 56, Name: "coldlength", SaveBits: 8},
			{ID: 83, Name: "item_addclassskills", SaveBits: 3, SaveParamBits: 3},
			{ID: 107, Name: "item_singleskill", SaveBits: 3, SaveParamBits: 9},
			{ID: 195, Name: "item_skillonattack", SaveBits: 7, SaveParamBits: 16, Encode: dregistry.EncodeSkillOnEvent},
			{ID: 204, Name: "item_charged_skill", SaveBits: 16, SaveParamBits: 16, Encode: dregistry.EncodeChargedSkill},
		},
	}
}

// Registry panics on a build failure; the tables above are fixed.
func Registry() *dregistry.Registry {
	registry, err := Tables().Build()
	if err != nil {
		panic(err)
	}
	return registry
}
