// Package dregistry holds the read-only game data consulted while decoding: item type codes
// (armor, weapon, misc) and item stat layouts.
package dregistry

type (
	Category int
	ItemDef  struct {
		Code      string   `json:"code" yaml:"code"`
		Name      string   `json:"name" yaml:"name"`
		Category  Category `json:"category" yaml:"-"`
		Stackable bool     `json:"stackable" yaml:"stackable"`
	}
	StatDef struct {
		ID            uint16 `json:"id" yaml:"id"`
		Name          string `json:"name" yaml:"name"`
		SaveBits      int    `json:"save_bits" yaml:"save_bits"`
		SaveAdd       int    `json:"save_add" yaml:"save_add"`
		SaveParamBits int    `json:"save_param_bits" yaml:"save_param_bits"`
		Encode        int    `json:"encode" yaml:"encode"`
		CharSaveBits  int    `json:"char_save_bits" yaml:"char_save_bits"`
	}
	// Param is one bit field of a property entry. The decoded value is raw - Bias.
	Param struct {
		Name string `json:"name"`
		Bits int    `json:"bits"`
		Bias int64  `json:"bias"`
	}
	StatLayout struct {
		ID     uint16  `json:"id"`
		Name   string  `json:"name"`
		Params []Param `json:"params"`
	}
	// Registry is built once and never mutated afterwards, so any number of decodes may share it.
	Registry struct {
		items   map[string]ItemDef
		stats   map[uint16]StatDef
		layouts map[uint16]StatLayout
	}
)

const (
	CategoryArmor Category = iota + 1
	CategoryWeapon
	CategoryMisc
)

const (
	// StatIDBits is the width of a stat identifier inside a property list.
	StatIDBits = 9
	// StatTerminator ends a property list; it is outside the range of valid identifiers.
	StatTerminator = 0x1FF
	MaxParamBits   = 32

	EncodeSkillOnEvent = 2
	EncodeChargedSkill = 3
)

// statChains lists stats whose values are stored right after the head stat without their own
// identifier, e.g. minimum fire damage is always followed by maximum fire damage.
var statChains = map[uint16][]uint16{
	17: {18},
	48: {49},
	50: {51},
	52: {53},
	54: {55, 56},
	57: {58, 59},
}

func (c Category) String() string {
	switch c {
	case CategoryArmor:
		return "armor"
	case CategoryWeapon:
		return "weapon"
	case CategoryMisc:
		return "misc"
	default:
		return "unknown"
	}
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
