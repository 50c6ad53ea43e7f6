// Package dchar decodes character save files (.d2s) of the 1.10 to 1.14 format.
package dchar

import (
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
)

type (
	Header struct {
		Magic        uint32 `json:"magic"`
		Version      uint32 `json:"version"`
		FileSize     uint32 `json:"file_size"`
		Checksum     uint32 `json:"checksum"`
		ActiveWeapon uint32 `json:"active_weapon"`
		Name         string `json:"name"`
		Status       uint8  `json:"status"`
		Progression  uint8  `json:"progression"`
		Class        uint8  `json:"class"`
		Level        uint8  `json:"level"`
		MercDead     uint16 `json:"merc_dead"`
		MercID       uint32 `json:"merc_id"`
		MercNameID   uint16 `json:"merc_name_id"`
		MercType     uint16 `json:"merc_type"`
		MercExp      uint32 `json:"merc_exp"`
	}
	Stat struct {
		ID    uint16 `json:"id"`
		Name  string `json:"name"`
		Value uint64 `json:"value"`
	}
	Corpse struct {
		Unknown []byte       `json:"unknown"`
		Items   []ditem.Item `json:"items"`
	}
	Save struct {
		Header    Header       `json:"header"`
		Stats     []Stat       `json:"stats"`
		Inventory []ditem.Item `json:"inventory"`
		Corpses   []Corpse     `json:"corpses"`
		MercItems []ditem.Item `json:"merc_items"`
		Golem     *ditem.Item  `json:"golem,omitempty"`
	}
)

const (
	Version         = 96
	HeaderSize      = 765
	NameSize        = 16
	SkillsSize      = 30
	CorpseUnknown   = 12
	StatusExpansion = 0x20
)

const (
	offsetClass = 40
	offsetLevel = 43
	offsetMerc  = 177
)

var (
	MagicNumberBytes = []byte{0x55, 0xAA, 0x55, 0xAA}
	StatsMagic       = []byte("gf")
	SkillsMagic      = []byte("if")
	MercMagic        = []byte("jf")
	GolemMagic       = []byte("kf")
)

func (h Header) IsExpansion() bool {
	return h.Status&StatusExpansion != 0
}

func (h Header) HasMerc() bool {
	return h.MercID != 0
}
