// Package drarity decodes the quality dependent part of an extended item.
package drarity

import (
	"fmt"
)

type (
	Tag int
	// Payload is implemented by exactly one type per Tag.
	Payload interface {
		Tag() Tag
		isPayload()
	}
	Normal     struct{}
	LowQuality struct {
		ID uint8 `json:"id"`
	}
	Superior struct {
		ID uint8 `json:"id"`
	}
	Magic struct {
		Prefix uint16 `json:"prefix"`
		Suffix uint16 `json:"suffix"`
	}
	Set struct {
		ID uint16 `json:"id"`
	}
	Unique struct {
		ID uint16 `json:"id"`
	}
	Names struct {
		Name1    uint8    `json:"name1"`
		Name2    uint8    `json:"name2"`
		Prefixes []uint16 `json:"prefixes"`
		Suffixes []uint16 `json:"suffixes"`
	}
	Rare struct {
		Names
	}
	Crafted struct {
		Names
	}
)

const (
	TagLowQuality Tag = iota + 1
	TagNormal
	TagSuperior
	TagMagic
	TagSet
	TagRare
	TagUnique
	TagCrafted
)

const (
	TagBits        = 4
	LowQualityBits = 3
	SuperiorBits   = 3
	AffixBits      = 11
	SetBits        = 12
	UniqueBits     = 12
	RareNameBits   = 8
	// RareAffixSlots alternate prefix, suffix, prefix, ...; each slot is a presence bit followed by
	// an affix id when present.
	RareAffixSlots = 6
	// MaxAffixes follows from the slot layout, so a full slot table never exceeds it. decodeNames
	// still checks it to keep the prefix and suffix slices within their preallocated size.
	MaxAffixes = RareAffixSlots / 2
)

var tagNames = map[Tag]string{
	TagLowQuality: "lowquality",
	TagNormal:     "normal",
	TagSuperior:   "superior",
	TagMagic:      "magic",
	TagSet:        "set",
	TagRare:       "rare",
	TagUnique:     "unique",
	TagCrafted:    "crafted",
}

func (t Tag) Valid() bool {
	_, ok := tagNames[t]
	return ok
}

func (t Tag) String() string {
	name, ok := tagNames[t]
	if !ok {
		return fmt.Sprintf("tag(%d)", int(t))
	}
	return name
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (Normal) Tag() Tag     { return TagNormal }
func (LowQuality) Tag() Tag { return TagLowQuality }
func (Superior) Tag() Tag   { return TagSuperior }
func (Magic) Tag() Tag      { return TagMagic }
func (Set) Tag() Tag        { return TagSet }
func (Rare) Tag() Tag       { return TagRare }
func (Unique) Tag() Tag     { return TagUnique }
func (Crafted) Tag() Tag    { return TagCrafted }

func (Normal) isPayload()     {}
func (LowQuality) isPayload() {}
func (Superior) isPayload()   {}
func (Magic) isPayload()      {}
func (Set) isPayload()        {}
func (Rare) isPayload()       {}
func (Unique) isPayload()     {}
func (Crafted) isPayload()    {}
