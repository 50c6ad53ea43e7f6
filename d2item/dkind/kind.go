// Package dkind names the container formats and tells them apart by their leading bytes.
package dkind

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

type (
	Kind int
)

const (
	Unknown Kind = iota
	Character
	SingleItem
	PersonalStash
	SharedStash
	ThirdPartyStash
)

const (
	CharacterMagic = 0xAA55AA55
	// MagicSize is the number of leading bytes Classify looks at.
	MagicSize = 4
)

var (
	PersonalStashMagic   = []byte("CSTM")
	SharedStashMagic     = []byte("SSS\x00")
	ThirdPartyStashMagic = []byte("D2X")
	SingleItemMagic      = []byte("JM")
)

var kindNames = map[Kind]string{
	Unknown:         "unknown",
	Character:       "character",
	SingleItem:      "single-item",
	PersonalStash:   "personal-stash",
	SharedStash:     "shared-stash",
	ThirdPartyStash: "third-party-stash",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return name
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok && k != Unknown
}

func Classify(bs []byte) Kind {
	switch {
	case len(bs) >= 4 && binary.LittleEndian.Uint32(bs) == CharacterMagic:
		return Character
	case bytes.HasPrefix(bs, PersonalStashMagic):
		return PersonalStash
	case bytes.HasPrefix(bs, SharedStashMagic):
		return SharedStash
	case bytes.HasPrefix(bs, ThirdPartyStashMagic):
		return ThirdPartyStash
	case bytes.HasPrefix(bs, SingleItemMagic):
		return SingleItem
	default:
		return Unknown
	}
}
