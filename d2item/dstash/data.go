// Package dstash decodes PlugY personal (.d2x) and shared (.sss) stash files.
package dstash

import (
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
)

type (
	Header struct {
		Kind     dkind.Kind `json:"kind"`
		Version  string     `json:"version"`
		Gold     uint32     `json:"gold"`
		NumPages uint32     `json:"num_pages"`
	}
	Page struct {
		Flags uint32       `json:"flags"`
		Name  string       `json:"name"`
		Items []ditem.Item `json:"items"`
	}
	Stash struct {
		Header Header `json:"header"`
		Pages  []Page `json:"pages"`
	}
)

const (
	VersionSize   = 2
	MaxPageName   = 255
	VersionPlain  = "01"
	VersionFlags  = "02"
	PageFlagShare = 1 << 0
	PageFlagIndex = 1 << 2
	PageFlagMain  = 1 << 3
)

var (
	PageMagic = []byte("ST")
)

// HasPageFlags reports whether every page header carries a 32-bit flag field.
func (h Header) HasPageFlags() bool {
	return h.Version == VersionFlags
}
