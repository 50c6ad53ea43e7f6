// Package derr holds the error kinds shared by every decoding layer.
package derr

import (
	"fmt"

	"github.com/pkg/errors"
)

type (
	Kind int
	// Error is created once, at the point where decoding broke down, and is then only wrapped.
	// Offset is always absolute within the buffer given to the top-level decode.
	Error struct {
		Kind   Kind
		Offset int
		Msg    string
	}
)

const (
	KindUnexpectedEndOfData Kind = iota + 1
	KindUnknownStatID
	KindInvalidAffixCount
	KindInvalidSocketCount
	KindInvalidStringLength
	KindUnrecognizedRarityTag
	KindUnrecognizedContainerKind
	KindRegistryNotInitialized
	KindInvalidHeader
	KindUnsupportedVersion
	KindUnknownItemCode
)

var kindNames = map[Kind]string{
	KindUnexpectedEndOfData:       "unexpected end of data",
	KindUnknownStatID:             "unknown stat id",
	KindInvalidAffixCount:         "invalid affix count",
	KindInvalidSocketCount:        "invalid socket count",
	KindInvalidStringLength:       "invalid string length",
	KindUnrecognizedRarityTag:     "unrecognized rarity tag",
	KindUnrecognizedContainerKind: "unrecognized container kind",
	KindRegistryNotInitialized:    "registry not initialized",
	KindInvalidHeader:             "invalid header",
	KindUnsupportedVersion:        "unsupported version",
	KindUnknownItemCode:           "unknown item code",
}

func (k Kind) String() string {
	name, ok := kindNames[k]
	if !ok {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return name
}

func (r *Error) Error() string {
	if r.Msg == "" {
		return fmt.Sprintf("%s at byte %d", r.Kind, r.Offset)
	}
	return fmt.Sprintf("%s at byte %d: %s", r.Kind, r.Offset, r.Msg)
}

func New(kind Kind, offset int, msg string) error {
	return &Error{
		Kind:   kind,
		Offset: offset,
		Msg:    msg,
	}
}

func Newf(kind Kind, offset int, format string, args ...any) error {
	return New(kind, offset, fmt.Sprintf(format, args...))
}

// As digs through any wrapping done by upper layers.
func As(err error) (*Error, bool) {
	var decodeErr *Error
	if errors.As(err, &decodeErr) {
		return decodeErr, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	decodeErr, ok := As(err)
	if !ok {
		return 0
	}
	return decodeErr.Kind
}

// OffsetOf returns -1 for errors that were not produced while decoding.
func OffsetOf(err error) int {
	decodeErr, ok := As(err)
	if !ok {
		return -1
	}
	return decodeErr.Offset
}

func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
