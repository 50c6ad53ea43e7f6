package derr

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindOf_Wrapped(t *testing.T) {
	err := Newf(KindUnknownStatID, 42, "stat %d", 400)
	wrapped := errors.Wrap(errors.Wrap(err, "dprop.DecodeList error"), "ditem.Decode error")

	assert.Equal(t, KindUnknownStatID, KindOf(wrapped))
	assert.Equal(t, 42, OffsetOf(wrapped))
	assert.True(t, Is(wrapped, KindUnknownStatID))
	assert.Contains(t, wrapped.Error(), "unknown stat id at byte 42: stat 400")
}

func TestKindOf_Foreign(t *testing.T) {
	err := errors.New("not a decode error")

	assert.Equal(t, Kind(0), KindOf(err))
	assert.Equal(t, -1, OffsetOf(err))
	assert.Equal(t, "kind(99)", Kind(99).String())
}
