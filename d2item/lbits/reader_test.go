package lbits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
)

func TestReader_ReadBits(t *testing.T) {
	reader := NewBitsReader(
		[]byte{
			0b1010_0110, 0b0000_0011,
			0xFF, 0xFF,
		},
	)

	low, err := reader.ReadBits(3)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0b110), low)

	crossing, err := reader.ReadBits(9)
	assert.NoError(t, err)
	// bits 3..7 of the first byte followed by bits 0..3 of the second
	assert.Equal(t, uint64(0b0011_10100), crossing)
	assert.Equal(t, 12, reader.BitPosition())
	assert.Equal(t, 1, reader.Position())

	reader.Align()
	assert.Equal(t, 16, reader.BitPosition())

	wide, err := reader.ReadBits(16)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0xFFFF), wide)
	assert.Equal(t, 0, reader.RemainingBits())
}

func TestReader_ReadBits_EndOfData(t *testing.T) {
	reader := NewBitsReader([]byte{0x01, 0x02})
	require.NoError(t, reader.Skip(10))

	_, err := reader.ReadBits(7)
	require.Error(t, err)
	assert.Equal(t, derr.KindUnexpectedEndOfData, derr.KindOf(err))
	assert.Equal(t, 2, derr.OffsetOf(err))
	// a failed read does not move the cursor
	assert.Equal(t, 10, reader.BitPosition())

	value, err := reader.ReadBits(6)
	assert.NoError(t, err)
	assert.Equal(t, uint64(0), value)
}

func TestReader_PeekBits(t *testing.T) {
	reader := NewBitsReader([]byte{0x4A, 0x4D})

	peeked, err := reader.PeekBits(16)
	assert.NoError(t, err)
	assert.Equal(t, 0, reader.BitPosition())

	read, err := reader.ReadBits(16)
	assert.NoError(t, err)
	assert.Equal(t, peeked, read)
	assert.Equal(t, uint64(0x4D4A), read)
}

func TestReader_ReadChars(t *testing.T) {
	// "tbk " packed at a four bit offset
	bs := []byte{0x0F, 0x00, 0x00, 0x00, 0x00}
	for i, c := range []byte("tbk ") {
		bs[i] |= c << 4
		bs[i+1] |= c >> 4
	}
	reader := NewBitsReader(bs)
	require.NoError(t, reader.Skip(4))

	code, err := reader.ReadChars(4, 8)
	assert.NoError(t, err)
	assert.Equal(t, "tbk ", code)
}

func TestReader_ReadUint(t *testing.T) {
	reader := NewBitsReader(
		[]byte{
			3, 1, 4, 3,
			12, 34,
		},
	)

	resultInt1, err := reader.ReadUint32()
	assert.NoError(t, err)
	assert.Equal(t, uint32(50594051), resultInt1)

	resultInt2, err := reader.ReadUint16()
	assert.NoError(t, err)
	assert.Equal(t, uint16(8716), resultInt2)

	_, err = reader.ReadUint16()
	assert.Equal(t, derr.KindUnexpectedEndOfData, derr.KindOf(err))
	assert.Equal(t, 6, derr.OffsetOf(err))
}

func TestReader_ReadBytes_Misaligned(t *testing.T) {
	reader := NewBitsReader([]byte{1, 2, 3})
	require.NoError(t, reader.Skip(1))

	_, err := reader.ReadBytes(1)
	assert.Error(t, err)
	assert.Equal(t, derr.Kind(0), derr.KindOf(err))
}

func TestReader_ReadCString(t *testing.T) {
	reader := NewBitsReader([]byte("Page\x00ABCDEFG"))

	name, err := reader.ReadCString(15)
	assert.NoError(t, err)
	assert.Equal(t, "Page", name)

	_, err = reader.ReadCString(3)
	assert.Equal(t, derr.KindInvalidStringLength, derr.KindOf(err))
	assert.Equal(t, 5, derr.OffsetOf(err))
}

func TestReader_ExpectBytes(t *testing.T) {
	reader := NewBitsReader([]byte("JMXY"))

	assert.NoError(t, reader.ExpectBytes([]byte("JM"), "item header"))
	err := reader.ExpectBytes([]byte("JM"), "item header")
	assert.Equal(t, derr.KindInvalidHeader, derr.KindOf(err))
	assert.Equal(t, 2, derr.OffsetOf(err))
}

func TestExecuteInstructions(t *testing.T) {
	type header struct {
		Magic   uint32 `json:"magic"`
		Version uint16 `json:"version"`
		Name    string `json:"name"`
	}
	reader := NewBitsReader([]byte{0x55, 0xAA, 0x55, 0xAA, 0x60, 0x00, 0xFF, 'a', 'b', 0, 0})

	result, err := ExecuteInstructions[header](
		[]Instruction{
			{"magic", CreateUint32ReadFunction(reader)},
			{"version", CreateUint16ReadFunction(reader)},
			{"", CreateUint8ReadFunction(reader)},
			{"name", CreateStringReadFunction(reader, 4)},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, header{Magic: 0xAA55AA55, Version: 96, Name: "ab"}, *result)

	_, err = ExecuteInstructions[header](
		[]Instruction{
			{"magic", CreateUint32ReadFunction(reader)},
		},
	)
	assert.Equal(t, derr.KindUnexpectedEndOfData, derr.KindOf(err))
}
