package lbits

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
	"github.com/thanhnguyen2187/horadric/d2item/derr"
)

func NewBitsReader(bs []byte) *Reader {
	return &Reader{
		data: bs,
	}
}

func (b *Reader) Len() int {
	return len(b.data)
}

func (b *Reader) BitPosition() int {
	return b.pos
}

// Position is the byte holding the next unread bit.
func (b *Reader) Position() int {
	return b.pos >> 3
}

func (b *Reader) RemainingBits() int {
	return len(b.data)*8 - b.pos
}

func (b *Reader) IsAligned() bool {
	return b.pos&7 == 0
}

func (b *Reader) endOfData(n int) error {
	return derr.Newf(
		derr.KindUnexpectedEndOfData, len(b.data),
		"need %d bits at bit %d, %d remaining", n, b.pos, b.RemainingBits(),
	)
}

func (b *Reader) PeekBits(n int) (uint64, error) {
	if n < 0 || n > MaxReadBits {
		return 0, errors.Errorf("PeekBits error: invalid width %d", n)
	}
	if n > b.RemainingBits() {
		return 0, b.endOfData(n)
	}

	result := uint64(0)
	pos := b.pos
	for read := 0; read < n; {
		bitIndex := pos & 7
		take := min(8-bitIndex, n-read)
		chunk := (uint64(b.data[pos>>3]) >> bitIndex) & (1<<take - 1)
		result |= chunk << read
		read += take
		pos += take
	}
	return result, nil
}

func (b *Reader) ReadBits(n int) (uint64, error) {
	result, err := b.PeekBits(n)
	if err != nil {
		return 0, err
	}
	b.pos += n
	return result, nil
}

func (b *Reader) ReadBool() (bool, error) {
	bit, err := b.ReadBits(1)
	if err != nil {
		return false, err
	}
	return bit == 1, nil
}

func (b *Reader) Skip(n int) error {
	if n > b.RemainingBits() {
		return b.endOfData(n)
	}
	b.pos += n
	return nil
}

// ReadChars reads n fixed-width characters that need not be byte aligned.
func (b *Reader) ReadChars(n int, bitsPerChar int) (string, error) {
	if n*bitsPerChar > b.RemainingBits() {
		return "", b.endOfData(n * bitsPerChar)
	}
	bs := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		c, err := b.ReadBits(bitsPerChar)
		if err != nil {
			return "", err
		}
		bs = append(bs, byte(c))
	}
	return string(bs), nil
}

// Align moves to the next byte boundary. Unused bits of the current byte are dropped.
func (b *Reader) Align() {
	b.pos = (b.pos + 7) &^ 7
}

func (b *Reader) Seek(offset int) error {
	if offset < 0 || offset > len(b.data) {
		return derr.Newf(derr.KindUnexpectedEndOfData, len(b.data), "seek to byte %d", offset)
	}
	b.pos = offset * 8
	return nil
}

func (b *Reader) PeekBytes(n int) ([]byte, error) {
	if !b.IsAligned() {
		return nil, errors.Errorf("PeekBytes error: cursor is not byte aligned at bit %d", b.pos)
	}
	if n*8 > b.RemainingBits() {
		return nil, b.endOfData(n * 8)
	}
	start := b.Position()
	return b.data[start : start+n], nil
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs, err := b.PeekBytes(n)
	if err != nil {
		return nil, err
	}
	b.pos += n * 8
	result := make([]byte, n)
	copy(result, bs)
	return result, nil
}

func (b *Reader) ReadUint8() (uint8, error) {
	bs, err := b.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadUint16() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadUint32() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadString(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(bs), "\u0000"), nil
}

// ReadCString reads a NUL-terminated string of at most maxLen bytes, terminator excluded.
func (b *Reader) ReadCString(maxLen int) (string, error) {
	start := b.Position()
	bs := make([]byte, 0, maxLen)
	for {
		c, err := b.ReadUint8()
		if err != nil {
			return "", err
		}
		if c == 0 {
			return string(bs), nil
		}
		if len(bs) == maxLen {
			return "", derr.Newf(
				derr.KindInvalidStringLength, start,
				"string is longer than %d bytes", maxLen,
			)
		}
		bs = append(bs, c)
	}
}

// ExpectBytes consumes len(expected) bytes and fails with KindInvalidHeader on a mismatch.
func (b *Reader) ExpectBytes(expected []byte, what string) error {
	start := b.Position()
	bs, err := b.ReadBytes(len(expected))
	if err != nil {
		return err
	}
	if string(bs) != string(expected) {
		return derr.Newf(derr.KindInvalidHeader, start, `invalid %s: expected "%s", got "%s"`, what, expected, bs)
	}
	return nil
}
