// Package dfixture builds synthetic buffers and registries for tests. It mirrors the decoders
// field by field and is never used to write real save files.
package dfixture

import (
	"encoding/binary"
)

type BitWriter struct {
	bs  []byte
	pos int // in bits
}

func NewBitWriter() *BitWriter {
	return &BitWriter{
		bs: make([]byte, 0, 64),
	}
}

func (w *BitWriter) WriteBits(value uint64, n int) *BitWriter {
	for i := 0; i < n; i++ {
		if w.pos>>3 == len(w.bs) {
			w.bs = append(w.bs, 0)
		}
		if value>>i&1 == 1 {
			w.bs[w.pos>>3] |= 1 << (w.pos & 7)
		}
		w.pos++
	}
	return w
}

func (w *BitWriter) WriteBool(b bool) *BitWriter {
	if b {
		return w.WriteBits(1, 1)
	}
	return w.WriteBits(0, 1)
}

func (w *BitWriter) WriteChars(s string, bitsPerChar int) *BitWriter {
	for i := 0; i < len(s); i++ {
		w.WriteBits(uint64(s[i]), bitsPerChar)
	}
	return w
}

func (w *BitWriter) Align() *BitWriter {
	w.pos = (w.pos + 7) &^ 7
	return w
}

// WriteBytes aligns first.
func (w *BitWriter) WriteBytes(bs []byte) *BitWriter {
	w.Align()
	w.bs = append(w.bs[:w.pos>>3], bs...)
	w.pos += len(bs) * 8
	return w
}

func (w *BitWriter) WriteUint8(v uint8) *BitWriter {
	return w.WriteBytes([]byte{v})
}

func (w *BitWriter) WriteUint16(v uint16) *BitWriter {
	return w.WriteBytes(binary.LittleEndian.AppendUint16(nil, v))
}

func (w *BitWriter) WriteUint32(v uint32) *BitWriter {
	return w.WriteBytes(binary.LittleEndian.AppendUint32(nil, v))
}

// PadTo writes zero bytes until the buffer is offset bytes long.
func (w *BitWriter) PadTo(offset int) *BitWriter {
	w.Align()
	for w.Len() < offset {
		w.WriteUint8(0)
	}
	return w
}

// PutUint32At overwrites an already written little endian field.
func (w *BitWriter) PutUint32At(offset int, v uint32) *BitWriter {
	binary.LittleEndian.PutUint32(w.bs[offset:], v)
	return w
}

func (w *BitWriter) Len() int {
	return len(w.bs)
}

func (w *BitWriter) BitLen() int {
	return w.pos
}

func (w *BitWriter) Bytes() []byte {
	result := make([]byte, len(w.bs))
	copy(result, w.bs)
	return result
}
