// Package dfile reads save and stash files from disk, transparently unpacking backups compressed
// with gzip, zstd, lz4 or brotli.
package dfile

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

type (
	Compression int
)

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionZstd
	CompressionLZ4
	CompressionBrotli
)

// MaxSize bounds the unpacked size of one file. Real saves and stashes stay far below it.
const MaxSize = 64 << 20

var (
	GzipMagic = []byte{0x1F, 0x8B}
	ZstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
	LZ4Magic  = []byte{0x04, 0x22, 0x4D, 0x18}
	// brotli streams carry no magic number, they are recognized by extension only
	BrotliExtension = ".br"
)

var compressionNames = map[Compression]string{
	CompressionNone:   "none",
	CompressionGzip:   "gzip",
	CompressionZstd:   "zstd",
	CompressionLZ4:    "lz4",
	CompressionBrotli: "brotli",
}

func (c Compression) String() string {
	return compressionNames[c]
}

func Detect(path string, bs []byte) Compression {
	switch {
	case bytes.HasPrefix(bs, GzipMagic):
		return CompressionGzip
	case bytes.HasPrefix(bs, ZstdMagic):
		return CompressionZstd
	case bytes.HasPrefix(bs, LZ4Magic):
		return CompressionLZ4
	case strings.EqualFold(filepath.Ext(path), BrotliExtension):
		return CompressionBrotli
	default:
		return CompressionNone
	}
}

func readLimited(r io.Reader) ([]byte, error) {
	bs, err := io.ReadAll(io.LimitReader(r, MaxSize+1))
	if err != nil {
		return nil, err
	}
	if len(bs) > MaxSize {
		return nil, errors.Errorf("unpacked content is larger than %d bytes", MaxSize)
	}
	return bs, nil
}

func newReader(compression Compression, r io.Reader) (io.ReadCloser, error) {
	switch compression {
	case CompressionNone:
		return io.NopCloser(r), nil
	case CompressionGzip:
		gzipReader, err := gzip.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "error opening gzip stream")
		}
		return gzipReader, nil
	case CompressionZstd:
		zstdReader, err := zstd.NewReader(r)
		if err != nil {
			return nil, errors.Wrap(err, "error opening zstd stream")
		}
		return zstdReader.IOReadCloser(), nil
	case CompressionLZ4:
		return io.NopCloser(lz4.NewReader(r)), nil
	case CompressionBrotli:
		return io.NopCloser(brotli.NewReader(r)), nil
	default:
		return nil, errors.Errorf("unknown compression %d", compression)
	}
}

func Decompress(compression Compression, bs []byte) ([]byte, error) {
	if compression == CompressionNone {
		return bs, nil
	}
	r, err := newReader(compression, bytes.NewReader(bs))
	if err != nil {
		return nil, errors.Wrap(err, "Decompress error")
	}
	defer r.Close()
	return readLimited(r)
}

// Read returns the unpacked content of the file at path.
func Read(path string) ([]byte, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, `dfile.Read error reading "%s"`, path)
	}
	compression := Detect(path, bs)
	content, err := Decompress(compression, bs)
	if err != nil {
		return nil, errors.Wrapf(err, `dfile.Read error unpacking %s file "%s"`, compression, path)
	}
	return content, nil
}

// ReadHead returns at most n unpacked bytes from the start of the file at path. Only as much of
// the file as needed to produce them is read.
func ReadHead(path string, n int) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, `dfile.ReadHead error opening "%s"`, path)
	}
	defer file.Close()

	buffered := bufio.NewReader(file)
	magic, err := buffered.Peek(len(ZstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrapf(err, `dfile.ReadHead error reading "%s"`, path)
	}
	compression := Detect(path, magic)
	r, err := newReader(compression, buffered)
	if err != nil {
		return nil, errors.Wrapf(err, `dfile.ReadHead error unpacking %s file "%s"`, compression, path)
	}
	defer r.Close()

	head := make([]byte, n)
	read, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, errors.Wrapf(err, `dfile.ReadHead error unpacking %s file "%s"`, compression, path)
	}
	return head[:read], nil
}
