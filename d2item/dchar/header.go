package dchar

import (
	"bytes"
	"encoding/binary"

	"github.com/thanhnguyen2187/horadric/d2item/derr"
	"github.com/thanhnguyen2187/horadric/d2item/lbits"
)

func createMagicNumberReadFunction(reader *lbits.Reader) lbits.ReadFunction {
	return func() (any, error) {
		magicNumberBytes, err := reader.ReadBytes(4)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(magicNumberBytes, MagicNumberBytes) {
			return nil, derr.Newf(
				derr.KindInvalidHeader, 0,
				`invalid magic number: expected "%v", got "%v"`,
				MagicNumberBytes, magicNumberBytes,
			)
		}
		return binary.LittleEndian.Uint32(magicNumberBytes), nil
	}
}

func createVersionReadFunction(reader *lbits.Reader) lbits.ReadFunction {
	return func() (any, error) {
		offset := reader.Position()
		version, err := reader.ReadUint32()
		if err != nil {
			return nil, err
		}
		if version != Version {
			return nil, derr.Newf(derr.KindUnsupportedVersion, offset, "version %d, only %d is supported", version, Version)
		}
		return version, nil
	}
}

func DecodeHeader(reader *lbits.Reader) (*Header, error) {
	readMagicNumber := createMagicNumberReadFunction(reader)
	readVersion := createVersionReadFunction(reader)
	readUint8 := lbits.CreateUint8ReadFunction(reader)
	readUint16 := lbits.CreateUint16ReadFunction(reader)
	readUint32 := lbits.CreateUint32ReadFunction(reader)
	readName := lbits.CreateStringReadFunction(reader, NameSize)
	seek := func(offset int) lbits.ReadFunction {
		return lbits.CreateSeekReadFunction(reader, offset)
	}

	headerInstructions := []lbits.Instruction{
		{"magic", readMagicNumber},
		{"version", readVersion},
		{"file_size", readUint32},
		{"checksum", readUint32},
		{"active_weapon", readUint32},
		{"name", readName},
		{"status", readUint8},
		{"progression", readUint8},
		{"", seek(offsetClass)},
		{"class", readUint8},
		{"", seek(offsetLevel)},
		{"level", readUint8},
		{"", seek(offsetMerc)},
		{"merc_dead", readUint16},
		{"merc_id", readUint32},
		{"merc_name_id", readUint16},
		{"merc_type", readUint16},
		{"merc_exp", readUint32},
		{"", seek(HeaderSize)},
	}

	header, err := lbits.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		return nil, err
	}

	return header, nil
}
