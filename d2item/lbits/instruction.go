package lbits

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// ExecuteInstructions create the final value t with type T by
//
//   - Reading the instruction into a map, then
//   - Create JSON bytes from the map, and finally
//   - Read the JSON bytes into t
//
// In order to lessen the burden of manual mapping. Instructions with an empty key are executed
// for their side effect on the reader only.
func ExecuteInstructions[T any](instructions []Instruction) (*T, error) {
	tMap := map[string]any{}
	for _, instruction := range instructions {
		value, err := instruction.ReadFunction()
		if err != nil {
			err := errors.Wrapf(err, `ExecuteInstructions error reading key "%v"`, instruction.Key)
			return nil, err
		}
		if instruction.Key == "" {
			continue
		}
		tMap[instruction.Key] = value
	}
	tBytes, err := json.Marshal(tMap)
	if err != nil {
		err := errors.Wrapf(err, `ExecuteInstructions error marshalling map "%v" to JSON`, tMap)
		return nil, err
	}

	var t T
	if err := json.Unmarshal(tBytes, &t); err != nil {
		err := errors.Wrapf(
			err, `ExecuteInstructions error unmarshalling bytes "%s" to type "%T"`,
			string(tBytes), t,
		)
		return nil, err
	}

	return &t, nil
}

func CreateUint8ReadFunction(reader *Reader) ReadFunction {
	return func() (any, error) {
		return reader.ReadUint8()
	}
}

func CreateUint16ReadFunction(reader *Reader) ReadFunction {
	return func() (any, error) {
		return reader.ReadUint16()
	}
}

func CreateUint32ReadFunction(reader *Reader) ReadFunction {
	return func() (any, error) {
		return reader.ReadUint32()
	}
}

func CreateStringReadFunction(reader *Reader, n int) ReadFunction {
	return func() (any, error) {
		// zero byte trimming happens inside ReadString, names are NUL padded
		return reader.ReadString(n)
	}
}

func CreateSeekReadFunction(reader *Reader, offset int) ReadFunction {
	return func() (any, error) {
		return nil, reader.Seek(offset)
	}
}
