package lbits

type (
	// Reader is a cursor over an in-memory buffer. Fields are packed least significant bit first
	// within a byte; bytes are consumed in stream order.
	Reader struct {
		data []byte
		pos  int // in bits
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)

const (
	MaxReadBits = 64
)
