package canon

import (
	"fmt"
	"io"
)

// Encoder packs bytes into a canonical-Huffman bitstream against a Model,
// high-bit-first and with no byte alignment between codewords: exactly the
// wire format chuffman.Reader and chuffman.Iterator expect.
type Encoder struct {
	w    io.Writer
	m    *Model
	acc  uint64
	nbit uint
}

// NewEncoder returns an Encoder that writes to w using m's codes.
func NewEncoder(w io.Writer, m *Model) *Encoder {
	return &Encoder{w: w, m: m}
}

// WriteByte encodes a single symbol.
func (e *Encoder) WriteByte(sym byte) error {
	code, length, ok := e.m.Code(sym)
	if !ok {
		return fmt.Errorf("canon: symbol %d is not in the model", sym)
	}
	return e.push(uint64(code), uint(length))
}

// Write encodes every byte of p, in order.
func (e *Encoder) Write(p []byte) (int, error) {
	for i, b := range p {
		if err := e.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

func (e *Encoder) push(code uint64, length uint) error {
	mask := (uint64(1) << length) - 1
	e.acc = (e.acc << length) | (code & mask)
	e.nbit += length
	for e.nbit >= 8 {
		e.nbit -= 8
		if _, err := e.w.Write([]byte{byte(e.acc >> e.nbit)}); err != nil {
			return err
		}
	}
	return nil
}

// Flush pads any pending partial byte with zero bits and writes it.
// Callers must call Flush after the last WriteByte/Write.
func (e *Encoder) Flush() error {
	if e.nbit == 0 {
		return nil
	}
	b := byte(e.acc << (8 - e.nbit))
	e.nbit = 0
	e.acc = 0
	_, err := e.w.Write([]byte{b})
	return err
}
