package chuffman

import (
	"fmt"
	"io"
	"log/slog"
)

// Reader decodes a canonical-Huffman byte stream, blocking on its
// underlying source as needed, until it has produced goal bytes.
//
// A Reader is not safe for concurrent use; the Model it was built from may
// be shared across any number of independently-running Readers.
type Reader struct {
	tbl      *lookupTable
	src      io.Reader
	sentinel uint
	shift    uint

	buffer   uint64
	bitsLeft uint // low, empty bits in buffer; 0 <= bitsLeft <= 64

	goal     int
	writeout int

	scratch [1]byte
	log     *slog.Logger
}

// NewReader builds a Reader that will produce exactly goal bytes by
// decoding src against model.
func NewReader(model Model, src io.Reader, goal int) (*Reader, error) {
	if goal < 0 {
		return nil, fmt.Errorf("chuffman: negative goal %d", goal)
	}
	tbl, err := buildLookup(model)
	if err != nil {
		return nil, err
	}
	s := model.Sentinel()
	return &Reader{
		tbl:      tbl,
		src:      src,
		sentinel: uint(s),
		shift:    uint(64 - s),
		bitsLeft: 64,
		goal:     goal,
		log:      noopLogger,
	}, nil
}

// SetLogger attaches a structured logger for bit-level diagnostics, logged
// at slog.LevelDebug. A nil logger disables logging.
func (r *Reader) SetLogger(l *slog.Logger) {
	if l == nil {
		l = noopLogger
	}
	r.log = l
}

// Read fills out with up to min(len(out), goal-writeout) decoded bytes and
// returns the count produced. It returns (0, nil) once writeout == goal.
// It never returns (0, nil) before then unless len(out) == 0.
func (r *Reader) Read(out []byte) (int, error) {
	target := r.goal - r.writeout
	if target > len(out) {
		target = len(out)
	}
	if target <= 0 {
		return 0, nil
	}

	produced := 0
	s := r.sentinel

fillLoop:
	for produced < target {
		if r.bitsLeft >= s+8 {
			ok, err := r.refill()
			if err != nil {
				return produced, err
			}
			if !ok {
				break fillLoop
			}
			continue
		}

		for 64-r.bitsLeft >= s && produced < target {
			sym, length := r.peel()
			out[produced] = sym
			produced++
			r.writeout++
			r.advance(length)
		}
		if produced == target {
			return produced, nil
		}

		ok, err := r.refill()
		if err != nil {
			return produced, err
		}
		if !ok {
			break fillLoop
		}
	}

	// Terminal drain: the source is exhausted. realBits tracks how many
	// of the live high bits in buffer are backed by actual input rather
	// than the zero padding that naturally appears as buffer shifts
	// left; once it runs out, any further codeword would be manufactured
	// from padding rather than decoded, which is a truncated stream
	// rather than a legitimately short one.
	realBits := int(64 - r.bitsLeft)
	for produced < target {
		if realBits <= 0 {
			return produced, fmt.Errorf("%w: %d more byte(s) needed, no input bits remain", ErrTruncated, target-produced)
		}
		sym, length := r.peel()
		out[produced] = sym
		produced++
		r.writeout++
		r.advance(length)
		realBits -= length
	}
	return produced, nil
}

// refill reads one byte from src and pushes it into the top of buffer's
// empty region. ok is false on a clean EOF; err carries any other error.
func (r *Reader) refill() (ok bool, err error) {
	n, err := r.src.Read(r.scratch[:])
	if n == 1 {
		r.buffer |= uint64(r.scratch[0]) << (r.bitsLeft - 8)
		r.bitsLeft -= 8
		r.log.Debug("chuffman: reader refill", "buffer", r.buffer, "bitsLeft", r.bitsLeft)
		return true, nil
	}
	if err == io.EOF || err == nil {
		return false, nil
	}
	return false, err
}

// peel reads the (symbol, length) owning the top S bits of buffer without
// mutating any state.
func (r *Reader) peel() (byte, int) {
	return r.tbl.decodeTop(r.buffer, r.shift)
}

// advance commits a decoded codeword of the given length, per invariant I5.
func (r *Reader) advance(length int) {
	r.buffer <<= uint(length)
	r.bitsLeft += uint(length)
}
