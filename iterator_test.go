package chuffman_test

import (
	"bytes"
	"testing"

	"github.com/huffcore/chuffman"
	"github.com/huffcore/chuffman/canon"
)

func TestIteratorRoundTrip(t *testing.T) {
	model := histogramModel(t)
	origin := []byte{0, 9, 9, 9, 9, 9, 9, 9, 9, 9, 7, 0, 7, 4, 9, 9, 0, 0, 0, 4, 0}
	packed := encode(t, model, origin)

	it, err := chuffman.NewIterator(model, bytes.NewReader(packed), len(origin))
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}

	var got []byte
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		got = append(got, b)
	}
	if err := it.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
	if !bytes.Equal(got, origin) {
		t.Fatalf("got %v, want %v", got, origin)
	}
}

func TestIteratorExhaustionAtZeroGoal(t *testing.T) {
	model := identityModel(t)
	it, err := chuffman.NewIterator(model, bytes.NewReader(nil), 0)
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	if _, ok := it.Next(); ok {
		t.Fatalf("Next returned ok=true, want false immediately")
	}
}

func TestIteratorTerminatesExactlyAtGoal(t *testing.T) {
	model := identityModel(t)
	xs := []byte{177, 112, 84, 143, 148, 195, 165, 206, 34, 10}
	packed := encode(t, model, xs)

	it, err := chuffman.NewIterator(model, bytes.NewReader(packed), len(xs))
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}
	for i := 0; i < len(xs); i++ {
		b, ok := it.Next()
		if !ok {
			t.Fatalf("Next(%d) = ok false, want true", i)
		}
		if b != xs[i] {
			t.Fatalf("Next(%d) = %d, want %d", i, b, xs[i])
		}
	}
	if _, ok := it.Next(); ok {
		t.Fatalf("Next after goal reached = ok true, want false")
	}
}

// countingReader counts how many times Read is invoked, to check that the
// Iterator never reads more than one input byte per call to Next.
type countingReader struct {
	data  []byte
	pos   int
	calls int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.calls++
	if c.pos >= len(c.data) {
		return 0, nil // will be reported as EOF-equivalent below via n==0
	}
	n := copy(p, c.data[c.pos:])
	c.pos += n
	return n, nil
}

func TestIteratorCausalityAndNoOverRead(t *testing.T) {
	model := histogramModel(t)
	origin := []byte{0, 9, 9, 9, 9, 9, 9, 9, 9, 9, 7, 0, 7, 4, 9, 9, 0, 0, 0, 4, 0}
	packed := encode(t, model, origin)

	src := &countingReader{data: packed}
	it, err := chuffman.NewIterator(model, src, len(origin))
	if err != nil {
		t.Fatalf("NewIterator: %v", err)
	}

	for k := 0; k < len(origin); k++ {
		b, ok := it.Next()
		if !ok {
			t.Fatalf("Next(%d) = ok false, want true", k)
		}
		if b != origin[k] {
			t.Fatalf("Next(%d) = %d, want %d (not causally consistent)", k, b, origin[k])
		}
		// Construction already primed up to 8 bytes; after that, each
		// Next call issues at most one more source read.
		if src.calls > 8+k+1 {
			t.Fatalf("after %d Next calls, source was read %d times", k+1, src.calls)
		}
	}
}

func TestIteratorShortSourceRejected(t *testing.T) {
	model := histogramModel(t)
	// A single zero byte cannot possibly supply a large goal.
	_, err := chuffman.NewIterator(model, bytes.NewReader([]byte{0x00}), 1000)
	if err == nil {
		t.Fatalf("NewIterator succeeded, want ErrShortSource")
	}
}

func TestIteratorRejectsSentinelAboveEightWithRealModel(t *testing.T) {
	lengths := make([]int, 300)
	for i := range lengths {
		lengths[i] = 9
	}
	// canon doesn't cap sentinel at 8 (the core's concern, not the
	// builder's) so this constructs fine and lets NewIterator reject it.
	m, err := canon.FromLengths(lengths[:250])
	if err != nil {
		t.Fatalf("FromLengths: %v", err)
	}
	if _, err := chuffman.NewIterator(m, bytes.NewReader(nil), 0); err == nil {
		t.Fatalf("NewIterator succeeded, want sentinel rejection")
	}
}
