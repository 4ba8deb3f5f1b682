package chuffman

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/huffcore/chuffman/internal/lookupcache"
)

// maxSentinel bounds the reader surface: S occupies one prefix key plus an
// 8-bit refill must still fit a 64-bit register with room to spare
// (S + 8 <= 64). The iterator surface enforces the tighter S <= 8 that its
// vault/reserve mechanics were designed around; see NewIterator.
const maxSentinel = 32

// lookupTable answers "entry owning q" in O(1) by materializing a flat
// array of size 2^S, following spec.md's note that this is preferable to a
// predecessor search for any S small enough to afford the memory.
type lookupTable struct {
	sentinel int
	slots    []packedEntry
}

type packedEntry struct {
	symbol byte
	length uint8
}

// lookupCacheSize is deliberately small: in realistic use one process
// decodes against a handful of distinct models (one per container format,
// say), not thousands.
const lookupCacheSize = 64

var cache = lookupcache.New[*lookupTable](lookupCacheSize)

func buildLookup(model Model) (*lookupTable, error) {
	s := model.Sentinel()
	if s < 1 || s > maxSentinel {
		return nil, fmt.Errorf("%w: sentinel %d (want 1..%d)", ErrSentinelRange, s, maxSentinel)
	}

	entries := model.PrefixTable()
	key := digest(s, entries)
	if tbl, ok := cache.Get(key); ok && tbl.sentinel == s {
		return tbl, nil
	}

	tbl, err := newLookupTable(s, entries)
	if err != nil {
		return nil, err
	}
	cache.Add(key, tbl)
	return tbl, nil
}

func newLookupTable(s int, entries []Entry) (*lookupTable, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: empty prefix table", ErrMalformedModel)
	}
	if entries[0].Key != 0 {
		return nil, fmt.Errorf("%w: smallest key is %d, want 0", ErrMalformedModel, entries[0].Key)
	}

	size := 1 << uint(s)
	slots := make([]packedEntry, size)

	prevKey := -1
	for i, e := range entries {
		if e.Length < 1 || e.Length > s {
			return nil, fmt.Errorf("%w: symbol %d has length %d outside 1..%d", ErrMalformedModel, e.Symbol, e.Length, s)
		}
		if int(e.Key) <= prevKey {
			return nil, fmt.Errorf("%w: keys are not strictly increasing at index %d", ErrMalformedModel, i)
		}
		if int(e.Key) >= size {
			return nil, fmt.Errorf("%w: key %d outside 0..%d", ErrMalformedModel, e.Key, size)
		}

		end := size
		if i+1 < len(entries) {
			end = int(entries[i+1].Key)
		}
		if int(e.Key) >= end {
			return nil, fmt.Errorf("%w: symbol %d owns an empty interval", ErrMalformedModel, e.Symbol)
		}

		pe := packedEntry{symbol: e.Symbol, length: uint8(e.Length)}
		for q := int(e.Key); q < end; q++ {
			slots[q] = pe
		}
		prevKey = int(e.Key)
	}

	return &lookupTable{sentinel: s, slots: slots}, nil
}

// decode returns the (symbol, length) owning the S-bit query q.
func (t *lookupTable) decode(q uint64) (byte, int) {
	e := t.slots[q]
	return e.symbol, int(e.length)
}

// decodeTop peels one codeword off the top S bits of buffer.
func (t *lookupTable) decodeTop(buffer uint64, shift uint) (byte, int) {
	return t.decode(buffer >> shift)
}

// digest hashes a model's shape so structurally identical models (even
// distinct Model values) share a cached lookup table.
func digest(sentinel int, entries []Entry) uint64 {
	h := xxhash.New()
	var head [1]byte
	head[0] = byte(sentinel)
	_, _ = h.Write(head[:])

	var row [6]byte
	for _, e := range entries {
		row[0] = byte(e.Key >> 24)
		row[1] = byte(e.Key >> 16)
		row[2] = byte(e.Key >> 8)
		row[3] = byte(e.Key)
		row[4] = e.Symbol
		row[5] = byte(e.Length)
		_, _ = h.Write(row[:])
	}
	return h.Sum64()
}
