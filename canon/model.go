package canon

import (
	"fmt"
	"sort"

	"github.com/huffcore/chuffman"
)

// Model is a concrete chuffman.Model built from explicit canonical code
// lengths or a symbol histogram.
type Model struct {
	sentinel int
	entries  []chuffman.Entry
	bySymbol map[byte]chuffman.Entry
}

type symLen struct {
	sym byte
	len int
}

// FromLengths builds a canonical Model from an explicit per-symbol code
// length list (index = symbol, 0 = unused), assigning codes the way
// RFC 1951 section 3.2.2 assigns DEFLATE's Huffman codes: shortest codes
// first, ties broken by symbol value.
func FromLengths(lengths []int) (*Model, error) {
	var used []symLen
	maxLen := 0
	for sym, l := range lengths {
		if l == 0 {
			continue
		}
		if l < 0 || l > 32 {
			return nil, fmt.Errorf("canon: symbol %d has invalid length %d", sym, l)
		}
		used = append(used, symLen{sym: byte(sym), len: l})
		if l > maxLen {
			maxLen = l
		}
	}
	if len(used) == 0 {
		return nil, fmt.Errorf("canon: no symbols with a nonzero length")
	}

	blCount := make([]int, maxLen+1)
	for _, s := range used {
		blCount[s.len]++
	}
	nextCode := make([]int, maxLen+1)
	code := 0
	for bits := 1; bits <= maxLen; bits++ {
		code = (code + blCount[bits-1]) << 1
		nextCode[bits] = code
	}

	sort.Slice(used, func(i, j int) bool {
		if used[i].len != used[j].len {
			return used[i].len < used[j].len
		}
		return used[i].sym < used[j].sym
	})

	entries := make([]chuffman.Entry, 0, len(used))
	for _, s := range used {
		c := nextCode[s.len]
		nextCode[s.len]++
		key := uint32(c) << uint(maxLen-s.len)
		entries = append(entries, chuffman.Entry{Key: key, Symbol: s.sym, Length: s.len})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })

	m := &Model{
		sentinel: maxLen,
		entries:  entries,
		bySymbol: make(map[byte]chuffman.Entry, len(entries)),
	}
	for _, e := range entries {
		m.bySymbol[e.Symbol] = e
	}
	return m, nil
}

// FromHistogram trains a canonical Model from symbol frequencies.
func FromHistogram(freq [256]int) (*Model, error) {
	return FromLengths(LengthsFromHistogram(freq))
}

// Sentinel implements chuffman.Model.
func (m *Model) Sentinel() int { return m.sentinel }

// PrefixTable implements chuffman.Model.
func (m *Model) PrefixTable() []chuffman.Entry { return m.entries }

// Code returns the codeword bits (right-aligned, Length wide) chosen for
// sym, for use by Encoder. ok is false if sym has no assigned code.
func (m *Model) Code(sym byte) (code uint32, length int, ok bool) {
	e, ok := m.bySymbol[sym]
	if !ok {
		return 0, 0, false
	}
	return e.Key >> uint(m.sentinel-e.Length), e.Length, true
}
