package canon

import "testing"

func TestFromLengthsRejectsAllZero(t *testing.T) {
	if _, err := FromLengths(make([]int, 10)); err == nil {
		t.Fatalf("FromLengths succeeded, want error")
	}
}

func TestFromLengthsRejectsOutOfRange(t *testing.T) {
	lengths := []int{0, -1}
	if _, err := FromLengths(lengths); err == nil {
		t.Fatalf("FromLengths succeeded with negative length, want error")
	}
	lengths = []int{33}
	if _, err := FromLengths(lengths); err == nil {
		t.Fatalf("FromLengths succeeded with length 33, want error")
	}
}

func TestFromLengthsIsCanonical(t *testing.T) {
	// A=1 B=2 C=2, the textbook 3-symbol canonical assignment.
	m, err := FromLengths([]int{1, 2, 2})
	if err != nil {
		t.Fatalf("FromLengths: %v", err)
	}
	wantCode := map[byte]uint32{0: 0, 1: 2, 2: 3}
	wantLen := map[byte]int{0: 1, 1: 2, 2: 2}
	for sym := byte(0); sym < 3; sym++ {
		code, length, ok := m.Code(sym)
		if !ok {
			t.Fatalf("symbol %d has no code", sym)
		}
		if code != wantCode[sym] || length != wantLen[sym] {
			t.Fatalf("symbol %d: got code=%0*b len=%d, want code=%0*b len=%d",
				sym, length, code, length, wantLen[sym], wantCode[sym], wantLen[sym])
		}
	}
	if m.Sentinel() != 2 {
		t.Fatalf("Sentinel() = %d, want 2", m.Sentinel())
	}
}

func TestFromLengthsEntriesSortedByKey(t *testing.T) {
	m, err := FromLengths([]int{3, 3, 2, 1})
	if err != nil {
		t.Fatalf("FromLengths: %v", err)
	}
	entries := m.PrefixTable()
	for i := 1; i < len(entries); i++ {
		if entries[i].Key <= entries[i-1].Key {
			t.Fatalf("entries not strictly increasing at %d: %v", i, entries)
		}
	}
	if entries[0].Key != 0 {
		t.Fatalf("first entry key = %d, want 0", entries[0].Key)
	}
}

func TestFromLengthsIdentityModel(t *testing.T) {
	lengths := make([]int, 256)
	for i := range lengths {
		lengths[i] = 8
	}
	m, err := FromLengths(lengths)
	if err != nil {
		t.Fatalf("FromLengths: %v", err)
	}
	for sym := 0; sym < 256; sym++ {
		code, length, ok := m.Code(byte(sym))
		if !ok || length != 8 || code != uint32(sym) {
			t.Fatalf("symbol %d: got code=%d len=%d ok=%v, want code=%d len=8", sym, code, length, ok, sym)
		}
	}
}

func TestCodeUnknownSymbol(t *testing.T) {
	m, err := FromLengths([]int{1, 2, 2})
	if err != nil {
		t.Fatalf("FromLengths: %v", err)
	}
	if _, _, ok := m.Code(200); ok {
		t.Fatalf("Code(200) = ok true, want false")
	}
}

func TestFromHistogramRejectsEmpty(t *testing.T) {
	var freq [256]int
	if _, err := FromHistogram(freq); err == nil {
		t.Fatalf("FromHistogram succeeded on empty histogram, want error")
	}
}
