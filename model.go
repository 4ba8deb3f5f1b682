package chuffman

// Entry is one codeword of a canonical Huffman code, expressed the way the
// decoder wants to query it: Key is the codeword's bits left-aligned inside
// an S-bit field (S is the model's Sentinel), with the low S-Length bits
// zero. Sorting entries by Key tiles [0, 2^S) into the ownership intervals
// the lookup table answers predecessor queries against.
type Entry struct {
	Key    uint32 // left-aligned prefix, 0 <= Key < 1<<S
	Symbol byte
	Length int // 1 <= Length <= S
}

// Model is the canonical-Huffman code the decoder decodes against. It is
// read-only from the decoder's perspective and may be shared by any number
// of concurrently running Readers and Iterators.
//
// chuffman never builds a Model itself: tree construction, histogram-to-code
// assignment, and encoding are all collaborators outside this package. See
// github.com/huffcore/chuffman/canon for a reference implementation.
type Model interface {
	// Sentinel returns S, the query width in bits. Every codeword's
	// Length is at most S.
	Sentinel() int

	// PrefixTable returns the model's entries sorted ascending by Key,
	// with Key[0] == 0 and each entry owning the half-open interval
	// [Key, nextKey) (the last entry's interval extends to 1<<S).
	PrefixTable() []Entry
}
