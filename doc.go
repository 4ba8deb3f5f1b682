/*
Package chuffman decodes a byte stream that was packed with a canonical
Huffman code: a sequence of variable-width, prefix-free codewords
concatenated bit by bit, most significant bit first, without byte
alignment between codewords.

The package does not build Huffman codes itself. It consumes a Model — an
externally supplied description of the code, described at the prefix level
rather than as a tree — and decodes against it. Callers who need to build a
canonical code from a symbol histogram or an explicit list of code lengths
can use the sibling package, github.com/huffcore/chuffman/canon.

Two decoding surfaces are provided:

  - Reader, a blocking io.Reader-shaped surface that fills a caller-supplied
    byte slice per call, for callers who already think in terms of
    io.Copy/io.ReadFull.
  - Iterator, a pull-based single-byte surface for callers who want to
    consume decoded bytes one at a time without over-reading the
    compressed source: it reads at most one input byte per call to Next.

Both surfaces require the caller to supply the exact number of output
bytes to produce (goal); the wire format is not self-delimiting, so there
is no other way to know when to stop short of the padding bits in the
final compressed byte.

For example, decoding into a fixed buffer:

	r, err := chuffman.NewReader(model, src, len(want))
	n, err := io.ReadFull(r, buf)

Or pulling bytes one at a time:

	it, err := chuffman.NewIterator(model, src, len(want))
	for b, ok := it.Next(); ok; b, ok = it.Next() {
	    ...
	}
	if err := it.Err(); err != nil {
	    ...
	}
*/
package chuffman
