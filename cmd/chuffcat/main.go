// Command chuffcat round-trips files through a canonical-Huffman code: it
// trains a model on each file's own byte histogram, encodes the file, then
// decodes the result back out and reports whether it matches, exercising
// both chuffman.Reader and chuffman.Iterator end to end.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/huffcore/chuffman"
	"github.com/huffcore/chuffman/canon"
)

func main() {
	useIterator := flag.Bool("iter", false, "decode with the pull-based Iterator instead of the blocking Reader")
	flag.Parse()

	if err := run(flag.Args(), *useIterator); err != nil {
		log.Fatal(err)
	}
}

func run(patterns []string, useIterator bool) error {
	if len(patterns) == 0 {
		return fmt.Errorf("chuffcat: usage: chuffcat [-iter] FILE...")
	}

	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return fmt.Errorf("chuffcat: bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			paths = append(paths, pattern) // let os.Open report the real error
			continue
		}
		paths = append(paths, matches...)
	}

	for _, path := range paths {
		if err := roundTrip(path, useIterator); err != nil {
			return fmt.Errorf("chuffcat: %s: %w", path, err)
		}
	}
	return nil
}

func roundTrip(path string, useIterator bool) error {
	original, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var freq [256]int
	for _, b := range original {
		freq[b]++
	}
	model, err := canon.FromHistogram(freq)
	if err != nil {
		if len(original) == 0 {
			fmt.Printf("%s: empty, nothing to encode\n", path)
			return nil
		}
		return err
	}

	var packed bytes.Buffer
	enc := canon.NewEncoder(&packed, model)
	if _, err := enc.Write(original); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}

	// The Iterator surface only accepts an 8-bit sentinel (its vault is
	// sized for exactly one refill byte; see chuffman.NewIterator). A
	// histogram-trained model has no such cap, so most real files need
	// more than 8 bits for their longest code. Rather than abort the
	// round-trip, fall back to Reader and say so.
	surface := "Reader"
	effectiveIterator := useIterator
	if useIterator && model.Sentinel() > 8 {
		fmt.Printf("%s: longest code is %d bits, exceeds Iterator's 8-bit limit; falling back to Reader\n", path, model.Sentinel())
		effectiveIterator = false
	} else if useIterator {
		surface = "Iterator"
	}

	decoded, err := decode(model, &packed, len(original), effectiveIterator)
	if err != nil {
		return err
	}

	ok := bytes.Equal(original, decoded)
	fmt.Printf("%s: %d -> %d bytes, %s round-trip ok=%v\n", path, len(original), packed.Len(), surface, ok)
	if !ok {
		return fmt.Errorf("round-trip mismatch")
	}
	return nil
}

func decode(model chuffman.Model, src io.Reader, goal int, useIterator bool) ([]byte, error) {
	if !useIterator {
		r, err := chuffman.NewReader(model, src, goal)
		if err != nil {
			return nil, err
		}
		out := make([]byte, goal)
		if _, err := io.ReadFull(r, out); err != nil {
			return nil, err
		}
		return out, nil
	}

	it, err := chuffman.NewIterator(model, src, goal)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, goal)
	for b, ok := it.Next(); ok; b, ok = it.Next() {
		out = append(out, b)
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
