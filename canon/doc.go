// Package canon builds canonical Huffman codes and is the one place in
// this module that performs Huffman tree construction, histogram-to-code
// assignment, and encoding — collaborators that github.com/huffcore/chuffman's
// decoder core treats as external and consumes only through the
// chuffman.Model interface.
//
// It exists so the module is round-trip testable and demoable end to end
// without a second repository providing an encoder; it is not part of the
// decoder's public surface area.
package canon
