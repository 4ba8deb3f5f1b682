package canon

import "container/heap"

type node struct {
	freq        int
	sym         byte
	leaf        bool
	left, right *node
}

type nodeHeap []*node

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].freq < h[j].freq }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap) Push(x interface{}) { *h = append(*h, x.(*node)) }
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// LengthsFromHistogram derives a code-length assignment (one entry per
// symbol 0..255, 0 meaning the symbol is unused) from symbol frequencies,
// using the standard greedy two-smallest-merge Huffman tree construction.
// Ties are broken by heap insertion order, which is deterministic for a
// given freq array but not specified beyond that.
func LengthsFromHistogram(freq [256]int) []int {
	lengths := make([]int, 256)

	var items []*node
	for sym := 0; sym < 256; sym++ {
		if freq[sym] > 0 {
			items = append(items, &node{freq: freq[sym], sym: byte(sym), leaf: true})
		}
	}

	switch len(items) {
	case 0:
		return lengths
	case 1:
		lengths[items[0].sym] = 1
		return lengths
	}

	h := nodeHeap(items)
	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(*node)
		b := heap.Pop(&h).(*node)
		heap.Push(&h, &node{freq: a.freq + b.freq, left: a, right: b})
	}
	root := heap.Pop(&h).(*node)
	assignDepth(root, 0, lengths)
	return lengths
}

func assignDepth(n *node, depth int, lengths []int) {
	if n.leaf {
		if depth == 0 {
			depth = 1
		}
		lengths[n.sym] = depth
		return
	}
	assignDepth(n.left, depth+1, lengths)
	assignDepth(n.right, depth+1, lengths)
}
