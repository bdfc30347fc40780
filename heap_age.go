package consultqueue

// node stored in the age heap.
type node struct {
	patient Patient
	idx     int // index in the heap (-1 if not present)
}

// ageHeap: max-heap by age (older first), tie-break by sequence ascending.
type ageHeap []*node

func (h ageHeap) Len() int { return len(h) }

func (h ageHeap) Less(i, j int) bool {
	// Older patients come first
	if h[i].patient.Age != h[j].patient.Age {
		return h[i].patient.Age > h[j].patient.Age
	}
	// Tie-break by sequence ascending (registered earlier comes first)
	return h[i].patient.Seq < h[j].patient.Seq
}

func (h ageHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}

func (h *ageHeap) Push(x interface{}) {
	n := x.(*node)
	n.idx = len(*h)
	*h = append(*h, n)
}

func (h *ageHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid memory leak
	item.idx = -1
	*h = old[0 : n-1]
	return item
}

// clone returns an independent copy whose nodes share nothing with h.
func (h ageHeap) clone() ageHeap {
	out := make(ageHeap, len(h))
	for i, n := range h {
		c := *n
		out[i] = &c
	}
	return out
}

func parentIndex(i int) int { return (i - 1) / 2 }
func leftIndex(i int) int   { return 2*i + 1 }
func rightIndex(i int) int  { return 2*i + 2 }
