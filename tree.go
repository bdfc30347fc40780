package consultqueue

import "fmt"

// TreeNode is a read-only, tree-shaped view of the heap. Links are derived
// from array positions when the view is built, so they always mirror the
// heap's shape at that moment; later queue mutations do not update them.
type TreeNode struct {
	Patient
	Left  *TreeNode
	Right *TreeNode
}

// buildTree materializes the subtree rooted at array index i.
func (h ageHeap) buildTree(i int) *TreeNode {
	if i >= len(h) {
		return nil
	}
	return &TreeNode{
		Patient: h[i].patient,
		Left:    h.buildTree(leftIndex(i)),
		Right:   h.buildTree(rightIndex(i)),
	}
}

// levels groups the heap's patients by depth, root level first.
func (h ageHeap) levels() [][]Patient {
	var out [][]Patient
	for start, width := 0, 1; start < len(h); start, width = start+width, width*2 {
		end := min(start+width, len(h))
		level := make([]Patient, 0, end-start)
		for _, n := range h[start:end] {
			level = append(level, n.patient)
		}
		out = append(out, level)
	}
	return out
}

// verify panics if the ordering or index bookkeeping of h is broken.
func (h ageHeap) verify() {
	for i, n := range h {
		if n == nil {
			panic(fmt.Errorf("%w: empty slot at %d", ErrCorruptHeap, i))
		}
		if n.idx != i {
			panic(fmt.Errorf("%w: patient %s at %d records index %d", ErrCorruptHeap, n.patient.ID, i, n.idx))
		}
		if i > 0 && h.Less(i, parentIndex(i)) {
			p := h[parentIndex(i)].patient
			panic(fmt.Errorf("%w: patient %s (age %d) sits below %s (age %d)",
				ErrCorruptHeap, n.patient.ID, n.patient.Age, p.ID, p.Age))
		}
	}
}
