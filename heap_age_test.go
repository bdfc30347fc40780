package consultqueue

import (
	"container/heap"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNode(id string, age int, seq int64) *node {
	return &node{patient: Patient{ID: id, Name: id, Age: age, Seq: seq}}
}

func TestAgeHeap_Basics(t *testing.T) {
	var h ageHeap
	assert.Equal(t, 0, h.Len())

	heap.Push(&h, newNode("a", 30, 1))
	heap.Push(&h, newNode("b", 70, 2))
	heap.Push(&h, newNode("c", 50, 3))
	require.Equal(t, 3, h.Len())

	// oldest at the root
	assert.Equal(t, 70, h[0].patient.Age)

	top := heap.Pop(&h).(*node)
	assert.Equal(t, "b", top.patient.ID)
	assert.Equal(t, -1, top.idx)
	assert.Equal(t, 50, h[0].patient.Age)
}

func TestAgeHeap_TieBreakBySequence(t *testing.T) {
	var h ageHeap
	heap.Push(&h, newNode("late", 40, 9))
	heap.Push(&h, newNode("early", 40, 2))
	heap.Push(&h, newNode("mid", 40, 5))

	var order []string
	for h.Len() > 0 {
		order = append(order, heap.Pop(&h).(*node).patient.ID)
	}
	assert.Equal(t, []string{"early", "mid", "late"}, order)
}

func TestAgeHeap_IndexTracking(t *testing.T) {
	var h ageHeap
	nodes := []*node{
		newNode("a", 10, 1),
		newNode("b", 90, 2),
		newNode("c", 40, 3),
		newNode("d", 60, 4),
		newNode("e", 20, 5),
	}
	for _, n := range nodes {
		heap.Push(&h, n)
	}

	for i, n := range h {
		assert.Equal(t, i, n.idx, "node %s", n.patient.ID)
	}
	assert.NotPanics(t, h.verify)

	heap.Pop(&h)
	for i, n := range h {
		assert.Equal(t, i, n.idx, "node %s", n.patient.ID)
	}
	assert.NotPanics(t, h.verify)
}

func TestAgeHeap_CloneIsIndependent(t *testing.T) {
	var h ageHeap
	heap.Push(&h, newNode("a", 10, 1))
	heap.Push(&h, newNode("b", 90, 2))
	heap.Push(&h, newNode("c", 40, 3))

	c := h.clone()
	require.Equal(t, h.Len(), c.Len())
	for i := range h {
		assert.Equal(t, h[i].patient, c[i].patient)
		assert.NotSame(t, h[i], c[i])
	}

	for c.Len() > 0 {
		heap.Pop(&c)
	}
	assert.Equal(t, 3, h.Len())
	assert.NotPanics(t, h.verify)
}

func TestAgeHeap_IndexArithmetic(t *testing.T) {
	tests := []struct {
		i, parent, left, right int
	}{
		{0, 0, 1, 2},
		{1, 0, 3, 4},
		{2, 0, 5, 6},
		{5, 2, 11, 12},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.parent, parentIndex(tc.i), "parent of %d", tc.i)
		assert.Equal(t, tc.left, leftIndex(tc.i), "left of %d", tc.i)
		assert.Equal(t, tc.right, rightIndex(tc.i), "right of %d", tc.i)
	}
}

func TestAgeHeap_Levels(t *testing.T) {
	var h ageHeap
	for i, age := range []int{70, 60, 50, 40, 30, 20} {
		heap.Push(&h, newNode(string(rune('a'+i)), age, int64(i)))
	}

	levels := h.levels()
	require.Len(t, levels, 3)
	assert.Len(t, levels[0], 1)
	assert.Len(t, levels[1], 2)
	assert.Len(t, levels[2], 3)
	assert.Equal(t, 70, levels[0][0].Age)
}
