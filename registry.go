package consultqueue

import (
	"fmt"

	rbt "github.com/emirpasic/gods/trees/redblacktree"
)

// Status tells whether a registered patient is still waiting.
type Status int

const (
	StatusWaiting Status = iota
	StatusConsulted
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusConsulted:
		return "consulted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Record is a registry entry: the patient as registered plus its status.
type Record struct {
	Patient
	Status Status
}

/*
registry keeps every patient a queue has ever registered, ordered by id.
It never owns heap nodes; it holds its own copies of the patient values.
*/
type registry struct {
	data *rbt.Tree
}

func newRegistry() *registry {
	return &registry{data: rbt.NewWithStringComparator()}
}

func (r *registry) has(id string) bool {
	_, found := r.data.Get(id)
	return found
}

func (r *registry) add(p Patient) {
	r.data.Put(p.ID, Record{Patient: p, Status: StatusWaiting})
}

func (r *registry) get(id string) (Record, bool) {
	val, found := r.data.Get(id)
	if !found {
		return Record{}, false
	}
	return val.(Record), true
}

// markConsulted flips a waiting record; an unknown id means the heap and
// registry drifted apart.
func (r *registry) markConsulted(id string) {
	rec, ok := r.get(id)
	if !ok {
		panic(fmt.Errorf("%w: consulted patient %s was never registered", ErrCorruptHeap, id))
	}
	rec.Status = StatusConsulted
	r.data.Put(id, rec)
}

func (r *registry) size() int {
	return r.data.Size()
}

// records returns every record in id order.
func (r *registry) records() []Record {
	out := make([]Record, 0, r.data.Size())
	it := r.data.Iterator()
	for it.Next() {
		out = append(out, it.Value().(Record))
	}
	return out
}
