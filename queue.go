package consultqueue

import (
	"container/heap"
	"sync"
	"time"
)

// Option configures a ConsultQueue at construction time.
type Option func(*ConsultQueue)

// WithIDBaseline sets the sequence value ids count up from.
func WithIDBaseline(baseline int64) Option {
	return func(q *ConsultQueue) { q.idBaseline = baseline }
}

// WithIDWidth sets the zero-padded width of the id sequence component.
func WithIDWidth(width int) Option {
	return func(q *ConsultQueue) { q.idWidth = width }
}

// WithLogger routes queue events to l.
func WithLogger(l Logger) Option {
	return func(q *ConsultQueue) {
		if l != nil {
			q.logger = l
		}
	}
}

// WithMetrics reports queue activity to m.
func WithMetrics(m *Metrics) Option {
	return func(q *ConsultQueue) { q.metrics = m }
}

// WithInvariantChecks re-verifies the heap after every mutation and panics on corruption.
// It turns O(log n) mutations into O(n) ones; meant for tests and debugging.
func WithInvariantChecks(enabled bool) Option {
	return func(q *ConsultQueue) { q.checkInvariants = enabled }
}

// ConsultQueue orders waiting patients by age, oldest first.
// Each instance owns its own counter, registry and heap.
type ConsultQueue struct {
	mu sync.Mutex

	heap     ageHeap
	ids      *IDGenerator
	registry *registry

	idBaseline      int64
	idWidth         int
	logger          Logger
	metrics         *Metrics
	checkInvariants bool
}

// NewConsultQueue constructs an empty queue.
func NewConsultQueue(opts ...Option) *ConsultQueue {
	q := &ConsultQueue{
		registry:   newRegistry(),
		idBaseline: DefaultIDBaseline,
		idWidth:    DefaultIDWidth,
		logger:     noopLogger{},
	}
	for _, opt := range opts {
		opt(q)
	}
	q.ids = NewIDGenerator(q.idBaseline, q.idWidth)
	return q
}

// RegisterPatient validates the registration, assigns an id and queues the patient.
// Invalid input returns an error wrapping ErrInvalidPatient and leaves the queue untouched.
func (q *ConsultQueue) RegisterPatient(name string, age int) (Patient, error) {
	if err := validatePatient(name, age); err != nil {
		q.metrics.observeRejected()
		q.logger.Warn("registration rejected", "name", name, "age", age, "error", err)
		return Patient{}, err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	seq, id := q.ids.Next(age)
	// Sequence overflow past the id width combined with a 3-digit age can
	// reproduce an earlier id; skip ahead rather than reuse it.
	for q.registry.has(id) {
		seq, id = q.ids.Next(age)
	}
	p := Patient{ID: id, Name: name, Age: age, Seq: seq}

	q.registry.add(p)
	heap.Push(&q.heap, &node{patient: p})
	q.verifyLocked()

	q.metrics.observeRegistered(len(q.heap))
	q.logger.Debug("patient registered", "id", p.ID, "age", p.Age, "waiting", len(q.heap))
	return p, nil
}

// NextPatient removes and returns the oldest waiting patient.
// The boolean is false when nobody is waiting; the queue is not modified in that case.
func (q *ConsultQueue) NextPatient() (Patient, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.heap) == 0 {
		return Patient{}, false
	}

	n := heap.Pop(&q.heap).(*node)
	q.registry.markConsulted(n.patient.ID)
	q.verifyLocked()

	q.metrics.observeConsulted(len(q.heap))
	q.logger.Debug("patient consulted", "id", n.patient.ID, "age", n.patient.Age, "waiting", len(q.heap))
	return n.patient, true
}

// Peek returns the oldest waiting patient without removing it.
func (q *ConsultQueue) Peek() (Patient, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.heap) == 0 {
		return Patient{}, false
	}
	return q.heap[0].patient, true
}

// SnapshotDescending lists waiting patients in the order NextPatient would return them.
// The live heap is never modified: a scratch copy is drained instead. Cost is O(n log n).
func (q *ConsultQueue) SnapshotDescending() []Entry {
	start := time.Now()

	q.mu.Lock()
	scratch := q.heap.clone()
	q.mu.Unlock()

	out := make([]Entry, 0, len(scratch))
	for scratch.Len() > 0 {
		n := heap.Pop(&scratch).(*node)
		out = append(out, n.patient.entry())
	}

	q.metrics.observeSnapshot(time.Since(start))
	return out
}

// Len returns the number of waiting patients.
func (q *ConsultQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}

// Admitted returns how many patients have been registered, waiting or not.
func (q *ConsultQueue) Admitted() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.registry.size()
}

// Lookup returns the registry record for id.
func (q *ConsultQueue) Lookup(id string) (Record, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.registry.get(id)
}

// Records returns every patient registered so far, ordered by id.
func (q *ConsultQueue) Records() []Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.registry.records()
}

// Tree returns a tree-shaped view of the waiting patients, or nil when empty.
func (q *ConsultQueue) Tree() *TreeNode {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.buildTree(0)
}

// Levels returns waiting patients grouped by heap depth, root first.
func (q *ConsultQueue) Levels() [][]Patient {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.levels()
}

// verifyLocked runs the heap invariant check when enabled.
// Must be called with mu held.
func (q *ConsultQueue) verifyLocked() {
	if !q.checkInvariants {
		return
	}
	q.heap.verify()
}
