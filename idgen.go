package consultqueue

import "fmt"

const (
	// DefaultIDBaseline is the sequence value the generator counts up from.
	DefaultIDBaseline int64 = 1000
	// DefaultIDWidth is the zero-padded width of the sequence component.
	DefaultIDWidth = 4
)

// IDGenerator hands out monotonically increasing patient identifiers of the
// form <sequence><age>, e.g. 100145 for the first patient aged 45.
// It is not safe for concurrent use; ConsultQueue guards it with its own lock.
type IDGenerator struct {
	baseline int64
	last     int64
	width    int
}

// NewIDGenerator returns a generator whose first sequence value is baseline+1.
// A non-positive width falls back to DefaultIDWidth.
func NewIDGenerator(baseline int64, width int) *IDGenerator {
	if width <= 0 {
		width = DefaultIDWidth
	}
	return &IDGenerator{baseline: baseline, last: baseline, width: width}
}

// Next advances the sequence and returns it together with the patient id for age.
func (g *IDGenerator) Next(age int) (int64, string) {
	g.last++
	return g.last, fmt.Sprintf("%0*d%02d", g.width, g.last, age)
}

// Issued returns how many sequence values have been handed out.
func (g *IDGenerator) Issued() int64 {
	return g.last - g.baseline
}
