package consultqueue

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidPatient is a base error for registrations rejected before they reach the heap.
	ErrInvalidPatient = errors.New("consultqueue: invalid patient")
	// ErrEmptyName is returned when a registration carries a blank name.
	ErrEmptyName = fmt.Errorf("%w: name is empty", ErrInvalidPatient)
	// ErrNegativeAge is returned when a registration carries an age below zero.
	ErrNegativeAge = fmt.Errorf("%w: age is negative", ErrInvalidPatient)
	// ErrCorruptHeap is the panic value prefix used when the heap's invariants no longer hold.
	ErrCorruptHeap = errors.New("consultqueue: corrupt heap")
)

// Patient is a registered patient waiting for (or done with) a consultation.
type Patient struct {
	ID   string
	Name string
	Age  int

	Seq int64 // numeric sequence component of ID; lower means registered earlier
}

// Entry is one row of a sorted queue listing.
type Entry struct {
	ID   string
	Name string
}

func (p Patient) String() string {
	return fmt.Sprintf("%s, %d, %s", p.Name, p.Age, p.ID)
}

// entry projects the patient onto a listing row.
func (p Patient) entry() Entry {
	return Entry{ID: p.ID, Name: p.Name}
}

// validatePatient rejects registrations the heap must never see.
func validatePatient(name string, age int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if age < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeAge, age)
	}
	return nil
}
