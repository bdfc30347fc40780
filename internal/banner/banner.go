// Package banner renders the report blocks written after each queue event.
package banner

import (
	"fmt"
	"strings"

	"github.com/paljsingh/consultqueue"
)

const footer = "----------------------------------------------\n"

// InitialQueue describes the queue after the roster has been loaded.
func InitialQueue(added int, entries []consultqueue.Entry) string {
	var b strings.Builder
	b.WriteString("---- initial queue ---------------\n")
	fmt.Fprintf(&b, "No of patients added: %d\n", added)
	b.WriteString("Refreshed queue:\n")
	writeEntries(&b, entries)
	b.WriteString(footer)
	return b.String()
}

// NewPatient describes a freshly registered patient and the refreshed queue.
func NewPatient(p consultqueue.Patient, entries []consultqueue.Entry) string {
	var b strings.Builder
	b.WriteString("---- new patient entered ---------------\n")
	fmt.Fprintf(&b, "Patient details: %s, %d, %s\n", p.Name, p.Age, p.ID)
	b.WriteString("Refreshed queue:\n")
	writeEntries(&b, entries)
	b.WriteString(footer)
	return b.String()
}

// NextPatient announces the patient sent to consultation. An empty queue
// (ok == false) produces no output.
func NextPatient(p consultqueue.Patient, ok bool) string {
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString("---- next patient ---------------\n")
	fmt.Fprintf(&b, "Next patient for consultation is: %s, %s\n", p.ID, p.Name)
	b.WriteString(footer)
	return b.String()
}

// writeEntries always ends with exactly one newline, so an empty queue
// leaves a blank line under the heading.
func writeEntries(b *strings.Builder, entries []consultqueue.Entry) {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.ID + ", " + e.Name
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
}
