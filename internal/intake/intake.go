// Package intake parses the line-oriented patient roster and command streams.
//
// Roster lines look like "name, age". Command lines are either
// "newPatient: name, age" or "nextPatient". Lines that match neither shape
// are ignored, so comments and blank lines may be mixed in freely.
package intake

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedLine is returned for lines that look like input but cannot be parsed.
var ErrMalformedLine = errors.New("intake: malformed line")

// Admission is one "name, age" pair.
type Admission struct {
	Name string
	Age  int
	Line int // 1-based line number in the source
}

// CommandKind distinguishes the command stream's two verbs.
type CommandKind int

const (
	NewPatient CommandKind = iota + 1
	NextPatient
)

func (k CommandKind) String() string {
	switch k {
	case NewPatient:
		return "newPatient"
	case NextPatient:
		return "nextPatient"
	default:
		return fmt.Sprintf("CommandKind(%d)", int(k))
	}
}

// Command is one parsed command line. Admission is only set for NewPatient.
type Command struct {
	Kind      CommandKind
	Admission Admission
}

var (
	commaSplit     = regexp.MustCompile(` *, *`)
	newPatientCmd  = regexp.MustCompile(`^newPatient: *`)
	nextPatientCmd = regexp.MustCompile(`^nextPatient`)
)

// ParseRoster reads every "name, age" line from r.
func ParseRoster(r io.Reader) ([]Admission, error) {
	var out []Admission
	err := scanLines(r, func(n int, line string) error {
		if !strings.Contains(line, ",") {
			return nil
		}
		a, err := parseAdmission(n, line)
		if err != nil {
			return err
		}
		out = append(out, a)
		return nil
	})
	return out, err
}

// ParseCommands reads newPatient/nextPatient commands from r in order.
func ParseCommands(r io.Reader) ([]Command, error) {
	var out []Command
	err := scanLines(r, func(n int, line string) error {
		switch {
		case newPatientCmd.MatchString(line):
			a, err := parseAdmission(n, newPatientCmd.ReplaceAllString(line, ""))
			if err != nil {
				return err
			}
			out = append(out, Command{Kind: NewPatient, Admission: a})
		case nextPatientCmd.MatchString(line):
			out = append(out, Command{Kind: NextPatient})
		}
		return nil
	})
	return out, err
}

func scanLines(r io.Reader, fn func(n int, line string) error) error {
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		if err := fn(n, strings.TrimRight(scanner.Text(), " \t\r")); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func parseAdmission(n int, s string) (Admission, error) {
	parts := commaSplit.Split(s, -1)
	if len(parts) != 2 {
		return Admission{}, fmt.Errorf("%w: line %d: want \"name, age\", got %q", ErrMalformedLine, n, s)
	}
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return Admission{}, fmt.Errorf("%w: line %d: empty name", ErrMalformedLine, n)
	}
	age, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Admission{}, fmt.Errorf("%w: line %d: age %q is not an integer", ErrMalformedLine, n, parts[1])
	}
	return Admission{Name: name, Age: age, Line: n}, nil
}
