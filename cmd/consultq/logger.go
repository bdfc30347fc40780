package main

import (
	"fmt"
	"log"
	"strings"
)

// stdLogger adapts the standard library logger to consultqueue.Logger.
type stdLogger struct {
	l     *log.Logger
	debug bool
}

func (s stdLogger) Debug(msg string, args ...any) {
	if s.debug {
		s.print("DEBUG", msg, args)
	}
}

func (s stdLogger) Info(msg string, args ...any)  { s.print("INFO", msg, args) }
func (s stdLogger) Warn(msg string, args ...any)  { s.print("WARN", msg, args) }
func (s stdLogger) Error(msg string, args ...any) { s.print("ERROR", msg, args) }

func (s stdLogger) print(level, msg string, args []any) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			fmt.Fprintf(&b, " %v=%v", args[i], args[i+1])
		} else {
			fmt.Fprintf(&b, " %v", args[i])
		}
	}
	s.l.Print(b.String())
}
