// Package clinic runs one consultation day: it loads the roster, replays the
// command stream against a ConsultQueue and publishes the resulting report.
package clinic

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/paljsingh/consultqueue"
	"github.com/paljsingh/consultqueue/internal/banner"
	"github.com/paljsingh/consultqueue/internal/blob/core"
	"github.com/paljsingh/consultqueue/internal/intake"
)

const DefaultReportKey = "outputPS5.txt"

// Result summarizes a finished session.
type Result struct {
	RunID     string
	Report    core.Info
	Admitted  int
	Consulted int
	Waiting   int
	Skipped   int
}

type Option func(*Session)

func WithLogger(l consultqueue.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithReportKey(key string) Option {
	return func(s *Session) {
		if key != "" {
			s.reportKey = key
		}
	}
}

// WithRunID fixes the run id instead of generating a random one.
func WithRunID(id string) Option {
	return func(s *Session) { s.runID = id }
}

type Session struct {
	queue     *consultqueue.ConsultQueue
	store     core.Store
	logger    consultqueue.Logger
	reportKey string
	runID     string

	report    strings.Builder
	consulted int
	skipped   int
}

// NewSession binds a queue to the store its report is published to.
func NewSession(q *consultqueue.ConsultQueue, store core.Store, opts ...Option) *Session {
	s := &Session{
		queue:     q,
		store:     store,
		logger:    noopLogger{},
		reportKey: DefaultReportKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.runID == "" {
		s.runID = uuid.NewString()
	}
	return s
}

func (s *Session) RunID() string { return s.runID }

// Key is the blob key the report is written under.
func (s *Session) Key() string { return s.runID + "/" + s.reportKey }

// Run processes roster then commands and uploads the report.
// Malformed input lines abort the run before anything is published.
func (s *Session) Run(ctx context.Context, roster, commands io.Reader) (Result, error) {
	admissions, err := intake.ParseRoster(roster)
	if err != nil {
		return Result{}, fmt.Errorf("roster: %w", err)
	}
	cmds, err := intake.ParseCommands(commands)
	if err != nil {
		return Result{}, fmt.Errorf("commands: %w", err)
	}

	s.loadRoster(admissions)
	if err := s.replay(ctx, cmds); err != nil {
		return Result{}, err
	}
	return s.publish(ctx)
}

// Report returns the text accumulated so far.
func (s *Session) Report() string { return s.report.String() }

func (s *Session) loadRoster(admissions []intake.Admission) {
	for _, a := range admissions {
		s.register(a)
	}
	s.report.WriteString(banner.InitialQueue(s.queue.Admitted(), s.queue.SnapshotDescending()))
	s.logger.Info("roster loaded", "run", s.runID, "admitted", s.queue.Admitted(), "skipped", s.skipped)
}

func (s *Session) replay(ctx context.Context, cmds []intake.Command) error {
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch cmd.Kind {
		case intake.NewPatient:
			p, ok := s.register(cmd.Admission)
			if !ok {
				continue
			}
			s.report.WriteString(banner.NewPatient(p, s.queue.SnapshotDescending()))
		case intake.NextPatient:
			p, ok := s.queue.NextPatient()
			if ok {
				s.consulted++
			} else {
				s.logger.Info("next patient requested on empty queue", "run", s.runID)
			}
			s.report.WriteString(banner.NextPatient(p, ok))
		}
	}
	return nil
}

func (s *Session) register(a intake.Admission) (consultqueue.Patient, bool) {
	p, err := s.queue.RegisterPatient(a.Name, a.Age)
	if err != nil {
		s.skipped++
		s.logger.Warn("admission skipped", "run", s.runID, "line", a.Line, "error", err)
		return consultqueue.Patient{}, false
	}
	return p, true
}

func (s *Session) publish(ctx context.Context) (Result, error) {
	info, err := s.store.Put(ctx, s.Key(), strings.NewReader(s.report.String()), core.PutOptions{
		ContentType: "text/plain",
		Metadata: map[string]string{
			"run-id":   s.runID,
			"patients": strconv.Itoa(s.queue.Admitted()),
		},
	})
	if err != nil {
		s.logger.Error("report upload failed", "run", s.runID, "key", s.Key(), "error", err)
		return Result{}, fmt.Errorf("publish report: %w", err)
	}
	s.logger.Info("report published", "run", s.runID, "key", info.Key, "driver", s.store.Driver(), "bytes", info.Size)
	return Result{
		RunID:     s.runID,
		Report:    info,
		Admitted:  s.queue.Admitted(),
		Consulted: s.consulted,
		Waiting:   s.queue.Len(),
		Skipped:   s.skipped,
	}, nil
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
