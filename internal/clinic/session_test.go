package clinic

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paljsingh/consultqueue"
	"github.com/paljsingh/consultqueue/internal/blob/core"
	"github.com/paljsingh/consultqueue/internal/blob/memory"
	"github.com/paljsingh/consultqueue/internal/intake"
)

const roster = `Surya, 60
Ajay,30
`

const commands = `newPatient: Riya, 45
nextPatient
nextPatient
nextPatient
newPatient: Bad, -1
nextPatient
`

const wantReport = `---- initial queue ---------------
No of patients added: 2
Refreshed queue:
100160, Surya
100230, Ajay
----------------------------------------------
---- new patient entered ---------------
Patient details: Riya, 45, 100345
Refreshed queue:
100160, Surya
100345, Riya
100230, Ajay
----------------------------------------------
---- next patient ---------------
Next patient for consultation is: 100160, Surya
----------------------------------------------
---- next patient ---------------
Next patient for consultation is: 100345, Riya
----------------------------------------------
---- next patient ---------------
Next patient for consultation is: 100230, Ajay
----------------------------------------------
`

type entry struct {
	level string
	msg   string
}

type recordingLogger struct{ entries []entry }

func (l *recordingLogger) Debug(msg string, _ ...any) { l.entries = append(l.entries, entry{"debug", msg}) }
func (l *recordingLogger) Info(msg string, _ ...any)  { l.entries = append(l.entries, entry{"info", msg}) }
func (l *recordingLogger) Warn(msg string, _ ...any)  { l.entries = append(l.entries, entry{"warn", msg}) }
func (l *recordingLogger) Error(msg string, _ ...any) { l.entries = append(l.entries, entry{"error", msg}) }

func (l *recordingLogger) count(level string) int {
	n := 0
	for _, e := range l.entries {
		if e.level == level {
			n++
		}
	}
	return n
}

func TestSession_Run(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	log := &recordingLogger{}
	q := consultqueue.NewConsultQueue(consultqueue.WithInvariantChecks(true))

	s := NewSession(q, store, WithLogger(log), WithRunID("run-1"))
	res, err := s.Run(ctx, strings.NewReader(roster), strings.NewReader(commands))
	require.NoError(t, err)

	assert.Equal(t, "run-1", res.RunID)
	assert.Equal(t, "run-1/outputPS5.txt", res.Report.Key)
	assert.Equal(t, 3, res.Admitted)
	assert.Equal(t, 3, res.Consulted)
	assert.Equal(t, 0, res.Waiting)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, wantReport, s.Report())

	info, rc, err := store.Get(ctx, "run-1/outputPS5.txt")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, wantReport, string(body))
	assert.Equal(t, "text/plain", info.ContentType)
	assert.Equal(t, "run-1", info.Metadata["run-id"])
	assert.Equal(t, "3", info.Metadata["patients"])

	assert.Equal(t, 1, log.count("warn"))
	assert.Zero(t, log.count("error"))
}

func TestSession_GeneratedRunID(t *testing.T) {
	s := NewSession(consultqueue.NewConsultQueue(), memory.New(), WithReportKey("day.txt"))
	_, err := uuid.Parse(s.RunID())
	require.NoError(t, err)
	assert.Equal(t, s.RunID()+"/day.txt", s.Key())

	other := NewSession(consultqueue.NewConsultQueue(), memory.New())
	assert.NotEqual(t, s.RunID(), other.RunID())
}

func TestSession_EmptyInputs(t *testing.T) {
	s := NewSession(consultqueue.NewConsultQueue(), memory.New(), WithRunID("r"))
	res, err := s.Run(context.Background(), strings.NewReader(""), strings.NewReader("nextPatient\n"))
	require.NoError(t, err)
	assert.Zero(t, res.Admitted)
	assert.Equal(t, "---- initial queue ---------------\nNo of patients added: 0\nRefreshed queue:\n\n"+
		"----------------------------------------------\n", s.Report())
}

func TestSession_MalformedInput(t *testing.T) {
	store := memory.New()

	s := NewSession(consultqueue.NewConsultQueue(), store, WithRunID("r"))
	_, err := s.Run(context.Background(), strings.NewReader("ann, old\n"), strings.NewReader(""))
	assert.ErrorIs(t, err, intake.ErrMalformedLine)
	assert.Contains(t, err.Error(), "roster")

	s = NewSession(consultqueue.NewConsultQueue(), store, WithRunID("r"))
	_, err = s.Run(context.Background(), strings.NewReader(""), strings.NewReader("newPatient: , 4\n"))
	assert.ErrorIs(t, err, intake.ErrMalformedLine)
	assert.Contains(t, err.Error(), "commands")

	list, err := store.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSession_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(consultqueue.NewConsultQueue(), memory.New(), WithRunID("r"))
	_, err := s.Run(ctx, strings.NewReader(roster), strings.NewReader(commands))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSession_PublishConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Put(ctx, "r/outputPS5.txt", strings.NewReader("old"), core.PutOptions{})
	require.NoError(t, err)

	log := &recordingLogger{}
	s := NewSession(consultqueue.NewConsultQueue(), store, WithRunID("r"), WithLogger(log))
	_, err = s.Run(ctx, strings.NewReader(roster), strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrExists))
	assert.Equal(t, 1, log.count("error"))
}
