package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discard() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func TestRunOnce_RunsEveryTask(t *testing.T) {
	var sessions, plots atomic.Int32

	s := New(time.Minute, discard(),
		Task{Name: "failing", Run: func(context.Context) (int, error) { return 0, errors.New("disk full") }},
		Task{Name: "sessions", Run: func(context.Context) (int, error) { sessions.Add(1); return 3, nil }},
		Task{Name: "plots", Run: func(context.Context) (int, error) { plots.Add(1); return 0, nil }},
	)

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), sessions.Load())
	assert.Equal(t, int32(1), plots.Load())
}

func TestStart_NoTasks(t *testing.T) {
	s := New(time.Minute, discard())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestStart_SchedulesJob(t *testing.T) {
	s := New(time.Minute, discard(), Task{Name: "noop", Run: func(context.Context) (int, error) { return 0, nil }})
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.scheduler.Jobs(), 1)
}
