package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	sources  []string
	calls    atomic.Int32
	deadline atomic.Int64
}

func (c *countingRefresher) Sources() []string { return c.sources }

func (c *countingRefresher) Refresh(ctx context.Context) error {
	if d, ok := ctx.Deadline(); ok {
		c.deadline.Store(int64(time.Until(d)))
	}
	c.calls.Add(1)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSchedulerRunsImmediately(t *testing.T) {
	r := &countingRefresher{sources: []string{"week"}}
	s := New(time.Hour, time.Minute, r, discardLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerWithoutSources(t *testing.T) {
	r := &countingRefresher{}
	s := New(time.Hour, time.Minute, r, discardLogger())

	require.NoError(t, s.Start())
	s.Stop()

	assert.Equal(t, int32(0), r.calls.Load())
}

func TestSchedulerUsesRefreshTimeout(t *testing.T) {
	r := &countingRefresher{sources: []string{"week"}}
	s := New(time.Hour, 45*time.Second, r, discardLogger())

	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool { return r.calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	remaining := time.Duration(r.deadline.Load())
	assert.Greater(t, remaining, 30*time.Second)
	assert.LessOrEqual(t, remaining, 45*time.Second)
}

func TestSchedulerDefaultTimeout(t *testing.T) {
	s := New(time.Hour, 0, &countingRefresher{}, discardLogger())
	assert.Equal(t, 30*time.Second, s.timeout)
}
