package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSweepRunner_TriggerSweep(t *testing.T) {
	var calls int64
	sweeper := NewSweeper("test-sweep", func(ctx context.Context, now time.Time) (int, error) {
		atomic.AddInt64(&calls, 1)
		return 1, nil
	})

	config := DefaultSweepRunnerConfig()
	config.Interval = time.Hour // only manual triggers fire in this test
	runner := NewSweepRunner(config, zap.NewNop(), sweeper)

	require.NoError(t, runner.Start(context.Background()))
	defer runner.Stop(context.Background())

	require.NoError(t, runner.TriggerSweep(context.Background()))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&calls) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSweepRunner_FailingSweeperDoesNotBlockOthers(t *testing.T) {
	var secondRan int64
	failing := NewSweeper("failing", func(ctx context.Context, now time.Time) (int, error) {
		return 0, errors.New("db unavailable")
	})
	healthy := NewSweeper("healthy", func(ctx context.Context, now time.Time) (int, error) {
		atomic.AddInt64(&secondRan, 1)
		return 0, nil
	})

	config := DefaultSweepRunnerConfig()
	config.Interval = time.Hour
	runner := NewSweepRunner(config, zap.NewNop(), failing, healthy)

	require.NoError(t, runner.Start(context.Background()))
	defer runner.Stop(context.Background())

	require.NoError(t, runner.TriggerSweep(context.Background()))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&secondRan) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSweepRunner_TriggerWhenStopped(t *testing.T) {
	runner := NewSweepRunner(DefaultSweepRunnerConfig(), zap.NewNop())

	err := runner.TriggerSweep(context.Background())

	assert.ErrorIs(t, err, ErrRunnerNotRunning)
}

func TestSweepRunner_Disabled(t *testing.T) {
	config := DefaultSweepRunnerConfig()
	config.Enabled = false
	runner := NewSweepRunner(config, zap.NewNop())

	require.NoError(t, runner.Start(context.Background()))

	assert.False(t, runner.IsRunning())
}

func TestSweepRunner_StartIsIdempotent(t *testing.T) {
	runner := NewSweepRunner(DefaultSweepRunnerConfig(), zap.NewNop())

	require.NoError(t, runner.Start(context.Background()))
	require.NoError(t, runner.Start(context.Background()))

	assert.True(t, runner.IsRunning())
	require.NoError(t, runner.Stop(context.Background()))
	assert.False(t, runner.IsRunning())
}
