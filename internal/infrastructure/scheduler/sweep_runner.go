package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SweepRunnerConfig holds sweep runner configuration
type SweepRunnerConfig struct {
	// Enabled determines if the runner is active
	Enabled bool

	// Interval between sweep passes
	Interval time.Duration

	// SweepTimeout is the maximum time for one pass over all sweepers
	SweepTimeout time.Duration
}

// DefaultSweepRunnerConfig returns default sweep runner configuration
func DefaultSweepRunnerConfig() SweepRunnerConfig {
	return SweepRunnerConfig{
		Enabled:      true,
		Interval:     time.Minute,
		SweepTimeout: 5 * time.Minute,
	}
}

// SweepRunner drives the registered lifecycle sweeps on a fixed interval.
// One sweeper failing does not stop the others; the pass continues and the
// failure is logged.
type SweepRunner struct {
	config   SweepRunnerConfig
	sweepers []Sweeper
	logger   *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// NewSweepRunner creates a new sweep runner
func NewSweepRunner(config SweepRunnerConfig, logger *zap.Logger, sweepers ...Sweeper) *SweepRunner {
	return &SweepRunner{
		config:   config,
		sweepers: sweepers,
		logger:   logger,
	}
}

// Register adds a sweeper. Must be called before Start.
func (r *SweepRunner) Register(s Sweeper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepers = append(r.sweepers, s)
}

// Start starts the sweep loop
func (r *SweepRunner) Start(ctx context.Context) error {
	r.mu.Lock()
	if r.isRunning {
		r.mu.Unlock()
		return nil
	}
	if !r.config.Enabled {
		r.mu.Unlock()
		r.logger.Info("Sweep runner is disabled")
		return nil
	}
	r.isRunning = true
	r.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go r.run(ctx)

	r.logger.Info("Sweep runner started",
		zap.Duration("interval", r.config.Interval),
		zap.Int("sweepers", len(r.sweepers)),
	)

	return nil
}

// Stop gracefully stops the sweep loop
func (r *SweepRunner) Stop(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return nil
	}
	r.isRunning = false
	r.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("Sweep runner stopped gracefully")
		return nil
	case <-ctx.Done():
		r.logger.Warn("Sweep runner stop timed out")
		return ctx.Err()
	}
}

// TriggerSweep runs one pass immediately without waiting for the ticker
func (r *SweepRunner) TriggerSweep(ctx context.Context) error {
	r.mu.Lock()
	if !r.isRunning {
		r.mu.Unlock()
		return ErrRunnerNotRunning
	}
	r.wg.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.wg.Done()
		r.sweepAll(ctx)
	}()

	return nil
}

// IsRunning returns whether the runner is running
func (r *SweepRunner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isRunning
}

func (r *SweepRunner) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Sweep loop stopping")
			return
		case <-ticker.C:
			r.sweepAll(ctx)
		}
	}
}

func (r *SweepRunner) sweepAll(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, r.config.SweepTimeout)
	defer cancel()

	now := time.Now()
	for _, s := range r.sweepers {
		processed, err := s.Sweep(sweepCtx, now)
		if err != nil {
			r.logger.Error("Sweep pass failed",
				zap.String("sweeper", s.Name()),
				zap.Error(err),
			)
			continue
		}
		if processed > 0 {
			r.logger.Info("Sweep pass completed",
				zap.String("sweeper", s.Name()),
				zap.Int("processed", processed),
			)
		}
	}
}
