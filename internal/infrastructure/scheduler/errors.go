package scheduler

import "errors"

var (
	// ErrRunnerNotRunning is returned when triggering a sweep on a stopped runner
	ErrRunnerNotRunning = errors.New("sweep runner is not running")
)
