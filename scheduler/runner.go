// Package scheduler provides a minimal cooperative task runner, standing in
// for the "background task" scheduler the core protocol assumes but treats
// as external: something that calls a device's Poll method repeatedly.
package scheduler

import (
	"context"
	"time"

	"github.com/golang/glog"
)

// PollFunc is the shape of the task the Runner drives — typically
// dispatch.Dispatcher.Poll bound to a particular transport.
type PollFunc func()

// Runner repeatedly calls a PollFunc on a fixed tick, on a single goroutine,
// until its context is canceled. It makes no concurrency claims beyond
// that: per the core's single-task assumption, nothing else may touch the
// Link or Dispatcher the PollFunc closes over while the Runner is running.
type Runner struct {
	Interval time.Duration
	task     PollFunc
}

// NewRunner returns a Runner that calls task once per interval. An
// interval of zero falls back to 1ms, fast enough to drain a link under
// test without busy-looping the host CPU.
func NewRunner(interval time.Duration, task PollFunc) *Runner {
	return &Runner{Interval: interval, task: task}
}

// Run blocks, calling the task on every tick, until ctx is canceled.
func (r *Runner) Run(ctx context.Context) error {
	interval := r.Interval
	if interval == 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	glog.V(1).Infof("scheduler: starting runner at %s", interval)
	for {
		select {
		case <-ctx.Done():
			glog.V(1).Infof("scheduler: runner stopping: %v", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			r.task()
		}
	}
}

// RunN calls the task exactly n times, ignoring Interval between calls, and
// returns immediately — for tests that want deterministic poll counts
// instead of a wall-clock-driven loop.
func (r *Runner) RunN(n int) {
	for i := 0; i < n; i++ {
		r.task()
	}
}
