// Package workerpool is the shared, system-wide thread pool that executes
// individual processor invocations (spec.md §4.G, §6 "Thread-pool size").
// It exists to isolate a processor panic from the consumer's control loop
// and to let CPU-bound processors run off that loop, while still bounding
// how many invocations run concurrently across the whole graph.
package workerpool

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Pool bounds concurrent task execution with a weighted semaphore, the same
// primitive rclone's backends (e.g. backend/hidrive) use to cap concurrent
// transfers.
type Pool struct {
	sem *semaphore.Weighted
}

// New constructs a pool that runs at most size tasks concurrently.
func New(size int64) *Pool {
	if size <= 0 {
		size = 1
	}
	return &Pool{sem: semaphore.NewWeighted(size)}
}

// Run acquires a pool slot, executes task in its own goroutine, and blocks
// until it returns -- synchronous from the caller's perspective, but immune
// to task's panics: a panicking task is recovered and reported via
// panicked=true instead of unwinding into the consumer thread (spec.md §5
// "Panic isolation"). err is non-nil only if ctx was cancelled before a
// slot became available.
func (p *Pool) Run(ctx context.Context, task func()) (panicked bool, err error) {
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer p.sem.Release(1)

	done := make(chan struct{})
	go func() {
		defer func() {
			if r := recover(); r != nil {
				panicked = true
			}
			close(done)
		}()
		task()
	}()
	<-done
	return panicked, nil
}
