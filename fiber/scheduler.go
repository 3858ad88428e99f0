package fiber

import "golang.org/x/sync/semaphore"

// Scheduler owns the baton that enforces "exactly one fiber computes at a
// time" (spec.md §4.4.1 Design Notes), grounded on SPEC_FULL §10's citation
// of the Design Notes' explicit sanction for "a language-level
// coroutine/task primitive provided that its scheduler is cooperative and
// single-threaded". One Scheduler is shared by every fiber belonging to
// the same VM.
type Scheduler struct {
	baton *semaphore.Weighted
}

// NewScheduler returns a ready-to-use Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{baton: semaphore.NewWeighted(1)}
}
