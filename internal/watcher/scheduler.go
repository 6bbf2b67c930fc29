package watcher

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// Scheduler runs one watch loop per configured channel. Loops are fully
// independent; a slow poll on one channel never blocks another. The
// shared log sink serializes writes itself.
type Scheduler struct {
	loops []*Loop
}

// NewScheduler creates a scheduler over the given loops.
func NewScheduler(loops ...*Loop) *Scheduler {
	return &Scheduler{loops: loops}
}

// Run blocks until ctx is cancelled. A single channel runs directly on
// the caller; multiple channels each get their own goroutine.
func (s *Scheduler) Run(ctx context.Context) error {
	switch len(s.loops) {
	case 0:
		return errors.New("no channels configured")
	case 1:
		return s.loops[0].Run(ctx)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, loop := range s.loops {
		loop := loop
		g.Go(func() error {
			return loop.Run(ctx)
		})
	}
	return g.Wait()
}
