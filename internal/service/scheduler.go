package service

import (
	"context"
	"time"
)

// Refresher regenerates the export artifacts.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// ExportScheduler owns the periodic refresh task. It holds its own
// cancel handle so shutdown stops the ticker instead of leaking it.
type ExportScheduler struct {
	refresher Refresher
	interval  time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
}

func NewExportScheduler(refresher Refresher, interval time.Duration) *ExportScheduler {
	return &ExportScheduler{
		refresher: refresher,
		interval:  interval,
	}
}

// Start launches the ticker loop. Calling Start twice without an
// intervening Stop leaks the first loop, so don't.
func (s *ExportScheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	go s.run(ctx)
}

func (s *ExportScheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Refresh logs its own failures; a bad cycle must not
			// stop the ticker.
			_ = s.refresher.Refresh(ctx)
		}
	}
}

// Stop cancels the loop and waits for it to exit.
func (s *ExportScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
}
