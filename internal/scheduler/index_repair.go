package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/bookmarks/internal/logger"
)

// IndexPruner drops index entries that point to missing bookmarks.
type IndexPruner interface {
	PruneIndex(ctx context.Context) (int, error)
}

// IndexRepairer periodically prunes the bookmark id index of a store.
type IndexRepairer struct {
	pruner   IndexPruner
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewIndexRepairer creates a new index repairer
func NewIndexRepairer(pruner IndexPruner, log logger.Logger, interval time.Duration) *IndexRepairer {
	return &IndexRepairer{
		pruner:   pruner,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one repair immediately, then one per interval until Stop or ctx is done.
func (r *IndexRepairer) Start(ctx context.Context) {
	r.done = make(chan struct{})
	r.Repair(ctx)

	ticker := time.NewTicker(r.interval)
	go func() {
		defer close(r.done)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.Repair(ctx)
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the repairer and waits for a running repair to finish.
// It is a no-op when Start was never called.
func (r *IndexRepairer) Stop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
	if r.done != nil {
		<-r.done
	}
}

// Repair prunes the index once. Failures are logged, never fatal.
func (r *IndexRepairer) Repair(ctx context.Context) int {
	removed, err := r.pruner.PruneIndex(ctx)
	if err != nil {
		r.logger.Error("bookmark index repair failed",
			logger.Error(err))
		return 0
	}

	if removed > 0 {
		r.logger.Warn("removed dangling bookmark index entries",
			logger.Int("removed", removed))
	} else {
		r.logger.Debug("bookmark index consistent")
	}
	return removed
}
