// internal/app/system/workers/grantsweep.go
package workers

import (
	"context"
	"sync"
	"time"

	grantstore "github.com/sharehub/sharehub/internal/app/store/grants"
	"go.uber.org/zap"
)

// GrantSweep is a background worker that periodically removes grants
// whose resource or target document no longer exists. Resolvers already
// skip dangling grants at read time; the sweep keeps the collection
// from accumulating them.
type GrantSweep struct {
	grants   *grantstore.Store
	log      *zap.Logger
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewGrantSweep creates a new grant sweep worker that runs every
// interval (e.g., 1 hour).
func NewGrantSweep(grants *grantstore.Store, logger *zap.Logger, interval time.Duration) *GrantSweep {
	return &GrantSweep{
		grants:   grants,
		log:      logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *GrantSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("grant sweep worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *GrantSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("grant sweep worker stopped")
}

func (w *GrantSweep) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *GrantSweep) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := w.grants.SweepDangling(ctx)
	if err != nil {
		w.log.Error("failed to sweep dangling grants", zap.Error(err))
		return
	}

	if count > 0 {
		w.log.Info("removed dangling grants", zap.Int64("count", count))
	}
}
