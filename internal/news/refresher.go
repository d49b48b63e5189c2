package news

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Refresher periodically re-fetches the feed so the cache stays warm and
// page loads rarely wait on the upstream API.
type Refresher struct {
	source   Source
	interval time.Duration
	logger   *logrus.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRefresher(source Source, interval time.Duration, logger *logrus.Logger) *Refresher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Refresher{
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Start launches the refresh loop. The first fetch happens immediately so the
// cache is warm before the first page request.
func (r *Refresher) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		r.refresh(loopCtx)

		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-ticker.C:
				r.refresh(loopCtx)
			}
		}
	}()
	r.logger.Infof("news refresher started, interval %s", r.interval)
}

// Shutdown stops the loop and waits for an in-flight refresh to finish.
func (r *Refresher) Shutdown() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
	r.logger.Info("news refresher stopped")
}

func (r *Refresher) refresh(ctx context.Context) {
	if _, err := r.source.Fetch(ctx); err != nil {
		r.logger.Warnf("refresh news feed: %v", err)
	}
}
