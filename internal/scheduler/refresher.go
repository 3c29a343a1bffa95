package scheduler

import (
	"context"
	"time"

	"github.com/tonypeanut/fullstack-notes-full/internal/logger"
	"github.com/tonypeanut/fullstack-notes-full/internal/session"
	"github.com/tonypeanut/fullstack-notes-full/internal/syncer"
)

// Refresher keeps the local note mirror fresh with periodic full re-syncs
// while a session is live. A manual trigger channel forces an immediate
// refresh (used right after login). Interval 0 disables the ticker; the
// manual trigger keeps working either way.
type Refresher struct {
	syncer        *syncer.Syncer
	session       *session.Store
	logger        logger.Logger
	interval      time.Duration
	manualTrigger chan struct{}
	stopCh        chan struct{}
}

func NewRefresher(
	sync *syncer.Syncer,
	sess *session.Store,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Refresher {
	return &Refresher{
		syncer:        sync,
		session:       sess,
		logger:        log,
		interval:      interval,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
	}
}

// Start launches the refresh loop. It never fails the caller: a refresh
// error only logs, the next tick tries again.
func (r *Refresher) Start(ctx context.Context) {
	go func() {
		var tick <-chan time.Time
		if r.interval > 0 {
			ticker := time.NewTicker(r.interval)
			defer ticker.Stop()
			tick = ticker.C
		}
		for {
			select {
			case <-tick:
				r.refresh(ctx)
			case <-r.manualTrigger:
				r.logger.Debug("manual refresh triggered")
				r.refresh(ctx)
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop terminates the refresh loop.
func (r *Refresher) Stop() {
	close(r.stopCh)
}

func (r *Refresher) refresh(ctx context.Context) {
	// No session, nothing to sync against.
	if r.session.Token() == "" {
		r.logger.Debug("skipping refresh, no live session")
		return
	}
	if err := r.syncer.FetchAll(ctx); err != nil {
		r.logger.Error("background refresh failed", logger.Error(err))
	}
}
