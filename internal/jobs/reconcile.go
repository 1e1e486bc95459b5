package jobs

import (
	"context"
	"time"

	"github.com/sbilibin2017/sport-together/internal/config"
	"github.com/sbilibin2017/sport-together/internal/logger"
)

// Reconciler replays one batch of unfinished membership intents.
type Reconciler interface {
	Run(ctx context.Context) (int, error)
}

// StartReconcileJob runs the reconciler on a ticker until ctx is done.
// It returns immediately; the returned channel is closed when the job stops.
func StartReconcileJob(ctx context.Context, cfg config.Config, r Reconciler) <-chan struct{} {
	done := make(chan struct{})
	if !cfg.ReconcileEnabled || r == nil {
		logger.Log.Infow("reconcile job disabled")
		close(done)
		return done
	}
	interval := cfg.ReconcileInterval
	if interval <= 0 {
		interval = time.Minute
	}
	timeout := cfg.ReconcileTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer close(done)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				tickCtx, cancel := context.WithTimeout(ctx, timeout)
				n, err := r.Run(tickCtx)
				cancel()
				if err != nil {
					logger.Log.Errorw("reconcile job error", "repaired", n, "err", err)
					continue
				}
				if n > 0 {
					logger.Log.Infow("reconcile job repaired intents", "count", n)
				}
			}
		}
	}()
	return done
}
