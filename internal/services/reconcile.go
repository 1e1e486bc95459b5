//go:generate mockgen -source=reconcile.go -destination=reconcile_mock.go -package=services

package services

import (
	"context"
	"errors"
	"time"

	"github.com/sbilibin2017/sport-together/internal/logger"
	"github.com/sbilibin2017/sport-together/internal/models"
)

// DefaultReconcileBatch bounds how many intents one Run replays.
const DefaultReconcileBatch = 100

// IntentResumer finishes an interrupted membership intent.
type IntentResumer interface {
	Resume(ctx context.Context, intent models.MembershipIntent) error
}

// Reconciler replays membership intents that were left unfinished.
type Reconciler struct {
	intents IntentStore
	resumer IntentResumer
	grace   time.Duration
	batch   int

	now func() time.Time
}

// NewReconciler creates a Reconciler. Intents younger than grace are assumed
// to belong to requests still in flight and are left alone.
func NewReconciler(intents IntentStore, resumer IntentResumer, grace time.Duration) *Reconciler {
	return &Reconciler{
		intents: intents,
		resumer: resumer,
		grace:   grace,
		batch:   DefaultReconcileBatch,
		now:     time.Now,
	}
}

// Run replays one batch of stale intents and returns how many were repaired.
func (r *Reconciler) Run(ctx context.Context) (int, error) {
	intents, err := r.intents.ListStale(ctx, r.now().Add(-r.grace), r.batch)
	if err != nil {
		logger.Log.Errorw("failed to list stale intents", "err", err)
		return 0, err
	}

	var (
		repaired int
		errs     []error
	)
	for _, intent := range intents {
		if ctx.Err() != nil {
			errs = append(errs, ctx.Err())
			break
		}
		if err := r.resumer.Resume(ctx, intent); err != nil {
			logger.Log.Errorw("failed to resume intent", "intent_id", intent.IntentID, "op", intent.Op, "err", err)
			errs = append(errs, err)
			continue
		}
		repaired++
		logger.Log.Infow("intent repaired", "intent_id", intent.IntentID, "op", intent.Op,
			"user_id", intent.UserID, "game_id", intent.GameID)
	}
	return repaired, errors.Join(errs...)
}
