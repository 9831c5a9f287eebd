package service

import (
	"context"
	"time"

	"petfarm_webapp/internal/logger"
	"petfarm_webapp/internal/metrics"
	"petfarm_webapp/internal/repository"
	"petfarm_webapp/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AutoClaimWorker sweeps training cycles on a fixed interval: it marks due
// pets ready_to_claim (pushing a live training-finished event to the owner),
// then settles the ready pets of users with a live auto-claim subscription,
// keeping the subscription's commission per claim. Each pet is claimed
// through the same locked transaction path as a manual claim, so a user
// tapping Claim at the same moment loses the race cleanly instead of
// double-crediting.
type AutoClaimWorker struct {
	pets      *PetService
	petRepo   *repository.PetRepository
	boostRepo *repository.BoostRepository
	interval  time.Duration
	batchSize int
}

func NewAutoClaimWorker(db *pgxpool.Pool, pets *PetService, interval time.Duration) *AutoClaimWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &AutoClaimWorker{
		pets:      pets,
		petRepo:   repository.NewPetRepository(db),
		boostRepo: repository.NewBoostRepository(db),
		interval:  interval,
		batchSize: 100,
	}
}

// Run blocks until ctx is cancelled.
func (w *AutoClaimWorker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("auto-claim worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("auto-claim worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

func (w *AutoClaimWorker) runOnce(ctx context.Context) {
	metrics.AutoClaimRuns.Inc()

	// Announce finished cycles to everyone, subscribed or not, before the
	// auto-claim pass settles the subscribed ones.
	finished, err := w.petRepo.MarkTrainingFinished(ctx, w.batchSize)
	if err != nil {
		logger.Error("auto-claim: mark finished trainings", "error", err)
	}
	for _, f := range finished {
		w.pets.notify(f.UserID, ws.EventTrainingFinished, map[string]interface{}{
			"pet_id": f.PublicID,
		})
	}

	pets, err := w.petRepo.ListReadyForAutoClaim(ctx, w.batchSize)
	if err != nil {
		logger.Error("auto-claim: list ready pets", "error", err)
		return
	}

	for _, pet := range pets {
		sub, err := w.boostRepo.GetActiveSubscription(ctx, pet.UserID)
		if err != nil {
			logger.Error("auto-claim: load subscription", "user", pet.UserID, "error", err)
			continue
		}
		if !sub.Active(time.Now()) {
			continue
		}

		result, err := w.pets.AutoClaim(ctx, pet.UserID, pet.PublicID, sub.CommissionPercent)
		if err != nil {
			// Lost the race against a manual claim or a sell; nothing to do.
			logger.Debug("auto-claim: skipped", "pet", pet.PublicID, "error", err)
			continue
		}
		logger.Info("auto-claim settled",
			"user", pet.UserID, "pet", pet.PublicID,
			"profit", result.Profit.String(), "commission", result.Commission.String(),
			"evolved", result.Evolved)
	}
}
