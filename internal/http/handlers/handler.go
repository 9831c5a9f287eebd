package handlers

import (
	"petfarm_webapp/internal/config"
	"petfarm_webapp/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	DB       *pgxpool.Pool
	BotToken string
	Cfg      *config.Config

	Pets      *service.PetService
	Boosts    *service.BoostService
	Referrals *service.ReferralService
	Spins     *service.SpinService
	Tasks     *service.TaskService
	Balance   *service.BalanceService
}

func NewHandler(db *pgxpool.Pool, cfg *config.Config) *Handler {
	return &Handler{
		DB:        db,
		BotToken:  cfg.BotToken,
		Cfg:       cfg,
		Pets:      service.NewPetService(db, cfg.Game),
		Boosts:    service.NewBoostService(db, cfg.Game),
		Referrals: service.NewReferralService(db),
		Spins:     service.NewSpinService(db, cfg.Game),
		Tasks:     service.NewTaskService(db),
		Balance:   service.NewBalanceService(db),
	}
}

// getUserID извлекает user_id из контекста Gin
func getUserID(c interface{ Get(any) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
