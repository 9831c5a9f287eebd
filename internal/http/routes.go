package http

import (
	"os"
	"strconv"
	"time"

	"petfarm_webapp/internal/config"
	"petfarm_webapp/internal/http/handlers"
	"petfarm_webapp/internal/http/middleware"
	"petfarm_webapp/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the full HTTP surface. It returns the handler and the
// ws hub so main can plug the hub into the services as the push notifier and
// hand the pet service to the auto-claim worker.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) (*handlers.Handler, *ws.Hub) {
	h := handlers.NewHandler(db, cfg)
	healthHandler := handlers.NewHealthHandler(db, version)

	// read limits from env, with safe defaults
	apiRateLimit := 10
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateLimit = n
		}
	}
	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	authRateLimit := 5
	if v := os.Getenv("AUTH_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateLimit = n
		}
	}
	authRateWindow := time.Minute
	if v := os.Getenv("AUTH_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			authRateWindow = time.Duration(n) * time.Second
		}
	}

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	actionLimit := cfg.Game.ActionRateLimit
	actionWindow := time.Duration(cfg.Game.ActionRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(apiRateLimit, apiRateWindow))

	// Auth
	v1.POST("/auth", middleware.RedisRateLimit(authRateLimit, authRateWindow), h.Auth)

	// Profile
	v1.GET("/me", middleware.JWT(), h.Me)
	v1.GET("/balance", middleware.JWT(), h.GetBalance)
	v1.GET("/transactions", middleware.JWT(), h.Transactions)

	// Catalog and farm
	v1.GET("/pet-types", h.ListPetTypes)
	v1.GET("/pets", middleware.JWT(), h.ListSlots)

	// Mutating pet actions get the per-user action limiter on top of JWT.
	action := middleware.ActionRateLimit(actionLimit, actionWindow)
	v1.POST("/pets/buy", middleware.JWT(), action, h.BuyPet)
	v1.POST("/pets/:pet_id/start-training", middleware.JWT(), action, h.StartTraining)
	v1.POST("/pets/:pet_id/claim", middleware.JWT(), action, h.ClaimPet)
	v1.POST("/pets/:pet_id/upgrade", middleware.JWT(), action, h.UpgradePet)
	v1.POST("/pets/:pet_id/sell", middleware.JWT(), action, h.SellPet)

	// Boosts
	v1.GET("/pets/:pet_id/snacks", middleware.JWT(), h.SnackQuotes)
	v1.POST("/pets/:pet_id/snacks/buy", middleware.JWT(), action, h.BuySnack)
	v1.GET("/pets/:pet_id/roi-boosts", middleware.JWT(), h.ROIBoostQuotes)
	v1.POST("/pets/:pet_id/roi-boosts/buy", middleware.JWT(), action, h.BuyROIBoost)
	v1.GET("/auto-claim", middleware.JWT(), h.AutoClaimStatus)
	v1.POST("/auto-claim/buy", middleware.JWT(), action, h.BuyAutoClaim)

	// Referrals
	v1.GET("/referrals", middleware.JWT(), h.ReferralOverview)
	v1.POST("/referrals/apply", middleware.JWT(), h.ApplyReferralCode)

	// Spin wheel
	v1.GET("/wheel", middleware.JWT(), h.GetWheel)
	v1.POST("/wheel/spin", middleware.JWT(), action, h.Spin)

	// Tasks
	v1.GET("/tasks", middleware.JWT(), h.ListTasks)
	v1.POST("/tasks/:task_id/check", middleware.JWT(), action, h.CheckTask)

	// WebSocket push
	hub := ws.NewHub()
	r.GET("/ws", h.WS(hub))

	return h, hub
}
