package config

import (
	"os"
	"strconv"
	"time"

	"petfarm_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	BotToken    string
	BotUsername string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	Game GameConfig
}

// GameConfig is the economy tuning. Every figure the client previews comes
// from here (or the catalog), never from client-side math.
type GameConfig struct {
	MaxSlots         int
	TrainingDuration time.Duration

	// Snack prices, flat per snack type.
	SnackCookiePrice float64
	SnackSteakPrice  float64
	SnackCakePrice   float64

	// ROI boost step price = invested_total * step% * factor.
	ROIBoostPriceFactor float64

	// Auto-claim subscription.
	AutoClaimBasePerMonth float64
	AutoClaimCommission   float64 // percent taken from each automatic claim

	// Spin wheel.
	PaidSpinCost float64

	// Action (game) rate limiting.
	ActionRateLimit  int
	ActionRateWindow int // seconds
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	botToken := os.Getenv("BOT_TOKEN")
	if botToken == "" {
		logger.Fatal("BOT_TOKEN is not set")
	}

	botUsername := os.Getenv("BOT_USERNAME")
	if botUsername == "" {
		botUsername = "PetFarmBot"
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:       port,
		DatabaseURL:   dbURL,
		BotToken:      botToken,
		BotUsername:   botUsername,
		JWTSecret:     jwtSecret,
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		Game:          loadGame(),
	}
}

func loadGame() GameConfig {
	g := GameConfig{
		MaxSlots:              3,
		TrainingDuration:      24 * time.Hour,
		SnackCookiePrice:      0.5,
		SnackSteakPrice:       1.0,
		SnackCakePrice:        2.0,
		ROIBoostPriceFactor:   1.5,
		AutoClaimBasePerMonth: 10,
		AutoClaimCommission:   5,
		PaidSpinCost:          2,
		ActionRateLimit:       60,
		ActionRateWindow:      60,
	}

	if v := os.Getenv("MAX_SLOTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			g.MaxSlots = n
		}
	}
	if v := os.Getenv("TRAINING_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			g.TrainingDuration = time.Duration(n) * time.Hour
		}
	}
	if v := os.Getenv("SNACK_COOKIE_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			g.SnackCookiePrice = f
		}
	}
	if v := os.Getenv("SNACK_STEAK_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			g.SnackSteakPrice = f
		}
	}
	if v := os.Getenv("SNACK_CAKE_PRICE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			g.SnackCakePrice = f
		}
	}
	if v := os.Getenv("ROI_BOOST_PRICE_FACTOR"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			g.ROIBoostPriceFactor = f
		}
	}
	if v := os.Getenv("AUTO_CLAIM_BASE_PER_MONTH"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			g.AutoClaimBasePerMonth = f
		}
	}
	if v := os.Getenv("AUTO_CLAIM_COMMISSION"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f < 100 {
			g.AutoClaimCommission = f
		}
	}
	if v := os.Getenv("PAID_SPIN_COST"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			g.PaidSpinCost = f
		}
	}
	if v := os.Getenv("ACTION_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			g.ActionRateLimit = n
		}
	}
	if v := os.Getenv("ACTION_RATE_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			g.ActionRateWindow = n
		}
	}

	return g
}
