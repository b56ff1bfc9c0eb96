package config

import (
	"os"
	"strconv"

	"github.com/bcdannyboy/takeprofit/models"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	DefaultRiskFreePct = 4.5
	DefaultTolerance   = 0.01
)

// Config holds the runtime settings loaded from .env and the environment.
type Config struct {
	TradierKey    string
	SlackAppToken string
	SlackBotToken string

	Simulation models.SimulationConfig

	RiskFreePct float64
	DividendPct float64
	Tolerance   float64

	LogLevel zerolog.Level
}

// Load reads .env when present, then the environment. Unset or malformed numeric values
// fall back to their defaults.
func Load() *Config {
	_ = godotenv.Load()

	sim := models.DefaultSimulationConfig()
	sim.Paths = getInt("TP_PATHS", sim.Paths)
	sim.Steps = getInt("TP_STEPS", sim.Steps)
	sim.Seed = getUint("TP_SEED", sim.Seed)
	sim.Workers = getInt("TP_WORKERS", sim.Workers)

	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return &Config{
		TradierKey:    os.Getenv("TRADIER_KEY"),
		SlackAppToken: os.Getenv("SLACK_APP_TOKEN"),
		SlackBotToken: os.Getenv("SLACK_BOT_TOKEN"),
		Simulation:    sim,
		RiskFreePct:   getFloat("TP_RISK_FREE_PCT", DefaultRiskFreePct),
		DividendPct:   getFloat("TP_DIVIDEND_PCT", 0),
		Tolerance:     getFloat("TP_TOLERANCE", DefaultTolerance),
		LogLevel:      level,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getUint(key string, fallback uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(key), 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}
