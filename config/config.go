package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds everything the process reads from the environment.
// DATABASE_URL and JWT_SECRET are hard preconditions: the process must
// not start without them.
type Config struct {
	DatabaseURL string `env:"DATABASE_URL,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	Port        string `env:"PORT" envDefault:"8000"`

	// Optional slot-list cache. Empty address disables caching.
	RedisAddr string `env:"REDIS_ADDR"`

	// Optional SMTP settings for confirmation/reminder mail.
	// Empty host disables all outgoing mail.
	SMTPHost  string `env:"SMTP_HOST"`
	SMTPPort  int    `env:"SMTP_PORT" envDefault:"587"`
	EmailUser string `env:"EMAIL_USER"`
	EmailPass string `env:"EMAIL_PASS"`

	// Seeding parameters, only read by the seed subcommand.
	SeedStart       string   `env:"SEED_START" envDefault:"2025-08-10T00:00:00Z"`
	SeedDays        int      `env:"SEED_DAYS" envDefault:"30"`
	SeedBookedTimes []string `env:"SEED_BOOKED_TIMES" envSeparator:","`
}

// TokenTTL is how long issued tokens stay valid.
const TokenTTL = 8 * time.Hour

// Load reads .env (if present) and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: no .env file found. Using environment variables directly.")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
