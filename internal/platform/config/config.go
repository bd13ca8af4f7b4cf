package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// LoanMaxMultiplier is the fallback ceiling multiplier for projects that
	// do not configure their own.
	LoanMaxMultiplier decimal.Decimal

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("LOAN_MAX_MULTIPLIER", domain.DefaultLoanMaxMultiplier.String())
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	multiplierStr := viper.GetString("LOAN_MAX_MULTIPLIER")
	multiplier, err := decimal.NewFromString(multiplierStr)
	if err != nil || multiplier.LessThanOrEqual(decimal.Zero) {
		log.Printf("Warning: Invalid value for LOAN_MAX_MULTIPLIER ('%s'). Defaulting to %s.\n", multiplierStr, domain.DefaultLoanMaxMultiplier.String())
		multiplier = domain.DefaultLoanMaxMultiplier
	}
	cfg.LoanMaxMultiplier = multiplier

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
