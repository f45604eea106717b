package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
)

// Rates holds the per-class anomaly probabilities, each in [0, 1].
type Rates struct {
	NullEmail     float64
	NullSignup    float64
	BeforeSignup  float64
	DupID         float64
	NullAmount    float64
	OrphanUser    float64
	NullEventType float64
	OutOfWindow   float64
}

// Config holds all generator and loader configuration.
type Config struct {
	// Reproducibility and size
	Month   string
	Seed    int64
	NUsers  int
	NTxns   int
	NEvents int

	Rates Rates

	// Output
	OutDir string

	// Loader
	CSVDir         string
	DatabaseDriver string // "sqlite3" or "pgx"
	DatabaseURL    string
}

// ParseGenerate builds the configuration for a generation run from CLI args,
// with environment variables providing defaults.
func ParseGenerate(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)

	fs.StringVar(&cfg.Month, "month", envString("PAYSYNTH_MONTH", "2026-01"), `Target month "YYYY-MM"`)
	fs.Int64Var(&cfg.Seed, "seed", int64(envInt("PAYSYNTH_SEED", 42)), "Random seed for reproducibility")
	fs.IntVar(&cfg.NUsers, "n-users", envInt("PAYSYNTH_N_USERS", 1000), "Number of users to generate")
	fs.IntVar(&cfg.NTxns, "n-txns", envInt("PAYSYNTH_N_TXNS", 5000), "Number of transactions to generate")
	fs.IntVar(&cfg.NEvents, "n-events", envInt("PAYSYNTH_N_EVENTS", 10000), "Number of app events to generate")
	fs.StringVar(&cfg.OutDir, "outdir", envString("PAYSYNTH_OUTDIR", "data"), "Output directory for CSV files")

	fs.Float64Var(&cfg.Rates.NullEmail, "null-email-rate", 0.01, "Fraction of users with a missing email")
	fs.Float64Var(&cfg.Rates.NullSignup, "null-signup-rate", 0.01, "Fraction of users with a missing signup timestamp")
	fs.Float64Var(&cfg.Rates.BeforeSignup, "before-signup-rate", 0.02, "Fraction of transactions created before a participant's signup")
	fs.Float64Var(&cfg.Rates.DupID, "dup-id-rate", 0.01, "Fraction of transactions with a duplicated transaction id")
	fs.Float64Var(&cfg.Rates.NullAmount, "null-amount-rate", 0.01, "Fraction of transactions with a missing amount")
	fs.Float64Var(&cfg.Rates.OrphanUser, "orphan-user-rate", 0.01, "Fraction of events referencing a nonexistent user")
	fs.Float64Var(&cfg.Rates.NullEventType, "null-event-type-rate", 0.005, "Fraction of events with a missing event type")
	fs.Float64Var(&cfg.Rates.OutOfWindow, "out-of-window-rate", 0.01, "Fraction of events with a timestamp outside the month")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validateGenerate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseLoad builds the configuration for loading generated CSVs into a
// relational store.
func ParseLoad(args []string) (*Config, error) {
	cfg := &Config{}
	fs := flag.NewFlagSet("load", flag.ContinueOnError)

	fs.StringVar(&cfg.CSVDir, "csv-dir", envString("PAYSYNTH_OUTDIR", "data"), "Directory containing the three CSV files")
	fs.StringVar(&cfg.DatabaseDriver, "db-driver", envString("PAYSYNTH_DB_DRIVER", "sqlite3"), `Database driver: "sqlite3" or "pgx"`)
	fs.StringVar(&cfg.DatabaseURL, "db-url", envString("PAYSYNTH_DB_URL", "db/paysynth.sqlite"), "SQLite path or postgres connection string")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if err := cfg.validateLoad(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validateGenerate() error {
	if c.NUsers <= 0 || c.NTxns <= 0 || c.NEvents <= 0 {
		return fmt.Errorf("population sizes must be positive: users=%d txns=%d events=%d", c.NUsers, c.NTxns, c.NEvents)
	}
	// Senders and receivers must differ, so one user can never transact.
	if c.NUsers < 2 {
		return fmt.Errorf("n-users must be at least 2, got %d", c.NUsers)
	}

	rates := map[string]float64{
		"null-email-rate":      c.Rates.NullEmail,
		"null-signup-rate":     c.Rates.NullSignup,
		"before-signup-rate":   c.Rates.BeforeSignup,
		"dup-id-rate":          c.Rates.DupID,
		"null-amount-rate":     c.Rates.NullAmount,
		"orphan-user-rate":     c.Rates.OrphanUser,
		"null-event-type-rate": c.Rates.NullEventType,
		"out-of-window-rate":   c.Rates.OutOfWindow,
	}
	for name, r := range rates {
		if r < 0.0 || r > 1.0 {
			return fmt.Errorf("%s must be between 0.0 and 1.0, got %v", name, r)
		}
	}
	return nil
}

func (c *Config) validateLoad() error {
	if c.DatabaseDriver != "sqlite3" && c.DatabaseDriver != "pgx" {
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("db-url is required")
	}
	return nil
}

func envString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
