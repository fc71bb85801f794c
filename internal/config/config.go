package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBPath    string
	OutputDir string

	SourceBaseURL      string
	SourceUserAgent    string
	SourceRateLimitRPS int
	SourceTimeoutMs    int

	Season      int
	SeasonStart time.Time
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	season := getEnvInt("SEASON", time.Now().Year())

	cfg := Config{
		DBPath:    getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		OutputDir: getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),

		SourceBaseURL:      getEnv("PFR_BASE_URL", "https://www.pro-football-reference.com"),
		SourceUserAgent:    getEnv("PFR_USER_AGENT", "Mozilla/5.0 (compatible; gridstats/1.0)"),
		SourceRateLimitRPS: getEnvInt("PFR_RATE_LIMIT_RPS", 2),
		SourceTimeoutMs:    getEnvInt("PFR_TIMEOUT_MS", 30000),

		Season: season,
	}

	startRaw := getEnv("SEASON_START", "")
	if startRaw == "" {
		cfg.SeasonStart = DefaultSeasonStart(season)
	} else {
		start, err := time.Parse("2006-01-02", startRaw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SEASON_START %q: %w", startRaw, err)
		}
		cfg.SeasonStart = start
	}

	return cfg, nil
}

// DefaultSeasonStart is the first Thursday of September, the league's
// customary week-1 kickoff.
func DefaultSeasonStart(season int) time.Time {
	d := time.Date(season, time.September, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Thursday {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := strings.TrimSpace(getEnv(key, ""))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
