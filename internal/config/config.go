// Package config loads movierec settings from the environment and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values.
type Config struct {
	// Dataset
	DatasetPath     string
	DatasetEncoding string

	// Recommendation
	ResultLimit int
	MatchCutoff float64

	// Web server
	ServerPort string
	ServerURL  string
	// Warm builds the similarity index at server start instead of on first query.
	Warm bool

	// Logging
	LogFile  string
	LogLevel slog.Level

	// ConfigFile is the YAML file that was applied, if any.
	ConfigFile string
}

// Default values.
const (
	DefaultDatasetPath = "movies.csv"
	DefaultEncoding    = "latin-1"
	DefaultResultLimit = 30
	DefaultMatchCutoff = 0.6
	DefaultServerPort  = "8501"
)

// Load reads configuration from environment variables, then applies the
// YAML file named by MOVIEREC_CONFIG when set. Keys present in the file
// override the environment.
func Load() Config {
	cfg := Config{
		DatasetPath:     getEnv("MOVIEREC_DATASET", DefaultDatasetPath),
		DatasetEncoding: getEnv("MOVIEREC_DATASET_ENCODING", DefaultEncoding),

		ResultLimit: getEnvInt("MOVIEREC_RESULT_LIMIT", DefaultResultLimit),
		MatchCutoff: getEnvFloat("MOVIEREC_MATCH_CUTOFF", DefaultMatchCutoff),

		ServerPort: getEnv("MOVIEREC_SERVER_PORT", DefaultServerPort),
		ServerURL:  getEnv("MOVIEREC_SERVER_URL", ""),
		Warm:       getEnv("MOVIEREC_WARM", "true") == "true",

		LogFile:  getEnv("MOVIEREC_LOG_FILE", "/tmp/movierec.log"),
		LogLevel: ParseLogLevel(getEnv("MOVIEREC_LOG_LEVEL", "INFO")),
	}

	if path := os.Getenv("MOVIEREC_CONFIG"); path != "" {
		if err := cfg.ApplyFile(path); err != nil {
			slog.Warn("ignoring config file", "file", path, "error", err)
		}
	}

	return cfg
}

// Validate checks values that would make the recommender misbehave.
func (c Config) Validate() error {
	var errs []error
	if c.DatasetPath == "" {
		errs = append(errs, errors.New("dataset path must not be empty"))
	}
	if c.ResultLimit <= 0 {
		errs = append(errs, fmt.Errorf("result limit must be positive, got %d", c.ResultLimit))
	}
	if c.MatchCutoff <= 0 || c.MatchCutoff > 1 {
		errs = append(errs, fmt.Errorf("match cutoff must be in (0, 1], got %g", c.MatchCutoff))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", val)
		return defaultVal
	}
	return n
}

func getEnvFloat(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		slog.Warn("invalid number in environment, using default", "key", key, "value", val)
		return defaultVal
	}
	return f
}

// ParseLogLevel maps a level name to a slog.Level. Unknown names mean INFO.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
