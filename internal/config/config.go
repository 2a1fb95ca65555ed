// Package config loads runtime configuration from LESSONPLANNER_*
// environment variables.
package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/lessonplanner/internal/engine"
)

// Config holds everything the binary needs to wire itself.
type Config struct {
	DBPath    string
	LogLevel  slog.Level
	LogFormat string // "text" or "json"
	Engine    engine.Config
}

// Default returns the configuration used when no variables are set. The
// database lives in ~/.lessonplanner unless the home directory is unknown.
func Default() Config {
	dbPath := "lessonplanner.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".lessonplanner", "lessonplanner.db")
	}
	return Config{
		DBPath:    dbPath,
		LogLevel:  slog.LevelWarn,
		LogFormat: "text",
		Engine:    engine.DefaultConfig(),
	}
}

// Load reads configuration from the environment, falling back to defaults
// for unset or invalid values.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("LESSONPLANNER_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LESSONPLANNER_LOG_LEVEL"); v != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(v)); err == nil {
			cfg.LogLevel = lvl
		}
	}
	if v := strings.ToLower(os.Getenv("LESSONPLANNER_LOG_FORMAT")); v == "text" || v == "json" {
		cfg.LogFormat = v
	}

	e := &cfg.Engine
	applyInt(&e.AgeFilterTolerance, "LESSONPLANNER_AGE_TOLERANCE", 0)
	applyFloat(&e.PriorityMultiplier, "LESSONPLANNER_PRIORITY_MULTIPLIER", 1, 10)
	applyInt(&e.BeamWidth, "LESSONPLANNER_BEAM_WIDTH", 1)
	applyFloat(&e.DurationTolerance, "LESSONPLANNER_DURATION_TOLERANCE", 0, 1)
	applyFloat(&e.DiversityThreshold, "LESSONPLANNER_DIVERSITY_THRESHOLD", 0.01, 1)
	applyInt(&e.BreakMinutes, "LESSONPLANNER_BREAK_MINUTES", 1)
	applyInt(&e.LongBreakMinutes, "LESSONPLANNER_LONG_BREAK_MINUTES", 1)
	applyInt(&e.LongBreakAfterMinutes, "LESSONPLANNER_LONG_BREAK_AFTER_MINUTES", 1)
	applyInt(&e.IntensityThreshold, "LESSONPLANNER_INTENSITY_THRESHOLD", 1)
	applyInt(&e.DefaultLimit, "LESSONPLANNER_DEFAULT_LIMIT", 1)
	applyInt(&e.Workers, "LESSONPLANNER_WORKERS", 1)

	return cfg
}

// NewLogger builds the process logger. Text output is the default.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func applyInt(dst *int, env string, min int) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < min {
		return
	}
	*dst = n
}

func applyFloat(dst *float64, env string, min, max float64) {
	v := os.Getenv(env)
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < min || f > max {
		return
	}
	*dst = f
}
