package config

import (
	"os"
	"strconv"
	"strings"

	"geospec/domain/core"
	"geospec/internal/errors"
)

// Config represents the complete analysis configuration
type Config struct {
	Analysis AnalysisConfig
	Paths    PathConfig
}

// AnalysisConfig holds the numeric defaults for both components
type AnalysisConfig struct {
	MaxDegree        int
	ConfidenceLevels []float64
	Workers          int
}

// PathConfig holds optional export destinations
type PathConfig struct {
	CoefficientsFile string
	PowerFile        string
	CorrelationFile  string
}

// Load reads configuration from environment variables and validates it.
// Everything has a default; the environment only overrides.
func Load() (*Config, error) {
	analysis, err := loadAnalysisConfig()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load analysis configuration")
	}

	config := &Config{
		Analysis: *analysis,
		Paths: PathConfig{
			CoefficientsFile: os.Getenv("GEOSPEC_COEFS_FILE"),
			PowerFile:        os.Getenv("GEOSPEC_POWER_FILE"),
			CorrelationFile:  os.Getenv("GEOSPEC_CORR_FILE"),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadAnalysisConfig() (*AnalysisConfig, error) {
	cfg := &AnalysisConfig{
		MaxDegree:        getEnvIntOrDefault("GEOSPEC_MAX_DEGREE", 20),
		ConfidenceLevels: []float64{0.80, 0.95, 0.99},
		Workers:          getEnvIntOrDefault("GEOSPEC_WORKERS", 1),
	}

	if raw := os.Getenv("GEOSPEC_CONFIDENCE_LEVELS"); raw != "" {
		levels, err := ParseConfidenceLevels(raw)
		if err != nil {
			return nil, err
		}
		cfg.ConfidenceLevels = levels
	}
	return cfg, nil
}

// ParseConfidenceLevels parses a comma-separated list such as "0.8,0.95,0.99",
// preserving order because order fixes the output column layout.
func ParseConfidenceLevels(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	levels := make([]float64, 0, len(parts))
	for _, part := range parts {
		level, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.ConfigInvalid("confidence level is not a number: " + part)
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func validateConfig(config *Config) error {
	if config.Analysis.MaxDegree < 0 {
		return core.NewInvalidDegreeError(config.Analysis.MaxDegree)
	}
	for _, level := range config.Analysis.ConfidenceLevels {
		if !(level > 0 && level < 1) {
			return core.NewInvalidConfidenceError(level)
		}
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
