package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

var GlobalConfig *Config

// Config global configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Redis      RedisConfig      `yaml:"redis"`
	Logger     LoggerConfig     `yaml:"logger"`
	Clustering ClusteringConfig `yaml:"clustering"`
	Scheduling SchedulingConfig `yaml:"scheduling"`
	History    HistoryConfig    `yaml:"history"`
}

// ServerConfig server configuration
type ServerConfig struct {
	Port   int    `yaml:"port"`
	Mode   string `yaml:"mode"`    // debug, release
	APIKey string `yaml:"api_key"` // API key for request authentication (optional, if empty, auth is disabled)
}

// RedisConfig Redis configuration
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// LoggerConfig logger configuration
type LoggerConfig struct {
	Level  string           `yaml:"level"`  // debug, info, warn, error
	Output string           `yaml:"output"` // console, file, both
	File   LoggerFileConfig `yaml:"file"`
}

// LoggerFileConfig logger file configuration
type LoggerFileConfig struct {
	Path string `yaml:"path"`
}

// ClusteringConfig cohort clustering configuration
type ClusteringConfig struct {
	TargetClusters    int     `yaml:"target_clusters"`     // target cohort count for radius tuning (0 disables tuning)
	MinSamples        int     `yaml:"min_samples"`         // density threshold, neighbors within eps (point included)
	EpsMin            float64 `yaml:"eps_min"`             // smallest candidate radius
	EpsMax            float64 `yaml:"eps_max"`             // largest candidate radius (inclusive)
	EpsStep           float64 `yaml:"eps_step"`            // candidate radius increment
	FixedEps          float64 `yaml:"fixed_eps"`           // radius used when tuning is disabled
	TargetTotalPoints int     `yaml:"target_total_points"` // total dots to render, real + synthetic
	SyntheticSigma    float64 `yaml:"synthetic_sigma"`     // spread of synthetic dots in feature space
}

// SchedulingConfig rollout scheduling configuration
type SchedulingConfig struct {
	PayloadSeconds int `yaml:"payload_seconds"` // seconds the update payload takes
	SetupSeconds   int `yaml:"setup_seconds"`   // preparation lead time before an update
	MinGapSeconds  int `yaml:"min_gap_seconds"` // minimum spacing between two scheduled cohorts
}

// HistoryConfig run history configuration
type HistoryConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"` // how long stored runs are kept
}

// DefaultClusteringConfig returns the clustering defaults
func DefaultClusteringConfig() ClusteringConfig {
	return ClusteringConfig{
		TargetClusters:    6,
		MinSamples:        1,
		EpsMin:            0.4,
		EpsMax:            2.0,
		EpsStep:           0.1,
		FixedEps:          3.5,
		TargetTotalPoints: 100,
		SyntheticSigma:    0.12,
	}
}

// DefaultSchedulingConfig returns the scheduling defaults
func DefaultSchedulingConfig() SchedulingConfig {
	return SchedulingConfig{
		PayloadSeconds: 25,
		SetupSeconds:   5,
		MinGapSeconds:  30,
	}
}

// Init initializes configuration
func Init() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return err
	}

	// Pre-seeding separates "key absent" from "explicitly zero": an
	// omitted target_clusters keeps radius tuning on, while an explicit
	// 0 disables it.
	cfg := Config{
		Clustering: DefaultClusteringConfig(),
		Scheduling: DefaultSchedulingConfig(),
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}

	validateAndApplyDefaults(&cfg)
	GlobalConfig = &cfg
	return nil
}

// validateAndApplyDefaults replaces missing or invalid numeric knobs with
// their defaults so a partial config file still yields a working service.
func validateAndApplyDefaults(cfg *Config) {
	cd := DefaultClusteringConfig()
	if cfg.Clustering.TargetClusters < 0 {
		cfg.Clustering.TargetClusters = cd.TargetClusters
	}
	if cfg.Clustering.MinSamples <= 0 {
		cfg.Clustering.MinSamples = cd.MinSamples
	}
	if cfg.Clustering.EpsMin <= 0 {
		cfg.Clustering.EpsMin = cd.EpsMin
	}
	if cfg.Clustering.EpsMax < cfg.Clustering.EpsMin {
		cfg.Clustering.EpsMax = cd.EpsMax
	}
	if cfg.Clustering.EpsStep <= 0 {
		cfg.Clustering.EpsStep = cd.EpsStep
	}
	if cfg.Clustering.FixedEps <= 0 {
		cfg.Clustering.FixedEps = cd.FixedEps
	}
	if cfg.Clustering.TargetTotalPoints <= 0 {
		cfg.Clustering.TargetTotalPoints = cd.TargetTotalPoints
	}
	if cfg.Clustering.SyntheticSigma <= 0 {
		cfg.Clustering.SyntheticSigma = cd.SyntheticSigma
	}

	sd := DefaultSchedulingConfig()
	if cfg.Scheduling.PayloadSeconds <= 0 {
		cfg.Scheduling.PayloadSeconds = sd.PayloadSeconds
	}
	if cfg.Scheduling.SetupSeconds < 0 {
		cfg.Scheduling.SetupSeconds = sd.SetupSeconds
	}
	if cfg.Scheduling.MinGapSeconds < 0 {
		cfg.Scheduling.MinGapSeconds = sd.MinGapSeconds
	}

	if cfg.History.TTLMinutes <= 0 {
		cfg.History.TTLMinutes = 60
	}
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8082
	}
}
