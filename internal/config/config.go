package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config captures the settings required to boot the leakage engine service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Keywords KeywordsConfig `yaml:"keywords"`
	Alerts   AlertsConfig   `yaml:"alerts"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig controls HTTP listener behaviour.
type ServerConfig struct {
	Address         string        `yaml:"address"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
	MaxBodyBytes    int64         `yaml:"maxBodyBytes"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// KeywordsConfig controls keyword-pack loading for the column classifier.
type KeywordsConfig struct {
	Path string `yaml:"path"`
}

// AlertsConfig controls alert rule-pack loading.
type AlertsConfig struct {
	RulesPath string `yaml:"rulesPath"`
}

// AnalysisConfig bounds a single analysis run. CacheTTL <= 0 disables the
// report cache.
type AnalysisConfig struct {
	MaxRows    int           `yaml:"maxRows"`
	MaxColumns int           `yaml:"maxColumns"`
	CacheTTL   time.Duration `yaml:"cacheTTL"`
}

// Load initialises Config from a YAML file and optional environment overrides.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("LEAKAGE_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found: %w", path, err)
			}
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	return &cfg, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Address:         ":8080",
			MetricsAddress:  ":2112",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    60 * time.Second,
			GracefulTimeout: 10 * time.Second,
			MaxBodyBytes:    32 << 20,
		},
		Logging:  LoggingConfig{Level: "info", JSON: false},
		Keywords: KeywordsConfig{Path: "configs/keywords/default.yaml"},
		Alerts:   AlertsConfig{RulesPath: ""},
		Analysis: AnalysisConfig{
			MaxRows:    1_000_000,
			MaxColumns: 512,
			CacheTTL:   5 * time.Minute,
		},
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LEAKAGE_SERVER_ADDRESS"); v != "" {
		cfg.Server.Address = v
	}
	if v := os.Getenv("LEAKAGE_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("LEAKAGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LEAKAGE_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("LEAKAGE_KEYWORDS_PATH"); v != "" {
		cfg.Keywords.Path = v
	}
	if v := os.Getenv("LEAKAGE_ALERT_RULES_PATH"); v != "" {
		cfg.Alerts.RulesPath = v
	}
	if v := os.Getenv("LEAKAGE_MAX_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MaxRows = n
		}
	}
	if v := os.Getenv("LEAKAGE_MAX_COLUMNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Analysis.MaxColumns = n
		}
	}
	if v := os.Getenv("LEAKAGE_CACHE_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Analysis.CacheTTL = d
		}
	}
	if v := os.Getenv("LEAKAGE_MAX_BODY_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Server.MaxBodyBytes = n
		}
	}
}
