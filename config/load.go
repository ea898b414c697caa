package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the main runtime configuration.
type AppConfig struct {
	Env             string                   `yaml:"env"`
	WindowSize      int                      `yaml:"windowSize"`
	GapMultiplier   float64                  `yaml:"gapMultiplier"`
	ConversionLimit int                      `yaml:"conversionLimit"`
	Opportunistic   bool                     `yaml:"opportunistic"`
	MetricsAddr     string                   `yaml:"metricsAddr"`
	HistoryFiles    []string                 `yaml:"historyFiles"`
	Products        map[string]ProductConfig `yaml:"products"`
	Baskets         map[string]map[string]int `yaml:"baskets"`
}

// ProductConfig declares one tradable product: its hard position bound and
// the estimation/sizing parameters of its policy.
type ProductConfig struct {
	Policy         string  `yaml:"policy"`         // stable | volatile | trending | basket
	PositionLimit  int     `yaml:"positionLimit"`  // symmetric bound L
	Alpha          float64 `yaml:"alpha"`          // EWMA smoothing (stable/volatile)
	SpreadMult     float64 `yaml:"spreadMult"`     // k in k*sigma
	TrendWiden     float64 `yaml:"trendWiden"`     // slope widening (trending)
	BasketFraction float64 `yaml:"basketFraction"` // spread fraction of fair value (basket)
	BaseScale      float64 `yaml:"baseScale"`      // sizing base
	StrongScale    float64 `yaml:"strongScale"`    // sizing base on strong trends
	SlopeThreshold float64 `yaml:"slopeThreshold"` // strong-trend cutoff
}

// Load reads YAML config from path, applies defaults and validates.
func Load(path string) (AppConfig, error) {
	var cfg AppConfig
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	cfg.applyDefaults()
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides selected fields from env
// vars if present.
func LoadWithEnvOverrides(path string) (AppConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("ENGINE_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("ENGINE_ENV"); v != "" {
		cfg.Env = v
	}
	return cfg, Validate(cfg)
}

func (c *AppConfig) applyDefaults() {
	if c.Env == "" {
		c.Env = "dev"
	}
	if c.WindowSize == 0 {
		c.WindowSize = 20
	}
	if c.GapMultiplier == 0 {
		c.GapMultiplier = 20
	}
	if c.ConversionLimit == 0 {
		c.ConversionLimit = 5
	}
}
