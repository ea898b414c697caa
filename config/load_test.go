package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validYAML = `
env: dev
windowSize: 20
gapMultiplier: 20
conversionLimit: 5
products:
  PEARLS:
    policy: stable
    positionLimit: 50
    alpha: 0.1
    spreadMult: 2
    baseScale: 5
  BERRIES:
    policy: volatile
    positionLimit: 350
    alpha: 0.3
    spreadMult: 3
    baseScale: 3
  DRIFTWOOD:
    policy: trending
    positionLimit: 60
    spreadMult: 2
    trendWiden: 0.5
    baseScale: 4
    strongScale: 6
    slopeThreshold: 0.5
  CRATE_A:
    policy: basket
    positionLimit: 60
    basketFraction: 0.05
    baseScale: 3
baskets:
  CRATE_A:
    PEARLS: 6
    BERRIES: 3
    DRIFTWOOD: 1
`

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeTempConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WindowSize != 20 || len(cfg.Products) != 4 {
		t.Fatalf("unexpected cfg values: %+v", cfg)
	}
	if cfg.Products["PEARLS"].Alpha != 0.1 {
		t.Fatalf("unexpected product config: %+v", cfg.Products["PEARLS"])
	}
	if cfg.Baskets["CRATE_A"]["PEARLS"] != 6 {
		t.Fatalf("unexpected basket weights: %+v", cfg.Baskets)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	minimal := `
products:
  PEARLS:
    policy: stable
    positionLimit: 50
    alpha: 0.1
    spreadMult: 2
    baseScale: 5
`
	cfg, err := Load(writeTempConfig(t, minimal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Env != "dev" || cfg.WindowSize != 20 || cfg.GapMultiplier != 20 || cfg.ConversionLimit != 5 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("ENGINE_METRICS_ADDR", ":9999")
	cfg, err := LoadWithEnvOverrides(writeTempConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MetricsAddr != ":9999" {
		t.Fatalf("env override not applied: %q", cfg.MetricsAddr)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"no products", func(c *AppConfig) { c.Products = nil }, "products"},
		{"bad policy", func(c *AppConfig) {
			p := c.Products["PEARLS"]
			p.Policy = "chaotic"
			c.Products["PEARLS"] = p
		}, "policy"},
		{"bad limit", func(c *AppConfig) {
			p := c.Products["PEARLS"]
			p.PositionLimit = 0
			c.Products["PEARLS"] = p
		}, "positionLimit"},
		{"bad alpha", func(c *AppConfig) {
			p := c.Products["PEARLS"]
			p.Alpha = 2
			c.Products["PEARLS"] = p
		}, "alpha"},
		{"unknown constituent", func(c *AppConfig) {
			c.Baskets["CRATE_A"]["GHOST"] = 2
		}, "GHOST"},
		{"zero weight", func(c *AppConfig) {
			c.Baskets["CRATE_A"]["PEARLS"] = 0
		}, "weight"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load(writeTempConfig(t, validYAML))
			if err != nil {
				t.Fatalf("base config should load: %v", err)
			}
			tc.mutate(&cfg)
			err = Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}
