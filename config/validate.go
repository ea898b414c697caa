package config

import (
	"errors"
	"fmt"
)

var knownPolicies = map[string]bool{
	"stable":   true,
	"volatile": true,
	"trending": true,
	"basket":   true,
}

// Validate ensures required fields are present and well-formed. Deeper
// cross-product checks (basket compositions against policies) happen when
// the engine is constructed.
func Validate(cfg AppConfig) error {
	if cfg.WindowSize <= 0 {
		return errors.New("windowSize must be > 0")
	}
	if cfg.GapMultiplier < 0 {
		return errors.New("gapMultiplier must be >= 0")
	}
	if cfg.ConversionLimit <= 0 {
		return errors.New("conversionLimit must be > 0")
	}
	if len(cfg.Products) == 0 {
		return errors.New("products config is required")
	}
	for name, pc := range cfg.Products {
		if !knownPolicies[pc.Policy] {
			return fmt.Errorf("product %s: unknown policy %q", name, pc.Policy)
		}
		if pc.PositionLimit <= 0 {
			return fmt.Errorf("product %s: positionLimit must be > 0", name)
		}
		if pc.BaseScale <= 0 {
			return fmt.Errorf("product %s: baseScale must be > 0", name)
		}
		switch pc.Policy {
		case "stable", "volatile":
			if pc.Alpha <= 0 || pc.Alpha > 1 {
				return fmt.Errorf("product %s: alpha must be in (0,1]", name)
			}
			if pc.SpreadMult <= 0 {
				return fmt.Errorf("product %s: spreadMult must be > 0", name)
			}
		case "trending":
			if pc.SpreadMult <= 0 {
				return fmt.Errorf("product %s: spreadMult must be > 0", name)
			}
		case "basket":
			if pc.BasketFraction <= 0 || pc.BasketFraction >= 1 {
				return fmt.Errorf("product %s: basketFraction must be in (0,1)", name)
			}
			if _, ok := cfg.Baskets[name]; !ok {
				return fmt.Errorf("product %s: basket policy without a composition", name)
			}
		}
	}
	for basket, weights := range cfg.Baskets {
		if _, ok := cfg.Products[basket]; !ok {
			return fmt.Errorf("basket %s: not declared as a product", basket)
		}
		if len(weights) == 0 {
			return fmt.Errorf("basket %s: empty composition", basket)
		}
		for constituent, w := range weights {
			if w <= 0 {
				return fmt.Errorf("basket %s: weight for %s must be > 0", basket, constituent)
			}
			if _, ok := cfg.Products[constituent]; !ok {
				return fmt.Errorf("basket %s: constituent %s not declared", basket, constituent)
			}
		}
	}
	return nil
}
