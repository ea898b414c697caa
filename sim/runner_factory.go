package sim

import (
	"tick-engine-go/config"
	"tick-engine-go/internal/engine"
	"tick-engine-go/logs"
	"tick-engine-go/risk"
	"tick-engine-go/strategy"
)

// EngineConfig maps the application config onto the engine's own config.
func EngineConfig(cfg config.AppConfig) engine.Config {
	limits := make(risk.Limits, len(cfg.Products))
	products := make(map[string]strategy.ProductParams, len(cfg.Products))
	for name, pc := range cfg.Products {
		limits[name] = pc.PositionLimit
		products[name] = strategy.ProductParams{
			Policy:         strategy.Policy(pc.Policy),
			Alpha:          pc.Alpha,
			SpreadMult:     pc.SpreadMult,
			TrendWiden:     pc.TrendWiden,
			BasketFraction: pc.BasketFraction,
			BaseScale:      pc.BaseScale,
			StrongScale:    pc.StrongScale,
			SlopeThreshold: pc.SlopeThreshold,
		}
	}
	return engine.Config{
		WindowSize:      cfg.WindowSize,
		GapMultiplier:   cfg.GapMultiplier,
		ConversionLimit: cfg.ConversionLimit,
		Limits:          limits,
		Products:        products,
		Baskets:         cfg.Baskets,
		Opportunistic:   cfg.Opportunistic,
		SeedFiles:       cfg.HistoryFiles,
	}
}

// BuildRunner assembles an engine and runner from the application config
// (in-memory components only, suitable for offline runs).
func BuildRunner(cfg config.AppConfig, seed int64, log logs.Logger) (*Runner, error) {
	eng, err := engine.New(EngineConfig(cfg), engine.WithLogger(log))
	if err != nil {
		return nil, err
	}
	return NewRunner(eng, seed, log), nil
}
