// Command engine runs the decision loop as a long-lived daemon: it loads
// config, reloads it on change, paces synthetic rounds with a rate limiter
// and exposes Prometheus metrics. Market data here is self-generated; a
// deployment wires real snapshots into sim.Runner.FeedPrices instead.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"tick-engine-go/config"
	"tick-engine-go/infrastructure/logger"
	"tick-engine-go/metrics"
	"tick-engine-go/sim"
)

func main() {
	cfgPath := flag.String("config", "configs/config.yaml", "config file path")
	logLevel := flag.String("logLevel", "info", "log level: debug, info, warn, error")
	logFormat := flag.String("logFormat", "json", "log format: json or console")
	roundsPerSec := flag.Float64("roundsPerSec", 10, "decision rounds per second")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the synthetic feed")
	flag.Parse()

	// Missing .env is fine; env vars may come from the service manager.
	_ = godotenv.Load()

	zl, err := logger.New(logger.Config{Level: *logLevel, Format: *logFormat})
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	log := logger.Sugar{Z: zl.Sugar()}

	cfg, err := config.LoadWithEnvOverrides(*cfgPath)
	if err != nil {
		log.Error("load config failed", "path", *cfgPath, "err", err)
		os.Exit(1)
	}

	if cfg.MetricsAddr != "" {
		metrics.StartMetricsServer(cfg.MetricsAddr)
		log.Info("metrics listening", "addr", cfg.MetricsAddr)
	}

	runner, err := sim.BuildRunner(cfg, *seed, log)
	if err != nil {
		log.Error("build runner failed", "err", err)
		os.Exit(1)
	}
	runner.PublishMetrics = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mu sync.Mutex
	go func() {
		watcher := config.Watcher{Path: *cfgPath}
		err := watcher.Start(ctx, func(next config.AppConfig) {
			replacement, err := sim.BuildRunner(next, *seed, log)
			if err != nil {
				log.Warn("config reload rejected", "err", err)
				return
			}
			replacement.PublishMetrics = true
			mu.Lock()
			runner = replacement
			mu.Unlock()
			log.Info("config reloaded", "products", len(next.Products))
		})
		if err != nil && ctx.Err() == nil {
			log.Error("config watcher stopped", "err", err)
		}
	}()

	if sent, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
		log.Warn("sd_notify failed", "err", err)
	} else if sent {
		log.Info("notified systemd ready")
	}

	limiter := rate.NewLimiter(rate.Limit(*roundsPerSec), 1)
	log.Info("engine started", "env", cfg.Env, "products", len(cfg.Products))

	for {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		mu.Lock()
		runner.Step()
		mu.Unlock()
	}

	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
	mu.Lock()
	sum := runner.Analyzer.Summary()
	mu.Unlock()
	log.Info("engine stopped",
		"rounds", sum.Rounds,
		"orders", sum.OrdersEmitted,
		"realizedPnL", sum.RealizedPnL)
}
