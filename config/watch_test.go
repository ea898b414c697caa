package config

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeTempConfig(t, validYAML)

	updates := make(chan AppConfig, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	w := Watcher{Path: path, Cooldown: 10 * time.Millisecond}
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Start(ctx, func(cfg AppConfig) {
			select {
			case updates <- cfg:
			default:
			}
		})
	}()

	// Give the watcher a moment to register, then rewrite the file.
	time.Sleep(100 * time.Millisecond)
	changed := validYAML + "\nmetricsAddr: \":9200\"\n"
	if err := os.WriteFile(path, []byte(changed), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-updates:
		if cfg.MetricsAddr != ":9200" {
			t.Fatalf("expected reloaded metricsAddr, got %q", cfg.MetricsAddr)
		}
	case <-ctx.Done():
		t.Fatal("timed out waiting for reload")
	}
	cancel()
	<-done
}

func TestWatcherIgnoresInvalidConfig(t *testing.T) {
	path := writeTempConfig(t, validYAML)

	updates := make(chan AppConfig, 1)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	w := Watcher{Path: path, Cooldown: 10 * time.Millisecond}
	go func() {
		_ = w.Start(ctx, func(cfg AppConfig) { updates <- cfg })
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(path, []byte("products: {}"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	select {
	case cfg := <-updates:
		t.Fatalf("invalid config should not trigger an update: %+v", cfg)
	case <-ctx.Done():
		// expected: no update arrived
	}
}
