package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTPAddr)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Fatalf("unexpected metrics addr: %s", cfg.MetricsAddr)
	}
	if cfg.PostgresDSN != "" || cfg.KafkaBrokers != "" {
		t.Fatal("storage and kafka must be opt-in")
	}
}

func TestBuildDependencies_InMemoryFallback(t *testing.T) {
	logger := log.New()
	logger.SetLevel(log.PanicLevel)

	deps, err := buildDependencies(context.Background(), DefaultConfig(), logger.WithField("component", "test"))
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer deps.close(logger.WithField("component", "test"))

	if deps.customers == nil || deps.products == nil || deps.orders == nil || deps.uow == nil {
		t.Fatal("expected in-memory repositories to be wired")
	}
	if deps.notifier == nil {
		t.Fatal("expected log notifier fallback")
	}
	if deps.store != nil {
		t.Fatal("postgres store must be nil without dsn")
	}
	if deps.producer != nil {
		t.Fatal("kafka producer must be nil without brokers")
	}
}
