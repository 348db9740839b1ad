package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kirinyoku/gigledger/internal/config"
	"github.com/kirinyoku/gigledger/internal/domain"
)

func memoryConfig(policy string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Store:  config.DriverMemory,
		Auth:   config.AuthConfig{JWTSecret: "secret"},
		Engine: config.EngineConfig{
			Identity:      domain.MustIdentity("0x00000000000000000000000000000000000000e0"),
			Operators:     domain.NewIdentitySet(domain.MustIdentity("0x00000000000000000000000000000000000000f0")),
			PayoutPolicy:  policy,
			BuyRateLimit:  10,
			BuyRateWindow: time.Minute,
		},
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_Memory(t *testing.T) {
	a, err := New(memoryConfig(""), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.pubsub != nil {
		t.Fatal("pubsub wired without redis")
	}

	for _, path := range []string{"/healthz", "/concerts/next-id", "/ledger/verify"} {
		w := httptest.NewRecorder()
		a.httpServer.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d: %s", path, w.Code, w.Body.String())
		}
	}
}

func TestNew_InvalidPayoutPolicy(t *testing.T) {
	if _, err := New(memoryConfig("venue"), discard()); err == nil {
		t.Fatal("expected error for unknown payout policy")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := New(memoryConfig("operator"), discard())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
