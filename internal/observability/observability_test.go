package observability

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/riskibarqy/league-portal/internal/config"
	"github.com/riskibarqy/league-portal/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	cfg := config.Config{
		ServiceName:    "league-portal-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	stack, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown observability: %v", err)
	}
}

func TestStart_UptraceEnabledWithoutDSNStaysOff(t *testing.T) {
	cfg := config.Config{UptraceEnabled: true, ServiceName: "league-portal-api"}

	stack, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown observability: %v", err)
	}
}

func TestStart_PprofServesIndex(t *testing.T) {
	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}

	stack, err := Start(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start observability: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = stack.Shutdown(ctx)
	})

	resp, err := http.Get("http://" + stack.pprof.addr + "/debug/pprof/")
	if err != nil {
		t.Fatalf("get pprof index: %v", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestShutdown_NilStack(t *testing.T) {
	var s *Stack
	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("nil stack shutdown: %v", err)
	}
}
