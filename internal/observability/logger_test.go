package observability

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/askwind/askwind/internal/config"
)

func TestNewLoggerJSONCarriesServiceAttrs(t *testing.T) {
	cfg, err := config.Load("askwind", func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	cfg.Observability.LogJSON = true
	cfg.Observability.LogLevel = slog.LevelInfo

	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"service":"askwind"`) {
		t.Fatalf("log line missing service attr: %s", out)
	}
	if !strings.Contains(out, `"profile":"dev"`) {
		t.Fatalf("log line missing profile attr: %s", out)
	}
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	cfg, err := config.Load("askwind", func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}
	cfg.Observability.LogLevel = slog.LevelError

	var buf bytes.Buffer
	logger := NewLogger(cfg, &buf)
	logger.Info("suppressed")
	if buf.Len() != 0 {
		t.Fatalf("info line should be suppressed at error level, got %q", buf.String())
	}
	logger.Error("surfaced")
	if buf.Len() == 0 {
		t.Fatal("error line should be emitted")
	}
}

func TestNewConsoleLoggerWrites(t *testing.T) {
	cfg, err := config.Load("askwind", func(string) (string, bool) { return "", false })
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	var buf bytes.Buffer
	logger := NewConsoleLogger(cfg, &buf)
	logger.Info("ready", slog.String("db", "northwind.db"))
	if !strings.Contains(buf.String(), "ready") {
		t.Fatalf("console line missing message: %q", buf.String())
	}
}
