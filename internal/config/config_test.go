package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaultsForDevProfile(t *testing.T) {
	lookup := mapLookup(map[string]string{})
	cfg, err := Load("askwind", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileDev {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileDev)
	}
	if cfg.Service.Name != "askwind" {
		t.Fatalf("Service.Name = %q", cfg.Service.Name)
	}
	if cfg.HTTP.Address != ":8080" {
		t.Fatalf("HTTP.Address = %q", cfg.HTTP.Address)
	}
	if cfg.HTTP.ShutdownTimeout != 10*time.Second {
		t.Fatalf("HTTP.ShutdownTimeout = %s", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Store.Path != "northwind.db" {
		t.Fatalf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Agent.Model != "claude-3-5-haiku-20241022" {
		t.Fatalf("Agent.Model = %q", cfg.Agent.Model)
	}
	if cfg.Agent.MaxTokens != 2000 {
		t.Fatalf("Agent.MaxTokens = %d", cfg.Agent.MaxTokens)
	}
	if cfg.Agent.Temperature != 0.7 {
		t.Fatalf("Agent.Temperature = %f", cfg.Agent.Temperature)
	}
	if cfg.Agent.MaxRounds != 10 {
		t.Fatalf("Agent.MaxRounds = %d", cfg.Agent.MaxRounds)
	}
	if cfg.Agent.APIKey != "" {
		t.Fatalf("Agent.APIKey = %q, want empty", cfg.Agent.APIKey)
	}
	if cfg.Observability.LogLevel != slog.LevelDebug {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if cfg.Observability.LogJSON {
		t.Fatal("LogJSON should default to false in dev")
	}
}

func TestLoadProdProfileDefaults(t *testing.T) {
	lookup := mapLookup(map[string]string{"ASKWIND_PROFILE": "prod"})
	cfg, err := Load("askwind", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Profile != ProfileProd {
		t.Fatalf("Profile = %q, want %q", cfg.Profile, ProfileProd)
	}
	if cfg.Observability.LogLevel != slog.LevelInfo {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if !cfg.Observability.LogJSON {
		t.Fatal("LogJSON should default to true in prod")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	lookup := mapLookup(map[string]string{
		"ASKWIND_PROFILE":            "test",
		"ASKWIND_SERVICE_NAME":       "askwind-custom",
		"ASKWIND_HTTP_ADDR":          ":9999",
		"ASKWIND_HTTP_READ_TIMEOUT":  "2s",
		"ASKWIND_HTTP_WRITE_TIMEOUT": "3s",
		"ASKWIND_SHUTDOWN_TIMEOUT":   "30s",
		"ASKWIND_DB_PATH":            "/tmp/fixture.db",
		"ANTHROPIC_API_KEY":          "sk-test",
		"ASKWIND_MODEL":              "claude-3-7-sonnet-latest",
		"ASKWIND_MAX_TOKENS":         "4096",
		"ASKWIND_TEMPERATURE":        "0.2",
		"ASKWIND_MAX_ROUNDS":         "6",
		"ASKWIND_LOG_LEVEL":          "error",
		"ASKWIND_LOG_JSON":           "true",
	})
	cfg, err := Load("askwind", lookup)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Service.Name != "askwind-custom" {
		t.Fatalf("Service.Name = %q", cfg.Service.Name)
	}
	if cfg.HTTP.Address != ":9999" {
		t.Fatalf("HTTP.Address = %q", cfg.HTTP.Address)
	}
	if cfg.HTTP.ReadTimeout != 2*time.Second {
		t.Fatalf("HTTP.ReadTimeout = %s", cfg.HTTP.ReadTimeout)
	}
	if cfg.HTTP.WriteTimeout != 3*time.Second {
		t.Fatalf("HTTP.WriteTimeout = %s", cfg.HTTP.WriteTimeout)
	}
	if cfg.HTTP.ShutdownTimeout != 30*time.Second {
		t.Fatalf("HTTP.ShutdownTimeout = %s", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Store.Path != "/tmp/fixture.db" {
		t.Fatalf("Store.Path = %q", cfg.Store.Path)
	}
	if cfg.Agent.APIKey != "sk-test" {
		t.Fatalf("Agent.APIKey = %q", cfg.Agent.APIKey)
	}
	if cfg.Agent.Model != "claude-3-7-sonnet-latest" {
		t.Fatalf("Agent.Model = %q", cfg.Agent.Model)
	}
	if cfg.Agent.MaxTokens != 4096 {
		t.Fatalf("Agent.MaxTokens = %d", cfg.Agent.MaxTokens)
	}
	if cfg.Agent.Temperature != 0.2 {
		t.Fatalf("Agent.Temperature = %f", cfg.Agent.Temperature)
	}
	if cfg.Agent.MaxRounds != 6 {
		t.Fatalf("Agent.MaxRounds = %d", cfg.Agent.MaxRounds)
	}
	if cfg.Observability.LogLevel != slog.LevelError {
		t.Fatalf("LogLevel = %v", cfg.Observability.LogLevel)
	}
	if !cfg.Observability.LogJSON {
		t.Fatal("LogJSON = false, want true")
	}
}

func TestLoadErrorsOnInvalidValues(t *testing.T) {
	tests := []map[string]string{
		{"ASKWIND_PROFILE": "oops"},
		{"ASKWIND_HTTP_READ_TIMEOUT": "NaN"},
		{"ASKWIND_MAX_TOKENS": "oops"},
		{"ASKWIND_MAX_TOKENS": "0"},
		{"ASKWIND_MAX_ROUNDS": "-1"},
		{"ASKWIND_TEMPERATURE": "bad"},
		{"ASKWIND_TEMPERATURE": "1.5"},
		{"ASKWIND_LOG_JSON": "not-bool"},
		{"ASKWIND_LOG_LEVEL": "verbose"},
		{"ASKWIND_DB_PATH": " "},
	}
	for _, env := range tests {
		_, err := Load("askwind", mapLookup(env))
		if err == nil {
			t.Fatalf("Load() expected error for env %#v", env)
		}
	}
}

func TestValidateAgentRequiresAPIKey(t *testing.T) {
	cfg, err := Load("askwind", mapLookup(map[string]string{}))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	err = cfg.ValidateAgent()
	if err == nil {
		t.Fatal("ValidateAgent() expected error without ANTHROPIC_API_KEY")
	}
	if !strings.Contains(err.Error(), "ANTHROPIC_API_KEY") {
		t.Fatalf("ValidateAgent() error = %v, want mention of ANTHROPIC_API_KEY", err)
	}

	cfg.Agent.APIKey = "sk-test"
	if err := cfg.ValidateAgent(); err != nil {
		t.Fatalf("ValidateAgent() error = %v", err)
	}
}

func mapLookup(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}
