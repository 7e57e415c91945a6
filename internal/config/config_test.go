package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Setenv("BOT_TOKEN", "token")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Signals.SupportedPairs) != 12 {
		t.Errorf("expected 12 default pairs, got %d", len(cfg.Signals.SupportedPairs))
	}
	if cfg.Signals.RSIPeriod != 14 || cfg.Signals.SMAPeriod != 50 || cfg.Signals.BBMultiplier != 2 {
		t.Errorf("unexpected indicator defaults: %+v", cfg.Signals)
	}
	if cfg.HTTP.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.HTTP.Port)
	}
	if cfg.DataSource.Provider != "synthetic" {
		t.Errorf("expected synthetic provider, got %s", cfg.DataSource.Provider)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
telegram:
  bot_token: from-file
signals:
  supported_pairs: [EURUSD, USDJPY]
  sma_period: 30
data_source:
  provider: yahoo
  timeout: 3s
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("BOT_TOKEN", "from-env")
	t.Setenv("PORT", "8080")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.BotToken != "from-env" {
		t.Errorf("expected env token, got %q", cfg.Telegram.BotToken)
	}
	if cfg.HTTP.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.HTTP.Port)
	}
	if len(cfg.Signals.SupportedPairs) != 2 || cfg.Signals.SMAPeriod != 30 {
		t.Errorf("file values not applied: %+v", cfg.Signals)
	}
	if cfg.DataSource.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.DataSource.Timeout)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without bot token")
	}

	cfg.Telegram.BotToken = "token"
	cfg.Signals.SupportedPairs = []string{"EURUSD", "BTC"}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for malformed pair")
	}

	cfg.Signals.SupportedPairs = DefaultPairs
	cfg.DataSource.Provider = "bloomberg"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestValidate_IndicatorSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"negative rsi period", func(c *Config) { c.Signals.RSIPeriod = -3 }},
		{"negative sma period", func(c *Config) { c.Signals.SMAPeriod = -1 }},
		{"negative bb period", func(c *Config) { c.Signals.BBPeriod = -20 }},
		{"negative macd fast", func(c *Config) { c.Signals.MACDFast = -12 }},
		{"negative macd slow", func(c *Config) { c.Signals.MACDFast, c.Signals.MACDSlow = -30, -26 }},
		{"negative history length", func(c *Config) { c.Signals.HistoryLength = -100 }},
		{"negative bb multiplier", func(c *Config) { c.Signals.BBMultiplier = -2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_TOKEN", "token")
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

func TestLoad_NegativeIndicatorSettingsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
telegram:
  bot_token: token
signals:
  rsi_period: -3
  sma_period: -1
  bb_multiplier: -2
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Signals.RSIPeriod != -3 {
		t.Fatalf("expected file value to survive defaults, got %d", cfg.Signals.RSIPeriod)
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected negative indicator settings to fail validation")
	}
}
