package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPairs is the supported instrument set when none is configured.
var DefaultPairs = []string{
	"EURUSD", "GBPUSD", "USDJPY", "USDCHF", "AUDUSD", "USDCAD",
	"NZDUSD", "EURJPY", "GBPJPY", "EURGBP", "AUDJPY", "CHFJPY",
}

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
	} `yaml:"telegram"`
	Signals struct {
		SupportedPairs []string `yaml:"supported_pairs"`
		HistoryLength  int      `yaml:"history_length"`
		RSIPeriod      int      `yaml:"rsi_period"`
		MACDFast       int      `yaml:"macd_fast"`
		MACDSlow       int      `yaml:"macd_slow"`
		BBPeriod       int      `yaml:"bb_period"`
		BBMultiplier   float64  `yaml:"bb_multiplier"`
		SMAPeriod      int      `yaml:"sma_period"`
		RiskLowMin     int      `yaml:"risk_low_min"`
		RiskMediumMin  int      `yaml:"risk_medium_min"`
	} `yaml:"signals"`
	DataSource struct {
		Provider string        `yaml:"provider"` // "synthetic" or "yahoo"
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"data_source"`
	Database struct {
		SQLitePath    string `yaml:"sqlite_path"`
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		HistoryLimit  int    `yaml:"history_limit"`
	} `yaml:"database"`
	Schedule struct {
		PruneCron string `yaml:"prune_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level      string `yaml:"level"`
		FilePath   string `yaml:"file_path"`
		MaxSize    int    `yaml:"max_size"`
		MaxAge     int    `yaml:"max_age"`
		MaxBackups int    `yaml:"max_backups"`
		Compress   bool   `yaml:"compress"`
	} `yaml:"log"`
	HTTP struct {
		Port string `yaml:"port"`
	} `yaml:"http"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Port = v
	}
	if v := os.Getenv("DATA_SOURCE"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Database.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Database.RedisPassword = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Database.HistoryLimit = n
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if len(c.Signals.SupportedPairs) == 0 {
		c.Signals.SupportedPairs = append([]string(nil), DefaultPairs...)
	}
	if c.Signals.HistoryLength == 0 {
		c.Signals.HistoryLength = 100
	}
	if c.Signals.RSIPeriod == 0 {
		c.Signals.RSIPeriod = 14
	}
	if c.Signals.MACDFast == 0 {
		c.Signals.MACDFast = 12
	}
	if c.Signals.MACDSlow == 0 {
		c.Signals.MACDSlow = 26
	}
	if c.Signals.BBPeriod == 0 {
		c.Signals.BBPeriod = 20
	}
	if c.Signals.BBMultiplier == 0 {
		c.Signals.BBMultiplier = 2
	}
	if c.Signals.SMAPeriod == 0 {
		c.Signals.SMAPeriod = 50
	}
	if c.Signals.RiskLowMin == 0 {
		c.Signals.RiskLowMin = 80
	}
	if c.Signals.RiskMediumMin == 0 {
		c.Signals.RiskMediumMin = 65
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = "synthetic"
	}
	if c.DataSource.Timeout == 0 {
		c.DataSource.Timeout = 10 * time.Second
	}
	if c.Database.SQLitePath == "" && c.Database.RedisAddr == "" {
		c.Database.SQLitePath = "data/pipsignal.db"
	}
	if c.Database.HistoryLimit == 0 {
		c.Database.HistoryLimit = 1000
	}
	if c.Schedule.PruneCron == "" {
		c.Schedule.PruneCron = "0 */15 * * * *"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 200
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 30
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 7
	}
	if c.HTTP.Port == "" {
		c.HTTP.Port = "3000"
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if len(c.Signals.SupportedPairs) == 0 {
		return fmt.Errorf("signals.supported_pairs must not be empty")
	}
	for _, p := range c.Signals.SupportedPairs {
		if len(p) != 6 {
			return fmt.Errorf("signals.supported_pairs: %q is not a six-letter pair", p)
		}
	}
	periods := []struct {
		name  string
		value int
	}{
		{"signals.history_length", c.Signals.HistoryLength},
		{"signals.rsi_period", c.Signals.RSIPeriod},
		{"signals.macd_fast", c.Signals.MACDFast},
		{"signals.macd_slow", c.Signals.MACDSlow},
		{"signals.bb_period", c.Signals.BBPeriod},
		{"signals.sma_period", c.Signals.SMAPeriod},
	}
	for _, p := range periods {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", p.name, p.value)
		}
	}
	if c.Signals.BBMultiplier <= 0 {
		return fmt.Errorf("signals.bb_multiplier must be positive, got %v", c.Signals.BBMultiplier)
	}
	if c.Signals.MACDFast >= c.Signals.MACDSlow {
		return fmt.Errorf("signals.macd_fast must be below signals.macd_slow")
	}
	if c.Signals.RiskMediumMin > c.Signals.RiskLowMin {
		return fmt.Errorf("signals.risk_medium_min must not exceed signals.risk_low_min")
	}
	switch c.DataSource.Provider {
	case "synthetic", "yahoo":
	default:
		return fmt.Errorf("data_source.provider must be synthetic or yahoo, got %q", c.DataSource.Provider)
	}
	if c.Database.HistoryLimit < 0 {
		return fmt.Errorf("database.history_limit must not be negative")
	}
	return nil
}
