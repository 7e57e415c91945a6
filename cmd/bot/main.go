package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"PipSignal/internal/bot"
	"PipSignal/internal/collector"
	"PipSignal/internal/config"
	"PipSignal/internal/logger"
	"PipSignal/internal/metrics"
	"PipSignal/internal/notifier"
	"PipSignal/internal/recorder"
	"PipSignal/internal/scheduler"
	"PipSignal/internal/server"
	"PipSignal/internal/strategy"
)

func main() {
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fallback, _ := zap.NewProduction()
		fallback.Fatal("load config", zap.Error(err))
	}

	log, flush := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxAge:     cfg.Log.MaxAge,
		MaxBackups: cfg.Log.MaxBackups,
		Compress:   cfg.Log.Compress,
	})
	defer flush()

	if err := cfg.Validate(); err != nil {
		log.Fatal("config validation", zap.Error(err))
	}
	log.Info("PipSignal starting", zap.Strings("pairs", cfg.Signals.SupportedPairs))

	// Price feed
	var provider collector.Provider
	switch cfg.DataSource.Provider {
	case "yahoo":
		provider = collector.NewYahooProvider(cfg.Proxy, cfg.DataSource.Timeout)
	default:
		provider = collector.NewSyntheticProvider(func() collector.Rand { return strategy.NewRand() })
	}
	log.Info("data source", zap.String("provider", provider.Name()))

	col := collector.NewCollector(provider, collector.Periods{
		HistoryLength:       cfg.Signals.HistoryLength,
		RSI:                 cfg.Signals.RSIPeriod,
		MACDFast:            cfg.Signals.MACDFast,
		MACDSlow:            cfg.Signals.MACDSlow,
		Bollinger:           cfg.Signals.BBPeriod,
		BollingerMultiplier: cfg.Signals.BBMultiplier,
		SMA:                 cfg.Signals.SMAPeriod,
	})
	engine := strategy.NewEngine(col, cfg.Signals.SupportedPairs)
	engine.Risk = strategy.RiskThresholds{LowMin: cfg.Signals.RiskLowMin, MediumMin: cfg.Signals.RiskMediumMin}

	rec := openRecorder(cfg, log)
	defer rec.Close()

	m := metrics.NewMetrics()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, rec, m, cfg.Database.HistoryLimit)
	if err := sched.RegisterAll(cfg.Schedule.PruneCron); err != nil {
		log.Fatal("register cron tasks", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(":"+cfg.HTTP.Port, m.Handler())
	srv.Start()

	handler := bot.NewHandler(engine, rec, m, cfg.Signals.SupportedPairs)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Proxy)
	go tn.StartPolling(ctx, handler.HandleCommand)
	log.Info("Telegram polling started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	log.Info("PipSignal stopped")
}

// openRecorder prefers Redis, then SQLite, and falls back to a no-op store.
func openRecorder(cfg *config.Config, log *zap.Logger) recorder.Recorder {
	if cfg.Database.RedisAddr != "" {
		rr, err := recorder.NewRedisRecorder(recorder.RedisConfig{
			Addr:     cfg.Database.RedisAddr,
			Password: cfg.Database.RedisPassword,
			DB:       cfg.Database.RedisDB,
		})
		if err == nil {
			log.Info("history store", zap.String("backend", "redis"), zap.String("addr", cfg.Database.RedisAddr))
			return rr
		}
		log.Warn("init redis recorder failed", zap.Error(err))
	}
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err == nil {
			log.Info("history store", zap.String("backend", "sqlite"), zap.String("path", cfg.Database.SQLitePath))
			return sr
		}
		log.Warn("init sqlite recorder failed", zap.Error(err))
	}
	log.Warn("history store disabled, using noop recorder")
	return recorder.NewNoopRecorder()
}
