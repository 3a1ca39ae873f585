package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"QuoteChart/internal/api"
	"QuoteChart/internal/cache"
	"QuoteChart/internal/calculator"
	"QuoteChart/internal/collector"
	"QuoteChart/internal/config"
	"QuoteChart/internal/logger"
	"QuoteChart/internal/monitoring"
	"QuoteChart/internal/notifier"
	"QuoteChart/internal/recorder"
	"QuoteChart/internal/scheduler"
	"QuoteChart/internal/watchlist"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config validation: %v", err)
	}
	if _, err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("setup logger: %v", err)
	}
	log.Info("QuoteChart starting...")

	loc, _ := cfg.Location()
	window, _ := cfg.Window()
	metrics := monitoring.NewMetrics()

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init fetcher
	var fetcher collector.Fetcher
	switch cfg.DataSource.Provider {
	case config.ProviderMarketstack:
		fetcher = collector.NewMarketstackFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy, cfg.DataSource.RatePerSecond)
	case config.ProviderMock:
		fetcher = &collector.MockFetcher{}
	default:
		fetcher = collector.NewYahooFetcher(cfg.Proxy)
	}
	log.Infof("data source: %s", fetcher.Name())

	// Init cache
	var quoteCache cache.QuoteCache = cache.NewMemoryCache()
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warnf("connect redis failed, using in-memory cache: %v", err)
		} else {
			quoteCache = rc
			defer rc.Close()
			log.Infof("redis cache: %s", cfg.Redis.Addr)
		}
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Warnf("init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init collector
	col := collector.NewCollector(fetcher, cfg.DataSource.Symbols)
	col.Cache = quoteCache
	col.CacheTTL = cfg.Redis.TTL
	col.Engine = calculator.NewEngine(loc)
	col.HistoryMonths = cfg.DataSource.HistoryMonths
	col.Periods = collector.Periods{
		SMA: cfg.Indicators.SMAPeriod,
		EMA: cfg.Indicators.EMAPeriod,
		RSI: cfg.Indicators.RSIPeriod,
	}
	col.Metrics = metrics

	// Init watchlist
	wl, err := watchlist.NewManager(cfg.Watchlist.StateFile, cfg.DataSource.Symbols)
	if err != nil {
		log.Fatalf("init watchlist: %v", err)
	}

	// Init Telegram notifier
	var tn *notifier.TelegramNotifier
	var sn scheduler.Notifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		tn.Metrics = metrics
		sn = tn
	} else {
		log.Warn("telegram not configured, notifications disabled")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, wl, sn, rec)
	sched.DefaultWindow = window
	if err := sched.RegisterAll(cfg.Schedule.RefreshCron, cfg.Schedule.DigestCron); err != nil {
		log.Fatalf("register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("Telegram polling started")
	}

	// Start HTTP API
	if !log.IsLevelEnabled(log.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := api.NewServer(cfg.HTTP.Addr, col, wl, rec, metrics)
	srv.SetDefaultWindow(window)
	go func() {
		if err := srv.Start(); err != nil {
			log.Errorf("API server: %v", err)
			cancel()
		}
	}()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Info("RUN_ON_START enabled, executing refresh task now")
		go sched.RunRefreshNow()
	}

	log.Info("QuoteChart is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info("shutdown signal received, stopping...")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Errorf("stop API server: %v", err)
	}
	cancel()
	log.Info("QuoteChart stopped")
}
