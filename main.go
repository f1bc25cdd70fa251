package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"bingxgrid/config"
	"bingxgrid/console"
	"bingxgrid/exchange"
	"bingxgrid/health"
	"bingxgrid/indicator"
	"bingxgrid/ledger"
	"bingxgrid/logger"
	"bingxgrid/persistence"
	"bingxgrid/store"
	"bingxgrid/tasks"
	"bingxgrid/tradingloop"
	"bingxgrid/wsfeed"
)

func main() {
	_ = godotenv.Load()

	logger.Init(nil)
	logger.Info("╔════════════════════════════════════════════════════════════╗")
	logger.Info("║              BingX Spot Grid Trading Engine                 ║")
	logger.Info("╚════════════════════════════════════════════════════════════╝")

	config.Init()
	cfg := config.Get()
	logger.Info("configuration loaded")

	if cfg.DBType != "postgres" {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				logger.Errorf("failed to create data directory: %v", err)
			}
		}
	}

	db, err := persistence.Open(cfg)
	if err != nil {
		logger.Fatalf("failed to open database (%s): %v", cfg.DBType, err)
	}
	mirror := persistence.NewMirror(db)
	logger.Infof("database ready (%s)", cfg.DBType)

	client := exchange.NewClient(cfg.BaseURL, cfg.APIKey, cfg.SecretKey)
	prices := store.NewPriceStore()
	acct := store.NewAccountStore()
	led := ledger.New()
	taskRegistry := tasks.New()
	indEngine := indicator.NewEngine(client, prices, acct, led)
	loopEngine := tradingloop.NewEngine(client, prices, acct, led, mirror, cfg, indEngine.IsReady)

	rootCtx, cancelRoot := context.WithCancel(context.Background())
	defer cancelRoot()

	restored, err := mirror.LoadAll()
	if err != nil {
		logger.Fatalf("failed to restore ledger mirror: %v", err)
	}
	for i, r := range restored {
		led.AddSymbol(r.Name, r.StepSize)
		led.SetLotGrid(r.Name, r.Lot, r.GridSize)
		led.SetState(r.Name, ledger.State(r.State))
		for _, o := range r.Orders {
			led.UpdateOrder(r.Name, o)
		}
		led.UpdateProfit(r.Name, r.Profit)
		logger.Infof("restored %s: state=%s orders=%d profit=%.8f", r.Name, r.State, len(r.Orders), r.Profit)

		if ledger.State(r.State) != ledger.StateStop {
			bootstrapSymbol(rootCtx, taskRegistry, r.Name, i, cfg, prices, indEngine, loopEngine)
		}
	}

	bootstrap := func(symbol string) {
		idx := len(led.Symbols())
		bootstrapSymbol(rootCtx, taskRegistry, symbol, idx, cfg, prices, indEngine, loopEngine)
	}

	disp := console.NewDispatcher(led, prices, acct, client, mirror, taskRegistry, indEngine, loopEngine, cfg, bootstrap)

	go wsfeed.RunListenKeyLifecycle(rootCtx, client, acct)
	go wsfeed.RunAccountStream(rootCtx, cfg.URLWS, acct)

	healthServer := health.NewServer(cfg.HealthAddr, led, taskRegistry)
	go func() {
		if err := healthServer.Run(); err != nil {
			logger.Errorf("health server stopped: %v", err)
		}
	}()

	if cfg.TelegramToken != "" {
		tg, err := console.NewTelegramConsole(cfg.TelegramToken, cfg.AdminID, disp)
		if err != nil {
			logger.Errorf("telegram console disabled: %v", err)
		} else {
			go tg.Run(rootCtx)
			logger.Info("operator console ready (telegram)")
		}
	} else {
		logger.Warn("TELEGRAM_TOKEN not set, operator console disabled")
	}

	logger.Info("engine started, waiting for operator commands")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received, stopping all symbol tasks...")
	cancelRoot()
	taskRegistry.StopAll()
	logger.Info("shut down cleanly")
}

// bootstrapSymbol launches the three per-symbol tasks (price stream,
// indicator engine, trading loop) staggered by index × BootstrapStaggerSeconds
// to avoid exchange rate-limiting at start-up (SPEC_FULL.md §4.4).
func bootstrapSymbol(
	parent context.Context,
	tr *tasks.Registry,
	symbol string,
	index int,
	cfg *config.Config,
	prices *store.PriceStore,
	indEngine *indicator.Engine,
	loopEngine *tradingloop.Engine,
) {
	stagger := time.Duration(index*cfg.BootstrapStaggerSeconds) * time.Second

	_, spawn := tr.Start(parent, symbol)
	spawn(func(ctx context.Context) { wsfeed.RunPriceStream(ctx, cfg.URLWS, symbol, stagger, prices) })
	spawn(func(ctx context.Context) { indEngine.Run(ctx, symbol) })
	spawn(func(ctx context.Context) { loopEngine.Run(ctx, symbol) })
}
