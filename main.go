package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/notionstudy21-cmd/AuctionHub/internal/bus"
	"github.com/notionstudy21-cmd/AuctionHub/internal/config"
	"github.com/notionstudy21-cmd/AuctionHub/internal/engine"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
	"github.com/notionstudy21-cmd/AuctionHub/internal/repository"
	"github.com/notionstudy21-cmd/AuctionHub/internal/scheduler"
	"github.com/notionstudy21-cmd/AuctionHub/internal/server"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	utils.SetLogLevel(cfg.LogLevel)

	ledger, closeLedger, err := newLedger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open ledger: %v\n", err)
		os.Exit(1)
	}

	catalog := engine.NewMemoryCatalog()
	prepopulateProducts(catalog)

	eventBus := bus.NewBus(256)
	auctionEngine := engine.NewEngine(ledger, catalog, eventBus, engine.NewLockRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stop := make(chan os.Signal, 2)
		signal.Notify(stop, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
		sig := <-stop
		utils.Info("received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()
	}()

	sweeper := scheduler.NewScheduler(ledger, auctionEngine, cfg.SweepInterval)
	go sweeper.Run(ctx)

	srv := http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      server.SetupRouter(auctionEngine, eventBus),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		utils.Info("auction server started", map[string]any{"address": cfg.ServerAddress, "storage": cfg.Storage})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Error("http server error", map[string]any{"error": err.Error()})
			cancel()
		}
	}()

	<-ctx.Done()

	timeout, tcancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer tcancel()
	utils.Info("shutting down http server", nil)
	if err := srv.Shutdown(timeout); err != nil {
		utils.Error("http server shutdown error", map[string]any{"error": err.Error()})
	}

	if err := closeLedger(); err != nil {
		utils.Error("ledger closing error", map[string]any{"error": err.Error()})
	}
	utils.Info("exiting", nil)
}

// newLedger picks the storage backend from config.
func newLedger(cfg *config.Config) (repository.Ledger, func() error, error) {
	switch cfg.Storage {
	case "postgres":
		ledger, err := repository.NewPostgresLedger(nil, &cfg.PostgresConfig)
		if err != nil {
			return nil, nil, err
		}
		return ledger, ledger.Close, nil
	default:
		return repository.NewMemoryLedger(), func() error { return nil }, nil
	}
}

// prepopulateProducts seeds the catalog with sample sellable products until
// a real catalog service is attached.
func prepopulateProducts(catalog *engine.MemoryCatalog) {
	gofakeit.Seed(0)

	for i := 1; i <= 5; i++ {
		catalog.AddProduct(model.Product{
			ProductID:   fmt.Sprintf("product%d", i),
			Seller:      fmt.Sprintf("seller%d", (i%2)+1),
			Name:        gofakeit.BuzzWord(),
			Description: gofakeit.Blurb(),
		})
	}
}
