// Package scheduler drives time-based auction status transitions. A periodic
// sweep walks every non-terminal auction and asks the engine to refresh it,
// so pending auctions open and active auctions close within one interval of
// their boundary even when nobody is reading them.
package scheduler

import (
	"context"
	"time"

	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
	"github.com/notionstudy21-cmd/AuctionHub/internal/repository"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

// Refresher recomputes one auction's status, persisting and publishing the
// change. Implemented by the engine.
type Refresher interface {
	Refresh(ctx context.Context, auctionID string) (model.Auction, bool, error)
}

// Scheduler owns the sweep loop.
type Scheduler struct {
	ledger   repository.Ledger
	engine   Refresher
	interval time.Duration
}

// NewScheduler creates a Scheduler sweeping at the given interval. A zero or
// negative interval falls back to one minute.
func NewScheduler(ledger repository.Ledger, engine Refresher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		ledger:   ledger,
		engine:   engine,
		interval: interval,
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled. The startup sweep repairs statuses that went stale while the
// process was down.
func (s *Scheduler) Run(ctx context.Context) {
	utils.Info("auction status scheduler started", map[string]any{"interval": s.interval.String()})

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.Info("auction status scheduler stopped", nil)
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep refreshes every non-terminal auction. A failure on one record is
// logged and the sweep moves on; the record is retried on the next pass.
func (s *Scheduler) Sweep(ctx context.Context) {
	candidates, err := s.ledger.SweepCandidates(ctx)
	if err != nil {
		utils.Error("failed to list auctions for status sweep", map[string]any{"error": err.Error()})
		return
	}

	transitions := 0
	for _, auction := range candidates {
		if ctx.Err() != nil {
			return
		}
		_, changed, err := s.engine.Refresh(ctx, auction.AuctionID)
		if err != nil {
			utils.Error("failed to refresh auction status", map[string]any{
				"auction_id": auction.AuctionID,
				"error":      err.Error(),
			})
			continue
		}
		if changed {
			transitions++
		}
	}

	if transitions > 0 {
		utils.Info("auction status sweep applied transitions", map[string]any{
			"swept":       len(candidates),
			"transitions": transitions,
		})
	}
}
