package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/notionstudy21-cmd/AuctionHub/internal/auctionerrors"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
)

// MemoryLedger is a concurrency-safe in-memory implementation of Ledger.
// The default backend; also what the test suites run against.
type MemoryLedger struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction      // key: auctionID
	bids     map[string][]model.Bid        // key: auctionID -> bids in placement order
}

// NewMemoryLedger creates a new in-memory ledger instance
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		auctions: make(map[string]model.Auction),
		bids:     make(map[string][]model.Bid),
	}
}

func (r *MemoryLedger) AddAuction(ctx context.Context, auction model.Auction) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.AuctionID]; ok {
		return model.Auction{}, fmt.Errorf("add auction %s: already exists", auction.AuctionID)
	}

	auction.Version = 1
	r.auctions[auction.AuctionID] = auction
	return auction, nil
}

func (r *MemoryLedger) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

func (r *MemoryLedger) UpdateAuction(ctx context.Context, auction model.Auction, expectedVersion int) (model.Auction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.updateAuctionLocked(auction, expectedVersion)
}

func (r *MemoryLedger) updateAuctionLocked(auction model.Auction, expectedVersion int) (model.Auction, error) {
	stored, ok := r.auctions[auction.AuctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auction.AuctionID, auctionerrors.ErrAuctionNotFound)
	}
	if stored.Version != expectedVersion {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auction.AuctionID, auctionerrors.ErrVersionConflict)
	}

	auction.Version = stored.Version + 1
	auction.Views = stored.Views
	auction.UpdatedAt = time.Now().UTC()
	r.auctions[auction.AuctionID] = auction
	return auction, nil
}

func (r *MemoryLedger) CommitBid(ctx context.Context, auction model.Auction, expectedVersion int, bid model.Bid) (model.Auction, model.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	updated, err := r.updateAuctionLocked(auction, expectedVersion)
	if err != nil {
		return model.Auction{}, model.Bid{}, fmt.Errorf("commit bid for auction %s: %w", auction.AuctionID, err)
	}

	bids := r.bids[bid.AuctionID]
	for i := range bids {
		if bids[i].Status == model.BidActive {
			bids[i].Status = model.BidOutbid
		}
	}
	bid.Status = model.BidActive
	r.bids[bid.AuctionID] = append(bids, bid)

	return updated, bid, nil
}

func (r *MemoryLedger) SettleBids(ctx context.Context, auctionID, winner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[auctionID]
	for i := range bids {
		switch {
		case bids[i].Status == model.BidWon || bids[i].Status == model.BidLost || bids[i].Status == model.BidCancelled:
			// already terminal
		case bids[i].Status == model.BidActive && winner != "" && bids[i].Bidder == winner:
			bids[i].Status = model.BidWon
		default:
			bids[i].Status = model.BidLost
		}
	}
	return nil
}

func (r *MemoryLedger) IncrementViews(ctx context.Context, auctionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return fmt.Errorf("increment views for auction %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
	}
	auction.Views++
	r.auctions[auctionID] = auction
	return nil
}

func (r *MemoryLedger) ListAuctions(ctx context.Context, filter AuctionFilter) ([]model.Auction, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]model.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.Creator != "" && a.CreatedBy != filter.Creator {
			continue
		}
		matched = append(matched, a)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= total {
		return []model.Auction{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *MemoryLedger) ActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	active := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if a.Status == model.AuctionActive {
			active = append(active, a)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].EndTime.Before(active[j].EndTime)
	})
	return active, nil
}

func (r *MemoryLedger) AuctionsByCreator(ctx context.Context, creator string) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if a.CreatedBy == creator {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryLedger) WonAuctions(ctx context.Context, bidder string) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if a.Status == model.AuctionCompleted && a.CurrentLeader == bidder {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EndTime.After(out[j].EndTime)
	})
	return out, nil
}

func (r *MemoryLedger) HasOpenAuctionForProduct(ctx context.Context, productID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.auctions {
		if a.ProductID == productID && !a.Status.Terminal() {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryLedger) SweepCandidates(ctx context.Context) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Auction, 0)
	for _, a := range r.auctions {
		if !a.Status.Terminal() {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *MemoryLedger) BidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bids, ok := r.bids[auctionID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for auction %s: %w", auctionID, auctionerrors.ErrNoBids)
	}

	out := append([]model.Bid(nil), bids...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Amount > out[j].Amount
	})
	return out, nil
}

func (r *MemoryLedger) BidsByBidder(ctx context.Context, bidder string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Bid, 0)
	for _, bids := range r.bids {
		for _, b := range bids {
			if b.Bidder == bidder {
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryLedger) ActiveBidsByBidder(ctx context.Context, bidder string) ([]model.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Bid, 0)
	for _, bids := range r.bids {
		for _, b := range bids {
			if b.Bidder == bidder && b.Status == model.BidActive {
				out = append(out, b)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
