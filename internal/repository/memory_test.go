package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/notionstudy21-cmd/AuctionHub/internal/auctionerrors"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
)

func newTestAuction(id, creator string) model.Auction {
	now := time.Now().UTC()
	return model.Auction{
		AuctionID:       id,
		ProductID:       "product-" + id,
		CreatedBy:       creator,
		StartTime:       now.Add(-time.Hour),
		EndTime:         now.Add(time.Hour),
		StartingBid:     100,
		CurrentBid:      100,
		MinBidIncrement: 5,
		Status:          model.AuctionActive,
		CreatedAt:       now,
	}
}

func TestMemoryLedger_AddAndGet(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	stored, err := ledger.AddAuction(ctx, newTestAuction("a1", "seller"))
	require.NoError(t, err)
	require.Equal(t, 1, stored.Version)

	got, err := ledger.GetAuction(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, stored, got)

	_, err = ledger.GetAuction(ctx, "missing")
	require.True(t, errors.Is(err, auctionerrors.ErrAuctionNotFound))

	_, err = ledger.AddAuction(ctx, newTestAuction("a1", "seller"))
	require.Error(t, err, "duplicate id must be rejected")
}

func TestMemoryLedger_UpdateAuction_VersionCheck(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	stored, err := ledger.AddAuction(ctx, newTestAuction("a1", "seller"))
	require.NoError(t, err)

	stored.CurrentBid = 110
	updated, err := ledger.UpdateAuction(ctx, stored, stored.Version)
	require.NoError(t, err)
	require.Equal(t, 2, updated.Version)
	require.Equal(t, 110.0, updated.CurrentBid)

	// Stale version loses.
	_, err = ledger.UpdateAuction(ctx, stored, 1)
	require.True(t, errors.Is(err, auctionerrors.ErrVersionConflict))
}

func TestMemoryLedger_CommitBid_FlipsPreviousLeader(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()
	now := time.Now().UTC()

	auction, err := ledger.AddAuction(ctx, newTestAuction("a1", "seller"))
	require.NoError(t, err)

	auction.CurrentBid = 110
	auction.CurrentLeader = "alice"
	auction.TotalBids = 1
	auction, first, err := ledger.CommitBid(ctx, auction, auction.Version, model.Bid{
		BidID: "b1", AuctionID: "a1", Bidder: "alice", Amount: 110, CreatedAt: now,
	})
	require.NoError(t, err)
	require.Equal(t, model.BidActive, first.Status)

	auction.CurrentBid = 120
	auction.CurrentLeader = "bob"
	auction.TotalBids = 2
	_, second, err := ledger.CommitBid(ctx, auction, auction.Version, model.Bid{
		BidID: "b2", AuctionID: "a1", Bidder: "bob", Amount: 120, CreatedAt: now,
	})
	require.NoError(t, err)
	require.Equal(t, model.BidActive, second.Status)

	bids, err := ledger.BidsByAuction(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, bids, 2)

	// BidsByAuction sorts by amount desc; exactly one bid stays active.
	require.Equal(t, "b2", bids[0].BidID)
	require.Equal(t, model.BidActive, bids[0].Status)
	require.Equal(t, model.BidOutbid, bids[1].Status)
}

func TestMemoryLedger_CommitBid_StaleVersionRejected(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	auction, err := ledger.AddAuction(ctx, newTestAuction("a1", "seller"))
	require.NoError(t, err)

	snapshot := auction
	snapshot.CurrentBid = 110
	snapshot.CurrentLeader = "alice"
	_, _, err = ledger.CommitBid(ctx, snapshot, snapshot.Version, model.Bid{BidID: "b1", AuctionID: "a1", Bidder: "alice", Amount: 110})
	require.NoError(t, err)

	// A second commit against the pre-commit snapshot must fail and leave
	// no partial state behind.
	stale := auction
	stale.CurrentBid = 105
	stale.CurrentLeader = "bob"
	_, _, err = ledger.CommitBid(ctx, stale, auction.Version, model.Bid{BidID: "b2", AuctionID: "a1", Bidder: "bob", Amount: 105})
	require.True(t, errors.Is(err, auctionerrors.ErrVersionConflict))

	bids, err := ledger.BidsByAuction(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, bids, 1)
	require.Equal(t, "b1", bids[0].BidID)
}

func TestMemoryLedger_SettleBids(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	auction, err := ledger.AddAuction(ctx, newTestAuction("a1", "seller"))
	require.NoError(t, err)

	auction.CurrentBid = 110
	auction.CurrentLeader = "alice"
	auction, _, err = ledger.CommitBid(ctx, auction, auction.Version, model.Bid{BidID: "b1", AuctionID: "a1", Bidder: "alice", Amount: 110})
	require.NoError(t, err)

	auction.CurrentBid = 120
	auction.CurrentLeader = "bob"
	_, _, err = ledger.CommitBid(ctx, auction, auction.Version, model.Bid{BidID: "b2", AuctionID: "a1", Bidder: "bob", Amount: 120})
	require.NoError(t, err)

	require.NoError(t, ledger.SettleBids(ctx, "a1", "bob"))

	bids, err := ledger.BidsByAuction(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, model.BidWon, bids[0].Status)
	require.Equal(t, model.BidLost, bids[1].Status)
}

func TestMemoryLedger_QueriesAndFilters(t *testing.T) {
	ledger := NewMemoryLedger()
	ctx := context.Background()

	a1 := newTestAuction("a1", "seller1")
	a2 := newTestAuction("a2", "seller2")
	a2.Status = model.AuctionCompleted
	a2.CurrentLeader = "alice"
	a3 := newTestAuction("a3", "seller1")
	a3.Status = model.AuctionCancelled

	for _, a := range []model.Auction{a1, a2, a3} {
		_, err := ledger.AddAuction(ctx, a)
		require.NoError(t, err)
	}

	all, total, err := ledger.ListAuctions(ctx, AuctionFilter{})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, all, 3)

	bySeller, total, err := ledger.ListAuctions(ctx, AuctionFilter{Creator: "seller1"})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, bySeller, 2)

	active, err := ledger.ActiveAuctions(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, "a1", active[0].AuctionID)

	won, err := ledger.WonAuctions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, won, 1)
	require.Equal(t, "a2", won[0].AuctionID)

	open, err := ledger.HasOpenAuctionForProduct(ctx, "product-a1")
	require.NoError(t, err)
	require.True(t, open)

	open, err = ledger.HasOpenAuctionForProduct(ctx, "product-a3")
	require.NoError(t, err)
	require.False(t, open, "cancelled auction does not block a new one")

	candidates, err := ledger.SweepCandidates(ctx)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	require.Equal(t, "a1", candidates[0].AuctionID)
}
