package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/notionstudy21-cmd/AuctionHub/internal/auctionerrors"
	"github.com/notionstudy21-cmd/AuctionHub/internal/bus"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
	"github.com/notionstudy21-cmd/AuctionHub/internal/repository"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

// Engine owns every write to auction and bid records: bid admission,
// auction creation and cancellation, and the time-driven status refresh.
// All writes to one auction are serialized through the lock registry, which
// the scheduler shares, so a bid is never admitted against an auction that
// just completed and a completion never fires mid-commit.
type Engine struct {
	ledger  repository.Ledger
	catalog Catalog
	bus     bus.Publisher
	locks   *LockRegistry
	now     func() time.Time
}

type option func(*Engine)

// WithClock overrides the engine's wall clock. Tests use this to drive
// status transitions without sleeping.
func WithClock(now func() time.Time) option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates an Engine. The lock registry must be the same instance
// handed to the scheduler.
func NewEngine(ledger repository.Ledger, catalog Catalog, publisher bus.Publisher, locks *LockRegistry, opts ...option) *Engine {
	e := &Engine{
		ledger:  ledger,
		catalog: catalog,
		bus:     publisher,
		locks:   locks,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateAuctionParams carries the fields of an auction creation request.
type CreateAuctionParams struct {
	ProductID       string
	StartTime       time.Time
	EndTime         time.Time
	StartingBid     float64
	MinBidIncrement float64
	Featured        bool
}

// UpdateAuctionParams carries the optional fields of an auction update.
// Nil means "leave unchanged".
type UpdateAuctionParams struct {
	StartTime       *time.Time
	EndTime         *time.Time
	StartingBid     *float64
	MinBidIncrement *float64
	Featured        *bool
}

// CreateAuction validates the request, confirms product ownership with the
// catalog, and stores the auction. An auction whose window already opened
// starts active. Broadcasts newAuction to every connected observer.
func (e *Engine) CreateAuction(ctx context.Context, creatorID string, p CreateAuctionParams) (model.Auction, error) {
	if creatorID == "" || p.ProductID == "" {
		return model.Auction{}, fmt.Errorf("engine: %w - missing creator or product", auctionerrors.ErrInvalidAuction)
	}
	if p.StartTime.IsZero() || p.EndTime.IsZero() || !p.StartTime.Before(p.EndTime) {
		return model.Auction{}, fmt.Errorf("engine: %w - start time must precede end time", auctionerrors.ErrInvalidAuction)
	}
	if p.StartingBid < 0 {
		return model.Auction{}, fmt.Errorf("engine: %w - negative starting bid", auctionerrors.ErrInvalidAuction)
	}
	if p.MinBidIncrement == 0 {
		p.MinBidIncrement = 1
	}
	if p.MinBidIncrement < 0 {
		return model.Auction{}, fmt.Errorf("engine: %w - negative bid increment", auctionerrors.ErrInvalidAuction)
	}

	product, err := e.catalog.GetProduct(ctx, p.ProductID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: %w", err)
	}
	if product.Seller != creatorID {
		return model.Auction{}, fmt.Errorf("engine: %w - product belongs to another seller", auctionerrors.ErrNotCreator)
	}

	open, err := e.ledger.HasOpenAuctionForProduct(ctx, p.ProductID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: %w", err)
	}
	if open {
		return model.Auction{}, fmt.Errorf("engine: %w", auctionerrors.ErrDuplicateAuction)
	}

	now := e.now()
	auction := model.Auction{
		AuctionID:       utils.GenerateID(),
		ProductID:       p.ProductID,
		CreatedBy:       creatorID,
		StartTime:       p.StartTime,
		EndTime:         p.EndTime,
		StartingBid:     p.StartingBid,
		CurrentBid:      p.StartingBid,
		MinBidIncrement: p.MinBidIncrement,
		Status:          model.InitialStatus(p.StartTime, now),
		Featured:        p.Featured,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	stored, err := e.ledger.AddAuction(ctx, auction)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: failed to store auction: %w", err)
	}

	e.bus.Broadcast(bus.EventNewAuction, stored)
	return stored, nil
}

// PlaceBid validates and commits a single bid against the auction's current
// state. The whole read-validate-commit sequence runs under the auction's
// lock: of two racing bids the first writer wins and the second re-validates
// against the updated current bid.
func (e *Engine) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (model.Bid, model.Auction, error) {
	if auctionID == "" || bidderID == "" {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w - missing auction or bidder", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	unlock := e.locks.Lock(auctionID)
	defer unlock()

	auction, err := e.ledger.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w", err)
	}

	// Recompute the status fresh; a cached "active" must not admit a bid
	// past the end of the window.
	auction, _, err = e.refreshLocked(ctx, auction)
	if err != nil {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w", err)
	}

	if auction.Status != model.AuctionActive {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w (status: %s)", auctionerrors.ErrAuctionNotActive, auction.Status)
	}
	if auction.CreatedBy == bidderID {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w", auctionerrors.ErrSelfBid)
	}
	if amount <= auction.CurrentBid {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w - current bid is %.2f",
			auctionerrors.ErrBidTooLow, auction.CurrentBid)
	}
	if amount < auction.CurrentBid+auction.MinBidIncrement {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: %w - current bid is %.2f, minimum acceptable bid is %.2f",
			auctionerrors.ErrBidBelowIncrement, auction.CurrentBid, auction.CurrentBid+auction.MinBidIncrement)
	}

	bid := model.Bid{
		BidID:     utils.GenerateID(),
		AuctionID: auctionID,
		Bidder:    bidderID,
		Amount:    amount,
		Status:    model.BidActive,
		CreatedAt: e.now(),
	}

	updated := auction
	updated.CurrentBid = amount
	updated.CurrentLeader = bidderID
	updated.TotalBids++

	updated, bid, err = e.ledger.CommitBid(ctx, updated, auction.Version, bid)
	if err != nil {
		return model.Bid{}, model.Auction{}, fmt.Errorf("engine: failed to commit bid: %w", err)
	}

	// Publish after the commit, in commit order; delivery failures never
	// fail the bid.
	e.bus.Publish(auctionID, bus.EventBidPlaced, bid)
	e.bus.Publish(auctionID, bus.EventAuctionUpdated, updated)

	return bid, updated, nil
}

// UpdateAuction edits a pending auction's parameters. Only the creator may
// edit, and only before the window opens. Changing the starting bid resets
// the current bid.
func (e *Engine) UpdateAuction(ctx context.Context, creatorID, auctionID string, p UpdateAuctionParams) (model.Auction, error) {
	unlock := e.locks.Lock(auctionID)
	defer unlock()

	auction, err := e.ledger.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: %w", err)
	}
	auction, _, err = e.refreshLocked(ctx, auction)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: %w", err)
	}

	if auction.CreatedBy != creatorID {
		return model.Auction{}, fmt.Errorf("engine: %w", auctionerrors.ErrNotCreator)
	}
	if auction.Status != model.AuctionPending {
		return model.Auction{}, fmt.Errorf("engine: %w", auctionerrors.ErrAuctionStarted)
	}

	if p.StartTime != nil {
		auction.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		auction.EndTime = *p.EndTime
	}
	if p.StartingBid != nil {
		if *p.StartingBid < 0 {
			return model.Auction{}, fmt.Errorf("engine: %w - negative starting bid", auctionerrors.ErrInvalidAuction)
		}
		auction.StartingBid = *p.StartingBid
		auction.CurrentBid = *p.StartingBid
	}
	if p.MinBidIncrement != nil {
		if *p.MinBidIncrement <= 0 {
			return model.Auction{}, fmt.Errorf("engine: %w - non-positive bid increment", auctionerrors.ErrInvalidAuction)
		}
		auction.MinBidIncrement = *p.MinBidIncrement
	}
	if p.Featured != nil {
		auction.Featured = *p.Featured
	}
	if !auction.StartTime.Before(auction.EndTime) {
		return model.Auction{}, fmt.Errorf("engine: %w - start time must precede end time", auctionerrors.ErrInvalidAuction)
	}

	// A moved window may change the status immediately.
	statusChanged := auction.Transition(e.now())

	updated, err := e.ledger.UpdateAuction(ctx, auction, auction.Version)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: failed to update auction: %w", err)
	}

	e.bus.Publish(auctionID, bus.EventAuctionUpdated, updated)
	if statusChanged {
		// The sweep will never see this transition; it is already persisted.
		e.bus.Publish(auctionID, bus.EventAuctionStatusChanged, updated)
	}
	return updated, nil
}

// CancelAuction marks the auction cancelled. Rejected once completed, or
// while active with a leading bid. Cancelling an already-cancelled auction
// is a no-op. The record is never deleted.
func (e *Engine) CancelAuction(ctx context.Context, creatorID, auctionID string) (model.Auction, error) {
	unlock := e.locks.Lock(auctionID)
	defer unlock()

	auction, err := e.ledger.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: %w", err)
	}
	auction, _, err = e.refreshLocked(ctx, auction)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: %w", err)
	}

	if auction.CreatedBy != creatorID {
		return model.Auction{}, fmt.Errorf("engine: %w", auctionerrors.ErrNotCreator)
	}
	if auction.Status == model.AuctionCancelled {
		return auction, nil
	}
	if auction.Status == model.AuctionCompleted {
		return model.Auction{}, fmt.Errorf("engine: %w - auction already completed", auctionerrors.ErrCancelDenied)
	}
	if auction.Status == model.AuctionActive && auction.CurrentLeader != "" {
		return model.Auction{}, fmt.Errorf("engine: %w - a competing bid exists", auctionerrors.ErrCancelDenied)
	}

	auction.Status = model.AuctionCancelled
	updated, err := e.ledger.UpdateAuction(ctx, auction, auction.Version)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: failed to cancel auction: %w", err)
	}

	e.bus.Publish(auctionID, bus.EventAuctionStatusChanged, updated)
	return updated, nil
}

// Refresh recomputes the auction's status against the wall clock under the
// per-auction lock, persisting and publishing the change when there is one.
// The scheduler sweep and single-record read paths both come through here.
func (e *Engine) Refresh(ctx context.Context, auctionID string) (model.Auction, bool, error) {
	unlock := e.locks.Lock(auctionID)
	defer unlock()

	auction, err := e.ledger.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("engine: %w", err)
	}
	return e.refreshLocked(ctx, auction)
}

// refreshLocked applies the status transition to a record read under the
// auction's lock. A transition into completed settles the bids: the leading
// bid becomes won, every other open bid lost.
func (e *Engine) refreshLocked(ctx context.Context, auction model.Auction) (model.Auction, bool, error) {
	if !auction.Transition(e.now()) {
		return auction, false, nil
	}

	updated, err := e.ledger.UpdateAuction(ctx, auction, auction.Version)
	if err != nil {
		return model.Auction{}, false, fmt.Errorf("failed to persist status change: %w", err)
	}

	if updated.Status == model.AuctionCompleted {
		if err := e.ledger.SettleBids(ctx, updated.AuctionID, updated.CurrentLeader); err != nil {
			// The auction is closed either way; settlement retries on the
			// next sweep would need the status change undone, so log loudly.
			utils.Error("failed to settle bids for completed auction", map[string]any{
				"auction_id": updated.AuctionID,
				"error":      err.Error(),
			})
		}
	}

	e.bus.Publish(updated.AuctionID, bus.EventAuctionStatusChanged, updated)
	return updated, true, nil
}

// GetAuction returns a display snapshot with a wall-clock-fresh status,
// bumping the view counter.
func (e *Engine) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	auction, err := e.ledger.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("engine: %w", err)
	}

	if auction.ComputeStatus(e.now()) != auction.Status {
		auction, _, err = e.Refresh(ctx, auctionID)
		if err != nil {
			return model.Auction{}, err
		}
	}

	if err := e.ledger.IncrementViews(ctx, auctionID); err != nil {
		utils.Warn("failed to bump auction views", map[string]any{"auction_id": auctionID, "error": err.Error()})
	} else {
		auction.Views++
	}
	return auction, nil
}

// ListAuctions returns a page of auctions with display-fresh statuses.
// Statuses are recomputed on the returned copies only; persisting the
// transitions is the scheduler's job.
func (e *Engine) ListAuctions(ctx context.Context, filter repository.AuctionFilter) ([]model.Auction, int, error) {
	auctions, total, err := e.ledger.ListAuctions(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("engine: %w", err)
	}
	now := e.now()
	for i := range auctions {
		auctions[i].Transition(now)
	}
	return auctions, total, nil
}

// ActiveAuctions returns currently active auctions, soonest ending first.
func (e *Engine) ActiveAuctions(ctx context.Context) ([]model.Auction, error) {
	auctions, err := e.ledger.ActiveAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	now := e.now()
	fresh := auctions[:0]
	for _, a := range auctions {
		if a.ComputeStatus(now) == model.AuctionActive {
			fresh = append(fresh, a)
		}
	}
	return fresh, nil
}

// AuctionsByCreator returns the auctions a user created, newest first.
func (e *Engine) AuctionsByCreator(ctx context.Context, creatorID string) ([]model.Auction, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("engine: %w - empty creator ID", auctionerrors.ErrInvalidAuction)
	}
	auctions, err := e.ledger.AuctionsByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	now := e.now()
	for i := range auctions {
		auctions[i].Transition(now)
	}
	return auctions, nil
}

// WonAuctions returns completed auctions the user won.
func (e *Engine) WonAuctions(ctx context.Context, bidderID string) ([]model.Auction, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("engine: %w - empty bidder ID", auctionerrors.ErrInvalidBid)
	}
	auctions, err := e.ledger.WonAuctions(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return auctions, nil
}

// BidsForAuction returns all bids on an auction, highest first.
func (e *Engine) BidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error) {
	if auctionID == "" {
		return nil, fmt.Errorf("engine: %w - empty auction ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := e.ledger.BidsByAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			return []model.Bid{}, nil
		}
		return nil, fmt.Errorf("engine: %w", err)
	}
	return bids, nil
}

// BidsByBidder returns every bid a user placed, newest first.
func (e *Engine) BidsByBidder(ctx context.Context, bidderID string) ([]model.Bid, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("engine: %w - empty bidder ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := e.ledger.BidsByBidder(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return bids, nil
}

// ActiveBidsByBidder returns the bids where the user currently leads.
func (e *Engine) ActiveBidsByBidder(ctx context.Context, bidderID string) ([]model.Bid, error) {
	if bidderID == "" {
		return nil, fmt.Errorf("engine: %w - empty bidder ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := e.ledger.ActiveBidsByBidder(ctx, bidderID)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	return bids, nil
}
