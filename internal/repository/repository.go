package repository

import (
	"context"

	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// AuctionFilter narrows ListAuctions results. Zero values mean "no filter";
// Page is 1-based and Limit defaults to 10 when unset.
type AuctionFilter struct {
	Status  model.AuctionStatus
	Creator string
	Page    int
	Limit   int
}

// Ledger is the authoritative store of auction and bid records. It is the
// only component allowed to write either entity; the bid engine and the
// scheduler go through it exclusively. Auction writes are conditional on the
// record version so concurrent writers cannot silently clobber each other.
type Ledger interface {
	// AddAuction stores a new auction record.
	AddAuction(ctx context.Context, auction model.Auction) (model.Auction, error)

	// GetAuction returns the auction or ErrAuctionNotFound.
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)

	// UpdateAuction replaces the auction record iff the stored version still
	// equals expectedVersion, bumping the version on success. Returns
	// ErrVersionConflict when a concurrent writer got there first.
	UpdateAuction(ctx context.Context, auction model.Auction, expectedVersion int) (model.Auction, error)

	// CommitBid atomically records an accepted bid: inserts it with status
	// active, flips every other active bid on the auction to outbid, and
	// applies the updated auction snapshot under the same version check as
	// UpdateAuction. No partial commit survives an error.
	CommitBid(ctx context.Context, auction model.Auction, expectedVersion int, bid model.Bid) (model.Auction, model.Bid, error)

	// SettleBids finalizes bid statuses when an auction completes: the
	// winning bidder's active bid becomes won, every other non-terminal bid
	// becomes lost. An empty winner marks all non-terminal bids lost.
	SettleBids(ctx context.Context, auctionID, winner string) error

	// IncrementViews bumps the auction's view counter. Best-effort display
	// state, not part of the bidding write set.
	IncrementViews(ctx context.Context, auctionID string) error

	// ListAuctions returns a page of auctions (newest first) matching the
	// filter plus the total match count.
	ListAuctions(ctx context.Context, filter AuctionFilter) ([]model.Auction, int, error)

	// ActiveAuctions returns auctions with status active, soonest ending first.
	ActiveAuctions(ctx context.Context) ([]model.Auction, error)

	// AuctionsByCreator returns auctions created by the given user, newest first.
	AuctionsByCreator(ctx context.Context, creator string) ([]model.Auction, error)

	// WonAuctions returns completed auctions where the given user leads.
	WonAuctions(ctx context.Context, bidder string) ([]model.Auction, error)

	// HasOpenAuctionForProduct reports whether the product already has a
	// pending or active auction.
	HasOpenAuctionForProduct(ctx context.Context, productID string) (bool, error)

	// SweepCandidates returns every auction with non-terminal status.
	SweepCandidates(ctx context.Context) ([]model.Auction, error)

	// BidsByAuction returns all bids for an auction, highest amount first.
	BidsByAuction(ctx context.Context, auctionID string) ([]model.Bid, error)

	// BidsByBidder returns all bids placed by a user, newest first.
	BidsByBidder(ctx context.Context, bidder string) ([]model.Bid, error)

	// ActiveBidsByBidder returns the user's currently leading bids.
	ActiveBidsByBidder(ctx context.Context, bidder string) ([]model.Bid, error)
}
