package auctionerrors

import "errors"

// Not-found errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrProductNotFound = errors.New("product not found")
	ErrNoBids          = errors.New("no bids found for auction")
)

// Validation errors: malformed input, never retried.
var (
	ErrInvalidAuction = errors.New("invalid auction")
	ErrInvalidBid     = errors.New("invalid bid")
)

// State conflicts: the request is well-formed but the auction's current
// state rejects it. Messages carry the current bid and increment so the
// caller can resubmit a corrected amount.
var (
	ErrAuctionNotActive  = errors.New("auction is not active")
	ErrSelfBid           = errors.New("cannot bid on your own auction")
	ErrBidTooLow         = errors.New("bid must be higher than current bid")
	ErrBidBelowIncrement = errors.New("bid does not meet the minimum increment")
	ErrAuctionStarted    = errors.New("auction has already started or ended")
	ErrCancelDenied      = errors.New("auction can no longer be cancelled")
	ErrDuplicateAuction  = errors.New("product already has a pending or active auction")
	ErrNotCreator        = errors.New("only the auction creator may do this")
)

// ErrVersionConflict means a concurrent writer got there first. Safe to
// retry immediately with fresh auction state.
var ErrVersionConflict = errors.New("auction changed concurrently, resubmit")
