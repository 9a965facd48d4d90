package models

import "time"

// AuctionStatus tracks where an auction sits in its lifecycle.
type AuctionStatus string

const (
	AuctionPending   AuctionStatus = "pending"
	AuctionActive    AuctionStatus = "active"
	AuctionCompleted AuctionStatus = "completed"
	AuctionCancelled AuctionStatus = "cancelled"
)

// Terminal reports whether no further transition can leave the status.
func (s AuctionStatus) Terminal() bool {
	return s == AuctionCompleted || s == AuctionCancelled
}

// BidStatus tracks the fate of a single bid.
type BidStatus string

const (
	BidActive    BidStatus = "active"
	BidOutbid    BidStatus = "outbid"
	BidWon       BidStatus = "won"
	BidLost      BidStatus = "lost"
	BidCancelled BidStatus = "cancelled"
)

// User represents a participant in the marketplace. Identity is supplied
// by the authentication layer; the core trusts the id as given.
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Product is the catalog record an auction sells. The core only reads it
// to confirm ownership; product content is owned by the catalog.
type Product struct {
	ProductID   string `json:"product_id"`
	Seller      string `json:"seller"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Auction is the authoritative record of one timed auction.
type Auction struct {
	AuctionID       string        `json:"auction_id"`
	ProductID       string        `json:"product_id"`
	CreatedBy       string        `json:"created_by"`
	StartTime       time.Time     `json:"start_time"`
	EndTime         time.Time     `json:"end_time"`
	StartingBid     float64       `json:"starting_bid"`
	CurrentBid      float64       `json:"current_bid"`
	CurrentLeader   string        `json:"current_leader,omitempty"`
	MinBidIncrement float64       `json:"min_bid_increment"`
	Status          AuctionStatus `json:"status"`
	TotalBids       int           `json:"total_bids"`
	Featured        bool          `json:"featured"`
	Views           int           `json:"views"`
	Version         int           `json:"-"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Bid represents a user's bid on an auction.
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	Bidder    string    `json:"bidder"`
	Amount    float64   `json:"amount"`
	Status    BidStatus `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// TimeRemaining returns how long until the auction closes, zero once past end.
func (a *Auction) TimeRemaining(now time.Time) time.Duration {
	if now.After(a.EndTime) {
		return 0
	}
	return a.EndTime.Sub(now)
}

// Progress returns how far through its window the auction is, 0-100.
func (a *Auction) Progress(now time.Time) int {
	if now.Before(a.StartTime) {
		return 0
	}
	if now.After(a.EndTime) {
		return 100
	}
	total := a.EndTime.Sub(a.StartTime)
	if total <= 0 {
		return 100
	}
	elapsed := now.Sub(a.StartTime)
	pct := int(elapsed * 100 / total)
	if pct > 100 {
		pct = 100
	}
	return pct
}
