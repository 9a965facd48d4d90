package helpers

import (
	"time"

	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
)

// Request/Response DTOs
type CreateAuctionRequest struct {
	ProductID       string    `json:"product_id" binding:"required"`
	StartTime       time.Time `json:"start_time" binding:"required"`
	EndTime         time.Time `json:"end_time" binding:"required"`
	StartingBid     float64   `json:"starting_bid" binding:"gte=0"`
	MinBidIncrement float64   `json:"min_bid_increment" binding:"gte=0"`
	Featured        bool      `json:"featured"`
}

// UpdateAuctionRequest carries the editable auction fields; absent fields
// stay unchanged.
type UpdateAuctionRequest struct {
	StartTime       *time.Time `json:"start_time"`
	EndTime         *time.Time `json:"end_time"`
	StartingBid     *float64   `json:"starting_bid" binding:"omitempty,gte=0"`
	MinBidIncrement *float64   `json:"min_bid_increment" binding:"omitempty,gt=0"`
	Featured        *bool      `json:"featured"`
}

type PlaceBidRequest struct {
	AuctionID string  `json:"auction_id" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
}

type AuctionResponse struct {
	AuctionID        string  `json:"auction_id"`
	ProductID        string  `json:"product_id"`
	CreatedBy        string  `json:"created_by"`
	StartTime        string  `json:"start_time"`
	EndTime          string  `json:"end_time"`
	StartingBid      float64 `json:"starting_bid"`
	CurrentBid       float64 `json:"current_bid"`
	CurrentLeader    string  `json:"current_leader,omitempty"`
	MinBidIncrement  float64 `json:"min_bid_increment"`
	Status           string  `json:"status"`
	TotalBids        int     `json:"total_bids"`
	Featured         bool    `json:"featured"`
	Views            int     `json:"views"`
	TimeRemainingSec int     `json:"time_remaining_seconds"`
	Progress         int     `json:"progress"`
	CreatedAt        string  `json:"created_at"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	Bidder    string  `json:"bidder"`
	Amount    float64 `json:"amount"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

type AuctionListResponse struct {
	Auctions []AuctionResponse `json:"auctions"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// NewAuctionResponse flattens an auction record for the wire, adding the
// countdown fields clients render.
func NewAuctionResponse(a model.Auction) AuctionResponse {
	now := time.Now().UTC()
	return AuctionResponse{
		AuctionID:        a.AuctionID,
		ProductID:        a.ProductID,
		CreatedBy:        a.CreatedBy,
		StartTime:        a.StartTime.UTC().Format(time.RFC3339),
		EndTime:          a.EndTime.UTC().Format(time.RFC3339),
		StartingBid:      a.StartingBid,
		CurrentBid:       a.CurrentBid,
		CurrentLeader:    a.CurrentLeader,
		MinBidIncrement:  a.MinBidIncrement,
		Status:           string(a.Status),
		TotalBids:        a.TotalBids,
		Featured:         a.Featured,
		Views:            a.Views,
		TimeRemainingSec: int(a.TimeRemaining(now).Seconds()),
		Progress:         a.Progress(now),
		CreatedAt:        a.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewAuctionListResponse converts a page of auctions.
func NewAuctionListResponse(auctions []model.Auction, total, page, limit int) AuctionListResponse {
	out := make([]AuctionResponse, 0, len(auctions))
	for _, a := range auctions {
		out = append(out, NewAuctionResponse(a))
	}
	return AuctionListResponse{Auctions: out, Total: total, Page: page, Limit: limit}
}

// NewBidResponse flattens a bid record for the wire.
func NewBidResponse(b model.Bid) BidResponse {
	return BidResponse{
		BidID:     b.BidID,
		AuctionID: b.AuctionID,
		Bidder:    b.Bidder,
		Amount:    b.Amount,
		Status:    string(b.Status),
		CreatedAt: b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// NewBidListResponse converts a list of bids.
func NewBidListResponse(bids []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, NewBidResponse(b))
	}
	return out
}
