package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notionstudy21-cmd/AuctionHub/services/auction/helpers"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, auction, err := h.service.PlaceBid(c.Request.Context(), req.AuctionID, userID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": req.AuctionID,
			"user_id":    userID,
			"amount":     req.Amount,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewBidResponse(bid), "bid placed successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", map[string]any{
		"bid_id":      bid.BidID,
		"auction_id":  bid.AuctionID,
		"user_id":     userID,
		"amount":      bid.Amount,
		"current_bid": auction.CurrentBid,
	})
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *AuctionHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	// The service returns an empty slice for an auction without bids; an
	// error here is a real failure.
	bids, err := h.service.BidsForAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByAuctionHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidListResponse(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(bids),
	})
}

// MyBidsHandler handles GET /bids/user/me
func (h *AuctionHandler) MyBidsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bids, err := h.service.BidsByBidder(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MyBidsHandler: error retrieving bids", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidListResponse(bids), "bids retrieved successfully")
}

// MyActiveBidsHandler handles GET /bids/active
func (h *AuctionHandler) MyActiveBidsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	bids, err := h.service.ActiveBidsByBidder(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MyActiveBidsHandler: error retrieving active bids", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidListResponse(bids), "active bids retrieved successfully")
}

// MyWonAuctionsHandler handles GET /bids/won
func (h *AuctionHandler) MyWonAuctionsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	auctions, err := h.service.WonAuctions(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MyWonAuctionsHandler: error retrieving won auctions", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	resp := helpers.NewAuctionListResponse(auctions, len(auctions), 1, len(auctions))
	utils.JSONResponse(c, http.StatusOK, resp, "won auctions retrieved successfully")
	helpers.LogSuccess("MyWonAuctionsHandler", "won auctions retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(auctions),
	})
}
