package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/notionstudy21-cmd/AuctionHub/internal/engine"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
	"github.com/notionstudy21-cmd/AuctionHub/internal/repository"
	"github.com/notionstudy21-cmd/AuctionHub/services/auction/helpers"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

// UserIDKey is the gin context key the identity middleware stores the
// authenticated user id under.
const UserIDKey = "userID"

//go:generate mockgen -source=auction_handler.go -destination=mock_service.go -package=handler

type AuctionServiceInterface interface {
	CreateAuction(ctx context.Context, creatorID string, p engine.CreateAuctionParams) (model.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListAuctions(ctx context.Context, filter repository.AuctionFilter) ([]model.Auction, int, error)
	ActiveAuctions(ctx context.Context) ([]model.Auction, error)
	AuctionsByCreator(ctx context.Context, creatorID string) ([]model.Auction, error)
	UpdateAuction(ctx context.Context, creatorID, auctionID string, p engine.UpdateAuctionParams) (model.Auction, error)
	CancelAuction(ctx context.Context, creatorID, auctionID string) (model.Auction, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (model.Bid, model.Auction, error)
	BidsForAuction(ctx context.Context, auctionID string) ([]model.Bid, error)
	BidsByBidder(ctx context.Context, bidderID string) ([]model.Bid, error)
	ActiveBidsByBidder(ctx context.Context, bidderID string) ([]model.Bid, error)
	WonAuctions(ctx context.Context, bidderID string) ([]model.Auction, error)
}

type AuctionHandler struct {
	service AuctionServiceInterface
}

func NewAuctionHandler(service AuctionServiceInterface) *AuctionHandler {
	return &AuctionHandler{service: service}
}

// currentUser returns the authenticated user id, responding 401 when the
// identity middleware left none.
func currentUser(c *gin.Context) (string, bool) {
	userID := c.GetString(UserIDKey)
	if userID == "" {
		utils.JSONError(c, http.StatusUnauthorized, fmt.Errorf("missing user identity"), "authentication required")
		return "", false
	}
	return userID, true
}

// CreateAuctionHandler handles POST /auctions
func (h *AuctionHandler) CreateAuctionHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.service.CreateAuction(c.Request.Context(), userID, engine.CreateAuctionParams{
		ProductID:       req.ProductID,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		StartingBid:     req.StartingBid,
		MinBidIncrement: req.MinBidIncrement,
		Featured:        req.Featured,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("CreateAuctionHandler: failed to create auction", map[string]any{
			"handler":    "CreateAuctionHandler",
			"product_id": req.ProductID,
			"user_id":    userID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.NewAuctionResponse(auction), "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"product_id": auction.ProductID,
		"user_id":    userID,
		"status":     string(auction.Status),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *AuctionHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction retrieved successfully")
}

// ListAuctionsHandler handles GET /auctions
func (h *AuctionHandler) ListAuctionsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	filter := repository.AuctionFilter{
		Status:  model.AuctionStatus(c.Query("status")),
		Creator: c.Query("creator"),
		Page:    page,
		Limit:   limit,
	}

	auctions, total, err := h.service.ListAuctions(c.Request.Context(), filter)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionsHandler: error listing auctions", map[string]any{"error": err.Error()})
		return
	}

	resp := helpers.NewAuctionListResponse(auctions, total, page, limit)
	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(auctions),
		"total": total,
	})
}

// ActiveAuctionsHandler handles GET /auctions/active
func (h *AuctionHandler) ActiveAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ActiveAuctions(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ActiveAuctionsHandler: error listing active auctions", map[string]any{"error": err.Error()})
		return
	}

	resp := helpers.NewAuctionListResponse(auctions, len(auctions), 1, len(auctions))
	utils.JSONResponse(c, http.StatusOK, resp, "active auctions retrieved successfully")
}

// MyAuctionsHandler handles GET /auctions/user/me
func (h *AuctionHandler) MyAuctionsHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	auctions, err := h.service.AuctionsByCreator(c.Request.Context(), userID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("MyAuctionsHandler: error retrieving auctions", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}

	resp := helpers.NewAuctionListResponse(auctions, len(auctions), 1, len(auctions))
	utils.JSONResponse(c, http.StatusOK, resp, "auctions retrieved successfully")
}

// UpdateAuctionHandler handles PUT /auctions/:auction_id
func (h *AuctionHandler) UpdateAuctionHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	auction, err := h.service.UpdateAuction(c.Request.Context(), userID, auctionID, engine.UpdateAuctionParams{
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		StartingBid:     req.StartingBid,
		MinBidIncrement: req.MinBidIncrement,
		Featured:        req.Featured,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("UpdateAuctionHandler: failed to update auction", map[string]any{
			"auction_id": auctionID,
			"user_id":    userID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"user_id":    userID,
	})
}

// CancelAuctionHandler handles DELETE /auctions/:auction_id
func (h *AuctionHandler) CancelAuctionHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	auctionID := c.Param("auction_id")
	auction, err := h.service.CancelAuction(c.Request.Context(), userID, auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("CancelAuctionHandler: failed to cancel auction", map[string]any{
			"auction_id": auctionID,
			"user_id":    userID,
			"error":      err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewAuctionResponse(auction), "auction cancelled successfully")
	helpers.LogSuccess("CancelAuctionHandler", "auction cancelled successfully", map[string]any{
		"auction_id": auction.AuctionID,
		"user_id":    userID,
	})
}
