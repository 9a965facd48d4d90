package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notionstudy21-cmd/AuctionHub/internal/auctionerrors"
	"github.com/notionstudy21-cmd/AuctionHub/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrAuctionNotFound):
		return http.StatusNotFound, "auction not found"
	case errors.Is(err, auctionerrors.ErrProductNotFound):
		return http.StatusNotFound, "product not found"
	case errors.Is(err, auctionerrors.ErrInvalidAuction):
		return http.StatusBadRequest, "invalid auction details"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrNotCreator):
		return http.StatusForbidden, "only the auction creator may do this"
	case errors.Is(err, auctionerrors.ErrSelfBid):
		return http.StatusForbidden, "creators cannot bid on their own auctions"
	case errors.Is(err, auctionerrors.ErrAuctionNotActive):
		return http.StatusConflict, "auction is not active"
	case errors.Is(err, auctionerrors.ErrAuctionStarted):
		return http.StatusConflict, "auction is no longer editable"
	case errors.Is(err, auctionerrors.ErrCancelDenied):
		return http.StatusConflict, "auction cannot be cancelled"
	case errors.Is(err, auctionerrors.ErrDuplicateAuction):
		return http.StatusConflict, "product already has an open auction"
	case errors.Is(err, auctionerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, auctionerrors.ErrBidBelowIncrement):
		return http.StatusConflict, "bid below minimum increment"
	case errors.Is(err, auctionerrors.ErrVersionConflict):
		return http.StatusConflict, "auction changed concurrently, retry"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
