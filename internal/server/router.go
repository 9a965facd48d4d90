package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notionstudy21-cmd/AuctionHub/internal/bus"
	"github.com/notionstudy21-cmd/AuctionHub/internal/realtime"
	handler "github.com/notionstudy21-cmd/AuctionHub/services/auction/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(service handler.AuctionServiceInterface, eventBus *bus.Bus) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(IdentityMiddleware)      // X-User-ID -> request identity

	auctionHandler := handler.NewAuctionHandler(service)
	wsHandler := realtime.NewHandler(eventBus)

	auctions := router.Group("/auctions")
	{
		auctions.POST("", auctionHandler.CreateAuctionHandler)
		auctions.GET("", auctionHandler.ListAuctionsHandler)
		auctions.GET("/active", auctionHandler.ActiveAuctionsHandler)
		auctions.GET("/user/me", auctionHandler.MyAuctionsHandler)
		auctions.GET("/:auction_id", auctionHandler.GetAuctionHandler)
		auctions.PUT("/:auction_id", auctionHandler.UpdateAuctionHandler)
		auctions.DELETE("/:auction_id", auctionHandler.CancelAuctionHandler)
		auctions.GET("/:auction_id/bids", auctionHandler.GetBidsByAuctionHandler)
	}

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
		bids.GET("/user/me", auctionHandler.MyBidsHandler)
		bids.GET("/active", auctionHandler.MyActiveBidsHandler)
		bids.GET("/won", auctionHandler.MyWonAuctionsHandler)
	}

	router.GET("/ws", wsHandler.Serve)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}
