package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/notionstudy21-cmd/AuctionHub/internal/auctionerrors"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
	"github.com/notionstudy21-cmd/AuctionHub/services/auction/helpers"
)

// withUser injects the identity the middleware would extract.
func withUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

func sampleAuction(now time.Time) model.Auction {
	return model.Auction{
		AuctionID:       uuid.NewString(),
		ProductID:       "product1",
		CreatedBy:       "seller1",
		StartTime:       now.Add(-time.Hour),
		EndTime:         now.Add(time.Hour),
		StartingBid:     100,
		CurrentBid:      100,
		MinBidIncrement: 5,
		Status:          model.AuctionActive,
		CreatedAt:       now,
	}
}

// Test CreateAuctionHandler
func TestCreateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions", withUser("seller1"), handler.CreateAuctionHandler)

	now := time.Now().UTC()

	validRequest := helpers.CreateAuctionRequest{
		ProductID:       "product1",
		StartTime:       now.Add(time.Hour),
		EndTime:         now.Add(2 * time.Hour),
		StartingBid:     100,
		MinBidIncrement: 5,
	}

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: validRequest,
			mockSetup: func() {
				created := sampleAuction(now)
				created.Status = model.AuctionPending
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "seller1", gomock.Any()).
					Return(created, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "auction created successfully",
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_product_id",
			requestBody: helpers.CreateAuctionRequest{
				StartTime: now.Add(time.Hour),
				EndTime:   now.Add(2 * time.Hour),
			},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name:        "unknown_product",
			requestBody: validRequest,
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "seller1", gomock.Any()).
					Return(model.Auction{}, auctionerrors.ErrProductNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "product not found",
		},
		{
			name:        "product_owned_by_someone_else",
			requestBody: validRequest,
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "seller1", gomock.Any()).
					Return(model.Auction{}, auctionerrors.ErrNotCreator)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "only the auction creator may do this",
		},
		{
			name:        "duplicate_open_auction",
			requestBody: validRequest,
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "seller1", gomock.Any()).
					Return(model.Auction{}, auctionerrors.ErrDuplicateAuction)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "product already has an open auction",
		},
		{
			name:        "service_generic_error",
			requestBody: validRequest,
			mockSetup: func() {
				mockService.EXPECT().
					CreateAuction(gomock.Any(), "seller1", gomock.Any()).
					Return(model.Auction{}, errors.New("database failure"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedMsg:    "internal server error",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var reqBody []byte
			var err error
			switch v := tc.requestBody.(type) {
			case string:
				reqBody = []byte(v)
			default:
				reqBody, err = json.Marshal(v)
				require.NoError(t, err)
			}

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

func TestCreateAuctionHandler_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	handler := NewAuctionHandler(NewMockAuctionServiceInterface(ctrl))

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auctions", withUser(""), handler.CreateAuctionHandler)

	req := httptest.NewRequest(http.MethodPost, "/auctions", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// Test GetAuctionHandler
func TestGetAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auctions/:auction_id", handler.GetAuctionHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		auctionID      string
		mockSetup      func(auctionID string)
		expectedStatus int
		validateData   func(t *testing.T, data map[string]any)
	}{
		{
			name:      "success",
			auctionID: "auction1",
			mockSetup: func(auctionID string) {
				a := sampleAuction(now)
				a.AuctionID = auctionID
				a.Views = 3
				mockService.EXPECT().GetAuction(gomock.Any(), auctionID).Return(a, nil)
			},
			expectedStatus: http.StatusOK,
			validateData: func(t *testing.T, data map[string]any) {
				require.Equal(t, "auction1", data["auction_id"])
				require.Equal(t, "active", data["status"])
				require.Equal(t, 3.0, data["views"])
				require.Greater(t, data["time_remaining_seconds"], 0.0)
			},
		},
		{
			name:      "not_found",
			auctionID: "missing",
			mockSetup: func(auctionID string) {
				mockService.EXPECT().GetAuction(gomock.Any(), auctionID).
					Return(model.Auction{}, auctionerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup(tc.auctionID)

			req := httptest.NewRequest(http.MethodGet, "/auctions/"+tc.auctionID, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.validateData != nil && w.Code == http.StatusOK {
				var resp map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				tc.validateData(t, resp["data"].(map[string]any))
			}
		})
	}
}

// Test ListAuctionsHandler
func TestListAuctionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auctions", handler.ListAuctionsHandler)

	now := time.Now().UTC()
	mockService.EXPECT().
		ListAuctions(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, filter any) ([]model.Auction, int, error) {
			return []model.Auction{sampleAuction(now)}, 7, nil
		})

	req := httptest.NewRequest(http.MethodGet, "/auctions?status=active&page=2&limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	require.Equal(t, 7.0, data["total"])
	require.Equal(t, 2.0, data["page"])
	require.Equal(t, 5.0, data["limit"])
	require.Len(t, data["auctions"], 1)
}

// Test UpdateAuctionHandler
func TestUpdateAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.PUT("/auctions/:auction_id", withUser("seller1"), handler.UpdateAuctionHandler)

	now := time.Now().UTC()
	newBid := 80.0

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name:        "success",
			requestBody: helpers.UpdateAuctionRequest{StartingBid: &newBid},
			mockSetup: func() {
				updated := sampleAuction(now)
				updated.StartingBid = newBid
				updated.CurrentBid = newBid
				mockService.EXPECT().
					UpdateAuction(gomock.Any(), "seller1", "auction1", gomock.Any()).
					Return(updated, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction updated successfully",
		},
		{
			name:        "already_started",
			requestBody: helpers.UpdateAuctionRequest{StartingBid: &newBid},
			mockSetup: func() {
				mockService.EXPECT().
					UpdateAuction(gomock.Any(), "seller1", "auction1", gomock.Any()).
					Return(model.Auction{}, auctionerrors.ErrAuctionStarted)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction is no longer editable",
		},
		{
			name:        "not_creator",
			requestBody: helpers.UpdateAuctionRequest{StartingBid: &newBid},
			mockSetup: func() {
				mockService.EXPECT().
					UpdateAuction(gomock.Any(), "seller1", "auction1", gomock.Any()).
					Return(model.Auction{}, auctionerrors.ErrNotCreator)
			},
			expectedStatus: http.StatusForbidden,
			expectedMsg:    "only the auction creator may do this",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			reqBody, err := json.Marshal(tc.requestBody)
			require.NoError(t, err)

			tc.mockSetup()

			req := httptest.NewRequest(http.MethodPut, "/auctions/auction1", bytes.NewReader(reqBody))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

// Test CancelAuctionHandler
func TestCancelAuctionHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.DELETE("/auctions/:auction_id", withUser("seller1"), handler.CancelAuctionHandler)

	now := time.Now().UTC()

	tests := []struct {
		name           string
		mockSetup      func()
		expectedStatus int
		expectedMsg    string
	}{
		{
			name: "success",
			mockSetup: func() {
				cancelled := sampleAuction(now)
				cancelled.Status = model.AuctionCancelled
				mockService.EXPECT().
					CancelAuction(gomock.Any(), "seller1", "auction1").
					Return(cancelled, nil)
			},
			expectedStatus: http.StatusOK,
			expectedMsg:    "auction cancelled successfully",
		},
		{
			name: "denied_with_leading_bid",
			mockSetup: func() {
				mockService.EXPECT().
					CancelAuction(gomock.Any(), "seller1", "auction1").
					Return(model.Auction{}, auctionerrors.ErrCancelDenied)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "auction cannot be cancelled",
		},
		{
			name: "not_found",
			mockSetup: func() {
				mockService.EXPECT().
					CancelAuction(gomock.Any(), "seller1", "auction1").
					Return(model.Auction{}, auctionerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "auction not found",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			req := httptest.NewRequest(http.MethodDelete, "/auctions/auction1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)

			var resp map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.Contains(t, resp["message"], tc.expectedMsg)
		})
	}
}

func TestMyAuctionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockAuctionServiceInterface(ctrl)
	handler := NewAuctionHandler(mockService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/auctions/user/me", withUser("seller1"), handler.MyAuctionsHandler)

	now := time.Now().UTC()
	mine := sampleAuction(now)
	mockService.EXPECT().AuctionsByCreator(gomock.Any(), "seller1").Return([]model.Auction{mine}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auctions/user/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]any)
	require.Len(t, data["auctions"], 1)
}
