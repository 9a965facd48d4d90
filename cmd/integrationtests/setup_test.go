package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/notionstudy21-cmd/AuctionHub/internal/bus"
	"github.com/notionstudy21-cmd/AuctionHub/internal/engine"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
	"github.com/notionstudy21-cmd/AuctionHub/internal/repository"
	"github.com/notionstudy21-cmd/AuctionHub/internal/scheduler"
	"github.com/notionstudy21-cmd/AuctionHub/internal/server"
)

// TestEnv wires the full stack against the in-memory ledger with a
// controllable clock, so tests drive time instead of sleeping.
type TestEnv struct {
	Router    *gin.Engine
	Ledger    *repository.MemoryLedger
	Catalog   *engine.MemoryCatalog
	Bus       *bus.Bus
	Scheduler *scheduler.Scheduler

	mu  sync.Mutex
	now time.Time
}

// SetupTestEnv initializes the router with in-memory storage for integration testing.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &TestEnv{
		Ledger:  repository.NewMemoryLedger(),
		Catalog: engine.NewMemoryCatalog(),
		Bus:     bus.NewBus(64),
		now:     time.Now().UTC(),
	}

	auctionEngine := engine.NewEngine(env.Ledger, env.Catalog, env.Bus, engine.NewLockRegistry(),
		engine.WithClock(env.Now))
	env.Scheduler = scheduler.NewScheduler(env.Ledger, auctionEngine, time.Minute)
	env.Router = server.SetupRouter(auctionEngine, env.Bus)
	return env
}

// Now is the environment's wall clock.
func (e *TestEnv) Now() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// Advance moves the environment's clock forward.
func (e *TestEnv) Advance(d time.Duration) {
	e.mu.Lock()
	e.now = e.now.Add(d)
	e.mu.Unlock()
}

// SeedProduct registers a sellable product in the catalog.
func (e *TestEnv) SeedProduct(productID, seller string) {
	e.Catalog.AddProduct(model.Product{
		ProductID: productID,
		Seller:    seller,
		Name:      "product " + productID,
	})
}

// ExecuteRequest executes an HTTP request as the given user and returns the
// response recorder. An empty userID sends no identity header.
func (e *TestEnv) ExecuteRequest(t *testing.T, method, url, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	w := httptest.NewRecorder()
	e.Router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes an HTTP request and parses the data field
// of the response envelope.
func (e *TestEnv) ExecuteRequestAndParse(t *testing.T, method, url, userID string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := e.ExecuteRequest(t, method, url, userID, body)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	data, _ := resp["data"].(map[string]any)
	return data, w
}
