package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/notionstudy21-cmd/AuctionHub/internal/auctionerrors"
	model "github.com/notionstudy21-cmd/AuctionHub/internal/models"
)

// Catalog is the product collaborator boundary. The engine only reads a
// product to confirm it exists and who sells it; product content is owned
// elsewhere.
type Catalog interface {
	GetProduct(ctx context.Context, productID string) (model.Product, error)
}

// MemoryCatalog is a concurrency-safe in-memory Catalog.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products map[string]model.Product
}

// NewMemoryCatalog creates a new in-memory catalog instance
func NewMemoryCatalog() *MemoryCatalog {
	return &MemoryCatalog{products: make(map[string]model.Product)}
}

// AddProduct registers a product with the catalog.
func (c *MemoryCatalog) AddProduct(product model.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[product.ProductID] = product
}

// GetProduct returns the product or ErrProductNotFound.
func (c *MemoryCatalog) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	product, ok := c.products[productID]
	if !ok {
		return model.Product{}, fmt.Errorf("get product %s: %w", productID, auctionerrors.ErrProductNotFound)
	}
	return product, nil
}
