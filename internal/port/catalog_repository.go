package port

import (
	"context"

	"github.com/rl1809/cart-manager/internal/core/domain"
)

type CatalogRepository interface {
	// GetStock returns the purchasable amount of a product, nil if the product has no stock record
	GetStock(ctx context.Context, productID int) (*domain.Stock, error)

	// GetProduct retrieves a product by ID, nil if it does not exist
	GetProduct(ctx context.Context, productID int) (*domain.Product, error)
}
