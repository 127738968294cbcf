package handler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/cart-manager/internal/adapter/notify"
	"github.com/rl1809/cart-manager/internal/adapter/storage"
	"github.com/rl1809/cart-manager/internal/core/domain"
	"github.com/rl1809/cart-manager/internal/core/service"
)

type stubCatalog struct {
	stock map[int]int
}

func (s stubCatalog) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	amount, ok := s.stock[productID]
	if !ok {
		return nil, nil
	}
	return &domain.Stock{ID: productID, Amount: amount}, nil
}

func (s stubCatalog) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	if _, ok := s.stock[productID]; !ok {
		return nil, nil
	}
	return &domain.Product{
		ID:    productID,
		Title: "Sneaker",
		Price: decimal.RequireFromString("99.90"),
	}, nil
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// newManager returns a manager over a temp-dir snapshot store where
// product 1 has stock 2 and product 2 has stock 5.
func newManager(t *testing.T) (*service.CartManager, *notify.Recorder) {
	t.Helper()

	snapshots, err := storage.NewFileAdapter(t.TempDir())
	require.NoError(t, err)

	recorder := &notify.Recorder{}
	catalog := stubCatalog{stock: map[int]int{1: 2, 2: 5}}

	m, err := service.NewCartManager(context.Background(), catalog, snapshots, recorder, service.WithLogger(discardLogger))
	require.NoError(t, err)
	return m, recorder
}
