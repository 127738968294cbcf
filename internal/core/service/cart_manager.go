package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rl1809/cart-manager/internal/core/domain"
	"github.com/rl1809/cart-manager/internal/port"
)

const DefaultSnapshotKey = "@RocketShoes:cart"

var (
	ErrStockExceeded    = errors.New("requested amount exceeds stock")
	ErrProductNotFound  = errors.New("product not found")
	ErrLineItemNotFound = errors.New("product not in cart")
)

type Option func(*CartManager)

func WithLogger(logger *slog.Logger) Option {
	return func(m *CartManager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithSnapshotKey(key string) Option {
	return func(m *CartManager) {
		if key != "" {
			m.key = key
		}
	}
}

// CartManager owns the cart of one session. Every operation runs under a
// single mutex, so the in-memory cart and the stored snapshot only change
// together.
type CartManager struct {
	catalog   port.CatalogRepository
	snapshots port.SnapshotRepository
	notifier  port.Notifier
	logger    *slog.Logger
	key       string

	mu   sync.Mutex
	cart domain.Cart
}

// NewCartManager builds a manager and loads the stored snapshot. A missing
// snapshot yields an empty cart.
func NewCartManager(ctx context.Context, catalog port.CatalogRepository, snapshots port.SnapshotRepository, notifier port.Notifier, opts ...Option) (*CartManager, error) {
	m := &CartManager{
		catalog:   catalog,
		snapshots: snapshots,
		notifier:  notifier,
		logger:    slog.Default(),
		key:       DefaultSnapshotKey,
		cart:      domain.Cart{},
	}
	for _, opt := range opts {
		opt(m)
	}

	data, err := snapshots.Get(ctx, m.key)
	if err != nil {
		return nil, fmt.Errorf("load snapshot %q: %w", m.key, err)
	}
	if data != nil {
		cart, err := domain.UnmarshalSnapshot(data)
		if err != nil {
			return nil, fmt.Errorf("load snapshot %q: %w", m.key, err)
		}
		m.cart = cart
	}

	m.logger.Debug("cart loaded", "key", m.key, "lines", len(m.cart))
	return m, nil
}

// Cart returns a copy of the current cart.
func (m *CartManager) Cart() domain.Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone()
}

func (m *CartManager) AddProduct(ctx context.Context, productID int) domain.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.addProduct(ctx, productID)
	if err == nil {
		err = m.commit(ctx, next)
	}
	return m.outcome(ctx, domain.OperationAdd, productID, err)
}

func (m *CartManager) RemoveProduct(ctx context.Context, productID int) domain.Outcome {
	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if i := m.cart.Find(productID); i < 0 {
		err = ErrLineItemNotFound
	} else {
		err = m.commit(ctx, m.cart.Without(i))
	}
	return m.outcome(ctx, domain.OperationRemove, productID, err)
}

// UpdateProductAmount sets the amount of a line already in the cart. A
// non-positive amount is ignored.
func (m *CartManager) UpdateProductAmount(ctx context.Context, productID, amount int) domain.Outcome {
	if amount <= 0 {
		return domain.Outcome{Operation: domain.OperationUpdate, ProductID: productID}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next, err := m.updateProductAmount(ctx, productID, amount)
	if err == nil {
		err = m.commit(ctx, next)
	}
	return m.outcome(ctx, domain.OperationUpdate, productID, err)
}

func (m *CartManager) addProduct(ctx context.Context, productID int) (domain.Cart, error) {
	i := m.cart.Find(productID)

	available, err := m.availableAmount(ctx, productID)
	if err != nil {
		return nil, err
	}

	if i >= 0 {
		amount := m.cart[i].Amount + 1
		if available <= 0 || amount > available {
			return nil, fmt.Errorf("product %d: %w (requested %d, available %d)", productID, ErrStockExceeded, amount, available)
		}
		return m.cart.WithAmount(i, amount), nil
	}

	product, err := m.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", productID, ErrProductNotFound)
	}

	return m.cart.Append(domain.LineItem{Product: *product, Amount: 1}), nil
}

func (m *CartManager) updateProductAmount(ctx context.Context, productID, amount int) (domain.Cart, error) {
	available, err := m.availableAmount(ctx, productID)
	if err != nil {
		return nil, err
	}
	if amount > available {
		return nil, fmt.Errorf("product %d: %w (requested %d, available %d)", productID, ErrStockExceeded, amount, available)
	}

	i := m.cart.Find(productID)
	if i < 0 {
		return nil, fmt.Errorf("product %d: %w", productID, ErrLineItemNotFound)
	}
	return m.cart.WithAmount(i, amount), nil
}

func (m *CartManager) availableAmount(ctx context.Context, productID int) (int, error) {
	stock, err := m.catalog.GetStock(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("get stock %d: %w", productID, err)
	}
	if stock == nil {
		return 0, fmt.Errorf("stock for product %d: %w", productID, ErrProductNotFound)
	}
	return stock.Amount, nil
}

// commit persists next and only then makes it the current cart.
func (m *CartManager) commit(ctx context.Context, next domain.Cart) error {
	data, err := domain.MarshalSnapshot(next)
	if err != nil {
		return err
	}
	if err := m.snapshots.Set(ctx, m.key, data); err != nil {
		return fmt.Errorf("store snapshot %q: %w", m.key, err)
	}
	m.cart = next
	return nil
}

func (m *CartManager) outcome(ctx context.Context, op domain.Operation, productID int, err error) domain.Outcome {
	if err == nil {
		return domain.Outcome{Operation: op, ProductID: productID, Applied: true}
	}

	reason := classify(err)
	message := domain.FailureMessage(op, reason)
	m.logger.Debug("cart operation failed",
		"operation", op,
		"product_id", productID,
		"reason", reason,
		"error", err,
	)
	m.notifier.Notify(ctx, message)

	return domain.Outcome{
		Operation: op,
		ProductID: productID,
		Reason:    reason,
		Message:   message,
		Err:       err,
	}
}

func classify(err error) domain.Reason {
	switch {
	case errors.Is(err, ErrStockExceeded):
		return domain.ReasonStockExceeded
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrLineItemNotFound):
		return domain.ReasonNotFound
	default:
		return domain.ReasonUnexpected
	}
}
