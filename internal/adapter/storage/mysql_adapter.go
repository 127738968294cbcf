package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/rl1809/cart-manager/internal/core/domain"
)

//go:embed schema.sql
var schemaSQL string

var ErrNegativeStock = errors.New("stock amount must not be negative")

// MySQLAdapter serves product and stock lookups from the catalog tables.
type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// Migrate creates the catalog tables if they do not exist.
func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (m *MySQLAdapter) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	var stock domain.Stock
	err := m.db.QueryRowContext(ctx, `
		SELECT product_id, amount
		FROM stock WHERE product_id = ?`, productID,
	).Scan(&stock.ID, &stock.Amount)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query stock: %w", err)
	}

	return &stock, nil
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, title, price, image
		FROM products WHERE id = ?`, productID,
	).Scan(&p.ID, &p.Title, &p.Price, &p.Image)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}

	return &p, nil
}

// UpsertProduct writes a product and its stock amount in one transaction.
func (m *MySQLAdapter) UpsertProduct(ctx context.Context, p domain.Product, amount int) error {
	if amount < 0 {
		return ErrNegativeStock
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (id, title, price, image)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE title = VALUES(title), price = VALUES(price), image = VALUES(image)`,
		p.ID, p.Title, p.Price, p.Image,
	)
	if err != nil {
		return fmt.Errorf("upsert product: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO stock (product_id, amount)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE amount = VALUES(amount)`,
		p.ID, amount,
	)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}

	return tx.Commit()
}
