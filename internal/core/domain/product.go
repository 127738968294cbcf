package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID    int             `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
	Image string          `json:"image"`
}

type LineItem struct {
	Product
	Amount int `json:"amount"`
}

// Subtotal is price times amount.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Amount)))
}
