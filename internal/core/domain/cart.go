package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cart is an ordered list of line items, at most one per product ID.
// Methods never modify the receiver; mutating helpers return a new Cart.
type Cart []LineItem

// Find returns the index of the line item for productID, or -1.
func (c Cart) Find(productID int) int {
	for i, item := range c {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Append returns a copy of c with item added at the end.
func (c Cart) Append(item LineItem) Cart {
	out := make(Cart, 0, len(c)+1)
	out = append(out, c...)
	return append(out, item)
}

// WithAmount returns a copy of c where the line at index i has the given amount.
func (c Cart) WithAmount(i, amount int) Cart {
	out := c.Clone()
	out[i].Amount = amount
	return out
}

// Without returns a copy of c without the line at index i.
func (c Cart) Without(i int) Cart {
	out := make(Cart, 0, len(c)-1)
	out = append(out, c[:i]...)
	return append(out, c[i+1:]...)
}

// Count is the total number of units across all lines.
func (c Cart) Count() int {
	n := 0
	for _, item := range c {
		n += item.Amount
	}
	return n
}

func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c {
		total = total.Add(item.Subtotal())
	}
	return total
}

// MarshalSnapshot encodes the cart in its persisted form. An empty cart
// encodes as "[]".
func MarshalSnapshot(c Cart) ([]byte, error) {
	if c == nil {
		c = Cart{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a persisted cart. Lines with a non-positive
// amount are dropped and repeated product IDs collapse into one line:
// the last occurrence wins and keeps the position of the first.
func UnmarshalSnapshot(data []byte) (Cart, error) {
	var raw Cart
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	out := make(Cart, 0, len(raw))
	for _, item := range raw {
		if item.Amount <= 0 {
			continue
		}
		if i := out.Find(item.ID); i >= 0 {
			out[i] = item
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
