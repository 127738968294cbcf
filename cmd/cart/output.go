package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/term"

	"github.com/rl1809/cart-manager/internal/core/domain"
)

// errOperationFailed marks a cart operation whose failure was already
// shown to the user by the notifier.
var errOperationFailed = errors.New("cart operation failed")

type cartView struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Total decimal.Decimal   `json:"total"`
}

// isTerminal returns true if w is a terminal.
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// printCart renders a table on a terminal and JSON otherwise.
func printCart(w io.Writer, cart domain.Cart) error {
	if isTerminal(w) {
		return printCartTable(w, cart)
	}

	if cart == nil {
		cart = domain.Cart{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cartView{Items: cart, Count: cart.Count(), Total: cart.Total()})
}

func printCartTable(w io.Writer, cart domain.Cart) error {
	if len(cart) == 0 {
		_, err := fmt.Fprintln(w, "Cart is empty")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPRICE\tAMOUNT\tSUBTOTAL")
	for _, item := range cart {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
			item.ID, item.Title, item.Price.StringFixed(2), item.Amount, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\t%d\t%s\n", cart.Count(), cart.Total().StringFixed(2))
	return tw.Flush()
}
