package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rl1809/cart-manager/internal/adapter/notify"
	"github.com/rl1809/cart-manager/internal/core/domain"
	"github.com/rl1809/cart-manager/internal/core/service"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCart(cmd, func(m *service.CartManager) domain.Outcome {
			return domain.Outcome{}
		})
	},
}

var addCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add one unit of a product",
	Long: `Add one unit of a product to the cart.

A product already in the cart has its amount increased by one if the
catalog has enough stock; otherwise it is added with amount 1.

Examples:
  cart add 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		return withCart(cmd, func(m *service.CartManager) domain.Outcome {
			return m.AddProduct(cmd.Context(), productID)
		})
	},
}

var removeCmd = &cobra.Command{
	Use:     "remove <product-id>",
	Aliases: []string{"rm"},
	Short:   "Remove a product from the cart",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		return withCart(cmd, func(m *service.CartManager) domain.Outcome {
			return m.RemoveProduct(cmd.Context(), productID)
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <product-id> <amount>",
	Short: "Set the amount of a product in the cart",
	Long: `Set the amount of a product already in the cart.

An amount of zero or less is ignored.

Examples:
  cart update 3 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		productID, err := parseProductID(args[0])
		if err != nil {
			return err
		}
		amount, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		return withCart(cmd, func(m *service.CartManager) domain.Outcome {
			return m.UpdateProductAmount(cmd.Context(), productID, amount)
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd, addCmd, removeCmd, updateCmd)
}

// withCart opens the configured stores, runs op and prints the resulting
// cart. Failed operations have already been reported by the notifier, so
// they only set the exit status.
func withCart(cmd *cobra.Command, op func(*service.CartManager) domain.Outcome) error {
	a, err := openApp(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	m, err := a.newCartManager(cmd.Context(), notify.NewWriterNotifier(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	out := op(m)

	if err := printCart(cmd.OutOrStdout(), m.Cart()); err != nil {
		return err
	}
	if out.Failed() {
		return errOperationFailed
	}
	return nil
}

func parseProductID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", s)
	}
	return id, nil
}
