package main

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rl1809/cart-manager/internal/core/domain"
	"github.com/rl1809/cart-manager/pkg/config"
)

var seedCmd = &cobra.Command{
	Use:   "seed <file>",
	Short: "Load products and stock into the MySQL catalog",
	Long: `Load products and stock from a YAML file into the MySQL catalog.
Existing products are overwritten.

File format:
  products:
    - id: 1
      title: Running shoe
      price: 179.90
      image: https://example.com/1.jpg
      stock: 3`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	ID    int        `yaml:"id"`
	Title string     `yaml:"title"`
	Price yamlAmount `yaml:"price"`
	Image string     `yaml:"image"`
	Stock int        `yaml:"stock"`
}

// yamlAmount decodes a YAML scalar into a decimal without a float round trip.
type yamlAmount struct {
	decimal.Decimal
}

func (a *yamlAmount) UnmarshalYAML(value *yaml.Node) error {
	d, err := decimal.NewFromString(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid price %q", value.Line, value.Value)
	}
	a.Decimal = d
	return nil
}

func loadSeedFile(path string) ([]seedProduct, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	seen := make(map[int]bool, len(f.Products))
	for _, p := range f.Products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%s: product %q has invalid id %d", path, p.Title, p.ID)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%s: duplicate product id %d", path, p.ID)
		}
		if p.Stock < 0 {
			return nil, fmt.Errorf("%s: product %d has negative stock", path, p.ID)
		}
		seen[p.ID] = true
	}
	return f.Products, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	if cfg.Catalog.Backend != config.CatalogMySQL {
		return fmt.Errorf("seed needs the mysql catalog (set CART_CATALOG=mysql)")
	}

	products, err := loadSeedFile(args[0])
	if err != nil {
		return err
	}

	a := &app{}
	defer a.Close()

	mysqlAdapter, err := a.openMySQL(cmd.Context(), cfg.Catalog)
	if err != nil {
		return err
	}

	for _, p := range products {
		product := domain.Product{ID: p.ID, Title: p.Title, Price: p.Price.Decimal, Image: p.Image}
		if err := mysqlAdapter.UpsertProduct(cmd.Context(), product, p.Stock); err != nil {
			return fmt.Errorf("product %d: %w", p.ID, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d products\n", len(products))
	return nil
}
