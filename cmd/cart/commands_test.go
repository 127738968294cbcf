package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/cart-manager/internal/core/domain"
)

// setupCLI points the CLI at a temp snapshot dir and a fake catalog where
// product 1 has stock 2 and product 2 has stock 5.
func setupCLI(t *testing.T) string {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/stock/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"amount":2}`))
	})
	mux.HandleFunc("/stock/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":2,"amount":5}`))
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":1,"title":"Running shoe","price":179.9,"image":"1.jpg"}`))
	})
	mux.HandleFunc("/products/2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":2,"title":"Sandal","price":59.9,"image":"2.jpg"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("CART_CONFIG", "")
	t.Setenv("CART_STORAGE", "file")
	t.Setenv("CART_STORAGE_DIR", dir)
	t.Setenv("CART_CATALOG", "http")
	t.Setenv("CATALOG_URL", srv.URL)
	t.Setenv("CART_SNAPSHOT_KEY", "")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func runCart(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeView(t *testing.T, s string) cartView {
	t.Helper()
	var v cartView
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestShow_Empty(t *testing.T) {
	setupCLI(t)

	stdout, _, err := runCart(t, "show")
	require.NoError(t, err)

	v := decodeView(t, stdout)
	assert.Empty(t, v.Items)
	assert.Equal(t, 0, v.Count)
}

func TestAdd_PersistsAcrossRuns(t *testing.T) {
	dir := setupCLI(t)

	_, _, err := runCart(t, "add", "1")
	require.NoError(t, err)
	_, _, err = runCart(t, "add", "2")
	require.NoError(t, err)
	stdout, _, err := runCart(t, "add", "1")
	require.NoError(t, err)

	v := decodeView(t, stdout)
	require.Len(t, v.Items, 2)
	assert.Equal(t, 2, v.Items[0].Amount)
	assert.Equal(t, "Sandal", v.Items[1].Title)
	assert.Equal(t, 3, v.Count)
	assert.True(t, decimal.RequireFromString("419.7").Equal(v.Total))

	data, err := os.ReadFile(filepath.Join(dir, "@RocketShoes:cart.json"))
	require.NoError(t, err)
	stored, err := domain.UnmarshalSnapshot(data)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestAdd_OutOfStock(t *testing.T) {
	setupCLI(t)

	runCart(t, "add", "1")
	runCart(t, "add", "1")
	stdout, stderr, err := runCart(t, "add", "1")

	assert.ErrorIs(t, err, errOperationFailed)
	assert.Contains(t, stderr, "error: "+domain.MessageStockExceeded)
	assert.Equal(t, 2, decodeView(t, stdout).Items[0].Amount)
}

func TestAdd_UnknownProduct(t *testing.T) {
	setupCLI(t)

	_, stderr, err := runCart(t, "add", "42")

	assert.ErrorIs(t, err, errOperationFailed)
	assert.Contains(t, stderr, domain.MessageAddFailed)
}

func TestAdd_InvalidID(t *testing.T) {
	setupCLI(t)

	_, _, err := runCart(t, "add", "abc")
	assert.ErrorContains(t, err, `invalid product id "abc"`)
}

func TestUpdateAndRemove(t *testing.T) {
	setupCLI(t)
	runCart(t, "add", "2")

	stdout, _, err := runCart(t, "update", "2", "4")
	require.NoError(t, err)
	assert.Equal(t, 4, decodeView(t, stdout).Items[0].Amount)

	stdout, stderr, err := runCart(t, "update", "2", "0")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, 4, decodeView(t, stdout).Items[0].Amount)

	_, stderr, err = runCart(t, "update", "2", "9")
	assert.ErrorIs(t, err, errOperationFailed)
	assert.Contains(t, stderr, domain.MessageStockExceeded)

	stdout, _, err = runCart(t, "rm", "2")
	require.NoError(t, err)
	assert.Empty(t, decodeView(t, stdout).Items)

	_, stderr, err = runCart(t, "remove", "2")
	assert.ErrorIs(t, err, errOperationFailed)
	assert.Contains(t, stderr, domain.MessageRemoveFailed)
}

func TestUpdate_InvalidAmount(t *testing.T) {
	setupCLI(t)

	_, _, err := runCart(t, "update", "1", "lots")
	assert.ErrorContains(t, err, `invalid amount "lots"`)
}

func TestSeed_RequiresMySQL(t *testing.T) {
	setupCLI(t)

	_, _, err := runCart(t, "seed", "products.yaml")
	assert.ErrorContains(t, err, "mysql catalog")
}

func TestPrintCartTable(t *testing.T) {
	var buf bytes.Buffer
	cart := domain.Cart{
		{Product: domain.Product{ID: 1, Title: "Running shoe", Price: decimal.RequireFromString("179.9")}, Amount: 2},
	}

	require.NoError(t, printCartTable(&buf, cart))

	out := buf.String()
	assert.Contains(t, out, "Running shoe")
	assert.Contains(t, out, "179.90")
	assert.Contains(t, out, "359.80")

	buf.Reset()
	require.NoError(t, printCartTable(&buf, nil))
	assert.Equal(t, "Cart is empty\n", buf.String())
}

func TestLoadSeedFile(t *testing.T) {
	write := func(t *testing.T, content string) string {
		path := filepath.Join(t.TempDir(), "products.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		return path
	}

	t.Run("valid file", func(t *testing.T) {
		path := write(t, `products:
  - id: 1
    title: Running shoe
    price: 179.90
    image: 1.jpg
    stock: 3
  - id: 2
    title: Sandal
    price: "59.9"
    stock: 0
`)
		products, err := loadSeedFile(path)
		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, "179.9", products[0].Price.String())
		assert.Equal(t, 3, products[0].Stock)
		assert.Equal(t, "59.9", products[1].Price.String())
	})

	t.Run("duplicate id", func(t *testing.T) {
		path := write(t, "products:\n  - {id: 1, price: 1}\n  - {id: 1, price: 2}\n")
		_, err := loadSeedFile(path)
		assert.ErrorContains(t, err, "duplicate product id 1")
	})

	t.Run("invalid price", func(t *testing.T) {
		path := write(t, "products:\n  - {id: 1, price: cheap}\n")
		_, err := loadSeedFile(path)
		assert.ErrorContains(t, err, "invalid price")
	})

	t.Run("negative stock", func(t *testing.T) {
		path := write(t, "products:\n  - {id: 1, price: 1, stock: -2}\n")
		_, err := loadSeedFile(path)
		assert.ErrorContains(t, err, "negative stock")
	})
}
