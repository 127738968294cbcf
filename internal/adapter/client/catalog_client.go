package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rl1809/cart-manager/internal/core/domain"
)

const defaultTimeout = 5 * time.Second

// CatalogClient reads products and stock from a REST catalog exposing
// GET /products/{id} and GET /stock/{id}.
type CatalogClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewCatalogClient uses a client with a 5s timeout when httpClient is nil.
func NewCatalogClient(baseURL string, httpClient *http.Client) *CatalogClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &CatalogClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (c *CatalogClient) GetStock(ctx context.Context, productID int) (*domain.Stock, error) {
	var stock domain.Stock
	found, err := c.get(ctx, "stock", productID, &stock)
	if err != nil || !found {
		return nil, err
	}
	return &stock, nil
}

func (c *CatalogClient) GetProduct(ctx context.Context, productID int) (*domain.Product, error) {
	var p domain.Product
	found, err := c.get(ctx, "products", productID, &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// get decodes the resource into out. A 404 reports found=false.
func (c *CatalogClient) get(ctx context.Context, resource string, id int, out any) (bool, error) {
	endpoint, err := url.JoinPath(c.baseURL, resource, strconv.Itoa(id))
	if err != nil {
		return false, fmt.Errorf("build %s url: %w", resource, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("build %s request: %w", resource, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("get %s/%d: %w", resource, id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("get %s/%d: unexpected status %d", resource, id, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("decode %s/%d: %w", resource, id, err)
	}
	return true, nil
}
