package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nehueninos/nhnproparts/pkg/circuitbreaker"
	"github.com/nehueninos/nhnproparts/storefront-service/internal/domain"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client reads the product list from the catalog service.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]domain.Product]
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// WithBreaker stops calling the catalog service after repeated failures.
func (c *Client) WithBreaker(s circuitbreaker.Settings, log zerolog.Logger) *Client {
	c.breaker = circuitbreaker.New[[]domain.Product](s, log)
	return c
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	if c.breaker == nil {
		return c.fetch(ctx)
	}
	return c.breaker.Execute(func() ([]domain.Product, error) {
		return c.fetch(ctx)
	})
}

func (c *Client) fetch(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch products: unexpected status %d", resp.StatusCode)
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}
