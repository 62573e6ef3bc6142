package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

// Compile-time interface checks.
var (
	_ domain.PriceService = (*Client)(nil)
	_ domain.OrderPlacer  = (*Client)(nil)
)

// DefaultScrapeStores are the stores the backend scraper knows about.
var DefaultScrapeStores = []string{"Grace Daily", "KPN Fresh"}

// GroceryPrices lists scraped prices, optionally for one store.
func (c *Client) GroceryPrices(ctx context.Context, store string) ([]domain.GroceryPrice, error) {
	q := url.Values{}
	if store != "" {
		q.Set("store", store)
	}
	var resp struct {
		Success bool                  `json:"success"`
		Store   string                `json:"store"`
		Prices  []domain.GroceryPrice `json:"prices"`
		Count   int                   `json:"count"`
	}
	if err := c.get(ctx, "/api/grocery/prices", q, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("api: grocery prices: %w", domain.ErrUnsuccessful)
	}
	return resp.Prices, nil
}

// ComparePrices lists the stores carrying item, cheapest first. An item no
// store carries is domain.ErrNotFound.
func (c *Client) ComparePrices(ctx context.Context, item string) (*domain.PriceComparison, error) {
	var cmp domain.PriceComparison
	if err := c.get(ctx, "/api/grocery/compare", url.Values{"item_name": {item}}, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}

// ScrapePrices triggers a scrape of the given stores and returns how many
// prices were updated. An empty list scrapes DefaultScrapeStores.
func (c *Client) ScrapePrices(ctx context.Context, stores []string) (int, error) {
	if len(stores) == 0 {
		stores = DefaultScrapeStores
	}
	var resp struct {
		successResponse
		PricesUpdated int `json:"prices_updated"`
	}
	if err := c.post(ctx, "/api/grocery/scrape", stores, &resp); err != nil {
		return 0, err
	}
	if !resp.Success {
		return 0, fmt.Errorf("api: scrape prices: %w", domain.ErrUnsuccessful)
	}
	return resp.PricesUpdated, nil
}

// PlaceOrder hands a shopping list to the order automation endpoint. A
// success=false reply is an unsuccessful result, not an error.
func (c *Client) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	var resp struct {
		successResponse
		AutomationResult *domain.OrderResult `json:"automation_result"`
	}
	if err := c.post(ctx, "/api/automate-order", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		c.log.Warn("order automation at %s reported failure: %s", req.StoreName, resp.Message)
		return &domain.OrderResult{Success: false, Message: resp.Message}, nil
	}
	result := &domain.OrderResult{Success: true, Message: resp.Message}
	if resp.AutomationResult != nil {
		result.ItemsAdded = resp.AutomationResult.ItemsAdded
		result.ItemsNotFound = resp.AutomationResult.ItemsNotFound
		result.Success = resp.AutomationResult.Success || len(resp.AutomationResult.ItemsAdded) > 0
	}
	return result, nil
}
