// Package grocery reads scraped grocery prices from the backend, compares
// them across stores and exports priced shopping lists.
package grocery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// DefaultWorkers bounds concurrent comparison requests.
const DefaultWorkers = 4

// Summary counts a price listing.
type Summary struct {
	TotalItems int
	Stores     int
	InStock    int
}

// Listing is a price list grouped by store.
type Listing struct {
	// Stores holds the store names in sorted order.
	Stores  []string
	ByStore map[string][]domain.GroceryPrice
	Summary Summary
}

// Comparison is the result of comparing one item.
type Comparison struct {
	Item   string
	Found  bool
	Best   *domain.GroceryPrice
	Offers []domain.GroceryPrice
}

// Option configures the Service.
type Option func(*Service)

// WithWorkers sets how many comparisons run at once.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// Service wraps the backend price endpoints.
type Service struct {
	prices  domain.PriceService
	workers int
	log     *logger.Logger
}

// New creates a price service.
func New(prices domain.PriceService, log *logger.Logger, opts ...Option) *Service {
	s := &Service{prices: prices, workers: DefaultWorkers, log: log}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Prices lists prices, optionally for a single store, grouped by store.
func (s *Service) Prices(ctx context.Context, store string) (*Listing, error) {
	prices, err := s.prices.GroceryPrices(ctx, store)
	if err != nil {
		return nil, fmt.Errorf("listing prices: %w", err)
	}
	return Group(prices), nil
}

// Group builds a Listing. Items keep their order within each store.
func Group(prices []domain.GroceryPrice) *Listing {
	l := &Listing{ByStore: make(map[string][]domain.GroceryPrice)}
	for _, p := range prices {
		store := p.StoreName
		if store == "" {
			store = "Unknown"
		}
		if _, ok := l.ByStore[store]; !ok {
			l.Stores = append(l.Stores, store)
		}
		l.ByStore[store] = append(l.ByStore[store], p)
		if p.InStock {
			l.Summary.InStock++
		}
	}
	sort.Strings(l.Stores)
	l.Summary.TotalItems = len(prices)
	l.Summary.Stores = len(l.Stores)
	return l
}

// Compare looks every item up concurrently. Results keep the order of items.
// An item no store carries is reported with Found false; any other failure
// aborts the comparison.
func (s *Service) Compare(ctx context.Context, items ...string) ([]Comparison, error) {
	results := make([]Comparison, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			item = strings.TrimSpace(item)
			results[i] = Comparison{Item: item}

			cmp, err := s.prices.ComparePrices(gctx, item)
			if errors.Is(err, domain.ErrNotFound) {
				s.log.Debug("no prices for %q", item)
				return nil
			}
			if err != nil {
				return fmt.Errorf("comparing %q: %w", item, err)
			}

			offers := append([]domain.GroceryPrice(nil), cmp.Stores...)
			sort.SliceStable(offers, func(a, b int) bool { return offers[a].Price < offers[b].Price })

			best := cmp.BestPrice
			if best == nil && len(offers) > 0 {
				best = &offers[0]
			}
			results[i] = Comparison{Item: item, Found: best != nil, Best: best, Offers: offers}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Scrape asks the backend to refresh prices. No stores means the
// backend's default set.
func (s *Service) Scrape(ctx context.Context, stores ...string) (int, error) {
	n, err := s.prices.ScrapePrices(ctx, stores)
	if err != nil {
		return 0, fmt.Errorf("scraping prices: %w", err)
	}
	s.log.Info("scrape updated %d prices", n)
	return n, nil
}

// Total sums the best known price of every found item.
func Total(results []Comparison) float64 {
	var total float64
	for _, r := range results {
		if r.Found {
			total += r.Best.Price
		}
	}
	return total
}
