package grocery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

type fakePrices struct {
	mu       sync.Mutex
	listing  []domain.GroceryPrice
	compare  map[string]*domain.PriceComparison
	failItem string
	scraped  []string

	inflight atomic.Int32
	peak     atomic.Int32
}

func (f *fakePrices) GroceryPrices(ctx context.Context, store string) ([]domain.GroceryPrice, error) {
	var out []domain.GroceryPrice
	for _, p := range f.listing {
		if store == "" || p.StoreName == store {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrices) ComparePrices(ctx context.Context, item string) (*domain.PriceComparison, error) {
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if item == f.failItem {
		return nil, fmt.Errorf("get: %w", domain.ErrSourceUnavailable)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.compare[item]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (f *fakePrices) ScrapePrices(ctx context.Context, stores []string) (int, error) {
	f.scraped = stores
	return 7, nil
}

func sampleService(t *testing.T, opts ...Option) (*Service, *fakePrices) {
	t.Helper()
	fake := &fakePrices{
		listing: []domain.GroceryPrice{
			{ItemName: "Onion", StoreName: "KPN Fresh", Price: 42.5, InStock: true},
			{ItemName: "Ghee", StoreName: "Grace Daily", Price: 610},
			{ItemName: "Tomato", StoreName: "KPN Fresh", Price: 30, InStock: true},
		},
		compare: map[string]*domain.PriceComparison{
			"Onion": {Item: "Onion", Stores: []domain.GroceryPrice{
				{ItemName: "Onion", StoreName: "Grace Daily", Price: 45, InStock: true},
				{ItemName: "Onion", StoreName: "KPN Fresh", Price: 42.5, Unit: "kg", InStock: true},
			}},
			"Tomato": {
				Item:      "Tomato",
				Stores:    []domain.GroceryPrice{{ItemName: "Tomato", StoreName: "KPN Fresh", Price: 30, InStock: true}},
				BestPrice: &domain.GroceryPrice{ItemName: "Tomato", StoreName: "KPN Fresh", Price: 30, InStock: true},
			},
		},
	}
	return New(fake, logger.New(logger.LevelOff, nil), opts...), fake
}

func TestPricesGroupsByStore(t *testing.T) {
	svc, _ := sampleService(t)

	l, err := svc.Prices(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Grace Daily", "KPN Fresh"}, l.Stores)
	assert.Len(t, l.ByStore["KPN Fresh"], 2)
	assert.Equal(t, Summary{TotalItems: 3, Stores: 2, InStock: 2}, l.Summary)

	l, err = svc.Prices(context.Background(), "Grace Daily")
	require.NoError(t, err)
	assert.Equal(t, Summary{TotalItems: 1, Stores: 1, InStock: 0}, l.Summary)
}

func TestCompare(t *testing.T) {
	svc, _ := sampleService(t)

	got, err := svc.Compare(context.Background(), "Onion", " Ghee ", "Tomato")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "Onion", got[0].Item)
	require.True(t, got[0].Found)
	assert.Equal(t, "KPN Fresh", got[0].Best.StoreName, "cheapest offer is best when none is given")
	assert.Equal(t, 42.5, got[0].Offers[0].Price)

	assert.Equal(t, "Ghee", got[1].Item)
	assert.False(t, got[1].Found)

	assert.True(t, got[2].Found)
	assert.InDelta(t, 72.5, Total(got), 0.001)
}

func TestCompareFailure(t *testing.T) {
	svc, fake := sampleService(t)
	fake.failItem = "Tomato"

	_, err := svc.Compare(context.Background(), "Onion", "Tomato")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
}

func TestCompareBoundsWorkers(t *testing.T) {
	svc, fake := sampleService(t, WithWorkers(2))

	items := make([]string, 20)
	for i := range items {
		items[i] = fmt.Sprintf("item-%d", i)
	}
	_, err := svc.Compare(context.Background(), items...)
	require.NoError(t, err)
	assert.LessOrEqual(t, fake.peak.Load(), int32(2))
}

func TestScrape(t *testing.T) {
	svc, fake := sampleService(t)
	n, err := svc.Scrape(context.Background(), "KPN Fresh")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, []string{"KPN Fresh"}, fake.scraped)
}

func TestExportXLSX(t *testing.T) {
	svc, _ := sampleService(t)
	results, err := svc.Compare(context.Background(), "Onion", "Ghee")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "list.xlsx")
	list := domain.ShoppingList{Ingredients: []string{"Onion", "Ghee", "Salt"}}
	require.NoError(t, ExportXLSX(path, list, results))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"Item", "Best Store", "Price", "Unit", "In Stock", "Stores Compared"}, rows[0])
	assert.Equal(t, []string{"Onion", "KPN Fresh", "42.5", "kg", "yes", "2"}, rows[1])
	assert.Equal(t, "Ghee", rows[2][0])
	assert.Equal(t, "", rows[2][1])
	assert.Equal(t, "Salt", rows[3][0])
	assert.Equal(t, []string{"Total", "", "42.5"}, rows[4])
}
