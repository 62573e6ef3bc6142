package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mealcraft/internal/config"
	"github.com/hammamikhairi/mealcraft/internal/conversation"
	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/mealplan"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
	"github.com/hammamikhairi/mealcraft/internal/shopping"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

// execute runs the root command offline against a fresh data dir.
func execute(t *testing.T, dataDir string, args ...string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvEmail, "")
	t.Setenv(config.EnvDataDir, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--offline", "--log-level", "off", "--data-dir", dataDir))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestSearchCommandOffline(t *testing.T) {
	out := execute(t, t.TempDir(), "search", "toor", "--diet", "vegetarian")

	assert.Contains(t, out, "demo recipes")
	assert.Contains(t, out, "Dal Tadka")
	assert.NotContains(t, out, "Butter Chicken")
	assert.Contains(t, out, "Showing 1 of 3 recipes")
}

func TestFavoritesCommands(t *testing.T) {
	dir := t.TempDir()

	out := execute(t, dir, "favorites", "add", "Masala", "Dosa")
	assert.Contains(t, out, "Saved Masala Dosa")
	assert.Contains(t, out, "recipe_discovery.html?recipe=Masala%20Dosa")

	log := logger.New(logger.LevelOff, nil)
	store, err := storage.OpenFileStore(dir, log)
	require.NoError(t, err)
	saved, err := recipe.NewFavorites(store, log).List(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Masala Dosa", saved[0].Name)
}

type fakeOrders struct {
	req domain.OrderRequest
}

func (f *fakeOrders) PlaceOrder(ctx context.Context, req domain.OrderRequest) (*domain.OrderResult, error) {
	f.req = req
	return &domain.OrderResult{Success: true, ItemsAdded: req.Ingredients}, nil
}

func setupSession(t *testing.T, orders domain.OrderPlacer) (*shopSession, *bytes.Buffer) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	asst, err := shopping.New(orders, storage.NewMemoryStore(log), log)
	require.NoError(t, err)

	var buf bytes.Buffer
	pr := display.NewPrinter(&buf)
	return &shopSession{
		asst:     asst,
		parser:   conversation.NewKeywordParser(log),
		notifier: conversation.NewCLINotifier(log, func(format string, args ...interface{}) { pr.Printf(format+"\n", args...) }),
		pr:       pr,
		meals:    recipe.DemoMeals(),
		log:      log,
	}, &buf
}

func TestShopSessionOrder(t *testing.T) {
	ctx := context.Background()
	orders := &fakeOrders{}
	sess, buf := setupSession(t, orders)

	steps := []struct {
		input string
		state domain.ShopState
		want  string
	}{
		{"shop for paneer", domain.ShopAwaitingDecision, "Palak Paneer requires these ingredients"},
		{"2", domain.ShopAwaitingDecision, "Should I buy the ingredients?"},
		{"yes", domain.ShopStoreSelection, "Choose your preferred store"},
		{"zepto", domain.ShopOrderConfirmation, "Order summary"},
		{"yes", domain.ShopPlaced, "Automation started"},
	}
	for _, st := range steps {
		buf.Reset()
		require.False(t, sess.handle(ctx, st.input), st.input)
		assert.Equal(t, st.state, sess.asst.State(), st.input)
		assert.Contains(t, buf.String(), st.want, st.input)
	}
	assert.Equal(t, "Zepto", orders.req.StoreName)
	assert.Equal(t, "Palak Paneer", orders.req.MealName)

	buf.Reset()
	sess.handle(ctx, "status")
	assert.Contains(t, buf.String(), "need manual search")

	assert.True(t, sess.handle(ctx, "quit"))
}

func TestShopSessionReplies(t *testing.T) {
	ctx := context.Background()
	sess, buf := setupSession(t, nil)

	sess.handle(ctx, "what is this")
	assert.Contains(t, buf.String(), "didn't catch that")

	buf.Reset()
	sess.handle(ctx, "9")
	assert.Contains(t, buf.String(), "don't have a meal")

	buf.Reset()
	sess.handle(ctx, "help")
	assert.Contains(t, buf.String(), "Commands")

	buf.Reset()
	sess.handle(ctx, "1")
	sess.handle(ctx, "no")
	assert.Equal(t, domain.ShopDeclined, sess.asst.State())

	assert.Equal(t, []string{"shop for Dal Tadka"}, sess.complete("shop for d"))
}

func TestPlannedMeals(t *testing.T) {
	plan := &domain.MealPlan{Days: []domain.DayPlan{
		{Day: "Monday", Meals: map[domain.MealType]domain.Meal{
			domain.Lunch:  {Dish: "Rajma", Ingredients: "rajma, rice"},
			domain.Dinner: {Dish: "Soup"},
		}},
		{Day: "Tuesday", Meals: map[domain.MealType]domain.Meal{
			domain.Breakfast: {Dish: "Rajma", Ingredients: "rajma"},
			domain.Dinner:    {Dish: "Khichdi", Ingredients: "rice, moong dal"},
		}},
	}}

	var names []string
	for _, m := range plannedMeals(plan) {
		names = append(names, m.Dish)
	}
	assert.Equal(t, []string{"Rajma", "Khichdi"}, names)
}

func TestSlotKey(t *testing.T) {
	key, err := slotKey("monday", "Lunch")
	require.NoError(t, err)
	assert.Equal(t, mealplan.SlotKey{Day: "Monday", Type: domain.Lunch}, key)

	_, err = slotKey("someday", "lunch")
	assert.Error(t, err)
	_, err = slotKey("Friday", "brunch")
	assert.True(t, err != nil && strings.Contains(err.Error(), "brunch"))
}
