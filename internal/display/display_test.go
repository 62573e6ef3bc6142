package display

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/engine"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
	"github.com/hammamikhairi/mealcraft/internal/shopping"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

var sampleRecipes = []domain.Recipe{
	{Name: "Dal Tadka", Diet: "vegetarian", Course: "main course", Region: "North", FlavorProfile: "spicy", Ingredients: "toor dal, onion", TotalTime: 45},
	{Name: "Butter Chicken", Diet: "non-vegetarian", Course: "main course", Region: "North", FlavorProfile: "mild", TotalTime: 60},
	{Name: "Masala Dosa", Diet: "vegetarian", Course: "breakfast", Region: "South", FlavorProfile: "spicy", TotalTime: 30},
}

func setupDiscover(t *testing.T, opts ...DiscoverOption) *Discover {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	load := func(ctx context.Context) recipe.LoadResult {
		return recipe.LoadResult{Recipes: sampleRecipes}
	}
	return NewDiscover(context.Background(), engine.New(log), load, log, opts...)
}

func send(m *Discover, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func typeText(m *Discover, s string) {
	for _, r := range s {
		send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func names(recipes []domain.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func TestDiscoverLoading(t *testing.T) {
	m := setupDiscover(t)
	if !m.Loading() {
		t.Fatal("expected loading state before the baseline arrives")
	}
	if !strings.Contains(m.View(), "Loading recipes") {
		t.Fatalf("expected spinner text, got:\n%s", m.View())
	}

	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))
	if m.Loading() {
		t.Fatal("still loading after baseline")
	}
	if len(m.Results()) != 3 {
		t.Fatalf("expected unfiltered baseline, got %v", names(m.Results()))
	}
	if !strings.Contains(m.View(), "Showing 3 of 3 recipes") {
		t.Fatalf("missing count line:\n%s", m.View())
	}
}

func TestDiscoverDemoBanner(t *testing.T) {
	m := setupDiscover(t)
	send(m, loadedMsg(recipe.LoadResult{
		Recipes: sampleRecipes,
		Origin:  recipe.OriginDemo,
		Err:     errors.New("connection refused"),
	}))
	if v := m.View(); !strings.Contains(v, "showing demo recipes") || !strings.Contains(v, "connection refused") {
		t.Fatalf("expected demo notice, got:\n%s", v)
	}
}

func TestDiscoverDebounce(t *testing.T) {
	m := setupDiscover(t)
	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))

	typeText(m, "dos")
	if got := len(m.Results()); got != 3 {
		t.Fatalf("typing must not filter before the debounce fires, got %d results", got)
	}
	if m.State().Query != "" {
		t.Fatalf("query applied early: %q", m.State().Query)
	}

	// Ticks from superseded keystrokes are ignored.
	send(m, debounceMsg{seq: 1}, debounceMsg{seq: 2})
	if got := len(m.Results()); got != 3 {
		t.Fatalf("stale tick applied the filter, got %d results", got)
	}

	send(m, debounceMsg{seq: 3})
	if diff := names(m.Results()); len(diff) != 1 || diff[0] != "Masala Dosa" {
		t.Fatalf("expected Masala Dosa, got %v", diff)
	}
	if m.State().Query != "dos" {
		t.Fatalf("expected query dos, got %q", m.State().Query)
	}
}

func TestDiscoverQueryKeepsSpaces(t *testing.T) {
	m := setupDiscover(t, WithDebounce(0))
	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))

	typeText(m, "chicken ")
	send(m, debounceMsg{seq: m.seq})
	if m.State().Query != "chicken " {
		t.Fatalf("expected query as typed, got %q", m.State().Query)
	}
	if len(m.Results()) != 0 {
		t.Fatalf("trailing space must be part of the match, got %v", names(m.Results()))
	}

	send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	send(m, debounceMsg{seq: m.seq})
	if got := names(m.Results()); len(got) != 1 || got[0] != "Butter Chicken" {
		t.Fatalf("expected Butter Chicken, got %v", got)
	}
}

func TestDiscoverKeystrokeSchedulesTick(t *testing.T) {
	m := setupDiscover(t, WithDebounce(0))
	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))

	cmd := send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	if cmd == nil {
		t.Fatal("expected a search command after a keystroke")
	}
	send(m, debounceMsg{seq: 1})
	if len(m.Results()) != 0 {
		t.Fatalf("expected no match for z, got %v", names(m.Results()))
	}
	if v := m.View(); !strings.Contains(v, "No recipes found") || !strings.Contains(v, "Showing 0 of 3 recipes") {
		t.Fatalf("expected empty placeholder, got:\n%s", v)
	}
}

func TestDiscoverSelectorsApplyImmediately(t *testing.T) {
	m := setupDiscover(t)
	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))

	// Diet: All -> vegetarian.
	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyRight})
	if m.State().Diet != "vegetarian" {
		t.Fatalf("expected vegetarian, got %q", m.State().Diet)
	}
	if got := names(m.Results()); len(got) != 2 {
		t.Fatalf("expected 2 vegetarian recipes, got %v", got)
	}

	// Region options come from the baseline facets: North, South.
	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyLeft})
	if m.State().Region != "South" {
		t.Fatalf("expected South (wrapping left from All), got %q", m.State().Region)
	}
	if got := names(m.Results()); len(got) != 1 || got[0] != "Masala Dosa" {
		t.Fatalf("expected Masala Dosa, got %v", got)
	}

	// Time: All -> 15 leaves nothing.
	send(m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyRight})
	if m.State().MaxTime != 15 || len(m.Results()) != 0 {
		t.Fatalf("expected empty result at 15 min, got %d (%v)", m.State().MaxTime, names(m.Results()))
	}

	send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if !m.State().IsZero() {
		t.Fatalf("reset left state %+v", m.State())
	}
	if len(m.Results()) != 3 {
		t.Fatalf("reset must restore the baseline, got %v", names(m.Results()))
	}
}

func TestDiscoverResetCancelsPendingSearch(t *testing.T) {
	m := setupDiscover(t)
	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))

	typeText(m, "dal")
	pending := m.seq
	send(m, tea.KeyMsg{Type: tea.KeyCtrlR})
	send(m, debounceMsg{seq: pending})
	if m.State().Query != "" || len(m.Results()) != 3 {
		t.Fatalf("pending search ran after reset: %+v", m.State())
	}
}

func TestDiscoverEnterSelects(t *testing.T) {
	m := setupDiscover(t)
	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))

	send(m, tea.KeyMsg{Type: tea.KeyDown})
	cmd := send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.Selected() == nil || m.Selected().Name != "Butter Chicken" {
		t.Fatalf("unexpected selection %+v", m.Selected())
	}
}

func TestDiscoverFavoriteToggle(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	favs := recipe.NewFavorites(storage.NewMemoryStore(log), log)
	m := setupDiscover(t, WithFavorites(favs))
	send(m, loadedMsg(recipe.LoadResult{Recipes: sampleRecipes}))

	cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlF})
	if cmd == nil {
		t.Fatal("expected favorite command")
	}
	send(m, cmd())

	ok, err := favs.Contains(context.Background(), "Dal Tadka")
	if err != nil || !ok {
		t.Fatalf("favorite not saved: %v %v", ok, err)
	}
	if !strings.Contains(m.View(), "♥ Dal Tadka") {
		t.Fatalf("card not marked as favorite:\n%s", m.View())
	}
}

func TestPrinterMessages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	store := domain.Store{Name: "Zepto", Icon: "⚡", DeliveryTime: "10 mins"}
	p.Messages([]shopping.Message{
		{Kind: shopping.KindText, Text: "Great choice!"},
		{Kind: shopping.KindList, Items: []string{"onion", "ghee"}},
		{Kind: shopping.KindSummary, Summary: &shopping.OrderSummary{Store: store, Items: 2, Delivery: "10 mins", Total: 70}},
		{Kind: shopping.KindLink, Text: "Open Zepto", URL: "https://www.zeptonow.com"},
	})

	out := buf.String()
	for _, want := range []string{"Great choice!", "• ghee", "Order summary", "₹70", "https://www.zeptonow.com"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrinterRecipesEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Recipes(nil)
	if !strings.Contains(buf.String(), "No recipes found") {
		t.Fatalf("expected placeholder, got %q", buf.String())
	}
}

func TestRenderBanner(t *testing.T) {
	b := RenderBanner(120)
	if !strings.Contains(b, "|_|") {
		t.Fatalf("banner art missing:\n%s", b)
	}
	if !strings.HasPrefix(b, " ") {
		t.Fatal("expected banner to be centred")
	}
}
