// Package shopping implements the shopping assistant dialogue: pick a meal,
// review its ingredients, choose a delivery store and hand the list to the
// order automation endpoint.
//
// The dialogue is an explicit state machine. Each operation validates the
// current state, advances it and returns the assistant messages to show, so
// the flow can be driven by a REPL or a test without timers.
package shopping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

// CostPerIngredient is the rough estimate, in rupees, used for the order total.
const CostPerIngredient = 35

// ── Messages ─────────────────────────────────────────────────────

// MessageKind tells the renderer how to present a message.
type MessageKind int

const (
	KindText MessageKind = iota
	KindList
	KindQuestion
	KindStores
	KindSummary
	KindLink
	KindAlert
)

// Message is one assistant utterance.
type Message struct {
	Kind    MessageKind
	Text    string
	Items   []string       // KindList
	Stores  []domain.Store // KindStores
	Summary *OrderSummary  // KindSummary
	URL     string         // KindLink
}

func text(s string) Message     { return Message{Kind: KindText, Text: s} }
func question(s string) Message { return Message{Kind: KindQuestion, Text: s} }
func alert(s string) Message    { return Message{Kind: KindAlert, Text: s} }

// OrderSummary is shown before the order is placed.
type OrderSummary struct {
	Store    domain.Store
	Items    int
	Delivery string
	Total    int
}

// ── Assistant ────────────────────────────────────────────────────

// Option configures the Assistant.
type Option func(*Assistant)

// WithClock overrides the time source used for saved list timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// WithCatalog replaces the default store catalog.
func WithCatalog(c *Catalog) Option {
	return func(a *Assistant) { a.catalog = c }
}

// Assistant runs one shopping dialogue at a time. Safe for concurrent use.
type Assistant struct {
	mu          sync.Mutex
	sessionID   string
	state       domain.ShopState
	meal        domain.Meal
	ingredients []string
	store       domain.Store
	orderID     string
	result      *domain.OrderResult

	catalog *Catalog
	orders  domain.OrderPlacer
	kv      domain.KVStore
	now     func() time.Time
	log     *logger.Logger
}

// New creates an assistant. orders may be nil, in which case every order
// falls back to the store website.
func New(orders domain.OrderPlacer, kv domain.KVStore, log *logger.Logger, opts ...Option) (*Assistant, error) {
	a := &Assistant{
		state:  domain.ShopIdle,
		orders: orders,
		kv:     kv,
		now:    time.Now,
		log:    log,
	}
	for _, o := range opts {
		o(a)
	}
	if a.catalog == nil {
		c, err := DefaultCatalog()
		if err != nil {
			return nil, err
		}
		a.catalog = c
	}
	a.sessionID = uuid.NewString()
	return a, nil
}

// State returns the current dialogue state.
func (a *Assistant) State() domain.ShopState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SessionID identifies the current dialogue.
func (a *Assistant) SessionID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sessionID
}

// Ingredients returns the current shopping list.
func (a *Assistant) Ingredients() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.ingredients...)
}

// Catalog returns the stores on offer.
func (a *Assistant) Catalog() *Catalog { return a.catalog }

// Result returns the outcome of the last placed order, if any.
func (a *Assistant) Result() (*domain.OrderResult, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result, a.orderID
}

// Greeting is the opening line of a dialogue.
func Greeting() Message {
	return text("Hi! Pick a meal and I'll put together its shopping list.")
}

// SelectMeal starts a dialogue for meal. It is allowed when idle or after a
// previous dialogue ended. The meal's ingredients become the current
// shopping list and the assistant asks whether to buy them.
func (a *Assistant) SelectMeal(ctx context.Context, meal domain.Meal) ([]Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != domain.ShopIdle && !a.state.Terminal() {
		return nil, a.invalid("select a meal")
	}
	ingredients := domain.SplitIngredients(meal.Ingredients)
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("meal %q: %w", meal.Dish, domain.ErrEmptyIngredients)
	}

	if a.state.Terminal() {
		a.restart()
	}
	a.meal = meal
	a.transition(domain.ShopMealSelected)

	a.ingredients = ingredients
	a.transition(domain.ShopIngredientsShown)

	list := domain.ShoppingList{Ingredients: ingredients, Meals: []string{meal.Dish}, Timestamp: a.now()}
	if err := a.kv.Set(ctx, storage.KeyCurrentShoppingList, list); err != nil {
		a.log.Warn("saving current shopping list: %v", err)
	}

	a.transition(domain.ShopAwaitingDecision)

	return []Message{
		text(fmt.Sprintf("Great choice! %s requires these ingredients:", meal.Dish)),
		{Kind: KindList, Items: append([]string(nil), ingredients...)},
		text(fmt.Sprintf("I've prepared your shopping list with %d items.", len(ingredients))),
		question("Should I proceed to buy these ingredients from an online store?"),
	}, nil
}

// Decide answers the proceed question. Yes moves on to store selection; no
// saves the list for later and ends the dialogue.
func (a *Assistant) Decide(ctx context.Context, proceed bool) ([]Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != domain.ShopAwaitingDecision {
		return nil, a.invalid("answer the proceed question")
	}

	if !proceed {
		list := domain.ShoppingList{
			Ingredients: append([]string(nil), a.ingredients...),
			Meals:       []string{a.meal.Dish},
			Timestamp:   a.now(),
		}
		if err := a.kv.Set(ctx, storage.KeySavedShoppingList, list); err != nil {
			return nil, fmt.Errorf("saving shopping list: %w", err)
		}
		a.transition(domain.ShopDeclined)
		return []Message{
			text("No problem! Your shopping list is saved. I'll be here when you're ready to order. 😊"),
		}, nil
	}

	a.transition(domain.ShopStoreSelection)
	return []Message{
		text("Perfect! Let me show you the best stores available for quick delivery."),
		{Kind: KindStores, Stores: a.catalog.Stores()},
		question("Choose your preferred store by number or name."),
	}, nil
}

// SelectStore picks the delivery store by id, name or list position and
// shows the order summary.
func (a *Assistant) SelectStore(ctx context.Context, ref string) ([]Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != domain.ShopStoreSelection {
		return nil, a.invalid("select a store")
	}
	store, err := a.catalog.Lookup(ref)
	if err != nil {
		return nil, err
	}

	a.store = store
	a.transition(domain.ShopOrderConfirmation)

	summary := &OrderSummary{
		Store:    store,
		Items:    len(a.ingredients),
		Delivery: store.DeliveryTime,
		Total:    EstimateTotal(a.ingredients),
	}
	return []Message{
		text(fmt.Sprintf("Excellent choice! %s offers %s delivery. 🚚", store.Name, store.DeliveryTime)),
		{Kind: KindSummary, Summary: summary},
		question("Ready to place this order?"),
	}, nil
}

// Confirm places the order. When the automation endpoint fails or is not
// configured the order still completes, with the store website to finish
// it manually.
func (a *Assistant) Confirm(ctx context.Context) ([]Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != domain.ShopOrderConfirmation {
		return nil, a.invalid("confirm the order")
	}

	a.orderID = uuid.NewString()
	req := domain.OrderRequest{
		StoreName:   a.store.Name,
		Ingredients: append([]string(nil), a.ingredients...),
		MealName:    a.meal.Dish,
	}
	a.log.Info("order %s: %d items at %s", a.orderID, len(req.Ingredients), req.StoreName)

	msgs := []Message{text("🤖 Opening the store and automating your order...")}

	var (
		result *domain.OrderResult
		err    error
	)
	if a.orders == nil {
		err = fmt.Errorf("no order automation configured: %w", domain.ErrSourceUnavailable)
	} else {
		result, err = a.orders.PlaceOrder(ctx, req)
	}

	switch {
	case err == nil && result.Success:
		a.result = result
		msgs = append(msgs, text(fmt.Sprintf("✅ Automation started! %s is adding items to your cart.", a.store.Name)))
		msgs = append(msgs, statusMessages(result)...)
		msgs = append(msgs, text("Please review the cart and proceed to checkout! 🛒"))
	case err == nil:
		a.result = result
		msgs = append(msgs,
			alert("❌ The automation encountered an issue. Opening the store website for manual shopping..."),
			a.manualLink(),
		)
	default:
		a.log.Warn("order %s: automation failed: %v", a.orderID, err)
		a.result = &domain.OrderResult{Success: false, ItemsNotFound: req.Ingredients}
		if errors.Is(err, domain.ErrSourceUnavailable) {
			msgs = append(msgs, alert("⚠️ Couldn't connect to the automation service. Opening the store website instead..."))
		} else {
			msgs = append(msgs, alert(fmt.Sprintf("⚠️ Automation failed: %v", err)))
		}
		msgs = append(msgs, a.manualLink())
	}

	a.transition(domain.ShopPlaced)
	return msgs, nil
}

// Cancel abandons the order during store selection or confirmation. The
// current shopping list stays saved.
func (a *Assistant) Cancel(ctx context.Context) ([]Message, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != domain.ShopStoreSelection && a.state != domain.ShopOrderConfirmation {
		return nil, a.invalid("cancel")
	}
	a.transition(domain.ShopCancelled)
	return []Message{
		text("No problem! Your shopping list is still saved if you want to order later."),
	}, nil
}

// Reset abandons any dialogue and starts a new session.
func (a *Assistant) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.restart()
}

// restart clears the dialogue. Caller holds the lock.
func (a *Assistant) restart() {
	a.sessionID = uuid.NewString()
	a.state = domain.ShopIdle
	a.meal = domain.Meal{}
	a.ingredients = nil
	a.store = domain.Store{}
	a.orderID = ""
	a.result = nil
	a.log.Debug("shopping session %s started", a.sessionID)
}

func (a *Assistant) transition(to domain.ShopState) {
	a.log.Debug("shopping %s: %s -> %s", a.sessionID, a.state, to)
	a.state = to
}

func (a *Assistant) invalid(action string) error {
	return fmt.Errorf("cannot %s while %s: %w", action, a.state, domain.ErrInvalidTransition)
}

func (a *Assistant) manualLink() Message {
	return Message{
		Kind: KindLink,
		Text: fmt.Sprintf("Open %s and add these items: %s", a.store.Name, strings.Join(a.ingredients, ", ")),
		URL:  a.catalog.FallbackURL(a.store.Name),
	}
}

func statusMessages(r *domain.OrderResult) []Message {
	var msgs []Message
	if len(r.ItemsAdded) > 0 {
		msgs = append(msgs, text(fmt.Sprintf("✅ Added %d items: %s", len(r.ItemsAdded), strings.Join(r.ItemsAdded, ", "))))
	}
	if len(r.ItemsNotFound) > 0 {
		msgs = append(msgs, alert(fmt.Sprintf("⚠️ %d items need manual search: %s", len(r.ItemsNotFound), strings.Join(r.ItemsNotFound, ", "))))
	}
	return msgs
}

// EstimateTotal is the rough order total for a list of ingredients.
func EstimateTotal(ingredients []string) int {
	return len(ingredients) * CostPerIngredient
}
