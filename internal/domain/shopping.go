package domain

import "time"

// Store is a grocery delivery service the assistant can order from.
type Store struct {
	ID           string `yaml:"id" json:"id"`
	Name         string `yaml:"name" json:"name"`
	Icon         string `yaml:"icon" json:"icon"`
	DeliveryTime string `yaml:"delivery_time" json:"delivery_time"`
	MinOrder     int    `yaml:"min_order" json:"min_order"`
	Offer        string `yaml:"offer" json:"offer"`
	URL          string `yaml:"url" json:"url"`
}

// ShoppingList is the set of ingredients gathered for one or more meals.
type ShoppingList struct {
	Ingredients []string  `json:"ingredients"`
	Meals       []string  `json:"meals"`
	Timestamp   time.Time `json:"timestamp"`
}

// OrderRequest asks the automation endpoint to fill a cart.
type OrderRequest struct {
	StoreName   string   `json:"store_name"`
	Ingredients []string `json:"ingredients"`
	MealName    string   `json:"meal_name"`
}

// OrderResult is what the automation endpoint reports back.
type OrderResult struct {
	Success       bool     `json:"success"`
	ItemsAdded    []string `json:"items_added"`
	ItemsNotFound []string `json:"items_not_found"`
	Message       string   `json:"message,omitempty"`
}

// ShopState is a step of the shopping dialogue.
type ShopState int

const (
	ShopIdle ShopState = iota
	ShopMealSelected
	ShopIngredientsShown
	ShopAwaitingDecision
	ShopStoreSelection
	ShopOrderConfirmation
	ShopPlaced
	ShopCancelled
	ShopDeclined
)

// String returns a human-readable state name.
func (s ShopState) String() string {
	switch s {
	case ShopIdle:
		return "idle"
	case ShopMealSelected:
		return "meal_selected"
	case ShopIngredientsShown:
		return "ingredients_shown"
	case ShopAwaitingDecision:
		return "awaiting_decision"
	case ShopStoreSelection:
		return "store_selection"
	case ShopOrderConfirmation:
		return "order_confirmation"
	case ShopPlaced:
		return "placed"
	case ShopCancelled:
		return "cancelled"
	case ShopDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// Terminal reports whether the dialogue has ended.
func (s ShopState) Terminal() bool {
	return s == ShopPlaced || s == ShopCancelled || s == ShopDeclined
}
