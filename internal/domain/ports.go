package domain

import "context"

// RecipeSource provides recipes. Implementations can be the HTTP backend or
// the embedded demo set.
type RecipeSource interface {
	Search(ctx context.Context, limit int) ([]Recipe, error)
	Details(ctx context.Context, name string) (*RecipeDetail, error)
	Random(ctx context.Context, count int) ([]Recipe, error)
}

// KVStore persists small JSON values by key, the way a browser's local
// storage would.
type KVStore interface {
	Get(ctx context.Context, key string, dst any) error
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// PlanService generates and retrieves weekly meal plans.
type PlanService interface {
	GenerateMealPlan(ctx context.Context, email string, prefs *Preferences) (int, *MealPlan, error)
	MealPlan(ctx context.Context, id int) (*PlanRecord, error)
	UserMealPlans(ctx context.Context, email string, limit int) ([]PlanRecord, error)
}

// UserService registers users and their preferences.
type UserService interface {
	CreateUser(ctx context.Context, user UserProfile) (int, error)
	SavePreferences(ctx context.Context, email string, prefs Preferences) error
}

// PriceService reads and refreshes grocery prices.
type PriceService interface {
	GroceryPrices(ctx context.Context, store string) ([]GroceryPrice, error)
	ComparePrices(ctx context.Context, item string) (*PriceComparison, error)
	ScrapePrices(ctx context.Context, stores []string) (int, error)
}

// OrderPlacer hands a shopping list to the order automation endpoint.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (*OrderResult, error)
}

// IntentParser converts raw user input into structured intents. The current
// dialogue state disambiguates bare numbers.
type IntentParser interface {
	Parse(ctx context.Context, input string, state ShopState) (*Intent, error)
}

// Notifier delivers messages to the user.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}
