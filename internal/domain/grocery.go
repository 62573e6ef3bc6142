package domain

import "encoding/json"

// GroceryPrice is one scraped price point for an item at a store.
type GroceryPrice struct {
	ItemName  string  `json:"item_name"`
	StoreName string  `json:"store_name"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit,omitempty"`
	InStock   bool    `json:"in_stock"`
	ScrapedAt string  `json:"scraped_at,omitempty"`
}

// UnmarshalJSON accepts decimal prices encoded as strings.
func (g *GroceryPrice) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*g = GroceryPrice{}
		return nil
	}
	inStock, ok := raw["in_stock"].(bool)
	if !ok {
		inStock = raw["in_stock"] == nil
	}
	*g = GroceryPrice{
		ItemName:  text(raw["item_name"]),
		StoreName: text(raw["store_name"]),
		Price:     number(raw["price"]),
		Unit:      text(raw["unit"]),
		InStock:   inStock,
		ScrapedAt: text(raw["scraped_at"]),
	}
	return nil
}

// PriceComparison lists the stores carrying an item, cheapest first.
type PriceComparison struct {
	Item      string         `json:"item"`
	Stores    []GroceryPrice `json:"stores"`
	BestPrice *GroceryPrice  `json:"best_price"`
}

// Options are the choices the backend accepts for preferences.
type Options struct {
	Diets             []string `json:"diets"`
	Regions           []string `json:"regions"`
	Flavors           []string `json:"flavors"`
	Goals             []string `json:"goals"`
	Cuisines          []string `json:"cuisines"`
	CookingComplexity []string `json:"cooking_complexity"`
	Stores            []string `json:"stores"`
}
