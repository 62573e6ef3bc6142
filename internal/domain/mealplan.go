package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// MealType is one of the three daily slots.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner}

// Weekdays lists the plan days in display order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Meal is a dish placed in a plan slot or handed to the shopping assistant.
type Meal struct {
	Dish        string   `json:"dish" yaml:"dish"`
	Type        MealType `json:"type,omitempty" yaml:"type"`
	Time        string   `json:"time,omitempty" yaml:"time"`
	Calories    string   `json:"calories,omitempty" yaml:"calories"`
	Cost        string   `json:"cost,omitempty" yaml:"cost"`
	Reason      string   `json:"reason,omitempty" yaml:"reason"`
	Ingredients string   `json:"ingredients,omitempty" yaml:"ingredients"`
}

// UnmarshalJSON accepts numbers or strings for the display fields and
// "name" as an alias for "dish".
func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*m = Meal{}
		return nil
	}
	dish := text(raw["dish"])
	if dish == "" {
		dish = text(raw["name"])
	}
	*m = Meal{
		Dish:        dish,
		Type:        MealType(strings.ToLower(text(raw["type"]))),
		Time:        text(raw["time"]),
		Calories:    text(raw["calories"]),
		Cost:        text(raw["cost"]),
		Reason:      text(raw["reason"]),
		Ingredients: text(raw["ingredients"]),
	}
	return nil
}

// DayPlan holds the meals planned for one weekday.
type DayPlan struct {
	Day   string            `json:"day" yaml:"day"`
	Meals map[MealType]Meal `json:"meals" yaml:"meals"`
}

// PlanSummary is the aggregate information returned with a plan.
type PlanSummary struct {
	TotalCost              string `json:"total_cost,omitempty" yaml:"total_cost"`
	AvgCostPerMeal         string `json:"avg_cost_per_meal,omitempty" yaml:"avg_cost_per_meal"`
	WeeklyBudget           string `json:"weekly_budget,omitempty" yaml:"weekly_budget"`
	BudgetStatus           string `json:"budget_status,omitempty" yaml:"budget_status"`
	CalorieBalanceAccuracy string `json:"calorie_balance_accuracy,omitempty" yaml:"calorie_balance_accuracy"`
}

// UnmarshalJSON tolerates numeric values in any summary field.
func (s *PlanSummary) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = PlanSummary{}
		return nil
	}
	*s = PlanSummary{
		TotalCost:              text(raw["total_cost"]),
		AvgCostPerMeal:         text(raw["avg_cost_per_meal"]),
		WeeklyBudget:           text(raw["weekly_budget"]),
		BudgetStatus:           text(raw["budget_status"]),
		CalorieBalanceAccuracy: text(raw["calorie_balance_accuracy"]),
	}
	return nil
}

// MealPlan is a generated weekly plan.
type MealPlan struct {
	ID           int            `json:"id,omitempty" yaml:"id"`
	WeekOf       string         `json:"week_of,omitempty" yaml:"week_of"`
	Days         []DayPlan      `json:"weekly_plan" yaml:"weekly_plan"`
	Summary      PlanSummary    `json:"summary" yaml:"summary"`
	ShoppingList map[string]int `json:"shopping_list,omitempty" yaml:"shopping_list"`
}

// ShoppingItems returns the plan's shopping list names sorted by descending
// use count, then by name.
func (p MealPlan) ShoppingItems() []string {
	items := make([]string, 0, len(p.ShoppingList))
	for name := range p.ShoppingList {
		items = append(items, name)
	}
	sort.Slice(items, func(i, j int) bool {
		ci, cj := p.ShoppingList[items[i]], p.ShoppingList[items[j]]
		if ci != cj {
			return ci > cj
		}
		return items[i] < items[j]
	})
	return items
}

// PlanRecord is a stored plan as returned by the history endpoint.
type PlanRecord struct {
	ID        int      `json:"id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	TotalCost float64  `json:"total_cost,omitempty"`
	Status    string   `json:"status,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Plan      MealPlan `json:"plan_data"`
}
