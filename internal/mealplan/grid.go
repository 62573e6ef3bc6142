package mealplan

import (
	"fmt"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

// SlotKey addresses one meal in the week.
type SlotKey struct {
	Day  string
	Type domain.MealType
}

func (k SlotKey) String() string { return fmt.Sprintf("%s %s", k.Day, k.Type) }

// Grid is a plan indexed by slot for display and swapping meals.
type Grid struct {
	days  []string
	slots map[SlotKey]domain.Meal
}

// NewGrid indexes plan. Days keep the plan's order.
func NewGrid(plan *domain.MealPlan) *Grid {
	g := &Grid{slots: make(map[SlotKey]domain.Meal)}
	if plan == nil {
		return g
	}
	for _, day := range plan.Days {
		g.days = append(g.days, day.Day)
		for mt, m := range day.Meals {
			g.slots[SlotKey{Day: day.Day, Type: mt}] = m
		}
	}
	return g
}

// Days returns the plan days in order.
func (g *Grid) Days() []string {
	return append([]string(nil), g.days...)
}

// Lookup returns the meal in a slot.
func (g *Grid) Lookup(key SlotKey) (domain.Meal, bool) {
	m, ok := g.slots[key]
	return m, ok
}

// Replace swaps the meal in an existing slot and returns the old one.
func (g *Grid) Replace(key SlotKey, meal domain.Meal) (domain.Meal, error) {
	old, ok := g.slots[key]
	if !ok {
		return domain.Meal{}, fmt.Errorf("slot %s: %w", key, domain.ErrNotFound)
	}
	meal.Type = key.Type
	g.slots[key] = meal
	return old, nil
}

// Meals returns the meals of a day in slot order.
func (g *Grid) Meals(day string) []domain.Meal {
	var out []domain.Meal
	for _, mt := range domain.MealTypes {
		if m, ok := g.slots[SlotKey{Day: day, Type: mt}]; ok {
			out = append(out, m)
		}
	}
	return out
}

// Plan rebuilds a MealPlan from the grid, keeping the other fields of base.
func (g *Grid) Plan(base domain.MealPlan) domain.MealPlan {
	base.Days = make([]domain.DayPlan, 0, len(g.days))
	for _, day := range g.days {
		dp := domain.DayPlan{Day: day, Meals: make(map[domain.MealType]domain.Meal)}
		for _, mt := range domain.MealTypes {
			if m, ok := g.slots[SlotKey{Day: day, Type: mt}]; ok {
				dp.Meals[mt] = m
			}
		}
		base.Days = append(base.Days, dp)
	}
	return base
}
