// Package mealplan generates weekly meal plans through the backend planner
// and keeps them in the local store keyed by week.
package mealplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

// WeekKey returns the Monday of t's week as 2006-01-02.
func WeekKey(t time.Time) string {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).Format("2006-01-02")
}

// DefaultPreferences are used when the user never completed onboarding.
func DefaultPreferences() domain.Preferences {
	return domain.Preferences{
		Diet:                "Vegetarian",
		PreferredCuisines:   []string{"North Indian"},
		DietaryRestrictions: []string{},
		CookingTimeLimit:    30,
		CookingComplexity:   "intermediate",
		DailyCalorieTarget:  2000,
		WeeklyBudget:        1240,
		HealthGoals:         []string{"balanced"},
		PreferredFlavors:    []string{"spicy"},
		Region:              "All",
		CostPerMealLimit:    65,
	}
}

// DemoPlan builds a week from the built-in demo meals. It has no id.
func DemoPlan(week string) *domain.MealPlan {
	meals := recipe.DemoMeals()
	plan := &domain.MealPlan{
		WeekOf:       week,
		Days:         make([]domain.DayPlan, 0, len(domain.Weekdays)),
		Summary:      domain.PlanSummary{BudgetStatus: "demo"},
		ShoppingList: make(map[string]int),
	}
	for _, day := range domain.Weekdays {
		dp := domain.DayPlan{Day: day, Meals: make(map[domain.MealType]domain.Meal, len(meals))}
		for _, m := range meals {
			dp.Meals[m.Type] = m
			for _, ing := range domain.SplitIngredients(m.Ingredients) {
				plan.ShoppingList[ing]++
			}
		}
		plan.Days = append(plan.Days, dp)
	}
	return plan
}

// Option configures the Planner.
type Option func(*Planner)

// WithClock overrides the time source used to pick the current week.
func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

// Planner generates and stores weekly plans.
type Planner struct {
	svc domain.PlanService
	kv  domain.KVStore
	now func() time.Time
	log *logger.Logger
}

// New creates a planner. svc may be nil when running offline.
func New(svc domain.PlanService, kv domain.KVStore, log *logger.Logger, opts ...Option) *Planner {
	p := &Planner{svc: svc, kv: kv, now: time.Now, log: log}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Generate requests a plan for the current week and saves it locally along
// with its shopping list. With nil prefs DefaultPreferences are sent. When
// the planner is unreachable the demo plan is returned together with an
// error wrapping ErrSourceUnavailable; nothing is saved in that case.
func (p *Planner) Generate(ctx context.Context, email string, prefs *domain.Preferences) (*domain.MealPlan, error) {
	week := WeekKey(p.now())
	if prefs == nil {
		d := DefaultPreferences()
		prefs = &d
	}
	if p.svc == nil {
		return DemoPlan(week), fmt.Errorf("meal planner offline: %w", domain.ErrSourceUnavailable)
	}

	p.log.Info("generating meal plan for %s (week of %s)", email, week)
	id, plan, err := p.svc.GenerateMealPlan(ctx, email, prefs)
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			p.log.Warn("meal planner unavailable, using demo plan: %v", err)
			return DemoPlan(week), err
		}
		return nil, fmt.Errorf("generating meal plan: %w", err)
	}
	plan.ID = id
	plan.WeekOf = week

	if err := p.save(ctx, plan); err != nil {
		return plan, err
	}
	return plan, nil
}

func (p *Planner) save(ctx context.Context, plan *domain.MealPlan) error {
	plans, err := p.plans(ctx)
	if err != nil {
		return err
	}
	plans[plan.WeekOf] = *plan
	if err := p.kv.Set(ctx, storage.KeyWeeklyMealPlans, plans); err != nil {
		return fmt.Errorf("saving meal plan: %w", err)
	}
	if err := p.kv.Set(ctx, storage.KeyCurrentMealPlanID, plan.ID); err != nil {
		return fmt.Errorf("saving meal plan id: %w", err)
	}

	list := domain.ShoppingList{
		Ingredients: plan.ShoppingItems(),
		Meals:       dishes(plan),
		Timestamp:   p.now(),
	}
	if err := p.kv.Set(ctx, storage.KeyCurrentShoppingList, list); err != nil {
		return fmt.Errorf("saving shopping list: %w", err)
	}
	return nil
}

func (p *Planner) plans(ctx context.Context) (map[string]domain.MealPlan, error) {
	plans := make(map[string]domain.MealPlan)
	if err := p.kv.Get(ctx, storage.KeyWeeklyMealPlans, &plans); err != nil && !storage.IsMissing(err) {
		return nil, fmt.Errorf("loading meal plans: %w", err)
	}
	return plans, nil
}

// ForWeek returns the locally stored plan for t's week.
func (p *Planner) ForWeek(ctx context.Context, t time.Time) (*domain.MealPlan, error) {
	plans, err := p.plans(ctx)
	if err != nil {
		return nil, err
	}
	plan, ok := plans[WeekKey(t)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &plan, nil
}

// Current returns this week's plan. A plan stored locally wins; otherwise
// the last generated plan id is fetched from the backend.
func (p *Planner) Current(ctx context.Context) (*domain.MealPlan, error) {
	if plan, err := p.ForWeek(ctx, p.now()); err == nil {
		return plan, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	var id int
	if err := p.kv.Get(ctx, storage.KeyCurrentMealPlanID, &id); err != nil {
		if storage.IsMissing(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if p.svc == nil {
		return nil, fmt.Errorf("meal plan %d: %w", id, domain.ErrSourceUnavailable)
	}
	rec, err := p.svc.MealPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("fetching meal plan %d: %w", id, err)
	}
	plan := rec.Plan
	if plan.WeekOf == "" {
		plan.WeekOf = rec.StartDate
	}
	return &plan, nil
}

// Swap replaces one slot of this week's stored plan and saves the result.
// It returns the meal that was replaced.
func (p *Planner) Swap(ctx context.Context, key SlotKey, meal domain.Meal) (domain.Meal, error) {
	plan, err := p.ForWeek(ctx, p.now())
	if err != nil {
		return domain.Meal{}, fmt.Errorf("swapping %s: %w", key, err)
	}
	grid := NewGrid(plan)
	old, err := grid.Replace(key, meal)
	if err != nil {
		return domain.Meal{}, err
	}
	updated := grid.Plan(*plan)
	if err := p.save(ctx, &updated); err != nil {
		return domain.Meal{}, err
	}
	p.log.Info("swapped %s: %s -> %s", key, old.Dish, meal.Dish)
	return old, nil
}

// History lists the user's most recent plans from the backend.
func (p *Planner) History(ctx context.Context, email string, limit int) ([]domain.PlanRecord, error) {
	if p.svc == nil {
		return nil, fmt.Errorf("meal plan history: %w", domain.ErrSourceUnavailable)
	}
	records, err := p.svc.UserMealPlans(ctx, email, limit)
	if err != nil {
		return nil, fmt.Errorf("meal plan history: %w", err)
	}
	return records, nil
}

func dishes(plan *domain.MealPlan) []string {
	var out []string
	seen := make(map[string]bool)
	for _, day := range plan.Days {
		for _, mt := range domain.MealTypes {
			m, ok := day.Meals[mt]
			if !ok || m.Dish == "" || seen[m.Dish] {
				continue
			}
			seen[m.Dish] = true
			out = append(out, m.Dish)
		}
	}
	return out
}
