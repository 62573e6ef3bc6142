package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/mealplan"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and review weekly meal plans",
	RunE:  runPlanShow,
}

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a plan for this week from your saved preferences",
	RunE:  runPlanGenerate,
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show this week's plan",
	RunE:  runPlanShow,
}

var planHistoryFlags struct {
	limit int
}

var planHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List your previous plans",
	RunE:  runPlanHistory,
}

var planSwapFlags struct {
	day         string
	meal        string
	ingredients string
}

var planSwapCmd = &cobra.Command{
	Use:   "swap <dish>",
	Short: "Replace one meal of this week's plan",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlanSwap,
}

func init() {
	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planHistoryCmd)
	planCmd.AddCommand(planSwapCmd)

	f := planHistoryCmd.Flags()
	f.IntVar(&planHistoryFlags.limit, "limit", 10, "number of plans to list")

	f = planSwapCmd.Flags()
	f.StringVar(&planSwapFlags.day, "day", "", "weekday, e.g. Monday (required)")
	f.StringVar(&planSwapFlags.meal, "meal", "", "breakfast, lunch or dinner (required)")
	f.StringVar(&planSwapFlags.ingredients, "ingredients", "", "comma-separated ingredients of the new dish")
	_ = planSwapCmd.MarkFlagRequired("day")
	_ = planSwapCmd.MarkFlagRequired("meal")
}

func (a *app) planner() *mealplan.Planner {
	return mealplan.New(a.plans(), a.store, a.log.With("mealplan"))
}

func runPlanGenerate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	var prefs *domain.Preferences
	if profile, err := storage.Profile(ctx, a.store); err == nil {
		prefs = &profile.Preferences
	} else if !storage.IsMissing(err) {
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout())
	if prefs == nil {
		p.Hint("No saved preferences, using defaults. Run 'mealcraft onboard' to personalise.")
	}

	plan, err := a.planner().Generate(ctx, a.email(ctx), prefs)
	switch {
	case errors.Is(err, domain.ErrSourceUnavailable) && plan != nil:
		p.Urgent("Meal planner unavailable, showing a demo plan (not saved)")
		p.Hint(err.Error())
	case err != nil && plan == nil:
		return err
	case err != nil:
		p.Urgent(err.Error())
	}
	p.MealPlan(plan)
	return nil
}

func runPlanShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	plan, err := a.planner().Current(cmd.Context())
	if errors.Is(err, domain.ErrNotFound) {
		display.NewPrinter(cmd.OutOrStdout()).Hint("No plan for this week. Run 'mealcraft plan generate'.")
		return nil
	}
	if err != nil {
		return err
	}
	display.NewPrinter(cmd.OutOrStdout()).MealPlan(plan)
	return nil
}

func runPlanHistory(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	records, err := a.planner().History(ctx, a.email(ctx), planHistoryFlags.limit)
	if err != nil {
		return err
	}
	display.NewPrinter(cmd.OutOrStdout()).PlanHistory(records)
	return nil
}

func runPlanSwap(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	key, err := slotKey(planSwapFlags.day, planSwapFlags.meal)
	if err != nil {
		return err
	}
	meal := domain.Meal{
		Dish:        strings.Join(args, " "),
		Ingredients: planSwapFlags.ingredients,
	}
	old, err := a.planner().Swap(cmd.Context(), key, meal)
	if err != nil {
		return err
	}
	display.NewPrinter(cmd.OutOrStdout()).Chat(fmt.Sprintf("%s: %s replaced by %s", key, old.Dish, meal.Dish))
	return nil
}

// slotKey normalises user input like "monday" and "Lunch".
func slotKey(day, meal string) (mealplan.SlotKey, error) {
	var key mealplan.SlotKey
	for _, d := range domain.Weekdays {
		if strings.EqualFold(d, strings.TrimSpace(day)) {
			key.Day = d
		}
	}
	if key.Day == "" {
		return key, fmt.Errorf("unknown day %q", day)
	}
	for _, mt := range domain.MealTypes {
		if strings.EqualFold(string(mt), strings.TrimSpace(meal)) {
			key.Type = mt
		}
	}
	if key.Type == "" {
		return key, fmt.Errorf("unknown meal %q: want breakfast, lunch or dinner", meal)
	}
	return key, nil
}
