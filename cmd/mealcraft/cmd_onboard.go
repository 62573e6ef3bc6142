package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/mealcraft/internal/display"
	"github.com/hammamikhairi/mealcraft/internal/onboarding"
)

var onboardFlags struct {
	interactive bool
	name        string
	city        string
	dietary     []string
	cuisines    []string
	cookingTime string
	complexity  string
	budget      string
	goals       []string
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Save your profile and meal preferences",
	Long: "Registers your profile with the backend and keeps a local copy used for\n" +
		"meal plans. Pass answers as flags or use --interactive to be asked.",
	RunE: runOnboard,
}

func init() {
	f := onboardCmd.Flags()
	f.BoolVarP(&onboardFlags.interactive, "interactive", "i", false, "ask each question in the terminal")
	f.StringVar(&onboardFlags.name, "name", "", "your name")
	f.StringVar(&onboardFlags.city, "city", "", "city (default mumbai)")
	f.StringSliceVar(&onboardFlags.dietary, "diet", nil, "vegetarian, non-vegetarian, vegan, jain or eggetarian")
	f.StringSliceVar(&onboardFlags.cuisines, "cuisine", nil, "preferred cuisines, e.g. south-indian")
	f.StringVar(&onboardFlags.cookingTime, "cooking-time", "", "minutes you can spend cooking (default 45)")
	f.StringVar(&onboardFlags.complexity, "complexity", "", "beginner, intermediate or advanced")
	f.StringVar(&onboardFlags.budget, "budget", "", "weekly budget in rupees (default 15000)")
	f.StringSliceVar(&onboardFlags.goals, "goal", nil, "health goals, e.g. weight-loss")
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	form := onboarding.Form{
		Email:             onboardEmail(a),
		UserName:          onboardFlags.name,
		City:              onboardFlags.city,
		Dietary:           onboardFlags.dietary,
		Cuisines:          onboardFlags.cuisines,
		CookingTime:       onboardFlags.cookingTime,
		CookingComplexity: onboardFlags.complexity,
		Budget:            onboardFlags.budget,
		HealthGoals:       onboardFlags.goals,
	}
	if onboardFlags.interactive {
		if err := askForm(&form); err != nil {
			return err
		}
	}

	res, err := onboarding.New(a.users(), a.store, a.log.With("onboarding")).Submit(ctx, form)
	if err != nil {
		return err
	}

	p := display.NewPrinter(cmd.OutOrStdout())
	prof := res.Profile
	if res.SyncErr != nil {
		p.Urgent("Could not reach the backend, profile saved on this device only")
		p.Hint(res.SyncErr.Error())
	} else {
		p.Chat(fmt.Sprintf("Welcome, %s! Your profile is saved.", orName(prof.User.UserName, prof.User.Email)))
	}
	pr := prof.Preferences
	p.Line("Email: " + prof.User.Email)
	p.Line(fmt.Sprintf("Diet: %s · Region: %s · Cuisines: %s", pr.Diet, pr.Region, joinOrNone(pr.PreferredCuisines)))
	p.Line(fmt.Sprintf("Cooking: %d min, %s", pr.CookingTimeLimit, pr.CookingComplexity))
	p.Line(fmt.Sprintf("Budget: ₹%.0f/week · ₹%.0f/meal", pr.WeeklyBudget, pr.CostPerMealLimit))
	p.Hint("Run 'mealcraft plan generate' for your first meal plan.")
	return nil
}

// askForm fills empty form fields from terminal prompts.
func askForm(f *onboarding.Form) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	ask := func(prompt string, dst *string) error {
		if *dst != "" {
			return nil
		}
		v, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				return errors.New("onboarding aborted")
			}
			return err
		}
		*dst = strings.TrimSpace(v)
		return nil
	}
	askList := func(prompt string, dst *[]string) error {
		if len(*dst) > 0 {
			return nil
		}
		var raw string
		if err := ask(prompt, &raw); err != nil {
			return err
		}
		*dst = splitList(raw)
		return nil
	}

	steps := []func() error{
		func() error { return ask("Email: ", &f.Email) },
		func() error { return ask("Name: ", &f.UserName) },
		func() error { return ask("City [mumbai]: ", &f.City) },
		func() error { return askList("Diet (vegetarian, vegan, jain, ...): ", &f.Dietary) },
		func() error { return askList("Cuisines (north-indian, gujarati, ...): ", &f.Cuisines) },
		func() error { return ask("Cooking time in minutes [45]: ", &f.CookingTime) },
		func() error { return ask("Complexity (beginner/intermediate/advanced): ", &f.CookingComplexity) },
		func() error { return ask("Weekly budget in ₹ [15000]: ", &f.Budget) },
		func() error { return askList("Health goals (weight-loss, muscle-gain, ...): ", &f.HealthGoals) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// onboardEmail is empty unless the user chose one, so the form can ask.
func onboardEmail(a *app) string {
	if a.explicitEmail {
		return a.cfg.UserEmail
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func orName(name, email string) string {
	if name != "" {
		return name
	}
	return email
}
