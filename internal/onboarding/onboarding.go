// Package onboarding turns the first-run questionnaire into a user profile
// and planner preferences, registers them with the backend and keeps a
// local copy.
package onboarding

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

const (
	DefaultCookingTime = 45
	DefaultBudget      = 15000
	DefaultCity        = "mumbai"
	DefaultComplexity  = "intermediate"
	DefaultCalories    = 2000

	// mealsPerWeek splits the weekly budget into a per-meal limit.
	mealsPerWeek = 21
)

// Form is the questionnaire as the user filled it in. Empty fields take
// the defaults above.
type Form struct {
	Email             string
	UserName          string
	City              string
	Dietary           []string
	Cuisines          []string
	CookingTime       string
	CookingComplexity string
	Budget            string
	HealthGoals       []string
}

var dietNames = map[string]string{
	"vegetarian":     "Vegetarian",
	"non-vegetarian": "Non-Vegetarian",
	"vegan":          "Vegan",
	"jain":           "Jain",
	"eggetarian":     "Eggetarian",
}

var cuisineRegions = map[string]string{
	"north-indian":  "North",
	"punjabi":       "North",
	"south-indian":  "South",
	"tamil":         "South",
	"kerala":        "South",
	"gujarati":      "West",
	"maharashtrian": "West",
	"bengali":       "East",
}

// Diet returns the backend diet name for the first recognised choice.
func Diet(choices []string) string {
	for _, c := range choices {
		if d, ok := dietNames[strings.ToLower(strings.TrimSpace(c))]; ok {
			return d
		}
	}
	return "Vegetarian"
}

// Region maps a cuisine choice to a recipe region.
func Region(cuisine string) string {
	key := strings.ToLower(strings.TrimSpace(cuisine))
	key = strings.ReplaceAll(key, " ", "-")
	if r, ok := cuisineRegions[key]; ok {
		return r
	}
	return "All"
}

// Option configures the Onboarder.
type Option func(*Onboarder)

// WithClock overrides the time source for generated emails and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *Onboarder) { o.now = now }
}

// Onboarder submits questionnaires.
type Onboarder struct {
	users domain.UserService
	kv    domain.KVStore
	now   func() time.Time
	log   *logger.Logger
}

// New creates an onboarder. users may be nil to keep profiles local only.
func New(users domain.UserService, kv domain.KVStore, log *logger.Logger, opts ...Option) *Onboarder {
	o := &Onboarder{users: users, kv: kv, now: time.Now, log: log}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Build maps a form to the profile that will be stored and sent.
func (o *Onboarder) Build(f Form) *domain.Profile {
	now := o.now()

	email := strings.TrimSpace(f.Email)
	if email == "" {
		email = fmt.Sprintf("user_%d@mealcraft.com", now.UnixMilli())
	}
	user := domain.UserProfile{
		Email:      email,
		UserName:   orDefault(f.UserName, "User"),
		FamilySize: 1,
		City:       strings.ToLower(orDefault(f.City, DefaultCity)),
	}

	budget := DefaultBudget
	if b, err := strconv.ParseFloat(strings.TrimSpace(f.Budget), 64); err == nil && b > 0 {
		budget = int(math.Round(b))
	}
	cooking := DefaultCookingTime
	if n, err := strconv.Atoi(strings.TrimSpace(f.CookingTime)); err == nil && n > 0 {
		cooking = n
	}

	cuisines := nonEmpty(f.Cuisines)
	region := "All"
	if len(cuisines) == 0 {
		cuisines = []string{"North Indian"}
	} else {
		region = Region(cuisines[0])
	}

	prefs := domain.Preferences{
		Diet:                Diet(f.Dietary),
		PreferredCuisines:   cuisines,
		DietaryRestrictions: nonEmpty(f.Dietary),
		CookingTimeLimit:    cooking,
		CookingComplexity:   orDefault(f.CookingComplexity, DefaultComplexity),
		DailyCalorieTarget:  DefaultCalories,
		WeeklyBudget:        float64(budget),
		HealthGoals:         nonEmpty(f.HealthGoals),
		PreferredFlavors:    []string{"spicy", "mild"},
		Region:              region,
		CostPerMealLimit:    math.Round(float64(budget) / mealsPerWeek),
	}

	return &domain.Profile{
		User:        user,
		Preferences: prefs,
		CreatedAt:   now.UTC().Format(time.RFC3339),
	}
}

// Result is the outcome of a submission. SyncErr is set when the backend
// could not store the profile; the local copy is saved regardless.
type Result struct {
	Profile *domain.Profile
	SyncErr error
}

// Submit registers the user and their preferences with the backend and
// saves the profile and email locally. Only a local storage failure is
// returned as an error.
func (o *Onboarder) Submit(ctx context.Context, f Form) (*Result, error) {
	profile := o.Build(f)
	res := &Result{Profile: profile}

	if o.users == nil {
		res.SyncErr = fmt.Errorf("user service: %w", domain.ErrSourceUnavailable)
	} else {
		res.SyncErr = o.sync(ctx, profile)
	}
	profile.Synced = res.SyncErr == nil
	if res.SyncErr != nil {
		o.log.Warn("profile kept locally only: %v", res.SyncErr)
	}

	if err := o.kv.Set(ctx, storage.KeyProfile, profile); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}
	if err := o.kv.Set(ctx, storage.KeyUserEmail, profile.User.Email); err != nil {
		return nil, fmt.Errorf("saving user email: %w", err)
	}
	return res, nil
}

func (o *Onboarder) sync(ctx context.Context, p *domain.Profile) error {
	id, err := o.users.CreateUser(ctx, p.User)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	o.log.Info("user %s registered (id %d)", p.User.Email, id)

	if err := o.users.SavePreferences(ctx, p.User.Email, p.Preferences); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	return nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
