package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type fakeUsers struct {
	createErr error
	prefsErr  error
	users     []domain.UserProfile
	prefs     []domain.Preferences
}

func (f *fakeUsers) CreateUser(ctx context.Context, u domain.UserProfile) (int, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.users = append(f.users, u)
	return len(f.users), nil
}

func (f *fakeUsers) SavePreferences(ctx context.Context, email string, p domain.Preferences) error {
	if f.prefsErr != nil {
		return f.prefsErr
	}
	f.prefs = append(f.prefs, p)
	return nil
}

func setup(t *testing.T, users domain.UserService) (*Onboarder, *storage.MemoryStore) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	kv := storage.NewMemoryStore(log)
	return New(users, kv, log, WithClock(func() time.Time { return fixedNow })), kv
}

func TestDiet(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, "Vegetarian"},
		{[]string{"vegan"}, "Vegan"},
		{[]string{"gluten-free", "Non-Vegetarian"}, "Non-Vegetarian"},
		{[]string{"JAIN"}, "Jain"},
		{[]string{"eggetarian"}, "Eggetarian"},
		{[]string{"paleo"}, "Vegetarian"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Diet(tt.in), "Diet(%v)", tt.in)
	}
}

func TestRegion(t *testing.T) {
	tests := map[string]string{
		"north-indian":  "North",
		"Punjabi":       "North",
		"South Indian":  "South",
		"kerala":        "South",
		"gujarati":      "West",
		"maharashtrian": "West",
		"bengali":       "East",
		"italian":       "All",
		"":              "All",
	}
	for in, want := range tests {
		assert.Equal(t, want, Region(in), "Region(%q)", in)
	}
}

func TestBuildDefaults(t *testing.T) {
	o, _ := setup(t, nil)
	p := o.Build(Form{})

	assert.Equal(t, "user_1772442000000@mealcraft.com", p.User.Email)
	assert.Equal(t, "User", p.User.UserName)
	assert.Equal(t, 1, p.User.FamilySize)
	assert.Equal(t, "mumbai", p.User.City)

	prefs := p.Preferences
	assert.Equal(t, "Vegetarian", prefs.Diet)
	assert.Equal(t, []string{"North Indian"}, prefs.PreferredCuisines)
	assert.Equal(t, "All", prefs.Region)
	assert.Equal(t, 45, prefs.CookingTimeLimit)
	assert.Equal(t, "intermediate", prefs.CookingComplexity)
	assert.Equal(t, 2000, prefs.DailyCalorieTarget)
	assert.Equal(t, 15000.0, prefs.WeeklyBudget)
	assert.Equal(t, 714.0, prefs.CostPerMealLimit)
	assert.Equal(t, []string{"spicy", "mild"}, prefs.PreferredFlavors)
	assert.Empty(t, prefs.DietaryRestrictions)
	assert.Equal(t, "2026-03-02T09:00:00Z", p.CreatedAt)
}

func TestBuildFromForm(t *testing.T) {
	o, _ := setup(t, nil)
	p := o.Build(Form{
		Email:       " asha@example.com ",
		UserName:    "Asha",
		City:        "Chennai",
		Dietary:     []string{"vegan"},
		Cuisines:    []string{"tamil", "kerala"},
		CookingTime: "30",
		Budget:      "2100",
		HealthGoals: []string{"weight-loss"},
	})

	assert.Equal(t, "asha@example.com", p.User.Email)
	assert.Equal(t, "chennai", p.User.City)
	assert.Equal(t, "Vegan", p.Preferences.Diet)
	assert.Equal(t, "South", p.Preferences.Region)
	assert.Equal(t, 30, p.Preferences.CookingTimeLimit)
	assert.Equal(t, 100.0, p.Preferences.CostPerMealLimit)
	assert.Equal(t, []string{"weight-loss"}, p.Preferences.HealthGoals)
	assert.Equal(t, []string{"vegan"}, p.Preferences.DietaryRestrictions)
}

func TestSubmitSynced(t *testing.T) {
	users := &fakeUsers{}
	o, kv := setup(t, users)
	ctx := context.Background()

	res, err := o.Submit(ctx, Form{Email: "asha@example.com", Budget: "7000"})
	require.NoError(t, err)
	assert.NoError(t, res.SyncErr)
	assert.True(t, res.Profile.Synced)
	require.Len(t, users.users, 1)
	require.Len(t, users.prefs, 1)
	assert.Equal(t, 333.0, users.prefs[0].CostPerMealLimit)

	assert.Equal(t, "asha@example.com", storage.UserEmail(ctx, kv))
	stored, err := storage.Profile(ctx, kv)
	require.NoError(t, err)
	assert.True(t, stored.Synced)
	assert.Equal(t, 7000.0, stored.Preferences.WeeklyBudget)
}

func TestSubmitFallsBackToLocal(t *testing.T) {
	tests := []struct {
		name  string
		users domain.UserService
	}{
		{"offline", nil},
		{"create fails", &fakeUsers{createErr: domain.ErrSourceUnavailable}},
		{"preferences fail", &fakeUsers{prefsErr: errors.New("422")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, kv := setup(t, tt.users)
			ctx := context.Background()

			res, err := o.Submit(ctx, Form{Email: "local@example.com"})
			require.NoError(t, err)
			assert.Error(t, res.SyncErr)
			assert.False(t, res.Profile.Synced)

			stored, err := storage.Profile(ctx, kv)
			require.NoError(t, err)
			assert.False(t, stored.Synced)
			assert.Equal(t, "local@example.com", storage.UserEmail(ctx, kv))
		})
	}
}
