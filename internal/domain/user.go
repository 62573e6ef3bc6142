package domain

// UserProfile identifies the person the plans are generated for.
type UserProfile struct {
	Email      string `json:"email"`
	UserName   string `json:"user_name"`
	FamilySize int    `json:"family_size"`
	City       string `json:"city"`
}

// Preferences drive meal plan generation.
type Preferences struct {
	Diet                string   `json:"diet"`
	PreferredCuisines   []string `json:"preferred_cuisines"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	CookingTimeLimit    int      `json:"cooking_time_limit"`
	CookingComplexity   string   `json:"cooking_complexity"`
	DailyCalorieTarget  int      `json:"daily_calorie_target"`
	WeeklyBudget        float64  `json:"weekly_budget"`
	HealthGoals         []string `json:"health_goals"`
	PreferredFlavors    []string `json:"preferred_flavors"`
	Region              string   `json:"region"`
	CostPerMealLimit    float64  `json:"cost_per_meal_limit"`
}

// Profile is the locally persisted onboarding result.
type Profile struct {
	User        UserProfile `json:"user"`
	Preferences Preferences `json:"preferences"`
	Synced      bool        `json:"synced"`
	CreatedAt   string      `json:"created_at"`
}
