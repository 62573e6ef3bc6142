package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

// Compile-time interface check.
var _ domain.PlanService = (*Client)(nil)

type generateRequest struct {
	Email       string              `json:"email"`
	Preferences *preferencesRequest `json:"preferences,omitempty"`
}

// GenerateMealPlan asks the backend planner for a weekly plan. With nil
// prefs the backend uses the user's stored preferences.
func (c *Client) GenerateMealPlan(ctx context.Context, email string, prefs *domain.Preferences) (int, *domain.MealPlan, error) {
	body := generateRequest{Email: email}
	if prefs != nil {
		body.Preferences = &preferencesRequest{Email: email, Preferences: *prefs}
	}

	var resp struct {
		successResponse
		MealPlanID int              `json:"meal_plan_id"`
		MealPlan   *domain.MealPlan `json:"meal_plan"`
	}
	if err := c.post(ctx, "/api/meal-plan/generate", body, &resp); err != nil {
		return 0, nil, err
	}
	if !resp.Success || resp.MealPlan == nil {
		return 0, nil, fmt.Errorf("api: generate meal plan: %w", domain.ErrUnsuccessful)
	}
	resp.MealPlan.ID = resp.MealPlanID
	return resp.MealPlanID, resp.MealPlan, nil
}

// MealPlan fetches a stored plan by id.
func (c *Client) MealPlan(ctx context.Context, id int) (*domain.PlanRecord, error) {
	var rec domain.PlanRecord
	if err := c.get(ctx, "/api/meal-plan/"+strconv.Itoa(id), nil, &rec); err != nil {
		return nil, err
	}
	rec.Plan.ID = rec.ID
	return &rec, nil
}

// UserMealPlans lists a user's most recent plans, newest first.
func (c *Client) UserMealPlans(ctx context.Context, email string, limit int) ([]domain.PlanRecord, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var resp struct {
		UserEmail string              `json:"user_email"`
		MealPlans []domain.PlanRecord `json:"meal_plans"`
		Count     int                 `json:"count"`
	}
	if err := c.get(ctx, "/api/meal-plan/user/"+url.PathEscape(email), q, &resp); err != nil {
		return nil, err
	}
	for i := range resp.MealPlans {
		resp.MealPlans[i].Plan.ID = resp.MealPlans[i].ID
	}
	return resp.MealPlans, nil
}
