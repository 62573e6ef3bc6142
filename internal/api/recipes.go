package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*Client)(nil)

// recipeList is the envelope of the search and random endpoints.
type recipeList struct {
	Success *bool           `json:"success"`
	Count   int             `json:"count"`
	Recipes []domain.Recipe `json:"recipes"`
}

// Search fetches up to limit recipes from the backend's recipe search.
// An envelope with success=false or without a recipes array yields
// domain.ErrUnsuccessful.
func (c *Client) Search(ctx context.Context, limit int) ([]domain.Recipe, error) {
	return c.SearchRecipes(ctx, SearchParams{Limit: limit})
}

// SearchParams are the server-side filters of the recipe search endpoint.
// Zero values are omitted.
type SearchParams struct {
	Query   string
	Diet    string
	Course  string
	Region  string
	Flavor  string
	MaxTime int
	Limit   int
}

func (p SearchParams) values() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("query", p.Query)
	set("diet", p.Diet)
	set("course", p.Course)
	set("region", p.Region)
	set("flavor", p.Flavor)
	if p.MaxTime > 0 {
		q.Set("max_time", strconv.Itoa(p.MaxTime))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q
}

// SearchRecipes runs a server-side filtered search.
func (c *Client) SearchRecipes(ctx context.Context, p SearchParams) ([]domain.Recipe, error) {
	var resp recipeList
	if err := c.get(ctx, "/api/recipes/search", p.values(), &resp); err != nil {
		return nil, err
	}
	return resp.recipes("/api/recipes/search")
}

// Random fetches count random recipes for discovery.
func (c *Client) Random(ctx context.Context, count int) ([]domain.Recipe, error) {
	q := url.Values{}
	if count > 0 {
		q.Set("count", strconv.Itoa(count))
	}
	var resp recipeList
	if err := c.get(ctx, "/api/recipes/random", q, &resp); err != nil {
		return nil, err
	}
	return resp.recipes("/api/recipes/random")
}

func (l recipeList) recipes(path string) ([]domain.Recipe, error) {
	if l.Success == nil || !*l.Success {
		return nil, fmt.Errorf("api: %s: %w", path, domain.ErrUnsuccessful)
	}
	if l.Recipes == nil {
		return nil, fmt.Errorf("api: %s: no recipes array: %w", path, domain.ErrUnsuccessful)
	}
	return l.Recipes, nil
}

// Details fetches the full recipe, including instructions and nutrition.
func (c *Client) Details(ctx context.Context, name string) (*domain.RecipeDetail, error) {
	path := "/api/recipes/" + url.PathEscape(name)
	var resp struct {
		Success bool                 `json:"success"`
		Recipe  *domain.RecipeDetail `json:"recipe"`
	}
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Recipe == nil {
		return nil, fmt.Errorf("api: %s: %w", path, domain.ErrUnsuccessful)
	}
	return resp.Recipe, nil
}
