package recipe

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/storage"
)

// Favorites keeps saved recipes in the local store, keyed by recipe name.
type Favorites struct {
	kv  domain.KVStore
	log *logger.Logger
}

// NewFavorites creates a favorites list over kv.
func NewFavorites(kv domain.KVStore, log *logger.Logger) *Favorites {
	return &Favorites{kv: kv, log: log}
}

// List returns saved recipes in the order they were saved.
func (f *Favorites) List(ctx context.Context) ([]domain.Recipe, error) {
	var saved []domain.Recipe
	if err := f.kv.Get(ctx, storage.KeySavedRecipes, &saved); err != nil {
		if storage.IsMissing(err) {
			return []domain.Recipe{}, nil
		}
		return nil, fmt.Errorf("loading favorites: %w", err)
	}
	return saved, nil
}

// Contains reports whether a recipe with this name is saved.
func (f *Favorites) Contains(ctx context.Context, name string) (bool, error) {
	saved, err := f.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(saved, name) >= 0, nil
}

// Add saves a recipe. Saving a name twice is domain.ErrAlreadyExists.
func (f *Favorites) Add(ctx context.Context, r domain.Recipe) error {
	saved, err := f.List(ctx)
	if err != nil {
		return err
	}
	if indexOf(saved, r.Name) >= 0 {
		return domain.ErrAlreadyExists
	}
	saved = append(saved, r)
	if err := f.kv.Set(ctx, storage.KeySavedRecipes, saved); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	f.log.Info("saved favorite %q", r.Name)
	return nil
}

// Remove deletes a saved recipe by name.
func (f *Favorites) Remove(ctx context.Context, name string) error {
	saved, err := f.List(ctx)
	if err != nil {
		return err
	}
	i := indexOf(saved, name)
	if i < 0 {
		return domain.ErrNotFound
	}
	saved = append(saved[:i], saved[i+1:]...)
	if err := f.kv.Set(ctx, storage.KeySavedRecipes, saved); err != nil {
		return fmt.Errorf("saving favorites: %w", err)
	}
	f.log.Info("removed favorite %q", name)
	return nil
}

// Toggle saves the recipe if it is not saved and removes it otherwise. It
// reports whether the recipe is saved afterwards.
func (f *Favorites) Toggle(ctx context.Context, r domain.Recipe) (bool, error) {
	ok, err := f.Contains(ctx, r.Name)
	if err != nil {
		return false, err
	}
	if ok {
		return false, f.Remove(ctx, r.Name)
	}
	return true, f.Add(ctx, r)
}

func indexOf(recipes []domain.Recipe, name string) int {
	for i, r := range recipes {
		if strings.EqualFold(r.Name, name) {
			return i
		}
	}
	return -1
}

// ShareLink builds the web discovery link for a recipe.
func ShareLink(baseURL, name string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return strings.TrimRight(baseURL, "/") + "/recipe_discovery.html?recipe=" + escaped
}
