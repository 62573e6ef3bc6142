package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// DefaultLimit is how many recipes the discovery screen asks for.
const DefaultLimit = 500

// Origin says where a baseline came from.
type Origin int

const (
	OriginRemote Origin = iota
	OriginDemo
)

// String returns a human-readable origin.
func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginDemo:
		return "demo"
	default:
		return "unknown"
	}
}

// LoadResult is the baseline handed to the filter engine plus what the user
// should be told about it.
type LoadResult struct {
	Recipes []domain.Recipe
	Origin  Origin
	// Err is non-nil when the baseline is degraded: wrapping
	// domain.ErrSourceUnavailable for the demo fallback, or
	// domain.ErrUnsuccessful for an empty baseline after a failed response.
	Err error
}

// HealthCheck probes the backend before the recipe fetch.
type HealthCheck func(ctx context.Context) error

// LoaderOption configures the Loader.
type LoaderOption func(*Loader)

// WithLimit sets how many recipes are requested.
func WithLimit(n int) LoaderOption {
	return func(l *Loader) { l.limit = n }
}

// WithHealthCheck makes Load probe the backend first. A failed probe is
// treated as an outage.
func WithHealthCheck(h HealthCheck) LoaderOption {
	return func(l *Loader) { l.health = h }
}

// Loader fetches the baseline from the backend and falls back to the demo
// set when the backend is unreachable. A nil remote source means offline.
type Loader struct {
	remote domain.RecipeSource
	demo   *DemoSource
	limit  int
	health HealthCheck
	log    *logger.Logger
}

// NewLoader creates a loader over remote with the demo set as fallback.
func NewLoader(remote domain.RecipeSource, demo *DemoSource, log *logger.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		remote: remote,
		demo:   demo,
		limit:  DefaultLimit,
		log:    log,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load fetches the baseline. It never returns an undefined baseline: an
// outage yields the demo set, an unsuccessful response yields an empty set,
// and in both cases Err explains why.
func (l *Loader) Load(ctx context.Context) LoadResult {
	if l.remote == nil {
		l.log.Info("offline, using demo recipes")
		return LoadResult{Recipes: l.demoRecipes(ctx), Origin: OriginDemo}
	}

	if l.health != nil {
		if err := l.health(ctx); err != nil {
			return l.fallback(ctx, fmt.Errorf("health check: %w", err))
		}
	}

	recipes, err := l.remote.Search(ctx, l.limit)
	switch {
	case err == nil:
		l.log.Info("loaded %d recipes from backend", len(recipes))
		return LoadResult{Recipes: recipes, Origin: OriginRemote}
	case errors.Is(err, domain.ErrUnsuccessful):
		l.log.Warn("recipe search unsuccessful: %v", err)
		return LoadResult{Recipes: []domain.Recipe{}, Origin: OriginRemote, Err: fmt.Errorf("loading recipes: %w", err)}
	default:
		return l.fallback(ctx, err)
	}
}

func (l *Loader) fallback(ctx context.Context, cause error) LoadResult {
	if !errors.Is(cause, domain.ErrSourceUnavailable) {
		cause = fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, cause)
	}
	l.log.Warn("recipe source unavailable, using demo recipes: %v", cause)
	return LoadResult{
		Recipes: l.demoRecipes(ctx),
		Origin:  OriginDemo,
		Err:     fmt.Errorf("loading recipes: %w", cause),
	}
}

func (l *Loader) demoRecipes(ctx context.Context) []domain.Recipe {
	recipes, _ := l.demo.Search(ctx, 0)
	return recipes
}

// Details returns the full recipe from the backend, or from the demo set
// when the backend is unreachable or does not know the recipe.
func (l *Loader) Details(ctx context.Context, name string) (*domain.RecipeDetail, error) {
	if l.remote != nil {
		d, err := l.remote.Details(ctx, name)
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, domain.ErrSourceUnavailable) && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("loading recipe %q: %w", name, err)
		}
		l.log.Debug("details for %q from demo set: %v", name, err)
	}
	d, err := l.demo.Details(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading recipe %q: %w", name, err)
	}
	return d, nil
}

// Random returns count random recipes, from the demo set when the backend is
// unreachable.
func (l *Loader) Random(ctx context.Context, count int) ([]domain.Recipe, Origin, error) {
	if l.remote != nil {
		recipes, err := l.remote.Random(ctx, count)
		if err == nil {
			return recipes, OriginRemote, nil
		}
		if !errors.Is(err, domain.ErrSourceUnavailable) {
			return nil, OriginRemote, fmt.Errorf("random recipes: %w", err)
		}
		l.log.Warn("random recipes from demo set: %v", err)
	}
	recipes, err := l.demo.Random(ctx, count)
	return recipes, OriginDemo, err
}
