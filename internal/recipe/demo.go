// Package recipe provides the recipe sources used by the discovery screen:
// the embedded demo set, the loader that falls back to it, and favorites.
package recipe

import (
	"context"
	_ "embed"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

//go:embed demo.yaml
var demoRaw []byte

// demoData mirrors demo.yaml.
type demoData struct {
	Recipes []domain.RecipeDetail `yaml:"recipes"`
	Meals   []domain.Meal         `yaml:"meals"`
}

var (
	demoOnce sync.Once
	demo     demoData
	demoErr  error
)

func loadDemo() (demoData, error) {
	demoOnce.Do(func() {
		if err := yaml.Unmarshal(demoRaw, &demo); err != nil {
			demoErr = fmt.Errorf("parsing demo data: %w", err)
		}
	})
	return demo, demoErr
}

// DemoRecipes returns the built-in fallback recipes in display order.
func DemoRecipes() []domain.Recipe {
	d, err := loadDemo()
	if err != nil {
		return nil
	}
	out := make([]domain.Recipe, len(d.Recipes))
	for i, r := range d.Recipes {
		out[i] = r.Recipe
	}
	return out
}

// DemoMeals returns the built-in meals offered by the shopping assistant and
// used for the demo meal plan.
func DemoMeals() []domain.Meal {
	d, err := loadDemo()
	if err != nil {
		return nil
	}
	return append([]domain.Meal(nil), d.Meals...)
}

// Compile-time interface check.
var _ domain.RecipeSource = (*DemoSource)(nil)

// DemoSource serves the embedded demo set. Safe for concurrent reads.
type DemoSource struct {
	mu      sync.RWMutex
	order   []string
	recipes map[string]*domain.RecipeDetail
	log     *logger.Logger
}

// NewDemoSource creates a source preloaded with the built-in recipes.
func NewDemoSource(log *logger.Logger) *DemoSource {
	src := &DemoSource{
		recipes: make(map[string]*domain.RecipeDetail),
		log:     log,
	}
	src.seed()
	return src
}

// Search returns up to limit demo recipes. A limit of zero or less returns
// all of them.
func (s *DemoSource) Search(ctx context.Context, limit int) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, 0, len(s.order))
	for _, key := range s.order {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.recipes[key].Recipe)
	}
	s.log.Debug("demo search, count=%d", len(out))
	return out, nil
}

// Details returns the demo recipe with the given name, case-insensitively.
func (s *DemoSource) Details(ctx context.Context, name string) (*domain.RecipeDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.recipes[strings.ToLower(name)]
	if !ok {
		s.log.Debug("demo recipe not found: %s", name)
		return nil, domain.ErrNotFound
	}
	d := *r
	d.Instructions = append([]string(nil), r.Instructions...)
	return &d, nil
}

// Random returns count demo recipes in random order.
func (s *DemoSource) Random(ctx context.Context, count int) ([]domain.Recipe, error) {
	all, _ := s.Search(ctx, 0)
	rand.Shuffle(len(all), func(i, j int) { all[i], all[j] = all[j], all[i] })
	if count > 0 && count < len(all) {
		all = all[:count]
	}
	return all, nil
}

// seed populates the source from the embedded demo data.
func (s *DemoSource) seed() {
	d, err := loadDemo()
	if err != nil {
		s.log.Error("%v", err)
		return
	}
	for i := range d.Recipes {
		r := d.Recipes[i]
		key := strings.ToLower(r.Name)
		s.order = append(s.order, key)
		s.recipes[key] = &r
	}
	s.log.Debug("seeded %d demo recipes", len(s.order))
}
