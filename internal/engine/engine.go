// Package engine implements the recipe filter engine. It holds the baseline
// recipe collection for a session, derives the selectable facets from it,
// and projects the filtered view for a given FilterState.
//
// The engine performs no I/O. Loading the baseline is the caller's job (see
// package recipe); rendering the view belongs to package display.
package engine

import (
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/logger"
)

// Option configures the Engine.
type Option func(*Engine)

// WithBaseline loads the given recipes at construction time.
func WithBaseline(recipes []domain.Recipe) Option {
	return func(e *Engine) { e.load(recipes) }
}

// Engine filters a baseline recipe collection. Safe for concurrent use.
type Engine struct {
	mu       sync.RWMutex
	baseline []domain.Recipe
	facets   domain.Facets
	log      *logger.Logger
}

// New creates an engine with an empty baseline.
func New(log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{log: log}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Load replaces the baseline with a copy of recipes and recomputes the
// facets. An empty or nil input yields empty facets.
func (e *Engine) Load(recipes []domain.Recipe) {
	e.load(recipes)
}

func (e *Engine) load(recipes []domain.Recipe) {
	baseline := make([]domain.Recipe, len(recipes))
	copy(baseline, recipes)
	facets := deriveFacets(baseline)

	e.mu.Lock()
	e.baseline = baseline
	e.facets = facets
	e.mu.Unlock()

	e.log.Debug("baseline loaded: %d recipes, %d regions, %d courses, %d flavors",
		len(baseline), len(facets.Regions), len(facets.Courses), len(facets.Flavors))
}

// Apply returns the recipes satisfying every active predicate of state, in
// baseline order. The result is a new slice; neither the baseline nor state
// is modified. No match yields an empty, non-nil slice.
func (e *Engine) Apply(state domain.FilterState) []domain.Recipe {
	e.mu.RLock()
	defer e.mu.RUnlock()

	m := newMatcher(state)
	out := make([]domain.Recipe, 0, len(e.baseline))
	for _, r := range e.baseline {
		if m.match(r) {
			out = append(out, r)
		}
	}

	e.log.Debug("filter applied (%d active): %d of %d", state.Active(), len(out), len(e.baseline))
	return out
}

// Reset returns a FilterState with no active predicates. The caller should
// adopt it as the current state and re-apply.
func (e *Engine) Reset() domain.FilterState {
	return domain.FilterState{}
}

// Facets returns the distinct regions, courses and flavors of the baseline.
func (e *Engine) Facets() domain.Facets {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return domain.Facets{
		Regions: append([]string(nil), e.facets.Regions...),
		Courses: append([]string(nil), e.facets.Courses...),
		Flavors: append([]string(nil), e.facets.Flavors...),
	}
}

// Baseline returns a copy of the loaded collection.
func (e *Engine) Baseline() []domain.Recipe {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]domain.Recipe, len(e.baseline))
	copy(out, e.baseline)
	return out
}

// Len returns the size of the baseline.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.baseline)
}

// Find returns the baseline recipe with the given name, compared
// case-insensitively.
func (e *Engine) Find(name string) (domain.Recipe, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	for _, r := range e.baseline {
		if strings.EqualFold(r.Name, name) {
			return r, true
		}
	}
	return domain.Recipe{}, false
}

// ── Predicates ───────────────────────────────────────────────────

// matcher holds the lowered predicate values so each recipe only pays for
// lowering its own fields.
type matcher struct {
	query   string
	diet    string
	course  string
	region  string
	flavor  string
	maxTime int
}

func newMatcher(s domain.FilterState) matcher {
	return matcher{
		query:   strings.ToLower(s.Query),
		diet:    strings.ToLower(s.Diet),
		course:  strings.ToLower(s.Course),
		region:  strings.ToLower(s.Region),
		flavor:  strings.ToLower(s.Flavor),
		maxTime: s.MaxTime,
	}
}

func (m matcher) match(r domain.Recipe) bool {
	if m.query != "" && !matchesQuery(r, m.query) {
		return false
	}
	if m.diet != "" && strings.ToLower(r.Diet) != m.diet {
		return false
	}
	if m.course != "" && strings.ToLower(r.Course) != m.course {
		return false
	}
	if m.region != "" && strings.ToLower(r.Region) != m.region {
		return false
	}
	if m.flavor != "" && strings.ToLower(r.FlavorProfile) != m.flavor {
		return false
	}
	if m.maxTime > 0 && r.Duration() > m.maxTime {
		return false
	}
	return true
}

// matchesQuery reports whether the lowered query occurs in the name,
// ingredients, region or course.
func matchesQuery(r domain.Recipe, query string) bool {
	for _, field := range []string{r.Name, r.Ingredients, r.Region, r.Course} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// ── Facets ───────────────────────────────────────────────────────

func deriveFacets(recipes []domain.Recipe) domain.Facets {
	regions := make(map[string]struct{})
	courses := make(map[string]struct{})
	flavors := make(map[string]struct{})

	for _, r := range recipes {
		addFacet(regions, r.Region)
		addFacet(courses, r.Course)
		addFacet(flavors, r.FlavorProfile)
	}

	return domain.Facets{
		Regions: sortedKeys(regions),
		Courses: sortedKeys(courses),
		Flavors: sortedKeys(flavors),
	}
}

func addFacet(set map[string]struct{}, v string) {
	if v != "" {
		set[v] = struct{}{}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
