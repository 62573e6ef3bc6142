package domain

// FilterState is the set of predicates applied to the baseline collection.
// An empty string or a zero MaxTime means no constraint on that field.
type FilterState struct {
	Query   string
	Diet    string
	Course  string
	Region  string
	Flavor  string
	MaxTime int // minutes
}

// IsZero reports whether no predicate is active.
func (s FilterState) IsZero() bool {
	return s == FilterState{}
}

// Active returns the number of active predicates.
func (s FilterState) Active() int {
	n := 0
	for _, v := range []string{s.Query, s.Diet, s.Course, s.Region, s.Flavor} {
		if v != "" {
			n++
		}
	}
	if s.MaxTime > 0 {
		n++
	}
	return n
}

// Facets are the distinct categorical values observed across the baseline,
// each sorted lexicographically.
type Facets struct {
	Regions []string
	Courses []string
	Flavors []string
}

// DietOptions are the diet tags offered by the discovery screen.
var DietOptions = []string{"vegetarian", "non-vegetarian", "vegan"}

// TimeOptions are the max-time choices offered by the discovery screen, in minutes.
var TimeOptions = []int{15, 30, 45, 60, 90}
