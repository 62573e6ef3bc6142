package display

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/mealcraft/internal/domain"
	"github.com/hammamikhairi/mealcraft/internal/engine"
	"github.com/hammamikhairi/mealcraft/internal/logger"
	"github.com/hammamikhairi/mealcraft/internal/recipe"
)

// DefaultDebounce is the delay between the last keystroke and the search.
const DefaultDebounce = 500 * time.Millisecond

// maxCards is how many recipe cards are shown at once.
const maxCards = 6

// field is a focusable control on the discovery screen.
type field int

const (
	fieldQuery field = iota
	fieldDiet
	fieldCourse
	fieldRegion
	fieldFlavor
	fieldTime
	fieldCount
)

func (f field) label() string {
	switch f {
	case fieldDiet:
		return "Diet"
	case fieldCourse:
		return "Course"
	case fieldRegion:
		return "Region"
	case fieldFlavor:
		return "Flavor"
	case fieldTime:
		return "Time"
	default:
		return "Search"
	}
}

// ── Messages ─────────────────────────────────────────────────────

// loadedMsg carries the baseline once the loader returns.
type loadedMsg recipe.LoadResult

// debounceMsg fires after the debounce delay. Only the tick whose seq
// matches the latest keystroke applies the query.
type debounceMsg struct{ seq int }

type favoriteMsg struct {
	name  string
	saved bool
	err   error
}

type favoritesLoadedMsg []domain.Recipe

// ── Model ────────────────────────────────────────────────────────

// LoadFunc fetches the baseline collection.
type LoadFunc func(ctx context.Context) recipe.LoadResult

// DiscoverOption configures the discovery screen.
type DiscoverOption func(*Discover)

// WithDebounce sets the search debounce delay. Zero searches on every key.
func WithDebounce(d time.Duration) DiscoverOption {
	return func(m *Discover) { m.debounce = d }
}

// WithFavorites enables the favorite toggle.
func WithFavorites(f *recipe.Favorites) DiscoverOption {
	return func(m *Discover) { m.favorites = f }
}

// WithInitialQuery pre-fills the search box.
func WithInitialQuery(q string) DiscoverOption {
	return func(m *Discover) {
		m.input.SetValue(q)
		m.state.Query = q
	}
}

// Discover is the Bubble Tea model of the recipe discovery screen.
type Discover struct {
	ctx       context.Context
	engine    *engine.Engine
	load      LoadFunc
	favorites *recipe.Favorites
	log       *logger.Logger

	input    textinput.Model
	spinner  spinner.Model
	debounce time.Duration
	seq      int

	state   domain.FilterState
	results []domain.Recipe
	facets  domain.Facets
	saved   map[string]bool

	loading bool
	origin  recipe.Origin
	loadErr error
	status  string

	focus    field
	cursor   int
	selected *domain.Recipe
	width    int
}

// NewDiscover creates the discovery screen. The baseline is fetched with
// load when the program starts.
func NewDiscover(ctx context.Context, eng *engine.Engine, load LoadFunc, log *logger.Logger, opts ...DiscoverOption) *Discover {
	ti := textinput.New()
	ti.Prompt = "search> "
	ti.Placeholder = "dish, ingredient, region or course"
	ti.PromptStyle = promptStyle
	ti.CharLimit = 100
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = accentStyle

	m := &Discover{
		ctx:      ctx,
		engine:   eng,
		load:     load,
		log:      log,
		input:    ti,
		spinner:  sp,
		debounce: DefaultDebounce,
		saved:    make(map[string]bool),
		loading:  true,
		width:    80,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Selected returns the recipe chosen with enter, if any.
func (m *Discover) Selected() *domain.Recipe { return m.selected }

// State returns the current filter state.
func (m *Discover) State() domain.FilterState { return m.state }

// Results returns the recipes currently shown.
func (m *Discover) Results() []domain.Recipe { return m.results }

// Loading reports whether the baseline is still being fetched.
func (m *Discover) Loading() bool { return m.loading }

func (m *Discover) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd(), m.favoritesCmd(), textinput.Blink)
}

func (m *Discover) loadCmd() tea.Cmd {
	ctx, load := m.ctx, m.load
	return func() tea.Msg {
		return loadedMsg(load(ctx))
	}
}

func (m *Discover) favoritesCmd() tea.Cmd {
	if m.favorites == nil {
		return nil
	}
	ctx, favs := m.ctx, m.favorites
	return func() tea.Msg {
		list, err := favs.List(ctx)
		if err != nil {
			return favoritesLoadedMsg(nil)
		}
		return favoritesLoadedMsg(list)
	}
}

func (m *Discover) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		m.origin = msg.Origin
		m.loadErr = msg.Err
		m.engine.Load(msg.Recipes)
		m.facets = m.engine.Facets()
		m.state.Query = m.input.Value()
		m.apply()
		return m, nil

	case favoritesLoadedMsg:
		for _, r := range msg {
			m.saved[strings.ToLower(r.Name)] = true
		}
		return m, nil

	case favoriteMsg:
		if msg.err != nil {
			m.status = "Could not update favorites: " + msg.err.Error()
			return m, nil
		}
		m.saved[strings.ToLower(msg.name)] = msg.saved
		if msg.saved {
			m.status = "♥ Saved " + msg.name
		} else {
			m.status = "Removed " + msg.name + " from favorites"
		}
		return m, nil

	case debounceMsg:
		if msg.seq != m.seq || m.loading {
			return m, nil
		}
		m.state.Query = m.input.Value()
		m.apply()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 12 {
			m.input.Width = msg.Width - 12
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Discover) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		m.setFocus((m.focus + 1) % fieldCount)
		return m, nil
	case tea.KeyShiftTab:
		m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		return m, nil
	case tea.KeyUp:
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case tea.KeyDown:
		if m.cursor < len(m.results)-1 {
			m.cursor++
		}
		return m, nil
	case tea.KeyCtrlR:
		m.reset()
		return m, nil
	case tea.KeyCtrlF:
		return m, m.toggleFavorite()
	case tea.KeyEnter:
		if len(m.results) > 0 {
			r := m.results[m.cursor]
			m.selected = &r
			return m, tea.Quit
		}
		return m, nil
	}

	if m.focus != fieldQuery {
		switch msg.Type {
		case tea.KeyLeft:
			m.cycle(-1)
		case tea.KeyRight, tea.KeySpace:
			m.cycle(1)
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.scheduleSearch())
}

// scheduleSearch supersedes any pending search with a new one.
func (m *Discover) scheduleSearch() tea.Cmd {
	m.seq++
	seq := m.seq
	if m.debounce <= 0 {
		return func() tea.Msg { return debounceMsg{seq: seq} }
	}
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq}
	})
}

func (m *Discover) setFocus(f field) {
	m.focus = f
	if f == fieldQuery {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

// options returns the choices of a selector, "" (all) first.
func (m *Discover) options(f field) []string {
	var opts []string
	switch f {
	case fieldDiet:
		opts = domain.DietOptions
	case fieldCourse:
		opts = m.facets.Courses
	case fieldRegion:
		opts = m.facets.Regions
	case fieldFlavor:
		opts = m.facets.Flavors
	case fieldTime:
		for _, t := range domain.TimeOptions {
			opts = append(opts, strconv.Itoa(t))
		}
	}
	return append([]string{""}, opts...)
}

func (m *Discover) value(f field) string {
	switch f {
	case fieldDiet:
		return m.state.Diet
	case fieldCourse:
		return m.state.Course
	case fieldRegion:
		return m.state.Region
	case fieldFlavor:
		return m.state.Flavor
	case fieldTime:
		if m.state.MaxTime > 0 {
			return strconv.Itoa(m.state.MaxTime)
		}
	}
	return ""
}

// cycle moves the focused selector and applies the filter immediately.
func (m *Discover) cycle(delta int) {
	opts := m.options(m.focus)
	cur := 0
	for i, o := range opts {
		if o == m.value(m.focus) {
			cur = i
			break
		}
	}
	next := opts[(cur+delta+len(opts))%len(opts)]

	switch m.focus {
	case fieldDiet:
		m.state.Diet = next
	case fieldCourse:
		m.state.Course = next
	case fieldRegion:
		m.state.Region = next
	case fieldFlavor:
		m.state.Flavor = next
	case fieldTime:
		m.state.MaxTime, _ = strconv.Atoi(next)
	}
	// The query box is read as typed, like a form submit.
	m.state.Query = m.input.Value()
	m.apply()
}

func (m *Discover) reset() {
	m.state = m.engine.Reset()
	m.input.SetValue("")
	m.seq++
	m.setFocus(fieldQuery)
	m.status = "Filters cleared"
	m.apply()
}

func (m *Discover) apply() {
	if m.loading {
		return
	}
	m.results = m.engine.Apply(m.state)
	if m.cursor >= len(m.results) {
		m.cursor = max(len(m.results)-1, 0)
	}
	m.log.Debug("filter %+v -> %d of %d", m.state, len(m.results), m.engine.Len())
}

func (m *Discover) toggleFavorite() tea.Cmd {
	if m.favorites == nil || len(m.results) == 0 {
		return nil
	}
	ctx, favs, r := m.ctx, m.favorites, m.results[m.cursor]
	return func() tea.Msg {
		saved, err := favs.Toggle(ctx, r)
		return favoriteMsg{name: r.Name, saved: saved, err: err}
	}
}

// ── View ─────────────────────────────────────────────────────────

func (m *Discover) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("MealCraft · Recipe Discovery"))
	b.WriteString("\n\n")

	if m.loading {
		b.WriteString(m.spinner.View() + " " + secondaryStyle.Render("Loading recipes..."))
		b.WriteString("\n")
		return b.String()
	}

	if line := m.originLine(); line != "" {
		b.WriteString(line + "\n\n")
	}

	b.WriteString(m.input.View() + "\n")
	b.WriteString(m.selectorsView() + "\n\n")

	b.WriteString(secondaryStyle.Render(fmt.Sprintf("Showing %d of %d recipes", len(m.results), m.engine.Len())))
	b.WriteString("\n")

	if len(m.results) == 0 {
		b.WriteString("\n" + headingStyle.Render("No recipes found") + "\n")
		b.WriteString(secondaryStyle.Render("Try adjusting your filters or search terms") + "\n")
	} else {
		start := 0
		if m.cursor >= maxCards {
			start = m.cursor - maxCards + 1
		}
		end := min(start+maxCards, len(m.results))
		for i := start; i < end; i++ {
			b.WriteString(m.card(m.results[i], i == m.cursor) + "\n")
		}
	}

	if m.status != "" {
		b.WriteString(accentStyle.Render(m.status) + "\n")
	}
	b.WriteString(secondaryStyle.Render("tab: next filter · ←/→: change · ↑/↓: move · enter: details · ctrl+f: favorite · ctrl+r: reset · esc: quit"))
	return b.String()
}

func (m *Discover) originLine() string {
	switch {
	case m.origin == recipe.OriginDemo && m.loadErr != nil:
		return urgentStyle.Render("Backend unavailable, showing demo recipes: " + m.loadErr.Error())
	case m.origin == recipe.OriginDemo:
		return secondaryStyle.Render("Offline mode: showing demo recipes")
	case m.loadErr != nil:
		return urgentStyle.Render("Could not load recipes: " + m.loadErr.Error())
	}
	return ""
}

func (m *Discover) selectorsView() string {
	parts := make([]string, 0, fieldCount-1)
	for f := fieldDiet; f < fieldCount; f++ {
		v := m.value(f)
		switch {
		case v == "":
			v = "All"
		case f == fieldTime:
			v = "≤ " + v + " min"
		}
		text := fmt.Sprintf(" %s: %s ", f.label(), v)
		if f == m.focus {
			parts = append(parts, focusedSelectorStyle.Render(text))
		} else {
			parts = append(parts, selectorStyle.Render(text))
		}
	}
	return strings.Join(parts, " ")
}

func (m *Discover) card(r domain.Recipe, selected bool) string {
	name := r.Name
	if m.saved[strings.ToLower(r.Name)] {
		name = "♥ " + name
	}
	body := headingStyle.Render(name) + "\n" + secondaryStyle.Render(RecipeMeta(r))
	if ing := r.IngredientList(); len(ing) > 0 {
		body += "\n" + primaryStyle.Render(truncate(strings.Join(ing, ", "), max(m.width-8, 20)))
	}
	style := cardStyle
	if selected {
		style = selectedCardStyle
	}
	return style.Width(max(m.width-4, 30)).Render(body)
}
