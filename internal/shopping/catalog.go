package shopping

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/mealcraft/internal/domain"
)

//go:embed stores.yaml
var storesRaw []byte

// Catalog is the ordered list of stores the assistant offers.
type Catalog struct {
	stores []domain.Store
}

// DefaultCatalog parses the embedded store list.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(storesRaw)
}

// ParseCatalog reads a YAML list of stores. Every store needs an id and a name.
func ParseCatalog(data []byte) (*Catalog, error) {
	var stores []domain.Store
	if err := yaml.Unmarshal(data, &stores); err != nil {
		return nil, fmt.Errorf("parsing store catalog: %w", err)
	}
	seen := make(map[string]bool, len(stores))
	for i, s := range stores {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("store %d: id and name are required", i+1)
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("store %q: %w", s.ID, domain.ErrAlreadyExists)
		}
		seen[s.ID] = true
	}
	return &Catalog{stores: stores}, nil
}

// Stores returns the stores in display order.
func (c *Catalog) Stores() []domain.Store {
	return append([]domain.Store(nil), c.stores...)
}

// Lookup resolves a store by id, name (case-insensitive) or 1-based
// position in the list.
func (c *Catalog) Lookup(ref string) (domain.Store, error) {
	ref = strings.TrimSpace(ref)
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(c.stores) {
			return c.stores[n-1], nil
		}
		return domain.Store{}, fmt.Errorf("store #%d: %w", n, domain.ErrUnknownStore)
	}
	for _, s := range c.stores {
		if strings.EqualFold(s.ID, ref) || strings.EqualFold(s.Name, ref) {
			return s, nil
		}
	}
	return domain.Store{}, fmt.Errorf("store %q: %w", ref, domain.ErrUnknownStore)
}

// FallbackURL returns the website to finish an order manually. Unknown
// stores fall back to the first store in the catalog.
func (c *Catalog) FallbackURL(name string) string {
	for _, s := range c.stores {
		if strings.EqualFold(s.Name, name) && s.URL != "" {
			return s.URL
		}
	}
	if len(c.stores) > 0 {
		return c.stores[0].URL
	}
	return ""
}
