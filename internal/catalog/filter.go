package catalog

import (
	"strings"

	"github.com/tatianab/spellforge/internal/models"
)

// Filter selects components. Zero-valued fields match everything; set fields are ANDed.
type Filter struct {
	Category models.Category
	Tier     int
	Element  models.Element
	Query    string // case-insensitive substring of the display name
}

func (f Filter) Match(c models.Component) bool {
	if f.Category != "" && c.Category != f.Category {
		return false
	}
	if f.Tier != 0 && c.Tier != f.Tier {
		return false
	}
	if f.Element != "" && c.Element != f.Element {
		return false
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		return strings.Contains(strings.ToLower(c.DisplayName()), strings.ToLower(q))
	}
	return true
}

// Filter returns the matching components in catalog order.
func (c *Catalog) Filter(f Filter) []models.Component {
	out := make([]models.Component, 0, len(c.components))
	for _, comp := range c.components {
		if f.Match(comp) {
			out = append(out, comp)
		}
	}
	return out
}
