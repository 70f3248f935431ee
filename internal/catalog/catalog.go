// Package catalog holds the immutable list of spell components and the item master table
// used to recognize resource identifiers.
package catalog

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tatianab/spellforge/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is an immutable, ordered set of components with unique identifiers.
type Catalog struct {
	components []models.Component
	byID       map[string]int
}

// ValidationError lists every problem found in a catalog.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid catalog: %s", strings.Join(e.Problems, "; "))
}

type file struct {
	Components []models.Component `yaml:"components"`
}

// Load reads and validates a YAML catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f.Components)
}

// New validates components and builds a catalog that keeps their order.
func New(components []models.Component) (*Catalog, error) {
	c := &Catalog{
		components: slices.Clone(components),
		byID:       make(map[string]int, len(components)),
	}

	var problems []string
	for i, comp := range c.components {
		if _, dup := c.byID[comp.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate component id %q", comp.ID))
			continue
		}
		c.byID[comp.ID] = i
		problems = append(problems, validate(comp)...)
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return c, nil
}

func validate(c models.Component) []string {
	var problems []string
	if c.ID == "" {
		problems = append(problems, "component without id")
	}
	if !slices.Contains(models.Categories, c.Category) {
		problems = append(problems, fmt.Sprintf("%s: unknown category %q", c.ID, c.Category))
	}
	if c.Tier < models.MinTier || c.Tier > models.MaxTier {
		problems = append(problems, fmt.Sprintf("%s: tier %d out of range %d-%d", c.ID, c.Tier, models.MinTier, models.MaxTier))
	}
	for _, cost := range c.BaseCost {
		if cost.ItemID == "" || cost.Quantity < 0 {
			problems = append(problems, fmt.Sprintf("%s: invalid base cost %+v", c.ID, cost))
		}
	}
	if c.GoldCost < 0 || c.EssenceCost < 0 {
		problems = append(problems, fmt.Sprintf("%s: negative currency cost", c.ID))
	}

	seen := make(map[string]bool, len(c.Parameters))
	for _, p := range c.Parameters {
		if seen[p.Key] {
			problems = append(problems, fmt.Sprintf("%s: duplicate parameter %q", c.ID, p.Key))
		}
		seen[p.Key] = true

		switch p.Kind {
		case models.ParamSlider, models.ParamNumeric:
			if p.Min > p.Max {
				problems = append(problems, fmt.Sprintf("%s.%s: min %v above max %v", c.ID, p.Key, p.Min, p.Max))
			}
			if p.Step < 0 {
				problems = append(problems, fmt.Sprintf("%s.%s: negative step", c.ID, p.Key))
			}
		case models.ParamDropdown:
			if len(p.Options) == 0 {
				problems = append(problems, fmt.Sprintf("%s.%s: dropdown without options", c.ID, p.Key))
			} else if !slices.Contains(p.Options, p.DefaultOption) {
				problems = append(problems, fmt.Sprintf("%s.%s: default %q is not an option", c.ID, p.Key, p.DefaultOption))
			}
		default:
			problems = append(problems, fmt.Sprintf("%s.%s: unknown parameter kind %q", c.ID, p.Key, p.Kind))
		}
	}
	return problems
}

// Component looks up a component by id.
func (c *Catalog) Component(id string) (models.Component, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Component{}, false
	}
	return c.components[i], true
}

// Components returns every component in catalog order.
func (c *Catalog) Components() []models.Component {
	return slices.Clone(c.components)
}

func (c *Catalog) Len() int { return len(c.components) }
