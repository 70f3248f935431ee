package models

import "time"

// Category groups components in the catalog (e.g., the spell's core, its form, a catalyst).
type Category string

const (
	CategoryCore     Category = "core"
	CategoryElement  Category = "element"
	CategoryForm     Category = "form"
	CategoryModifier Category = "modifier"
	CategoryCatalyst Category = "catalyst"
)

// Categories lists every category the catalog accepts, in display order.
var Categories = []Category{CategoryCore, CategoryElement, CategoryForm, CategoryModifier, CategoryCatalyst}

// Element is the elemental affinity of a component or a drafted spell. The empty value means none.
type Element string

const (
	ElementFire      Element = "fire"
	ElementIce       Element = "ice"
	ElementLightning Element = "lightning"
	ElementEarth     Element = "earth"
	ElementArcane    Element = "arcane"
	ElementShadow    Element = "shadow"
)

// Rarity is an ordinal; higher is rarer.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

const (
	MinTier = 1
	MaxTier = 5
)

// Component is a catalog-defined bundle of effects and costs that a player selects when
// assembling a spell draft. Components are never mutated after the catalog is loaded.
type Component struct {
	ID          string                  `yaml:"id"`
	Name        string                  `yaml:"name"`
	Description string                  `yaml:"description,omitempty"`
	Category    Category                `yaml:"category"`
	Tier        int                     `yaml:"tier"`
	Rarity      Rarity                  `yaml:"rarity"`
	Element     Element                 `yaml:"element,omitempty"`
	Tags        []string                `yaml:"tags,omitempty"`
	Effects     Effects                 `yaml:"effects,omitempty"`
	Parameters  []ConfigurableParameter `yaml:"parameters,omitempty"`
	ManaCost    int                     `yaml:"mana_cost,omitempty"`   // flat delta
	EnergyCost  int                     `yaml:"energy_cost,omitempty"` // flat delta
	BaseCost    []ResourceCost          `yaml:"base_cost,omitempty"`
	GoldCost    int                     `yaml:"gold_cost,omitempty"`
	EssenceCost int                     `yaml:"essence_cost,omitempty"`
}

// DisplayName falls back to the identifier for components without a name.
func (c Component) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// ParamKind selects how a parameter is edited and bound.
type ParamKind string

const (
	ParamSlider   ParamKind = "slider"
	ParamNumeric  ParamKind = "numeric"
	ParamDropdown ParamKind = "dropdown"
)

// ConfigurableParameter declares a user-tunable knob on a component.
// Slider and numeric parameters use Min/Max/Step/Default; dropdowns use Options/DefaultOption.
type ConfigurableParameter struct {
	Key           string    `yaml:"key"`
	Label         string    `yaml:"label"`
	Kind          ParamKind `yaml:"kind"`
	Min           float64   `yaml:"min,omitempty"`
	Max           float64   `yaml:"max,omitempty"`
	Step          float64   `yaml:"step,omitempty"`
	Default       float64   `yaml:"default,omitempty"`
	Options       []string  `yaml:"options,omitempty"`
	DefaultOption string    `yaml:"default_option,omitempty"`
}

// BoundParam is the effective value of one parameter for one selection.
type BoundParam struct {
	Kind   ParamKind `yaml:"kind" json:"kind"`
	Number float64   `yaml:"number,omitempty" json:"number,omitempty"`
	Option string    `yaml:"option,omitempty" json:"option,omitempty"`
}

// BoundParams maps parameter keys to effective values.
type BoundParams map[string]BoundParam

// ResourceCost is a cost denominated in an inventory item. Entries are keyed by ItemID.
type ResourceCost struct {
	Kind     string `yaml:"kind,omitempty" json:"kind,omitempty"` // e.g., "material", "reagent"
	ItemID   string `yaml:"item" json:"item"`
	Quantity int    `yaml:"quantity" json:"quantity"`
}

// Wallet is a read-only snapshot of what the player can spend.
type Wallet struct {
	Gold      int            `yaml:"gold"`
	Essence   int            `yaml:"essence"`
	Inventory map[string]int `yaml:"inventory"`
}

// StatusProposal is the single status effect a draft may carry.
type StatusProposal struct {
	Status    string  `yaml:"status" json:"status"`
	Chance    float64 `yaml:"chance" json:"chance"`
	Duration  int     `yaml:"duration" json:"duration"`
	Magnitude float64 `yaml:"magnitude" json:"magnitude"`
}

// Draft is the prospective spell derived from a selection. It is recomputed from scratch
// on every change and never stored as authoritative state.
type Draft struct {
	NameFragments        []string        `yaml:"name_fragments" json:"name_fragments"`
	DescriptionFragments []string        `yaml:"description_fragments" json:"description_fragments"`
	Damage               int             `yaml:"damage" json:"damage"`
	Element              Element         `yaml:"element,omitempty" json:"element,omitempty"`
	ScalingStat          string          `yaml:"scaling_stat,omitempty" json:"scaling_stat,omitempty"`
	ManaCost             int             `yaml:"mana_cost" json:"mana_cost"`
	EnergyCost           int             `yaml:"energy_cost" json:"energy_cost"`
	Status               *StatusProposal `yaml:"status,omitempty" json:"status,omitempty"`
	Tags                 []string        `yaml:"tags" json:"tags"`
	ResourceCost         []ResourceCost  `yaml:"resource_cost" json:"resource_cost"`
	GoldCost             int             `yaml:"gold_cost" json:"gold_cost"`
	EssenceCost          int             `yaml:"essence_cost" json:"essence_cost"`
}

// FinalizeRequest is the payload handed to the generation service.
type FinalizeRequest struct {
	Draft      Draft                  `yaml:"draft" json:"draft" jsonschema:"required"`
	Selection  Selection              `yaml:"selection" json:"selection" jsonschema:"required,minItems=1"`
	Params     map[string]BoundParams `yaml:"params,omitempty" json:"params,omitempty"` // by component id
	Investment []ResourceCost         `yaml:"investment,omitempty" json:"investment,omitempty"`
	Prompt     string                 `yaml:"prompt,omitempty" json:"prompt,omitempty"`
}

// Spell is the finished content returned by the generation service.
type Spell struct {
	Name         string   `yaml:"name"`
	Description  string   `yaml:"description"`
	Element      Element  `yaml:"element"`
	Damage       int      `yaml:"damage"`
	ManaCost     int      `yaml:"mana_cost"`
	StatusEffect string   `yaml:"status_effect,omitempty"`
	Flavor       string   `yaml:"flavor,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
}

// SavedPrompt is a reusable free-text prompt plus the components it was written for.
type SavedPrompt struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Text         string    `yaml:"text"`
	Timestamp    time.Time `yaml:"timestamp"`
	ComponentIDs []string  `yaml:"component_ids,omitempty"`
}
