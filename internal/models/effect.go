package models

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// EffectKind is the discriminant carried by every effect variant.
type EffectKind string

const (
	KindAddBaseDamage       EffectKind = "add_base_damage"
	KindSetElement          EffectKind = "set_element"
	KindSetScalingStat      EffectKind = "set_scaling_stat"
	KindManaCostFlat        EffectKind = "modify_mana_cost_flat"
	KindManaCostPercent     EffectKind = "modify_mana_cost_percent"
	KindApplyStatus         EffectKind = "apply_status_effect"
	KindAddTag              EffectKind = "add_tag"
	KindNameFragment        EffectKind = "add_name_fragment"
	KindDescriptionFragment EffectKind = "add_description_fragment"
)

// Effect is one declarative instruction carried by a component. Variants hold data only;
// the forge interprets them.
type Effect interface {
	Kind() EffectKind
	effect()
}

// Numeric effects may take their amount from a bound parameter: when Param is set the
// parameter's value times Scale (1 if zero) replaces the literal amount.

type AddBaseDamage struct {
	Amount int
	Param  string
	Scale  float64
}

type SetElement struct {
	Element Element
	Param   string // dropdown parameter supplying the element
}

type SetScalingStat struct {
	Stat  string
	Param string
}

type ManaCostFlat struct {
	Delta int
	Param string
	Scale float64
}

// ManaCostPercent changes mana cost by Delta percent (-10 means 10% cheaper).
type ManaCostPercent struct {
	Delta float64
	Param string
	Scale float64
}

type ApplyStatus struct {
	Status    string
	Chance    float64
	Duration  int
	Magnitude float64
	Param     string // numeric parameter supplying the chance
}

type AddTag struct{ Tag string }

type NameFragment struct{ Text string }

type DescriptionFragment struct{ Text string }

// UnknownEffect keeps effects written for a newer catalog. The forge skips them.
type UnknownEffect struct{ RawKind string }

func (AddBaseDamage) Kind() EffectKind       { return KindAddBaseDamage }
func (SetElement) Kind() EffectKind          { return KindSetElement }
func (SetScalingStat) Kind() EffectKind      { return KindSetScalingStat }
func (ManaCostFlat) Kind() EffectKind        { return KindManaCostFlat }
func (ManaCostPercent) Kind() EffectKind     { return KindManaCostPercent }
func (ApplyStatus) Kind() EffectKind         { return KindApplyStatus }
func (AddTag) Kind() EffectKind              { return KindAddTag }
func (NameFragment) Kind() EffectKind        { return KindNameFragment }
func (DescriptionFragment) Kind() EffectKind { return KindDescriptionFragment }
func (e UnknownEffect) Kind() EffectKind     { return EffectKind(e.RawKind) }

func (AddBaseDamage) effect()       {}
func (SetElement) effect()          {}
func (SetScalingStat) effect()      {}
func (ManaCostFlat) effect()        {}
func (ManaCostPercent) effect()     {}
func (ApplyStatus) effect()         {}
func (AddTag) effect()              {}
func (NameFragment) effect()        {}
func (DescriptionFragment) effect() {}
func (UnknownEffect) effect()       {}

// Effects is an ordered effect list decoded from the catalog's `kind`-tagged entries.
type Effects []Effect

type rawEffect struct {
	Kind      string  `yaml:"kind"`
	Amount    float64 `yaml:"amount"`
	Element   string  `yaml:"element"`
	Stat      string  `yaml:"stat"`
	Status    string  `yaml:"status"`
	Chance    float64 `yaml:"chance"`
	Duration  int     `yaml:"duration"`
	Magnitude float64 `yaml:"magnitude"`
	Tag       string  `yaml:"tag"`
	Text      string  `yaml:"text"`
	Param     string  `yaml:"param"`
	Scale     float64 `yaml:"scale"`
}

func (e *Effects) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.SequenceNode {
		return fmt.Errorf("line %d: effects must be a list", value.Line)
	}

	out := make(Effects, 0, len(value.Content))
	for _, node := range value.Content {
		var raw rawEffect
		if err := node.Decode(&raw); err != nil {
			return err
		}
		if raw.Kind == "" {
			return fmt.Errorf("line %d: effect is missing kind", node.Line)
		}
		out = append(out, raw.effect())
	}
	*e = out
	return nil
}

func (r rawEffect) effect() Effect {
	switch EffectKind(r.Kind) {
	case KindAddBaseDamage:
		return AddBaseDamage{Amount: int(math.Round(r.Amount)), Param: r.Param, Scale: r.Scale}
	case KindSetElement:
		return SetElement{Element: Element(r.Element), Param: r.Param}
	case KindSetScalingStat:
		return SetScalingStat{Stat: r.Stat, Param: r.Param}
	case KindManaCostFlat:
		return ManaCostFlat{Delta: int(math.Round(r.Amount)), Param: r.Param, Scale: r.Scale}
	case KindManaCostPercent:
		return ManaCostPercent{Delta: r.Amount, Param: r.Param, Scale: r.Scale}
	case KindApplyStatus:
		return ApplyStatus{Status: r.Status, Chance: r.Chance, Duration: r.Duration, Magnitude: r.Magnitude, Param: r.Param}
	case KindAddTag:
		return AddTag{Tag: r.Tag}
	case KindNameFragment:
		return NameFragment{Text: r.Text}
	case KindDescriptionFragment:
		return DescriptionFragment{Text: r.Text}
	default:
		return UnknownEffect{RawKind: r.Kind}
	}
}
