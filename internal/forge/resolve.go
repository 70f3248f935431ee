package forge

import (
	"math"

	"github.com/tatianab/spellforge/internal/models"
)

// Resolved is a selected component together with its bound parameters.
type Resolved struct {
	Component models.Component
	Params    models.BoundParams
}

type accumulator struct {
	draft    models.Draft
	percents []float64 // applied after every flat mana change is summed
	tags     map[string]bool
}

// Resolve folds the components, in selection order, into a draft. Within a component its
// effects apply in declaration order. The resource cost vector is left empty; see Compute.
//
//   - damage, flat mana and energy, gold and essence are summed
//   - element and scaling stat: the last applied value wins
//   - mana percent changes multiply the summed flat mana in selection order, then the
//     result is floored and kept at zero or above
//   - status effect: the highest chance wins, ties keep the earlier proposal
//   - tags are deduplicated in first-seen order; fragments keep duplicates
//   - unknown effect kinds are skipped
func Resolve(selected []Resolved) models.Draft {
	acc := accumulator{
		draft: models.Draft{
			NameFragments:        []string{},
			DescriptionFragments: []string{},
			Tags:                 []string{},
			ResourceCost:         []models.ResourceCost{},
		},
		tags: make(map[string]bool),
	}
	for _, r := range selected {
		acc = fold(acc, r)
	}
	return acc.finish()
}

func fold(acc accumulator, r Resolved) accumulator {
	c := r.Component
	acc.draft.ManaCost += c.ManaCost
	acc.draft.EnergyCost += c.EnergyCost
	acc.draft.GoldCost += c.GoldCost
	acc.draft.EssenceCost += c.EssenceCost

	for _, e := range c.Effects {
		acc = acc.apply(e, r.Params)
	}
	return acc
}

func (acc accumulator) apply(e models.Effect, params models.BoundParams) accumulator {
	d := &acc.draft

	switch e := e.(type) {
	case models.AddBaseDamage:
		d.Damage += roundAmount(float64(e.Amount), e.Param, e.Scale, params)

	case models.SetElement:
		if el := models.Element(option(string(e.Element), e.Param, params)); el != "" {
			d.Element = el
		}

	case models.SetScalingStat:
		if stat := option(e.Stat, e.Param, params); stat != "" {
			d.ScalingStat = stat
		}

	case models.ManaCostFlat:
		d.ManaCost += roundAmount(float64(e.Delta), e.Param, e.Scale, params)

	case models.ManaCostPercent:
		acc.percents = append(acc.percents, amount(e.Delta, e.Param, e.Scale, params))

	case models.ApplyStatus:
		proposal := models.StatusProposal{
			Status:    e.Status,
			Chance:    amount(e.Chance, e.Param, 0, params),
			Duration:  e.Duration,
			Magnitude: e.Magnitude,
		}
		if d.Status == nil || proposal.Chance > d.Status.Chance {
			d.Status = &proposal
		}

	case models.AddTag:
		if e.Tag != "" && !acc.tags[e.Tag] {
			acc.tags[e.Tag] = true
			d.Tags = append(d.Tags, e.Tag)
		}

	case models.NameFragment:
		if e.Text != "" {
			d.NameFragments = append(d.NameFragments, e.Text)
		}

	case models.DescriptionFragment:
		if e.Text != "" {
			d.DescriptionFragments = append(d.DescriptionFragments, e.Text)
		}
	}
	return acc
}

func (acc accumulator) finish() models.Draft {
	mana := float64(acc.draft.ManaCost)
	for _, pct := range acc.percents {
		mana *= 1 + pct/100
	}
	acc.draft.ManaCost = max(0, int(math.Floor(mana+1e-9)))
	return acc.draft
}

// amount returns the literal, or the named numeric parameter times scale when bound.
func amount(literal float64, param string, scale float64, params models.BoundParams) float64 {
	if param == "" {
		return literal
	}
	p, ok := params[param]
	if !ok || p.Kind == models.ParamDropdown {
		return literal
	}
	if scale == 0 {
		scale = 1
	}
	return p.Number * scale
}

func roundAmount(literal float64, param string, scale float64, params models.BoundParams) int {
	return int(math.Round(amount(literal, param, scale, params)))
}

// option returns the literal, or the named dropdown parameter's choice when bound.
func option(literal, param string, params models.BoundParams) string {
	if param == "" {
		return literal
	}
	if p, ok := params[param]; ok && p.Option != "" {
		return p.Option
	}
	return literal
}
