// Package forge turns a selection of catalog components into a spell draft and checks
// whether the player can pay for it. Every function here is pure: the draft is rebuilt
// from the selection on each change.
package forge

import (
	"fmt"

	"github.com/tatianab/spellforge/internal/models"
)

// Lookup finds catalog components by id.
type Lookup interface {
	Component(id string) (models.Component, bool)
}

// ItemIndex reports whether an item id appears in the item master table.
type ItemIndex interface {
	Known(id string) bool
}

// suggester is implemented by catalogs that can offer "did you mean" hints.
type suggester interface {
	Suggest(query string, limit int) []string
}

// Input is everything one recomputation pass reads.
type Input struct {
	Selection  models.Selection
	Investment []models.ResourceCost // resources the player adds by hand
	Wallet     models.Wallet
}

// Preview is the result of one recomputation pass.
type Preview struct {
	Input
	Components    []string                      // ids that were resolved, in selection order
	Params        map[string]models.BoundParams // by component id
	Draft         models.Draft
	Affordability Affordability
	Warnings      []string
}

// Compute binds parameters, resolves effects, merges costs and checks affordability.
// Unknown or repeated component ids and unknown item ids produce warnings, not errors.
// items may be nil.
func Compute(lookup Lookup, items ItemIndex, in Input) Preview {
	p := Preview{
		Input:      in,
		Components: []string{},
		Params:     map[string]models.BoundParams{},
		Warnings:   []string{},
	}

	seen := make(map[string]bool, len(in.Selection))
	resolved := make([]Resolved, 0, len(in.Selection))
	vectors := [][]models.ResourceCost{in.Investment}

	for _, sc := range in.Selection {
		if seen[sc.ComponentID] {
			p.Warnings = append(p.Warnings, fmt.Sprintf("component %q selected more than once; extra selection ignored", sc.ComponentID))
			continue
		}
		seen[sc.ComponentID] = true

		comp, ok := lookup.Component(sc.ComponentID)
		if !ok {
			p.Warnings = append(p.Warnings, unknownComponent(lookup, sc.ComponentID))
			continue
		}

		bound := BindParams(comp.Parameters, sc.Params)
		if len(comp.Parameters) > 0 {
			p.Params[comp.ID] = bound
		}
		resolved = append(resolved, Resolved{Component: comp, Params: bound})
		vectors = append(vectors, comp.BaseCost)
		p.Components = append(p.Components, comp.ID)
	}

	p.Draft = Resolve(resolved)
	p.Draft.ResourceCost = MergeCosts(vectors...)

	if items != nil {
		for _, rc := range p.Draft.ResourceCost {
			if !items.Known(rc.ItemID) {
				p.Warnings = append(p.Warnings, fmt.Sprintf("unknown item %q treated as zero inventory", rc.ItemID))
			}
		}
	}

	p.Affordability = CheckAffordability(in.Wallet, p.Draft.GoldCost, p.Draft.EssenceCost, p.Draft.ResourceCost)
	return p
}

func unknownComponent(lookup Lookup, id string) string {
	msg := fmt.Sprintf("unknown component %q skipped", id)
	if s, ok := lookup.(suggester); ok {
		if hints := s.Suggest(id, 1); len(hints) > 0 {
			msg += fmt.Sprintf(" (did you mean %q?)", hints[0])
		}
	}
	return msg
}
