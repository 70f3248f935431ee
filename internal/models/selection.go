package models

import (
	"maps"
	"slices"
	"strings"
)

// SelectedComponent is one entry of a selection with the user's raw parameter input.
type SelectedComponent struct {
	ComponentID string            `yaml:"component_id" json:"component_id"`
	Params      map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
}

// Selection is the ordered list of chosen components. Order is the order in which the
// player added them and drives fragment ordering and tie-breaks.
//
// Methods never modify the receiver; they return the updated selection.
type Selection []SelectedComponent

func (s Selection) index(id string) int {
	return slices.IndexFunc(s, func(sc SelectedComponent) bool { return sc.ComponentID == id })
}

func (s Selection) Contains(id string) bool {
	return s.index(id) >= 0
}

// Select appends id. Selecting an already selected component is a no-op.
func (s Selection) Select(id string) Selection {
	if s.Contains(id) {
		return s.clone()
	}
	return append(s.clone(), SelectedComponent{ComponentID: id})
}

// Deselect removes id together with its parameter input.
func (s Selection) Deselect(id string) Selection {
	i := s.index(id)
	out := s.clone()
	if i < 0 {
		return out
	}
	return slices.Delete(out, i, i+1)
}

func (s Selection) Toggle(id string) Selection {
	if s.Contains(id) {
		return s.Deselect(id)
	}
	return s.Select(id)
}

// SetParam records raw user input for a parameter of a selected component.
// Input for components that are not selected is dropped.
func (s Selection) SetParam(id, key, value string) Selection {
	out := s.clone()
	i := out.index(id)
	if i < 0 {
		return out
	}
	params := make(map[string]string, len(out[i].Params)+1)
	maps.Copy(params, out[i].Params)
	params[key] = value
	out[i].Params = params
	return out
}

func (s Selection) IDs() []string {
	ids := make([]string, len(s))
	for i, sc := range s {
		ids[i] = sc.ComponentID
	}
	return ids
}

func (s Selection) clone() Selection {
	out := make(Selection, len(s))
	for i, sc := range s {
		out[i] = SelectedComponent{ComponentID: sc.ComponentID, Params: maps.Clone(sc.Params)}
	}
	return out
}

// Name joins the name fragments for display.
func (d Draft) Name() string {
	return strings.Join(d.NameFragments, " ")
}

// Description joins the description fragments for display.
func (d Draft) Description() string {
	return strings.Join(d.DescriptionFragments, " ")
}
