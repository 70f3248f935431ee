package forge

import (
	"errors"
	"strings"

	"github.com/tatianab/spellforge/internal/models"
)

var ErrEmptySelection = errors.New("select at least one component")

// ShortfallError rejects a finalize attempt the wallet cannot pay for.
type ShortfallError struct {
	Shortfalls []Shortfall
}

func (e *ShortfallError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = s.String()
	}
	return "insufficient resources: " + strings.Join(parts, "; ")
}

// Finalize validates a preview and builds the payload for the generation service.
// prompt is optional free text from the player.
func Finalize(p Preview, prompt string) (models.FinalizeRequest, error) {
	if len(p.Components) == 0 {
		return models.FinalizeRequest{}, ErrEmptySelection
	}
	if !p.Affordability.Affordable {
		return models.FinalizeRequest{}, &ShortfallError{Shortfalls: p.Affordability.Shortfalls}
	}

	// Only the components that were resolved travel with the payload.
	used := make(map[string]bool, len(p.Components))
	for _, id := range p.Components {
		used[id] = true
	}
	selection := models.Selection{}
	for _, sc := range p.Selection {
		if used[sc.ComponentID] {
			selection = append(selection, sc)
			used[sc.ComponentID] = false
		}
	}

	return models.FinalizeRequest{
		Draft:      p.Draft,
		Selection:  selection,
		Params:     p.Params,
		Investment: MergeCosts(p.Investment),
		Prompt:     strings.TrimSpace(prompt),
	}, nil
}
