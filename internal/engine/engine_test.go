package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/spellforge/internal/models"
)

func sampleRequest() models.FinalizeRequest {
	return models.FinalizeRequest{
		Draft: models.Draft{
			NameFragments:        []string{"Ember", "Lance"},
			DescriptionFragments: []string{"Flames gather.", "It flies true."},
			Damage:               8,
			ManaCost:             6,
			Element:              models.ElementFire,
			Status:               &models.StatusProposal{Status: "burn", Chance: 30, Duration: 2, Magnitude: 1},
			Tags:                 []string{"fire", "projectile"},
		},
		Selection: models.Selection{{ComponentID: "ember_core"}, {ComponentID: "lance_form"}},
		Prompt:    "make it sound ancient",
	}
}

func TestRenderSpellPrompt(t *testing.T) {
	prompt, err := renderSpellPrompt(sampleRequest())
	require.NoError(t, err)

	for _, want := range []string{
		"Draft name fragments: Ember, Lance",
		"- Flames gather.",
		"Damage: 8",
		"Mana cost: 6",
		"Element: fire",
		"Scaling stat: none",
		"Status effect: burn (30% chance, 2 turns, magnitude 1)",
		"Tags: fire, projectile",
		"Components (in the order the player chose them): ember_core, lance_form",
		"The player adds: make it sound ancient",
	} {
		assert.Contains(t, prompt, want)
	}
}

func TestRenderSpellPromptWithoutOptionalParts(t *testing.T) {
	req := sampleRequest()
	req.Draft.Status = nil
	req.Draft.Element = ""
	req.Prompt = ""

	prompt, err := renderSpellPrompt(req)
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Status effect:")
	assert.NotContains(t, prompt, "The player adds")
	assert.Contains(t, prompt, "Element: none")
}

func TestParseSpell(t *testing.T) {
	draft := sampleRequest().Draft

	t.Run("fenced reply", func(t *testing.T) {
		reply := "```yaml\nname: Lance of the First Flame\ndescription: A spear of fire.\nelement: fire\ndamage: 8\nmana_cost: 6\nstatus_effect: burns for two turns\nflavor: Older than the mountains.\ntags: [fire]\n```"
		spell, err := parseSpell(reply, draft)
		require.NoError(t, err)
		assert.Equal(t, "Lance of the First Flame", spell.Name)
		assert.Equal(t, 8, spell.Damage)
		assert.Equal(t, []string{"fire"}, spell.Tags)
	})

	t.Run("missing numbers come from the draft", func(t *testing.T) {
		spell, err := parseSpell("name: Ember Lance\ndescription: Hot.", draft)
		require.NoError(t, err)
		assert.Equal(t, 8, spell.Damage)
		assert.Equal(t, 6, spell.ManaCost)
		assert.Equal(t, models.ElementFire, spell.Element)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := parseSpell("name: [unterminated", draft)
		assert.Error(t, err)

		_, err = parseSpell("description: nameless", draft)
		assert.Error(t, err)
	})
}
