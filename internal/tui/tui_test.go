package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/spellforge/internal/catalog"
	"github.com/tatianab/spellforge/internal/models"
)

type fakeGenerator struct {
	got   *models.FinalizeRequest
	spell *models.Spell
	err   error
}

func (f *fakeGenerator) GenerateSpell(_ context.Context, req models.FinalizeRequest) (*models.Spell, error) {
	f.got = &req
	return f.spell, f.err
}

func testModel(t *testing.T, gen Generator) model {
	t.Helper()
	cat, err := catalog.New([]models.Component{
		{
			ID: "ember", Name: "Ember Core", Category: models.CategoryCore, Tier: 1, GoldCost: 10,
			Effects:  models.Effects{models.AddBaseDamage{Amount: 5}, models.NameFragment{Text: "Ember"}},
			BaseCost: []models.ResourceCost{{ItemID: "ore", Quantity: 1}},
		},
		{
			ID: "amp", Name: "Amplifier", Category: models.CategoryModifier, Tier: 2,
			Parameters: []models.ConfigurableParameter{{Key: "power", Label: "Power", Kind: models.ParamSlider, Min: 1, Max: 5, Step: 1, Default: 1}},
			Effects:    models.Effects{models.AddBaseDamage{Param: "power", Scale: 2}},
		},
	})
	require.NoError(t, err)
	return NewModel(gen, cat, nil, models.Wallet{Gold: 10, Inventory: map[string]int{"ore": 1}})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, keys ...string) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(key(k))
		m = next.(model)
	}
	return m, cmd
}

func TestSelectionUpdatesPreview(t *testing.T) {
	m := testModel(t, nil)

	m, _ = send(t, m, "space", "down", "space")
	assert.Equal(t, []string{"ember", "amp"}, m.selection.IDs())
	assert.Equal(t, 7, m.preview.Draft.Damage)
	assert.True(t, m.preview.Affordability.Affordable)

	m, _ = send(t, m, "space")
	assert.Equal(t, []string{"ember"}, m.selection.IDs())
	assert.Equal(t, 5, m.preview.Draft.Damage)
}

func TestEditParameter(t *testing.T) {
	m := testModel(t, nil)
	m, _ = send(t, m, "down", "space", "p")
	require.Equal(t, stateEditingParam, m.state)

	m, _ = send(t, m, "p", "o", "w", "e", "r", "=", "9", "enter")
	assert.Equal(t, stateBrowsing, m.state)
	assert.Equal(t, 10, m.preview.Draft.Damage)
}

func TestFilterInput(t *testing.T) {
	m := testModel(t, nil)
	m, _ = send(t, m, "/", "a", "m", "p")
	assert.Len(t, m.visible, 1)

	m, _ = send(t, m, "esc")
	assert.Equal(t, stateBrowsing, m.state)
	assert.Len(t, m.visible, 2)

	m, _ = send(t, m, "c")
	assert.Equal(t, models.CategoryCore, m.filter.Category)
	assert.Len(t, m.visible, 1)
}

func TestInvestment(t *testing.T) {
	m := testModel(t, nil)
	m, _ = send(t, m, "i", "o", "r", "e", "=", "2", "enter")
	assert.Equal(t, []models.ResourceCost{{ItemID: "ore", Quantity: 2}}, m.investment)
	assert.False(t, m.preview.Affordability.Affordable)

	m, _ = send(t, m, "i", "o", "r", "e", "=", "0", "enter")
	assert.Empty(t, m.investment)
	assert.True(t, m.preview.Affordability.Affordable)
}

func TestFinalizeValidation(t *testing.T) {
	gen := &fakeGenerator{}
	m := testModel(t, gen)

	m, cmd := send(t, m, "enter")
	assert.Nil(t, cmd)
	assert.Equal(t, "select at least one component", m.notice)
	assert.Nil(t, gen.got)

	m, _ = send(t, m, "i", "o", "r", "e", "=", "5", "enter", "space", "enter")
	assert.Contains(t, m.notice, "insufficient resources")
	assert.Equal(t, stateBrowsing, m.state)
}

func TestFinalizeGeneratesSpell(t *testing.T) {
	gen := &fakeGenerator{spell: &models.Spell{Name: "Ember Bolt", Damage: 5}}
	m := testModel(t, gen)

	m, cmd := send(t, m, "space", "enter")
	require.NotNil(t, cmd)
	assert.Equal(t, stateGenerating, m.state)

	next, _ := m.Update(cmd())
	m = next.(model)
	assert.Equal(t, stateResult, m.state)
	assert.Equal(t, "Ember Bolt", m.spell.Name)
	require.NotNil(t, gen.got)
	assert.Equal(t, []string{"ember"}, gen.got.Selection.IDs())

	m, _ = send(t, m, "enter")
	assert.Equal(t, stateBrowsing, m.state)
}

func TestFinalizeGeneratorError(t *testing.T) {
	m := testModel(t, &fakeGenerator{err: errors.New("quota exceeded")})
	m, cmd := send(t, m, "space", "enter")

	next, _ := m.Update(cmd())
	m = next.(model)
	assert.Equal(t, stateError, m.state)
	assert.Contains(t, m.View(), "quota exceeded")
}

func TestFinalizeWithoutGenerator(t *testing.T) {
	m := testModel(t, nil)
	m, cmd := send(t, m, "space", "enter")
	assert.Nil(t, cmd)
	assert.Contains(t, m.notice, "GEMINI_API_KEY")
}
