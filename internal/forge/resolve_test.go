package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tatianab/spellforge/internal/models"
)

func withEffects(id string, effects ...models.Effect) Resolved {
	return Resolved{Component: models.Component{ID: id, Effects: effects}}
}

func TestResolveEmpty(t *testing.T) {
	d := Resolve(nil)
	assert.Equal(t, 0, d.Damage)
	assert.Equal(t, 0, d.ManaCost)
	assert.Nil(t, d.Status)
	assert.Empty(t, d.Element)
	assert.NotNil(t, d.Tags)
	assert.NotNil(t, d.NameFragments)
}

func TestResolveDamageIsAdditive(t *testing.T) {
	d := Resolve([]Resolved{
		withEffects("a", models.AddBaseDamage{Amount: 2}),
		withEffects("b", models.AddBaseDamage{Amount: 2}),
		withEffects("c", models.AddBaseDamage{Amount: 2}),
	})
	assert.Equal(t, 6, d.Damage)
}

func TestResolveLastElementWins(t *testing.T) {
	d := Resolve([]Resolved{
		withEffects("a", models.SetElement{Element: models.ElementFire}, models.SetScalingStat{Stat: "intelligence"}),
		withEffects("b", models.SetElement{Element: models.ElementIce}),
		withEffects("c", models.SetScalingStat{Stat: "wisdom"}),
	})
	assert.Equal(t, models.ElementIce, d.Element)
	assert.Equal(t, "wisdom", d.ScalingStat)
}

func TestResolveStatusHighestChanceWins(t *testing.T) {
	burn := models.ApplyStatus{Status: "burn", Chance: 30, Duration: 2}
	chill := models.ApplyStatus{Status: "chill", Chance: 50, Duration: 1}

	for _, order := range [][]Resolved{
		{withEffects("a", burn), withEffects("b", chill)},
		{withEffects("b", chill), withEffects("a", burn)},
	} {
		d := Resolve(order)
		require.NotNil(t, d.Status)
		assert.Equal(t, "chill", d.Status.Status)
		assert.Equal(t, 50.0, d.Status.Chance)
	}

	t.Run("tie keeps the earlier proposal", func(t *testing.T) {
		d := Resolve([]Resolved{
			withEffects("a", models.ApplyStatus{Status: "burn", Chance: 40}),
			withEffects("b", models.ApplyStatus{Status: "chill", Chance: 40}),
		})
		require.NotNil(t, d.Status)
		assert.Equal(t, "burn", d.Status.Status)
	})
}

func TestResolveManaTwoPass(t *testing.T) {
	t.Run("percent applies after all flats", func(t *testing.T) {
		d := Resolve([]Resolved{
			withEffects("a", models.ManaCostPercent{Delta: -50}),
			withEffects("b", models.ManaCostFlat{Delta: 10}),
		})
		assert.Equal(t, 5, d.ManaCost)
	})

	t.Run("percents compound", func(t *testing.T) {
		d := Resolve([]Resolved{
			withEffects("a", models.ManaCostFlat{Delta: 100}, models.ManaCostPercent{Delta: 10}),
			withEffects("b", models.ManaCostPercent{Delta: -50}),
		})
		assert.Equal(t, 55, d.ManaCost)
	})

	t.Run("component flat deltas count", func(t *testing.T) {
		d := Resolve([]Resolved{
			{Component: models.Component{ID: "a", ManaCost: 4, EnergyCost: 2}},
			withEffects("b", models.ManaCostFlat{Delta: 3}),
		})
		assert.Equal(t, 7, d.ManaCost)
		assert.Equal(t, 2, d.EnergyCost)
	})

	t.Run("floored and never negative", func(t *testing.T) {
		d := Resolve([]Resolved{withEffects("a", models.ManaCostFlat{Delta: 3}, models.ManaCostPercent{Delta: -10})})
		assert.Equal(t, 2, d.ManaCost)

		d = Resolve([]Resolved{withEffects("a", models.ManaCostFlat{Delta: -5})})
		assert.Equal(t, 0, d.ManaCost)
	})
}

func TestResolveTagsAndFragments(t *testing.T) {
	d := Resolve([]Resolved{
		withEffects("a", models.AddTag{Tag: "fire"}, models.NameFragment{Text: "Ember"}, models.DescriptionFragment{Text: "Hot."}),
		withEffects("b", models.AddTag{Tag: "projectile"}, models.AddTag{Tag: "fire"}, models.NameFragment{Text: "Ember"}),
		withEffects("c", models.NameFragment{Text: "Lance"}),
	})
	assert.Equal(t, []string{"fire", "projectile"}, d.Tags)
	assert.Equal(t, []string{"Ember", "Ember", "Lance"}, d.NameFragments)
	assert.Equal(t, []string{"Hot."}, d.DescriptionFragments)
}

func TestResolveIgnoresUnknownEffects(t *testing.T) {
	d := Resolve([]Resolved{
		withEffects("a", models.UnknownEffect{RawKind: "summon_familiar"}, models.AddBaseDamage{Amount: 3}),
	})
	assert.Equal(t, 3, d.Damage)
}

func TestResolveCurrencies(t *testing.T) {
	d := Resolve([]Resolved{
		{Component: models.Component{ID: "a", GoldCost: 10, EssenceCost: 1}},
		{Component: models.Component{ID: "b", GoldCost: 5, EssenceCost: 4}},
	})
	assert.Equal(t, 15, d.GoldCost)
	assert.Equal(t, 5, d.EssenceCost)
}

func TestResolveParameterDrivenEffects(t *testing.T) {
	comp := models.Component{
		ID: "prism",
		Effects: models.Effects{
			models.AddBaseDamage{Amount: 1, Param: "power", Scale: 2},
			models.SetElement{Element: models.ElementArcane, Param: "element"},
			models.ApplyStatus{Status: "poison", Chance: 30, Param: "potency"},
			models.ManaCostFlat{Delta: 1, Param: "missing"},
		},
	}

	d := Resolve([]Resolved{{Component: comp, Params: models.BoundParams{
		"power":   {Kind: models.ParamSlider, Number: 3},
		"element": {Kind: models.ParamDropdown, Option: "ice"},
		"potency": {Kind: models.ParamSlider, Number: 70},
	}}})
	assert.Equal(t, 6, d.Damage)
	assert.Equal(t, models.ElementIce, d.Element)
	require.NotNil(t, d.Status)
	assert.Equal(t, 70.0, d.Status.Chance)
	assert.Equal(t, 1, d.ManaCost, "unbound parameter keeps the literal")

	d = Resolve([]Resolved{{Component: comp}})
	assert.Equal(t, 1, d.Damage)
	assert.Equal(t, models.ElementArcane, d.Element)
}

func TestResolveIsPure(t *testing.T) {
	in := []Resolved{
		withEffects("a", models.AddTag{Tag: "fire"}, models.ApplyStatus{Status: "burn", Chance: 10}),
		withEffects("b", models.AddTag{Tag: "ice"}, models.NameFragment{Text: "Frost"}),
	}
	assert.Equal(t, Resolve(in), Resolve(in))
}
