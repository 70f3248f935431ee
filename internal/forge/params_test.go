package forge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tatianab/spellforge/internal/models"
)

func TestBindParamsNumeric(t *testing.T) {
	slider := models.ConfigurableParameter{Key: "power", Kind: models.ParamSlider, Min: 1, Max: 5, Step: 1, Default: 2}
	numeric := models.ConfigurableParameter{Key: "focus", Kind: models.ParamNumeric, Min: 0, Max: 50, Step: 5, Default: 10}
	free := models.ConfigurableParameter{Key: "bias", Kind: models.ParamNumeric, Min: -1, Max: 1, Default: 0}
	fine := models.ConfigurableParameter{Key: "fine", Kind: models.ParamSlider, Min: 0, Max: 1, Step: 0.1, Default: 0.5}
	offGrid := models.ConfigurableParameter{Key: "odd", Kind: models.ParamSlider, Min: 0, Max: 10, Step: 4, Default: 0}
	huge := models.ConfigurableParameter{Key: "huge", Kind: models.ParamSlider, Min: 0, Max: 1e300, Default: 0}
	preciseMax := models.ConfigurableParameter{Key: "pmax", Kind: models.ParamSlider, Min: 0, Max: 0.1234567896, Default: 0}
	preciseMin := models.ConfigurableParameter{Key: "pmin", Kind: models.ParamSlider, Min: 0.1234567894, Max: 1, Default: 1}
	preciseStep := models.ConfigurableParameter{Key: "pstep", Kind: models.ParamSlider, Min: 0, Max: 0.1234567896, Step: 0.1234567896, Default: 0}

	tests := []struct {
		name  string
		param models.ConfigurableParameter
		input map[string]string
		want  float64
	}{
		{"default when missing", slider, nil, 2},
		{"in range", slider, map[string]string{"power": "3"}, 3},
		{"clamped to max", slider, map[string]string{"power": "9"}, 5},
		{"clamped to min", slider, map[string]string{"power": "-3"}, 1},
		{"rounded to step", numeric, map[string]string{"focus": "12"}, 10},
		{"rounded up to step", numeric, map[string]string{"focus": "13"}, 15},
		{"unparseable falls back", slider, map[string]string{"power": "lots"}, 2},
		{"empty falls back", slider, map[string]string{"power": ""}, 2},
		{"NaN falls back", slider, map[string]string{"power": "NaN"}, 2},
		{"whitespace is trimmed", slider, map[string]string{"power": " 4 "}, 4},
		{"no step keeps fractions", free, map[string]string{"bias": "0.25"}, 0.25},
		{"fractional step", fine, map[string]string{"fine": "0.33"}, 0.3},
		{"step overshooting max snaps down", offGrid, map[string]string{"odd": "10"}, 8},
		{"other keys ignored", slider, map[string]string{"other": "5"}, 2},
		{"huge bounds stay finite", huge, map[string]string{"huge": "1e300"}, 1e300},
		{"precise max kept", preciseMax, map[string]string{"pmax": "9"}, 0.1234567896},
		{"precise min kept", preciseMin, map[string]string{"pmin": "-3"}, 0.1234567894},
		{"precise max kept with step", preciseStep, map[string]string{"pstep": "9"}, 0.1234567896},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bound := BindParams([]models.ConfigurableParameter{tt.param}, tt.input)
			assert.Equal(t, models.BoundParam{Kind: tt.param.Kind, Number: tt.want}, bound[tt.param.Key])
		})
	}
}

func TestBindParamsStaysInBounds(t *testing.T) {
	decls := []models.ConfigurableParameter{
		{Key: "a", Kind: models.ParamSlider, Min: 0, Max: 1e300, Step: 1e299, Default: 0},
		{Key: "b", Kind: models.ParamNumeric, Min: -0.3333333337, Max: 0.6666666667, Step: 0.1, Default: 0},
		{Key: "c", Kind: models.ParamSlider, Min: 1e-12, Max: 3e-12, Default: 2e-12},
	}
	inputs := []string{"-1e308", "-5", "-0.33333333349", "0", "0.6666666668", "7", "1e300", "1e308"}

	for _, in := range inputs {
		bound := BindParams(decls, map[string]string{"a": in, "b": in, "c": in})
		for _, p := range decls {
			v := bound[p.Key].Number
			assert.GreaterOrEqual(t, v, p.Min, "%s=%s", p.Key, in)
			assert.LessOrEqual(t, v, p.Max, "%s=%s", p.Key, in)
		}
	}
}

func TestBindParamsDefaultIsClamped(t *testing.T) {
	p := models.ConfigurableParameter{Key: "power", Kind: models.ParamSlider, Min: 1, Max: 5, Step: 1, Default: 0}
	assert.Equal(t, 1.0, BindParams([]models.ConfigurableParameter{p}, nil)["power"].Number)
}

func TestBindParamsDropdown(t *testing.T) {
	p := models.ConfigurableParameter{Key: "element", Kind: models.ParamDropdown, Options: []string{"fire", "ice"}, DefaultOption: "fire"}
	decls := []models.ConfigurableParameter{p}

	assert.Equal(t, "fire", BindParams(decls, nil)["element"].Option)
	assert.Equal(t, "ice", BindParams(decls, map[string]string{"element": "ice"})["element"].Option)
	assert.Equal(t, "fire", BindParams(decls, map[string]string{"element": "Ice"})["element"].Option)
	assert.Equal(t, "fire", BindParams(decls, map[string]string{"element": "void"})["element"].Option)
}

func TestBindParamsCompleteMap(t *testing.T) {
	decls := []models.ConfigurableParameter{
		{Key: "a", Kind: models.ParamSlider, Min: 0, Max: 1, Default: 1},
		{Key: "b", Kind: models.ParamDropdown, Options: []string{"x"}, DefaultOption: "x"},
	}
	bound := BindParams(decls, map[string]string{"a": "0"})
	assert.Len(t, bound, 2)
	assert.Equal(t, 0.0, bound["a"].Number)
	assert.Equal(t, "x", bound["b"].Option)
}
