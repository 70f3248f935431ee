package forge

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/tatianab/spellforge/internal/models"
)

// BindParams resolves the effective value of every declared parameter from the user's
// raw input. Missing, unparseable, or out-of-set input falls back to the default;
// numbers are clamped to [Min, Max] and snapped to Step counted from Min.
// Input for undeclared keys is ignored.
func BindParams(decls []models.ConfigurableParameter, input map[string]string) models.BoundParams {
	bound := make(models.BoundParams, len(decls))
	for _, p := range decls {
		raw, given := input[p.Key]

		switch p.Kind {
		case models.ParamSlider, models.ParamNumeric:
			v := p.Default
			if given {
				if f, ok := parseNumber(raw); ok {
					v = f
				}
			}
			bound[p.Key] = models.BoundParam{Kind: p.Kind, Number: snap(v, p)}

		case models.ParamDropdown:
			opt := p.DefaultOption
			if given && slices.Contains(p.Options, raw) {
				opt = raw
			}
			bound[p.Key] = models.BoundParam{Kind: p.Kind, Option: opt}
		}
	}
	return bound
}

func parseNumber(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func snap(v float64, p models.ConfigurableParameter) float64 {
	v = math.Max(p.Min, math.Min(p.Max, v))
	if p.Step > 0 {
		v = p.Min + math.Round((v-p.Min)/p.Step)*p.Step
		if v > p.Max {
			v = p.Min + math.Floor((p.Max-p.Min)/p.Step)*p.Step
		}
		// Trim float noise from repeated step arithmetic (0.1 * 3).
		if math.Abs(v) < 1e9 {
			v = math.Round(v*1e9) / 1e9
		}
	}
	return math.Max(p.Min, math.Min(p.Max, v))
}
