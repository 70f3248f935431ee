package catalog

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Suggest returns up to limit component ids that resemble query, best match first.
// It is used for "did you mean" hints when an id or search finds nothing.
func (c *Catalog) Suggest(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		id    string
		score float64
	}
	results := make([]scored, 0, 8)
	for _, comp := range c.components {
		best := 0.0
		for _, cand := range []string{strings.ToLower(comp.ID), strings.ToLower(comp.Name)} {
			if cand == "" {
				continue
			}
			if s := matchScore(q, cand); s > best {
				best = s
			}
		}
		if best > 0 {
			results = append(results, scored{id: comp.ID, score: best})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].id < results[j].id
		}
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.id
	}
	return ids
}

func matchScore(token, cand string) float64 {
	switch {
	case token == cand:
		return 1.0
	case strings.HasPrefix(cand, token) && len(token) >= 2:
		return 0.9
	case strings.Contains(cand, token) && len(token) >= 3:
		return 0.8
	}
	dist := levenshtein.ComputeDistance(token, cand)
	if dist > levenshteinLimit(len(cand)) {
		return 0
	}
	return 0.72 - (0.08 * float64(dist))
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
