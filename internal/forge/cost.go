package forge

import "github.com/tatianab/spellforge/internal/models"

// MergeCosts sums resource vectors into one vector with a single entry per item id.
// Totals do not depend on input order; entries are emitted in first-seen order and keep
// the first non-empty kind. Negative quantities count as zero and entries without an
// item id are dropped.
func MergeCosts(vectors ...[]models.ResourceCost) []models.ResourceCost {
	out := []models.ResourceCost{}
	index := make(map[string]int)

	for _, vec := range vectors {
		for _, rc := range vec {
			if rc.ItemID == "" {
				continue
			}
			qty := max(0, rc.Quantity)

			i, ok := index[rc.ItemID]
			if !ok {
				index[rc.ItemID] = len(out)
				out = append(out, models.ResourceCost{Kind: rc.Kind, ItemID: rc.ItemID, Quantity: qty})
				continue
			}
			out[i].Quantity += qty
			if out[i].Kind == "" {
				out[i].Kind = rc.Kind
			}
		}
	}
	return out
}
