package forge

import (
	"fmt"

	"github.com/tatianab/spellforge/internal/models"
)

type ShortfallKind string

const (
	ShortGold    ShortfallKind = "gold"
	ShortEssence ShortfallKind = "essence"
	ShortItem    ShortfallKind = "item"
)

// Shortfall is one dimension of a cost the wallet cannot cover.
type Shortfall struct {
	Kind ShortfallKind `yaml:"kind"`
	ID   string        `yaml:"id"`
	Have int           `yaml:"have"`
	Need int           `yaml:"need"`
}

func (s Shortfall) String() string {
	return fmt.Sprintf("need %d %s (have %d)", s.Need, s.ID, s.Have)
}

// Affordability is affordable exactly when Shortfalls is empty.
type Affordability struct {
	Affordable bool        `yaml:"affordable"`
	Shortfalls []Shortfall `yaml:"shortfalls"`
}

// CheckAffordability compares a cost against a wallet. Having exactly what is needed is
// enough; items missing from the inventory count as zero.
func CheckAffordability(w models.Wallet, gold, essence int, resources []models.ResourceCost) Affordability {
	shortfalls := []Shortfall{}
	if w.Gold < gold {
		shortfalls = append(shortfalls, Shortfall{Kind: ShortGold, ID: "gold", Have: w.Gold, Need: gold})
	}
	if w.Essence < essence {
		shortfalls = append(shortfalls, Shortfall{Kind: ShortEssence, ID: "essence", Have: w.Essence, Need: essence})
	}
	for _, rc := range MergeCosts(resources) {
		have := w.Inventory[rc.ItemID]
		if have < rc.Quantity {
			shortfalls = append(shortfalls, Shortfall{Kind: ShortItem, ID: rc.ItemID, Have: have, Need: rc.Quantity})
		}
	}
	return Affordability{Affordable: len(shortfalls) == 0, Shortfalls: shortfalls}
}
