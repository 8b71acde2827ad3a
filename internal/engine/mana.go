package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/manacost"
)

// costToBag converts a parsed mana cost into the ColorBag shape an add_mana
// step deposits into a player's pool. Hybrid symbols are a cost-paying
// concept, not a producible one, and the parser never emits them for an
// "add" clause in practice; they are dropped here rather than double-counted.
func costToBag(cost manacost.Cost) cardstate.ColorBag {
	return cardstate.ColorBag{
		White:     cost.Count(manacost.ColorWhite),
		Blue:      cost.Count(manacost.ColorBlue),
		Black:     cost.Count(manacost.ColorBlack),
		Red:       cost.Count(manacost.ColorRed),
		Green:     cost.Count(manacost.ColorGreen),
		Colorless: cost.Count(manacost.ColorNone) + cost.Generic,
	}
}
