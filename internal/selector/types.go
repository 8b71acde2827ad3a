// Package selector implements the selector algebra: typed player-set and
// permanent-filter selectors, resolved against a GameState and an
// ExecutionContext (here called Context; it is the same thing the boundary
// calls "SelectorContext", with controllerId/sourceId folded in once
// buildContext has run).
package selector

import "github.com/cardforge/oracle-engine/internal/cardstate"

// PlayerSelectorKind enumerates the player-set selector tags.
type PlayerSelectorKind string

const (
	You                   PlayerSelectorKind = "you"
	EachOpponent          PlayerSelectorKind = "each_opponent"
	EachPlayer            PlayerSelectorKind = "each_player"
	TargetPlayer          PlayerSelectorKind = "target_player"
	TargetOpponent        PlayerSelectorKind = "target_opponent"
	ThatPlayer            PlayerSelectorKind = "that_player"
	DefendingPlayer       PlayerSelectorKind = "defending_player"
	OwnerOfMovedCards     PlayerSelectorKind = "owner_of_moved_cards"
	EachOfThoseOpponents  PlayerSelectorKind = "each_of_those_opponents"
)

// PlayerSelector is a tagged player-set reference.
type PlayerSelector struct {
	Kind PlayerSelectorKind
}

// TypeGroup is one of the battlefield-group families a permanent filter can
// target.
type TypeGroup string

const (
	GroupPermanent    TypeGroup = "permanent" // any permanent, no type restriction
	GroupCreature     TypeGroup = "creature"
	GroupPlaneswalker TypeGroup = "planeswalker"
	GroupBattle       TypeGroup = "battle"
	GroupLand         TypeGroup = "land"
	GroupArtifact     TypeGroup = "artifact"
	GroupEnchantment  TypeGroup = "enchantment"
)

// TypePredicate composes a union of TypeGroups (the disjunction formed by
// "creatures and planeswalkers") with negation prefixes like "nonartifact",
// "nonland", "non-Human".
type TypePredicate struct {
	// Groups is the disjunction of main-type groups to match. Empty means
	// "any permanent" (GroupPermanent).
	Groups []TypeGroup

	// NegatedGroups excludes permanents matching any of these main-type
	// groups ("nonartifact", "nonland").
	NegatedGroups []TypeGroup

	// RequiredSubtype/NegatedSubtype implement "non-Human creatures" style
	// subtype filters.
	RequiredSubtype string
	NegatedSubtype  string
}

// Matches reports whether card satisfies the type predicate.
func (t TypePredicate) Matches(card cardstate.CardRef) bool {
	if len(t.Groups) > 0 {
		matched := false
		for _, g := range t.Groups {
			if matchesGroup(card, g) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	for _, g := range t.NegatedGroups {
		if matchesGroup(card, g) {
			return false
		}
	}
	if t.RequiredSubtype != "" && !card.HasSubType(t.RequiredSubtype) {
		return false
	}
	if t.NegatedSubtype != "" && card.HasSubType(t.NegatedSubtype) {
		return false
	}
	return true
}

func matchesGroup(card cardstate.CardRef, g TypeGroup) bool {
	switch g {
	case GroupPermanent, "":
		return true
	case GroupCreature:
		return card.IsCreature()
	case GroupPlaneswalker:
		return card.IsPlaneswalker()
	case GroupBattle:
		return card.IsBattle()
	case GroupLand:
		return card.IsLand()
	case GroupArtifact:
		return card.IsArtifact()
	case GroupEnchantment:
		return card.IsEnchantment()
	default:
		return false
	}
}

// ControllerPredicateKind enumerates the controller predicates a permanent
// filter can carry.
type ControllerPredicateKind string

const (
	CtrlAny               ControllerPredicateKind = "all"
	CtrlYou               ControllerPredicateKind = "you"
	CtrlOpponents         ControllerPredicateKind = "opponents"
	CtrlNotYou            ControllerPredicateKind = "not_you"
	CtrlPossessiveOpponent ControllerPredicateKind = "possessive_opponent"
	CtrlExplicit          ControllerPredicateKind = "explicit"
)

// ControllerPredicate restricts a permanent filter by controller.
type ControllerPredicate struct {
	Kind        ControllerPredicateKind
	ExplicitIDs []cardstate.PlayerID
}

// PermanentFilter composes a type predicate with a controller predicate,
// e.g. "nonartifact creatures your opponents control".
type PermanentFilter struct {
	Types      TypePredicate
	Controller ControllerPredicate
}

// PermanentRef pairs a resolved permanent with the zone-stable id used for
// conservation checks.
type PermanentRef struct {
	ID cardstate.PermanentID
}
