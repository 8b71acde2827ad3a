package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

// removeFromBattlefield returns the battlefield with every permanent whose
// id is in ids removed, plus the removed permanents themselves in their
// original order.
func removeFromBattlefield(bf []cardstate.Permanent, ids map[cardstate.PermanentID]bool) (kept, removed []cardstate.Permanent) {
	for _, perm := range bf {
		if ids[perm.ID] {
			removed = append(removed, perm)
			continue
		}
		kept = append(kept, perm)
	}
	return kept, removed
}

// sendToGraveyard moves each removed permanent's card to its owner's
// graveyard, clearing the card's own impulse-exile markers first so that
// none survive past the card's exile-zone lifetime. The state-level
// PlayableFromExile scoreboard is not touched here.
func sendToGraveyard(state cardstate.GameState, removed []cardstate.Permanent) cardstate.GameState {
	byOwner := map[cardstate.PlayerID][]cardstate.CardRef{}
	for _, perm := range removed {
		byOwner[perm.Owner] = append(byOwner[perm.Owner], perm.Card.ClearExilePermission())
	}
	for owner, cards := range byOwner {
		p, found := state.PlayerByID(owner)
		if !found {
			continue
		}
		p = p.WithZone(cardstate.ZoneGraveyard, appendCards(p.Graveyard, cards))
		state = state.WithPlayer(p)
	}
	return state
}

func sendToExile(state cardstate.GameState, removed []cardstate.Permanent) cardstate.GameState {
	byOwner := map[cardstate.PlayerID][]cardstate.CardRef{}
	for _, perm := range removed {
		byOwner[perm.Owner] = append(byOwner[perm.Owner], perm.Card.ClearExilePermission())
	}
	for owner, cards := range byOwner {
		p, found := state.PlayerByID(owner)
		if !found {
			continue
		}
		p = p.WithZone(cardstate.ZoneExile, appendCards(p.Exile, cards))
		state = state.WithPlayer(p)
	}
	return state
}

func applyDestroy(state cardstate.GameState, s oracle.DestroyStep, ctx selector.Context) outcome {
	if s.RequiresTarget {
		return skipped(state, ReasonRequiresTarget, "destroy: \"target\" clause has no bound permanent id")
	}
	perms, ok := selector.ResolvePermanents(s.Filter, state, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "destroy: controller predicate did not resolve")
	}
	if len(perms) == 0 {
		return applied(state, "no permanents matched")
	}
	ids := permanentIDSet(perms)
	kept, removed := removeFromBattlefield(state.Battlefield, ids)
	state = state.WithBattlefield(kept)
	state = sendToGraveyard(state, removed)
	return applied(state, "destroyed permanents")
}

func applyExileGroup(state cardstate.GameState, s oracle.ExileStep, ctx selector.Context) outcome {
	if s.RequiresTarget {
		return skipped(state, ReasonRequiresTarget, "exile: \"target\" clause has no bound permanent id")
	}
	perms, ok := selector.ResolvePermanents(s.Filter, state, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "exile: controller predicate did not resolve")
	}
	if len(perms) == 0 {
		return applied(state, "no permanents matched")
	}
	ids := permanentIDSet(perms)
	kept, removed := removeFromBattlefield(state.Battlefield, ids)
	state = state.WithBattlefield(kept)
	state = sendToExile(state, removed)
	return applied(state, "exiled permanents")
}

func permanentIDSet(perms []cardstate.Permanent) map[cardstate.PermanentID]bool {
	out := make(map[cardstate.PermanentID]bool, len(perms))
	for _, p := range perms {
		out[p.ID] = true
	}
	return out
}

// applySacrifice always restricts candidates to permanents the resolved
// player controls, regardless of what the filter's own controller
// predicate says: "sacrifice a creature" always means one of your own, a
// convention so universal that Oracle text rarely bothers to spell out "you
// control" on a sacrifice clause.
//
// A fixed amount is deterministic only when the controlling player has
// exactly that many matching permanents: fewer means the clause can't be
// satisfied at all, more means a player choice the core has no mechanism to
// make. Either way the whole step skips rather than sacrificing a
// pseudo-random subset.
func applySacrifice(state cardstate.GameState, s oracle.SacrificeStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "sacrifice: player selector did not resolve")
	}
	if !s.All && !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "sacrifice: amount is not a known integer")
	}

	var toRemove []cardstate.Permanent
	for _, pid := range ids {
		var candidates []cardstate.Permanent
		for _, perm := range state.Battlefield {
			if perm.Controller != pid {
				continue
			}
			if !s.Filter.Types.Matches(perm.Card) {
				continue
			}
			candidates = append(candidates, perm)
		}
		if s.All {
			toRemove = append(toRemove, candidates...)
			continue
		}
		switch {
		case len(candidates) < s.Amount.Value:
			return skipped(state, ReasonNonapplicable, "sacrifice: not enough matching permanents controlled by the resolved player")
		case len(candidates) > s.Amount.Value:
			return skipped(state, ReasonRequiresChoice, "sacrifice: more matching permanents than required; which ones is a player choice")
		default:
			toRemove = append(toRemove, candidates...)
		}
	}
	if len(toRemove) == 0 {
		return applied(state, "no permanents matched")
	}
	idSet := permanentIDSet(toRemove)
	kept, removed := removeFromBattlefield(state.Battlefield, idSet)
	state = state.WithBattlefield(kept)
	state = sendToGraveyard(state, removed)
	return applied(state, "sacrificed permanents")
}
