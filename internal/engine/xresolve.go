package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/manacost"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

// scopedPlayerIDs resolves an XExpr's Scope to a concrete player set. All
// scopes that can be expressed are resolvable given a known controller;
// the bool is false only when the controller itself is unknown.
func scopedPlayerIDs(state cardstate.GameState, scope oracle.Scope, ctx selector.Context) ([]cardstate.PlayerID, bool) {
	switch scope {
	case oracle.ScopeYou:
		if ctx.ControllerID == "" {
			return nil, false
		}
		return []cardstate.PlayerID{ctx.ControllerID}, true
	case oracle.ScopeOpponents:
		if ctx.ControllerID == "" {
			return nil, false
		}
		var out []cardstate.PlayerID
		for _, p := range state.Players {
			if p.ID != ctx.ControllerID {
				out = append(out, p.ID)
			}
		}
		return out, true
	case oracle.ScopeEach, oracle.ScopeAll:
		return state.SeatOrder(), true
	default:
		return state.SeatOrder(), true
	}
}

// resolveX evaluates an X-expression against state and ctx.
// ok is false whenever the expression references a binding (a "that
// creature", an unresolved scope) the context does not carry, matching the
// same determinism contract as step resolution.
func resolveX(expr *oracle.XExpr, state cardstate.GameState, ctx selector.Context) (int, bool) {
	if expr == nil {
		return 0, false
	}
	switch expr.Kind {
	case oracle.XCountOpponents:
		ids, ok := scopedPlayerIDs(state, oracle.ScopeOpponents, ctx)
		if !ok {
			return 0, false
		}
		return len(ids), true

	case oracle.XCountCardsInZone:
		ids, ok := scopedPlayerIDs(state, expr.Scope, ctx)
		if !ok {
			return 0, false
		}
		total := 0
		for _, pid := range ids {
			p, found := state.PlayerByID(pid)
			if !found {
				continue
			}
			total += len(p.Zone(expr.Zone))
		}
		return total, true

	case oracle.XCountCardsInHands:
		ids, ok := scopedPlayerIDs(state, expr.Scope, ctx)
		if !ok {
			return 0, false
		}
		total := 0
		for _, pid := range ids {
			p, found := state.PlayerByID(pid)
			if !found {
				continue
			}
			total += len(p.Hand)
		}
		return total, true

	case oracle.XCountPermanents:
		perms, ok := selector.ResolvePermanents(expr.Filter, state, ctx)
		if !ok {
			return 0, false
		}
		return len(perms), true

	case oracle.XCountBasicLandTypes:
		perms, ok := selector.ResolvePermanents(expr.Filter, state, ctx)
		if !ok {
			return 0, false
		}
		seen := map[string]bool{}
		for _, perm := range perms {
			for _, basic := range []string{"Plains", "Island", "Swamp", "Mountain", "Forest"} {
				if perm.Card.HasSubType(basic) {
					seen[basic] = true
				}
			}
		}
		return len(seen), true

	case oracle.XCountExiledByThis:
		if !ctx.HasSourceID {
			return 0, false
		}
		total := 0
		for _, p := range state.Players {
			for _, c := range p.Exile {
				if c.ExiledBy == ctx.SourceID {
					total++
				}
			}
		}
		return total, true

	case oracle.XExtremeStat:
		perms, ok := selector.ResolvePermanents(expr.Filter, state, ctx)
		if !ok {
			return 0, false
		}
		best, any := 0, false
		for _, perm := range perms {
			if expr.Other && ctx.HasSourceID && perm.ID == ctx.SourceID {
				continue
			}
			var v int
			switch expr.Stat {
			case "toughness":
				tv, known := perm.Card.KnownToughness()
				if !known {
					continue
				}
				v = tv
			case "mana_value":
				mv, known := perm.Card.KnownManaValue()
				if !known {
					continue
				}
				v = mv
			default:
				pv, known := perm.Card.KnownPower()
				if !known {
					continue
				}
				v = pv
			}
			if !any || (expr.Greatest && v > best) || (!expr.Greatest && v < best) {
				best, any = v, true
			}
		}
		if !any {
			return 0, true
		}
		return best, true

	case oracle.XHalf:
		inner, ok := resolveX(expr.Inner, state, ctx)
		if !ok {
			return 0, false
		}
		if expr.RoundUp {
			return (inner + 1) / 2, true
		}
		return inner / 2, true

	case oracle.XTwice:
		inner, ok := resolveX(expr.Inner, state, ctx)
		if !ok {
			return 0, false
		}
		return inner * 2, true

	case oracle.XOnePlus:
		inner, ok := resolveX(expr.Inner, state, ctx)
		if !ok {
			return 0, false
		}
		return inner + 1, true

	case oracle.XLifeTotal:
		ids, ok := scopedPlayerIDs(state, expr.Scope, ctx)
		if !ok || len(ids) != 1 {
			return 0, false
		}
		p, found := state.PlayerByID(ids[0])
		if !found {
			return 0, false
		}
		return p.Life, true

	case oracle.XHalfLifeTotal:
		ids, ok := scopedPlayerIDs(state, expr.Scope, ctx)
		if !ok || len(ids) != 1 {
			return 0, false
		}
		p, found := state.PlayerByID(ids[0])
		if !found {
			return 0, false
		}
		if expr.RoundUp {
			return (p.Life + 1) / 2, true
		}
		return p.Life / 2, true

	case oracle.XCreaturePower:
		if !expr.ThisPermanent || !ctx.HasSourceID {
			return 0, false
		}
		perm, found := state.PermanentByID(ctx.SourceID)
		if !found {
			return 0, false
		}
		pv, known := perm.Card.KnownPower()
		if !known {
			return 0, false
		}
		return pv, true

	case oracle.XDevotion:
		ids, ok := scopedPlayerIDs(state, oracle.ScopeYou, ctx)
		if !ok {
			return 0, false
		}
		total := 0
		for _, perm := range state.Battlefield {
			if !containsPlayer(ids, perm.Controller) {
				continue
			}
			total += manacost.Parse(perm.Card.ManaCost).DevotionTo(expr.Color)
		}
		return total, true

	default:
		return 0, false
	}
}

func containsPlayer(ids []cardstate.PlayerID, id cardstate.PlayerID) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}
