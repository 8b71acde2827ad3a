package selector

import "github.com/cardforge/oracle-engine/internal/cardstate"

// ResolvePermanents resolves a permanent filter against state and ctx. The
// controller predicate is always deterministic once ctx.ControllerID is
// known; ok is false only when the predicate needs a controller id that
// isn't present (e.g. "you" with an empty controller).
func ResolvePermanents(filter PermanentFilter, state cardstate.GameState, ctx Context) ([]cardstate.Permanent, bool) {
	controllerSet, ok := resolveControllerSet(filter.Controller, state, ctx)
	if !ok {
		return nil, false
	}

	var out []cardstate.Permanent
	for _, perm := range state.Battlefield {
		if controllerSet != nil && !containsPlayer(controllerSet, perm.Controller) {
			continue
		}
		if !filter.Types.Matches(perm.Card) {
			continue
		}
		out = append(out, perm)
	}
	return out, true
}

// resolveControllerSet returns the set of player ids a controller predicate
// restricts to, or nil meaning "no restriction" (CtrlAny).
func resolveControllerSet(pred ControllerPredicate, state cardstate.GameState, ctx Context) ([]cardstate.PlayerID, bool) {
	switch pred.Kind {
	case CtrlAny, "":
		return nil, true

	case CtrlYou:
		if ctx.ControllerID == "" || !state.HasPlayer(ctx.ControllerID) {
			return nil, false
		}
		return []cardstate.PlayerID{ctx.ControllerID}, true

	case CtrlNotYou, CtrlOpponents, CtrlPossessiveOpponent:
		if ctx.ControllerID == "" {
			return nil, false
		}
		return opponentsOf(state, ctx.ControllerID), true

	case CtrlExplicit:
		return pred.ExplicitIDs, true

	default:
		return nil, false
	}
}

func containsPlayer(set []cardstate.PlayerID, id cardstate.PlayerID) bool {
	for _, p := range set {
		if p == id {
			return true
		}
	}
	return false
}
