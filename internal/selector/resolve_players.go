package selector

import "github.com/cardforge/oracle-engine/internal/cardstate"

// ResolvePlayerSet resolves a player-set selector against state and ctx.
// ok is false when the selector cannot be resolved deterministically;
// callers (the executor) must then skip the step rather than guess.
func ResolvePlayerSet(sel PlayerSelector, state cardstate.GameState, ctx Context) ([]cardstate.PlayerID, bool) {
	switch sel.Kind {
	case You:
		if ctx.ControllerID != "" && state.HasPlayer(ctx.ControllerID) {
			return []cardstate.PlayerID{ctx.ControllerID}, true
		}
		return nil, false

	case EachOpponent:
		return opponentsOf(state, ctx.ControllerID), true

	case EachPlayer:
		return state.SeatOrder(), true

	case TargetPlayer:
		if ctx.HasTargetPlayerID {
			return []cardstate.PlayerID{ctx.TargetPlayerID}, true
		}
		if ctx.HasTargetOpponentID {
			return []cardstate.PlayerID{ctx.TargetOpponentID}, true
		}
		return nil, false

	case TargetOpponent:
		if ctx.HasTargetOpponentID && ctx.TargetOpponentID != ctx.ControllerID {
			return []cardstate.PlayerID{ctx.TargetOpponentID}, true
		}
		if ctx.HasTargetPlayerID && IsOpponentOf(state, ctx.ControllerID, ctx.TargetPlayerID) {
			return []cardstate.PlayerID{ctx.TargetPlayerID}, true
		}
		if opp, ok := uniqueOpponent(state, ctx.ControllerID); ok {
			return []cardstate.PlayerID{opp}, true
		}
		return nil, false

	case ThatPlayer:
		if ctx.HasTargetPlayerID {
			return []cardstate.PlayerID{ctx.TargetPlayerID}, true
		}
		if ctx.HasTargetOpponentID {
			return []cardstate.PlayerID{ctx.TargetOpponentID}, true
		}
		return nil, false

	case DefendingPlayer:
		if ctx.HasTargetOpponentID {
			return []cardstate.PlayerID{ctx.TargetOpponentID}, true
		}
		if opp, ok := uniqueOpponent(state, ctx.ControllerID); ok {
			return []cardstate.PlayerID{opp}, true
		}
		return nil, false

	case EachOfThoseOpponents:
		if len(ctx.EachOfThoseOpponents) > 0 {
			out := make([]cardstate.PlayerID, len(ctx.EachOfThoseOpponents))
			copy(out, ctx.EachOfThoseOpponents)
			return out, true
		}
		if ctx.HasTargetOpponentID {
			return []cardstate.PlayerID{ctx.TargetOpponentID}, true
		}
		return nil, false

	case OwnerOfMovedCards:
		// Resolved per moved card by the move_zone executor, not generically.
		return nil, false

	default:
		return nil, false
	}
}

func opponentsOf(state cardstate.GameState, controller cardstate.PlayerID) []cardstate.PlayerID {
	var out []cardstate.PlayerID
	for _, p := range state.Players {
		if p.ID != controller {
			out = append(out, p.ID)
		}
	}
	return out
}

func uniqueOpponent(state cardstate.GameState, controller cardstate.PlayerID) (cardstate.PlayerID, bool) {
	opps := opponentsOf(state, controller)
	if len(opps) == 1 {
		return opps[0], true
	}
	return "", false
}
