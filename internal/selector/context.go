package selector

import "github.com/cardforge/oracle-engine/internal/cardstate"

// Context is the canonicalized execution context a resolved selector reads
// from: the controller/source of the effect plus whatever relational
// bindings buildContext assembled from caller hints. Presence
// is tracked with explicit Has* flags rather than relying on zero values,
// since "" is a meaningful (if unlikely) player id after trimming.
type Context struct {
	ControllerID cardstate.PlayerID

	SourceID    cardstate.PermanentID
	HasSourceID bool

	TargetPlayerID    cardstate.PlayerID
	HasTargetPlayerID bool

	TargetOpponentID    cardstate.PlayerID
	HasTargetOpponentID bool

	EachOfThoseOpponents []cardstate.PlayerID

	ReferenceSpellTypes []string
}

// IsOpponentOf reports whether id denotes a different current player than
// controller in the supplied state.
func IsOpponentOf(state cardstate.GameState, controller, id cardstate.PlayerID) bool {
	if id == "" || id == controller {
		return false
	}
	return state.HasPlayer(id)
}
