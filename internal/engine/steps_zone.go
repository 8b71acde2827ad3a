package engine

import (
	"github.com/google/uuid"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

func destinationZone(kind oracle.DestinationKind) (cardstate.ZoneKind, bool) {
	switch kind {
	case oracle.DestOwnerHand:
		return cardstate.ZoneHand, true
	case oracle.DestOwnerGraveyard:
		return cardstate.ZoneGraveyard, true
	case oracle.DestOwnerExile:
		return cardstate.ZoneExile, true
	default:
		return "", false
	}
}

// applyMoveZone handles the "return/put <filter> cards from <zone> to
// <destination>" family. A step marked RequiresTarget always skips: the IR
// carries no bound id for which specific card in a private zone was
// targeted, so there is nothing for the executor to resolve, mirroring the
// same rule modify_pt and group destroy/exile apply to "target" phrasing.
func applyMoveZone(state cardstate.GameState, s oracle.MoveZoneStep, ctx selector.Context) outcome {
	if s.RequiresTarget {
		return skipped(state, ReasonRequiresTarget, "move_zone: \"target\" clause has no bound card id")
	}

	var sourceIDs []cardstate.PlayerID
	if s.From.AllPlayers {
		sourceIDs = state.SeatOrder()
	} else {
		ids, ok := resolveWho(state, s.From.Who, ctx)
		if !ok {
			return skipped(state, ReasonUnresolvedTarget, "move_zone: source player selector did not resolve")
		}
		sourceIDs = ids
	}

	anyMatched := false
	for _, pid := range sourceIDs {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		zoneCards := p.Zone(s.From.Zone)
		var matched, remaining []cardstate.CardRef
		for _, c := range zoneCards {
			if s.CardFilter.Matches(c) {
				matched = append(matched, c)
			} else {
				remaining = append(remaining, c)
			}
		}
		if len(matched) == 0 {
			continue
		}
		p = p.WithZone(s.From.Zone, remaining)
		state = state.WithPlayer(p)

		if s.To.Kind == oracle.DestBattlefield {
			controller := pid
			if s.To.ControllerOverride == oracle.OverrideYou {
				if ctx.ControllerID == "" {
					return skipped(state, ReasonUnresolvedTarget, "move_zone: \"under your control\" has no resolved controller")
				}
				controller = ctx.ControllerID
			}
			var newPerms []cardstate.Permanent
			for _, c := range matched {
				newPerms = append(newPerms, cardstate.Permanent{
					ID:         cardstate.PermanentID(uuid.NewString()),
					Controller: controller,
					Owner:      pid,
					Card:       c.ClearExilePermission(),
					Tapped:     s.To.EntersTapped,
				})
				state = state.ClearPlayable(c.ID)
			}
			state = state.WithBattlefield(append(append([]cardstate.Permanent{}, state.Battlefield...), newPerms...))
			anyMatched = true
			continue
		}

		zoneKind, ok := destinationZone(s.To.Kind)
		if !ok {
			return skipped(state, ReasonNonapplicable, "move_zone: unrecognized destination")
		}
		cleared := make([]cardstate.CardRef, len(matched))
		for i, c := range matched {
			cleared[i] = c.ClearExilePermission()
			state = state.ClearPlayable(c.ID)
		}
		p, _ = state.PlayerByID(pid)
		p = p.WithZone(zoneKind, appendCards(p.Zone(zoneKind), cleared))
		state = state.WithPlayer(p)
		anyMatched = true
	}
	if !anyMatched {
		return applied(state, "no cards matched")
	}
	return applied(state, "moved cards")
}
