package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

func applyExileTop(state cardstate.GameState, s oracle.ExileTopStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.From, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "exile_top: player selector did not resolve")
	}
	if !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "exile_top: amount is not a known integer")
	}
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		moved, rest := popTop(p.Library, s.Amount.Value)
		p = p.WithZone(cardstate.ZoneLibrary, rest)
		p = p.WithZone(cardstate.ZoneExile, appendCards(p.Exile, moved))
		state = state.WithPlayer(p)
	}
	return applied(state, "exiled top cards")
}

// deadlineFor converts a granted Duration into the turn number after which
// the permission mirror should no longer be honored. TurnNumber advances by
// one per turn regardless of whose turn it is, so "your next turn" and its
// variants are exactly one turn number out (the Non-goals: multiplayer
// turn order is out of scope, so no seat-skipping math is needed here).
func deadlineFor(turn int, d cardstate.Duration) int {
	switch d {
	case cardstate.DurationUntilYourNextTurn, cardstate.DurationUntilEndOfYourNextTurn,
		cardstate.DurationUntilYourNextUpkeep, cardstate.DurationUntilYourNextEndStep:
		return turn + 1
	default:
		return turn
	}
}

func granteeID(grantee oracle.GranteeKind, controller, owner cardstate.PlayerID) (cardstate.PlayerID, bool) {
	switch grantee {
	case oracle.GranteeOwner:
		return owner, true
	case oracle.GranteeController:
		fallthrough
	default:
		if controller == "" {
			return "", false
		}
		return controller, true
	}
}

// isCastOnly reports whether kind grants only a cast permission, never a
// play permission.
func isCastOnly(kind oracle.PermissionKind) bool {
	return kind == oracle.PermissionCast || kind == oracle.PermissionCastWithoutPaying
}

// stampExiled grants the impulse-exile play permission to card, mirroring
// it into both the CardRef (for callers inspecting a single zone) and the
// state-level PlayableFromExile scoreboard, and records the source in
// CardRef.ExiledBy, which the "exiled with this permanent" X-expression
// reads. Lands never receive a cast-only permission: a
// cast-only grant on a land is suppressed entirely, since lands are played,
// never cast, and the clause gave the executor no play grant to fall back
// to.
func stampExiled(state cardstate.GameState, card cardstate.CardRef, permKind oracle.PermissionKind, grantee cardstate.PlayerID, deadline int, sourceID cardstate.PermanentID, hasSource bool) (cardstate.CardRef, cardstate.GameState) {
	if card.IsLand() && isCastOnly(permKind) {
		if hasSource {
			card.ExiledBy = sourceID
		}
		return card, state
	}
	card.CanBePlayedBy = grantee
	card.HasPlayPermission = true
	card.PlayableUntilTurn = deadline
	if hasSource {
		card.ExiledBy = sourceID
	}
	state = state.MarkPlayable(grantee, card.ID, deadline)
	return card, state
}

func applyImpulseExileTop(state cardstate.GameState, s oracle.ImpulseExileTopStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.From, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "impulse_exile_top: player selector did not resolve")
	}

	anyApplied := false
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}

		if s.Loop != nil {
			var note string
			p, state, note = applyLoopReveal(state, p, *s.Loop, s.Grantee, s.Permission, ctx)
			state = state.WithPlayer(p)
			if note != "" {
				anyApplied = true
			}
			continue
		}

		n := 1
		if s.Amount.Known {
			n = s.Amount.Value
		} else {
			return skipped(state, ReasonUnknownAmount, "impulse_exile_top: amount is not a known integer")
		}
		moved, rest := popTop(p.Library, n)
		p = p.WithZone(cardstate.ZoneLibrary, rest)
		state = state.WithPlayer(p)
		if len(moved) == 0 {
			continue
		}

		grantee, ok := granteeID(s.Grantee, ctx.ControllerID, pid)
		if !ok {
			return skipped(state, ReasonUnresolvedTarget, "impulse_exile_top: grantee controller is unresolved")
		}
		deadline := deadlineFor(state.TurnNumber, s.Permission.Duration)

		exiled := make([]cardstate.CardRef, len(moved))
		for i, c := range moved {
			var stamped cardstate.CardRef
			stamped, state = stampExiled(state, c, s.Permission.Kind, grantee, deadline, ctx.SourceID, ctx.HasSourceID)
			exiled[i] = stamped
		}
		p, _ = state.PlayerByID(pid)
		p = p.WithZone(cardstate.ZoneExile, appendCards(p.Exile, exiled))
		state = state.WithPlayer(p)
		anyApplied = true
	}
	if !anyApplied {
		return applied(state, "no cards matched the reveal-until condition")
	}
	return applied(state, "exiled top cards with play permission")
}

// applyLoopReveal runs one reveal/exile-until loop for a single player.
// The loop scans from the top until a card
// satisfies stop. When the loop carries a cleanup rider ("put the rest on
// the bottom ... in a random order"), the core never actually casts the
// qualifying card either, since casting needs a choice it can't make: the
// whole revealed run, matching card included, goes to the bottom of the
// library in revealed order and nothing is exiled. Without a cleanup
// rider, the matching card is exiled with its play/cast permission and the
// non-matching cards scanned along the way return to the bottom.
func applyLoopReveal(state cardstate.GameState, p cardstate.Player, loop oracle.LoopDescriptor, grantee oracle.GranteeKind, perm oracle.Permission, ctx selector.Context) (cardstate.Player, cardstate.GameState, string) {
	idx := -1
	for i, c := range p.Library {
		if stopConditionMet(loop.Stop, c) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p, state, ""
	}
	revealed := append([]cardstate.CardRef{}, p.Library[:idx+1]...)
	remainder := append([]cardstate.CardRef{}, p.Library[idx+1:]...)

	if loop.CleanupNote != "" {
		p = p.WithZone(cardstate.ZoneLibrary, append(remainder, revealed...))
		return p, state, "revealed cards returned to the library, none cast"
	}

	nonMatching := revealed[:idx]
	target := revealed[idx]
	p = p.WithZone(cardstate.ZoneLibrary, append(remainder, nonMatching...))

	gid, ok := granteeID(grantee, ctx.ControllerID, p.ID)
	if !ok {
		return p, state, ""
	}
	deadline := deadlineFor(state.TurnNumber, perm.Duration)
	var stamped cardstate.CardRef
	stamped, state = stampExiled(state, target, perm.Kind, gid, deadline, ctx.SourceID, ctx.HasSourceID)
	p = p.WithZone(cardstate.ZoneExile, appendCards(p.Exile, []cardstate.CardRef{stamped}))
	return p, state, "exiled the matching card with play permission"
}

func stopConditionMet(stop oracle.StopCondition, card cardstate.CardRef) bool {
	switch stop.Kind {
	case oracle.StopNonland:
		return !card.IsLand()
	case oracle.StopInstantOrSorcery:
		return card.HasMainType("instant") || card.HasMainType("sorcery")
	case oracle.StopManaValueAtLeast:
		mv, known := card.KnownManaValue()
		return known && mv >= stop.ManaValueThreshold
	case oracle.StopCardType:
		return card.HasMainType(stop.CardType) || card.HasSubType(stop.CardType)
	default:
		return false
	}
}
