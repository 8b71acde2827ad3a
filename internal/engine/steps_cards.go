package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

func resolveWho(state cardstate.GameState, who selector.PlayerSelector, ctx selector.Context) ([]cardstate.PlayerID, bool) {
	return selector.ResolvePlayerSet(who, state, ctx)
}

func applyDraw(state cardstate.GameState, s oracle.DrawStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "draw: player selector did not resolve")
	}
	if !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "draw: amount is not a known integer")
	}
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		moved, rest := popTop(p.Library, s.Amount.Value)
		p = p.WithZone(cardstate.ZoneLibrary, rest)
		p = p.WithZone(cardstate.ZoneHand, appendCards(p.Hand, moved))
		state = state.WithPlayer(p)
	}
	return applied(state, "drew cards")
}

func applyMill(state cardstate.GameState, s oracle.MillStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "mill: player selector did not resolve")
	}
	if s.Loop != nil {
		anyApplied := false
		for _, pid := range ids {
			p, found := state.PlayerByID(pid)
			if !found {
				continue
			}
			var note string
			p, note = applyMillLoopReveal(p, *s.Loop)
			state = state.WithPlayer(p)
			if note != "" {
				anyApplied = true
			}
		}
		if !anyApplied {
			return applied(state, "no card in the library matched the reveal-until condition")
		}
		return applied(state, "milled revealed cards into the graveyard")
	}
	if !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "mill: amount is not a known integer")
	}
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		moved, rest := popTop(p.Library, s.Amount.Value)
		p = p.WithZone(cardstate.ZoneLibrary, rest)
		p = p.WithZone(cardstate.ZoneGraveyard, appendCards(p.Graveyard, moved))
		state = state.WithPlayer(p)
	}
	return applied(state, "milled cards")
}

// applyMillLoopReveal scans p's library from the top until a card satisfies
// loop.Stop, then mills the whole revealed run (match included) into the
// graveyard. Unlike the exile-loop counterpart this has no permission
// window and no player choice, so it is always fully deterministic.
func applyMillLoopReveal(p cardstate.Player, loop oracle.LoopDescriptor) (cardstate.Player, string) {
	idx := -1
	for i, c := range p.Library {
		if stopConditionMet(loop.Stop, c) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return p, ""
	}
	revealed := append([]cardstate.CardRef{}, p.Library[:idx+1]...)
	remainder := append([]cardstate.CardRef{}, p.Library[idx+1:]...)
	p = p.WithZone(cardstate.ZoneLibrary, remainder)
	p = p.WithZone(cardstate.ZoneGraveyard, appendCards(p.Graveyard, revealed))
	return p, "milled revealed cards"
}

// applyScry and applySurveil skip whenever the resolved player has a
// nonempty library: both effects hinge on a player choosing, card by card,
// whether it goes to the top or the bottom (scry) or the top or the
// graveyard (surveil), and that choice has no representation in
// selector.Context. An empty library removes the choice entirely — there is
// nothing to look at — so that case is a deterministic no-op instead.
func applyScry(state cardstate.GameState, s oracle.ScryStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "scry: player selector did not resolve")
	}
	if allLibrariesEmpty(state, ids) {
		return applied(state, "scry on an empty library is a no-op")
	}
	return skipped(state, ReasonRequiresChoice, "scry: per-card keep-on-top-or-bottom decision has no resolvable binding")
}

func applySurveil(state cardstate.GameState, s oracle.SurveilStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "surveil: player selector did not resolve")
	}
	if allLibrariesEmpty(state, ids) {
		return applied(state, "surveil on an empty library is a no-op")
	}
	return skipped(state, ReasonRequiresChoice, "surveil: per-card keep-on-top-or-graveyard decision has no resolvable binding")
}

func allLibrariesEmpty(state cardstate.GameState, ids []cardstate.PlayerID) bool {
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		if len(p.Library) > 0 {
			return false
		}
	}
	return true
}

func applyGainLife(state cardstate.GameState, s oracle.GainLifeStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "gain_life: player selector did not resolve")
	}
	if !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "gain_life: amount is not a known integer")
	}
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		p.Life += s.Amount.Value
		state = state.WithPlayer(p)
	}
	return applied(state, "gained life")
}

func applyLoseLife(state cardstate.GameState, s oracle.LoseLifeStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "lose_life: player selector did not resolve")
	}
	if !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "lose_life: amount is not a known integer")
	}
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		p.Life -= s.Amount.Value
		state = state.WithPlayer(p)
	}
	return applied(state, "lost life")
}

// applyAddMana folds the parsed Cost into a ColorBag. Generic symbols in an
// "add" clause ("Add one mana of any color" aside) are rare in practice and
// fold into Colorless, since a produced mana ability never actually adds
// unpaid generic mana; it is a pragmatic default for the shapes the parser
// does recognize ("Add {W}{W}.").
func applyAddMana(state cardstate.GameState, s oracle.AddManaStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "add_mana: player selector did not resolve")
	}
	bag := costToBag(s.Cost)
	for _, pid := range ids {
		state = state.AddMana(pid, bag)
	}
	return applied(state, "added mana")
}

// applyDiscard moves a player's whole hand to the graveyard whenever the
// hand has at most the requested amount (or the clause says "hand"
// outright); discarding fewer cards than the hand holds is a player choice
// with no representation here, so that case skips rather than picking an
// arbitrary subset, mirroring applySacrifice's choice-skip pattern.
func applyDiscard(state cardstate.GameState, s oracle.DiscardStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Who, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "discard: player selector did not resolve")
	}
	if !s.All && !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "discard: amount is not a known integer")
	}
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		if !s.All && len(p.Hand) > s.Amount.Value {
			return skipped(state, ReasonRequiresChoice, "discard: hand exceeds the requested amount; which cards is a player choice")
		}
	}
	for _, pid := range ids {
		p, found := state.PlayerByID(pid)
		if !found {
			continue
		}
		moved := p.Hand
		p = p.WithZone(cardstate.ZoneHand, nil)
		p = p.WithZone(cardstate.ZoneGraveyard, appendCards(p.Graveyard, moved))
		state = state.WithPlayer(p)
	}
	return applied(state, "discarded cards")
}
