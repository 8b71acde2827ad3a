package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/obslog"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
	"go.uber.org/zap"
)

// outcome is the internal return shape every per-kind apply function uses:
// the (possibly unchanged) state, a human-readable note on success, and a
// skip reason/detail on failure. ok distinguishes the two.
type outcome struct {
	state  cardstate.GameState
	note   string
	reason SkipReason
	detail string
	ok     bool
}

func applied(state cardstate.GameState, note string) outcome {
	return outcome{state: state, note: note, ok: true}
}

func skipped(state cardstate.GameState, reason SkipReason, detail string) outcome {
	return outcome{state: state, reason: reason, detail: detail, ok: false}
}

// Apply runs every step against state in order, threading the
// (possibly-updated) state through each one, and returns the full ledger.
// Apply never panics and never mutates state or any of its contents: every
// outcome function returns a fresh copy built through cardstate's With*
// helpers.
func Apply(state cardstate.GameState, steps []oracle.Step, ctx selector.Context, opts Options, log obslog.Sink) Result {
	if log == nil {
		log = obslog.NoOp
	}
	res := Result{State: state}
	for _, step := range steps {
		if step.IsOptional() && !opts.AllowOptional {
			res.Skipped = append(res.Skipped, SkippedStep{
				Step:   step,
				Reason: ReasonRequiresChoice,
				Detail: "optional step not taken",
			})
			log.Debug("skipped optional step", zap.String("kind", string(step.Kind())))
			continue
		}

		out := applyOne(res.State, step, ctx)
		if out.ok {
			res.State = out.state
			res.Applied = append(res.Applied, AppliedStep{Step: step, Note: out.note})
			log.Debug("applied step", zap.String("kind", string(step.Kind())), zap.String("note", out.note))
			continue
		}
		res.Skipped = append(res.Skipped, SkippedStep{Step: step, Reason: out.reason, Detail: out.detail})
		log.Debug("skipped step",
			zap.String("kind", string(step.Kind())),
			zap.String("reason", string(out.reason)),
			zap.String("detail", out.detail),
		)
	}
	return res
}

// applyOne dispatches on the step's concrete type, a preference
// for an exhaustive type switch over duck-typing.
func applyOne(state cardstate.GameState, step oracle.Step, ctx selector.Context) outcome {
	switch s := step.(type) {
	case oracle.DrawStep:
		return applyDraw(state, s, ctx)
	case oracle.MillStep:
		return applyMill(state, s, ctx)
	case oracle.ScryStep:
		return applyScry(state, s, ctx)
	case oracle.SurveilStep:
		return applySurveil(state, s, ctx)
	case oracle.GainLifeStep:
		return applyGainLife(state, s, ctx)
	case oracle.LoseLifeStep:
		return applyLoseLife(state, s, ctx)
	case oracle.AddManaStep:
		return applyAddMana(state, s, ctx)
	case oracle.DiscardStep:
		return applyDiscard(state, s, ctx)
	case oracle.ExileTopStep:
		return applyExileTop(state, s, ctx)
	case oracle.ImpulseExileTopStep:
		return applyImpulseExileTop(state, s, ctx)
	case oracle.DestroyStep:
		return applyDestroy(state, s, ctx)
	case oracle.ExileStep:
		return applyExileGroup(state, s, ctx)
	case oracle.SacrificeStep:
		return applySacrifice(state, s, ctx)
	case oracle.MoveZoneStep:
		return applyMoveZone(state, s, ctx)
	case oracle.CreateTokenStep:
		return applyCreateToken(state, s, ctx)
	case oracle.DealDamageStep:
		return applyDealDamage(state, s, ctx)
	case oracle.ModifyPTStep:
		return applyModifyPT(state, s, ctx)
	case oracle.NoOpStep:
		return skipped(state, ReasonNonapplicable, "no recognized template matched this clause")
	default:
		return skipped(state, ReasonNonapplicable, "unrecognized step kind")
	}
}

// popTop splits cards into the first n (capped at len(cards)) and the rest.
// A draw/mill/exile from a library shorter than the requested amount moves
// whatever remains rather than skip outright; running a library out is a
// legal, if unfortunate, outcome and not itself an ambiguity: only
// unresolved selectors and unknown amounts are skip conditions.
func popTop(cards []cardstate.CardRef, n int) (moved, rest []cardstate.CardRef) {
	if n < 0 {
		n = 0
	}
	if n > len(cards) {
		n = len(cards)
	}
	moved = append([]cardstate.CardRef{}, cards[:n]...)
	rest = append([]cardstate.CardRef{}, cards[n:]...)
	return moved, rest
}

func appendCards(dst, src []cardstate.CardRef) []cardstate.CardRef {
	return append(append([]cardstate.CardRef{}, dst...), src...)
}
