package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

func conditionMet(cond *oracle.Condition, state cardstate.GameState, ctx selector.Context) (bool, bool) {
	if cond == nil {
		return true, true
	}
	perms, ok := selector.ResolvePermanents(cond.Filter, state, ctx)
	if !ok {
		return false, false
	}
	min := cond.MinCount
	if min <= 0 {
		min = 1
	}
	return len(perms) >= min, true
}

func applyModifyPT(state cardstate.GameState, s oracle.ModifyPTStep, ctx selector.Context) outcome {
	if s.RequiresTarget {
		return skipped(state, ReasonRequiresTarget, "modify_pt: \"target\" clause has no bound permanent id")
	}

	met, ok := conditionMet(s.Condition, state, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "modify_pt: condition filter did not resolve")
	}
	if !met {
		return applied(state, "condition not met")
	}

	perms, ok := selector.ResolvePermanents(s.Target, state, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "modify_pt: controller predicate did not resolve")
	}
	if len(perms) == 0 {
		return applied(state, "no permanents matched")
	}

	delta := s.Delta
	if s.ScalesWithX {
		if s.XExpression == nil {
			return skipped(state, ReasonUnsupportedExpression, "modify_pt: X-scaling delta with no bound X-expression")
		}
		x, ok := resolveX(s.XExpression, state, ctx)
		if !ok {
			return skipped(state, ReasonUnsupportedExpression, "modify_pt: X-expression did not resolve against this state")
		}
		delta.Power += s.XMultiplier.Power * x
		delta.Toughness += s.XMultiplier.Toughness * x
	}

	ids := permanentIDSet(perms)
	bf := append([]cardstate.Permanent{}, state.Battlefield...)
	for i, perm := range bf {
		if !ids[perm.ID] {
			continue
		}
		bf[i] = perm.WithModifier(cardstate.PTModifier{
			Power:     delta.Power,
			Toughness: delta.Toughness,
			Duration:  s.Duration,
			Source:    s.RawClause(),
		})
	}
	state = state.WithBattlefield(bf)
	return applied(state, "modified power/toughness")
}
