package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

func applyDealDamage(state cardstate.GameState, s oracle.DealDamageStep, ctx selector.Context) outcome {
	if !s.Amount.Known {
		return skipped(state, ReasonUnknownAmount, "deal_damage: amount is not a known integer")
	}
	return dealDamageTo(state, s.Target, s.Amount.Value, ctx)
}

func dealDamageTo(state cardstate.GameState, target oracle.DamageTarget, amount int, ctx selector.Context) outcome {
	switch target.Kind {
	case oracle.DamageTargetPlayer:
		ids, ok := resolveWho(state, target.Player, ctx)
		if !ok {
			return skipped(state, ReasonUnresolvedTarget, "deal_damage: player selector did not resolve")
		}
		for _, pid := range ids {
			p, found := state.PlayerByID(pid)
			if !found {
				continue
			}
			p.Life -= amount
			state = state.WithPlayer(p)
		}
		return applied(state, "dealt damage to player")

	case oracle.DamageTargetGroup:
		if target.RequiresTarget {
			return skipped(state, ReasonRequiresTarget, "deal_damage: \"target\" clause has no bound permanent id")
		}
		perms, ok := selector.ResolvePermanents(target.Group, state, ctx)
		if !ok {
			return skipped(state, ReasonUnresolvedTarget, "deal_damage: controller predicate did not resolve")
		}
		if len(perms) == 0 {
			return applied(state, "no permanents matched")
		}
		bf := append([]cardstate.Permanent{}, state.Battlefield...)
		ids := permanentIDSet(perms)
		for i, perm := range bf {
			if ids[perm.ID] {
				bf[i] = perm.DamagePermanent(amount)
			}
		}
		state = state.WithBattlefield(bf)
		return applied(state, "dealt damage to permanents")

	case oracle.DamageTargetCompound:
		if target.IsChoice {
			// "target creature or player": a single instance goes to
			// exactly one of the listed options, chosen by whoever
			// controls the spell or ability. The core has no mechanism to
			// make that choice.
			return skipped(state, ReasonRequiresChoice, "deal_damage: compound target requires choosing one option")
		}
		// "each creature and each opponent": every listed recipient takes
		// a separate instance of the damage.
		for _, part := range target.Compound {
			out := dealDamageTo(state, part, amount, ctx)
			if !out.ok {
				return out
			}
			state = out.state
		}
		return applied(state, "dealt damage to each listed recipient")

	default:
		return skipped(state, ReasonNonapplicable, "deal_damage: unrecognized target shape")
	}
}
