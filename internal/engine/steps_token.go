package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

// typeLineFor renders a TokenTemplate's main/sub types back into the
// "Main Types — Sub Types" shape cardstate.ParseTypeLine expects, the same
// convention real Oracle text uses.
func typeLineFor(t oracle.TokenTemplate) string {
	main := strings.Join(t.MainTypes, " ")
	if len(t.Subtypes) == 0 {
		return main
	}
	return main + " — " + strings.Join(t.Subtypes, " ")
}

func applyCreateToken(state cardstate.GameState, s oracle.CreateTokenStep, ctx selector.Context) outcome {
	ids, ok := resolveWho(state, s.Controller, ctx)
	if !ok {
		return skipped(state, ReasonUnresolvedTarget, "create_token: controller selector did not resolve")
	}
	if !s.Count.Known {
		return skipped(state, ReasonUnknownAmount, "create_token: count is not a known integer")
	}

	var newPerms []cardstate.Permanent
	typeLine := typeLineFor(s.Template)
	for _, pid := range ids {
		for n := 0; n < s.Count.Value; n++ {
			card := cardstate.CardRef{
				ID:           cardstate.CardID(uuid.NewString()),
				Name:         s.Template.Name,
				TypeLine:     typeLine,
				HasManaValue: true,
				ManaValue:    0,
			}
			if s.Template.HasPT {
				card.HasPower = true
				card.Power = s.Template.Power
				card.HasToughness = true
				card.Toughness = s.Template.Toughness
			}
			newPerms = append(newPerms, cardstate.Permanent{
				ID:                            cardstate.PermanentID(uuid.NewString()),
				Controller:                    pid,
				Owner:                         pid,
				Card:                          card,
				Tapped:                        s.Template.Tapped,
				Counters:                      cloneIntMap(s.Template.Counters),
				IsToken:                       true,
				GrantsAbilitiesUntilEndOfTurn: append([]string{}, s.Template.GrantsAbilitiesUntilEndOfTurn...),
				GrantsHaste:                   s.Template.Haste,
				AtNextEndStep:                 s.Template.AtNextEndStep,
				AtEndOfCombat:                 s.Template.AtEndOfCombat,
			})
		}
	}
	if len(newPerms) == 0 {
		return applied(state, "no tokens created")
	}
	state = state.WithBattlefield(append(append([]cardstate.Permanent{}, state.Battlefield...), newPerms...))
	return applied(state, "created tokens")
}

func cloneIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
