package oracle

import (
	"strings"

	"github.com/cardforge/oracle-engine/internal/textnorm"
)

// ParseOracleText lowers raw Oracle text into an Ir. It is pure and total:
// malformed or unrecognized text never panics, it degrades to a NoOpStep.
func ParseOracleText(text string, cardName string) Ir {
	clauses := textnorm.Normalize(text)
	if len(clauses) == 0 {
		return Ir{CardName: cardName}
	}

	abilityType := inferAbilityType(clauses[0])

	var steps []Step
	i := 0
	for i < len(clauses) {
		step, consumed := matchClauseAt(clauses, i)
		steps = append(steps, step)
		if consumed < 1 {
			consumed = 1
		}
		i += consumed
	}

	return Ir{
		CardName: cardName,
		Abilities: []Ability{{
			Type:  abilityType,
			Steps: steps,
		}},
	}
}

func inferAbilityType(first textnorm.Clause) AbilityType {
	t := first.Text
	switch {
	case strings.HasPrefix(t, "whenever ") || strings.HasPrefix(t, "when ") ||
		strings.HasPrefix(t, "at the beginning of "):
		return AbilityTriggered
	case strings.Contains(t, "}:") || reActivationCost.MatchString(t):
		return AbilityActivated
	case strings.HasPrefix(t, "if you would ") && strings.Contains(t, " instead"):
		return AbilityReplacement
	default:
		return AbilityStatic
	}
}

// matchFunc attempts to match the template starting at clauses[i], possibly
// consuming more than one clause (e.g. exile + look-ahead permission
// grant). It returns the matched step and how many clauses it consumed.
type matchFunc func(clauses []textnorm.Clause, i int) (Step, int, bool)

// templates is the prioritized template list: the first matching template
// wins, most specific first.
var templates = []matchFunc{
	tryRevealOrExileUntilLoop,
	tryRevealUntilMillLoop,
	tryImpulseExileTop,
	tryExileTop,
	tryMoveZoneGroup,
	tryDestroyExileGroup,
	trySacrifice,
	tryDiscard,
	tryCreateToken,
	tryDealDamage,
	tryModifyPT,
	trySimpleWhoAmount,
}

func matchClauseAt(clauses []textnorm.Clause, i int) (Step, int) {
	for _, tpl := range templates {
		if step, consumed, ok := tpl(clauses, i); ok {
			return step, consumed
		}
	}
	return NoOpStep{Base: Base{Raw: clauses[i].Original}}, 1
}
