package oracle

import (
	"regexp"
	"strings"

	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var reDealDamage = regexp.MustCompile(`deals (.+?) damage to (.+)$`)

// tryDealDamage matches "... deals N damage to <target>" anywhere in the
// clause; the source permanent is supplied by the executor's context, not
// the IR.
func tryDealDamage(clauses []textnorm.Clause, i int) (Step, int, bool) {
	m := reDealDamage.FindStringSubmatch(text(clauses, i))
	if m == nil {
		return nil, 0, false
	}
	target, ok := parseDamageTarget(m[2])
	if !ok {
		return nil, 0, false
	}
	return DealDamageStep{Base: Base{Raw: raw(clauses, i)}, Amount: parseAmountWord(m[1]), Target: target}, 1, true
}

func parseDamageTarget(phrase string) (DamageTarget, bool) {
	phrase = strings.TrimSpace(phrase)
	if parts := strings.Split(phrase, " or "); len(parts) > 1 {
		return parseDamageTargetCompound(parts, true)
	}
	if parts := strings.Split(phrase, " and "); len(parts) > 1 {
		return parseDamageTargetCompound(parts, false)
	}
	return parseDamageTargetSingle(phrase)
}

// parseDamageTargetCompound builds a multi-part target. "or" compounds are a
// choice of exactly one with no mechanism here to make that choice, so the
// executor always skips them; "and" compounds name several simultaneous
// recipients that all take the damage.
func parseDamageTargetCompound(parts []string, isChoice bool) (DamageTarget, bool) {
	var compound []DamageTarget
	for _, p := range parts {
		dt, ok := parseDamageTargetSingle(strings.TrimSpace(p))
		if !ok {
			return DamageTarget{}, false
		}
		compound = append(compound, dt)
	}
	return DamageTarget{Kind: DamageTargetCompound, Compound: compound, IsChoice: isChoice}, true
}

func parseDamageTargetSingle(phrase string) (DamageTarget, bool) {
	if sel, rem, ok := matchPlayerSubject(phrase); ok && rem == "" {
		return DamageTarget{Kind: DamageTargetPlayer, Player: sel}, true
	}
	// "target creature or player": the bare "player" half of a compound
	// target inherits the "target" qualifier from its sibling.
	if phrase == "player" {
		return DamageTarget{Kind: DamageTargetPlayer, Player: selector.PlayerSelector{Kind: selector.TargetPlayer}}, true
	}
	stripped := phrase
	requiresTarget := false
	switch {
	case strings.HasPrefix(stripped, "target "):
		stripped = strings.TrimPrefix(stripped, "target ")
		requiresTarget = true
	case strings.HasPrefix(stripped, "each "):
		stripped = strings.TrimPrefix(stripped, "each ")
	}
	filter := parsePermanentFilter(stripped)
	if len(filter.Types.Groups) == 0 && len(filter.Types.NegatedGroups) == 0 && filter.Types.RequiredSubtype == "" {
		return DamageTarget{}, false
	}
	return DamageTarget{Kind: DamageTargetGroup, Group: filter, RequiresTarget: requiresTarget}, true
}
