package oracle

import (
	"regexp"
	"strings"

	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var reDestroyExile = regexp.MustCompile(`^(destroy|exile)\s+(target |all |each )?(.+)$`)

// tryDestroyExileGroup matches "destroy/exile target|all|each <filter>".
// Whether the clause names a target is recorded here as RequiresTarget;
// filter resolution happens at apply time against the execution context.
func tryDestroyExileGroup(clauses []textnorm.Clause, i int) (Step, int, bool) {
	m := reDestroyExile.FindStringSubmatch(text(clauses, i))
	if m == nil {
		return nil, 0, false
	}
	filter := parsePermanentFilter(m[3])
	requiresTarget := strings.Contains(m[2], "target")
	base := Base{Raw: raw(clauses, i)}
	if m[1] == "destroy" {
		return DestroyStep{Base: base, Filter: filter, RequiresTarget: requiresTarget}, 1, true
	}
	return ExileStep{Base: base, Filter: filter, RequiresTarget: requiresTarget}, 1, true
}

var reAmountPhrase = regexp.MustCompile(`^(a|an|\d+|[a-zA-Z]+)\s+(.+)$`)

// parseSacrificeTarget splits "a creature" / "two artifacts" / "all
// creatures you control" into an amount-or-all plus a permanent filter.
func parseSacrificeTarget(rest string) (Amount, bool, selector.PermanentFilter, bool) {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "all ") {
		return Amount{}, true, parsePermanentFilter(strings.TrimPrefix(rest, "all ")), true
	}
	if strings.HasPrefix(rest, "each ") {
		return Amount{}, true, parsePermanentFilter(strings.TrimPrefix(rest, "each ")), true
	}
	m := reAmountPhrase.FindStringSubmatch(rest)
	if m == nil {
		return Amount{}, false, selector.PermanentFilter{}, false
	}
	return parseAmountWord(m[1]), false, parsePermanentFilter(m[2]), true
}

// trySacrifice matches "<player-set> sacrifices <n> <filter>" and the
// imperative "Sacrifice <n> <filter>" form (implicit "you").
func trySacrifice(clauses []textnorm.Clause, i int) (Step, int, bool) {
	t := text(clauses, i)
	var who selector.PlayerSelector
	var rest string

	if w, r, ok := matchPlayerSubject(t); ok {
		if !strings.HasPrefix(r, "sacrifice") {
			return nil, 0, false
		}
		who = w
		rest = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(r, "sacrifices"), "sacrifice"))
	} else if strings.HasPrefix(t, "sacrifice ") {
		who = selector.PlayerSelector{Kind: selector.You}
		rest = strings.TrimPrefix(t, "sacrifice ")
	} else {
		return nil, 0, false
	}

	amt, all, filter, ok := parseSacrificeTarget(rest)
	if !ok {
		return nil, 0, false
	}
	return SacrificeStep{
		Base:   Base{Raw: raw(clauses, i)},
		Who:    who,
		Filter: filter,
		Amount: amt,
		All:    all,
	}, 1, true
}
