package oracle

import (
	"regexp"

	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var reDiscardRandom = regexp.MustCompile(`^discards?\s+(.+?)\s+cards? at random$`)

// tryDiscard matches the "discards N cards at random" variant, which
// trySimpleWhoAmount's plain discard pattern doesn't cover since it expects
// the clause to end at "cards".
func tryDiscard(clauses []textnorm.Clause, i int) (Step, int, bool) {
	who, rest, ok := matchPlayerSubject(text(clauses, i))
	if !ok {
		return nil, 0, false
	}
	m := reDiscardRandom.FindStringSubmatch(rest)
	if m == nil {
		return nil, 0, false
	}
	return DiscardStep{Base: Base{Raw: raw(clauses, i)}, Who: who, Amount: parseAmountWord(m[1])}, 1, true
}
