package oracle

import (
	"regexp"

	"github.com/cardforge/oracle-engine/internal/manacost"
	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var (
	reDraw        = regexp.MustCompile(`^draws?\s+(.+?)\s+cards?$`)
	reMill        = regexp.MustCompile(`^mills?\s+(.+?)\s+cards?$`)
	reScry        = regexp.MustCompile(`^(?:scry|scries)\s+(\S+)$`)
	reSurveil     = regexp.MustCompile(`^surveils?\s+(\S+)$`)
	reGainLife    = regexp.MustCompile(`^gains?\s+(\S+)\s+life$`)
	reLoseLife    = regexp.MustCompile(`^loses?\s+(\S+)\s+life$`)
	reDiscardHand = regexp.MustCompile(`^discards?\s+(?:their|your|his or her)\s+hand$`)
	reDiscardN    = regexp.MustCompile(`^discards?\s+(.+?)\s+cards?$`)
	reAddMana     = regexp.MustCompile(`^adds?\s+(\{[^}]+\}(?:\{[^}]+\})*)$`)
)

// trySimpleWhoAmount matches the base template family: a
// player-set subject followed by draw/mill/scry/surveil/discard/gain
// life/lose life/add mana.
func trySimpleWhoAmount(clauses []textnorm.Clause, i int) (Step, int, bool) {
	t := text(clauses, i)
	base := Base{Raw: raw(clauses, i)}

	who, rest, ok := matchPlayerSubject(t)
	if !ok {
		// Mana abilities are almost always written as a bare imperative
		// ("Add {W}.") with no explicit subject; the implicit subject is you.
		if m := reAddMana.FindStringSubmatch(t); m != nil {
			return AddManaStep{Base: base, Who: selector.PlayerSelector{Kind: selector.You}, Cost: manacost.Parse(m[1])}, 1, true
		}
		return nil, 0, false
	}

	if m := reDraw.FindStringSubmatch(rest); m != nil {
		return DrawStep{Base: base, Who: who, Amount: parseAmountWord(m[1])}, 1, true
	}
	if m := reMill.FindStringSubmatch(rest); m != nil {
		return MillStep{Base: base, Who: who, Amount: parseAmountWord(m[1])}, 1, true
	}
	if m := reScry.FindStringSubmatch(rest); m != nil {
		return ScryStep{Base: base, Who: who, Amount: parseAmountWord(m[1])}, 1, true
	}
	if m := reSurveil.FindStringSubmatch(rest); m != nil {
		return SurveilStep{Base: base, Who: who, Amount: parseAmountWord(m[1])}, 1, true
	}
	if m := reGainLife.FindStringSubmatch(rest); m != nil {
		return GainLifeStep{Base: base, Who: who, Amount: parseAmountWord(m[1])}, 1, true
	}
	if m := reLoseLife.FindStringSubmatch(rest); m != nil {
		return LoseLifeStep{Base: base, Who: who, Amount: parseAmountWord(m[1])}, 1, true
	}
	if reDiscardHand.MatchString(rest) {
		return DiscardStep{Base: base, Who: who, All: true}, 1, true
	}
	if m := reDiscardN.FindStringSubmatch(rest); m != nil {
		return DiscardStep{Base: base, Who: who, Amount: parseAmountWord(m[1])}, 1, true
	}
	if m := reAddMana.FindStringSubmatch(rest); m != nil {
		return AddManaStep{Base: base, Who: who, Cost: manacost.Parse(m[1])}, 1, true
	}
	return nil, 0, false
}
