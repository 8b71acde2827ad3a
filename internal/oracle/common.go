package oracle

import (
	"regexp"
	"strings"

	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var reActivationCost = regexp.MustCompile(`^\{[^}]+\}(,\s*\{[^}]+\})*\s*[:,]`)

func text(clauses []textnorm.Clause, i int) string {
	if i < 0 || i >= len(clauses) {
		return ""
	}
	return clauses[i].Text
}

func raw(clauses []textnorm.Clause, i int) string {
	if i < 0 || i >= len(clauses) {
		return ""
	}
	return clauses[i].Original
}

// playerSubjectPhrases maps a recognized leading player-set phrase to its
// selector, longest phrases first so "each of your opponents" wins over
// "your opponents".
var playerSubjectPhrases = []struct {
	phrase string
	sel    selector.PlayerSelectorKind
}{
	{"each of those opponents", selector.EachOfThoseOpponents},
	{"those opponents", selector.EachOfThoseOpponents},
	{"each of your opponents", selector.EachOpponent},
	{"each opponent", selector.EachOpponent},
	{"your opponents", selector.EachOpponent},
	{"each player", selector.EachPlayer},
	{"target opponent", selector.TargetOpponent},
	{"target player", selector.TargetPlayer},
	{"the defending player", selector.DefendingPlayer},
	{"defending player", selector.DefendingPlayer},
	{"that player", selector.ThatPlayer},
	{"you", selector.You},
}

// matchPlayerSubject tries to strip a known player-set phrase as a prefix of
// s, returning the selector and the remainder of the string.
func matchPlayerSubject(s string) (selector.PlayerSelector, string, bool) {
	s = strings.TrimSpace(s)
	for _, cand := range playerSubjectPhrases {
		if s == cand.phrase {
			return selector.PlayerSelector{Kind: cand.sel}, "", true
		}
		if strings.HasPrefix(s, cand.phrase+" ") {
			return selector.PlayerSelector{Kind: cand.sel}, strings.TrimSpace(s[len(cand.phrase):]), true
		}
	}
	return selector.PlayerSelector{}, s, false
}

// typeGroupWords maps a singular or plural type-group noun to its TypeGroup.
var typeGroupWords = map[string]selector.TypeGroup{
	"creature":     selector.GroupCreature,
	"creatures":    selector.GroupCreature,
	"planeswalker": selector.GroupPlaneswalker,
	"planeswalkers": selector.GroupPlaneswalker,
	"battle":       selector.GroupBattle,
	"battles":      selector.GroupBattle,
	"land":         selector.GroupLand,
	"lands":        selector.GroupLand,
	"artifact":     selector.GroupArtifact,
	"artifacts":    selector.GroupArtifact,
	"enchantment":  selector.GroupEnchantment,
	"enchantments": selector.GroupEnchantment,
	"permanent":    selector.GroupPermanent,
	"permanents":   selector.GroupPermanent,
}

// parseTypePredicate parses a (possibly negated, possibly unioned with
// "and") type-group phrase, e.g. "nonartifact creatures", "creatures and
// planeswalkers", "non-Human creatures".
func parseTypePredicate(phrase string) selector.TypePredicate {
	phrase = strings.TrimSpace(phrase)
	var pred selector.TypePredicate

	for _, part := range strings.Split(phrase, " and ") {
		part = strings.TrimSpace(part)
		fields := strings.Fields(part)
		if len(fields) == 0 {
			continue
		}
		first := fields[0]
		noun := strings.Join(fields[1:], " ")

		switch {
		case strings.HasPrefix(first, "non-") && noun != "":
			pred.NegatedSubtype = strings.TrimPrefix(first, "non-")
			if g, ok := typeGroupWords[noun]; ok {
				pred.Groups = append(pred.Groups, g)
			}
		case strings.HasPrefix(first, "non") && noun != "":
			if g, ok := typeGroupWords[strings.TrimPrefix(first, "non")]; ok {
				pred.NegatedGroups = append(pred.NegatedGroups, g)
			}
			if g, ok := typeGroupWords[noun]; ok {
				pred.Groups = append(pred.Groups, g)
			}
		default:
			if g, ok := typeGroupWords[part]; ok {
				pred.Groups = append(pred.Groups, g)
			}
		}
	}
	return pred
}

// parseControllerPredicate recognizes the controller-predicate phrasings:
// "you control" / "your opponents control" suffixes and the
// possessive "your"/"your opponents'" prefixes.
func parseControllerPredicate(phrase string) selector.ControllerPredicate {
	phrase = strings.TrimSpace(phrase)
	switch {
	case strings.HasSuffix(phrase, "you control"):
		return selector.ControllerPredicate{Kind: selector.CtrlYou}
	case strings.HasSuffix(phrase, "your opponents control"), strings.HasSuffix(phrase, "each opponent controls"):
		return selector.ControllerPredicate{Kind: selector.CtrlOpponents}
	case strings.HasPrefix(phrase, "your opponents'"), strings.HasPrefix(phrase, "your opponents "):
		return selector.ControllerPredicate{Kind: selector.CtrlPossessiveOpponent}
	case strings.HasPrefix(phrase, "your "), strings.HasPrefix(phrase, "your"):
		return selector.ControllerPredicate{Kind: selector.CtrlYou}
	default:
		return selector.ControllerPredicate{Kind: selector.CtrlAny}
	}
}

// stripControllerSuffix removes a trailing "you control" / "your opponents
// control" clause and returns the bare type phrase plus the predicate.
func stripControllerSuffix(phrase string) (string, selector.ControllerPredicate) {
	phrase = strings.TrimSpace(phrase)
	suffixes := []string{" that you control", " you control", " your opponents control", " each opponent controls"}
	for _, suf := range suffixes {
		if strings.HasSuffix(phrase, suf) {
			return strings.TrimSpace(strings.TrimSuffix(phrase, suf)), parseControllerPredicate(phrase)
		}
	}
	// Possessive forms: "your opponents' creatures", "your creatures".
	if strings.HasPrefix(phrase, "your opponents' ") {
		return strings.TrimPrefix(phrase, "your opponents' "), selector.ControllerPredicate{Kind: selector.CtrlPossessiveOpponent}
	}
	if strings.HasPrefix(phrase, "your ") {
		return strings.TrimPrefix(phrase, "your "), selector.ControllerPredicate{Kind: selector.CtrlYou}
	}
	return phrase, selector.ControllerPredicate{Kind: selector.CtrlAny}
}

// parsePermanentFilter parses a full noun phrase like "nonartifact creatures
// you control" into a PermanentFilter.
func parsePermanentFilter(phrase string) selector.PermanentFilter {
	bare, ctrl := stripControllerSuffix(phrase)
	return selector.PermanentFilter{
		Types:      parseTypePredicate(bare),
		Controller: ctrl,
	}
}
