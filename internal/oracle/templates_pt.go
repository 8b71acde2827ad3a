package oracle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var reModifyPT = regexp.MustCompile(`^(?:if (.+?), )?(.+?) gets? ([+-](?:\d+|x))/([+-](?:\d+|x))( until end of turn| until your next turn)?$`)

var reCondition = regexp.MustCompile(`^you control (a|an|\d+|[a-z]+) (.+)$`)

var ptQuantifiers = []string{"target ", "that ", "each ", "all "}

// parsePTComponent parses a signed delta term ("+1", "-2", "+x", "-x") into
// its magnitude (or sign, when isX) and whether it scales with X.
func parsePTComponent(s string) (val int, isX bool) {
	s = strings.TrimSpace(s)
	sign := 1
	switch {
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	if strings.EqualFold(s, "x") {
		return sign, true
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n * sign, false
}

func ptDuration(suffix string) cardstate.Duration {
	switch suffix {
	case " until end of turn":
		return cardstate.DurationEndOfTurn
	case " until your next turn":
		return cardstate.DurationUntilYourNextTurn
	default:
		return cardstate.DurationPermanent
	}
}

func stripPTQuantifier(phrase string) string {
	for _, q := range ptQuantifiers {
		if strings.HasPrefix(phrase, q) {
			return strings.TrimPrefix(phrase, q)
		}
	}
	return phrase
}

// tryModifyPT matches "[if <condition>, ]<target> get(s) <delta>/<delta>
// [until end of turn|until your next turn]". X-expression
// resolution for a scaling delta is left to the executor; the parser only
// records that the delta scales with X, since the "where X is ..." clause
// that defines X is not always adjacent to the get(s) clause.
func tryModifyPT(clauses []textnorm.Clause, i int) (Step, int, bool) {
	m := reModifyPT.FindStringSubmatch(text(clauses, i))
	if m == nil {
		return nil, 0, false
	}
	subjectPhrase, powerTerm, toughTerm, durationSuffix := m[2], m[3], m[4], m[5]

	requiresTarget := strings.Contains(subjectPhrase, "target")
	filter := parsePermanentFilter(stripPTQuantifier(subjectPhrase))

	pv, pIsX := parsePTComponent(powerTerm)
	tv, tIsX := parsePTComponent(toughTerm)

	var delta, xmul PTDelta
	scalesWithX := pIsX || tIsX
	if pIsX {
		xmul.Power = pv
	} else {
		delta.Power = pv
	}
	if tIsX {
		xmul.Toughness = tv
	} else {
		delta.Toughness = tv
	}

	var condition *Condition
	if m[1] != "" {
		if cm := reCondition.FindStringSubmatch(m[1]); cm != nil {
			amt := parseAmountWord(cm[1])
			minCount := 1
			if amt.Known {
				minCount = amt.Value
			}
			condition = &Condition{
				Filter:   parsePermanentFilter(cm[2] + " you control"),
				MinCount: minCount,
			}
		}
	}

	return ModifyPTStep{
		Base:           Base{Raw: raw(clauses, i)},
		Target:         filter,
		RequiresTarget: requiresTarget,
		Delta:          delta,
		ScalesWithX:    scalesWithX,
		XMultiplier:    xmul,
		Duration:       ptDuration(durationSuffix),
		Condition:      condition,
	}, 1, true
}
