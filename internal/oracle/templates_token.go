package oracle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var (
	reCreateToken = regexp.MustCompile(`^create (.+?) tokens?\b(.*)$`)
	reFirstWord   = regexp.MustCompile(`^(\S+)\s+(.*)$`)
	rePowerTough  = regexp.MustCompile(`(\d+)/(\d+)`)
	reTokenName   = regexp.MustCompile(`named (\S+)`)
)

var tokenColorWords = map[string]bool{
	"white": true, "blue": true, "black": true, "red": true, "green": true, "colorless": true,
}

var tokenMainTypeWords = map[string]bool{
	"creature": true, "artifact": true, "enchantment": true, "land": true, "planeswalker": true,
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
}

// buildTokenTemplate parses the descriptor that follows the count word in
// "create <count> <descriptor> token(s)", e.g. "a tapped 1/1 white Soldier
// creature with haste" or "a Treasure".
func buildTokenTemplate(descriptor string) TokenTemplate {
	var out TokenTemplate

	joined := " " + descriptor + " "
	if strings.Contains(joined, " tapped ") {
		out.Tapped = true
		joined = strings.Replace(joined, " tapped ", " ", 1)
	}
	if strings.Contains(joined, "with haste") {
		out.Haste = cardstate.HasteGrantUntilEndOfTurn
		joined = strings.Replace(joined, "with haste", " ", 1)
	}
	if nm := reTokenName.FindStringSubmatch(joined); nm != nil {
		out.Name = nm[1]
		joined = reTokenName.ReplaceAllString(joined, " ")
	}
	if pt := rePowerTough.FindStringSubmatch(joined); pt != nil {
		out.HasPT = true
		out.Power, _ = strconv.Atoi(pt[1])
		out.Toughness, _ = strconv.Atoi(pt[2])
		joined = rePowerTough.ReplaceAllString(joined, " ")
	}

	var colors, rest []string
	for _, f := range strings.Fields(joined) {
		lf := strings.ToLower(f)
		if tokenColorWords[lf] {
			colors = append(colors, capitalize(lf))
			continue
		}
		rest = append(rest, f)
	}
	out.Colors = colors

	var mains, subs []string
	for _, f := range rest {
		lf := strings.ToLower(f)
		if tokenMainTypeWords[lf] {
			mains = append(mains, capitalize(lf))
			continue
		}
		subs = append(subs, capitalize(f))
	}
	if len(mains) == 0 {
		mains = []string{"Artifact"}
	}
	out.MainTypes = mains
	out.Subtypes = subs

	if out.Name == "" {
		switch {
		case len(subs) > 0:
			out.Name = strings.Join(subs, " ")
		default:
			out.Name = strings.Join(mains, " ")
		}
	}
	return out
}

// tryCreateToken matches "[<player-set>] create[s] <count> <descriptor>
// token(s)". Subject defaults to "you" for the imperative form.
func tryCreateToken(clauses []textnorm.Clause, i int) (Step, int, bool) {
	t := text(clauses, i)
	controller := selector.PlayerSelector{Kind: selector.You}

	if who, rest, ok := matchPlayerSubject(t); ok && strings.HasPrefix(rest, "create") {
		controller = who
		t = rest
	} else if !strings.HasPrefix(t, "create ") {
		return nil, 0, false
	}

	m := reCreateToken.FindStringSubmatch(t)
	if m == nil {
		return nil, 0, false
	}
	fw := reFirstWord.FindStringSubmatch(m[1])
	if fw == nil {
		return nil, 0, false
	}
	count := parseAmountWord(fw[1])
	tmpl := buildTokenTemplate(strings.TrimSpace(fw[2] + " " + m[2]))

	return CreateTokenStep{
		Base:       Base{Raw: raw(clauses, i)},
		Template:   tmpl,
		Count:      count,
		Controller: controller,
	}, 1, true
}
