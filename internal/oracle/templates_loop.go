package oracle

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var reLoopStart = regexp.MustCompile(`^exiles? cards from the top of (?:your|their|his or her) library until (?:you|they|he or she) exiles? (?:a|an) (.+)$`)

var reMillLoopStart = regexp.MustCompile(`^reveals? cards from the top of (?:your|their|his or her) library until (?:you|they|he or she) reveals? (?:a|an) (.+?) card, then puts? (?:those|the|them) cards? into (?:your|their|his or her) graveyard$`)

var reCleanup = regexp.MustCompile(`^puts? the rest(?: on the bottom of (?:your|their) library)? in a random order$`)

func parseStopCondition(phrase string) StopCondition {
	switch {
	case phrase == "nonland card":
		return StopCondition{Kind: StopNonland}
	case phrase == "instant or sorcery card":
		return StopCondition{Kind: StopInstantOrSorcery}
	case strings.HasPrefix(phrase, "card with mana value "):
		fields := strings.Fields(strings.TrimPrefix(phrase, "card with mana value "))
		if len(fields) > 0 {
			n, _ := strconv.Atoi(fields[0])
			return StopCondition{Kind: StopManaValueAtLeast, ManaValueThreshold: n}
		}
	}
	return StopCondition{Kind: StopCardType, CardType: phrase}
}

// tryRevealOrExileUntilLoop matches the "[<player-set>] exile(s) cards from
// the top of your/their library until you/they exile a <condition> card"
// family (the Possibility Storm / Dream Harvest / Wand of Wonder pattern),
// collapsing the loop clause, its trailing play/cast permission clause, and
// an optional "put the rest ... in a random order" cleanup clause into one
// ImpulseExileTopStep. Subject defaults to "you" for the bare imperative
// form ("Exile cards from..."). A loop without a following permission
// clause isn't this family; it's left for another template to claim.
func tryRevealOrExileUntilLoop(clauses []textnorm.Clause, i int) (Step, int, bool) {
	t := text(clauses, i)
	who, rest, ok := matchPlayerSubject(t)
	if !ok {
		who = selector.PlayerSelector{Kind: selector.You}
		rest = t
	}
	m := reLoopStart.FindStringSubmatch(rest)
	if m == nil {
		return nil, 0, false
	}
	stop := parseStopCondition(m[1])

	if i+1 >= len(clauses) {
		return nil, 0, false
	}
	pm := rePermissionClause.FindStringSubmatch(text(clauses, i+1))
	if pm == nil {
		return nil, 0, false
	}
	kind := PermissionPlay
	if pm[1] == "cast" {
		kind = PermissionCast
	}
	withoutPaying := strings.Contains(text(clauses, i+1), "without paying")
	if withoutPaying {
		kind = PermissionCastWithoutPaying
	}

	combinedRaw := raw(clauses, i) + ". " + raw(clauses, i+1)
	consumed := 2

	cleanupNote := ""
	if next := i + consumed; next < len(clauses) && reCleanup.MatchString(text(clauses, next)) {
		cleanupNote = "put the rest on the bottom in a random order"
		combinedRaw += ". " + raw(clauses, next)
		consumed++
	}

	return ImpulseExileTopStep{
		Base:    Base{Raw: combinedRaw},
		From:    who,
		Amount:  UnknownAmount(),
		Grantee: GranteeController,
		Permission: Permission{
			Kind:                  kind,
			Duration:              cardstate.DurationEndOfTurn,
			WithoutPayingManaCost: withoutPaying,
			Grantee:               GranteeController,
		},
		Loop: &LoopDescriptor{Stop: stop, CleanupNote: cleanupNote},
	}, consumed, true
}

// tryRevealUntilMillLoop matches "[<player-set>] reveal(s) cards from the
// top of your/their library until you/they reveal a <type> card, then puts
// those cards into your/their graveyard" — the deterministic mill-loop
// counterpart to the exile family above. Unlike the exile loop there is no
// permission window and no player choice: every revealed card, match
// included, always goes to the graveyard.
func tryRevealUntilMillLoop(clauses []textnorm.Clause, i int) (Step, int, bool) {
	t := text(clauses, i)
	who, rest, ok := matchPlayerSubject(t)
	if !ok {
		who = selector.PlayerSelector{Kind: selector.You}
		rest = t
	}
	m := reMillLoopStart.FindStringSubmatch(rest)
	if m == nil {
		return nil, 0, false
	}
	stop := parseStopCondition(m[1] + " card")
	return MillStep{
		Base: Base{Raw: raw(clauses, i)},
		Who:  who,
		Loop: &LoopDescriptor{Stop: stop},
	}, 1, true
}
