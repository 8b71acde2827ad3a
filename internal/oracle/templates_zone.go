package oracle

import (
	"regexp"
	"strings"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/cardforge/oracle-engine/internal/textnorm"
)

var reExileTopBare = regexp.MustCompile(`^exiles? the top(?: (.+?))? cards? of (?:their|your|his or her) library$`)

func exileTopAmount(capture string) Amount {
	if capture == "" {
		return KnownAmount(1)
	}
	return parseAmountWord(capture)
}

var rePermissionClause = regexp.MustCompile(`^(?:until end of turn,? )?you may (play|cast) (?:that|it|those) cards?(?: without paying (?:its|their) mana cost)?(?: this turn)?$`)

// tryExileTop matches "<player-set> exiles the top N card(s) of their
// library" with no trailing play/cast permission clause.
func tryExileTop(clauses []textnorm.Clause, i int) (Step, int, bool) {
	who, rest, ok := matchPlayerSubject(text(clauses, i))
	if !ok {
		return nil, 0, false
	}
	m := reExileTopBare.FindStringSubmatch(rest)
	if m == nil {
		return nil, 0, false
	}
	return ExileTopStep{Base: Base{Raw: raw(clauses, i)}, From: who, Amount: exileTopAmount(m[1])}, 1, true
}

// tryImpulseExileTop matches the same exile-top shape but requires a
// following "you may play/cast that card" permission clause, collapsing the
// two clauses into one ImpulseExileTopStep.
func tryImpulseExileTop(clauses []textnorm.Clause, i int) (Step, int, bool) {
	who, rest, ok := matchPlayerSubject(text(clauses, i))
	if !ok {
		return nil, 0, false
	}
	m := reExileTopBare.FindStringSubmatch(rest)
	if m == nil {
		return nil, 0, false
	}
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
	return ImpulseExileTopStep{
		Base:    Base{Raw: combinedRaw},
		From:    who,
		Amount:  exileTopAmount(m[1]),
		Grantee: GranteeController,
		Permission: Permission{
			Kind:                  kind,
			Duration:              cardstate.DurationEndOfTurn,
			WithoutPayingManaCost: withoutPaying,
			Grantee:               GranteeController,
		},
	}, 2, true
}

var reMoveZone = regexp.MustCompile(`^(return|put) (target |all )?(.+?) cards? from (.+?) to (.+?)$`)

// tryMoveZoneGroup matches "return/put [target|all] <types> card(s) from
// <zone> to <destination>" (its move_zone family).
func tryMoveZoneGroup(clauses []textnorm.Clause, i int) (Step, int, bool) {
	m := reMoveZone.FindStringSubmatch(text(clauses, i))
	if m == nil {
		return nil, 0, false
	}
	quantifier, typePhrase, fromPhrase, toPhrase := m[2], m[3], m[4], m[5]

	from, ok := parseZoneSource(fromPhrase)
	if !ok {
		return nil, 0, false
	}
	dest, ok := parseZoneDestination(toPhrase)
	if !ok {
		return nil, 0, false
	}

	return MoveZoneStep{
		Base:           Base{Raw: raw(clauses, i)},
		CardFilter:     parseTypePredicate(typePhrase),
		From:           from,
		To:             dest,
		RequiresTarget: strings.Contains(quantifier, "target"),
	}, 1, true
}

func parseZoneSource(phrase string) (ZoneSource, bool) {
	phrase = strings.TrimSpace(phrase)
	switch {
	case phrase == "all graveyards":
		return ZoneSource{Zone: cardstate.ZoneGraveyard, AllPlayers: true}, true
	case phrase == "all exiles" || phrase == "exile, all players' exile":
		return ZoneSource{Zone: cardstate.ZoneExile, AllPlayers: true}, true
	case strings.Contains(phrase, "graveyard"):
		return ZoneSource{Who: playerPossessiveSelector(phrase), Zone: cardstate.ZoneGraveyard}, true
	case strings.Contains(phrase, "exile"):
		return ZoneSource{Who: playerPossessiveSelector(phrase), Zone: cardstate.ZoneExile}, true
	case strings.Contains(phrase, "hand"):
		return ZoneSource{Who: playerPossessiveSelector(phrase), Zone: cardstate.ZoneHand}, true
	case strings.Contains(phrase, "library"):
		return ZoneSource{Who: playerPossessiveSelector(phrase), Zone: cardstate.ZoneLibrary}, true
	default:
		return ZoneSource{}, false
	}
}

func parseZoneDestination(phrase string) (ZoneDestination, bool) {
	phrase = strings.TrimSpace(phrase)
	switch {
	case strings.HasPrefix(phrase, "the battlefield"):
		dest := ZoneDestination{Kind: DestBattlefield}
		switch {
		case strings.Contains(phrase, "under your control"):
			dest.ControllerOverride = OverrideYou
		case strings.Contains(phrase, "under its owner's control"), strings.Contains(phrase, "under their owner's control"):
			dest.ControllerOverride = OverrideOwnerOfMoved
		}
		dest.EntersTapped = strings.Contains(phrase, "tapped")
		return dest, true
	case strings.Contains(phrase, "hand"):
		return ZoneDestination{Kind: DestOwnerHand}, true
	case strings.Contains(phrase, "graveyard"):
		return ZoneDestination{Kind: DestOwnerGraveyard}, true
	case strings.Contains(phrase, "exile"):
		return ZoneDestination{Kind: DestOwnerExile}, true
	default:
		return ZoneDestination{}, false
	}
}

func playerPossessiveSelector(phrase string) selector.PlayerSelector {
	switch {
	case strings.Contains(phrase, "your "):
		return selector.PlayerSelector{Kind: selector.You}
	default:
		return selector.PlayerSelector{Kind: selector.ThatPlayer}
	}
}
