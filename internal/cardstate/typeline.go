package cardstate

import "strings"

// TypeLine splits a card's type line on the em dash into super/main types
// and subtypes: words between the dash are subtypes, words before it are
// super/main types.
type TypeLine struct {
	MainTypes []string
	SubTypes  []string
}

// ParseTypeLine parses a raw type line like "Legendary Creature — Human Wizard".
func ParseTypeLine(raw string) TypeLine {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TypeLine{}
	}
	main := raw
	var sub string
	if i := strings.IndexAny(raw, "—-"); i >= 0 {
		main = raw[:i]
		sub = raw[i+1:]
	}
	return TypeLine{
		MainTypes: fields(main),
		SubTypes:  fields(sub),
	}
}

func fields(s string) []string {
	raw := strings.Fields(s)
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.Trim(w, "—-")
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

func hasFold(list []string, want string) bool {
	for _, w := range list {
		if strings.EqualFold(w, want) {
			return true
		}
	}
	return false
}

// HasMainType reports whether the card's main type line contains typeName
// (case-insensitive), e.g. HasMainType("creature").
func (c CardRef) HasMainType(typeName string) bool {
	return hasFold(ParseTypeLine(c.TypeLine).MainTypes, typeName)
}

// HasSubType reports whether the card's subtypes contain subName.
func (c CardRef) HasSubType(subName string) bool {
	return hasFold(ParseTypeLine(c.TypeLine).SubTypes, subName)
}

// IsCreature, IsPlaneswalker, IsBattle, IsLand, IsArtifact, IsEnchantment
// classify a permanent's card by main type.
func (c CardRef) IsCreature() bool     { return c.HasMainType("creature") }
func (c CardRef) IsPlaneswalker() bool { return c.HasMainType("planeswalker") }
func (c CardRef) IsBattle() bool       { return c.HasMainType("battle") }
func (c CardRef) IsLand() bool         { return c.HasMainType("land") }
func (c CardRef) IsArtifact() bool     { return c.HasMainType("artifact") }
func (c CardRef) IsEnchantment() bool  { return c.HasMainType("enchantment") }

// DamagePermanent applies n damage to a permanent per its type: loyalty for
// planeswalkers, defense for battles, a damage counter for creatures.
func (p Permanent) DamagePermanent(n int) Permanent {
	switch {
	case p.Card.IsPlaneswalker():
		return p.AddCounter("loyalty", -n)
	case p.Card.IsBattle():
		return p.AddCounter("defense", -n)
	default:
		return p.AddCounter("damage", n)
	}
}
