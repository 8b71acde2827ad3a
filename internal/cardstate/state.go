package cardstate

// ColorBag is a per-player mana pool bag, keyed by the six colors the mana
// tokenizer recognizes.
type ColorBag struct {
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// Add returns the sum of two bags.
func (b ColorBag) Add(o ColorBag) ColorBag {
	return ColorBag{
		White:     b.White + o.White,
		Blue:      b.Blue + o.Blue,
		Black:     b.Black + o.Black,
		Red:       b.Red + o.Red,
		Green:     b.Green + o.Green,
		Colorless: b.Colorless + o.Colorless,
	}
}

// PlayableMark is one entry of state.playableFromExile[player][card].
type PlayableMark struct {
	CardID           CardID
	PlayableUntilTurn int
}

// GameState is the immutable snapshot the executor reads and rebuilds.
// Every mutation in this package returns a new GameState; none of them
// touch the receiver's slices or maps in place.
type GameState struct {
	Players     []Player
	Battlefield []Permanent

	TurnNumber int
	TurnPlayer PlayerID
	Priority   PlayerID

	ManaPool           map[PlayerID]ColorBag
	PlayableFromExile  map[PlayerID]map[CardID]int // mirrors CardRef.PlayableUntilTurn
}

// Clone returns a deep copy of the whole snapshot.
func (s GameState) Clone() GameState {
	out := s
	if s.Players != nil {
		out.Players = make([]Player, len(s.Players))
		for i, p := range s.Players {
			out.Players[i] = p.Clone()
		}
	}
	if s.Battlefield != nil {
		out.Battlefield = make([]Permanent, len(s.Battlefield))
		for i, perm := range s.Battlefield {
			out.Battlefield[i] = perm.Clone()
		}
	}
	if s.ManaPool != nil {
		out.ManaPool = make(map[PlayerID]ColorBag, len(s.ManaPool))
		for k, v := range s.ManaPool {
			out.ManaPool[k] = v
		}
	}
	if s.PlayableFromExile != nil {
		out.PlayableFromExile = make(map[PlayerID]map[CardID]int, len(s.PlayableFromExile))
		for pid, byCard := range s.PlayableFromExile {
			cp := make(map[CardID]int, len(byCard))
			for cid, turn := range byCard {
				cp[cid] = turn
			}
			out.PlayableFromExile[pid] = cp
		}
	}
	return out
}

// PlayerByID returns the player with the given id and whether it was found.
// Players are looked up by identity, never by index, since callers cannot
// assume seat order is stable across snapshots.
func (s GameState) PlayerByID(id PlayerID) (Player, bool) {
	for _, p := range s.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// HasPlayer reports whether id names a current player.
func (s GameState) HasPlayer(id PlayerID) bool {
	_, ok := s.PlayerByID(id)
	return ok
}

// SeatOrder returns player ids in seat order.
func (s GameState) SeatOrder() []PlayerID {
	ids := make([]PlayerID, len(s.Players))
	for i, p := range s.Players {
		ids[i] = p.ID
	}
	return ids
}

// WithPlayer returns a copy of s with the player matching updated.ID
// replaced. If no such player exists, s is returned unchanged.
func (s GameState) WithPlayer(updated Player) GameState {
	out := s.Clone()
	for i, p := range out.Players {
		if p.ID == updated.ID {
			out.Players[i] = updated
			return out
		}
	}
	return out
}

// WithBattlefield returns a copy of s with the battlefield replaced.
func (s GameState) WithBattlefield(bf []Permanent) GameState {
	out := s.Clone()
	out.Battlefield = bf
	return out
}

// PermanentByID returns the permanent with the given id and whether found.
func (s GameState) PermanentByID(id PermanentID) (Permanent, bool) {
	for _, perm := range s.Battlefield {
		if perm.ID == id {
			return perm, true
		}
	}
	return Permanent{}, false
}

// MarkPlayable stamps the impulse-exile permission mirror for grantee/card.
func (s GameState) MarkPlayable(grantee PlayerID, card CardID, untilTurn int) GameState {
	out := s.Clone()
	if out.PlayableFromExile == nil {
		out.PlayableFromExile = map[PlayerID]map[CardID]int{}
	}
	byCard := out.PlayableFromExile[grantee]
	if byCard == nil {
		byCard = map[CardID]int{}
	} else {
		cp := make(map[CardID]int, len(byCard))
		for k, v := range byCard {
			cp[k] = v
		}
		byCard = cp
	}
	byCard[card] = untilTurn
	out.PlayableFromExile[grantee] = byCard
	return out
}

// ClearPlayable removes the impulse-exile mirror for card across every
// player, called whenever the card leaves exile by any move.
func (s GameState) ClearPlayable(card CardID) GameState {
	out := s.Clone()
	for pid, byCard := range out.PlayableFromExile {
		if _, ok := byCard[card]; ok {
			delete(byCard, card)
			out.PlayableFromExile[pid] = byCard
		}
	}
	return out
}

// AddMana returns a copy of s with delta added to player's mana pool.
func (s GameState) AddMana(player PlayerID, delta ColorBag) GameState {
	out := s.Clone()
	if out.ManaPool == nil {
		out.ManaPool = map[PlayerID]ColorBag{}
	}
	out.ManaPool[player] = out.ManaPool[player].Add(delta)
	return out
}
