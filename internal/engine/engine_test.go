package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/selector"
)

func card(id, name, typeLine string) cardstate.CardRef {
	return cardstate.CardRef{ID: cardstate.CardID(id), Name: name, TypeLine: typeLine}
}

func twoPlayerState() cardstate.GameState {
	return cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1", Seat: 0, Life: 20},
			{ID: "p2", Seat: 1, Life: 20},
		},
		TurnNumber: 1,
		TurnPlayer: "p1",
	}
}

// the scenario: impulse exile with a next-turn play window.
func TestApply_ImpulseExileTop_GrantsPlayPermissionUntilNextTurn(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1", Library: []cardstate.CardRef{card("c1", "c1", ""), card("c2", "c2", ""), card("c3", "c3", "")}},
		},
		TurnNumber: 10,
		TurnPlayer: "p1",
	}
	step := oracle.ImpulseExileTopStep{
		From:       selector.PlayerSelector{Kind: selector.You},
		Amount:     oracle.KnownAmount(1),
		Grantee:    oracle.GranteeController,
		Permission: oracle.Permission{Kind: oracle.PermissionPlayOrCast, Duration: cardstate.DurationUntilEndOfYourNextTurn},
	}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	require.Empty(t, res.Skipped)
	p1, found := res.State.PlayerByID("p1")
	require.True(t, found)
	require.Len(t, p1.Exile, 1)
	assert.Equal(t, cardstate.CardID("c1"), p1.Exile[0].ID)
	assert.Equal(t, cardstate.PlayerID("p1"), p1.Exile[0].CanBePlayedBy)
	assert.True(t, p1.Exile[0].HasPlayPermission)
	assert.Equal(t, 11, p1.Exile[0].PlayableUntilTurn)
	assert.Equal(t, []cardstate.CardRef{card("c2", "c2", ""), card("c3", "c3", "")}, p1.Library)
}

// the scenario: "each of your opponents draws a card" in a 3-player game.
func TestApply_EachOpponentDraw_ThreePlayers(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1", Library: []cardstate.CardRef{card("a", "a", "")}},
			{ID: "p2", Library: []cardstate.CardRef{card("b", "b", "")}},
			{ID: "p3", Library: []cardstate.CardRef{card("c", "c", "")}},
		},
		TurnNumber: 1,
		TurnPlayer: "p1",
	}
	step := oracle.DrawStep{Who: selector.PlayerSelector{Kind: selector.EachOpponent}, Amount: oracle.KnownAmount(1)}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	p2, _ := res.State.PlayerByID("p2")
	p3, _ := res.State.PlayerByID("p3")
	assert.Len(t, p2.Hand, 1)
	assert.Len(t, p3.Hand, 1)
	p1, _ := res.State.PlayerByID("p1")
	assert.Len(t, p1.Hand, 0)
}

// the scenario: "destroy all creatures" splits removed permanents into
// each owner's graveyard and leaves non-creatures on the battlefield.
func TestApply_DestroyAllCreatures_SplitsByOwner(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1"},
			{ID: "p2"},
		},
		Battlefield: []cardstate.Permanent{
			{ID: "bf1", Controller: "p1", Owner: "p1", Card: card("c1", "Bear", "Creature — Bear")},
			{ID: "bf2", Controller: "p2", Owner: "p2", Card: card("c2", "Wolf", "Creature — Wolf")},
			{ID: "bf3", Controller: "p1", Owner: "p1", Card: card("c3", "Relic", "Artifact")},
		},
	}
	step := oracle.DestroyStep{Filter: selector.PermanentFilter{
		Types:      selector.TypePredicate{Groups: []selector.TypeGroup{selector.GroupCreature}},
		Controller: selector.ControllerPredicate{Kind: selector.CtrlAny},
	}}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	require.Len(t, res.State.Battlefield, 1)
	assert.Equal(t, cardstate.PermanentID("bf3"), res.State.Battlefield[0].ID)
	p1, _ := res.State.PlayerByID("p1")
	p2, _ := res.State.PlayerByID("p2")
	assert.Len(t, p1.Graveyard, 1)
	assert.Len(t, p2.Graveyard, 1)
}

// the scenario: "deals 2 damage to each creature and each opponent".
func TestApply_DealDamage_ToEachCreatureAndEachOpponent(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1", Life: 20},
			{ID: "p2", Life: 20},
		},
		Battlefield: []cardstate.Permanent{
			{ID: "bf1", Controller: "p1", Owner: "p1", Card: card("c1", "Bear", "Creature — Bear")},
			{ID: "bf2", Controller: "p2", Owner: "p2", Card: card("c2", "Wolf", "Creature — Wolf")},
		},
	}
	step := oracle.DealDamageStep{
		Amount: oracle.KnownAmount(2),
		Target: oracle.DamageTarget{
			Kind: oracle.DamageTargetCompound,
			Compound: []oracle.DamageTarget{
				{Kind: oracle.DamageTargetGroup, Group: selector.PermanentFilter{
					Types:      selector.TypePredicate{Groups: []selector.TypeGroup{selector.GroupCreature}},
					Controller: selector.ControllerPredicate{Kind: selector.CtrlAny},
				}},
				{Kind: oracle.DamageTargetPlayer, Player: selector.PlayerSelector{Kind: selector.EachOpponent}},
			},
		},
	}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	for _, perm := range res.State.Battlefield {
		assert.Equal(t, 2, perm.Counter("damage"))
	}
	p2, _ := res.State.PlayerByID("p2")
	assert.Equal(t, 18, p2.Life)
}

// the scenario: a sacrifice that over-matches the candidate pool is a
// player choice and skips rather than picking an arbitrary subset.
func TestApply_Sacrifice_OverMatchSkipsAsRequiresChoice(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{{ID: "p1"}, {ID: "p2"}},
		Battlefield: []cardstate.Permanent{
			{ID: "bf1", Controller: "p2", Owner: "p2", Card: card("c1", "Bear", "Creature — Bear")},
			{ID: "bf2", Controller: "p2", Owner: "p2", Card: card("c2", "Wolf", "Creature — Wolf")},
		},
	}
	step := oracle.SacrificeStep{
		Who:    selector.PlayerSelector{Kind: selector.EachOpponent},
		Filter: selector.PermanentFilter{Types: selector.TypePredicate{Groups: []selector.TypeGroup{selector.GroupCreature}}},
		Amount: oracle.KnownAmount(1),
	}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Empty(t, res.Applied)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, ReasonRequiresChoice, res.Skipped[0].Reason)
	assert.Equal(t, state.Battlefield, res.State.Battlefield)
}

func TestApply_Sacrifice_UnderMatchSkipsAsNonapplicable(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{{ID: "p1"}, {ID: "p2"}},
		Battlefield: []cardstate.Permanent{
			{ID: "bf1", Controller: "p2", Owner: "p2", Card: card("c1", "Bear", "Creature — Bear")},
		},
	}
	step := oracle.SacrificeStep{
		Who:    selector.PlayerSelector{Kind: selector.EachOpponent},
		Filter: selector.PermanentFilter{Types: selector.TypePredicate{Groups: []selector.TypeGroup{selector.GroupCreature}}},
		Amount: oracle.KnownAmount(2),
	}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Empty(t, res.Applied)
	require.Len(t, res.Skipped, 1)
	assert.Equal(t, ReasonNonapplicable, res.Skipped[0].Reason)
}

func TestApply_Sacrifice_ExactMatchApplies(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{{ID: "p1"}, {ID: "p2"}},
		Battlefield: []cardstate.Permanent{
			{ID: "bf1", Controller: "p2", Owner: "p2", Card: card("c1", "Bear", "Creature — Bear")},
		},
	}
	step := oracle.SacrificeStep{
		Who:    selector.PlayerSelector{Kind: selector.EachOpponent},
		Filter: selector.PermanentFilter{Types: selector.TypePredicate{Groups: []selector.TypeGroup{selector.GroupCreature}}},
		Amount: oracle.KnownAmount(1),
	}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	require.Empty(t, res.Skipped)
	assert.Empty(t, res.State.Battlefield)
	p2, _ := res.State.PlayerByID("p2")
	assert.Len(t, p2.Graveyard, 1)
}

// the scenario: a reveal/exile-until loop with a cleanup rider never
// casts the qualifying card (casting needs a choice the core can't make),
// so every revealed card cycles to the bottom of the library in the order
// it was scanned, and nothing ends up in exile.
func TestApply_ImpulseExileTop_LoopWithCleanupReturnsEverythingToLibrary(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1"},
			{ID: "p2", Library: []cardstate.CardRef{
				card("forest", "Forest", "Basic Land — Forest"),
				card("bear", "Bear", "Creature — Bear"),
				card("shock", "Shock", "Instant"),
				card("opt", "Opt", "Instant"),
			}},
		},
		TurnNumber: 3,
		TurnPlayer: "p1",
	}
	step := oracle.ImpulseExileTopStep{
		From:       selector.PlayerSelector{Kind: selector.TargetOpponent},
		Grantee:    oracle.GranteeController,
		Permission: oracle.Permission{Kind: oracle.PermissionCastWithoutPaying, WithoutPayingManaCost: true},
		Loop: &oracle.LoopDescriptor{
			Stop:        oracle.StopCondition{Kind: oracle.StopInstantOrSorcery},
			CleanupNote: "put the rest on the bottom of that library in a random order",
		},
	}
	ctx := selector.Context{ControllerID: "p1", HasTargetOpponentID: true, TargetOpponentID: "p2"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	require.Empty(t, res.Skipped)
	p2, _ := res.State.PlayerByID("p2")
	assert.Empty(t, p2.Exile)
	assert.Equal(t, []cardstate.CardID{"opt", "forest", "bear", "shock"}, cardIDs(p2.Library))
}

// Lands are played, never cast: a cast-only permission on a matching land
// is suppressed entirely rather than granting a cast permission it never
// earned.
func TestApply_ImpulseExileTop_Loop_LandNeverGetsCastPermission(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1", Library: []cardstate.CardRef{
				card("forest", "Forest", "Basic Land — Forest"),
			}},
		},
		TurnNumber: 3,
		TurnPlayer: "p1",
	}
	step := oracle.ImpulseExileTopStep{
		From:       selector.PlayerSelector{Kind: selector.You},
		Grantee:    oracle.GranteeController,
		Permission: oracle.Permission{Kind: oracle.PermissionCastWithoutPaying, WithoutPayingManaCost: true},
		Loop: &oracle.LoopDescriptor{
			Stop: oracle.StopCondition{Kind: oracle.StopCardType, CardType: "land"},
		},
	}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	p1, _ := res.State.PlayerByID("p1")
	require.Empty(t, p1.Library)
	require.Len(t, p1.Exile, 1)
	assert.False(t, p1.Exile[0].HasPlayPermission)
	assert.Equal(t, cardstate.PlayerID(""), p1.Exile[0].CanBePlayedBy)
}

// the scenario: a mill-until loop is fully deterministic, with no
// permission window — the whole revealed run goes to the graveyard.
func TestApply_Mill_LoopRevealsUntilMatchAndMillsAll(t *testing.T) {
	state := cardstate.GameState{
		Players: []cardstate.Player{
			{ID: "p1", Library: []cardstate.CardRef{
				card("forest", "Forest", "Basic Land — Forest"),
				card("bear", "Bear", "Creature — Bear"),
				card("shock", "Shock", "Instant"),
				card("opt", "Opt", "Instant"),
			}},
		},
		TurnNumber: 1,
		TurnPlayer: "p1",
	}
	step := oracle.MillStep{
		Who: selector.PlayerSelector{Kind: selector.You},
		Loop: &oracle.LoopDescriptor{
			Stop: oracle.StopCondition{Kind: oracle.StopInstantOrSorcery},
		},
	}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	p1, _ := res.State.PlayerByID("p1")
	assert.Equal(t, []cardstate.CardID{"forest", "bear", "shock"}, cardIDs(p1.Graveyard))
	assert.Equal(t, []cardstate.CardID{"opt"}, cardIDs(p1.Library))
}

// Scry/surveil on an empty library has no choice left to make, so it
// applies as a deterministic no-op instead of skipping.
func TestApply_Scry_EmptyLibrary_IsNoOp(t *testing.T) {
	state := twoPlayerState()
	step := oracle.ScryStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.KnownAmount(2)}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	require.Empty(t, res.Skipped)
}

func TestApply_Scry_NonemptyLibrary_RequiresChoiceSkip(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Library = []cardstate.CardRef{card("c1", "c1", "")}
	step := oracle.ScryStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.KnownAmount(2)}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, ReasonRequiresChoice, res.Skipped[0].Reason)
}

func TestApply_Surveil_EmptyLibrary_IsNoOp(t *testing.T) {
	state := twoPlayerState()
	step := oracle.SurveilStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.KnownAmount(1)}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	require.Empty(t, res.Skipped)
}

func cardIDs(cards []cardstate.CardRef) []cardstate.CardID {
	out := make([]cardstate.CardID, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

// Purity: Apply never mutates its input state.
func TestApply_DoesNotMutateInputState(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Library = []cardstate.CardRef{card("c1", "c1", "")}
	before := state.Clone()

	step := oracle.DrawStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.KnownAmount(1)}
	ctx := selector.Context{ControllerID: "p1"}
	_ = Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	assert.Equal(t, before, state)
}

// Totality: every step appears in exactly one of Applied/Skipped, and the
// ledger covers every input step exactly once.
func TestApply_EveryStepIsAppliedOrSkippedExactlyOnce(t *testing.T) {
	state := twoPlayerState()
	steps := []oracle.Step{
		oracle.DrawStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.UnknownAmount()},
		oracle.GainLifeStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.KnownAmount(3)},
	}
	ctx := selector.Context{ControllerID: "p1"}
	res := Apply(state, steps, ctx, Options{}, nil)

	assert.Equal(t, len(steps), len(res.Applied)+len(res.Skipped))
}

// Conservation of cards: moving cards between zones never changes the total
// card count across all zones.
func TestApply_Discard_ConservesCardCount(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Hand = []cardstate.CardRef{card("c1", "c1", ""), card("c2", "c2", "")}
	before := totalCards(state)

	step := oracle.DiscardStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.KnownAmount(2)}
	ctx := selector.Context{ControllerID: "p1"}
	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Applied, 1)
	assert.Equal(t, before, totalCards(res.State))
	p, _ := res.State.PlayerByID("p1")
	assert.Empty(t, p.Hand)
	assert.Len(t, p.Graveyard, 2)
}

// Discarding fewer cards than the hand holds is a player choice the
// executor cannot make, so it skips instead of picking an arbitrary
// subset.
func TestApply_Discard_FewerThanHand_Skips(t *testing.T) {
	state := twoPlayerState()
	state.Players[0].Hand = []cardstate.CardRef{card("c1", "c1", ""), card("c2", "c2", "")}

	step := oracle.DiscardStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.KnownAmount(1)}
	ctx := selector.Context{ControllerID: "p1"}
	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, ReasonRequiresChoice, res.Skipped[0].Reason)
}

func totalCards(state cardstate.GameState) int {
	n := 0
	for _, p := range state.Players {
		n += len(p.Library) + len(p.Hand) + len(p.Graveyard) + len(p.Exile)
	}
	return n
}

// Deterministic skip: an unknown (X-valued, unbound) amount always skips
// with reason unknown_amount rather than guessing.
func TestApply_UnknownAmount_Skips(t *testing.T) {
	state := twoPlayerState()
	step := oracle.DrawStep{Who: selector.PlayerSelector{Kind: selector.You}, Amount: oracle.UnknownAmount()}
	ctx := selector.Context{ControllerID: "p1"}

	res := Apply(state, []oracle.Step{step}, ctx, Options{}, nil)

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, ReasonUnknownAmount, res.Skipped[0].Reason)
}

// Round trip: applying a parsed ability's steps and counting the ledger
// matches the number of clauses that produced real steps.
func TestApply_RoundTrip_ParseThenApplyCountsMatch(t *testing.T) {
	ir := oracle.ParseOracleText("You draw a card. You gain 3 life.", "Test Card")
	require.Len(t, ir.Abilities, 1)
	steps := ir.Abilities[0].Steps
	require.Len(t, steps, 2)

	state := twoPlayerState()
	state.Players[0].Library = []cardstate.CardRef{card("c1", "c1", "")}
	ctx := selector.Context{ControllerID: "p1"}
	res := Apply(state, steps, ctx, Options{}, nil)

	assert.Len(t, res.Applied, 2)
	p1, _ := res.State.PlayerByID("p1")
	assert.Len(t, p1.Hand, 1)
	assert.Equal(t, 23, p1.Life)
}
