package execctx

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cardforge/oracle-engine/internal/cardstate"
)

func TestBuild_DropsControllerFromRelationalSets(t *testing.T) {
	ctx := Build(Input{ControllerID: "p1"}, HintPayload{
		AffectedOpponentIDs: []string{"p1", "p2", "p3"},
	})
	assert.Equal(t, []cardstate.PlayerID{"p2", "p3"}, ctx.EachOfThoseOpponents)
}

func TestBuild_DedupesPreservingFirstOccurrence(t *testing.T) {
	ctx := Build(Input{ControllerID: "p1"}, HintPayload{
		AffectedOpponentIDs: []string{"p2", "p3", "p2"},
	})
	assert.Equal(t, []cardstate.PlayerID{"p2", "p3"}, ctx.EachOfThoseOpponents)
}

func TestBuild_EachOfThoseOpponentsPrecedence(t *testing.T) {
	// affectedOpponentIds beats opponentsDealtDamageIds beats affectedPlayerIds
	// beats singleton targetOpponentId beats base.
	ctx := Build(Input{ControllerID: "p1"}, HintPayload{
		AffectedOpponentIDs:     []string{"p2"},
		OpponentsDealtDamageIDs: []string{"p3"},
	})
	assert.Equal(t, []cardstate.PlayerID{"p2"}, ctx.EachOfThoseOpponents)

	ctx2 := Build(Input{ControllerID: "p1"}, HintPayload{
		OpponentsDealtDamageIDs: []string{"p3"},
		AffectedPlayerIDs:       []string{"p4"},
	})
	assert.Equal(t, []cardstate.PlayerID{"p3"}, ctx2.EachOfThoseOpponents)

	ctx3 := Build(Input{ControllerID: "p1"}, HintPayload{
		TargetOpponentID: "p5",
	})
	assert.Equal(t, []cardstate.PlayerID{"p5"}, ctx3.EachOfThoseOpponents)
}

func TestBuild_TargetOpponentPrecedence(t *testing.T) {
	ctx := Build(Input{ControllerID: "p1"}, HintPayload{
		TargetOpponentID:    "p2",
		AffectedOpponentIDs: []string{"p3"},
	})
	assert.Equal(t, cardstate.PlayerID("p2"), ctx.TargetOpponentID)

	ctx2 := Build(Input{ControllerID: "p1"}, HintPayload{
		AffectedOpponentIDs: []string{"p3"},
	})
	assert.True(t, ctx2.HasTargetOpponentID)
	assert.Equal(t, cardstate.PlayerID("p3"), ctx2.TargetOpponentID)
}

func TestBuild_TargetPlayerDefaultsToTargetOpponent(t *testing.T) {
	ctx := Build(Input{ControllerID: "p1"}, HintPayload{TargetOpponentID: "p2"})
	assert.True(t, ctx.HasTargetPlayerID)
	assert.Equal(t, cardstate.PlayerID("p2"), ctx.TargetPlayerID)
}

func TestBuild_ReferenceSpellTypesSplitAndLower(t *testing.T) {
	ctx := Build(Input{ControllerID: "p1"}, HintPayload{SpellType: "Instant Sorcery"})
	assert.Equal(t, []string{"instant", "sorcery"}, ctx.ReferenceSpellTypes)
}

func TestBuild_WhitespaceTrimmedOnIDs(t *testing.T) {
	ctx := Build(Input{ControllerID: "p1"}, HintPayload{TargetPlayerID: "  p2  "})
	assert.Equal(t, cardstate.PlayerID("p2"), ctx.TargetPlayerID)
}
