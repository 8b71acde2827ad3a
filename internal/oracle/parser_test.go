package oracle

import (
	"testing"

	"github.com/cardforge/oracle-engine/internal/manacost"
	"github.com/cardforge/oracle-engine/internal/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstStep(t *testing.T, text string) Step {
	t.Helper()
	ir := ParseOracleText(text, "Test Card")
	require.Len(t, ir.Abilities, 1)
	require.NotEmpty(t, ir.Abilities[0].Steps)
	return ir.Abilities[0].Steps[0]
}

func TestParseOracleText_Empty(t *testing.T) {
	ir := ParseOracleText("", "Nothing")
	assert.Equal(t, "Nothing", ir.CardName)
	assert.Empty(t, ir.Abilities)
}

func TestParseOracleText_Draw(t *testing.T) {
	step := firstStep(t, "You draw a card.")
	d, ok := step.(DrawStep)
	require.True(t, ok)
	assert.Equal(t, selector.You, d.Who.Kind)
	assert.Equal(t, KnownAmount(1), d.Amount)
}

func TestParseOracleText_DrawPlural(t *testing.T) {
	step := firstStep(t, "Target player draws two cards.")
	d, ok := step.(DrawStep)
	require.True(t, ok)
	assert.Equal(t, selector.TargetPlayer, d.Who.Kind)
	assert.Equal(t, KnownAmount(2), d.Amount)
}

func TestParseOracleText_EachOpponentDiscards(t *testing.T) {
	step := firstStep(t, "Each opponent discards a card.")
	d, ok := step.(DiscardStep)
	require.True(t, ok)
	assert.Equal(t, selector.EachOpponent, d.Who.Kind)
	assert.False(t, d.All)
}

func TestParseOracleText_DiscardHand(t *testing.T) {
	step := firstStep(t, "You discard your hand.")
	d, ok := step.(DiscardStep)
	require.True(t, ok)
	assert.True(t, d.All)
}

func TestParseOracleText_DiscardAtRandom(t *testing.T) {
	step := firstStep(t, "Target player discards two cards at random.")
	d, ok := step.(DiscardStep)
	require.True(t, ok)
	assert.Equal(t, KnownAmount(2), d.Amount)
}

func TestParseOracleText_ScryAndSurveil(t *testing.T) {
	s1 := firstStep(t, "You scry 2.")
	scry, ok := s1.(ScryStep)
	require.True(t, ok)
	assert.Equal(t, KnownAmount(2), scry.Amount)

	s2 := firstStep(t, "You surveil 1.")
	surv, ok := s2.(SurveilStep)
	require.True(t, ok)
	assert.Equal(t, KnownAmount(1), surv.Amount)
}

func TestParseOracleText_GainLoseLife(t *testing.T) {
	g := firstStep(t, "You gain 3 life.").(GainLifeStep)
	assert.Equal(t, KnownAmount(3), g.Amount)

	l := firstStep(t, "Each opponent loses 2 life.").(LoseLifeStep)
	assert.Equal(t, selector.EachOpponent, l.Who.Kind)
	assert.Equal(t, KnownAmount(2), l.Amount)
}

func TestParseOracleText_AddMana(t *testing.T) {
	step := firstStep(t, "Add {W}{W}.")
	add, ok := step.(AddManaStep)
	require.True(t, ok)
	assert.Equal(t, selector.You, add.Who.Kind)
	assert.Equal(t, 2, add.Cost.Count(manacost.ColorWhite))
}

func TestParseOracleText_ExileTopNoPermission(t *testing.T) {
	step := firstStep(t, "You exile the top card of your library.")
	e, ok := step.(ExileTopStep)
	require.True(t, ok)
	assert.Equal(t, KnownAmount(1), e.Amount)
}

func TestParseOracleText_ImpulseExileTop(t *testing.T) {
	ir := ParseOracleText("You exile the top card of your library. You may play that card this turn.", "Test Card")
	require.Len(t, ir.Abilities[0].Steps, 1)
	step, ok := ir.Abilities[0].Steps[0].(ImpulseExileTopStep)
	require.True(t, ok)
	assert.Equal(t, PermissionPlay, step.Permission.Kind)
	assert.False(t, step.Permission.WithoutPayingManaCost)
}

func TestParseOracleText_ImpulseExileCastWithoutPaying(t *testing.T) {
	ir := ParseOracleText("You exile the top card of your library. Until end of turn, you may cast that card without paying its mana cost.", "Test Card")
	step := ir.Abilities[0].Steps[0].(ImpulseExileTopStep)
	assert.Equal(t, PermissionCastWithoutPaying, step.Permission.Kind)
	assert.True(t, step.Permission.WithoutPayingManaCost)
}

func TestParseOracleText_RevealExileUntilLoop_ImplicitYou(t *testing.T) {
	ir := ParseOracleText("Exile cards from the top of your library until you exile a nonland card. You may play that card this turn.", "Test Card")
	require.Len(t, ir.Abilities[0].Steps, 1)
	step, ok := ir.Abilities[0].Steps[0].(ImpulseExileTopStep)
	require.True(t, ok)
	assert.Equal(t, selector.PlayerSelector{Kind: selector.You}, step.From)
	require.NotNil(t, step.Loop)
	assert.Equal(t, StopNonland, step.Loop.Stop.Kind)
}

func TestParseOracleText_RevealExileUntilLoop_TargetOpponent(t *testing.T) {
	ir := ParseOracleText("Target opponent exiles cards from the top of their library until they exile an instant or sorcery card. You may cast that card without paying its mana cost.", "Test Card")
	require.Len(t, ir.Abilities[0].Steps, 1)
	step, ok := ir.Abilities[0].Steps[0].(ImpulseExileTopStep)
	require.True(t, ok)
	assert.Equal(t, selector.PlayerSelector{Kind: selector.TargetOpponent}, step.From)
	require.NotNil(t, step.Loop)
	assert.Equal(t, StopInstantOrSorcery, step.Loop.Stop.Kind)
	assert.Equal(t, PermissionCastWithoutPaying, step.Permission.Kind)
}

func TestParseOracleText_RevealUntilMillLoop_ImplicitYou(t *testing.T) {
	ir := ParseOracleText("Reveal cards from the top of your library until you reveal a nonland card, then put those cards into your graveyard.", "Test Card")
	require.Len(t, ir.Abilities[0].Steps, 1)
	step, ok := ir.Abilities[0].Steps[0].(MillStep)
	require.True(t, ok)
	assert.Equal(t, selector.PlayerSelector{Kind: selector.You}, step.Who)
	require.NotNil(t, step.Loop)
	assert.Equal(t, StopNonland, step.Loop.Stop.Kind)
}

func TestParseOracleText_RevealUntilMillLoop_TargetOpponent(t *testing.T) {
	ir := ParseOracleText("Target opponent reveals cards from the top of their library until they reveal a nonland card, then puts those cards into their graveyard.", "Test Card")
	require.Len(t, ir.Abilities[0].Steps, 1)
	step, ok := ir.Abilities[0].Steps[0].(MillStep)
	require.True(t, ok)
	assert.Equal(t, selector.PlayerSelector{Kind: selector.TargetOpponent}, step.Who)
	require.NotNil(t, step.Loop)
	assert.Equal(t, StopNonland, step.Loop.Stop.Kind)
}

func TestParseOracleText_DestroyTarget(t *testing.T) {
	step := firstStep(t, "Destroy target creature.")
	d, ok := step.(DestroyStep)
	require.True(t, ok)
	assert.Contains(t, d.Filter.Types.Groups, selector.GroupCreature)
	assert.Equal(t, selector.CtrlAny, d.Filter.Controller.Kind)
}

func TestParseOracleText_DestroyControlled(t *testing.T) {
	step := firstStep(t, "Destroy all creatures your opponents control.")
	d := step.(DestroyStep)
	assert.Equal(t, selector.CtrlOpponents, d.Filter.Controller.Kind)
}

func TestParseOracleText_ExileGroupNegatedType(t *testing.T) {
	step := firstStep(t, "Exile each nonland permanent.")
	e := step.(ExileStep)
	assert.Contains(t, e.Filter.Types.NegatedGroups, selector.GroupLand)
}

func TestParseOracleText_Sacrifice(t *testing.T) {
	step := firstStep(t, "You sacrifice a creature.")
	s, ok := step.(SacrificeStep)
	require.True(t, ok)
	assert.Equal(t, selector.You, s.Who.Kind)
	assert.Equal(t, KnownAmount(1), s.Amount)
	assert.False(t, s.All)
}

func TestParseOracleText_SacrificeImperative(t *testing.T) {
	step := firstStep(t, "Sacrifice all artifacts you control.")
	s := step.(SacrificeStep)
	assert.Equal(t, selector.You, s.Who.Kind)
	assert.True(t, s.All)
	assert.Equal(t, selector.CtrlYou, s.Filter.Controller.Kind)
}

func TestParseOracleText_MoveZoneToBattlefield(t *testing.T) {
	step := firstStep(t, "Return target creature card from your graveyard to the battlefield under your control.")
	m, ok := step.(MoveZoneStep)
	require.True(t, ok)
	assert.True(t, m.RequiresTarget)
	assert.Equal(t, DestBattlefield, m.To.Kind)
	assert.Equal(t, OverrideYou, m.To.ControllerOverride)
}

func TestParseOracleText_MoveZoneToHand(t *testing.T) {
	step := firstStep(t, "Return all creature cards from your graveyard to your hand.")
	m := step.(MoveZoneStep)
	assert.False(t, m.RequiresTarget)
	assert.Equal(t, DestOwnerHand, m.To.Kind)
}

func TestParseOracleText_CreateToken(t *testing.T) {
	step := firstStep(t, "Create a 1/1 white Soldier creature token.")
	c, ok := step.(CreateTokenStep)
	require.True(t, ok)
	assert.Equal(t, KnownAmount(1), c.Count)
	assert.True(t, c.Template.HasPT)
	assert.Equal(t, 1, c.Template.Power)
	assert.Equal(t, 1, c.Template.Toughness)
	assert.Contains(t, c.Template.Colors, "White")
	assert.Contains(t, c.Template.MainTypes, "Creature")
	assert.Contains(t, c.Template.Subtypes, "Soldier")
}

func TestParseOracleText_CreateTappedHasteToken(t *testing.T) {
	step := firstStep(t, "Create a tapped 2/2 red Elemental creature token with haste.")
	c := step.(CreateTokenStep)
	assert.True(t, c.Template.Tapped)
	assert.NotEmpty(t, c.Template.Haste)
}

func TestParseOracleText_CreateTreasureToken(t *testing.T) {
	step := firstStep(t, "Create a Treasure token.")
	c := step.(CreateTokenStep)
	assert.False(t, c.Template.HasPT)
	assert.Contains(t, c.Template.MainTypes, "Artifact")
	assert.Contains(t, c.Template.Subtypes, "Treasure")
}

func TestParseOracleText_DealDamageToTargetCreature(t *testing.T) {
	step := firstStep(t, "This creature deals 2 damage to target creature.")
	d, ok := step.(DealDamageStep)
	require.True(t, ok)
	assert.Equal(t, KnownAmount(2), d.Amount)
	assert.Equal(t, DamageTargetGroup, d.Target.Kind)
}

func TestParseOracleText_DealDamageToPlayer(t *testing.T) {
	step := firstStep(t, "It deals 3 damage to each opponent.")
	d := step.(DealDamageStep)
	assert.Equal(t, DamageTargetPlayer, d.Target.Kind)
	assert.Equal(t, selector.EachOpponent, d.Target.Player.Kind)
}

func TestParseOracleText_DealDamageCompoundTarget(t *testing.T) {
	step := firstStep(t, "It deals 4 damage to target creature or player.")
	d := step.(DealDamageStep)
	require.Equal(t, DamageTargetCompound, d.Target.Kind)
	require.Len(t, d.Target.Compound, 2)
	assert.Equal(t, DamageTargetGroup, d.Target.Compound[0].Kind)
	assert.Equal(t, DamageTargetPlayer, d.Target.Compound[1].Kind)
}

func TestParseOracleText_ModifyPTUntilEndOfTurn(t *testing.T) {
	step := firstStep(t, "Target creature gets +2/+2 until end of turn.")
	m, ok := step.(ModifyPTStep)
	require.True(t, ok)
	assert.True(t, m.RequiresTarget)
	assert.Equal(t, PTDelta{Power: 2, Toughness: 2}, m.Delta)
}

func TestParseOracleText_ModifyPTScalesWithX(t *testing.T) {
	step := firstStep(t, "Target creature gets +x/+x until end of turn.")
	m := step.(ModifyPTStep)
	assert.True(t, m.ScalesWithX)
	assert.Equal(t, PTDelta{Power: 1, Toughness: 1}, m.XMultiplier)
}

func TestParseOracleText_ModifyPTWithCondition(t *testing.T) {
	step := firstStep(t, "If you control an artifact, target creature gets +1/+1 until end of turn.")
	m := step.(ModifyPTStep)
	require.NotNil(t, m.Condition)
	assert.Equal(t, 1, m.Condition.MinCount)
	assert.Contains(t, m.Condition.Filter.Types.Groups, selector.GroupArtifact)
}

func TestParseOracleText_NoOpFallback(t *testing.T) {
	step := firstStep(t, "This is not a recognized clause shape at all.")
	_, ok := step.(NoOpStep)
	assert.True(t, ok)
}

func TestParseOracleText_MultipleClauses(t *testing.T) {
	ir := ParseOracleText("You draw a card. You lose 1 life.", "Test Card")
	require.Len(t, ir.Abilities[0].Steps, 2)
	_, ok1 := ir.Abilities[0].Steps[0].(DrawStep)
	_, ok2 := ir.Abilities[0].Steps[1].(LoseLifeStep)
	assert.True(t, ok1)
	assert.True(t, ok2)
}

func TestParseOracleText_TriggeredAbilityType(t *testing.T) {
	ir := ParseOracleText("Whenever you draw a card, you gain 1 life.", "Test Card")
	assert.Equal(t, AbilityTriggered, ir.Abilities[0].Type)
}

func TestParseOracleText_ActivatedAbilityType(t *testing.T) {
	ir := ParseOracleText("{T}: Add {C}.", "Test Card")
	assert.Equal(t, AbilityActivated, ir.Abilities[0].Type)
}

func TestParseOracleText_StaticAbilityType(t *testing.T) {
	ir := ParseOracleText("Creatures you control get +1/+0.", "Test Card")
	assert.Equal(t, AbilityStatic, ir.Abilities[0].Type)
}
