package oracle

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/manacost"
	"github.com/cardforge/oracle-engine/internal/selector"
)

// StepKind tags the closed set of effect variants the names.
type StepKind string

const (
	KindDraw            StepKind = "draw"
	KindMill            StepKind = "mill"
	KindScry            StepKind = "scry"
	KindSurveil         StepKind = "surveil"
	KindExileTop        StepKind = "exile_top"
	KindImpulseExileTop StepKind = "impulse_exile_top"
	KindDiscard         StepKind = "discard"
	KindSacrifice       StepKind = "sacrifice"
	KindDestroy         StepKind = "destroy"
	KindExile           StepKind = "exile"
	KindMoveZone        StepKind = "move_zone"
	KindCreateToken     StepKind = "create_token"
	KindDealDamage      StepKind = "deal_damage"
	KindGainLife        StepKind = "gain_life"
	KindLoseLife        StepKind = "lose_life"
	KindAddMana         StepKind = "add_mana"
	KindModifyPT        StepKind = "modify_pt"
	KindNoOp            StepKind = "no_op"
)

// Step is the tagged-union interface every IR step implements. A type
// switch on the concrete type (not this interface) is how the executor
// dispatches, preferring an exhaustive match over duck-typing.
type Step interface {
	Kind() StepKind
	RawClause() string
	IsOptional() bool
}

// Base is embedded by every concrete step to supply the diagnostic Raw
// clause and the "You may ..." Optional flag.
type Base struct {
	Raw      string
	Optional bool
}

func (b Base) RawClause() string { return b.Raw }
func (b Base) IsOptional() bool  { return b.Optional }

// --- simple who+amount steps ---

type DrawStep struct {
	Base
	Who    selector.PlayerSelector
	Amount Amount
}

func (DrawStep) Kind() StepKind { return KindDraw }

type MillStep struct {
	Base
	Who    selector.PlayerSelector
	Amount Amount
	Loop   *LoopDescriptor
}

func (MillStep) Kind() StepKind { return KindMill }

type ScryStep struct {
	Base
	Who    selector.PlayerSelector
	Amount Amount
}

func (ScryStep) Kind() StepKind { return KindScry }

type SurveilStep struct {
	Base
	Who    selector.PlayerSelector
	Amount Amount
}

func (SurveilStep) Kind() StepKind { return KindSurveil }

type GainLifeStep struct {
	Base
	Who    selector.PlayerSelector
	Amount Amount
}

func (GainLifeStep) Kind() StepKind { return KindGainLife }

type LoseLifeStep struct {
	Base
	Who    selector.PlayerSelector
	Amount Amount
}

func (LoseLifeStep) Kind() StepKind { return KindLoseLife }

type AddManaStep struct {
	Base
	Who  selector.PlayerSelector
	Cost manacost.Cost
}

func (AddManaStep) Kind() StepKind { return KindAddMana }

type DiscardStep struct {
	Base
	Who    selector.PlayerSelector
	Amount Amount
	All    bool // "discard your hand" / "discards their hand"
}

func (DiscardStep) Kind() StepKind { return KindDiscard }

// --- exile / impulse exile ---

type ExileTopStep struct {
	Base
	From   selector.PlayerSelector
	Amount Amount
}

func (ExileTopStep) Kind() StepKind { return KindExileTop }

// PermissionKind enumerates the "you may play/cast" grant shapes.
type PermissionKind string

const (
	PermissionPlay               PermissionKind = "play"
	PermissionCast               PermissionKind = "cast"
	PermissionPlayOrCast         PermissionKind = "play_or_cast"
	PermissionPlayLandOrCast     PermissionKind = "play_land_or_cast"
	PermissionCastWithoutPaying  PermissionKind = "cast_without_paying"
)

// GranteeKind is who receives the permission to play/cast the exiled card.
type GranteeKind string

const (
	GranteeController GranteeKind = "controller"
	GranteeOwner      GranteeKind = "owner"
)

// Permission bundles the grant kind, duration, and restrictions parsed off
// an impulse-exile permission clause.
type Permission struct {
	Kind                  PermissionKind
	Duration              cardstate.Duration
	AmongTypes            []string
	WithoutPayingManaCost bool
	Grantee               GranteeKind
}

// StopConditionKind enumerates reveal/exile-until loop stop conditions
// (the Possibility Storm / Dream Harvest / Wand of Wonder family).
type StopConditionKind string

const (
	StopNone                  StopConditionKind = ""
	StopNonland               StopConditionKind = "nonland"
	StopInstantOrSorcery      StopConditionKind = "instant_or_sorcery"
	StopCardType              StopConditionKind = "card_type"
	StopManaValueAtLeast      StopConditionKind = "mana_value_at_least"
	StopSharesTypeWithReference StopConditionKind = "shares_type_with_reference"
)

// StopCondition describes when a reveal/exile-until loop stops.
type StopCondition struct {
	Kind               StopConditionKind
	CardType           string
	ManaValueThreshold int
}

// LoopDescriptor marks a step as the product of collapsing a reveal/exile
// -until-condition loop into a single step at parse time.
type LoopDescriptor struct {
	Stop          StopCondition
	CleanupNote   string // e.g. "put the rest on the bottom in a random order"
}

type ImpulseExileTopStep struct {
	Base
	From       selector.PlayerSelector
	Amount     Amount
	Grantee    GranteeKind
	Permission Permission
	Loop       *LoopDescriptor
}

func (ImpulseExileTopStep) Kind() StepKind { return KindImpulseExileTop }

// --- destroy / exile (group) / sacrifice ---

type DestroyStep struct {
	Base
	Filter         selector.PermanentFilter
	RequiresTarget bool
}

func (DestroyStep) Kind() StepKind { return KindDestroy }

type ExileStep struct {
	Base
	Filter         selector.PermanentFilter
	RequiresTarget bool
}

func (ExileStep) Kind() StepKind { return KindExile }

type SacrificeStep struct {
	Base
	Who    selector.PlayerSelector
	Filter selector.PermanentFilter
	Amount Amount
	All    bool
}

func (SacrificeStep) Kind() StepKind { return KindSacrifice }

// --- move_zone ---

// ZoneSource names whose zone(s) cards move from.
type ZoneSource struct {
	Who        selector.PlayerSelector
	Zone       cardstate.ZoneKind
	AllPlayers bool // "all graveyards" / "all exiles": every player's zone, no Who restriction
}

// DestinationKind enumerates move_zone targets.
type DestinationKind string

const (
	DestOwnerHand            DestinationKind = "owner_hand"
	DestOwnerGraveyard       DestinationKind = "owner_graveyard"
	DestOwnerExile           DestinationKind = "owner_exile"
	DestBattlefield          DestinationKind = "battlefield"
)

// ControllerOverrideKind overrides the default controller (the mover's
// controller) for cards entering the battlefield via move_zone.
type ControllerOverrideKind string

const (
	OverrideNone             ControllerOverrideKind = ""
	OverrideYou              ControllerOverrideKind = "you"
	OverrideOwnerOfMoved     ControllerOverrideKind = "owner_of_moved_cards"
)

type ZoneDestination struct {
	Kind               DestinationKind
	EntersTapped       bool
	ControllerOverride ControllerOverrideKind
}

type MoveZoneStep struct {
	Base
	CardFilter     selector.TypePredicate
	From           ZoneSource
	To             ZoneDestination
	RequiresTarget bool
}

func (MoveZoneStep) Kind() StepKind { return KindMoveZone }

// --- create_token ---

type TokenTemplate struct {
	Name      string
	HasPT     bool
	Power     int
	Toughness int
	Colors    []string
	MainTypes []string
	Subtypes  []string

	Tapped                        bool
	Counters                      map[string]int
	GrantsAbilitiesUntilEndOfTurn []string
	Haste                         cardstate.HasteGrant
	AtNextEndStep                 cardstate.EndStepCleanup
	AtEndOfCombat                 cardstate.EndStepCleanup
}

type CreateTokenStep struct {
	Base
	Template   TokenTemplate
	Count      Amount
	Controller selector.PlayerSelector
}

func (CreateTokenStep) Kind() StepKind { return KindCreateToken }

// --- deal_damage ---

// DamageTargetKind enumerates the target-expression shapes.
type DamageTargetKind string

const (
	DamageTargetPlayer    DamageTargetKind = "player"
	DamageTargetGroup     DamageTargetKind = "group"
	DamageTargetCompound  DamageTargetKind = "compound"
)

type DamageTarget struct {
	Kind           DamageTargetKind
	Player         selector.PlayerSelector
	Group          selector.PermanentFilter
	RequiresTarget bool // true when Group came from a "target X" phrase rather than "each X"/"all X"
	Compound       []DamageTarget
	IsChoice       bool // true for "X or Y" (pick one); false for "X and Y" (all of them)
}

type DealDamageStep struct {
	Base
	Amount Amount
	Target DamageTarget
}

func (DealDamageStep) Kind() StepKind { return KindDealDamage }

// --- modify_pt and its X-expression resolver ---

// XExprKind enumerates the supported "X is ..." forms.
type XExprKind string

const (
	XCountOpponents       XExprKind = "count_opponents"
	XCountCardsInZone     XExprKind = "count_cards_in_zone"
	XCountPermanents      XExprKind = "count_permanents"
	XCountBasicLandTypes  XExprKind = "count_basic_land_types"
	XCountExiledByThis    XExprKind = "count_exiled_by_this"
	XCountCardsInHands    XExprKind = "count_cards_in_hands"
	XExtremeStat          XExprKind = "extreme_stat"
	XHalf                 XExprKind = "half"
	XTwice                XExprKind = "twice"
	XOnePlus              XExprKind = "one_plus"
	XLifeTotal            XExprKind = "life_total"
	XHalfLifeTotal        XExprKind = "half_life_total"
	XCreaturePower        XExprKind = "creature_power"
	XDevotion             XExprKind = "devotion"
)

// Scope restricts an X-expression's count to a player subset.
type Scope string

const (
	ScopeYou       Scope = "you"
	ScopeOpponents Scope = "opponents"
	ScopeEach      Scope = "each_player"
	ScopeAll       Scope = "all"
)

type XExpr struct {
	Kind XExprKind

	Zone     cardstate.ZoneKind
	Scope    Scope
	CardType string // optional subtype/maintype restriction, e.g. "creature"

	Filter selector.PermanentFilter // for count_permanents / extreme_stat

	Stat     string // "power" | "toughness" | "mana_value"
	Greatest bool
	Other    bool

	RoundUp bool // for XHalf

	Inner *XExpr // wrapper operand for half/twice/one_plus

	Color manacost.Color // for devotion

	ThisPermanent bool // creature_power: true = "this permanent", false = "that creature"
}

// Condition gates a modify_pt step on a permanent count, e.g.
// "If you control an artifact, ...".
type Condition struct {
	Filter   selector.PermanentFilter
	MinCount int
}

type PTDelta struct {
	Power     int
	Toughness int
}

type ModifyPTStep struct {
	Base
	Target         selector.PermanentFilter
	RequiresTarget bool

	Delta       PTDelta
	ScalesWithX bool
	XMultiplier PTDelta
	XExpression *XExpr

	Duration  cardstate.Duration
	Condition *Condition
}

func (ModifyPTStep) Kind() StepKind { return KindModifyPT }

// --- no-op diagnostic step ---

// NoOpStep is emitted when no template matches a clause: the clause is
// preserved as a no-op diagnostic step that the executor skips.
type NoOpStep struct {
	Base
}

func (NoOpStep) Kind() StepKind { return KindNoOp }
