// Package httpapi defines the JSON request/response shapes the demo HTTP
// and WebSocket surfaces speak, and the conversions between them and the
// core's cardstate/execctx/engine types. None of the core packages import
// this one; it exists only at the boundary.
package httpapi

import (
	"strings"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/engine"
	"github.com/cardforge/oracle-engine/internal/execctx"
	"github.com/cardforge/oracle-engine/internal/oracle"
	"github.com/cardforge/oracle-engine/internal/oracleerr"
)

// CardRef mirrors cardstate.CardRef with JSON tags and pointer-optional
// numeric fields, since the wire format has no "Known" sidecar booleans:
// a present field is known, an absent one is not.
type CardRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TypeLine string `json:"typeLine"`
	ManaCost string `json:"manaCost,omitempty"`
	ManaValue *int  `json:"manaValue,omitempty"`
	Power     *int  `json:"power,omitempty"`
	Toughness *int  `json:"toughness,omitempty"`
}

func (c CardRef) toCore() cardstate.CardRef {
	out := cardstate.CardRef{ID: cardstate.CardID(c.ID), Name: c.Name, TypeLine: c.TypeLine, ManaCost: c.ManaCost}
	if c.ManaValue != nil {
		out.HasManaValue = true
		out.ManaValue = *c.ManaValue
	}
	if c.Power != nil {
		out.HasPower = true
		out.Power = *c.Power
	}
	if c.Toughness != nil {
		out.HasToughness = true
		out.Toughness = *c.Toughness
	}
	return out
}

func cardRefFromCore(c cardstate.CardRef) CardRef {
	out := CardRef{ID: string(c.ID), Name: c.Name, TypeLine: c.TypeLine, ManaCost: c.ManaCost}
	if c.HasManaValue {
		v := c.ManaValue
		out.ManaValue = &v
	}
	if c.HasPower {
		v := c.Power
		out.Power = &v
	}
	if c.HasToughness {
		v := c.Toughness
		out.Toughness = &v
	}
	return out
}

func cardRefsFromCore(cards []cardstate.CardRef) []CardRef {
	out := make([]CardRef, len(cards))
	for i, c := range cards {
		out[i] = cardRefFromCore(c)
	}
	return out
}

func cardRefsToCore(cards []CardRef) []cardstate.CardRef {
	out := make([]cardstate.CardRef, len(cards))
	for i, c := range cards {
		out[i] = c.toCore()
	}
	return out
}

// Permanent mirrors cardstate.Permanent.
type Permanent struct {
	ID         string         `json:"id"`
	Controller string         `json:"controller"`
	Owner      string         `json:"owner"`
	Card       CardRef        `json:"card"`
	Tapped     bool           `json:"tapped,omitempty"`
	Counters   map[string]int `json:"counters,omitempty"`
}

func (p Permanent) toCore() cardstate.Permanent {
	return cardstate.Permanent{
		ID:         cardstate.PermanentID(p.ID),
		Controller: cardstate.PlayerID(p.Controller),
		Owner:      cardstate.PlayerID(p.Owner),
		Card:       p.Card.toCore(),
		Tapped:     p.Tapped,
		Counters:   p.Counters,
	}
}

func permanentFromCore(p cardstate.Permanent) Permanent {
	return Permanent{
		ID:         string(p.ID),
		Controller: string(p.Controller),
		Owner:      string(p.Owner),
		Card:       cardRefFromCore(p.Card),
		Tapped:     p.Tapped,
		Counters:   p.Counters,
	}
}

// Player mirrors cardstate.Player.
type Player struct {
	ID        string    `json:"id"`
	Life      int       `json:"life"`
	Library   []CardRef `json:"library,omitempty"`
	Hand      []CardRef `json:"hand,omitempty"`
	Graveyard []CardRef `json:"graveyard,omitempty"`
	Exile     []CardRef `json:"exile,omitempty"`
}

func (p Player) toCore(seat int) cardstate.Player {
	return cardstate.Player{
		ID:        cardstate.PlayerID(p.ID),
		Seat:      seat,
		Life:      p.Life,
		Library:   cardRefsToCore(p.Library),
		Hand:      cardRefsToCore(p.Hand),
		Graveyard: cardRefsToCore(p.Graveyard),
		Exile:     cardRefsToCore(p.Exile),
	}
}

func playerFromCore(p cardstate.Player) Player {
	return Player{
		ID:        string(p.ID),
		Life:      p.Life,
		Library:   cardRefsFromCore(p.Library),
		Hand:      cardRefsFromCore(p.Hand),
		Graveyard: cardRefsFromCore(p.Graveyard),
		Exile:     cardRefsFromCore(p.Exile),
	}
}

// GameState mirrors cardstate.GameState.
type GameState struct {
	Players     []Player    `json:"players"`
	Battlefield []Permanent `json:"battlefield,omitempty"`
	TurnNumber  int         `json:"turnNumber"`
	TurnPlayer  string      `json:"turnPlayer,omitempty"`
}

// ToCore converts the wire snapshot into the core's immutable type.
func (g GameState) ToCore() cardstate.GameState {
	players := make([]cardstate.Player, len(g.Players))
	for i, p := range g.Players {
		players[i] = p.toCore(i)
	}
	bf := make([]cardstate.Permanent, len(g.Battlefield))
	for i, p := range g.Battlefield {
		bf[i] = p.toCore()
	}
	return cardstate.GameState{
		Players:     players,
		Battlefield: bf,
		TurnNumber:  g.TurnNumber,
		TurnPlayer:  cardstate.PlayerID(g.TurnPlayer),
	}
}

// GameStateFromCore renders a core snapshot back onto the wire.
func GameStateFromCore(s cardstate.GameState) GameState {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = playerFromCore(p)
	}
	bf := make([]Permanent, len(s.Battlefield))
	for i, p := range s.Battlefield {
		bf[i] = permanentFromCore(p)
	}
	return GameState{
		Players:     players,
		Battlefield: bf,
		TurnNumber:  s.TurnNumber,
		TurnPlayer:  string(s.TurnPlayer),
	}
}

// Hints mirrors execctx.HintPayload.
type Hints struct {
	AffectedOpponentIDs     []string `json:"affectedOpponentIds,omitempty"`
	OpponentsDealtDamageIDs []string `json:"opponentsDealtDamageIds,omitempty"`
	AffectedPlayerIDs       []string `json:"affectedPlayerIds,omitempty"`
	TargetOpponentID        string   `json:"targetOpponentId,omitempty"`
	TargetPlayerID          string   `json:"targetPlayerId,omitempty"`
	SpellType               string   `json:"spellType,omitempty"`
}

func (h Hints) toCore() execctx.HintPayload {
	return execctx.HintPayload{
		AffectedOpponentIDs:     h.AffectedOpponentIDs,
		OpponentsDealtDamageIDs: h.OpponentsDealtDamageIDs,
		AffectedPlayerIDs:       h.AffectedPlayerIDs,
		TargetOpponentID:        h.TargetOpponentID,
		TargetPlayerID:          h.TargetPlayerID,
		SpellType:               h.SpellType,
	}
}

// ApplyRequest is the body of POST /v1/apply: parse oracleText, build a
// context from controllerId/sourceId/hints, and run the resulting steps
// against state.
type ApplyRequest struct {
	CardName     string    `json:"cardName"`
	OracleText   string    `json:"oracleText"`
	State        GameState `json:"state"`
	ControllerID string    `json:"controllerId"`
	SourceID     string    `json:"sourceId,omitempty"`
	Hints        Hints     `json:"hints,omitempty"`
}

// StepResult mirrors one ledger entry, applied or skipped.
type StepResult struct {
	Kind   string `json:"kind"`
	Raw    string `json:"raw"`
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
	Reason string `json:"reason,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// ApplyResponse is the body returned from POST /v1/apply.
type ApplyResponse struct {
	State   GameState    `json:"state"`
	Applied []StepResult `json:"applied"`
	Skipped []StepResult `json:"skipped"`
}

// ParseRequest is the body of POST /v1/parse.
type ParseRequest struct {
	CardName   string `json:"cardName"`
	OracleText string `json:"oracleText"`
}

// StepSummary flattens one IR step to its kind and raw clause, since Step is
// a closed interface with no JSON tags of its own.
type StepSummary struct {
	Kind string `json:"kind"`
	Raw  string `json:"raw"`
}

// AbilitySummary mirrors one oracle.Ability.
type AbilitySummary struct {
	Type  string        `json:"type"`
	Steps []StepSummary `json:"steps"`
}

// ParseResponse is the body returned from POST /v1/parse.
type ParseResponse struct {
	CardName  string           `json:"cardName"`
	Abilities []AbilitySummary `json:"abilities"`
}

// RunParse runs oracle.ParseOracleText and flattens the result to wire form.
func RunParse(req ParseRequest) ParseResponse {
	ir := oracle.ParseOracleText(req.OracleText, req.CardName)
	resp := ParseResponse{CardName: ir.CardName, Abilities: make([]AbilitySummary, len(ir.Abilities))}
	for i, ab := range ir.Abilities {
		steps := make([]StepSummary, len(ab.Steps))
		for j, s := range ab.Steps {
			steps[j] = StepSummary{Kind: string(s.Kind()), Raw: s.RawClause()}
		}
		resp.Abilities[i] = AbilitySummary{Type: string(ab.Type), Steps: steps}
	}
	return resp
}

// ContextRequest is the body of POST /v1/context: the base controller/source
// plus the relational hints buildContext folds in.
type ContextRequest struct {
	ControllerID string `json:"controllerId"`
	SourceID     string `json:"sourceId,omitempty"`
	Hints        Hints  `json:"hints,omitempty"`
}

// ContextResponse mirrors the resolved selector.Context fields that matter
// to a caller inspecting how its hints were canonicalized.
type ContextResponse struct {
	ControllerID         string   `json:"controllerId"`
	SourceID             string   `json:"sourceId,omitempty"`
	TargetPlayerID       string   `json:"targetPlayerId,omitempty"`
	TargetOpponentID     string   `json:"targetOpponentId,omitempty"`
	EachOfThoseOpponents []string `json:"eachOfThoseOpponents,omitempty"`
	ReferenceSpellTypes  []string `json:"referenceSpellTypes,omitempty"`
}

// RunBuildContext runs execctx.Build and renders the resolved context back
// onto the wire.
func RunBuildContext(req ContextRequest) ContextResponse {
	input := execctx.Input{ControllerID: cardstate.PlayerID(req.ControllerID)}
	if req.SourceID != "" {
		input.SourceID = cardstate.PermanentID(req.SourceID)
		input.HasSourceID = true
	}
	ctx := execctx.Build(input, req.Hints.toCore())

	resp := ContextResponse{
		ControllerID: string(ctx.ControllerID),
	}
	if ctx.HasSourceID {
		resp.SourceID = string(ctx.SourceID)
	}
	if ctx.HasTargetPlayerID {
		resp.TargetPlayerID = string(ctx.TargetPlayerID)
	}
	if ctx.HasTargetOpponentID {
		resp.TargetOpponentID = string(ctx.TargetOpponentID)
	}
	for _, id := range ctx.EachOfThoseOpponents {
		resp.EachOfThoseOpponents = append(resp.EachOfThoseOpponents, string(id))
	}
	resp.ReferenceSpellTypes = ctx.ReferenceSpellTypes
	return resp
}

// validateApplyRequest checks the boundary-supplied ids against req.State
// before anything reaches execctx or the executor: an id that cannot even
// be expressed as a skip (it never makes it far enough to resolve a
// selector) surfaces here as a typed oracleerr, not a bare string error.
func validateApplyRequest(req ApplyRequest) error {
	if strings.TrimSpace(req.ControllerID) == "" {
		return &oracleerr.InvalidHintError{Field: "controllerId", Reason: "must not be empty"}
	}
	state := req.State.ToCore()
	if !state.HasPlayer(cardstate.PlayerID(req.ControllerID)) {
		return &oracleerr.UnknownPlayerError{PlayerID: req.ControllerID}
	}

	ids := make([]string, 0, len(req.Hints.AffectedOpponentIDs)+len(req.Hints.OpponentsDealtDamageIDs)+len(req.Hints.AffectedPlayerIDs)+2)
	ids = append(ids, req.Hints.AffectedOpponentIDs...)
	ids = append(ids, req.Hints.OpponentsDealtDamageIDs...)
	ids = append(ids, req.Hints.AffectedPlayerIDs...)
	if req.Hints.TargetOpponentID != "" {
		ids = append(ids, req.Hints.TargetOpponentID)
	}
	if req.Hints.TargetPlayerID != "" {
		ids = append(ids, req.Hints.TargetPlayerID)
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return &oracleerr.InvalidHintError{Field: "hints", Reason: "player id must not be blank"}
		}
		if !state.HasPlayer(cardstate.PlayerID(id)) {
			return &oracleerr.UnknownPlayerError{PlayerID: id}
		}
	}
	return nil
}

// RunApply parses req.OracleText, builds a selector.Context from its
// controller/source/hints, and runs engine.Apply over req.State. It returns
// a typed oracleerr when the boundary input itself is malformed — an
// unknown controller or hint player id — before any parsing or resolution
// is attempted.
func RunApply(req ApplyRequest) (ApplyResponse, error) {
	if err := validateApplyRequest(req); err != nil {
		return ApplyResponse{}, err
	}

	ir := oracle.ParseOracleText(req.OracleText, req.CardName)

	var steps []oracle.Step
	for _, ab := range ir.Abilities {
		steps = append(steps, ab.Steps...)
	}

	input := execctx.Input{ControllerID: cardstate.PlayerID(req.ControllerID)}
	if req.SourceID != "" {
		input.SourceID = cardstate.PermanentID(req.SourceID)
		input.HasSourceID = true
	}
	ctx := execctx.Build(input, req.Hints.toCore())

	res := engine.Apply(req.State.ToCore(), steps, ctx, engine.Options{}, nil)

	resp := ApplyResponse{State: GameStateFromCore(res.State)}
	for _, a := range res.Applied {
		resp.Applied = append(resp.Applied, StepResult{
			Kind:   string(a.Step.Kind()),
			Raw:    a.Step.RawClause(),
			Status: "applied",
			Note:   a.Note,
		})
	}
	for _, s := range res.Skipped {
		resp.Skipped = append(resp.Skipped, StepResult{
			Kind:   string(s.Step.Kind()),
			Raw:    s.Step.RawClause(),
			Status: "skipped",
			Reason: string(s.Reason),
			Detail: s.Detail,
		})
	}
	return resp, nil
}
