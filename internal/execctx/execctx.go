// Package execctx implements the execution-context builder:
// canonicalizing external hints into a sanitized selector.Context.
package execctx

import (
	"strings"

	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/selector"
)

// HintPayload is the boundary schema: a caller-supplied bundle
// of relational ids the surrounding game loop already knows (who got
// targeted, who got damaged, etc.) that buildContext folds into a
// selector.Context.
type HintPayload struct {
	AffectedOpponentIDs    []string
	OpponentsDealtDamageIDs []string
	AffectedPlayerIDs      []string
	TargetOpponentID       string
	TargetPlayerID         string
	SpellType              string
}

// Input is the base execution context buildContext starts from: the
// controller and optional source of the effect, plus anything already
// known from a prior binding (e.g. a parent ability's context).
type Input struct {
	ControllerID cardstate.PlayerID
	SourceID     cardstate.PermanentID
	HasSourceID  bool
	Base         selector.Context
}

// Build canonicalizes base and hints into a selector.Context, applying its
// six precedence rules in order.
func Build(base Input, hints HintPayload) selector.Context {
	out := selector.Context{
		ControllerID: base.ControllerID,
		SourceID:     base.SourceID,
		HasSourceID:  base.HasSourceID,
	}

	// Rule 1/2: trim + drop anything equal to the controller.
	affectedOpponents := sanitizeRelational(hints.AffectedOpponentIDs, base.ControllerID)
	opponentsDealtDamage := sanitizeRelational(hints.OpponentsDealtDamageIDs, base.ControllerID)
	affectedPlayers := sanitizeRelational(hints.AffectedPlayerIDs, base.ControllerID)
	targetOpponentHint := sanitizeOne(hints.TargetOpponentID, base.ControllerID)
	targetPlayerHint := sanitizeOne(hints.TargetPlayerID, base.ControllerID)

	// Rule 4: eachOfThoseOpponents precedence.
	switch {
	case len(affectedOpponents) > 0:
		out.EachOfThoseOpponents = affectedOpponents
	case len(opponentsDealtDamage) > 0:
		out.EachOfThoseOpponents = opponentsDealtDamage
	case len(affectedPlayers) > 0:
		out.EachOfThoseOpponents = affectedPlayers
	case targetOpponentHint != "":
		out.EachOfThoseOpponents = []cardstate.PlayerID{cardstate.PlayerID(targetOpponentHint)}
	case len(base.Base.EachOfThoseOpponents) > 0:
		out.EachOfThoseOpponents = dedupPreserveOrder(base.Base.EachOfThoseOpponents)
	default:
		out.EachOfThoseOpponents = nil
	}
	out.EachOfThoseOpponents = dropID(dedupPreserveOrderIDs(out.EachOfThoseOpponents), base.ControllerID)

	// Rule 5: targetOpponentId precedence.
	switch {
	case targetOpponentHint != "":
		out.TargetOpponentID = cardstate.PlayerID(targetOpponentHint)
		out.HasTargetOpponentID = true
	case len(affectedOpponents) == 1:
		out.TargetOpponentID = affectedOpponents[0]
		out.HasTargetOpponentID = true
	case base.Base.HasTargetOpponentID:
		out.TargetOpponentID = base.Base.TargetOpponentID
		out.HasTargetOpponentID = true
	case base.Base.HasTargetPlayerID && base.Base.TargetPlayerID != base.ControllerID:
		out.TargetOpponentID = base.Base.TargetPlayerID
		out.HasTargetOpponentID = true
	}

	// Rule 6: targetPlayerId default.
	switch {
	case out.HasTargetOpponentID:
		out.TargetPlayerID = out.TargetOpponentID
		out.HasTargetPlayerID = true
	case targetPlayerHint != "":
		out.TargetPlayerID = cardstate.PlayerID(targetPlayerHint)
		out.HasTargetPlayerID = true
	case len(affectedPlayers) == 1:
		out.TargetPlayerID = affectedPlayers[0]
		out.HasTargetPlayerID = true
	case base.Base.HasTargetPlayerID:
		out.TargetPlayerID = base.Base.TargetPlayerID
		out.HasTargetPlayerID = true
	}

	// Rule 7: referenceSpellTypes from hints.spellType.
	if hints.SpellType != "" {
		out.ReferenceSpellTypes = splitLowerFields(hints.SpellType)
	} else {
		out.ReferenceSpellTypes = base.Base.ReferenceSpellTypes
	}

	return out
}

func sanitizeOne(id string, controller cardstate.PlayerID) string {
	id = strings.TrimSpace(id)
	if id == "" || cardstate.PlayerID(id) == controller {
		return ""
	}
	return id
}

func sanitizeRelational(ids []string, controller cardstate.PlayerID) []cardstate.PlayerID {
	var out []cardstate.PlayerID
	seen := map[cardstate.PlayerID]bool{}
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		pid := cardstate.PlayerID(id)
		if pid == controller || seen[pid] {
			continue
		}
		seen[pid] = true
		out = append(out, pid)
	}
	return out
}

func dedupPreserveOrder(ids []cardstate.PlayerID) []cardstate.PlayerID {
	return dedupPreserveOrderIDs(ids)
}

func dedupPreserveOrderIDs(ids []cardstate.PlayerID) []cardstate.PlayerID {
	var out []cardstate.PlayerID
	seen := map[cardstate.PlayerID]bool{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func dropID(ids []cardstate.PlayerID, drop cardstate.PlayerID) []cardstate.PlayerID {
	if drop == "" {
		return ids
	}
	var out []cardstate.PlayerID
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

func splitLowerFields(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToLower(f))
	}
	return out
}
