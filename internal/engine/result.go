// Package engine implements the deterministic IR executor: it applies
// oracle.Step values against an immutable cardstate.GameState, producing
// an applied/skipped ledger rather than ever guessing at a target, amount,
// or zone it cannot resolve from state and context.
package engine

import (
	"github.com/cardforge/oracle-engine/internal/cardstate"
	"github.com/cardforge/oracle-engine/internal/oracle"
)

// SkipReason tags why a step was not applied. The taxonomy is closed and
// mirrors its determinism contract: every skip names a specific
// resolution failure, never a generic "couldn't apply".
type SkipReason string

const (
	// ReasonRequiresChoice marks a step whose semantics depend on a player
	// decision the core has no mechanism to ask for (scry ordering, which
	// card to discard from a private zone, an un-narrowed compound target).
	ReasonRequiresChoice SkipReason = "requires_choice"

	// ReasonUnresolvedTarget marks a player-set or permanent-filter selector
	// that ResolvePlayerSet/ResolvePermanents could not resolve from state
	// and context.
	ReasonUnresolvedTarget SkipReason = "unresolved_target"

	// ReasonUnknownAmount marks a step whose Amount is not a known integer
	// (an unbound X or a phrase the parser couldn't reduce to a number).
	ReasonUnknownAmount SkipReason = "unknown_amount"

	// ReasonRequiresTarget marks a "target X" clause: the context carries no
	// id for a specific chosen permanent, so the clause can never resolve.
	ReasonRequiresTarget SkipReason = "requires_target"

	// ReasonNonapplicable marks a step that cannot be satisfied given the
	// current state (not enough matching permanents to sacrifice, an
	// unrecognized clause) without any target/amount ambiguity involved.
	ReasonNonapplicable SkipReason = "nonapplicable"

	// ReasonUnsupportedExpression marks a modify_pt X-expression the
	// resolver does not recognize or cannot evaluate against this state.
	ReasonUnsupportedExpression SkipReason = "unsupported_expression"
)

// AppliedStep records one step the executor actually applied.
type AppliedStep struct {
	Step oracle.Step
	Note string
}

// SkippedStep records one step the executor declined to apply, and why.
type SkippedStep struct {
	Step   oracle.Step
	Reason SkipReason
	Detail string
}

// Options tunes Apply's behavior for optional steps.
type Options struct {
	// AllowOptional, when true, applies steps parsed from a "you may ..."
	// clause as if the choice were taken. When false (the default), every
	// optional step is skipped with ReasonRequiresChoice, since the core has
	// no mechanism of its own to ask.
	AllowOptional bool
}

// Result is the ledger Apply returns: the resulting state plus the full
// record of what was applied and what was skipped, in step order.
type Result struct {
	State   cardstate.GameState
	Applied []AppliedStep
	Skipped []SkippedStep
}
