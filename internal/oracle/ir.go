// Package oracle implements the Oracle-text IR and the parser that lowers
// normalized clauses into it. The IR is a closed set of typed
// Step variants; parser templates are a prioritized list of match
// functions dispatched in order of specificity.
package oracle

// AbilityType classifies an Ability by how it's granted, inferred from its
// leading clause.
type AbilityType string

const (
	AbilityStatic      AbilityType = "static"
	AbilityActivated   AbilityType = "activated"
	AbilityTriggered   AbilityType = "triggered"
	AbilityReplacement AbilityType = "replacement"
)

// Ability is an ordered list of steps sharing a type and optional
// trigger/cost/condition metadata.
type Ability struct {
	Type      AbilityType
	Trigger   string // raw trigger clause, e.g. "whenever you cast an instant"
	Cost      string // raw cost clause, e.g. "{2}{R}, tap"
	Condition string // raw condition clause for replacement effects
	Steps     []Step
}

// Ir is the full parse result of one card's Oracle text.
type Ir struct {
	CardName  string
	Abilities []Ability
}
