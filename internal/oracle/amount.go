package oracle

// Amount is a parsed quantity: a known non-negative integer, or unknown
// (either because the text says "X" or because the parser can't reduce the
// phrase to a number). Distinguishing IsX lets diagnostics say *why* the
// amount is unknown.
type Amount struct {
	Known bool
	Value int
	IsX   bool
}

// KnownAmount builds a resolved Amount.
func KnownAmount(n int) Amount { return Amount{Known: true, Value: n} }

// UnknownAmount builds an Amount whose value cannot be determined from text
// alone.
func UnknownAmount() Amount { return Amount{Known: false} }

// XAmount builds an Amount that is explicitly "X" in the Oracle text.
func XAmount() Amount { return Amount{Known: false, IsX: true} }
