package oracle

import "strconv"

var numberWords = map[string]int{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
}

// parseAmountWord parses a digit string or a number word ("two", "a", "an")
// into an Amount, or returns XAmount() for "x" (the amount grammar).
func parseAmountWord(w string) Amount {
	if w == "" {
		return KnownAmount(1)
	}
	lower := w
	if lower == "x" {
		return XAmount()
	}
	if n, err := strconv.Atoi(w); err == nil && n >= 0 {
		return KnownAmount(n)
	}
	if n, ok := numberWords[lower]; ok {
		return KnownAmount(n)
	}
	return UnknownAmount()
}
