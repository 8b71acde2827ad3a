package manacost

// DevotionTo counts the symbols of the given color in this cost, counting
// each hybrid half that includes the color as 1.
func (c Cost) DevotionTo(col Color) int {
	n := c.Count(col)
	for _, h := range c.Hybrids {
		if h[0] == col {
			n++
		}
		if h[1] == col {
			n++
		}
	}
	return n
}
