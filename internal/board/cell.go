package board

import "strconv"

// HiddenGlyph is what a cell the player has not revealed yet looks like.
const HiddenGlyph = "*"

type Cell struct {
	X, Y          int
	Hazard        bool
	Revealed      bool
	AdjacentCount int
}

func (c Cell) String() string {
	return c.Render(false)
}

// Render returns the glyph for c. In debug view black holes are always shown
// as "H" and revealed cells carry an "R" suffix after their count.
func (c Cell) Render(debug bool) string {
	if debug {
		if c.Hazard {
			return "H"
		}
		if c.Revealed {
			return strconv.Itoa(c.AdjacentCount) + "R"
		}
		return strconv.Itoa(c.AdjacentCount)
	}
	if c.Revealed {
		return strconv.Itoa(c.AdjacentCount)
	}
	return HiddenGlyph
}
