package board

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type Status int

const (
	Revealed Status = iota
	AlreadyRevealed
	HitHazard
	OutOfBounds
)

func (s Status) String() string {
	switch s {
	case Revealed:
		return "revealed"
	case AlreadyRevealed:
		return "already_revealed"
	case HitHazard:
		return "hit_black_hole"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// [Status] implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Result is the outcome of a single reveal. Count is the number of cells the
// reveal uncovered and is only non-zero for [Revealed].
type Result struct {
	Status Status
	Count  int
}

// Reveal uncovers the cell at x, y. A cell without neighbouring black holes
// cascades into its neighbours until the cascade reaches numbered cells.
// Black holes are never marked revealed.
func (b *Board) Reveal(x, y int) Result {
	if !b.InBounds(x, y) {
		Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("coordinates out of bounds")
		return Result{Status: OutOfBounds}
	}

	if b.debug {
		Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("revealing cell")
	}

	start := b.at(Point{x, y})
	if start.Revealed {
		return Result{Status: AlreadyRevealed}
	}
	if start.Hazard {
		return Result{Status: HitHazard}
	}

	/*
	 * Breadth-first cascade. A cell may be queued more than once from
	 * different zero cells; the revealed check on dequeue drops the
	 * repeats.
	 */
	revealed := 0
	queue := []Point{{x, y}}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]

		c := b.at(p)
		if c.Revealed || c.Hazard {
			continue
		}

		c.Revealed = true
		revealed++

		if b.debug {
			Log.WithFields(logrus.Fields{
				"cell":     p,
				"adjacent": c.AdjacentCount,
			}).Debug("revealed cell")
		}

		if c.AdjacentCount > 0 {
			continue
		}

		for q := range b.neighbours(p) {
			queue = append(queue, q)
		}
	}

	b.revealed += revealed
	return Result{Status: Revealed, Count: revealed}
}
