package board

import (
	"cmp"
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// MaxSize is the largest supported board dimension. Cells are stored
// densely, so n*n of them are allocated up front.
const MaxSize = 1 << 10

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

func comparePoints(a, b Point) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

/*
 * Neighbour offsets: top, bottom, left, right, then the four diagonals.
 * The order only changes the order in which a cascade visits cells.
 */
var offsets = [8]Point{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Board is an n×n field of cells with a fixed set of black holes. Rows are
// indexed by x and columns by y.
type Board struct {
	n        int
	cells    []Cell
	hazards  []Point
	revealed int
	debug    bool
}

// New creates an n×n board with k black holes placed uniformly at random.
func New(n, k int, debug bool, r *rand.Rand) (*Board, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	if k < 0 || k > n*n {
		return nil, fmt.Errorf("%w: number of black holes must be between 0 and board size", ErrInvalidArgument)
	}

	b := newBoard(n, debug)
	b.placeHazards(randomHazards(n, k, r))
	return b, nil
}

// NewWithHazards creates an n×n board with black holes at exactly the given
// points.
func NewWithHazards(n int, hazards []Point, debug bool) (*Board, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}

	seen := make(map[Point]struct{}, len(hazards))
	for _, p := range hazards {
		if p.X < 0 || p.X >= n || p.Y < 0 || p.Y >= n {
			return nil, fmt.Errorf("%w: black hole %s is outside the board", ErrInvalidArgument, p)
		}
		if _, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: duplicate black hole %s", ErrInvalidArgument, p)
		}
		seen[p] = struct{}{}
	}

	b := newBoard(n, debug)
	b.placeHazards(slices.Clone(hazards))
	return b, nil
}

func checkSize(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: board dimension must be greater than 0", ErrInvalidArgument)
	}
	if n > MaxSize {
		return fmt.Errorf("%w: board dimension must not exceed %d", ErrInvalidArgument, MaxSize)
	}
	return nil
}

func newBoard(n int, debug bool) *Board {
	cells := make([]Cell, n*n)
	for i := range cells {
		cells[i].X = i / n
		cells[i].Y = i % n
	}
	return &Board{
		n:     n,
		cells: cells,
		debug: debug,
	}
}

/*
 * Shuffle the whole index range and take the first k entries: every
 * k-subset of the board is equally likely and none repeats.
 */
func randomHazards(n, k int, r *rand.Rand) []Point {
	indices := make([]int, n*n)
	for i := range indices {
		indices[i] = i
	}

	swap := func(i, j int) { indices[i], indices[j] = indices[j], indices[i] }
	if r != nil {
		r.Shuffle(len(indices), swap)
	} else {
		rand.Shuffle(len(indices), swap)
	}

	hazards := make([]Point, k)
	for i, idx := range indices[:k] {
		hazards[i] = Point{idx / n, idx % n}
	}
	return hazards
}

func (b *Board) placeHazards(hazards []Point) {
	for _, p := range hazards {
		b.at(p).Hazard = true
	}

	slices.SortFunc(hazards, comparePoints)
	b.hazards = hazards

	if b.debug {
		Log.WithField("black_holes", hazards).Info("placed black holes")
	}

	for _, p := range hazards {
		for q := range b.neighbours(p) {
			if c := b.at(q); !c.Hazard {
				c.AdjacentCount++
			}
		}
	}
}

func (b *Board) at(p Point) *Cell {
	return &b.cells[p.X*b.n+p.Y]
}

// neighbours yields the up to 8 in-bounds neighbours of p.
func (b *Board) neighbours(p Point) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, d := range offsets {
			q := Point{p.X + d.X, p.Y + d.Y}
			if !b.InBounds(q.X, q.Y) {
				continue
			}
			if !yield(q) {
				return
			}
		}
	}
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.n && 0 <= y && y < b.n
}

func (b *Board) Size() int {
	return b.n
}

func (b *Board) HazardCount() int {
	return len(b.hazards)
}

// Hazards returns the black hole coordinates in ascending order.
func (b *Board) Hazards() []Point {
	return slices.Clone(b.hazards)
}

// SafeCells is the number of cells a player has to reveal to win.
func (b *Board) SafeCells() int {
	return b.n*b.n - len(b.hazards)
}

func (b *Board) RevealedCount() int {
	return b.revealed
}

// Cell returns a copy of the cell at x, y.
func (b *Board) Cell(x, y int) (Cell, bool) {
	if !b.InBounds(x, y) {
		return Cell{}, false
	}
	return *b.at(Point{x, y}), true
}

func (b *Board) EnableDebug() {
	b.debug = true
}

func (b *Board) DisableDebug() {
	b.debug = false
}

func (b *Board) Debug() bool {
	return b.debug
}
