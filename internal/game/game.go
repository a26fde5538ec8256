package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/vancomm/blackholes/internal/board"
)

var ErrGameOver = errors.New("game is over")

type State int

const (
	Playing State = iota
	Won
	Lost
	Quit
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// [State] implements [encoding.TextMarshaler]
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s State) Over() bool {
	return s != Playing
}

// Game keeps score of a single board: how many cells the player has
// uncovered and whether the game has been decided.
type Game struct {
	board *board.Board
	total int
	state State
}

func New(n, k int, debug bool, r *rand.Rand) (*Game, error) {
	b, err := board.New(n, k, debug, r)
	if err != nil {
		return nil, err
	}
	return FromBoard(b), nil
}

func FromBoard(b *board.Board) *Game {
	return &Game{board: b}
}

// Reveal plays one move. Hitting a black hole loses; uncovering the last
// safe cell wins. Either way the board switches to debug view so the whole
// layout can be shown.
func (g *Game) Reveal(x, y int) (board.Result, error) {
	if g.state.Over() {
		return board.Result{}, ErrGameOver
	}

	res := g.board.Reveal(x, y)
	switch res.Status {
	case board.HitHazard:
		g.state = Lost
		g.board.EnableDebug()
	case board.Revealed:
		g.total += res.Count
		n := g.board.Size()
		if n*n-g.total == g.board.HazardCount() {
			g.state = Won
			g.board.EnableDebug()
		}
	}
	return res, nil
}

func (g *Game) Quit() {
	if !g.state.Over() {
		g.state = Quit
	}
}

func (g *Game) State() State {
	return g.state
}

// Total is the number of cells revealed so far.
func (g *Game) Total() int {
	return g.total
}

func (g *Game) Board() *board.Board {
	return g.board
}
