package console

import (
	"bytes"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/game"
)

func run(t *testing.T, input string) (game.State, string) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	var out bytes.Buffer
	c := New(strings.NewReader(input), &out, rand.New(rand.NewPCG(1, 2)), log)
	state, err := c.Run()
	require.NoError(t, err)
	return state, out.String()
}

func TestWin(t *testing.T) {
	state, out := run(t, "3\n0\n0\n1 1\n")
	assert.Equal(t, game.Won, state)
	assert.Contains(t, out, "Initializing the board...")
	assert.Contains(t, out, "You won!")
	assert.Contains(t, out, "0R")
}

func TestLose(t *testing.T) {
	state, out := run(t, "1\n1\n0\n0 0\n")
	assert.Equal(t, game.Lost, state)
	assert.Contains(t, out, "You hit a black hole! Game over!")
	assert.Contains(t, out, " H |")
}

func TestQuit(t *testing.T) {
	state, out := run(t, "3\n9\n0\n-1\n")
	assert.Equal(t, game.Quit, state)
	assert.Contains(t, out, "Exiting...")
}

func TestEndOfInputQuits(t *testing.T) {
	state, _ := run(t, "3\n1\n")
	assert.Equal(t, game.Quit, state)

	state, _ = run(t, "3\n1\n0\n")
	assert.Equal(t, game.Quit, state)
}

func TestInvalidInputReprompts(t *testing.T) {
	state, out := run(t, "abc\n3\n0\n0\n1\n1 2 3\nx y\n-2\n-1\n")
	assert.Equal(t, game.Quit, state)
	assert.Equal(t, 5, strings.Count(out, "Invalid input!"))
}

func TestInvalidBoardReprompts(t *testing.T) {
	state, out := run(t, "0\n0\n0\n2\n5\n0\n2\n0\n0\n0 0\n")
	assert.Equal(t, game.Won, state)
	assert.Contains(t, out, "board dimension must be greater than 0")
	assert.Contains(t, out, "number of black holes must be between 0 and board size")
}

func TestOutOfBoundsReprompts(t *testing.T) {
	state, out := run(t, "3\n8\n0\n7 7\n-1 0\n-1\n")
	assert.Equal(t, game.Quit, state)
	assert.NotContains(t, out, "Invalid input!")
	assert.NotContains(t, out, "Cell already revealed!")
}

func TestAlreadyRevealed(t *testing.T) {
	// same seed as run, so the layout matches the console's board
	b, err := board.New(2, 1, false, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	var safe board.Point
	for _, p := range []board.Point{{0, 0}, {0, 1}, {1, 0}, {1, 1}} {
		if c, _ := b.Cell(p.X, p.Y); !c.Hazard {
			safe = p
			break
		}
	}

	move := fmt.Sprintf("%d %d\n", safe.X, safe.Y)
	state, out := run(t, "2\n1\n0\n"+move+move+"-1\n")
	assert.Equal(t, game.Quit, state)
	assert.Equal(t, 1, strings.Count(out, "Cell already revealed!"))
}

func TestBoardSizeLimitReprompts(t *testing.T) {
	state, out := run(t, fmt.Sprintf("%d\n0\n0\n2\n0\n0\n0 0\n", board.MaxSize+1))
	assert.Equal(t, game.Won, state)
	assert.Contains(t, out, fmt.Sprintf("board dimension must not exceed %d", board.MaxSize))
}

func TestDebugLevelIsScopedToGame(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	log.SetLevel(logrus.WarnLevel)
	boardLevel := board.Log.GetLevel()

	c := New(strings.NewReader("2\n0\n1\n0 0\n"), io.Discard, rand.New(rand.NewPCG(1, 2)), log)
	state, err := c.Run()
	require.NoError(t, err)
	assert.Equal(t, game.Won, state)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	assert.Equal(t, boardLevel, board.Log.GetLevel())
}

func TestParseCoords(t *testing.T) {
	x, y, quit, err := parseCoords("3 4")
	require.NoError(t, err)
	assert.Equal(t, []int{3, 4}, []int{x, y})
	assert.False(t, quit)

	_, _, quit, err = parseCoords(" -1 ")
	require.NoError(t, err)
	assert.True(t, quit)

	for _, line := range []string{"", "1", "a b", "1 b", "1 2 3"} {
		_, _, _, err := parseCoords(line)
		assert.ErrorIs(t, err, errInvalidInput, "line %q", line)
	}
}
