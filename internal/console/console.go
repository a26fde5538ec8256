// Package console runs a game of black holes over a line-oriented text
// stream.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/game"
)

const quitSentinel = -1

var errInvalidInput = errors.New("invalid input")

type Console struct {
	in  *bufio.Scanner
	out io.Writer
	rnd *rand.Rand
	log *logrus.Logger
}

func New(in io.Reader, out io.Writer, rnd *rand.Rand, log *logrus.Logger) *Console {
	return &Console{
		in:  bufio.NewScanner(in),
		out: out,
		rnd: rnd,
		log: log,
	}
}

func (c *Console) println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// readLine returns the next input line. io.EOF means the input is
// exhausted.
func (c *Console) readLine() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) readInt(prompt string) (int, error) {
	for {
		c.println(prompt)
		line, err := c.readLine()
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(line)
		if err != nil {
			c.println("\nInvalid input!\n")
			continue
		}
		return v, nil
	}
}

func (c *Console) newGame() (*game.Game, error) {
	for {
		n, err := c.readInt("Input the size of the board N:")
		if err != nil {
			return nil, err
		}
		k, err := c.readInt("Input the number of black holes K:")
		if err != nil {
			return nil, err
		}
		mode, err := c.readInt("Input 1 for debug mode or 0 for normal mode:")
		if err != nil {
			return nil, err
		}
		debug := mode == 1

		if debug {
			c.log.SetLevel(logrus.DebugLevel)
		}

		c.println("Initializing the board...\n")
		g, err := game.New(n, k, debug, c.rnd)
		if errors.Is(err, board.ErrInvalidArgument) {
			c.println("\n" + err.Error() + "\n")
			continue
		}
		if err != nil {
			return nil, err
		}

		c.log.WithFields(logrus.Fields{
			"n":     n,
			"k":     k,
			"debug": debug,
		}).Debug("new game")

		return g, nil
	}
}

// parseCoords reads either two integers or the quit sentinel.
func parseCoords(line string) (x, y int, quit bool, err error) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 1:
		v, err := strconv.Atoi(fields[0])
		if err != nil || v != quitSentinel {
			return 0, 0, false, errInvalidInput
		}
		return 0, 0, true, nil
	case 2:
		if x, err = strconv.Atoi(fields[0]); err != nil {
			return 0, 0, false, errInvalidInput
		}
		if y, err = strconv.Atoi(fields[1]); err != nil {
			return 0, 0, false, errInvalidInput
		}
		return x, y, false, nil
	default:
		return 0, 0, false, errInvalidInput
	}
}

// Run plays one game to its end and returns how it ended. Running out of
// input counts as quitting. A debug game raises the logger to debug level
// until Run returns.
func (c *Console) Run() (game.State, error) {
	defer c.log.SetLevel(c.log.GetLevel())

	g, err := c.newGame()
	if errors.Is(err, io.EOF) {
		return game.Quit, nil
	}
	if err != nil {
		return game.Quit, err
	}

	c.println(g.Board())

	for {
		c.println("Input the coordinates of the cell separated by a space or type -1 to quit:")
		line, err := c.readLine()
		if errors.Is(err, io.EOF) {
			g.Quit()
			return g.State(), nil
		}
		if err != nil {
			return g.State(), err
		}

		x, y, quit, err := parseCoords(line)
		if err != nil {
			c.println("\nInvalid input!\n")
			continue
		}
		if quit {
			c.println("Exiting...")
			g.Quit()
			return g.State(), nil
		}

		res, err := g.Reveal(x, y)
		if err != nil {
			return g.State(), err
		}

		switch res.Status {
		case board.OutOfBounds:
			continue
		case board.AlreadyRevealed:
			c.println("\nCell already revealed!\n")
			continue
		case board.HitHazard:
			c.println("\nYou hit a black hole! Game over!\n")
			c.println(g.Board())
			c.log.WithField("revealed", g.Total()).Info("game lost")
			return g.State(), nil
		}

		c.println(g.Board())

		if g.State() == game.Won {
			c.println("\nYou won!\n")
			c.log.WithField("revealed", g.Total()).Info("game won")
			return g.State(), nil
		}
	}
}
