package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/session"
)

type wsCommand string

const (
	wsGet    wsCommand = "g"
	wsReveal wsCommand = "r"
	wsDebug  wsCommand = "d"
	wsQuit   wsCommand = "q"
)

// Maps known commands to number of arguments
var commandNargs = map[wsCommand]int{
	wsGet:    0,
	wsReveal: 2,
	wsDebug:  1,
	wsQuit:   0,
}

func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

// execute runs a single command line against the session and returns the
// reveal result if the command was a reveal.
func execute(e *session.Entry, line string) (*board.Result, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return nil, errors.New("empty command")
	}
	cmd := wsCommand(parts[0])
	nargs, ok := commandNargs[cmd]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, errors.New("invalid number of arguments")
	}

	switch cmd {
	case wsReveal:
		x, y, err := parseXY(parts[1:])
		if err != nil {
			return nil, err
		}
		res, err := e.Reveal(x, y)
		if err != nil {
			return nil, err
		}
		return &res, nil
	case wsDebug:
		switch parts[1] {
		case "1":
			e.Game.Board().EnableDebug()
		case "0":
			e.Game.Board().DisableDebug()
		default:
			return nil, errors.New("debug argument must be 0 or 1")
		}
	case wsQuit:
		e.Quit()
	}
	return nil, nil
}

// executeMessage runs every line of a message and stops at the first error
// or once the game is over.
func executeMessage(e *session.Entry, message string) (*GameSessionDTO, error) {
	var last *board.Result
	for _, line := range strings.Split(strings.TrimSpace(message), "\n") {
		res, err := execute(e, strings.TrimSpace(line))
		if err != nil {
			return nil, err
		}
		if res != nil {
			last = res
		}
		if e.Game.State().Over() {
			break
		}
	}
	dto := NewGameSessionDTO(e)
	if last != nil {
		dto.withResult(*last)
	}
	return dto, nil
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	if _, err := g.store.Get(id); err != nil {
		g.sessionError(w, id, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.WithError(err).Warn("unable to upgrade connection")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	log := g.log.WithField("session", id)
	log.Debug("websocket connected")

	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseUnsupportedData, "text only"))
			return
		}

		log.Debugf("\t> %s", strings.TrimSpace(string(buf)))

		var reply any
		err = g.store.Do(id, func(e *session.Entry) error {
			dto, err := executeMessage(e, string(buf))
			if err != nil {
				return err
			}
			reply = dto
			return nil
		})
		if errors.Is(err, session.ErrNotFound) {
			conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session expired"))
			return
		}
		if err != nil {
			reply = wrapError(err)
		}

		conn.SetWriteDeadline(time.Now().Add(g.ws.WriteTimeout))
		if err := conn.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("websocket write failed")
			return
		}
		log.Debug("\t< reply")
	}
}
