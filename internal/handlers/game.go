package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/config"
	"github.com/vancomm/blackholes/internal/game"
	"github.com/vancomm/blackholes/internal/middleware"
	"github.com/vancomm/blackholes/internal/session"
)

var errUnauthorized = errors.New("you are not allowed to play this game")

type GameHandler struct {
	log    *logrus.Logger
	store  *session.Store
	jwt    *config.JWT
	ws     *config.WebSocket
	limits config.Limits
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
	limits config.Limits,
) *GameHandler {
	return &GameHandler{
		log:    log,
		store:  store,
		jwt:    jwt,
		ws:     ws,
		limits: limits,
	}
}

// authorize checks that the request carries a token for the session in the
// path and returns the session id.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	claims, ok := middleware.SessionClaims(r.Context())
	if !ok || claims.SessionID() != id {
		sendError(w, g.log, http.StatusUnauthorized, errUnauthorized)
		return "", false
	}
	return id, true
}

// sessionError maps store and game errors to a response.
func (g GameHandler) sessionError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		sendError(w, g.log, http.StatusNotFound, err)
	case errors.Is(err, game.ErrGameOver):
		sendError(w, g.log, http.StatusConflict, err)
	default:
		g.log.WithFields(logrus.Fields{
			"session": id,
			"error":   err,
		}).Error("unable to update game session")
		sendError(w, g.log, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[NewGameDTO](r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if dto.N > g.limits.MaxSize {
		sendError(w, g.log, http.StatusBadRequest,
			fmt.Errorf("board dimension must not exceed %d", g.limits.MaxSize))
		return
	}

	id, err := g.store.Create(dto.N, dto.K, dto.Debug)
	if errors.Is(err, board.ErrInvalidArgument) {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		g.log.WithError(err).Error("unable to create a new game")
		sendError(w, g.log, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	token, err := g.jwt.Sign(id, time.Now())
	if err != nil {
		g.store.Delete(id)
		g.log.WithError(err).Error("unable to sign session token")
		sendError(w, g.log, http.StatusInternalServerError, errors.New("internal error"))
		return
	}

	g.log.WithFields(logrus.Fields{
		"session": id,
		"n":       dto.N,
		"k":       dto.K,
		"debug":   dto.Debug,
	}).Debug("created game session")

	var resp *GameSessionDTO
	err = g.store.Do(id, func(e *session.Entry) error {
		resp = NewGameSessionDTO(e)
		return nil
	})
	if err != nil {
		g.sessionError(w, id, err)
		return
	}
	resp.Token = token

	sendJSONOrLog(w, g.log, resp)
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	var resp *GameSessionDTO
	err := g.store.Do(id, func(e *session.Entry) error {
		resp = NewGameSessionDTO(e)
		return nil
	})
	if err != nil {
		g.sessionError(w, id, err)
		return
	}

	sendJSONOrLog(w, g.log, resp)
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	pos, err := decode[PositionDTO](r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	var resp *GameSessionDTO
	err = g.store.Do(id, func(e *session.Entry) error {
		res, err := e.Reveal(pos.X, pos.Y)
		if err != nil {
			return err
		}
		resp = NewGameSessionDTO(e).withResult(res)
		return nil
	})
	if err != nil {
		g.sessionError(w, id, err)
		return
	}

	if resp.State.Over() {
		g.log.WithFields(logrus.Fields{
			"session":  id,
			"state":    resp.State,
			"revealed": resp.Revealed,
		}).Info("game finished")
	}

	sendJSONOrLog(w, g.log, resp)
}

func (g GameHandler) SetDebug(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	dto, err := decode[DebugDTO](r.URL.Query())
	if err != nil {
		sendError(w, g.log, http.StatusBadRequest, err)
		return
	}

	var resp *GameSessionDTO
	err = g.store.Do(id, func(e *session.Entry) error {
		if dto.On {
			e.Game.Board().EnableDebug()
		} else {
			e.Game.Board().DisableDebug()
		}
		resp = NewGameSessionDTO(e)
		return nil
	})
	if err != nil {
		g.sessionError(w, id, err)
		return
	}

	sendJSONOrLog(w, g.log, resp)
}

func (g GameHandler) Quit(w http.ResponseWriter, r *http.Request) {
	id, ok := g.authorize(w, r)
	if !ok {
		return
	}

	var resp *GameSessionDTO
	err := g.store.Do(id, func(e *session.Entry) error {
		e.Quit()
		resp = NewGameSessionDTO(e)
		return nil
	})
	if err != nil {
		g.sessionError(w, id, err)
		return
	}

	sendJSONOrLog(w, g.log, resp)
}
