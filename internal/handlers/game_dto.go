package handlers

import (
	"net/url"

	"github.com/gorilla/schema"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/game"
	"github.com/vancomm/blackholes/internal/session"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type NewGameDTO struct {
	N     int  `schema:"n,required"`
	K     int  `schema:"k,required"`
	Debug bool `schema:"debug"`
}

type PositionDTO struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

type DebugDTO struct {
	On bool `schema:"on,required"`
}

func decode[T any](src url.Values) (T, error) {
	var dto T
	err := decoder.Decode(&dto, src)
	return dto, err
}

type RevealResultDTO struct {
	Status board.Status `json:"status"`
	Count  int          `json:"count"`
}

type GameSessionDTO struct {
	GameSessionID string           `json:"game_session_id"`
	Token         string           `json:"token,omitempty"`
	N             int              `json:"n"`
	K             int              `json:"k"`
	Debug         bool             `json:"debug"`
	State         game.State       `json:"state"`
	Revealed      int              `json:"revealed"`
	Board         string           `json:"board"`
	Rows          [][]string       `json:"rows"`
	Result        *RevealResultDTO `json:"result,omitempty"`
	StartedAt     int64            `json:"started_at"`
	EndedAt       *int64           `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(e *session.Entry) *GameSessionDTO {
	var endedAt *int64
	if e.EndedAt != nil {
		v := e.EndedAt.UnixMilli()
		endedAt = &v
	}
	b := e.Game.Board()
	return &GameSessionDTO{
		GameSessionID: e.ID,
		N:             b.Size(),
		K:             b.HazardCount(),
		Debug:         b.Debug(),
		State:         e.Game.State(),
		Revealed:      e.Game.Total(),
		Board:         b.String(),
		Rows:          b.Rows(),
		StartedAt:     e.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}

func (dto *GameSessionDTO) withResult(res board.Result) *GameSessionDTO {
	dto.Result = &RevealResultDTO{Status: res.Status, Count: res.Count}
	return dto
}
