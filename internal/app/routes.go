package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/blackholes/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(
		a.log, a.store, a.jwt, a.ws, a.config.Limits,
	)

	a.router.HandleFunc("GET /status", handlers.Status)
	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal)
	a.router.HandleFunc("POST /game/{id}/debug", game.SetDebug)
	a.router.HandleFunc("POST /game/{id}/quit", game.Quit)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
}
