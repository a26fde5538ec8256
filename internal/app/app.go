package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/blackholes/internal/config"
	"github.com/vancomm/blackholes/internal/middleware"
	"github.com/vancomm/blackholes/internal/session"
)

type App struct {
	log    *logrus.Logger
	config config.Config
	router *http.ServeMux
	store  *session.Store
	jwt    *config.JWT
	ws     *config.WebSocket
}

func New(log *logrus.Logger, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	jwt, err := config.NewJWT(cfg.Session)
	if err != nil {
		return nil, err
	}

	a := &App{
		log:    log,
		config: cfg,
		router: http.NewServeMux(),
		store:  session.NewStore(createRand(), cfg.Session.IdleTTL.Duration),
		jwt:    jwt,
		ws:     config.NewWebSocket(cfg),
	}
	a.loadRoutes()

	return a, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.log, a.jwt),
		middleware.Cors(a.config.Development()),
		middleware.Logging(a.log),
	)
}

func (a *App) sweep(ctx context.Context) error {
	interval := max(a.config.Session.IdleTTL.Duration/2, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := a.store.Sweep(now); n > 0 {
				a.log.WithFields(logrus.Fields{
					"dropped": n,
					"live":    a.store.Len(),
				}).Info("dropped idle game sessions")
			}
		}
	}
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.sweep(gCtx)
	})

	return g.Wait()
}
