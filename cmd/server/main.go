package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/blackholes/internal/app"
	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/config"
)

var configPath string

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func main() {
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		if err := config.Read(configPath, &cfg); err != nil {
			logrus.Fatalf("unable to read config %s: %s", configPath, err)
		}
	}
	cfg.ApplyEnv()

	log, err := config.NewLogger(cfg)
	if err != nil {
		logrus.Fatal("unable to set up logging: ", err)
	}
	board.Log = log

	log.Info("starting up, mode = ", cfg.Mode)
	log.WithFields(cfg.Fields()).Debug("config")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	a, err := app.New(log, cfg)
	if err != nil {
		log.Fatal("unable to create app: ", err)
	}

	if err := a.Start(ctx); err != nil {
		log.Error("exit reason: ", err)
		os.Exit(1)
	}
}
