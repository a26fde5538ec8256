package main

import (
	"flag"
	"hash/maphash"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/blackholes/internal/board"
	"github.com/vancomm/blackholes/internal/console"
)

var (
	log = logrus.New()

	seed    uint64
	verbose bool
)

func init() {
	flag.Uint64Var(&seed, "seed", 0, "fixed random seed (0 picks one)")
	flag.BoolVar(&verbose, "v", false, "log game events to stderr")
}

func createRand() *rand.Rand {
	if seed != 0 {
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func main() {
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	board.Log = log

	c := console.New(os.Stdin, os.Stdout, createRand(), log)
	state, err := c.Run()
	if err != nil {
		log.Fatal("unable to read input: ", err)
	}
	log.WithField("state", state).Debug("game ended")
}
