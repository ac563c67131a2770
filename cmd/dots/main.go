//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"dotsim/internal/app"
	"dotsim/internal/core"
	"dotsim/internal/sims/dots"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := log.New(os.Stderr, "[dots] ", log.LstdFlags|log.Lmicroseconds)

	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if _, ok := core.Sims()[cfg.Sim]; !ok {
		logger.Fatalf("unknown sim %q (have %s)", cfg.Sim, strings.Join(core.SimNames(), ", "))
	}
	session, err := dots.Open(cfg.Sim, cfg.Dots)
	if err != nil {
		logger.Fatalf("open %s: %v", cfg.Sim, err)
	}
	defer session.Close()

	game := app.New(session, cfg)
	size := session.Size()

	ebiten.SetWindowTitle("dots - " + session.Name())
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUD, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
