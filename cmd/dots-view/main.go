//go:build ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"time"

	"dotsim/internal/app"
	"dotsim/internal/record"
	"dotsim/internal/sims/dots"
	"dotsim/internal/transport"
	"dotsim/internal/transport/tcp"
	"dotsim/internal/transport/ws"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	logger := log.New(os.Stderr, "[dots-view] ", log.LstdFlags|log.Lmicroseconds)

	tcpAddr := flag.String("tcp", "", "sender address to dial, e.g. localhost:7777")
	wsURL := flag.String("ws", "", "sender websocket URL, e.g. ws://localhost:7778/stream")
	play := flag.String("play", "", "recording to replay")
	tps := flag.Int("tps", 24, "replay ticks per second")
	scale := flag.Int("scale", 4, "pixel scale multiplier")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var (
		recv transport.Receiver
		err  error
	)
	switch {
	case *play != "":
		var p *record.Player
		p, err = record.Open(*play)
		if err == nil {
			recv = transport.Paced(p, time.Second/time.Duration(max(1, *tps)))
		}
	case *wsURL != "":
		recv, err = ws.Dial(ctx, *wsURL)
	case *tcpAddr != "":
		recv, err = tcp.Dial(ctx, *tcpAddr)
	default:
		logger.Fatal("one of -tcp, -ws or -play is required")
	}
	if err != nil {
		logger.Fatalf("connect: %v", err)
	}
	defer recv.Close()

	h := recv.Header()
	logger.Printf("streaming %dx%d", h.W, h.H)
	viewer := app.NewViewer(recv, dots.DefaultPalette(), *scale, logger)

	ebiten.SetWindowTitle("dots-view")
	ebiten.SetWindowSize(h.W*(*scale), h.H*(*scale))
	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal(err)
	}
}
