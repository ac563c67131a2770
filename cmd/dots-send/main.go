// Command dots-send runs a dots world headless and streams every tick to TCP
// and WebSocket viewers, optionally recording it.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dotsim/internal/app"
	"dotsim/internal/core"
	"dotsim/internal/record"
	"dotsim/internal/sims/dots"
	"dotsim/internal/stream"
	"dotsim/internal/transport"
	"dotsim/internal/transport/tcp"
	"dotsim/internal/transport/ws"
)

func main() {
	logger := log.New(os.Stderr, "[dots-send] ", log.LstdFlags|log.Lmicroseconds)

	sim := flag.String("sim", "demo", "simulation to run (sandbox, demo)")
	tcpAddr := flag.String("tcp", ":7777", "TCP listen address, empty to disable")
	wsAddr := flag.String("ws", "", "WebSocket listen address serving /stream, empty to disable")
	recPath := flag.String("record", "", "write a zstd recording to this path")
	tps := flag.Int("tps", 24, "ticks per second")
	ticks := flag.Int("ticks", 0, "stop after this many ticks, 0 runs until interrupted")
	cfg := dots.DefaultConfig()
	app.BindWorld(flag.CommandLine, &cfg)
	flag.Parse()

	session, err := dots.Open(*sim, cfg)
	if err != nil {
		logger.Fatalf("open %s: %v", *sim, err)
	}
	defer session.Close()

	size := session.Size()
	header := stream.Header{W: size.W, H: size.H}
	hub := transport.NewHub(header)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *tcpAddr != "" {
		sender, err := tcp.Listen(*tcpAddr, hub, logger)
		if err != nil {
			logger.Fatalf("%v", err)
		}
		logger.Printf("tcp viewers on %s", sender.Addr())
		go func() {
			if err := sender.Serve(ctx); err != nil {
				logger.Printf("tcp: %v", err)
			}
		}()
	}

	if *wsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/stream", ws.NewServer(hub, logger).Handler())
		srv := &http.Server{Addr: *wsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		go func() {
			logger.Printf("ws viewers on %s/stream", *wsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Printf("ws: %v", err)
			}
		}()
	}

	var rec *record.Recorder
	if *recPath != "" {
		rec, err = record.Create(*recPath, header)
		if err != nil {
			logger.Fatalf("record: %v", err)
		}
		defer func() {
			if err := rec.Close(); err != nil {
				logger.Printf("record: %v", err)
			}
			logger.Printf("recorded %d frames to %s", rec.Frames(), *recPath)
		}()
	}

	logger.Printf("running %s %dx%d at %d tps", session.Name(), size.W, size.H, *tps)
	ticker := time.NewTicker(core.NewFixedStep(*tps).Interval())
	defer ticker.Stop()

	var frame []byte
	for {
		select {
		case <-ctx.Done():
			logger.Printf("stopping after %d ticks", session.Ticks())
			return
		case <-ticker.C:
		}
		session.Step()
		frame = session.ColumnMajor(frame)
		hub.Publish(frame)
		if rec != nil {
			if err := rec.WriteFrame(frame); err != nil {
				logger.Printf("record: %v", err)
				return
			}
		}
		if *ticks > 0 && session.Ticks() >= uint64(*ticks) {
			logger.Printf("reached %d ticks", *ticks)
			return
		}
	}
}
