package tcp

import (
	"context"
	"slices"
	"testing"
	"time"

	"dotsim/internal/stream"
	"dotsim/internal/transport"
)

func TestLoopbackDelivery(t *testing.T) {
	hub := transport.NewHub(stream.Header{W: 2, H: 3})
	s, err := Listen("127.0.0.1:0", hub, nil)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	hub.Publish([]byte{1, 2, 3, 4, 5, 6})

	dctx, dcancel := context.WithTimeout(ctx, 5*time.Second)
	defer dcancel()
	r, err := Dial(dctx, s.Addr().String())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer r.Close()
	if r.Header() != (stream.Header{W: 2, H: 3}) {
		t.Fatalf("header = %v", r.Header())
	}

	frame, err := r.Next(nil)
	if err != nil || !slices.Equal(frame, []byte{1, 2, 3, 4, 5, 6}) {
		t.Fatalf("first frame = %v, %v", frame, err)
	}
	// The header is written after subscribing, so this frame is not missed.
	hub.Publish([]byte{6, 5, 4, 3, 2, 1})
	if frame, err = r.Next(frame); err != nil || !slices.Equal(frame, []byte{6, 5, 4, 3, 2, 1}) {
		t.Fatalf("second frame = %v, %v", frame, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop")
	}
}
