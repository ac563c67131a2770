package ws

import (
	"context"
	"errors"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"dotsim/internal/stream"
	"dotsim/internal/transport"
)

func TestHeaderThenFrames(t *testing.T) {
	hub := transport.NewHub(stream.Header{W: 2, H: 2})
	srv := httptest.NewServer(NewServer(hub, nil).Handler())
	defer srv.Close()

	hub.Publish([]byte{1, 2, 3, 4})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	r, err := Dial(ctx, url)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer r.Close()

	if r.Header() != (stream.Header{W: 2, H: 2}) {
		t.Fatalf("header = %v", r.Header())
	}
	frame, err := r.Next(nil)
	if err != nil || !slices.Equal(frame, []byte{1, 2, 3, 4}) {
		t.Fatalf("frame = %v, %v", frame, err)
	}
}

func TestWrongSizedFrame(t *testing.T) {
	hub := transport.NewHub(stream.Header{W: 2, H: 2})
	srv := httptest.NewServer(NewServer(hub, nil).Handler())
	defer srv.Close()

	hub.Publish([]byte{1, 2, 3})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	r, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer r.Close()
	if _, err := r.Next(nil); !errors.Is(err, stream.ErrShortFrame) {
		t.Fatalf("err = %v, want ErrShortFrame", err)
	}
}
