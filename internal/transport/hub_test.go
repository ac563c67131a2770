package transport

import (
	"io"
	"slices"
	"testing"
	"time"

	"dotsim/internal/stream"
)

func TestHubDeliversLatestToLateViewer(t *testing.T) {
	h := NewHub(stream.Header{W: 1, H: 2})
	h.Publish([]byte{1, 2})
	h.Publish([]byte{3, 4})

	s := h.Subscribe(0)
	defer h.Unsubscribe(s)
	if got := <-s.C; !slices.Equal(got, []byte{3, 4}) {
		t.Fatalf("late viewer got %v", got)
	}
}

func TestHubDropsForSlowViewer(t *testing.T) {
	h := NewHub(stream.Header{W: 1, H: 1})
	s := h.Subscribe(2)
	for i := 0; i < 5; i++ {
		h.Publish([]byte{byte(i)})
	}
	if s.Dropped() != 3 {
		t.Fatalf("dropped = %d, want 3", s.Dropped())
	}
	if got := <-s.C; got[0] != 0 {
		t.Fatalf("first queued = %v", got)
	}
	if h.Viewers() != 1 {
		t.Fatalf("viewers = %d", h.Viewers())
	}
	h.Unsubscribe(s)
	if h.Viewers() != 0 {
		t.Fatal("unsubscribe did not remove viewer")
	}
}

func TestPublishCopies(t *testing.T) {
	h := NewHub(stream.Header{W: 1, H: 1})
	s := h.Subscribe(1)
	frame := []byte{7}
	h.Publish(frame)
	frame[0] = 9
	if got := <-s.C; got[0] != 7 {
		t.Fatal("published frame aliases the caller's buffer")
	}
}

type sliceReceiver struct {
	frames [][]byte
	closed bool
}

func (r *sliceReceiver) Header() stream.Header { return stream.Header{W: 1, H: 1} }

func (r *sliceReceiver) Next(dst []byte) ([]byte, error) {
	if len(r.frames) == 0 {
		return dst, io.EOF
	}
	f := r.frames[0]
	r.frames = r.frames[1:]
	return append(dst[:0], f...), nil
}

func (r *sliceReceiver) Close() error {
	r.closed = true
	return nil
}

func TestPacedSpacesFrames(t *testing.T) {
	src := &sliceReceiver{frames: [][]byte{{1}, {2}}}
	p := Paced(src, 20*time.Millisecond)
	start := time.Now()
	for i := 0; i < 2; i++ {
		if _, err := p.Next(nil); err != nil {
			t.Fatal(err)
		}
	}
	if elapsed := time.Since(start); elapsed < 35*time.Millisecond {
		t.Fatalf("two frames in %v, want at least two intervals", elapsed)
	}
	if _, err := p.Next(nil); err != io.EOF {
		t.Fatalf("err = %v, want io.EOF", err)
	}
	if err := p.Close(); err != nil || !src.closed {
		t.Fatal("Close must reach the wrapped receiver")
	}
}
