// Package transport fans frames out to stream viewers. The tcp and ws
// subpackages carry the frames over the wire.
package transport

import (
	"sync"
	"sync/atomic"

	"dotsim/internal/stream"
)

// DefaultQueue is the per-viewer frame backlog. A viewer that falls further
// behind loses frames rather than stalling the tick loop.
const DefaultQueue = 4

// Receiver is the viewer side of a frame stream.
type Receiver interface {
	Header() stream.Header
	// Next reads the next column-major frame into dst.
	Next(dst []byte) ([]byte, error)
	Close() error
}

// Hub holds the latest frame and the set of subscribed viewers.
type Hub struct {
	header stream.Header

	mu   sync.Mutex
	subs map[*Sub]struct{}
	last []byte
}

// Sub is one viewer's frame queue.
type Sub struct {
	C <-chan []byte

	c       chan []byte
	dropped atomic.Uint64
}

// Dropped counts frames discarded because the queue was full.
func (s *Sub) Dropped() uint64 { return s.dropped.Load() }

// NewHub returns a hub for frames of the given dimensions.
func NewHub(h stream.Header) *Hub {
	return &Hub{header: h, subs: make(map[*Sub]struct{})}
}

// Header returns the frame dimensions.
func (h *Hub) Header() stream.Header { return h.header }

// Publish queues a copy of frame for every viewer. frame must be a
// column-major buffer of Header().FrameSize() bytes.
func (h *Hub) Publish(frame []byte) {
	b := make([]byte, len(frame))
	copy(b, frame)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = b
	for s := range h.subs {
		select {
		case s.c <- b:
		default:
			s.dropped.Add(1)
		}
	}
}

// Subscribe registers a viewer. The latest published frame, if any, is queued
// immediately.
func (h *Hub) Subscribe(queue int) *Sub {
	if queue <= 0 {
		queue = DefaultQueue
	}
	c := make(chan []byte, queue)
	s := &Sub{C: c, c: c}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil {
		c <- h.last
	}
	h.subs[s] = struct{}{}
	return s
}

// Unsubscribe removes a viewer. Its channel is left open.
func (h *Hub) Unsubscribe(s *Sub) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}

// Viewers reports the number of subscribed viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
