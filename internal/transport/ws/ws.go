// Package ws serves the dots stream over WebSocket: one binary message with
// the 8-byte header, then one binary message per column-major frame.
package ws

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"dotsim/internal/stream"
	"dotsim/internal/transport"
)

const (
	writeTimeout = 5 * time.Second
	readTimeout  = 60 * time.Second
)

// Server upgrades HTTP requests and streams hub frames to each viewer.
type Server struct {
	hub *transport.Hub
	log *log.Logger

	upgrader websocket.Upgrader
}

// NewServer returns a server for hub. logger may be nil.
func NewServer(hub *transport.Hub, logger *log.Logger) *Server {
	return &Server{
		hub: hub,
		log: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves one viewer per request.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		header, err := s.hub.Header().MarshalBinary()
		if err != nil {
			s.logf("viewer %s: %v", r.RemoteAddr, err)
			return
		}

		sub := s.hub.Subscribe(transport.DefaultQueue)
		defer s.hub.Unsubscribe(sub)
		s.logf("viewer %s connected", r.RemoteAddr)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		// Reader loop only watches for the viewer going away.
		go func() {
			defer cancel()
			for {
				_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.BinaryMessage, header); err != nil {
			return
		}
		for {
			select {
			case <-ctx.Done():
				s.logf("viewer %s gone (dropped %d)", r.RemoteAddr, sub.Dropped())
				return
			case frame := <-sub.C:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
					s.logf("viewer %s: %v", r.RemoteAddr, err)
					return
				}
			}
		}
	}
}

func (s *Server) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}

// Receiver reads frames from a WebSocket sender.
type Receiver struct {
	conn   *websocket.Conn
	header stream.Header
}

var _ transport.Receiver = (*Receiver)(nil)

// Dial connects to url (ws:// or wss://) and reads the header message.
func Dial(ctx context.Context, url string) (*Receiver, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("ws: dial %s: %w", url, err)
	}
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ws: read header: %w", err)
	}
	var h stream.Header
	if kind != websocket.BinaryMessage {
		conn.Close()
		return nil, fmt.Errorf("%w: header is not a binary message", stream.ErrBadHeader)
	}
	if err := h.UnmarshalBinary(msg); err != nil {
		conn.Close()
		return nil, err
	}
	return &Receiver{conn: conn, header: h}, nil
}

// Header returns the stream dimensions.
func (r *Receiver) Header() stream.Header { return r.header }

// Next blocks for the next frame message. A message of the wrong size fails
// with stream.ErrShortFrame.
func (r *Receiver) Next(dst []byte) ([]byte, error) {
	_, msg, err := r.conn.ReadMessage()
	if err != nil {
		return dst, fmt.Errorf("ws: read frame: %w", err)
	}
	if len(msg) != r.header.FrameSize() {
		return dst, fmt.Errorf("%w: frame is %d bytes, want %d", stream.ErrShortFrame, len(msg), r.header.FrameSize())
	}
	return append(dst[:0], msg...), nil
}

// Close sends a close frame and closes the connection.
func (r *Receiver) Close() error {
	_ = r.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return r.conn.Close()
}
