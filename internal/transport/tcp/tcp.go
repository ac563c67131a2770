// Package tcp serves the raw dots stream to viewers over TCP.
package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"dotsim/internal/stream"
	"dotsim/internal/transport"
)

const writeTimeout = 5 * time.Second

// Sender accepts viewers and writes the header then every published frame.
type Sender struct {
	hub *transport.Hub
	ln  net.Listener
	log *log.Logger

	wg sync.WaitGroup
}

// Listen opens a TCP listener on addr.
func Listen(addr string, hub *transport.Hub, logger *log.Logger) (*Sender, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcp: listen %s: %w", addr, err)
	}
	return NewSender(ln, hub, logger), nil
}

// NewSender serves viewers accepted from ln.
func NewSender(ln net.Listener, hub *transport.Hub, logger *log.Logger) *Sender {
	return &Sender{hub: hub, ln: ln, log: logger}
}

// Addr returns the listening address.
func (s *Sender) Addr() net.Addr { return s.ln.Addr() }

// Serve accepts viewers until ctx is cancelled, then closes the listener and
// waits for viewer goroutines to finish.
func (s *Sender) Serve(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.ln.Close()
	}()
	defer s.wg.Wait()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("tcp: accept: %w", err)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Sender) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	sub := s.hub.Subscribe(transport.DefaultQueue)
	defer s.hub.Unsubscribe(sub)

	s.logf("viewer %s connected", conn.RemoteAddr())
	bw := bufio.NewWriter(conn)
	enc := stream.NewEncoder(bw, s.hub.Header())

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	err := enc.WriteHeader()
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		s.logf("viewer %s: %v", conn.RemoteAddr(), err)
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err = enc.WriteFrame(frame)
			if err == nil {
				err = bw.Flush()
			}
			if err != nil {
				s.logf("viewer %s gone: %v (dropped %d)", conn.RemoteAddr(), err, sub.Dropped())
				return
			}
		}
	}
}

func (s *Sender) logf(format string, args ...any) {
	if s.log != nil {
		s.log.Printf(format, args...)
	}
}

// Receiver decodes frames from a TCP connection.
type Receiver struct {
	conn   net.Conn
	dec    *stream.Decoder
	header stream.Header
}

var _ transport.Receiver = (*Receiver)(nil)

// Dial connects to a sender and reads the header.
func Dial(ctx context.Context, addr string) (*Receiver, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("tcp: dial %s: %w", addr, err)
	}
	dec := stream.NewDecoder(bufio.NewReader(conn))
	h, err := dec.ReadHeader()
	if err != nil {
		conn.Close()
		return nil, err
	}
	return &Receiver{conn: conn, dec: dec, header: h}, nil
}

// Header returns the stream dimensions.
func (r *Receiver) Header() stream.Header { return r.header }

// Next blocks for the next frame.
func (r *Receiver) Next(dst []byte) ([]byte, error) { return r.dec.ReadFrame(dst) }

// Close closes the connection.
func (r *Receiver) Close() error { return r.conn.Close() }
