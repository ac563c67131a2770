// Package stream encodes the raw dots wire format: a header of width and
// height as little-endian int32, followed by one W*H byte frame of material
// ids per tick in column-major order (x outer, y inner). There is no framing,
// compression or version field.
package stream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// HeaderSize is the encoded header length in bytes.
const HeaderSize = 8

// MaxDimension bounds decoded header values.
const MaxDimension = 1 << 14

var (
	// ErrShortFrame reports a stream that ended inside a header or frame.
	ErrShortFrame = errors.New("stream: short frame")
	// ErrBadHeader reports dimensions outside (0, MaxDimension].
	ErrBadHeader = errors.New("stream: bad header")
)

// Header carries the grid dimensions sent once per connection.
type Header struct {
	W, H int
}

// FrameSize is the byte length of one frame.
func (h Header) FrameSize() int { return h.W * h.H }

func (h Header) valid() bool {
	return h.W > 0 && h.H > 0 && h.W <= MaxDimension && h.H <= MaxDimension
}

// MarshalBinary encodes the header.
func (h Header) MarshalBinary() ([]byte, error) {
	if !h.valid() {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadHeader, h.W, h.H)
	}
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(int32(h.W)))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(int32(h.H)))
	return buf, nil
}

// UnmarshalBinary decodes a header.
func (h *Header) UnmarshalBinary(b []byte) error {
	if len(b) < HeaderSize {
		return fmt.Errorf("%w: header: %w", ErrShortFrame, io.ErrUnexpectedEOF)
	}
	d := Header{
		W: int(int32(binary.LittleEndian.Uint32(b[0:4]))),
		H: int(int32(binary.LittleEndian.Uint32(b[4:8]))),
	}
	if !d.valid() {
		return fmt.Errorf("%w: %dx%d", ErrBadHeader, d.W, d.H)
	}
	*h = d
	return nil
}

// Encoder writes a header followed by frames.
type Encoder struct {
	w      io.Writer
	header Header
	wrote  bool
}

// NewEncoder returns an encoder for frames of the given size.
func NewEncoder(w io.Writer, h Header) *Encoder {
	return &Encoder{w: w, header: h}
}

// Header returns the dimensions being encoded.
func (e *Encoder) Header() Header { return e.header }

// WriteHeader writes the header. WriteFrame calls it on first use.
func (e *Encoder) WriteHeader() error {
	if e.wrote {
		return nil
	}
	b, err := e.header.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := e.w.Write(b); err != nil {
		return fmt.Errorf("stream: write header: %w", err)
	}
	e.wrote = true
	return nil
}

// WriteFrame writes one column-major frame of exactly FrameSize bytes.
func (e *Encoder) WriteFrame(frame []byte) error {
	if len(frame) != e.header.FrameSize() {
		return fmt.Errorf("stream: frame is %d bytes, want %d", len(frame), e.header.FrameSize())
	}
	if err := e.WriteHeader(); err != nil {
		return err
	}
	if _, err := e.w.Write(frame); err != nil {
		return fmt.Errorf("stream: write frame: %w", err)
	}
	return nil
}

// Decoder reads a header followed by frames.
type Decoder struct {
	r      io.Reader
	header Header
	read   bool
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// ReadHeader reads the header if it has not been read yet.
func (d *Decoder) ReadHeader() (Header, error) {
	if d.read {
		return d.header, nil
	}
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(d.r, buf[:]); err != nil {
		return Header{}, short("header", err)
	}
	if err := d.header.UnmarshalBinary(buf[:]); err != nil {
		return Header{}, err
	}
	d.read = true
	return d.header, nil
}

// ReadFrame reads the next frame into dst, growing it when needed. A clean
// end of stream between frames returns io.EOF.
func (d *Decoder) ReadFrame(dst []byte) ([]byte, error) {
	h, err := d.ReadHeader()
	if err != nil {
		return dst, err
	}
	n := h.FrameSize()
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	if _, err := io.ReadFull(d.r, dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, io.EOF
		}
		return dst, short("frame", err)
	}
	return dst, nil
}

func short(what string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %s: %w", ErrShortFrame, what, io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("stream: read %s: %w", what, err)
}
