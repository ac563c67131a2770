// Package record stores dots streams as zstd-compressed files. A recording is
// the raw stream (header then column-major frames) run through zstd.
package record

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"dotsim/internal/stream"
	"dotsim/internal/transport"
)

// Ext is the conventional recording file extension.
const Ext = ".dots.zst"

// Recorder appends frames to a compressed recording.
type Recorder struct {
	mu     sync.Mutex
	f      io.Closer
	enc    *zstd.Encoder
	w      *bufio.Writer
	stream *stream.Encoder
	frames int
}

// Create opens path for writing, creating parent directories.
func Create(path string, h stream.Header) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	r, err := newRecorder(f, f, h)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return r, nil
}

// NewRecorder writes a recording to w. Close does not close w.
func NewRecorder(w io.Writer, h stream.Header) (*Recorder, error) {
	return newRecorder(w, nil, h)
}

func newRecorder(w io.Writer, c io.Closer, h stream.Header) (*Recorder, error) {
	if _, err := h.MarshalBinary(); err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	bw := bufio.NewWriterSize(enc, 128*1024)
	return &Recorder{f: c, enc: enc, w: bw, stream: stream.NewEncoder(bw, h)}, nil
}

// WriteFrame appends one column-major frame.
func (r *Recorder) WriteFrame(frame []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enc == nil {
		return fmt.Errorf("record: write after close")
	}
	if err := r.stream.WriteFrame(frame); err != nil {
		return err
	}
	r.frames++
	return nil
}

// Frames counts frames written so far.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Close flushes the compressor and closes the file, if any.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.enc == nil {
		return nil
	}
	// An empty recording still carries its header.
	err := r.stream.WriteHeader()
	if ferr := r.w.Flush(); err == nil {
		err = ferr
	}
	if cerr := r.enc.Close(); err == nil {
		err = cerr
	}
	r.enc = nil
	if r.f != nil {
		if cerr := r.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

// Player replays a recording frame by frame.
type Player struct {
	f      io.Closer
	dec    *zstd.Decoder
	stream *stream.Decoder
	header stream.Header
}

var _ transport.Receiver = (*Player)(nil)

// Open opens a recording file.
func Open(path string) (*Player, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	p, err := newPlayer(f, f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// NewPlayer reads a recording from r.
func NewPlayer(r io.Reader) (*Player, error) {
	return newPlayer(r, nil)
}

func newPlayer(r io.Reader, c io.Closer) (*Player, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	sd := stream.NewDecoder(dec)
	h, err := sd.ReadHeader()
	if err != nil {
		dec.Close()
		return nil, err
	}
	return &Player{f: c, dec: dec, stream: sd, header: h}, nil
}

// Header returns the recorded dimensions.
func (p *Player) Header() stream.Header { return p.header }

// Next returns the next frame, or io.EOF after the last one.
func (p *Player) Next(dst []byte) ([]byte, error) { return p.stream.ReadFrame(dst) }

// Close releases the decoder and the file, if any.
func (p *Player) Close() error {
	p.dec.Close()
	if p.f != nil {
		return p.f.Close()
	}
	return nil
}
