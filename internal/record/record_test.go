package record

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"slices"
	"testing"

	"dotsim/internal/stream"
)

func TestRecordReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "a"+Ext)
	h := stream.Header{W: 4, H: 2}
	rec, err := Create(path, h)
	if err != nil {
		t.Fatal(err)
	}
	frames := [][]byte{
		{0, 1, 2, 3, 4, 5, 6, 7},
		{7, 6, 5, 4, 3, 2, 1, 0},
		{1, 1, 1, 1, 1, 1, 1, 1},
	}
	for _, f := range frames {
		if err := rec.WriteFrame(f); err != nil {
			t.Fatal(err)
		}
	}
	if rec.Frames() != 3 {
		t.Fatalf("frames = %d", rec.Frames())
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	if err := rec.WriteFrame(frames[0]); err == nil {
		t.Fatal("write after close accepted")
	}

	p, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if p.Header() != h {
		t.Fatalf("header = %v", p.Header())
	}
	var got []byte
	for i, want := range frames {
		if got, err = p.Next(got); err != nil || !slices.Equal(got, want) {
			t.Fatalf("frame %d = %v, %v", i, got, err)
		}
	}
	if _, err := p.Next(got); err != io.EOF {
		t.Fatalf("end err = %v", err)
	}
}

func TestEmptyRecordingKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, stream.Header{W: 3, H: 3})
	if err != nil {
		t.Fatal(err)
	}
	if err := rec.Close(); err != nil {
		t.Fatal(err)
	}
	p, err := NewPlayer(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close()
	if p.Header() != (stream.Header{W: 3, H: 3}) {
		t.Fatalf("header = %v", p.Header())
	}
}

func TestRejectsBadHeader(t *testing.T) {
	if _, err := NewRecorder(io.Discard, stream.Header{}); !errors.Is(err, stream.ErrBadHeader) {
		t.Fatalf("err = %v", err)
	}
}
