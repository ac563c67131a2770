package core

// Frame stores one byte per cell, row-major, for renderers and transports.
type Frame struct {
	W, H int
	data []uint8
}

// NewFrame allocates a frame with the given dimensions.
func NewFrame(w, h int) *Frame {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Frame{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (f *Frame) Cells() []uint8 { return f.data }

// Index returns the linear slice index for coordinates (x, y).
func (f *Frame) Index(x, y int) int { return y*f.W + x }

// ColumnMajor writes the frame into dst with x as the outer index and y as
// the inner one, growing dst when needed.
func (f *Frame) ColumnMajor(dst []uint8) []uint8 {
	n := f.W * f.H
	if cap(dst) < n {
		dst = make([]uint8, n)
	}
	dst = dst[:n]
	i := 0
	for x := 0; x < f.W; x++ {
		for y := 0; y < f.H; y++ {
			dst[i] = f.data[y*f.W+x]
			i++
		}
	}
	return dst
}

// LoadColumnMajor fills the frame from a column-major buffer of W*H bytes.
func (f *Frame) LoadColumnMajor(src []uint8) {
	i := 0
	for x := 0; x < f.W; x++ {
		for y := 0; y < f.H; y++ {
			f.data[y*f.W+x] = src[i]
			i++
		}
	}
}

// Clear fills the frame with zeros.
func (f *Frame) Clear() {
	for i := range f.data {
		f.data[i] = 0
	}
}
