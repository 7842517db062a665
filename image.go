package ssim

import "fmt"

// Sample is any fixed-width numeric sample encoding. Narrow integers, wide
// integers and floating-point samples are all accepted uniformly; values are
// converted to float64 at ingestion so the engines never branch on the
// source encoding.
type Sample interface {
	~uint8 | ~int8 | ~uint16 | ~int16 | ~uint32 | ~int32 |
		~uint64 | ~int64 | ~uint | ~int | ~float32 | ~float64
}

// Image is a single-channel image buffer. Pix holds Width*Height samples in
// row-major order. Images are treated as immutable once passed to an engine.
type Image struct {
	Width  int
	Height int
	Pix    []float64
}

// NewImage allocates a zero-filled image buffer.
func NewImage(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// FromSamples builds an Image from a row-major sample slice of any supported
// numeric encoding. The samples are copied, so the caller keeps ownership of
// its buffer. Panics if len(samples) != width*height; a malformed buffer is
// a programmer error, not a recoverable condition.
func FromSamples[T Sample](width, height int, samples []T) *Image {
	if len(samples) != width*height {
		panic(fmt.Sprintf("ssim: sample buffer length %d does not match %dx%d image",
			len(samples), width, height))
	}
	pix := make([]float64, len(samples))
	for i, s := range samples {
		pix[i] = float64(s)
	}
	return &Image{Width: width, Height: height, Pix: pix}
}

// At returns the sample at (x, y). No bounds checking beyond the slice's own.
func (m *Image) At(x, y int) float64 {
	return m.Pix[y*m.Width+x]
}
