package ssim

import "math"

// Result is the outcome of one comparison.
//
// Map is the per-pixel similarity map in row-major order over the valid
// region, whose dimensions are Width x Height. With window size n and
// halfSize = n/2, the valid region of a WxH input is
// max(0, W-2*halfSize) x max(0, H-2*halfSize); boundary pixels are excluded
// entirely.
//
// MSSIM is the arithmetic mean of the map. When the window is larger than
// the image the valid region is empty and MSSIM is NaN; callers that cannot
// tolerate NaN must guard the input sizes themselves.
type Result struct {
	MSSIM  float64
	Map    []float64
	Width  int
	Height int
}

func newResult(ssimMap []float64, width, height int) *Result {
	return &Result{
		MSSIM:  meanOf(ssimMap),
		Map:    ssimMap,
		Width:  width,
		Height: height,
	}
}

// meanOf reduces a similarity map to its arithmetic mean. An empty map has
// no defined mean and yields NaN.
func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// validRegion computes the valid-region dimensions for a window size.
func validRegion(width, height, windowSize int) (vw, vh int) {
	half := windowSize >> 1
	vw = width - 2*half
	vh = height - 2*half
	if vw < 0 {
		vw = 0
	}
	if vh < 0 {
		vh = 0
	}
	return vw, vh
}
