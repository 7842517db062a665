package ssim

// CompareFast computes an approximate SSIM using summed-area tables and
// uniform box windows instead of Gaussian weighting. Window statistics cost
// O(1) per pixel regardless of window size, versus O(windowSize^2) for the
// reference engine.
//
// The box window for a pixel at (x, y) spans [x-halfSize, x+halfSize-1],
// clamped to the image bounds. The upper bound is asymmetric by one so that
// even window sizes cover exactly windowSize samples per axis.
//
// The result is an approximation of Compare: expect differences up to about
// 1e-3 on flat content and up to about 1e-1 on content with strong local
// gradients.
func CompareFast(a, b *Image, opts ...Option) (*Result, error) {
	if err := checkDimensions(a, b); err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	size := cfg.window(DefaultFastWindowSize)
	half := size >> 1
	c1, c2 := cfg.stabilizers()

	vw, vh := validRegion(a.Width, a.Height, size)
	ssimMap := make([]float64, vw*vh)
	if vw > 0 && vh > 0 {
		t1 := NewSummedAreaTable(a)
		t2 := NewSummedAreaTable(b)
		tp := NewProductTable(a, b)

		width := a.Width
		height := a.Height
		for y := half; y < height-half; y++ {
			y1 := max(0, y-half)
			y2 := min(height-1, y+half-1)
			for x := half; x < width-half; x++ {
				x1 := max(0, x-half)
				x2 := min(width-1, x+half-1)

				mu1 := t1.Mean(x1, y1, x2, y2)
				mu2 := t2.Mean(x1, y1, x2, y2)
				s := windowStats{
					mean1: mu1,
					mean2: mu2,
					var1:  t1.SquareMean(x1, y1, x2, y2) - mu1*mu1,
					var2:  t2.SquareMean(x1, y1, x2, y2) - mu2*mu2,
					cov:   tp.Mean(x1, y1, x2, y2) - mu1*mu2,
				}
				ssimMap[(y-half)*vw+(x-half)] = ssimValue(s, c1, c2)
			}
		}
	}
	return newResult(ssimMap, vw, vh), nil
}

// SimilarityFast is the scalar-only convenience form of CompareFast.
func SimilarityFast(a, b *Image, opts ...Option) (float64, error) {
	res, err := CompareFast(a, b, opts...)
	if err != nil {
		return 0, err
	}
	return res.MSSIM, nil
}
