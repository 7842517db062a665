package ssim

// Compare computes the reference (Gaussian-windowed) SSIM between two
// equal-dimension images and returns the detailed result. The window slides
// over every interior pixel; each window's weighted statistics feed the SSIM
// formula and land at the corresponding valid-region map position.
//
// Returns a *DimensionMismatchError before touching any pixel data if the
// images' dimensions differ.
func Compare(a, b *Image, opts ...Option) (*Result, error) {
	if err := checkDimensions(a, b); err != nil {
		return nil, err
	}

	cfg := newConfig(opts)
	size := cfg.window(DefaultWindowSize)
	half := size >> 1
	c1, c2 := cfg.stabilizers()
	kernel := cfg.kernels.Get(size, defaultSigma)

	vw, vh := validRegion(a.Width, a.Height, size)
	ssimMap := make([]float64, vw*vh)
	if vw > 0 && vh > 0 {
		for y := half; y < a.Height-half; y++ {
			for x := half; x < a.Width-half; x++ {
				s := computeWindowStats(a, b, kernel, size, x, y)
				ssimMap[(y-half)*vw+(x-half)] = ssimValue(s, c1, c2)
			}
		}
	}
	return newResult(ssimMap, vw, vh), nil
}

// Similarity is the scalar-only convenience form of Compare.
func Similarity(a, b *Image, opts ...Option) (float64, error) {
	res, err := Compare(a, b, opts...)
	if err != nil {
		return 0, err
	}
	return res.MSSIM, nil
}
