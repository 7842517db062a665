package ssim

// windowStats holds the weighted first and second moments of one local
// window over a pair of images.
type windowStats struct {
	mean1, mean2 float64
	var1, var2   float64
	cov          float64
}

// computeWindowStats computes the kernel-weighted mean, variance and
// covariance of the size x size window centered at (cx, cy). The window is
// clipped to the image bounds; a clipped window divides by the sum of the
// weights actually used rather than a fixed normalizer. The interior scan
// range of the reference engine only ever produces full windows, so the
// clipping matters solely for callers probing border pixels directly.
//
// The moments are computed in two passes: mean first, then central moments
// against that mean.
func computeWindowStats(a, b *Image, kernel []float64, size, cx, cy int) windowStats {
	half := size >> 1
	x0 := cx - half
	y0 := cy - half
	width := a.Width
	height := a.Height

	var wsum, m1, m2 float64
	for ky := 0; ky < size; ky++ {
		y := y0 + ky
		if y < 0 || y >= height {
			continue
		}
		row := y * width
		krow := ky * size
		for kx := 0; kx < size; kx++ {
			x := x0 + kx
			if x < 0 || x >= width {
				continue
			}
			w := kernel[krow+kx]
			idx := row + x
			m1 += w * a.Pix[idx]
			m2 += w * b.Pix[idx]
			wsum += w
		}
	}
	m1 /= wsum
	m2 /= wsum

	var v1, v2, cov float64
	for ky := 0; ky < size; ky++ {
		y := y0 + ky
		if y < 0 || y >= height {
			continue
		}
		row := y * width
		krow := ky * size
		for kx := 0; kx < size; kx++ {
			x := x0 + kx
			if x < 0 || x >= width {
				continue
			}
			w := kernel[krow+kx]
			idx := row + x
			d1 := a.Pix[idx] - m1
			d2 := b.Pix[idx] - m2
			v1 += w * d1 * d1
			v2 += w * d2 * d2
			cov += w * d1 * d2
		}
	}
	v1 /= wsum
	v2 /= wsum
	cov /= wsum

	return windowStats{mean1: m1, mean2: m2, var1: v1, var2: v2, cov: cov}
}

// ssimValue evaluates the SSIM formula for one window.
func ssimValue(s windowStats, c1, c2 float64) float64 {
	num := (2*s.mean1*s.mean2 + c1) * (2*s.cov + c2)
	den := (s.mean1*s.mean1 + s.mean2*s.mean2 + c1) * (s.var1 + s.var2 + c2)
	return num / den
}
