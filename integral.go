package ssim

// SummedAreaTable is a prefix-sum structure over one image supporting O(1)
// rectangular sum and mean queries. The table is (width+1) x (height+1) with
// a zero border along the top and left, so queries need no special-casing at
// the origin. A squared-value table is built in the same pass to support
// variance queries. The table is read-only after construction and safe for
// concurrent queries.
type SummedAreaTable struct {
	width  int
	height int
	stride int
	sum    []float64
	sqSum  []float64
}

// NewSummedAreaTable builds the plain and squared prefix-sum tables for an
// image in a single pass over its samples.
func NewSummedAreaTable(m *Image) *SummedAreaTable {
	stride := m.Width + 1
	t := &SummedAreaTable{
		width:  m.Width,
		height: m.Height,
		stride: stride,
		sum:    make([]float64, stride*(m.Height+1)),
		sqSum:  make([]float64, stride*(m.Height+1)),
	}
	for y := 0; y < m.Height; y++ {
		src := y * m.Width
		dst := (y + 1) * stride
		prev := y * stride
		var rowSum, rowSqSum float64
		for x := 0; x < m.Width; x++ {
			v := m.Pix[src+x]
			rowSum += v
			rowSqSum += v * v
			t.sum[dst+x+1] = rowSum + t.sum[prev+x+1]
			t.sqSum[dst+x+1] = rowSqSum + t.sqSum[prev+x+1]
		}
	}
	return t
}

// Sum returns the sum of the samples in the inclusive source rectangle
// [x1,x2] x [y1,y2] using four corner lookups.
func (t *SummedAreaTable) Sum(x1, y1, x2, y2 int) float64 {
	return rectSum(t.sum, t.stride, x1, y1, x2, y2)
}

// Mean returns the mean sample value over the inclusive rectangle.
func (t *SummedAreaTable) Mean(x1, y1, x2, y2 int) float64 {
	return t.Sum(x1, y1, x2, y2) / rectArea(x1, y1, x2, y2)
}

// SquareMean returns the mean of the squared samples over the inclusive
// rectangle, i.e. E[x^2], from which variance derives as E[x^2] - E[x]^2.
func (t *SummedAreaTable) SquareMean(x1, y1, x2, y2 int) float64 {
	return rectSum(t.sqSum, t.stride, x1, y1, x2, y2) / rectArea(x1, y1, x2, y2)
}

// ProductTable is a prefix-sum structure over the elementwise product of two
// equal-dimension images, supporting the covariance term E[xy] - E[x]E[y].
type ProductTable struct {
	width  int
	height int
	stride int
	sum    []float64
}

// NewProductTable builds the product prefix-sum table in a single pass.
// Panics if the two images' dimensions differ; the engines validate
// dimensions before construction, so a mismatch here is a programmer error.
func NewProductTable(a, b *Image) *ProductTable {
	if a.Width != b.Width || a.Height != b.Height {
		panic("ssim: product table requires equal image dimensions")
	}
	stride := a.Width + 1
	t := &ProductTable{
		width:  a.Width,
		height: a.Height,
		stride: stride,
		sum:    make([]float64, stride*(a.Height+1)),
	}
	for y := 0; y < a.Height; y++ {
		src := y * a.Width
		dst := (y + 1) * stride
		prev := y * stride
		var rowSum float64
		for x := 0; x < a.Width; x++ {
			rowSum += a.Pix[src+x] * b.Pix[src+x]
			t.sum[dst+x+1] = rowSum + t.sum[prev+x+1]
		}
	}
	return t
}

// Mean returns the mean elementwise product over the inclusive rectangle.
func (t *ProductTable) Mean(x1, y1, x2, y2 int) float64 {
	return rectSum(t.sum, t.stride, x1, y1, x2, y2) / rectArea(x1, y1, x2, y2)
}

// rectSum resolves an inclusive source rectangle against a bordered prefix
// table by inclusion-exclusion over its four corners.
func rectSum(table []float64, stride, x1, y1, x2, y2 int) float64 {
	a := table[y1*stride+x1]
	b := table[y1*stride+x2+1]
	c := table[(y2+1)*stride+x1]
	d := table[(y2+1)*stride+x2+1]
	return d - b - c + a
}

func rectArea(x1, y1, x2, y2 int) float64 {
	return float64((x2 - x1 + 1) * (y2 - y1 + 1))
}
