package ssim

import "fmt"

// DimensionMismatchError reports that the two input images do not share the
// same width and height. It is the only recoverable error the engines
// return; it is raised before any pixel is read.
type DimensionMismatchError struct {
	Width1, Height1 int
	Width2, Height2 int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("ssim: image dimensions do not match: %dx%d vs %dx%d",
		e.Width1, e.Height1, e.Width2, e.Height2)
}

// checkDimensions validates the shared-dimension input contract.
func checkDimensions(a, b *Image) error {
	if a.Width != b.Width || a.Height != b.Height {
		return &DimensionMismatchError{
			Width1: a.Width, Height1: a.Height,
			Width2: b.Width, Height2: b.Height,
		}
	}
	return nil
}
