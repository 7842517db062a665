// Package imgio bridges decoded images to the ssim package's single-channel
// buffers. It is strictly caller-side convenience: the ssim package itself
// never performs I/O or decoding.
package imgio

import (
	"fmt"
	"image"
	"os"

	// Register the decoders the CLI and server accept.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"golang.org/x/image/draw"

	"github.com/cwbudde/ssim"
)

// Load opens and decodes an image file (png, jpeg, bmp or tiff).
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// LoadLuminance loads an image file and converts it to a luminance buffer.
func LoadLuminance(path string) (*ssim.Image, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Luminance(img), nil
}

// Luminance converts any image to a single-channel buffer using BT.601
// weights, with samples in [0, 255]. Gray and NRGBA images take direct pixel
// paths; everything else goes through the generic color model.
func Luminance(img image.Image) *ssim.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	out := ssim.NewImage(w, h)

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < h; y++ {
			off := (y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X - src.Rect.Min.X)
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = float64(src.Pix[off+x])
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			off := (y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride + (bounds.Min.X-src.Rect.Min.X)*4
			for x := 0; x < w; x++ {
				i := off + x*4
				out.Pix[y*w+x] = 0.299*float64(src.Pix[i]) +
					0.587*float64(src.Pix[i+1]) +
					0.114*float64(src.Pix[i+2])
			}
		}
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				// RGBA returns 16-bit channels; scale back to 0..255.
				out.Pix[y*w+x] = (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 257
			}
		}
	}
	return out
}

// Resize rescales an image to the given dimensions with bilinear
// interpolation. Used by callers that want to compare images of different
// sizes anyway; the ssim engines themselves reject mismatched dimensions.
func Resize(img image.Image, width, height int) image.Image {
	if b := img.Bounds(); b.Dx() == width && b.Dy() == height {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
