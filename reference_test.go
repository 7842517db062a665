package ssim

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

// constantImage fills a w x h buffer with a single value.
func constantImage(w, h int, value float64) *Image {
	img := NewImage(w, h)
	for i := range img.Pix {
		img.Pix[i] = value
	}
	return img
}

// noisyImage perturbs a constant level with seeded uniform noise in
// [-amplitude, amplitude]. The same seed yields the same noise pattern, so
// two amplitudes differ only in scale.
func noisyImage(w, h int, level, amplitude float64, seed int64) *Image {
	rng := rand.New(rand.NewSource(seed))
	img := NewImage(w, h)
	for i := range img.Pix {
		img.Pix[i] = level + amplitude*(2*rng.Float64()-1)
	}
	return img
}

// gradientImage produces moderate local variation for cross-engine bounds.
func gradientImage(w, h int) *Image {
	img := NewImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Pix[y*w+x] = float64(2*x+3*y) / float64(2*w+3*h) * 255
		}
	}
	return img
}

func TestCompareIdenticalImages(t *testing.T) {
	a := constantImage(64, 64, 128)
	b := constantImage(64, 64, 128)

	res, err := Compare(a, b)
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if res.MSSIM != 1 {
		t.Errorf("identical images: MSSIM = %v, want exactly 1", res.MSSIM)
	}
	for i, v := range res.Map {
		if v != 1 {
			t.Fatalf("map entry %d = %v, want 1", i, v)
		}
	}
}

func TestCompareIdenticalNoisyImages(t *testing.T) {
	// Identical content, not just identical constants: every window computes
	// the same statistics for both inputs, so the formula reduces to 1.
	a := noisyImage(48, 48, 128, 40, 7)
	b := FromSamples(48, 48, a.Pix)

	got, err := Similarity(a, b)
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if got != 1 {
		t.Errorf("identical noisy images: MSSIM = %v, want exactly 1", got)
	}
}

func TestCompareMapLength(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		windowSize int
		wantLen    int
		wantW      int
		wantH      int
	}{
		{"32x32 window 11", 32, 32, 11, 484, 22, 22},
		{"64x48 window 11", 64, 48, 11, 54 * 38, 54, 38},
		{"32x32 window 5", 32, 32, 5, 784, 28, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := constantImage(tt.w, tt.h, 100)
			b := constantImage(tt.w, tt.h, 100)

			res, err := Compare(a, b, WithWindowSize(tt.windowSize))
			if err != nil {
				t.Fatalf("Compare failed: %v", err)
			}
			if len(res.Map) != tt.wantLen {
				t.Errorf("map length = %d, want %d", len(res.Map), tt.wantLen)
			}
			if res.Width != tt.wantW || res.Height != tt.wantH {
				t.Errorf("valid region = %dx%d, want %dx%d",
					res.Width, res.Height, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestCompareDimensionMismatch(t *testing.T) {
	a := constantImage(32, 32, 100)
	b := constantImage(32, 16, 100)

	_, err := Compare(a, b)
	if err == nil {
		t.Fatal("expected dimension mismatch error, got nil")
	}

	var dim *DimensionMismatchError
	if !errors.As(err, &dim) {
		t.Fatalf("expected *DimensionMismatchError, got %T: %v", err, err)
	}
	if dim.Width1 != 32 || dim.Height1 != 32 || dim.Width2 != 32 || dim.Height2 != 16 {
		t.Errorf("error carries wrong dimensions: %+v", dim)
	}

	if _, err := Similarity(a, b); err == nil {
		t.Error("Similarity must reject mismatched dimensions too")
	}
}

func TestCompareSymmetry(t *testing.T) {
	a := noisyImage(40, 40, 120, 30, 1)
	b := noisyImage(40, 40, 130, 25, 2)

	ab, err := Similarity(a, b)
	if err != nil {
		t.Fatalf("Similarity(a,b) failed: %v", err)
	}
	ba, err := Similarity(b, a)
	if err != nil {
		t.Fatalf("Similarity(b,a) failed: %v", err)
	}
	if ab != ba {
		t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
	}
}

func TestCompareBlackVsWhite(t *testing.T) {
	black := constantImage(64, 64, 0)
	white := constantImage(64, 64, 255)

	got, err := Similarity(black, white)
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if got >= 0.1 {
		t.Errorf("black vs white: MSSIM = %v, want < 0.1", got)
	}
	if got <= -1 {
		t.Errorf("black vs white: MSSIM = %v, want > -1", got)
	}
}

func TestCompareNoiseDegradation(t *testing.T) {
	base := constantImage(48, 48, 128)
	amplitudes := []float64{4, 16, 64}

	var prev float64 = 1
	for _, amp := range amplitudes {
		noisy := noisyImage(48, 48, 128, amp, 42)
		got, err := Similarity(base, noisy)
		if err != nil {
			t.Fatalf("Similarity failed at amplitude %g: %v", amp, err)
		}
		if got >= prev {
			t.Errorf("amplitude %g: MSSIM = %v, expected strictly below %v", amp, got, prev)
		}
		prev = got
	}
}

func TestCompareEmptyValidRegion(t *testing.T) {
	// Window larger than the image: the map is empty and the mean is NaN.
	a := constantImage(8, 8, 50)
	b := constantImage(8, 8, 50)

	res, err := Compare(a, b, WithWindowSize(11))
	if err != nil {
		t.Fatalf("Compare failed: %v", err)
	}
	if len(res.Map) != 0 {
		t.Errorf("expected empty map, got %d entries", len(res.Map))
	}
	if !math.IsNaN(res.MSSIM) {
		t.Errorf("empty region MSSIM = %v, want NaN", res.MSSIM)
	}
}

func TestCompareOptionsFallBackIndependently(t *testing.T) {
	a := noisyImage(32, 32, 128, 20, 3)
	b := noisyImage(32, 32, 128, 20, 4)

	def, err := Similarity(a, b)
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}

	// Overriding one option must not disturb the others' defaults.
	k1Only, err := Similarity(a, b, WithK1(DefaultK1))
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if k1Only != def {
		t.Errorf("explicit default k1 changed the result: %v vs %v", k1Only, def)
	}

	smaller, err := Similarity(a, b, WithWindowSize(7))
	if err != nil {
		t.Fatalf("Similarity failed: %v", err)
	}
	if smaller == def {
		t.Error("changing the window size should change the result on noisy input")
	}
}

func TestCompareDegenerateConstantsPropagate(t *testing.T) {
	// L = 0 makes C1 = C2 = 0. Constant equal images then divide 0 by 0,
	// which flows through as NaN rather than an error.
	a := constantImage(16, 16, 0)
	b := constantImage(16, 16, 0)

	got, err := Similarity(a, b, WithDynamicRange(0))
	if err != nil {
		t.Fatalf("degenerate dynamic range must not error: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("expected NaN from 0/0 SSIM ratio, got %v", got)
	}
}

func TestInjectedKernelCache(t *testing.T) {
	kc := NewKernelCache()
	a := constantImage(20, 20, 128)
	b := constantImage(20, 20, 128)

	if _, err := Compare(a, b, WithKernelCache(kc)); err != nil {
		t.Fatalf("Compare failed: %v", err)
	}

	kc.mu.RLock()
	defer kc.mu.RUnlock()
	key := kernelKey{size: DefaultWindowSize, sigma: defaultSigma}
	if _, ok := kc.kernels[key]; !ok {
		t.Error("injected cache does not hold the default kernel after Compare")
	}
}
