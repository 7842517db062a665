package ssim

import (
	"math"
	"sync"
)

// kernelKey identifies a cached kernel by value.
type kernelKey struct {
	size  int
	sigma float64
}

// KernelCache builds and memoizes normalized 2D Gaussian weighting kernels.
// Entries are immutable once published and are never evicted; the zero-cost
// read path takes only an RLock. Concurrent first requests for the same key
// are serialized by the write lock, so a kernel is constructed at most once.
type KernelCache struct {
	mu      sync.RWMutex
	kernels map[kernelKey][]float64
}

// NewKernelCache creates an empty kernel cache.
func NewKernelCache() *KernelCache {
	return &KernelCache{kernels: make(map[kernelKey][]float64)}
}

// defaultKernels backs comparisons that do not inject a cache via
// WithKernelCache. It lives for the process.
var defaultKernels = NewKernelCache()

// Get returns the normalized size x size Gaussian kernel for the given
// sigma, building and publishing it on first use. Callers must treat the
// returned slice as read-only.
func (kc *KernelCache) Get(size int, sigma float64) []float64 {
	key := kernelKey{size: size, sigma: sigma}

	kc.mu.RLock()
	k, ok := kc.kernels[key]
	kc.mu.RUnlock()
	if ok {
		return k
	}

	kc.mu.Lock()
	defer kc.mu.Unlock()
	// Another writer may have won the race while we waited for the lock.
	if k, ok := kc.kernels[key]; ok {
		return k
	}
	k = gaussianKernel(size, sigma)
	kc.kernels[key] = k
	return k
}

// gaussianKernel builds a size x size Gaussian weight grid centered at
// c = size/2 and normalizes it so the weights sum to 1.
func gaussianKernel(size int, sigma float64) []float64 {
	kernel := make([]float64, size*size)
	center := size / 2
	denom := 2 * sigma * sigma

	var sum float64
	idx := 0
	for y := 0; y < size; y++ {
		dy := float64(y - center)
		for x := 0; x < size; x++ {
			dx := float64(x - center)
			w := math.Exp(-(dx*dx + dy*dy) / denom)
			kernel[idx] = w
			sum += w
			idx++
		}
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}
