package ssim

// Defaults for the SSIM stabilization constants and window sizes, from the
// original Wang et al. paper. The Gaussian sigma is fixed: changing it would
// change default numerical output for every caller.
const (
	DefaultK1           = 0.01
	DefaultK2           = 0.03
	DefaultDynamicRange = 255.0

	// DefaultWindowSize is the reference engine's Gaussian window size.
	DefaultWindowSize = 11

	// DefaultFastWindowSize is the fast engine's box window size.
	DefaultFastWindowSize = 8

	defaultSigma = 1.5
)

// Option configures a single comparison. Unset options fall back to their
// defaults independently.
type Option func(*config)

type config struct {
	k1           float64
	k2           float64
	dynamicRange float64
	windowSize   int
	kernels      *KernelCache
}

// WithK1 sets the k1 stabilization factor (default 0.01). Degenerate values
// such as 0 are accepted and propagate through ordinary floating-point
// semantics; they may yield NaN or Inf map entries.
func WithK1(k1 float64) Option {
	return func(c *config) { c.k1 = k1 }
}

// WithK2 sets the k2 stabilization factor (default 0.03).
func WithK2(k2 float64) Option {
	return func(c *config) { c.k2 = k2 }
}

// WithDynamicRange sets the maximum possible sample value L (default 255),
// used to scale the stabilization constants C1 = (k1*L)^2 and C2 = (k2*L)^2.
// L = 0 is not rejected; it makes C1 = C2 = 0.
func WithDynamicRange(l float64) Option {
	return func(c *config) { c.dynamicRange = l }
}

// WithWindowSize sets the local window size. Values <= 0 select the engine
// default (11 for the reference engine, 8 for the fast engine).
func WithWindowSize(size int) Option {
	return func(c *config) { c.windowSize = size }
}

// WithKernelCache routes Gaussian kernel lookups through the given cache
// instead of the process-wide default one.
func WithKernelCache(kc *KernelCache) Option {
	return func(c *config) { c.kernels = kc }
}

func newConfig(opts []Option) config {
	cfg := config{
		k1:           DefaultK1,
		k2:           DefaultK2,
		dynamicRange: DefaultDynamicRange,
		kernels:      defaultKernels,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// window returns the effective window size for an engine with the given
// default.
func (c *config) window(engineDefault int) int {
	if c.windowSize > 0 {
		return c.windowSize
	}
	return engineDefault
}

// stabilizers derives the C1 and C2 constants from k1, k2 and the dynamic
// range.
func (c *config) stabilizers() (c1, c2 float64) {
	c1 = (c.k1 * c.dynamicRange) * (c.k1 * c.dynamicRange)
	c2 = (c.k2 * c.dynamicRange) * (c.k2 * c.dynamicRange)
	return c1, c2
}
