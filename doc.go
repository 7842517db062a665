// Package ssim computes the Structural Similarity Index (SSIM) between two
// equal-dimension single-channel images, producing both a scalar mean score
// (MSSIM) and a per-pixel similarity map.
//
// Two engines are provided:
//
//   - Compare / Similarity: the reference windowed algorithm using a
//     normalized Gaussian weighting kernel (11x11, sigma 1.5 by default).
//   - CompareFast / SimilarityFast: an accelerated approximation using
//     summed-area tables (integral images) with uniform box windows
//     (8x8 by default), giving amortized O(1) statistics per window.
//
// The fast engine is an approximation, not a numerically identical
// replacement: expect deviations on the order of 1e-3 to 1e-1 versus the
// reference engine depending on window size and local gradients.
//
// The package is a pure computation library: no I/O, no decoding, no
// goroutines. All entry points are safe for concurrent use; the only shared
// state is the kernel cache, which publishes each kernel once and serves
// reads without contention afterwards. Callers that partition work by row
// range can build SummedAreaTable/ProductTable values directly and query
// them from multiple goroutines.
package ssim
