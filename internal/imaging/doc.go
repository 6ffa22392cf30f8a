// Package imaging provides the pixel buffer and the catalogue of pixel-level
// transforms the editor applies to it.
//
// # Buffer
//
// A Buffer is a Height x Width grid of integer RGB triples. Rows and columns
// are 0-based with (0,0) at the top-left. Inspection helpers that follow the
// usual image convention take (x, y) instead, where x is the column and y the
// row.
//
// Every public transform leaves all channels in [0,255]. Intermediate
// arithmetic inside a transform is free to overflow that range.
//
// # Transforms
//
//   - Grayscale, Sepia: 3x3 color matrices applied per pixel
//   - Blur (3x3), Sharpen (5x5): convolution kernels
//   - Dither: grayscale followed by Floyd-Steinberg error diffusion
//   - Mosaic: random-seed nearest-neighbor clustering with per-cluster averages
//
// Convolution never pads or wraps: a kernel tap that falls off the grid is
// simply left out of the sum and the kernel is not renormalized. Edge and
// corner pixels therefore darken. Buffer.contains is the only place that
// decides what is on the grid.
//
// # Rounding
//
// All rounding is half-up, floor(x + 0.5), via Round.
//
// # Files
//
// FileStore decodes with disintegration/imaging and encodes with bild's imgio.
// It caches decoded files by path, decodes again when a file's modification
// time or size changes, and always returns private copies.
//
// # Error Handling
//
// Errors are editerr codes: OUT_OF_BOUNDS for grid access, INVALID_DIMENSION
// for bad kernel shapes or seed counts, FILE_ACCESS for I/O, INVALID_INPUT for
// unknown filter names and file extensions.
//
// # Thread Safety
//
// Buffer and the transforms are not safe for concurrent use on the same
// buffer. FileStore is safe for concurrent use.
package imaging
