package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
)

// Pixel is one RGB triple. Channels are plain ints so that intermediate
// arithmetic (kernel sums, diffused error) can leave the 0-255 range until
// the next Clamp.
type Pixel [3]int

// ColorMatrix is a 3x3 linear map from old RGB to new RGB. Row k produces
// output channel k.
type ColorMatrix [3][3]float64

// Kernel is a square convolution kernel with odd side length, anchored at
// its center cell.
type Kernel [][]float64

// Buffer is the mutable in-memory raster: a Height x Width grid of RGB
// triples stored row-major.
//
// A Buffer is never resized. Operations that change dimensions produce a new
// Buffer that replaces the old one wholesale.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	width  int
	height int
	pix    []int // 3 ints per pixel, row-major
}

// MaxPixels is the largest buffer NewBuffer will allocate (8192x8192).
const MaxPixels = 1 << 26

// NewBuffer returns a black buffer of the given size.
// Negative dimensions and sizes above MaxPixels are rejected with
// INVALID_DIMENSION.
func NewBuffer(width, height int) (*Buffer, error) {
	if width < 0 || height < 0 {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension,
			"invalid buffer size %dx%d", width, height)
	}
	// Divide rather than multiply so huge sides cannot overflow.
	if width > 0 && height > MaxPixels/width {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension,
			"buffer size %dx%d exceeds %d pixels", width, height, MaxPixels)
	}
	return &Buffer{
		width:  width,
		height: height,
		pix:    make([]int, width*height*3),
	}, nil
}

// Width returns the number of columns.
func (b *Buffer) Width() int { return b.width }

// Height returns the number of rows.
func (b *Buffer) Height() int { return b.height }

// contains is the single boundary policy of the package: a coordinate either
// lies on the grid or it does not. Off-grid kernel taps are dropped rather
// than padded, wrapped or renormalized.
func (b *Buffer) contains(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

func (b *Buffer) offset(row, col int) int {
	return (row*b.width + col) * 3
}

// Get returns the pixel at (row, col).
func (b *Buffer) Get(row, col int) (Pixel, error) {
	if !b.contains(row, col) {
		return Pixel{}, editerr.New(editerr.ErrCodeOutOfBounds,
			"pixel (%d,%d) outside %dx%d grid", row, col, b.width, b.height)
	}
	i := b.offset(row, col)
	return Pixel{b.pix[i], b.pix[i+1], b.pix[i+2]}, nil
}

// Set writes p at (row, col) without clamping.
func (b *Buffer) Set(row, col int, p Pixel) error {
	if !b.contains(row, col) {
		return editerr.New(editerr.ErrCodeOutOfBounds,
			"pixel (%d,%d) outside %dx%d grid", row, col, b.width, b.height)
	}
	i := b.offset(row, col)
	b.pix[i], b.pix[i+1], b.pix[i+2] = p[0], p[1], p[2]
	return nil
}

// Clone returns a deep copy. The copy shares no storage with b.
func (b *Buffer) Clone() *Buffer {
	pix := make([]int, len(b.pix))
	copy(pix, b.pix)
	return &Buffer{width: b.width, height: b.height, pix: pix}
}

// Equal reports whether both buffers have the same size and pixels.
func (b *Buffer) Equal(other *Buffer) bool {
	if other == nil || b.width != other.width || b.height != other.height {
		return false
	}
	for i := range b.pix {
		if b.pix[i] != other.pix[i] {
			return false
		}
	}
	return true
}

// Clamp rewrites every channel into [0,255].
func (b *Buffer) Clamp() {
	for i, v := range b.pix {
		b.pix[i] = clampChannel(v)
	}
}

// FillRect paints rows [r0,r1) and columns [c0,c1) with p. The rectangle is
// intersected with the grid first.
func (b *Buffer) FillRect(r0, r1, c0, c1 int, p Pixel) {
	r0, r1 = max(r0, 0), min(r1, b.height)
	c0, c1 = max(c0, 0), min(c1, b.width)
	for r := r0; r < r1; r++ {
		for c := c0; c < c1; c++ {
			i := b.offset(r, c)
			b.pix[i], b.pix[i+1], b.pix[i+2] = p[0], p[1], p[2]
		}
	}
}

// ApplyColorMatrix replaces every pixel by m applied to it, rounds and clamps.
func (b *Buffer) ApplyColorMatrix(m ColorMatrix) {
	for i := 0; i < len(b.pix); i += 3 {
		r, g, bl := float64(b.pix[i]), float64(b.pix[i+1]), float64(b.pix[i+2])
		for k := 0; k < 3; k++ {
			b.pix[i+k] = Round(r*m[k][0] + g*m[k][1] + bl*m[k][2])
		}
	}
	b.Clamp()
}

// ApplyKernel convolves every channel with k, reading from the grid as it was
// before the pass. Taps that fall off the grid contribute nothing, so edge and
// corner pixels come out darker than with padded convolution. The result is
// rounded and clamped.
func (b *Buffer) ApplyKernel(k Kernel) error {
	if err := k.validate(); err != nil {
		return err
	}
	src := b.Clone()
	half := len(k) / 2

	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			var sum [3]float64
			for dr := -half; dr <= half; dr++ {
				for dc := -half; dc <= half; dc++ {
					if !src.contains(row+dr, col+dc) {
						continue
					}
					w := k[dr+half][dc+half]
					j := src.offset(row+dr, col+dc)
					sum[0] += float64(src.pix[j]) * w
					sum[1] += float64(src.pix[j+1]) * w
					sum[2] += float64(src.pix[j+2]) * w
				}
			}
			i := b.offset(row, col)
			b.pix[i], b.pix[i+1], b.pix[i+2] = Round(sum[0]), Round(sum[1]), Round(sum[2])
		}
	}
	b.Clamp()
	return nil
}

func (k Kernel) validate() error {
	n := len(k)
	if n == 0 || n%2 == 0 {
		return editerr.New(editerr.ErrCodeInvalidDimension, "kernel side %d must be odd", n)
	}
	for i, row := range k {
		if len(row) != n {
			return editerr.New(editerr.ErrCodeInvalidDimension,
				"kernel row %d has %d cells, want %d", i, len(row), n)
		}
	}
	return nil
}

// Image returns an opaque NRGBA copy of the buffer for encoders and
// inspection. Channels outside [0,255] are clamped in the copy only.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.width, b.height))
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			i := b.offset(row, col)
			img.SetNRGBA(col, row, color.NRGBA{
				R: uint8(clampChannel(b.pix[i])),
				G: uint8(clampChannel(b.pix[i+1])),
				B: uint8(clampChannel(b.pix[i+2])),
				A: 255,
			})
		}
	}
	return img
}

// FromImage copies any image.Image into a new Buffer. Alpha is discarded:
// the non-premultiplied color channels are kept as they are.
func FromImage(src image.Image) *Buffer {
	nrgba := imaging.Clone(src)
	w, h := nrgba.Bounds().Dx(), nrgba.Bounds().Dy()
	b := &Buffer{width: w, height: h, pix: make([]int, w*h*3)}
	for row := 0; row < h; row++ {
		line := nrgba.Pix[row*nrgba.Stride:]
		for col := 0; col < w; col++ {
			i := b.offset(row, col)
			b.pix[i] = int(line[col*4])
			b.pix[i+1] = int(line[col*4+1])
			b.pix[i+2] = int(line[col*4+2])
		}
	}
	return b
}

// Round rounds half-up to the nearest integer, i.e. floor(x + 0.5).
// Every rounding step in the package goes through it.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
