package imaging

import (
	"sort"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
)

// Luma weights (ITU-R BT.709). Every output channel receives the same value,
// so the result is a true gray with R == G == B.
var grayscaleMatrix = ColorMatrix{
	{0.2126, 0.7152, 0.0722},
	{0.2126, 0.7152, 0.0722},
	{0.2126, 0.7152, 0.0722},
}

var sepiaMatrix = ColorMatrix{
	{0.393, 0.769, 0.189},
	{0.349, 0.686, 0.168},
	{0.272, 0.534, 0.131},
}

// blurKernel is a 3x3 Gaussian approximation:
//
//	1/16 1/8 1/16
//	1/8  1/4 1/8
//	1/16 1/8 1/16
var blurKernel = Kernel{
	{1.0 / 16, 1.0 / 8, 1.0 / 16},
	{1.0 / 8, 1.0 / 4, 1.0 / 8},
	{1.0 / 16, 1.0 / 8, 1.0 / 16},
}

// sharpenKernel is 5x5: border cells -1/8, interior cells 1/4, center 1.
var sharpenKernel = func() Kernel {
	k := make(Kernel, 5)
	for i := range k {
		k[i] = make([]float64, 5)
		for j := range k[i] {
			switch {
			case i == 0 || j == 0 || i == 4 || j == 4:
				k[i][j] = -1.0 / 8
			case i == 2 && j == 2:
				k[i][j] = 1
			default:
				k[i][j] = 1.0 / 4
			}
		}
	}
	return k
}()

// Grayscale converts every pixel to its luma.
func Grayscale(b *Buffer) error {
	b.ApplyColorMatrix(grayscaleMatrix)
	return nil
}

// Sepia applies the classic sepia tone matrix.
func Sepia(b *Buffer) error {
	b.ApplyColorMatrix(sepiaMatrix)
	return nil
}

// Blur applies the 3x3 blur kernel.
func Blur(b *Buffer) error {
	return b.ApplyKernel(blurKernel)
}

// Sharpen applies the 5x5 sharpen kernel.
func Sharpen(b *Buffer) error {
	return b.ApplyKernel(sharpenKernel)
}

// Transform mutates a buffer in place. On error the buffer must be treated as
// garbage; callers run transforms on a clone.
type Transform func(*Buffer) error

// Filters is the catalogue of parameterless transforms, keyed by the name the
// outer surfaces accept. Mosaic takes a seed count and is dispatched separately.
var Filters = map[string]Transform{
	"grayscale": Grayscale,
	"sepia":     Sepia,
	"blur":      Blur,
	"sharpen":   Sharpen,
	"dither":    Dither,
}

// FilterNames returns the catalogue names in sorted order.
func FilterNames() []string {
	names := make([]string, 0, len(Filters)+1)
	for name := range Filters {
		names = append(names, name)
	}
	names = append(names, "mosaic")
	sort.Strings(names)
	return names
}

// LookupFilter returns the named transform or INVALID_INPUT.
func LookupFilter(name string) (Transform, error) {
	f, ok := Filters[name]
	if !ok {
		return nil, editerr.New(editerr.ErrCodeInvalidInput, "unknown filter %q", name)
	}
	return f, nil
}
