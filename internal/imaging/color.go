package imaging

import (
	"fmt"
	"math"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB"
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor reads the pixel at column x, row y of the buffer.
//
// Coordinates are 0-based with origin at top-left. Out-of-range coordinates
// return OUT_OF_BOUNDS.
func SampleColor(b *Buffer, x, y int) (*ColorResult, error) {
	p, err := b.Get(y, x)
	if err != nil {
		return nil, err
	}
	rgb := RGBColor{
		R: uint8(clampChannel(p[0])),
		G: uint8(clampChannel(p[1])),
		B: uint8(clampChannel(p[2])),
	}
	return newColorResult(rgb), nil
}

func newColorResult(rgb RGBColor) *ColorResult {
	c := colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return &ColorResult{
		Hex: strings.ToUpper(c.Hex()),
		RGB: rgb,
		HSL: HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)},
	}
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors in an image.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"` // Colors sorted by frequency (descending)
}

// DominantColors returns up to count of the most common colors in b.
//
// Channels are quantized to multiples of 16 before counting so near-identical
// shades group together:
//
//	quantized = (original / 16) * 16
//
// Colors with equal frequency are ordered by hex string so the result is
// stable. Mosaic and dither output is already flat, so their palettes come
// back exact.
func DominantColors(b *Buffer, count int) (*DominantColorsResult, error) {
	if count < 1 {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension, "color count must be positive, got %d", count)
	}

	counts := make(map[RGBColor]int)
	total := 0
	for i := 0; i < len(b.pix); i += 3 {
		q := RGBColor{
			R: uint8(clampChannel(b.pix[i]) / 16 * 16),
			G: uint8(clampChannel(b.pix[i+1]) / 16 * 16),
			B: uint8(clampChannel(b.pix[i+2]) / 16 * 16),
		}
		counts[q]++
		total++
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        fmt.Sprintf("#%02X%02X%02X", rgb.R, rgb.G, rgb.B),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        rgb,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if len(colors) > count {
		colors = colors[:count]
	}
	return &DominantColorsResult{Colors: colors}, nil
}
