// Package pattern generates fresh images: national flags, a checkerboard and
// rainbow stripes.
//
// Generators never edit an existing buffer; each call returns a new one that
// the editor swaps in wholesale. Fractional stripe boundaries are rounded
// half-up, so stripes may differ in width by one pixel.
package pattern

import (
	"math"
	"strings"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
	"github.com/ironsheep/image-edit-mcp/internal/imaging"
)

var (
	black  = imaging.Pixel{0, 0, 0}
	white  = imaging.Pixel{255, 255, 255}
	red    = imaging.Pixel{255, 0, 0}
	orange = imaging.Pixel{255, 200, 0}
	yellow = imaging.Pixel{255, 255, 0}
	green  = imaging.Pixel{0, 255, 0}
	blue   = imaging.Pixel{0, 0, 255}
	indigo = imaging.Pixel{75, 0, 130}
	violet = imaging.Pixel{148, 0, 211}

	greekBlue = imaging.Pixel{13, 94, 175}
)

var rainbow = []imaging.Pixel{red, orange, yellow, green, blue, indigo, violet}

// Orientation selects the stripe direction of Rainbow.
type Orientation int

const (
	// Horizontal stripes run left to right, stacked top to bottom.
	Horizontal Orientation = iota
	// Vertical stripes run top to bottom, laid out left to right.
	Vertical
)

// ParseOrientation accepts "horizontal" or "vertical" in any case.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(s) {
	case "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	default:
		return 0, editerr.New(editerr.ErrCodeInvalidInput,
			"unknown rainbow orientation %q (want horizontal or vertical)", s)
	}
}

// canvas wraps a buffer with fractional-rectangle drawing.
type canvas struct {
	*imaging.Buffer
}

func newCanvas(width, height int) (*canvas, error) {
	if width < 1 || height < 1 {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension,
			"pattern size %dx%d must be positive", width, height)
	}
	b, err := imaging.NewBuffer(width, height)
	if err != nil {
		return nil, err
	}
	return &canvas{b}, nil
}

// rect fills rows [r0,r1) and columns [c0,c1), rounding each bound half-up.
func (c *canvas) rect(r0, r1, c0, c1 float64, p imaging.Pixel) {
	c.FillRect(imaging.Round(r0), imaging.Round(r1), imaging.Round(c0), imaging.Round(c1), p)
}

func requirePositive(name string, v int) error {
	if v < 1 {
		return editerr.New(editerr.ErrCodeInvalidDimension, "%s must be positive, got %d", name, v)
	}
	return nil
}

// France draws the French tricolour: blue, white and red vertical bands.
// The width is (height/2)*3.
func France(height int) (*imaging.Buffer, error) {
	if err := requirePositive("height", height); err != nil {
		return nil, err
	}
	c, err := newCanvas(height/2*3, height)
	if err != nil {
		return nil, err
	}
	w := float64(c.Width())
	for i, p := range []imaging.Pixel{blue, white, red} {
		c.rect(0, float64(height), float64(i)/3*w, float64(i+1)/3*w, p)
	}
	return c.Buffer, nil
}

// Greece draws the Greek flag: nine blue and white stripes with a blue canton
// carrying a white cross. The width is (height/2)*3.
func Greece(height int) (*imaging.Buffer, error) {
	if err := requirePositive("height", height); err != nil {
		return nil, err
	}
	c, err := newCanvas(height/2*3, height)
	if err != nil {
		return nil, err
	}
	h, w := float64(height), float64(c.Width())
	stripe := h / 9

	for i := 0; i < 9; i++ {
		p := greekBlue
		if i%2 == 1 {
			p = white
		}
		c.rect(float64(i)/9*h, float64(i+1)/9*h, 0, w, p)
	}

	cantonWidth := 10.0 / 27 * w
	c.rect(0, h/2, 0, cantonWidth, greekBlue)
	c.rect(stripe*2, stripe*3, 0, cantonWidth, white)
	c.rect(0, stripe*5, 4.0/27*w, 6.0/27*w, white)
	return c.Buffer, nil
}

// Switzerland draws the square Swiss flag: a white cross on red.
func Switzerland(height int) (*imaging.Buffer, error) {
	if err := requirePositive("height", height); err != nil {
		return nil, err
	}
	c, err := newCanvas(height, height)
	if err != nil {
		return nil, err
	}
	s := float64(height)
	c.FillRect(0, height, 0, height, red)
	c.rect(2.0/5*s, 3.0/5*s, 1.0/5*s, 4.0/5*s, white)
	c.rect(1.0/5*s, 4.0/5*s, 2.0/5*s, 3.0/5*s, white)
	return c.Buffer, nil
}

// Checkerboard draws an 8x8 board of squareSize-pixel squares with a black
// square at the top-left.
func Checkerboard(squareSize int) (*imaging.Buffer, error) {
	if err := requirePositive("square size", squareSize); err != nil {
		return nil, err
	}
	if squareSize > math.MaxInt/8 {
		return nil, editerr.New(editerr.ErrCodeInvalidDimension, "square size %d too large", squareSize)
	}
	c, err := newCanvas(squareSize*8, squareSize*8)
	if err != nil {
		return nil, err
	}
	for i := 0; i < 8; i++ {
		for j := 0; j < 8; j++ {
			p := black
			if (i+j)%2 == 1 {
				p = white
			}
			c.FillRect(i*squareSize, (i+1)*squareSize, j*squareSize, (j+1)*squareSize, p)
		}
	}
	return c.Buffer, nil
}

// Rainbow draws seven equal stripes from red to violet.
func Rainbow(width, height int, o Orientation) (*imaging.Buffer, error) {
	c, err := newCanvas(width, height)
	if err != nil {
		return nil, err
	}
	w, h := float64(width), float64(height)
	n := float64(len(rainbow))
	for i, p := range rainbow {
		start, end := float64(i)/n, float64(i+1)/n
		if o == Vertical {
			c.rect(0, h, start*w, end*w, p)
		} else {
			c.rect(start*h, end*h, 0, w, p)
		}
	}
	return c.Buffer, nil
}

// Names lists the patterns Generate understands.
var Names = []string{"checkerboard", "france", "greece", "rainbow", "switzerland"}

// Request describes one generation call from an outer surface.
//
// Size is the height for flags and the square size for the checkerboard.
// Rainbows use Width, Height and Orientation instead.
type Request struct {
	Pattern     string
	Size        int
	Width       int
	Height      int
	Orientation string
}

// Generate dispatches a Request by pattern name.
func Generate(req Request) (*imaging.Buffer, error) {
	switch strings.ToLower(req.Pattern) {
	case "france":
		return France(req.Size)
	case "greece":
		return Greece(req.Size)
	case "switzerland":
		return Switzerland(req.Size)
	case "checkerboard":
		return Checkerboard(req.Size)
	case "rainbow":
		o, err := ParseOrientation(req.Orientation)
		if err != nil {
			return nil, err
		}
		return Rainbow(req.Width, req.Height, o)
	default:
		return nil, editerr.New(editerr.ErrCodeInvalidInput, "unknown pattern %q", req.Pattern)
	}
}
