package imaging

// Threshold below which a gray level quantizes to black.
const ditherThreshold = 127

// Floyd-Steinberg shares of the quantization error, in sixteenths.
var diffusion = []struct {
	dr, dc int
	weight float64
}{
	{0, 1, 7.0 / 16},
	{1, -1, 3.0 / 16},
	{1, 0, 5.0 / 16},
	{1, 1, 1.0 / 16},
}

// Dither reduces the image to pure black and white with error diffusion.
//
// The buffer is converted to grayscale, then visited in row-major order. Each
// pixel snaps to 0 or 255 and the rounded shares of its error are added
// straight into the not-yet-visited neighbors, so the outcome depends on the
// visiting order. The buffer is clamped at the end like every other transform.
func Dither(b *Buffer) error {
	if err := Grayscale(b); err != nil {
		return err
	}

	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			i := b.offset(row, col)
			old := b.pix[i]
			quantized := 0
			if old >= ditherThreshold {
				quantized = 255
			}
			b.pix[i], b.pix[i+1], b.pix[i+2] = quantized, quantized, quantized

			errVal := float64(old - quantized)
			for _, d := range diffusion {
				r, c := row+d.dr, col+d.dc
				if !b.contains(r, c) {
					continue
				}
				share := Round(errVal * d.weight)
				j := b.offset(r, c)
				b.pix[j] += share
				b.pix[j+1] += share
				b.pix[j+2] += share
			}
		}
	}

	b.Clamp()
	return nil
}
