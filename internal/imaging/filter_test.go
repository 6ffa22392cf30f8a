package imaging

import (
	"math/rand/v2"
	"testing"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
)

func TestGrayscale_KnownColors(t *testing.T) {
	tests := []struct {
		name string
		in   Pixel
		want int
	}{
		{"pure red", Pixel{255, 0, 0}, 54},
		{"pure green", Pixel{0, 255, 0}, 182},
		{"pure blue", Pixel{0, 0, 255}, 18},
		{"white", Pixel{255, 255, 255}, 255},
		{"black", Pixel{0, 0, 0}, 0},
		{"mid gray", Pixel{100, 100, 100}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newUniform(t, 2, 2, tt.in)
			if err := Grayscale(b); err != nil {
				t.Fatalf("Grayscale failed: %v", err)
			}
			got := mustGet(t, b, 1, 1)
			if got != (Pixel{tt.want, tt.want, tt.want}) {
				t.Errorf("got %v, want gray %d", got, tt.want)
			}
		})
	}
}

func TestSepia(t *testing.T) {
	tests := []struct {
		name string
		in   Pixel
		want Pixel
	}{
		{"mid gray", Pixel{100, 100, 100}, Pixel{135, 120, 94}},
		{"white clamps", Pixel{255, 255, 255}, Pixel{255, 255, 239}},
		{"black", Pixel{0, 0, 0}, Pixel{0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newUniform(t, 1, 1, tt.in)
			if err := Sepia(b); err != nil {
				t.Fatalf("Sepia failed: %v", err)
			}
			if got := mustGet(t, b, 0, 0); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBlur_SinglePixel(t *testing.T) {
	b := newUniform(t, 1, 1, Pixel{100, 100, 100})
	if err := Blur(b); err != nil {
		t.Fatalf("Blur failed: %v", err)
	}
	if got := mustGet(t, b, 0, 0); got != (Pixel{25, 25, 25}) {
		t.Errorf("got %v, want [25 25 25]", got)
	}
}

func TestBlur_EdgesDarken(t *testing.T) {
	b := newUniform(t, 3, 3, Pixel{100, 100, 100})
	if err := Blur(b); err != nil {
		t.Fatalf("Blur failed: %v", err)
	}

	want := [3][3]int{
		{56, 75, 56},
		{75, 100, 75},
		{56, 75, 56},
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			got := mustGet(t, b, r, c)
			if got != (Pixel{want[r][c], want[r][c], want[r][c]}) {
				t.Errorf("(%d,%d): got %v, want %d", r, c, got, want[r][c])
			}
		}
	}
}

func TestSharpen_SinglePixel(t *testing.T) {
	b := newUniform(t, 1, 1, Pixel{100, 150, 200})
	if err := Sharpen(b); err != nil {
		t.Fatalf("Sharpen failed: %v", err)
	}
	if got := mustGet(t, b, 0, 0); got != (Pixel{100, 150, 200}) {
		t.Errorf("got %v, want unchanged", got)
	}
}

func TestSharpen_Uniform5x5(t *testing.T) {
	b := newUniform(t, 5, 5, Pixel{100, 100, 100})
	if err := Sharpen(b); err != nil {
		t.Fatalf("Sharpen failed: %v", err)
	}

	// The full kernel sums to 1, so the center is unchanged. The corner only
	// sees a 3x3 quarter of the kernel: 1 + 3/4 - 5/8 = 1.125.
	if got := mustGet(t, b, 2, 2); got[0] != 100 {
		t.Errorf("center: got %d, want 100", got[0])
	}
	if got := mustGet(t, b, 0, 0); got[0] != 113 {
		t.Errorf("corner: got %d, want 113", got[0])
	}
}

func TestSharpenKernelShape(t *testing.T) {
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			var want float64
			switch {
			case i == 0 || j == 0 || i == 4 || j == 4:
				want = -0.125
			case i == 2 && j == 2:
				want = 1
			default:
				want = 0.25
			}
			if sharpenKernel[i][j] != want {
				t.Errorf("sharpenKernel[%d][%d] = %v, want %v", i, j, sharpenKernel[i][j], want)
			}
		}
	}
}

func TestSharpen_ClampsNegative(t *testing.T) {
	b := newUniform(t, 5, 5, Pixel{})
	if err := b.Set(2, 2, Pixel{255, 255, 255}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := Sharpen(b); err != nil {
		t.Fatalf("Sharpen failed: %v", err)
	}
	assertInRange(t, b)
	if got := mustGet(t, b, 0, 0); got != (Pixel{}) {
		t.Errorf("corner: got %v, want black", got)
	}
	if got := mustGet(t, b, 2, 2); got != (Pixel{255, 255, 255}) {
		t.Errorf("center: got %v, want white", got)
	}
}

func TestTransforms_KeepChannelsInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	b, err := NewBuffer(9, 7)
	if err != nil {
		t.Fatalf("NewBuffer failed: %v", err)
	}
	for r := 0; r < b.Height(); r++ {
		for c := 0; c < b.Width(); c++ {
			_ = b.Set(r, c, Pixel{rng.IntN(256), rng.IntN(256), rng.IntN(256)})
		}
	}

	for _, name := range FilterNames() {
		t.Run(name, func(t *testing.T) {
			work := b.Clone()
			var err error
			if name == "mosaic" {
				err = Mosaic(work, 5, rand.New(rand.NewPCG(1, 2)))
			} else {
				f, lookupErr := LookupFilter(name)
				if lookupErr != nil {
					t.Fatalf("LookupFilter failed: %v", lookupErr)
				}
				err = f(work)
			}
			if err != nil {
				t.Fatalf("%s failed: %v", name, err)
			}
			assertInRange(t, work)
			if work.Width() != b.Width() || work.Height() != b.Height() {
				t.Errorf("dimensions changed to %dx%d", work.Width(), work.Height())
			}
		})
	}
}

func TestLookupFilter_Unknown(t *testing.T) {
	if _, err := LookupFilter("emboss"); !editerr.Is(err, editerr.ErrCodeInvalidInput) {
		t.Errorf("got %v, want INVALID_INPUT", err)
	}
}

func TestFilterNames(t *testing.T) {
	want := []string{"blur", "dither", "grayscale", "mosaic", "sepia", "sharpen"}
	got := FilterNames()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FilterNames()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
