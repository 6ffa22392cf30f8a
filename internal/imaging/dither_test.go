package imaging

import "testing"

func grayRows(t *testing.T, levels [][]int) *Buffer {
	t.Helper()
	rows := make([][]Pixel, len(levels))
	for r, line := range levels {
		rows[r] = make([]Pixel, len(line))
		for c, v := range line {
			rows[r][c] = Pixel{v, v, v}
		}
	}
	return newFromRows(t, rows)
}

func assertLevels(t *testing.T, b *Buffer, want [][]int) {
	t.Helper()
	for r, line := range want {
		for c, w := range line {
			got := mustGet(t, b, r, c)
			if got != (Pixel{w, w, w}) {
				t.Errorf("(%d,%d): got %v, want %d", r, c, got, w)
			}
		}
	}
}

func TestDither_UniformGray2x2(t *testing.T) {
	b := grayRows(t, [][]int{
		{100, 100},
		{100, 100},
	})
	if err := Dither(b); err != nil {
		t.Fatalf("Dither failed: %v", err)
	}

	// (0,0) 100->0 pushes +44 right, +31 down, +6 diagonal.
	// (0,1) 144->255 pushes -21 down-left, -35 down.
	// (1,0) 110->0 pushes +48 right; (1,1) ends at 119->0.
	assertLevels(t, b, [][]int{
		{0, 255},
		{0, 0},
	})
}

func TestDither_Row(t *testing.T) {
	b := grayRows(t, [][]int{{100, 100, 100, 100}})
	if err := Dither(b); err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	assertLevels(t, b, [][]int{{0, 255, 0, 0}})
}

func TestDither_NegativeTiesRoundHalfUp(t *testing.T) {
	// 247 -> 255 leaves error -8; its 5/16 share is exactly -2.5, which rounds
	// half-up to -2 and lifts 129 to 127, right on the white side.
	b := grayRows(t, [][]int{{247}, {129}})
	if err := Dither(b); err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	assertLevels(t, b, [][]int{{255}, {255}})
}

func TestDither_ThresholdBoundary(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{126, 0},
		{127, 255},
		{0, 0},
		{255, 255},
	}

	for _, tt := range tests {
		b := grayRows(t, [][]int{{tt.level}})
		if err := Dither(b); err != nil {
			t.Fatalf("Dither failed: %v", err)
		}
		assertLevels(t, b, [][]int{{tt.want}})
	}
}

func TestDither_OnlyBlackAndWhite(t *testing.T) {
	b := newFromRows(t, [][]Pixel{
		{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}},
		{{12, 200, 40}, {90, 90, 90}, {250, 250, 10}},
		{{1, 2, 3}, {128, 64, 32}, {255, 255, 255}},
	})
	if err := Dither(b); err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			p := mustGet(t, b, r, c)
			if p[0] != p[1] || p[1] != p[2] || (p[0] != 0 && p[0] != 255) {
				t.Errorf("(%d,%d) = %v, want pure black or white", r, c, p)
			}
		}
	}
}

func TestDither_Deterministic(t *testing.T) {
	src := grayRows(t, [][]int{
		{100, 100, 100, 100, 100},
		{100, 100, 100, 100, 100},
		{100, 100, 100, 100, 100},
	})
	a, b := src.Clone(), src.Clone()
	if err := Dither(a); err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	if err := Dither(b); err != nil {
		t.Fatalf("Dither failed: %v", err)
	}
	if !a.Equal(b) {
		t.Error("dither of identical input differed between runs")
	}
}
