package imaging

import (
	"math/rand/v2"
	"testing"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(42, 1024))
}

func TestMosaic_InvalidSeedCount(t *testing.T) {
	b := newUniform(t, 3, 2, Pixel{10, 20, 30})
	before := b.Clone()

	for _, n := range []int{0, -1, 7} {
		err := Mosaic(b, n, testRand())
		if !editerr.Is(err, editerr.ErrCodeInvalidDimension) {
			t.Errorf("seeds=%d: got %v, want INVALID_DIMENSION", n, err)
		}
		if !b.Equal(before) {
			t.Errorf("seeds=%d: rejected call mutated the buffer", n)
		}
	}
}

func TestMosaic_EmptyImage(t *testing.T) {
	b := newUniform(t, 0, 0, Pixel{})
	if err := Mosaic(b, 1, testRand()); !editerr.Is(err, editerr.ErrCodeInvalidDimension) {
		t.Errorf("got %v, want INVALID_DIMENSION", err)
	}
}

func TestMosaic_OneSeedPerPixelIsIdentity(t *testing.T) {
	b := newFromRows(t, [][]Pixel{
		{{255, 0, 0}, {0, 255, 0}, {0, 0, 255}},
		{{10, 20, 30}, {200, 100, 50}, {7, 7, 7}},
	})
	before := b.Clone()

	if err := Mosaic(b, 6, testRand()); err != nil {
		t.Fatalf("Mosaic failed: %v", err)
	}
	if !b.Equal(before) {
		t.Error("one seed per pixel should leave the image unchanged")
	}
}

func TestMosaic_SingleSeedAveragesEverything(t *testing.T) {
	b := newFromRows(t, [][]Pixel{
		{{0, 0, 0}, {255, 255, 255}},
	})
	if err := Mosaic(b, 1, testRand()); err != nil {
		t.Fatalf("Mosaic failed: %v", err)
	}
	// 127.5 rounds half-up.
	for c := 0; c < 2; c++ {
		if got := mustGet(t, b, 0, c); got != (Pixel{128, 128, 128}) {
			t.Errorf("col %d: got %v, want [128 128 128]", c, got)
		}
	}
}

func TestMosaic_SameRandSameResult(t *testing.T) {
	b := newFromRows(t, [][]Pixel{
		{{1, 2, 3}, {40, 50, 60}, {70, 80, 90}, {100, 110, 120}},
		{{130, 140, 150}, {160, 170, 180}, {190, 200, 210}, {220, 230, 240}},
		{{5, 15, 25}, {35, 45, 55}, {65, 75, 85}, {95, 105, 115}},
	})
	x, y := b.Clone(), b.Clone()

	if err := Mosaic(x, 3, testRand()); err != nil {
		t.Fatalf("Mosaic failed: %v", err)
	}
	if err := Mosaic(y, 3, testRand()); err != nil {
		t.Fatalf("Mosaic failed: %v", err)
	}
	if !x.Equal(y) {
		t.Error("identically seeded runs differ")
	}
	assertInRange(t, x)
}

func TestPickSeeds_Distinct(t *testing.T) {
	b := newUniform(t, 2, 2, Pixel{})
	seeds := pickSeeds(b, 4, testRand())

	if len(seeds) != 4 {
		t.Fatalf("got %d seeds, want 4", len(seeds))
	}
	seen := make(map[[2]int]bool)
	for _, s := range seeds {
		key := [2]int{s.row, s.col}
		if seen[key] {
			t.Errorf("duplicate seed %v", key)
		}
		if !b.contains(s.row, s.col) {
			t.Errorf("seed %v off the grid", key)
		}
		seen[key] = true
	}
}

func TestAssignClusters_FirstSeedWinsTies(t *testing.T) {
	tests := []struct {
		name      string
		seeds     [][2]int
		wantSizes []int
	}{
		{"left seed first", [][2]int{{0, 0}, {0, 2}}, []int{2, 1}},
		{"right seed first", [][2]int{{0, 2}, {0, 0}}, []int{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newUniform(t, 3, 1, Pixel{})
			seeds := make([]*seed, len(tt.seeds))
			for i, s := range tt.seeds {
				seeds[i] = &seed{row: s[0], col: s[1]}
			}

			assignClusters(b, seeds)

			for i, want := range tt.wantSizes {
				if got := len(seeds[i].members); got != want {
					t.Errorf("seed %d has %d members, want %d", i, got, want)
				}
			}
			// The middle pixel is equidistant and must land on the first seed.
			middle := [2]int{0, 1}
			found := false
			for _, m := range seeds[0].members {
				if m == middle {
					found = true
				}
			}
			if !found {
				t.Error("middle pixel was not assigned to the first seed")
			}
		})
	}
}

func TestMosaic_ClustersTakeMeanColor(t *testing.T) {
	b := newFromRows(t, [][]Pixel{
		{{10, 10, 10}, {20, 20, 20}, {200, 200, 200}, {210, 210, 211}},
	})
	seeds := []*seed{{row: 0, col: 0}, {row: 0, col: 3}}
	assignClusters(b, seeds)

	if got := seeds[0].mean(); got != (Pixel{15, 15, 15}) {
		t.Errorf("left cluster mean: got %v, want [15 15 15]", got)
	}
	if got := seeds[1].mean(); got != (Pixel{205, 205, 206}) {
		t.Errorf("right cluster mean: got %v, want [205 205 206]", got)
	}
}
