package imaging

import (
	"math/rand/v2"

	"github.com/ironsheep/image-edit-mcp/internal/editerr"
)

// seed anchors one mosaic cluster. Two seeds are the same seed when their
// coordinates match; the running sums and member list are scratch state for
// a single Mosaic call.
type seed struct {
	row, col int
	sum      [3]int
	members  [][2]int
}

func (s *seed) add(row, col int, p Pixel) {
	s.members = append(s.members, [2]int{row, col})
	s.sum[0] += p[0]
	s.sum[1] += p[1]
	s.sum[2] += p[2]
}

func (s *seed) mean() Pixel {
	n := float64(len(s.members))
	return Pixel{
		Round(float64(s.sum[0]) / n),
		Round(float64(s.sum[1]) / n),
		Round(float64(s.sum[2]) / n),
	}
}

// Mosaic segments the image into seedCount stained-glass cells.
//
// Seeds are distinct pixel coordinates drawn uniformly from rng, redrawing
// duplicates. Every pixel joins the seed nearest to it (Euclidean distance,
// first seed wins ties) and is then repainted with its cluster's mean color.
// Cost is O(width * height * seedCount).
//
// seedCount must lie in [1, width*height]; otherwise INVALID_DIMENSION is
// returned and the buffer is left untouched.
func Mosaic(b *Buffer, seedCount int, rng *rand.Rand) error {
	total := b.width * b.height
	if seedCount < 1 {
		return editerr.New(editerr.ErrCodeInvalidDimension,
			"mosaic needs at least one seed, got %d", seedCount)
	}
	if seedCount > total {
		return editerr.New(editerr.ErrCodeInvalidDimension,
			"mosaic seed count %d exceeds %d pixels", seedCount, total)
	}

	seeds := pickSeeds(b, seedCount, rng)
	assignClusters(b, seeds)
	for _, s := range seeds {
		avg := s.mean()
		for _, m := range s.members {
			i := b.offset(m[0], m[1])
			b.pix[i], b.pix[i+1], b.pix[i+2] = avg[0], avg[1], avg[2]
		}
	}
	b.Clamp()
	return nil
}

// pickSeeds draws count distinct coordinates by rejection sampling.
func pickSeeds(b *Buffer, count int, rng *rand.Rand) []*seed {
	seeds := make([]*seed, 0, count)
	taken := make(map[[2]int]bool, count)
	for len(seeds) < count {
		key := [2]int{rng.IntN(b.height), rng.IntN(b.width)}
		if taken[key] {
			continue
		}
		taken[key] = true
		seeds = append(seeds, &seed{row: key[0], col: key[1]})
	}
	return seeds
}

// assignClusters adds every pixel to its nearest seed. Squared distances
// order the same way as Euclidean ones, and the strict comparison keeps the
// first seed on ties.
func assignClusters(b *Buffer, seeds []*seed) {
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			best := 0
			bestDist := sqDist(row, col, seeds[0].row, seeds[0].col)
			for k := 1; k < len(seeds); k++ {
				if d := sqDist(row, col, seeds[k].row, seeds[k].col); d < bestDist {
					best, bestDist = k, d
				}
			}
			i := b.offset(row, col)
			seeds[best].add(row, col, Pixel{b.pix[i], b.pix[i+1], b.pix[i+2]})
		}
	}
}

func sqDist(r1, c1, r2, c2 int) int {
	dr, dc := r1-r2, c1-c2
	return dr*dr + dc*dc
}
