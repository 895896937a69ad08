package ink

import (
	"sync"

	"github.com/anthonynsimon/bild/noise"
)

// TextureGrain names the built-in paper grain texture for BrushConfig.Texture.
const TextureGrain = "grain"

const (
	// grainSize is the tile dimension. Power of two so lookups can mask.
	grainSize = 256
	// grainFloor is the minimum deposit through the grain. The tip never
	// skips paper completely, it just deposits unevenly.
	grainFloor = 0.6
)

var (
	grainOnce sync.Once
	grainTile []float64
)

// grainFactor returns the deposit multiplier at a pixel, in
// [grainFloor, 1]. The tile wraps in both directions; masking keeps
// negative coordinates on the tile as well.
func grainFactor(x, y int) float64 {
	grainOnce.Do(buildGrain)
	return grainTile[(y&(grainSize-1))*grainSize+(x&(grainSize-1))]
}

// buildGrain fills the tile from monochrome Gaussian noise. The tile is
// built once per process; every grained stroke shares it, so overlapping
// marker strokes line up on the same paper.
func buildGrain() {
	img := noise.Generate(grainSize, grainSize, &noise.Options{
		NoiseFn:    noise.Gaussian,
		Monochrome: true,
	})
	grainTile = make([]float64, grainSize*grainSize)
	for y := 0; y < grainSize; y++ {
		row := img.Pix[y*img.Stride:]
		for x := 0; x < grainSize; x++ {
			v := float64(row[x*4]) / 255
			grainTile[y*grainSize+x] = grainFloor + (1-grainFloor)*v
		}
	}
}
