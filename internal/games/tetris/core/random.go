package core

// Rand is the uniform random source used for spawning.
// *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// ColorRange bounds each spawned color channel to [Min, Max).
type ColorRange struct {
	Min, Max float64
}

// DefaultColorRange is the channel range used when none is configured.
var DefaultColorRange = ColorRange{Min: 0.2, Max: 1.0}

func (cr ColorRange) pick(rng Rand) float64 {
	return cr.Min + rng.Float64()*(cr.Max-cr.Min)
}

// randomPiece builds a spawn candidate: uniform kind, anchor x in
// [0, Width-4], rotation 0, anchor y at SpawnY.
func randomPiece(rng Rand, cr ColorRange) ActivePiece {
	kind := Kind(rng.Intn(int(KindCount)))
	color := RGB{R: cr.pick(rng), G: cr.pick(rng), B: cr.pick(rng)}
	x := rng.Intn(Width - 3)
	return ActivePiece{
		Kind:     kind,
		Rotation: 0,
		X:        x,
		Y:        SpawnY,
		Color:    color,
	}
}
