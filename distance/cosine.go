package distance

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Cosine is one minus the cosine of the angle between x and y. A zero
// vector is at distance 1 from everything.
func Cosine(x, y []float64) float64 {
	nx, ny := floats.Norm(x, 2), floats.Norm(y, 2)
	if nx == 0 || ny == 0 {
		return 1
	}
	return 1 - clampUnit(floats.Dot(x, y)/(nx*ny))
}

// Correlation is one minus the Pearson correlation of the coordinates of
// x and y. Two constant vectors are at distance 0; one constant vector is
// at distance 1.
func Correlation(x, y []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	cx, cy := constant(x), constant(y)
	switch {
	case cx && cy:
		return 0
	case cx || cy:
		return 1
	}
	return 1 - clampUnit(stat.Correlation(x, y, nil))
}

func constant(v []float64) bool {
	return floats.Min(v) == floats.Max(v)
}

func clampUnit(r float64) float64 {
	return math.Max(-1, math.Min(1, r))
}
