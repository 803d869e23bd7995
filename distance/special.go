package distance

import "math"

// Canberra sums |x_i - y_i| / (|x_i| + |y_i|), skipping coordinates where
// both entries are zero.
func Canberra(x, y []float64) float64 {
	var d float64
	for i, xv := range x {
		if s := math.Abs(xv) + math.Abs(y[i]); s > 0 {
			d += math.Abs(xv-y[i]) / s
		}
	}
	return d
}

// BrayCurtis is Σ|x_i - y_i| / Σ|x_i + y_i|, or 0 when the denominator
// vanishes.
func BrayCurtis(x, y []float64) float64 {
	var diff, sum float64
	for i, xv := range x {
		diff += math.Abs(xv - y[i])
		sum += math.Abs(xv + y[i])
	}
	if sum == 0 {
		return 0
	}
	return diff / sum
}

// Haversine is the central angle between two [lat, lon] points given in
// radians. Anything other than two coordinates yields 0.
func Haversine(x, y []float64) float64 {
	if len(x) != 2 || len(y) != 2 {
		return 0
	}
	dLat := math.Sin((x[0] - y[0]) / 2)
	dLon := math.Sin((x[1] - y[1]) / 2)
	h := dLat*dLat + math.Cos(x[0])*math.Cos(y[0])*dLon*dLon
	return 2 * math.Asin(math.Sqrt(math.Min(math.Max(h, 0), 1)))
}

// Hellinger compares x and y as unnormalised densities: the Euclidean
// distance between their square roots, divided by √2. Negative entries
// count as zero.
func Hellinger(x, y []float64) float64 {
	var ss float64
	for i, xv := range x {
		d := math.Sqrt(math.Max(xv, 0)) - math.Sqrt(math.Max(y[i], 0))
		ss += d * d
	}
	return math.Sqrt(ss / 2)
}
