package distance

// Dissimilarities for 0/1 indicator columns. Any non-zero value counts as
// present.

// contingency is the 2×2 agreement table of two indicator rows: tf counts
// positions present in x only, ft those present in y only.
type contingency struct {
	tt, tf, ft, ff float64
}

func tabulate(x, y []float64) contingency {
	var c contingency
	for i, xv := range x {
		switch xp, yp := xv != 0, y[i] != 0; {
		case xp && yp:
			c.tt++
		case xp:
			c.tf++
		case yp:
			c.ft++
		default:
			c.ff++
		}
	}
	return c
}

func (c contingency) mismatched() float64 { return c.tf + c.ft }

func (c contingency) total() float64 { return c.tt + c.tf + c.ft + c.ff }

// ratio returns num/den, or 0 for an empty denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// Hamming is the share of positions where presence differs.
func Hamming(x, y []float64) float64 {
	c := tabulate(x, y)
	return ratio(c.mismatched(), c.total())
}

// Jaccard is 1 - |x ∩ y| / |x ∪ y|.
func Jaccard(x, y []float64) float64 {
	c := tabulate(x, y)
	return ratio(c.mismatched(), c.tt+c.mismatched())
}

// Dice is the Sørensen-Dice dissimilarity.
func Dice(x, y []float64) float64 {
	c := tabulate(x, y)
	return ratio(c.mismatched(), 2*c.tt+c.mismatched())
}

// RussellRao is the share of positions not present in both rows.
func RussellRao(x, y []float64) float64 {
	c := tabulate(x, y)
	return ratio(c.total()-c.tt, c.total())
}

// SokalSneath weights mismatches twice against joint presences.
func SokalSneath(x, y []float64) float64 {
	c := tabulate(x, y)
	m := 2 * c.mismatched()
	return ratio(m, c.tt+m)
}

// Yule is 2·tf·ft / (tt·ff + tf·ft).
func Yule(x, y []float64) float64 {
	c := tabulate(x, y)
	return ratio(2*c.tf*c.ft, c.tt*c.ff+c.tf*c.ft)
}
