package game

import "math"

// #region distribution

// Distribution assigns a probability to each move, indexed by Move.
// A well-formed distribution has entries in [0,1] summing to 1.
type Distribution [NumMoves]float64

// Uniform returns the maximum-entropy distribution (1/3 each).
func Uniform() Distribution {
	return Distribution{1.0 / 3, 1.0 / 3, 1.0 / 3}
}

// Normalize rescales d to sum to 1. Degenerate inputs (non-finite,
// negative, or all-zero mass) collapse to uniform rather than erroring.
func (d Distribution) Normalize() Distribution {
	var sum float64
	for _, p := range d {
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
			return Uniform()
		}
		sum += p
	}
	if sum <= 0 {
		return Uniform()
	}
	var out Distribution
	for i, p := range d {
		out[i] = p / sum
	}
	return out
}

// ArgMax returns the highest-probability move and its probability.
// Ties resolve to the lowest move index, keeping prediction deterministic.
func (d Distribution) ArgMax() (Move, float64) {
	best := Rock
	for _, m := range Moves[1:] {
		if d[m] > d[best] {
			best = m
		}
	}
	return best, d[best]
}

// Entropy returns the natural-log Shannon entropy of d.
func (d Distribution) Entropy() float64 {
	var h float64
	for _, p := range d {
		if p > 0 {
			h -= p * math.Log(p)
		}
	}
	return h
}

// Scale returns d with every entry multiplied by w.
func (d Distribution) Scale(w float64) Distribution {
	var out Distribution
	for i, p := range d {
		out[i] = p * w
	}
	return out
}

// Add returns the element-wise sum of d and other.
func (d Distribution) Add(other Distribution) Distribution {
	var out Distribution
	for i, p := range d {
		out[i] = p + other[i]
	}
	return out
}

// #endregion distribution
