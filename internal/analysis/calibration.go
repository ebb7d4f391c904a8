package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

// #region bins

// NumBins is the fixed decile count for calibration binning.
const NumBins = 10

// Bin is one fixed-width decile of maximum predicted probability.
// Accuracy and AvgConfidence are nil for empty bins rather than NaN.
type Bin struct {
	Lo            float64
	Hi            float64
	Count         int
	Accuracy      *float64
	AvgConfidence *float64
}

// Bins partitions entries into the ten deciles of MaxProb. A max
// probability of exactly 1.0 lands in the top bin.
func Bins(entries []DerivedEntry) []Bin {
	counts := make([]int, NumBins)
	correct := make([]int, NumBins)
	confSum := make([]float64, NumBins)

	for _, e := range entries {
		idx := binIndex(e.MaxProb)
		counts[idx]++
		confSum[idx] += e.MaxProb
		if e.Correct {
			correct[idx]++
		}
	}

	bins := make([]Bin, NumBins)
	for i := range bins {
		bins[i] = Bin{Lo: float64(i) / NumBins, Hi: float64(i+1) / NumBins, Count: counts[i]}
		if counts[i] > 0 {
			acc := float64(correct[i]) / float64(counts[i])
			conf := confSum[i] / float64(counts[i])
			bins[i].Accuracy = &acc
			bins[i].AvgConfidence = &conf
		}
	}
	return bins
}

func binIndex(p float64) int {
	idx := int(p * NumBins)
	if idx >= NumBins {
		idx = NumBins - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// #endregion bins

// #region ece

// ECE is the expected calibration error: the count-weighted mean gap
// between each non-empty bin's accuracy and its average confidence.
// nil when there are no entries.
func ECE(entries []DerivedEntry) *float64 {
	if len(entries) == 0 {
		return nil
	}
	total := float64(len(entries))
	var ece float64
	for _, b := range Bins(entries) {
		if b.Count == 0 {
			continue
		}
		ece += float64(b.Count) / total * math.Abs(*b.Accuracy-*b.AvgConfidence)
	}
	return &ece
}

// #endregion ece

// #region brier

// BrierScore is the multi-class Brier score for one round: the squared
// distance between the forecast and the realized outcome indicator.
// Range [0, 2] for three classes.
func BrierScore(e DerivedEntry) float64 {
	var score float64
	for _, m := range game.Moves {
		indicator := 0.0
		if m == e.Actual {
			indicator = 1.0
		}
		diff := e.Dist[m] - indicator
		score += diff * diff
	}
	return score
}

// MeanBrier is the arithmetic mean Brier score over all analyzed
// rounds; nil when there are none.
func MeanBrier(entries []DerivedEntry) *float64 {
	if len(entries) == 0 {
		return nil
	}
	var sum float64
	for _, e := range entries {
		sum += BrierScore(e)
	}
	mean := sum / float64(len(entries))
	return &mean
}

// #endregion brier

// #region sharpness

// maxEntropy is ln(3), the entropy of the uniform three-way forecast.
var maxEntropy = math.Log(game.NumMoves)

// Sharpness is 1 − H(d)/ln 3: how concentrated a forecast is,
// independent of correctness. 1 for one-hot, 0 for uniform.
func Sharpness(d game.Distribution) float64 {
	return 1 - d.Entropy()/maxEntropy
}

// MeanSharpness averages Sharpness over all entries; nil when empty.
func MeanSharpness(entries []DerivedEntry) *float64 {
	if len(entries) == 0 {
		return nil
	}
	vals := make([]float64, len(entries))
	for i, e := range entries {
		vals[i] = Sharpness(e.Dist)
	}
	mean := stat.Mean(vals, nil)
	return &mean
}

// #endregion sharpness

// #region surprise

// minPActual guards the log-surprise against −ln(0).
const minPActual = 1e-12

// Surprise is 1 − P(actual): 0 when the forecast was certain and right.
func Surprise(e DerivedEntry) float64 {
	return 1 - e.PActual
}

// LogSurprise is −ln P(actual), clamped so a zero-mass outcome yields
// a large finite value instead of +Inf.
func LogSurprise(e DerivedEntry) float64 {
	p := e.PActual
	if p < minPActual {
		p = minPActual
	}
	return -math.Log(p)
}

// MeanSurprise averages Surprise over all entries; nil when empty.
func MeanSurprise(entries []DerivedEntry) *float64 {
	if len(entries) == 0 {
		return nil
	}
	var sum float64
	for _, e := range entries {
		sum += Surprise(e)
	}
	mean := sum / float64(len(entries))
	return &mean
}

// MeanLogSurprise averages LogSurprise over all entries; nil when empty.
func MeanLogSurprise(entries []DerivedEntry) *float64 {
	if len(entries) == 0 {
		return nil
	}
	var sum float64
	for _, e := range entries {
		sum += LogSurprise(e)
	}
	mean := sum / float64(len(entries))
	return &mean
}

// #endregion surprise
