package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

// #region confusion

// ConfusionBand is a predicted-vs-actual count matrix within one fixed
// confidence band. Accuracy and MistakeRate derive from the diagonal
// and are nil for empty bands.
type ConfusionBand struct {
	Name        string
	Lo          float64
	Hi          float64
	Matrix      [game.NumMoves][game.NumMoves]int // [predicted][actual]
	Count       int
	Accuracy    *float64
	MistakeRate *float64
}

// ConfusionByBand stratifies entries into the three fixed confidence
// bands [0,0.4), [0.4,0.7), [0.7,1.0] and counts (predicted, actual)
// pairs within each.
func ConfusionByBand(entries []DerivedEntry) []ConfusionBand {
	bands := []ConfusionBand{
		{Name: "low", Lo: 0, Hi: 0.4},
		{Name: "medium", Lo: 0.4, Hi: 0.7},
		{Name: "high", Lo: 0.7, Hi: 1.0},
	}
	for _, e := range entries {
		idx := 2
		switch {
		case e.MaxProb < 0.4:
			idx = 0
		case e.MaxProb < 0.7:
			idx = 1
		}
		bands[idx].Matrix[e.Predicted][e.Actual]++
		bands[idx].Count++
	}
	for i := range bands {
		if bands[i].Count == 0 {
			continue
		}
		diag := 0
		for _, m := range game.Moves {
			diag += bands[i].Matrix[m][m]
		}
		acc := float64(diag) / float64(bands[i].Count)
		mistake := 1 - acc
		bands[i].Accuracy = &acc
		bands[i].MistakeRate = &mistake
	}
	return bands
}

// #endregion confusion

// #region coverage

// HighConfidenceThreshold is the fixed max-probability cutoff for the
// coverage metric.
const HighConfidenceThreshold = 0.7

// Coverage reports how often the engine committed to a confident
// forecast and how those confident rounds fared.
type Coverage struct {
	Threshold   float64
	Covered     int
	Total       int
	Fraction    *float64
	Accuracy    *float64
	MistakeRate *float64
}

// HighConfidenceCoverage computes Coverage at the fixed threshold.
// Ratio fields stay nil when their denominator is zero.
func HighConfidenceCoverage(entries []DerivedEntry) Coverage {
	cov := Coverage{Threshold: HighConfidenceThreshold, Total: len(entries)}
	correct := 0
	for _, e := range entries {
		if e.MaxProb >= HighConfidenceThreshold {
			cov.Covered++
			if e.Correct {
				correct++
			}
		}
	}
	if cov.Total > 0 {
		frac := float64(cov.Covered) / float64(cov.Total)
		cov.Fraction = &frac
	}
	if cov.Covered > 0 {
		acc := float64(correct) / float64(cov.Covered)
		mistake := 1 - acc
		cov.Accuracy = &acc
		cov.MistakeRate = &mistake
	}
	return cov
}

// #endregion coverage

// #region volatility

// Volatility is the standard deviation of the first difference of the
// max-probability series. nil with fewer than three entries (two
// differences).
func Volatility(entries []DerivedEntry) *float64 {
	if len(entries) < 3 {
		return nil
	}
	diffs := make([]float64, len(entries)-1)
	for i := 1; i < len(entries); i++ {
		diffs[i-1] = entries[i].MaxProb - entries[i-1].MaxProb
	}
	sd := stat.StdDev(diffs, nil)
	return &sd
}

// FlipRate is the fraction of consecutive round pairs whose predicted
// top move changed. nil with fewer than two entries.
func FlipRate(entries []DerivedEntry) *float64 {
	if len(entries) < 2 {
		return nil
	}
	flips := 0
	for i := 1; i < len(entries); i++ {
		if entries[i].Predicted != entries[i-1].Predicted {
			flips++
		}
	}
	rate := float64(flips) / float64(len(entries)-1)
	return &rate
}

// #endregion volatility

// #region adaptation

// Fixed oracles for adaptation-window detection.
const (
	adaptationSlice   = 4
	adaptationEpsilon = 0.05
)

// AdaptationWindow is one detected regime change: the engine's top
// prediction flipped and was wrong, then confidence settled and the
// predictions came good.
type AdaptationWindow struct {
	Start  int
	End    int
	Length int
}

// AdaptationWindows scans the entry sequence for adaptation events.
// A window opens at i when the predicted top move differs from i-1's
// and round i was wrong. It closes at j when the trailing slice of up
// to 4 max-probabilities ending at j has standard deviation below
// 0.05 and the last two rounds were both correct.
func AdaptationWindows(entries []DerivedEntry) []AdaptationWindow {
	var windows []AdaptationWindow
	open := -1
	for i := 1; i < len(entries); i++ {
		if open < 0 {
			if entries[i].Predicted != entries[i-1].Predicted && !entries[i].Correct {
				open = i
			}
			continue
		}
		lo := i - adaptationSlice + 1
		if lo < open {
			lo = open
		}
		if i-lo+1 < 2 {
			continue
		}
		probs := make([]float64, 0, adaptationSlice)
		for j := lo; j <= i; j++ {
			probs = append(probs, entries[j].MaxProb)
		}
		if stat.StdDev(probs, nil) < adaptationEpsilon && entries[i].Correct && entries[i-1].Correct {
			windows = append(windows, AdaptationWindow{Start: open, End: i, Length: i - open + 1})
			open = -1
		}
	}
	return windows
}

// #endregion adaptation
