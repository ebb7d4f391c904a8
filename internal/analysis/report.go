package analysis

import "github.com/danielpatrickdp/rps-oracle/internal/trace"

// #region report

// Report aggregates every derived metric for one chronological round
// log. Pure projection: building it twice from the same log yields
// identical values.
type Report struct {
	Rounds   int
	Analyzed int

	Bins            []Bin
	ECE             *float64
	MeanBrier       *float64
	MeanSharpness   *float64
	MeanSurprise    *float64
	MeanLogSurprise *float64

	Confusion  []ConfusionBand
	Coverage   Coverage
	Volatility *float64
	FlipRate   *float64
	Adaptation []AdaptationWindow
}

// BuildReport derives entries from the log and computes all metrics.
func BuildReport(log []trace.RoundLog) Report {
	entries := Derive(log)
	return Report{
		Rounds:          len(log),
		Analyzed:        len(entries),
		Bins:            Bins(entries),
		ECE:             ECE(entries),
		MeanBrier:       MeanBrier(entries),
		MeanSharpness:   MeanSharpness(entries),
		MeanSurprise:    MeanSurprise(entries),
		MeanLogSurprise: MeanLogSurprise(entries),
		Confusion:       ConfusionByBand(entries),
		Coverage:        HighConfidenceCoverage(entries),
		Volatility:      Volatility(entries),
		FlipRate:        FlipRate(entries),
		Adaptation:      AdaptationWindows(entries),
	}
}

// #endregion report
