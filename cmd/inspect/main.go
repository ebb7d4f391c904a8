package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/danielpatrickdp/rps-oracle/internal/analysis"
	"github.com/danielpatrickdp/rps-oracle/internal/config"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to yaml config (optional)")
	profileID := flag.String("profile", "default", "profile id to inspect")
	showBins := flag.Bool("bins", false, "print the calibration bin table")
	flag.Parse()

	if err := run(*configPath, *profileID, *showBins); err != nil {
		log.Fatalf("inspect: %v", err)
	}
}

func run(configPath, profileID string, showBins bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	repo, err := model.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	stored := model.NewStore(repo).Load(profileID)
	fmt.Printf("profile %s: model v%d, %d rounds seen, updated %s\n",
		stored.ProfileID, stored.ModelVersion, stored.RoundsSeen,
		stored.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("eta=%.3f experts:\n", stored.State.Eta)
	for i, e := range stored.State.Experts {
		fmt.Printf("  %-22s weight=%.4f\n", e.Name(), stored.State.Weights[i])
	}

	rounds, err := trace.NewStoreWithDB(repo.DB())
	if err != nil {
		return err
	}
	recs, err := rounds.ListByProfile(profileID)
	if err != nil {
		return err
	}

	report := analysis.BuildReport(recs)
	fmt.Printf("\nrounds=%d analyzed=%d\n", report.Rounds, report.Analyzed)
	fmt.Printf("ece=%s brier=%s sharpness=%s surprise=%s log_surprise=%s\n",
		fmtPtr(report.ECE), fmtPtr(report.MeanBrier), fmtPtr(report.MeanSharpness),
		fmtPtr(report.MeanSurprise), fmtPtr(report.MeanLogSurprise))
	fmt.Printf("volatility=%s flip_rate=%s\n", fmtPtr(report.Volatility), fmtPtr(report.FlipRate))

	cov := report.Coverage
	fmt.Printf("high-confidence (>=%.1f): covered=%d/%d accuracy=%s\n",
		cov.Threshold, cov.Covered, cov.Total, fmtPtr(cov.Accuracy))

	for _, band := range report.Confusion {
		fmt.Printf("band %-7s [%.1f,%.1f): n=%d accuracy=%s\n",
			band.Name, band.Lo, band.Hi, band.Count, fmtPtr(band.Accuracy))
	}

	if len(report.Adaptation) > 0 {
		fmt.Println("adaptation windows:")
		for _, w := range report.Adaptation {
			fmt.Printf("  rounds %d..%d (length %d)\n", w.Start, w.End, w.Length)
		}
	}

	if showBins {
		fmt.Println("\ncalibration deciles:")
		for _, b := range report.Bins {
			if b.Count == 0 {
				continue
			}
			fmt.Printf("  [%.1f,%.1f) n=%-4d accuracy=%s confidence=%s\n",
				b.Lo, b.Hi, b.Count, fmtPtr(b.Accuracy), fmtPtr(b.AvgConfidence))
		}
	}
	return nil
}

func fmtPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}

// #endregion main
