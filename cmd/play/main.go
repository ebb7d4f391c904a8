package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/danielpatrickdp/rps-oracle/internal/analysis"
	"github.com/danielpatrickdp/rps-oracle/internal/config"
	"github.com/danielpatrickdp/rps-oracle/internal/engine"
	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to yaml config (optional)")
	profileID := flag.String("profile", "default", "profile id to play as")
	flag.Parse()

	if err := run(*configPath, *profileID); err != nil {
		log.Fatalf("play: %v", err)
	}
}

func run(configPath, profileID string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	repo, err := model.NewSQLiteRepository(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()

	rounds, err := trace.NewStoreWithDB(repo.DB())
	if err != nil {
		return err
	}

	eng := engine.New(repo, rounds, cfg.EngineConfig())
	defer eng.Close()

	// Flush the model buffer on interrupt; best effort.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		if err := eng.Flush(); err != nil {
			log.Printf("[PLAY] flush on signal: %v", err)
		}
		os.Exit(0)
	}()

	session := eng.StartSession(profileID)
	fmt.Printf("Playing as profile %s (model v%d, %d rounds seen).\n",
		profileID, session.Model().ModelVersion, session.Model().RoundsSeen)
	fmt.Println("Moves: rock/r, paper/p, scissors/s. 'report' for metrics, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if input == "" {
			continue
		}
		if input == "quit" || input == "exit" {
			break
		}
		if input == "report" {
			printReport(analysis.BuildReport(session.Rounds()))
			continue
		}

		move, err := game.ParseMove(input)
		if err != nil {
			fmt.Printf("unknown input %q\n", input)
			continue
		}

		pred := session.Predict()
		rec, err := session.Observe(pred, move)
		if err != nil {
			log.Printf("[PLAY] observe: %v", err)
			continue
		}

		fmt.Printf("AI played %s, you %s (%s path)\n", rec.AIMove, rec.Outcome, rec.Policy)
		switch {
		case rec.Mixer != nil:
			d := rec.Mixer.Distribution
			fmt.Printf("  forecast: rock=%.2f paper=%.2f scissors=%.2f", d[game.Rock], d[game.Paper], d[game.Scissors])
			if rec.Mixer.Conflict != nil {
				fmt.Printf("  (conflict: session says %s, history says %s)",
					rec.Mixer.Conflict.Realtime, rec.Mixer.Conflict.History)
			}
			fmt.Println()
		case rec.Heuristic != nil:
			fmt.Printf("  %s (confidence %.2f)\n", rec.Heuristic.Reason, rec.Heuristic.Confidence)
		}
	}

	printReport(analysis.BuildReport(session.Rounds()))
	return eng.Flush()
}

// #endregion main

// #region report

func printReport(report analysis.Report) {
	fmt.Printf("rounds=%d analyzed=%d\n", report.Rounds, report.Analyzed)
	fmt.Printf("  ece=%s brier=%s sharpness=%s surprise=%s\n",
		fmtPtr(report.ECE), fmtPtr(report.MeanBrier), fmtPtr(report.MeanSharpness), fmtPtr(report.MeanSurprise))
	fmt.Printf("  volatility=%s flip_rate=%s adaptation_windows=%d\n",
		fmtPtr(report.Volatility), fmtPtr(report.FlipRate), len(report.Adaptation))
}

func fmtPtr(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", *v)
}

// #endregion report
