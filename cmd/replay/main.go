package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/danielpatrickdp/rps-oracle/internal/config"
	"github.com/danielpatrickdp/rps-oracle/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to a replay fixture (required)")
	configPath := flag.String("config", "", "path to yaml config (optional)")
	verbose := flag.Bool("v", false, "print per-round results")
	flag.Parse()

	if *fixturePath == "" {
		log.Fatal("replay: -fixture is required")
	}
	if err := run(*fixturePath, *configPath, *verbose); err != nil {
		log.Fatalf("replay: %v", err)
	}
}

func run(fixturePath, configPath string, verbose bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	fixture, err := replay.LoadFixture(fixturePath)
	if err != nil {
		return err
	}
	moves, err := fixture.ParseMoves()
	if err != nil {
		return err
	}

	profileID := fixture.ProfileID
	if profileID == "" {
		profileID = "replay"
	}

	results, summary, err := replay.Run(profileID, moves, cfg.EngineConfig())
	if err != nil {
		return err
	}

	if fixture.Description != "" {
		fmt.Println(fixture.Description)
	}
	if verbose {
		for _, r := range results {
			fmt.Printf("round %3d: policy=%-9s player=%-8s ai=%-8s outcome=%-4s correct=%v\n",
				r.RoundNumber, r.Policy, r.PlayerMove, r.AIMove, r.Outcome, r.Correct)
		}
	}

	fmt.Printf("rounds=%d heuristic=%d mixer=%d\n",
		summary.TotalRounds, summary.HeuristicRounds, summary.MixerRounds)
	fmt.Printf("player_wins=%d ai_wins=%d ties=%d correct_predictions=%d\n",
		summary.PlayerWins, summary.AIWins, summary.Ties, summary.CorrectPredict)

	mismatches := fixture.Verify(results)
	if len(mismatches) == 0 {
		if len(fixture.Expected) > 0 {
			fmt.Printf("all %d expectations matched\n", len(fixture.Expected))
		}
		return nil
	}
	for _, m := range mismatches {
		fmt.Printf("MISMATCH round %d %s: want %s, got %s\n", m.RoundNumber, m.Field, m.Want, m.Got)
	}
	return fmt.Errorf("%d expectation mismatches", len(mismatches))
}

// #endregion main
