package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/danielpatrickdp/rps-oracle/internal/config"
	"github.com/danielpatrickdp/rps-oracle/internal/export"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region main

func main() {
	configPath := flag.String("config", "", "path to yaml config (optional)")
	matchID := flag.String("match", "", "match id to export")
	profileID := flag.String("profile", "", "export every round for a profile instead")
	out := flag.String("out", "", "output csv path (default stdout)")
	mode := flag.String("mode", "classic", "match mode column value")
	difficulty := flag.String("difficulty", "adaptive", "difficulty column value")
	bestOf := flag.Int("best-of", 0, "best-of column value")
	flag.Parse()

	if *matchID == "" && *profileID == "" {
		log.Fatal("export: one of -match or -profile is required")
	}
	if err := run(*configPath, *matchID, *profileID, *out, export.MatchMeta{
		Mode:       *mode,
		Difficulty: *difficulty,
		BestOf:     *bestOf,
	}); err != nil {
		log.Fatalf("export: %v", err)
	}
}

func run(configPath, matchID, profileID, out string, meta export.MatchMeta) error {
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

	var recs []trace.RoundLog
	if matchID != "" {
		recs, err = rounds.ListByMatch(matchID)
	} else {
		recs, err = rounds.ListByProfile(profileID)
	}
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("no rounds found")
	}

	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	if err := export.Write(w, recs, meta, nil); err != nil {
		return err
	}
	if out != "" {
		log.Printf("[EXPORT] wrote %d rounds to %s", len(recs), out)
	}
	return nil
}

// #endregion main
