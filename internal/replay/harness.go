package replay

import (
	"github.com/danielpatrickdp/rps-oracle/internal/analysis"
	"github.com/danielpatrickdp/rps-oracle/internal/engine"
	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
)

// #region types

// Result captures one replayed round.
type Result struct {
	RoundNumber int
	Policy      string
	PlayerMove  game.Move
	AIMove      game.Move
	Outcome     game.Outcome
	// Correct means the engine's predicted player move matched.
	Correct bool
}

// Summary aggregates a replay run, including the full derived
// metrics over the replayed round log.
type Summary struct {
	TotalRounds     int
	HeuristicRounds int
	MixerRounds     int
	PlayerWins      int
	AIWins          int
	Ties            int
	CorrectPredict  int
	Report          analysis.Report
}

// #endregion types

// #region run

// Run replays a recorded player move sequence through a fresh
// in-memory engine, round by round: predict → observe → score.
// Deterministic for a given move sequence and config.
func Run(profileID string, moves []game.Move, config engine.Config) ([]Result, Summary, error) {
	eng := engine.New(model.NewMemoryRepository(), nil, config)
	defer eng.Close()
	session := eng.StartSession(profileID)

	results := make([]Result, 0, len(moves))
	summary := Summary{}

	for _, move := range moves {
		pred := session.Predict()
		rec, err := session.Observe(pred, move)
		if err != nil {
			return nil, Summary{}, err
		}

		correct := false
		switch {
		case rec.Mixer != nil:
			predicted, _ := rec.Mixer.Distribution.ArgMax()
			correct = predicted == move
		case rec.Heuristic != nil:
			correct = rec.Heuristic.Predicted == move
		}

		results = append(results, Result{
			RoundNumber: rec.RoundNumber,
			Policy:      rec.Policy,
			PlayerMove:  move,
			AIMove:      rec.AIMove,
			Outcome:     rec.Outcome,
			Correct:     correct,
		})

		summary.TotalRounds++
		if rec.Policy == "mixer" {
			summary.MixerRounds++
		} else {
			summary.HeuristicRounds++
		}
		switch rec.Outcome {
		case game.Win:
			summary.PlayerWins++
		case game.Lose:
			summary.AIWins++
		default:
			summary.Ties++
		}
		if correct {
			summary.CorrectPredict++
		}
	}

	summary.Report = analysis.BuildReport(session.Rounds())
	return results, summary, nil
}

// #endregion run
