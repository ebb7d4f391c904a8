package analysis

import (
	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

// #region derived-entry

// DerivedEntry is one round reinterpreted for analysis: the
// reconstructed forecast and how it fared against the played move.
// Recomputed on every read, never persisted.
type DerivedEntry struct {
	Index     int
	Dist      game.Distribution
	Predicted game.Move
	MaxProb   float64
	Actual    game.Move
	PActual   float64
	Correct   bool
}

// #endregion derived-entry

// #region reconstruct

// inferredConfidence is the nominal mass assigned to the target move
// when a round carries no trace and the forecast must be inverted
// from the AI's played counter.
const inferredConfidence = 0.5

// Reconstruct recovers the forecast distribution for one round. The
// three tiers are tried in order; the first that applies wins:
//  1. the persisted mixer-trace distribution;
//  2. the heuristic trace's predicted move at its stated confidence,
//     remainder spread uniformly over the other two moves;
//  3. the player move implied by inverting the AI's played counter,
//     at a nominal confidence, remainder spread uniformly.
//
// ok is false when no tier applies; such rounds are excluded.
func Reconstruct(rec trace.RoundLog) (game.Distribution, bool) {
	if rec.Mixer != nil {
		return rec.Mixer.Distribution.Normalize(), true
	}
	if rec.Heuristic != nil {
		return pointMass(rec.Heuristic.Predicted, rec.Heuristic.Confidence), true
	}
	if rec.AIMove.Valid() {
		return pointMass(game.Countered(rec.AIMove), inferredConfidence), true
	}
	return game.Distribution{}, false
}

// pointMass puts confidence on target and spreads the rest uniformly.
func pointMass(target game.Move, confidence float64) game.Distribution {
	if confidence < 0 || confidence > 1 {
		return game.Uniform()
	}
	rest := (1 - confidence) / float64(game.NumMoves-1)
	var d game.Distribution
	for _, m := range game.Moves {
		if m == target {
			d[m] = confidence
		} else {
			d[m] = rest
		}
	}
	return d.Normalize()
}

// #endregion reconstruct

// #region derive

// Derive projects a chronological round log into derived entries,
// excluding rounds whose forecast cannot be reconstructed. Pure:
// identical input yields identical output.
func Derive(log []trace.RoundLog) []DerivedEntry {
	entries := make([]DerivedEntry, 0, len(log))
	for i, rec := range log {
		dist, ok := Reconstruct(rec)
		if !ok || !rec.PlayerMove.Valid() {
			continue
		}
		predicted, maxProb := dist.ArgMax()
		entries = append(entries, DerivedEntry{
			Index:     i,
			Dist:      dist,
			Predicted: predicted,
			MaxProb:   maxProb,
			Actual:    rec.PlayerMove,
			PActual:   dist[rec.PlayerMove],
			Correct:   predicted == rec.PlayerMove,
		})
	}
	return entries
}

// #endregion derive
