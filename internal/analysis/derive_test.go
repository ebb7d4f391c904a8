package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/trace"
)

func TestReconstructTierMixer(t *testing.T) {
	dist := game.Distribution{0.7, 0.2, 0.1}
	rec := mixerRound("r1", dist, game.Rock)
	// Even with a heuristic trace present, the mixer trace wins.
	rec.Heuristic = &trace.HeuristicTrace{Predicted: game.Scissors, Confidence: 0.9}

	got, ok := Reconstruct(rec)
	require.True(t, ok)
	assert.Equal(t, dist.Normalize(), got)
}

func TestReconstructTierHeuristic(t *testing.T) {
	rec := trace.RoundLog{
		PlayerMove: game.Rock,
		AIMove:     game.Paper,
		Policy:     "heuristic",
		Heuristic:  &trace.HeuristicTrace{Predicted: game.Rock, Confidence: 0.6},
	}
	got, ok := Reconstruct(rec)
	require.True(t, ok)
	assert.InDelta(t, 0.6, got[game.Rock], 1e-12)
	assert.InDelta(t, 0.2, got[game.Paper], 1e-12)
	assert.InDelta(t, 0.2, got[game.Scissors], 1e-12)
}

func TestReconstructTierCounterInversion(t *testing.T) {
	// No trace at all: the AI played paper, so it was targeting rock.
	rec := trace.RoundLog{PlayerMove: game.Scissors, AIMove: game.Paper}
	got, ok := Reconstruct(rec)
	require.True(t, ok)

	top, p := got.ArgMax()
	assert.Equal(t, game.Rock, top)
	assert.InDelta(t, 0.5, p, 1e-12)
	assert.InDelta(t, 0.25, got[game.Paper], 1e-12)
}

func TestReconstructExcludesHopelessRounds(t *testing.T) {
	rec := trace.RoundLog{PlayerMove: game.Rock, AIMove: game.Move(-1)}
	_, ok := Reconstruct(rec)
	assert.False(t, ok)
}

func TestDeriveSkipsUnusableRounds(t *testing.T) {
	log := []trace.RoundLog{
		mixerRound("r1", game.Distribution{0.5, 0.3, 0.2}, game.Rock),
		{PlayerMove: game.Rock, AIMove: game.Move(-1)}, // excluded
		mixerRound("r3", game.Distribution{0.2, 0.6, 0.2}, game.Paper),
	}
	entries := Derive(log)
	require.Len(t, entries, 2)
	assert.Equal(t, 0, entries[0].Index)
	assert.Equal(t, 2, entries[1].Index)
	assert.True(t, entries[1].Correct)
	assert.InDelta(t, 0.6, entries[1].PActual, 1e-12)
}

func TestReportIsPure(t *testing.T) {
	log := []trace.RoundLog{
		mixerRound("r1", game.Distribution{0.9, 0.05, 0.05}, game.Rock),
		mixerRound("r2", game.Distribution{0.5, 0.3, 0.2}, game.Paper),
		{
			RoundID:    "r3",
			PlayerMove: game.Scissors,
			AIMove:     game.Rock,
			Policy:     "heuristic",
			Heuristic:  &trace.HeuristicTrace{Predicted: game.Scissors, Confidence: 0.5},
		},
	}
	first := BuildReport(log)
	second := BuildReport(log)
	assert.Equal(t, first, second, "identical input must yield identical metrics")
	assert.Equal(t, 3, first.Rounds)
	assert.Equal(t, 3, first.Analyzed)
}

func TestReportCacheMemoizes(t *testing.T) {
	cache, err := NewReportCache(4)
	require.NoError(t, err)

	log := []trace.RoundLog{
		mixerRound("r1", game.Distribution{0.9, 0.05, 0.05}, game.Rock),
	}
	first := cache.Get(log)
	second := cache.Get(log)
	assert.Equal(t, first, second)

	// Appending a round produces a new snapshot key.
	log = append(log, mixerRound("r2", game.Distribution{0.2, 0.6, 0.2}, game.Rock))
	third := cache.Get(log)
	assert.Equal(t, 2, third.Rounds)
}
