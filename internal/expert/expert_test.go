package expert

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

// train feeds a player move sequence through one expert, maintaining
// the pre-reveal history contract. AI moves and outcomes are derived
// as if the AI always played rock.
func train(e *State, moves []game.Move) game.History {
	var h game.History
	for _, m := range moves {
		e.Observe(h, m)
		h.Append(m, game.Rock, game.Judge(m, game.Rock))
	}
	return h
}

func sumsToOne(t *testing.T, d game.Distribution) {
	t.Helper()
	var sum float64
	for _, p := range d {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestAllExpertsUniformOnColdStart(t *testing.T) {
	var h game.History
	for _, e := range DefaultPool() {
		d := e.Predict(h)
		assert.Equal(t, game.Uniform(), d, "expert %s", e.Name())
	}
}

func TestFrequencyTracksWindow(t *testing.T) {
	e := NewFrequency(3, 0.5)
	h := train(e, []game.Move{game.Rock, game.Rock, game.Rock, game.Paper, game.Paper, game.Paper})

	// Only the trailing 3 moves are visible; all are paper.
	d := e.Predict(h)
	sumsToOne(t, d)
	top, _ := d.ArgMax()
	assert.Equal(t, game.Paper, top)
}

func TestRecencyDecayFavorsRecentMoves(t *testing.T) {
	e := NewRecency(0.5, 0.1)
	h := train(e, []game.Move{game.Rock, game.Rock, game.Rock, game.Scissors, game.Scissors})

	d := e.Predict(h)
	top, _ := d.ArgMax()
	assert.Equal(t, game.Scissors, top, "decayed rock counts should lose to recent scissors")
}

func TestMarkovAlternatingSequence(t *testing.T) {
	// Order-1 Markov trained on rock, paper, rock, paper, rock must
	// predict paper next.
	moves := []game.Move{game.Rock, game.Paper, game.Rock, game.Paper, game.Rock}

	e := NewMarkov(1, 0.5)
	h := train(e, moves)
	d := e.Predict(h)
	top, p := d.ArgMax()
	require.Equal(t, game.Paper, top)

	// Lower alpha sharpens the same prediction.
	sharper := NewMarkov(1, 0.05)
	train(sharper, moves)
	_, pSharper := sharper.Predict(h).ArgMax()
	assert.Greater(t, pSharper, p)

	// More observed rounds sharpen it too.
	longer := NewMarkov(1, 0.5)
	hl := train(longer, append(append([]game.Move{}, moves...), game.Paper, game.Rock, game.Paper, game.Rock))
	_, pLonger := longer.Predict(hl).ArgMax()
	assert.Greater(t, pLonger, p)
}

func TestMarkovUnseenContextIsUniform(t *testing.T) {
	e := NewMarkov(1, 0.5)
	_ = train(e, []game.Move{game.Rock, game.Paper})

	// Context "paper" was only entered once, context "scissors" never.
	var h2 game.History
	h2.Append(game.Scissors, game.Rock, game.Judge(game.Scissors, game.Rock))
	assert.Equal(t, game.Uniform(), e.Predict(h2))
}

func TestOutcomeExpertPlayerPerspective(t *testing.T) {
	// Outcomes are the player's: paper vs rock is a player win. After
	// winning, this player always throws rock.
	e := NewOutcome(0.1)

	var h game.History
	h.Append(game.Paper, game.Rock, game.Judge(game.Paper, game.Rock)) // player win
	e.Observe(h, game.Rock)
	h.Append(game.Rock, game.Rock, game.Tie)

	// Last outcome is a tie now; unseen context → uniform.
	assert.Equal(t, game.Uniform(), e.Predict(h))

	// After another win the learned bias applies.
	h.Append(game.Scissors, game.Paper, game.Judge(game.Scissors, game.Paper)) // player win
	top, _ := e.Predict(h).ArgMax()
	assert.Equal(t, game.Rock, top)
}

func TestWinStayLoseShift(t *testing.T) {
	e := NewWinStayLoseShift(0.1)

	// Player won with rock twice, and stayed on rock both times.
	var h game.History
	h.Append(game.Rock, game.Scissors, game.Win)
	e.Observe(h, game.Rock)
	h.Append(game.Rock, game.Scissors, game.Win)
	e.Observe(h, game.Rock)
	h.Append(game.Rock, game.Scissors, game.Win)

	top, _ := e.Predict(h).ArgMax()
	assert.Equal(t, game.Rock, top)

	// A different (outcome, move) context remains unseen.
	var h2 game.History
	h2.Append(game.Paper, game.Scissors, game.Lose)
	assert.Equal(t, game.Uniform(), e.Predict(h2))
}

func TestPeriodicDetectsCycle(t *testing.T) {
	e := NewPeriodic(2, 4, 12, 0.7)
	cycle := []game.Move{game.Rock, game.Paper, game.Scissors}
	var moves []game.Move
	for i := 0; i < 4; i++ {
		moves = append(moves, cycle...)
	}
	h := train(e, moves)

	d := e.Predict(h)
	top, p := d.ArgMax()
	assert.Equal(t, game.Rock, top, "period-3 cycle ending on scissors repeats with rock")
	assert.Greater(t, p, 0.7)
}

func TestPeriodicAbstainsWithoutCycle(t *testing.T) {
	e := NewPeriodic(2, 4, 12, 0.95)
	h := train(e, []game.Move{game.Rock, game.Scissors, game.Rock, game.Paper, game.Scissors, game.Paper, game.Rock})
	assert.Equal(t, game.Uniform(), e.Predict(h), "no clean period should mean abstention")
}

func TestBaitResponseKeysOnAIMove(t *testing.T) {
	e := NewBaitResponse(0.1)

	// Whenever the AI shows paper, this player answers scissors.
	var h game.History
	h.Append(game.Rock, game.Paper, game.Lose)
	e.Observe(h, game.Scissors)
	h.Append(game.Scissors, game.Paper, game.Lose)
	e.Observe(h, game.Scissors)
	h.Append(game.Scissors, game.Paper, game.Lose)

	top, _ := e.Predict(h).ArgMax()
	assert.Equal(t, game.Scissors, top)
}

func TestPredictNeverMutates(t *testing.T) {
	moves := []game.Move{game.Rock, game.Paper, game.Rock, game.Paper}
	for _, e := range DefaultPool() {
		h := train(e, moves)
		first := e.Predict(h)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, e.Predict(h), "expert %s", e.Name())
		}
	}
}

func TestStateRoundTripsThroughJSON(t *testing.T) {
	moves := []game.Move{game.Rock, game.Paper, game.Scissors, game.Rock, game.Paper}
	for _, e := range DefaultPool() {
		h := train(e, moves)
		data, err := json.Marshal(e)
		require.NoError(t, err)

		var restored State
		require.NoError(t, json.Unmarshal(data, &restored))
		assert.Equal(t, e.Predict(h), restored.Predict(h), "expert %s", e.Name())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	e := NewMarkov(1, 0.5)
	h := train(e, []game.Move{game.Rock, game.Paper, game.Rock})

	clone := e.Clone()
	e.Observe(h, game.Scissors)

	// The clone's table must not see the new observation.
	assert.NotEqual(t, e.Table, clone.Table)
}

func TestPredictionProbabilitiesFinite(t *testing.T) {
	moves := []game.Move{game.Rock, game.Rock, game.Paper, game.Scissors, game.Rock, game.Paper}
	for _, e := range DefaultPool() {
		h := train(e, moves)
		for _, p := range e.Predict(h) {
			require.False(t, math.IsNaN(p) || math.IsInf(p, 0), "expert %s", e.Name())
		}
		sumsToOne(t, e.Predict(h))
	}
}
