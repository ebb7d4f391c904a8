package policy

import (
	"fmt"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

// #region state

// State names which prediction path is authoritative for a round.
type State string

const (
	StateHeuristic State = "heuristic"
	StateMixer     State = "mixer"
)

// #endregion state

// #region config

// Config holds the promotion thresholds for the heuristic→mixer gate.
type Config struct {
	// MinRounds promotes unconditionally once this many rounds are seen.
	MinRounds int
	// EarlyRounds and ConfidenceFloor allow earlier promotion when the
	// blended top probability is already decisive.
	EarlyRounds     int
	ConfidenceFloor float64
}

// DefaultConfig returns the standard gate thresholds.
func DefaultConfig() Config {
	return Config{
		MinRounds:       10,
		EarlyRounds:     5,
		ConfidenceFloor: 0.55,
	}
}

// #endregion config

// #region selector

// Decision records which state fired for a round and why.
type Decision struct {
	State  State
	Reason string
}

// Selector is the two-state cold-start gate. It starts in heuristic
// and, once promoted to mixer, never demotes within a profile version.
type Selector struct {
	config Config
	state  State
}

// NewSelector starts in the heuristic state.
func NewSelector(config Config) *Selector {
	return &Selector{config: config, state: StateHeuristic}
}

// Current returns the gate's present state.
func (s *Selector) Current() State {
	return s.state
}

// Decide evaluates promotion for this round given the total rounds the
// profile has seen and the blend's current top probability.
func (s *Selector) Decide(roundsSeen int, blendedMax float64) Decision {
	if s.state == StateMixer {
		return Decision{State: StateMixer, Reason: "ensemble already promoted"}
	}
	if roundsSeen >= s.config.MinRounds {
		s.state = StateMixer
		return Decision{
			State:  StateMixer,
			Reason: fmt.Sprintf("promoted: %d rounds observed", roundsSeen),
		}
	}
	if roundsSeen >= s.config.EarlyRounds && blendedMax >= s.config.ConfidenceFloor {
		s.state = StateMixer
		return Decision{
			State:  StateMixer,
			Reason: fmt.Sprintf("promoted early: confidence %.2f after %d rounds", blendedMax, roundsSeen),
		}
	}
	return Decision{
		State:  StateHeuristic,
		Reason: fmt.Sprintf("cold start: %d of %d rounds", roundsSeen, s.config.MinRounds),
	}
}

// #endregion selector

// #region heuristic

// HeuristicWindow is the trailing slice the cold-start rule inspects.
const HeuristicWindow = 10

// Heuristic is the cold-start prediction rule: counter the player's
// most frequent recent move. Deterministic; ties resolve to the lowest
// move index. Returns the predicted player move, a confidence in
// [1/3, 1], and a human-readable reason.
func Heuristic(h game.History) (game.Move, float64, string) {
	tail := h.Tail(HeuristicWindow)
	if len(tail) == 0 {
		return game.Rock, 1.0 / 3, "no rounds yet; assuming uniform play"
	}
	var counts [game.NumMoves]int
	for _, m := range tail {
		counts[m]++
	}
	best := game.Rock
	for _, m := range game.Moves[1:] {
		if counts[m] > counts[best] {
			best = m
		}
	}
	confidence := float64(counts[best]) / float64(len(tail))
	if confidence < 1.0/3 {
		confidence = 1.0 / 3
	}
	reason := fmt.Sprintf("player favored %s in %d of last %d rounds", best, counts[best], len(tail))
	return best, confidence, reason
}

// #endregion heuristic
