package expert

import (
	"fmt"
	"strings"

	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

// #region kinds

// Kind tags one of the seven predictor variants. The set is closed:
// Predict and Observe dispatch on it exhaustively.
type Kind string

const (
	KindFrequency        Kind = "frequency"
	KindRecency          Kind = "recency"
	KindMarkov           Kind = "markov"
	KindOutcome          Kind = "outcome"
	KindWinStayLoseShift Kind = "win_stay_lose_shift"
	KindPeriodic         Kind = "periodic"
	KindBaitResponse     Kind = "bait_response"
)

// #endregion kinds

// #region state

// Counts is a per-move count table.
type Counts [game.NumMoves]float64

// State is the tagged-variant state of a single expert. Only the
// fields relevant to its Kind are populated; the whole struct
// round-trips through JSON for persistence.
type State struct {
	Kind Kind `json:"kind"`

	// Laplace smoothing constant, shared by every count-based variant.
	Alpha float64 `json:"alpha,omitempty"`

	// Frequency and Periodic: trailing window of player moves considered.
	Window int `json:"window,omitempty"`

	// Recency: per-round multiplicative decay on Counts.
	Gamma  float64 `json:"gamma,omitempty"`
	Counts Counts  `json:"counts,omitempty"`

	// Markov: context length in player moves.
	Order int `json:"order,omitempty"`

	// Markov, Outcome, WinStayLoseShift, BaitResponse: context → counts.
	Table map[string]Counts `json:"table,omitempty"`

	// Periodic: candidate period range and commit threshold.
	MinPeriod int     `json:"min_period,omitempty"`
	MaxPeriod int     `json:"max_period,omitempty"`
	Confident float64 `json:"confident,omitempty"`
}

// Name returns a short identifier for traces, e.g. "markov2".
func (s *State) Name() string {
	if s.Kind == KindMarkov {
		return fmt.Sprintf("markov%d", s.Order)
	}
	return string(s.Kind)
}

// #endregion state

// #region constructors

// NewFrequency predicts from Laplace-smoothed move frequencies within
// a trailing window.
func NewFrequency(window int, alpha float64) *State {
	return &State{Kind: KindFrequency, Window: window, Alpha: alpha}
}

// NewRecency predicts from exponentially decayed move counts.
func NewRecency(gamma, alpha float64) *State {
	return &State{Kind: KindRecency, Gamma: gamma, Alpha: alpha}
}

// NewMarkov predicts from the player's last `order` moves.
func NewMarkov(order int, alpha float64) *State {
	return &State{Kind: KindMarkov, Order: order, Alpha: alpha, Table: map[string]Counts{}}
}

// NewOutcome predicts from the previous round's outcome. Outcomes are
// read from the player's perspective (Win = the player beat the AI).
func NewOutcome(alpha float64) *State {
	return &State{Kind: KindOutcome, Alpha: alpha, Table: map[string]Counts{}}
}

// NewWinStayLoseShift predicts from (previous outcome, previous player
// move), capturing the repeat-after-win / switch-after-loss bias.
func NewWinStayLoseShift(alpha float64) *State {
	return &State{Kind: KindWinStayLoseShift, Alpha: alpha, Table: map[string]Counts{}}
}

// NewPeriodic scans for a repeating cycle in the trailing window and
// commits to it only when the fit score clears `confident`.
func NewPeriodic(minPeriod, maxPeriod, window int, confident float64) *State {
	return &State{
		Kind:      KindPeriodic,
		MinPeriod: minPeriod,
		MaxPeriod: maxPeriod,
		Window:    window,
		Confident: confident,
	}
}

// NewBaitResponse predicts from the AI's own previous move, modelling
// players who react to what they just saw.
func NewBaitResponse(alpha float64) *State {
	return &State{Kind: KindBaitResponse, Alpha: alpha, Table: map[string]Counts{}}
}

// DefaultPool returns the standard seven-expert ensemble.
func DefaultPool() []*State {
	return []*State{
		NewFrequency(20, 1.0),
		NewRecency(0.9, 0.5),
		NewMarkov(1, 0.5),
		NewOutcome(0.5),
		NewWinStayLoseShift(0.5),
		NewPeriodic(2, 6, 18, 0.7),
		NewBaitResponse(0.5),
	}
}

// #endregion constructors

// #region predict

// Predict returns this expert's distribution over the player's next
// move. It never mutates state and never fails: contexts the expert
// has not seen yield the uniform distribution.
func (s *State) Predict(h game.History) game.Distribution {
	switch s.Kind {
	case KindFrequency:
		return s.predictFrequency(h)
	case KindRecency:
		return s.predictCounts(s.Counts)
	case KindMarkov:
		key, ok := markovKey(h, s.Order)
		if !ok {
			return game.Uniform()
		}
		return s.predictTable(key)
	case KindOutcome:
		out, ok := h.LastOutcome()
		if !ok {
			return game.Uniform()
		}
		return s.predictTable(out.String())
	case KindWinStayLoseShift:
		key, ok := wslsKey(h)
		if !ok {
			return game.Uniform()
		}
		return s.predictTable(key)
	case KindPeriodic:
		return s.predictPeriodic(h)
	case KindBaitResponse:
		ai, ok := h.LastAI()
		if !ok {
			return game.Uniform()
		}
		return s.predictTable(ai.String())
	}
	return game.Uniform()
}

func (s *State) predictFrequency(h game.History) game.Distribution {
	tail := h.Tail(s.Window)
	if len(tail) == 0 {
		return game.Uniform()
	}
	var counts Counts
	for _, m := range tail {
		counts[m]++
	}
	return s.predictCounts(counts)
}

func (s *State) predictCounts(counts Counts) game.Distribution {
	var d game.Distribution
	for i, c := range counts {
		d[i] = c + s.Alpha
	}
	return d.Normalize()
}

func (s *State) predictTable(key string) game.Distribution {
	counts, ok := s.Table[key]
	if !ok {
		return game.Uniform()
	}
	return s.predictCounts(counts)
}

// predictPeriodic scores every candidate period against the trailing
// window and abstains (uniform) unless the best fit clears Confident.
func (s *State) predictPeriodic(h game.History) game.Distribution {
	tail := h.Tail(s.Window)
	bestPeriod, bestScore := 0, 0.0
	for p := s.MinPeriod; p <= s.MaxPeriod; p++ {
		if p >= len(tail) {
			break
		}
		matches, total := 0, 0
		for i := p; i < len(tail); i++ {
			total++
			if tail[i] == tail[i-p] {
				matches++
			}
		}
		if total == 0 {
			continue
		}
		score := float64(matches) / float64(total)
		if score > bestScore {
			bestScore = score
			bestPeriod = p
		}
	}
	if bestPeriod == 0 || bestScore < s.Confident {
		return game.Uniform()
	}
	next := tail[len(tail)-bestPeriod]
	var d game.Distribution
	rest := (1 - bestScore) / float64(game.NumMoves-1)
	for _, m := range game.Moves {
		if m == next {
			d[m] = bestScore
		} else {
			d[m] = rest
		}
	}
	return d.Normalize()
}

// #endregion predict

// #region observe

// Observe folds the revealed move into the expert's statistics. The
// history must be the pre-reveal context (the rounds before actual).
// Call exactly once per round per expert.
func (s *State) Observe(h game.History, actual game.Move) {
	switch s.Kind {
	case KindFrequency, KindPeriodic:
		// Stateless over history; nothing to fold in.
	case KindRecency:
		for i := range s.Counts {
			s.Counts[i] *= s.Gamma
		}
		s.Counts[actual]++
	case KindMarkov:
		if key, ok := markovKey(h, s.Order); ok {
			s.bump(key, actual)
		}
	case KindOutcome:
		if out, ok := h.LastOutcome(); ok {
			s.bump(out.String(), actual)
		}
	case KindWinStayLoseShift:
		if key, ok := wslsKey(h); ok {
			s.bump(key, actual)
		}
	case KindBaitResponse:
		if ai, ok := h.LastAI(); ok {
			s.bump(ai.String(), actual)
		}
	}
}

func (s *State) bump(key string, actual game.Move) {
	if s.Table == nil {
		s.Table = map[string]Counts{}
	}
	counts := s.Table[key]
	counts[actual]++
	s.Table[key] = counts
}

// #endregion observe

// #region keys

// markovKey joins the last `order` player moves into a context key.
func markovKey(h game.History, order int) (string, bool) {
	if order <= 0 || h.Len() < order {
		return "", false
	}
	tail := h.Tail(order)
	parts := make([]string, len(tail))
	for i, m := range tail {
		parts[i] = m.String()
	}
	return strings.Join(parts, ","), true
}

// wslsKey joins the previous outcome with the player's previous move.
func wslsKey(h game.History) (string, bool) {
	out, ok := h.LastOutcome()
	if !ok {
		return "", false
	}
	prev, ok := h.LastPlayer()
	if !ok {
		return "", false
	}
	return out.String() + "|" + prev.String(), true
}

// #endregion keys

// #region clone

// Clone deep-copies the state, including the context table.
func (s *State) Clone() *State {
	out := *s
	if s.Table != nil {
		out.Table = make(map[string]Counts, len(s.Table))
		for k, v := range s.Table {
			out.Table[k] = v
		}
	}
	return &out
}

// ClonePool deep-copies a whole expert list.
func ClonePool(pool []*State) []*State {
	out := make([]*State, len(pool))
	for i, s := range pool {
		out[i] = s.Clone()
	}
	return out
}

// #endregion clone
