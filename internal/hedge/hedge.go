package hedge

import (
	"fmt"
	"math"
	"sort"

	"github.com/danielpatrickdp/rps-oracle/internal/expert"
	"github.com/danielpatrickdp/rps-oracle/internal/game"
)

// #region mixer

// Mixer combines a pool of experts with multiplicative-weights (Hedge)
// updating. Weights stay non-negative and are renormalized to sum to 1
// after every update, which bounds regret against the best fixed
// expert in hindsight.
type Mixer struct {
	Eta     float64
	Weights []float64
	Experts []*expert.State

	rounds int
}

// NewMixer starts every expert at equal weight.
func NewMixer(eta float64, experts []*expert.State) *Mixer {
	weights := make([]float64, len(experts))
	for i := range weights {
		weights[i] = 1.0 / float64(len(experts))
	}
	return &Mixer{Eta: eta, Weights: weights, Experts: experts}
}

// Restore rebuilds a mixer from persisted weights and expert states.
// The two slices must be positionally aligned; a length mismatch is a
// malformed record and the caller falls back to NewMixer.
func Restore(eta float64, weights []float64, experts []*expert.State, rounds int) (*Mixer, error) {
	if len(weights) != len(experts) || len(experts) == 0 {
		return nil, fmt.Errorf("restore mixer: %d weights vs %d experts", len(weights), len(experts))
	}
	m := &Mixer{Eta: eta, Weights: normalize(weights), Experts: experts, rounds: rounds}
	return m, nil
}

// Rounds returns how many observed rounds have updated this mixer.
func (m *Mixer) Rounds() int {
	return m.rounds
}

// #endregion mixer

// #region combine

// Combine returns the weight-averaged distribution over the player's
// next move. Pure: safe to call speculatively between updates.
func (m *Mixer) Combine(h game.History) game.Distribution {
	var d game.Distribution
	for i, e := range m.Experts {
		d = d.Add(e.Predict(h).Scale(m.Weights[i]))
	}
	return d.Normalize()
}

// #endregion combine

// #region update

// Update folds the revealed move into every expert and reweights the
// pool. Expert loss is 1 minus the mass it placed on the actual move,
// so a perfect expert loses nothing and keeps (relative) weight.
func (m *Mixer) Update(h game.History, actual game.Move) {
	for i, e := range m.Experts {
		p := e.Predict(h)
		loss := 1 - p[actual]
		m.Weights[i] *= math.Exp(-m.Eta * loss)
		e.Observe(h, actual)
	}
	m.Weights = normalize(m.Weights)
	m.rounds++
}

func normalize(w []float64) []float64 {
	var sum float64
	for _, x := range w {
		if math.IsNaN(x) || math.IsInf(x, 0) || x < 0 {
			return equal(len(w))
		}
		sum += x
	}
	if sum <= 0 {
		return equal(len(w))
	}
	out := make([]float64, len(w))
	for i, x := range w {
		out[i] = x / sum
	}
	return out
}

func equal(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1.0 / float64(n)
	}
	return out
}

// #endregion update

// #region top-experts

// ExpertRank annotates one expert for tracing: its current weight plus
// its own top move and the probability it assigns to it.
type ExpertRank struct {
	Name        string    `json:"name"`
	Weight      float64   `json:"weight"`
	TopMove     game.Move `json:"top_move"`
	Probability float64   `json:"probability"`
}

// TopExperts returns the k highest-weighted experts in descending
// weight order.
func (m *Mixer) TopExperts(h game.History, k int) []ExpertRank {
	ranks := make([]ExpertRank, len(m.Experts))
	for i, e := range m.Experts {
		move, p := e.Predict(h).ArgMax()
		ranks[i] = ExpertRank{
			Name:        e.Name(),
			Weight:      m.Weights[i],
			TopMove:     move,
			Probability: p,
		}
	}
	sort.SliceStable(ranks, func(a, b int) bool { return ranks[a].Weight > ranks[b].Weight })
	if k < len(ranks) {
		ranks = ranks[:k]
	}
	return ranks
}

// #endregion top-experts
