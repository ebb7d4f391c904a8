package blend

import (
	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/hedge"
)

// #region policy

// Policy maps the two mixers' sample sizes to blend weights. The
// returned pair is renormalized before use, so implementations only
// need relative magnitudes.
type Policy interface {
	Weights(realtimeRounds, historyRounds int) (realtime, history float64)
}

// SampleSizePolicy weights each side by its effective sample size.
// The realtime side gets a recency boost and the history side's count
// is capped so a long-lived profile cannot drown out the current
// session. With no data on either side the blend is an even split.
type SampleSizePolicy struct {
	RealtimeBoost float64 // multiplier on the session's round count
	HistoryCap    int     // history rounds counted at most this much
}

// DefaultPolicy returns the standard sample-size policy.
func DefaultPolicy() SampleSizePolicy {
	return SampleSizePolicy{RealtimeBoost: 2.0, HistoryCap: 200}
}

// Weights implements Policy.
func (p SampleSizePolicy) Weights(realtimeRounds, historyRounds int) (float64, float64) {
	if historyRounds > p.HistoryCap {
		historyRounds = p.HistoryCap
	}
	rt := float64(realtimeRounds) * p.RealtimeBoost
	hist := float64(historyRounds)
	if rt+hist == 0 {
		return 0.5, 0.5
	}
	return rt, hist
}

// #endregion policy

// #region combiner

// ConflictInfo reports a disagreement between the two mixers' top
// predictions, for explanatory UI.
type ConflictInfo struct {
	Realtime game.Move `json:"realtime"`
	History  game.Move `json:"history"`
}

// Result is one blended prediction with everything needed to trace it.
type Result struct {
	Combined       game.Distribution `json:"combined"`
	RealtimeDist   game.Distribution `json:"realtime_dist"`
	HistoryDist    game.Distribution `json:"history_dist"`
	RealtimeWeight float64           `json:"realtime_weight"`
	HistoryWeight  float64           `json:"history_weight"`
	Conflict       *ConflictInfo     `json:"conflict,omitempty"`
}

// Combiner merges a session-scoped mixer with a history mixer restored
// from the profile's persisted model. Both share the expert variant
// set but never share state.
type Combiner struct {
	Realtime *hedge.Mixer
	History  *hedge.Mixer
	policy   Policy
}

// NewCombiner wires the two mixers under a blend policy.
func NewCombiner(realtime, history *hedge.Mixer, policy Policy) *Combiner {
	return &Combiner{Realtime: realtime, History: history, policy: policy}
}

// Predict blends the two mixers' distributions. Pure with respect to
// mixer state.
func (c *Combiner) Predict(h game.History) Result {
	rtDist := c.Realtime.Combine(h)
	histDist := c.History.Combine(h)

	wRT, wHist := c.policy.Weights(c.Realtime.Rounds(), c.History.Rounds())
	total := wRT + wHist
	if total <= 0 {
		wRT, wHist, total = 0.5, 0.5, 1.0
	}
	wRT /= total
	wHist /= total

	combined := rtDist.Scale(wRT).Add(histDist.Scale(wHist)).Normalize()

	res := Result{
		Combined:       combined,
		RealtimeDist:   rtDist,
		HistoryDist:    histDist,
		RealtimeWeight: wRT,
		HistoryWeight:  wHist,
	}

	rtTop, _ := rtDist.ArgMax()
	histTop, _ := histDist.ArgMax()
	if rtTop != histTop {
		res.Conflict = &ConflictInfo{Realtime: rtTop, History: histTop}
	}
	return res
}

// Update feeds the revealed move to both mixers.
func (c *Combiner) Update(h game.History, actual game.Move) {
	c.Realtime.Update(h, actual)
	c.History.Update(h, actual)
}

// #endregion combiner
