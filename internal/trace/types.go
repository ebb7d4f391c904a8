package trace

import (
	"time"

	"github.com/danielpatrickdp/rps-oracle/internal/blend"
	"github.com/danielpatrickdp/rps-oracle/internal/game"
	"github.com/danielpatrickdp/rps-oracle/internal/hedge"
)

// #region traces

// MixerTrace explains an ensemble-backed prediction: the blended
// distribution, the counter the AI chose, and the blend internals.
type MixerTrace struct {
	Distribution   game.Distribution   `json:"distribution"`
	Counter        game.Move           `json:"counter"`
	TopExperts     []hedge.ExpertRank  `json:"top_experts"`
	RealtimeWeight float64             `json:"realtime_weight"`
	HistoryWeight  float64             `json:"history_weight"`
	RealtimeDist   game.Distribution   `json:"realtime_dist"`
	HistoryDist    game.Distribution   `json:"history_dist"`
	Conflict       *blend.ConflictInfo `json:"conflict,omitempty"`
}

// HeuristicTrace explains a cold-start prediction.
type HeuristicTrace struct {
	Predicted  game.Move `json:"predicted"`
	Confidence float64   `json:"confidence"`
	Reason     string    `json:"reason"`
}

// #endregion traces

// #region round-log

// RoundLog is the immutable record of one completed round and the
// sole durable witness of engine behavior. Exactly one of Mixer or
// Heuristic is set, matching Policy.
type RoundLog struct {
	RoundID     string    `json:"round_id"`
	MatchID     string    `json:"match_id"`
	ProfileID   string    `json:"profile_id"`
	RoundNumber int       `json:"round_number"`
	ReadyAt     time.Time `json:"ready_at"`
	CompletedAt time.Time `json:"completed_at"`

	PlayerMove game.Move    `json:"player_move"`
	AIMove     game.Move    `json:"ai_move"`
	Outcome    game.Outcome `json:"outcome"`

	Policy    string          `json:"policy"` // "heuristic" | "mixer"
	Mixer     *MixerTrace     `json:"mixer,omitempty"`
	Heuristic *HeuristicTrace `json:"heuristic,omitempty"`
}

// #endregion round-log
