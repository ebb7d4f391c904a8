package model

import (
	"time"

	"github.com/danielpatrickdp/rps-oracle/internal/expert"
)

// #region mixer-state

// DefaultEta is the Hedge learning rate used for fresh models.
const DefaultEta = 0.25

// MixerState is the persisted form of one Hedge mixer: weights and
// expert states positionally aligned, plus the learning rate.
type MixerState struct {
	Eta     float64         `json:"eta"`
	Weights []float64       `json:"weights"`
	Experts []*expert.State `json:"experts"`
}

// #endregion mixer-state

// #region stored-model

// StoredModel is the durable predictor record for one profile
// version. ModelVersion only increments on an explicit reset or fork;
// RoundsSeen never decreases within a version.
type StoredModel struct {
	ProfileID    string     `json:"profile_id"`
	ModelVersion int        `json:"model_version"`
	UpdatedAt    time.Time  `json:"updated_at"`
	RoundsSeen   int        `json:"rounds_seen"`
	State        MixerState `json:"state"`
}

// Fresh returns a version-1 model with the standard expert pool at
// equal weights and zero rounds seen.
func Fresh(profileID string) StoredModel {
	pool := expert.DefaultPool()
	weights := make([]float64, len(pool))
	for i := range weights {
		weights[i] = 1.0 / float64(len(pool))
	}
	return StoredModel{
		ProfileID:    profileID,
		ModelVersion: 1,
		UpdatedAt:    time.Now().UTC(),
		RoundsSeen:   0,
		State: MixerState{
			Eta:     DefaultEta,
			Weights: weights,
			Experts: pool,
		},
	}
}

// #endregion stored-model
