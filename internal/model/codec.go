package model

import (
	"encoding/json"
	"fmt"
	"math"
)

// #region codec

// Encode serializes a stored model for the repository.
func Encode(m StoredModel) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	return data, nil
}

// Decode deserializes a repository record. Malformed or partial
// records never propagate an error: anything that fails validation
// falls back to a fresh version-1 model for the profile.
func Decode(profileID string, data []byte) StoredModel {
	var m StoredModel
	if err := json.Unmarshal(data, &m); err != nil {
		return Fresh(profileID)
	}
	if !valid(m) {
		return Fresh(profileID)
	}
	m.ProfileID = profileID
	return m
}

// valid checks the structural invariants a trustworthy record must
// satisfy: positive version, non-negative rounds, aligned finite
// weights, and a non-empty expert list with recognized kinds.
func valid(m StoredModel) bool {
	if m.ModelVersion < 1 || m.RoundsSeen < 0 {
		return false
	}
	if m.State.Eta <= 0 || math.IsNaN(m.State.Eta) || math.IsInf(m.State.Eta, 0) {
		return false
	}
	if len(m.State.Experts) == 0 || len(m.State.Weights) != len(m.State.Experts) {
		return false
	}
	for _, w := range m.State.Weights {
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return false
		}
	}
	for _, e := range m.State.Experts {
		if e == nil || e.Kind == "" {
			return false
		}
	}
	return true
}

// #endregion codec
