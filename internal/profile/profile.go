package profile

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/danielpatrickdp/rps-oracle/internal/expert"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
)

// #region record

// Record identifies one player profile. Model versions within a
// profile form its lineage.
type Record struct {
	ProfileID   string    `json:"profile_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// New creates a profile with a fresh id.
func New(displayName string) Record {
	return Record{
		ProfileID:   uuid.New().String(),
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
}

// #endregion record

// #region fork

// CarryPolicy says what a forked model version inherits. There is no
// default: callers must choose explicitly.
type CarryPolicy string

const (
	// CarryReset starts the new version from a fresh mixer.
	CarryReset CarryPolicy = "reset"
	// CarryInherit deep-copies the parent's weights and expert tables.
	CarryInherit CarryPolicy = "inherit"
)

// Fork creates the next model version for the profile. The version
// number always increments; the carry policy decides whether the
// mixer state starts over or continues from the parent.
func Fork(parent model.StoredModel, policy CarryPolicy) (model.StoredModel, error) {
	switch policy {
	case CarryReset:
		next := model.Fresh(parent.ProfileID)
		next.ModelVersion = parent.ModelVersion + 1
		return next, nil
	case CarryInherit:
		next := parent
		next.ModelVersion = parent.ModelVersion + 1
		next.UpdatedAt = time.Now().UTC()
		next.State.Weights = append([]float64(nil), parent.State.Weights...)
		next.State.Experts = expert.ClonePool(parent.State.Experts)
		return next, nil
	}
	return model.StoredModel{}, fmt.Errorf("fork profile %s: unknown carry policy %q", parent.ProfileID, policy)
}

// #endregion fork
