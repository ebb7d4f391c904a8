package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielpatrickdp/rps-oracle/internal/expert"
	"github.com/danielpatrickdp/rps-oracle/internal/model"
)

func TestNewProfile(t *testing.T) {
	a := New("alice")
	b := New("bob")
	assert.NotEmpty(t, a.ProfileID)
	assert.NotEqual(t, a.ProfileID, b.ProfileID)
	assert.Equal(t, "alice", a.DisplayName)
	assert.False(t, a.CreatedAt.IsZero())
}

func trainedParent() model.StoredModel {
	parent := model.Fresh("p1")
	parent.ModelVersion = 2
	parent.RoundsSeen = 30
	parent.State.Weights = []float64{0.4, 0.2, 0.1, 0.1, 0.1, 0.05, 0.05}
	parent.State.Experts[0].Counts[0] = 9
	return parent
}

func TestForkResetStartsOver(t *testing.T) {
	next, err := Fork(trainedParent(), CarryReset)
	require.NoError(t, err)

	assert.Equal(t, 3, next.ModelVersion, "version always increments")
	assert.Equal(t, "p1", next.ProfileID)
	assert.Zero(t, next.RoundsSeen)
	assert.InDelta(t, 1.0/7.0, next.State.Weights[0], 1e-9)
	assert.Zero(t, next.State.Experts[0].Counts[0], "no learned state carries over")
}

func TestForkInheritCarriesState(t *testing.T) {
	parent := trainedParent()
	next, err := Fork(parent, CarryInherit)
	require.NoError(t, err)

	assert.Equal(t, 3, next.ModelVersion)
	assert.Equal(t, parent.State.Weights, next.State.Weights)
	assert.Equal(t, 9.0, next.State.Experts[0].Counts[0])

	// Deep copy: training the child must not touch the parent.
	next.State.Weights[0] = 0.99
	next.State.Experts[0].Counts[0] = 100
	assert.Equal(t, 0.4, parent.State.Weights[0])
	assert.Equal(t, 9.0, parent.State.Experts[0].Counts[0])
}

func TestForkUnknownPolicyErrors(t *testing.T) {
	_, err := Fork(trainedParent(), CarryPolicy("merge"))
	assert.Error(t, err)
}

func TestForkInheritClonesWholePool(t *testing.T) {
	parent := trainedParent()
	next, err := Fork(parent, CarryInherit)
	require.NoError(t, err)
	require.Len(t, next.State.Experts, len(parent.State.Experts))
	for i := range next.State.Experts {
		assert.NotSame(t, parent.State.Experts[i], next.State.Experts[i])
		assert.Equal(t, parent.State.Experts[i].Kind, next.State.Experts[i].Kind)
	}
	assert.Equal(t, expert.KindFrequency, next.State.Experts[0].Kind)
}
