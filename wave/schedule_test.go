package wave

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepthDistancesSpacing(t *testing.T) {
	distances := depthDistances(1e-2, 5e-3, 5)

	want := []float64{0.0, 2.5e-3, 5e-3, 7.5e-3, 1e-2}
	require.Len(t, distances, 5)
	for i := range want {
		assert.InDelta(t, want[i], distances[i], 1e-15, "layer %d", i)
	}
	assert.True(t, sort.Float64sAreSorted(distances))
}

func TestDepthDistancesSingleLayer(t *testing.T) {
	// One layer sits at the linspace start: offset - volume/2.
	distances := depthDistances(1e-2, 5e-3, 1)
	require.Len(t, distances, 1)
	assert.InDelta(t, 0.0, distances[0], 1e-15)
}

func TestIdentityChannelPower(t *testing.T) {
	power := identityChannelPower(3, 2)
	assert.Equal(t, [][]float64{{1, 0}, {0, 1}, {0, 0}}, power)

	wide := identityChannelPower(1, 3)
	assert.Equal(t, [][]float64{{1, 0, 0}}, wide)
}

func TestOnesPhaseScale(t *testing.T) {
	assert.Equal(t, []float64{1, 1, 1}, onesPhaseScale(3))
}
