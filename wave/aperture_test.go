package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircularBinaryMask(t *testing.T) {
	mask := CircularBinaryMask(8, 8, 4)

	// Centered disk: the center sample and its 8-neighborhood fall inside
	// a radius-2 circle, nothing else does.
	sum := 0.0
	for _, row := range mask {
		for _, v := range row {
			sum += v
		}
	}
	assert.Equal(t, 9.0, sum)
	assert.Equal(t, 1.0, mask[4][4])
	assert.Equal(t, 1.0, mask[3][3])
	assert.Equal(t, 0.0, mask[4][6])
	assert.Equal(t, 0.0, mask[0][0])
}

func TestPadMaskToCenters(t *testing.T) {
	mask := [][]float64{{1, 1}, {1, 1}}
	padded, err := padMaskTo(mask, 6, 6)
	require.NoError(t, err)

	require.Len(t, padded, 6)
	require.Len(t, padded[0], 6)
	sum := 0.0
	for _, row := range padded {
		for _, v := range row {
			sum += v
		}
	}
	assert.Equal(t, 4.0, sum)
	assert.Equal(t, 1.0, padded[2][2])
	assert.Equal(t, 1.0, padded[3][3])
	assert.Equal(t, 0.0, padded[1][2])
}

func TestPadMaskToRejectsOversized(t *testing.T) {
	mask := makeReal2D(8, 8)
	_, err := padMaskTo(mask, 6, 6)
	assert.ErrorIs(t, err, ErrShape)
}

func TestPadMaskToRejectsRagged(t *testing.T) {
	mask := [][]float64{{1, 1}, {1}}
	_, err := padMaskTo(mask, 6, 6)
	assert.ErrorIs(t, err, ErrShape)
}
