package wave

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomField(rng *rand.Rand, h, w int) [][]complex128 {
	field := makeComplex2D(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			field[y][x] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
		}
	}
	return field
}

func assertFieldsClose(t *testing.T, want, got [][]complex128, tol float64) {
	t.Helper()
	require.Equal(t, len(want), len(got))
	for y := range want {
		require.Equal(t, len(want[y]), len(got[y]))
		for x := range want[y] {
			assert.InDelta(t, real(want[y][x]), real(got[y][x]), tol, "row %d col %d (real)", y, x)
			assert.InDelta(t, imag(want[y][x]), imag(got[y][x]), tol, "row %d col %d (imag)", y, x)
		}
	}
}

func TestFFT2CenteredRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	field := randomField(rng, 8, 6)

	spectrum, err := FFT2Centered(field)
	require.NoError(t, err)
	back, err := IFFT2Centered(spectrum)
	require.NoError(t, err)

	assertFieldsClose(t, field, back, 1e-12)
}

func TestFFT2CenteredImpulse(t *testing.T) {
	// An impulse at the buffer center transforms to a flat unit spectrum
	// under the centered shift convention.
	field := makeComplex2D(4, 4)
	field[2][2] = 1

	spectrum, err := FFT2Centered(field)
	require.NoError(t, err)
	for y := range spectrum {
		for x := range spectrum[y] {
			assert.InDelta(t, 1.0, real(spectrum[y][x]), 1e-12)
			assert.InDelta(t, 0.0, imag(spectrum[y][x]), 1e-12)
		}
	}
}

func TestZeroPadCropRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	field := randomField(rng, 6, 10)

	padded, err := ZeroPadCenter(field)
	require.NoError(t, err)
	require.Len(t, padded, 12)
	require.Len(t, padded[0], 20)

	// The guard band is zero.
	assert.Equal(t, complex(0, 0), padded[0][0])
	assert.Equal(t, complex(0, 0), padded[11][19])

	cropped, err := CropCenter(padded)
	require.NoError(t, err)
	assert.Equal(t, field, cropped)
}

func TestZeroPadCenterRejectsBadShapes(t *testing.T) {
	_, err := ZeroPadCenter(nil)
	assert.ErrorIs(t, err, ErrShape)

	ragged := [][]complex128{{1, 2}, {3}}
	_, err = ZeroPadCenter(ragged)
	assert.ErrorIs(t, err, ErrShape)
}

func TestShiftsInvertEachOther(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, dims := range [][2]int{{4, 4}, {5, 7}, {6, 3}} {
		field := randomField(rng, dims[0], dims[1])
		assert.Equal(t, field, ifftshift2D(fftshift2D(field)), "dims %v", dims)
		assert.Equal(t, field, fftshift2D(ifftshift2D(field)), "dims %v", dims)
	}
}
