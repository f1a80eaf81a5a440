package wave

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPitch      = 8e-6
	testWavelength = 515e-9
)

func TestGenerateKernelZeroDistanceIsIdentity(t *testing.T) {
	for _, model := range []PropagationModel{BandLimitedAngularSpectrum, AngularSpectrum, TransferFunctionFresnel} {
		kernel, err := GenerateKernel(8, 8, testPitch, testWavelength, 0, model, 1)
		require.NoError(t, err, model.String())
		for y := range kernel {
			for x := range kernel[y] {
				assert.InDelta(t, 1.0, real(kernel[y][x]), 1e-12, "%v at %d,%d", model, y, x)
				assert.InDelta(t, 0.0, imag(kernel[y][x]), 1e-12, "%v at %d,%d", model, y, x)
			}
		}
	}
}

func TestGenerateKernelUnitModulus(t *testing.T) {
	// Transfer functions only rotate phase; every nonzero entry has
	// magnitude one.
	for _, model := range []PropagationModel{BandLimitedAngularSpectrum, AngularSpectrum, TransferFunctionFresnel} {
		kernel, err := GenerateKernel(16, 12, testPitch, testWavelength, 5e-3, model, 1)
		require.NoError(t, err, model.String())
		for y := range kernel {
			for x := range kernel[y] {
				mod := cmplx.Abs(kernel[y][x])
				if mod != 0 {
					assert.InDelta(t, 1.0, mod, 1e-12, "%v at %d,%d", model, y, x)
				}
			}
		}
	}
}

func TestBandLimitSuppressesHighFrequencies(t *testing.T) {
	// At a long throw the band limit collapses to a few samples around the
	// spectrum center; the corners must be zeroed.
	kernel, err := GenerateKernel(64, 64, testPitch, testWavelength, 0.5, BandLimitedAngularSpectrum, 1)
	require.NoError(t, err)

	assert.Equal(t, complex(0, 0), kernel[0][0])
	assert.Equal(t, complex(0, 0), kernel[63][63])
	// The near-axis samples survive.
	assert.InDelta(t, 1.0, cmplx.Abs(kernel[31][31]), 1e-12)
	assert.InDelta(t, 1.0, cmplx.Abs(kernel[32][32]), 1e-12)
}

func TestGenerateKernelUnknownModel(t *testing.T) {
	_, err := GenerateKernel(8, 8, testPitch, testWavelength, 1e-3, PropagationModel(42), 1)
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestGenerateKernelRejectsBadShape(t *testing.T) {
	_, err := GenerateKernel(0, 8, testPitch, testWavelength, 0, BandLimitedAngularSpectrum, 1)
	assert.ErrorIs(t, err, ErrShape)
	_, err = GenerateKernel(8, 8, testPitch, testWavelength, 0, BandLimitedAngularSpectrum, 0)
	assert.ErrorIs(t, err, ErrShape)
}

func TestParseModel(t *testing.T) {
	cases := map[string]PropagationModel{
		"Bandlimited Angular Spectrum":  BandLimitedAngularSpectrum,
		"band_limited_angular_spectrum": BandLimitedAngularSpectrum,
		"Angular Spectrum":              AngularSpectrum,
		"transfer function fresnel":     TransferFunctionFresnel,
	}
	for in, want := range cases {
		got, err := ParseModel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseModel("impulse response fresnel")
	assert.ErrorIs(t, err, ErrUnknownModel)
}
