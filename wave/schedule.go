package wave

import "gonum.org/v1/gonum/floats"

// depthDistances spaces layers linearly across [-volumeDepth/2,
// +volumeDepth/2] and shifts the whole schedule by offset. A single layer
// sits at the linspace start, matching the upstream convention.
func depthDistances(volumeDepth, offset float64, layers int) []float64 {
	distances := Linspace(-volumeDepth/2.0, volumeDepth/2.0, layers)
	floats.AddConst(offset, distances)
	return distances
}

// identityChannelPower builds the default frames x channels calibration:
// frame i draws on channel i at full power and nothing else.
func identityChannelPower(frames, channels int) [][]float64 {
	power := makeReal2D(frames, channels)
	for i := 0; i < frames && i < channels; i++ {
		power[i][i] = 1.0
	}
	return power
}

// onesPhaseScale is the default per-primary phase scale. A spatial light
// modulator calibrated for one central wavelength may want these ratios
// adjusted per color primary.
func onesPhaseScale(channels int) []float64 {
	scale := make([]float64, channels)
	for i := range scale {
		scale[i] = 1.0
	}
	return scale
}
