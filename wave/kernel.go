package wave

import (
	"fmt"
	"math"
	"math/cmplx"
)

// PropagationModel selects the transfer-function family used to build
// kernels.
type PropagationModel int

const (
	// BandLimitedAngularSpectrum is the reference model: the angular
	// spectrum transfer function with the frequencies that would alias
	// under discrete sampling suppressed.
	BandLimitedAngularSpectrum PropagationModel = iota
	// AngularSpectrum is the plain (unfiltered) angular spectrum transfer
	// function. Evanescent components are zeroed.
	AngularSpectrum
	// TransferFunctionFresnel is the paraxial quadratic-phase transfer
	// function.
	TransferFunctionFresnel
)

func (m PropagationModel) String() string {
	switch m {
	case BandLimitedAngularSpectrum:
		return "bandlimited angular spectrum"
	case AngularSpectrum:
		return "angular spectrum"
	case TransferFunctionFresnel:
		return "transfer function fresnel"
	}
	return fmt.Sprintf("PropagationModel(%d)", int(m))
}

// ParseModel maps a parameter-file spelling to a PropagationModel. Matching
// ignores case and treats underscores as spaces.
func ParseModel(s string) (PropagationModel, error) {
	switch normalizeName(s) {
	case "bandlimited angular spectrum", "band limited angular spectrum":
		return BandLimitedAngularSpectrum, nil
	case "angular spectrum":
		return AngularSpectrum, nil
	case "transfer function fresnel":
		return TransferFunctionFresnel, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, s)
}

// GenerateKernel builds a complex transfer function of shape (rows, cols)
// for one propagation over distance meters. dx is the sampling pitch in
// meters and wavelength the channel wavelength in meters. scale is the
// resolution factor the rows/cols were upsampled by; the frequency-domain
// models here take their sampling geometry from rows, cols and dx directly,
// so it only participates in validation.
//
// Unsupported models fail with ErrUnknownModel rather than falling back to
// an approximation.
func GenerateKernel(rows, cols int, dx, wavelength, distance float64, model PropagationModel, scale int) ([][]complex128, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: kernel shape %dx%d", ErrShape, rows, cols)
	}
	if scale < 1 {
		return nil, fmt.Errorf("%w: resolution factor %d", ErrShape, scale)
	}
	switch model {
	case BandLimitedAngularSpectrum:
		return bandLimitedAngularSpectrumKernel(rows, cols, dx, wavelength, distance), nil
	case AngularSpectrum:
		return angularSpectrumKernel(rows, cols, dx, wavelength, distance), nil
	case TransferFunctionFresnel:
		return transferFunctionFresnelKernel(rows, cols, dx, wavelength, distance), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownModel, model)
}

// bandLimitedAngularSpectrumKernel follows Matsushima & Shimobaba's
// band-limited formulation: the exact angular-spectrum phase, with a
// rectangular frequency bound derived from the aperture extent and the
// propagation distance.
func bandLimitedAngularSpectrumKernel(rows, cols int, dx, wavelength, distance float64) [][]complex128 {
	// Physical extent of the sampled aperture along each axis.
	sizeY := dx * float64(rows)
	sizeX := dx * float64(cols)

	fy := freqAxis(rows, dx, sizeY)
	fx := freqAxis(cols, dx, sizeX)

	// Frequency bound beyond which the sampled kernel phase would alias.
	fyMax := 1.0 / math.Sqrt(pow2(2.0*distance/sizeY)+1.0) / wavelength
	fxMax := 1.0 / math.Sqrt(pow2(2.0*distance/sizeX)+1.0) / wavelength

	invLambda2 := 1.0 / (wavelength * wavelength)

	kernel := makeComplex2D(rows, cols)
	for y := 0; y < rows; y++ {
		fy2 := fy[y] * fy[y]
		for x := 0; x < cols; x++ {
			arg := invLambda2 - fy2 - fx[x]*fx[x]
			if arg < 0 || math.Abs(fy[y]) >= fyMax || math.Abs(fx[x]) >= fxMax {
				continue
			}
			phase := 2.0 * math.Pi * distance * math.Sqrt(arg)
			kernel[y][x] = cmplx.Rect(1.0, phase)
		}
	}
	return kernel
}

// angularSpectrumKernel is the exact transfer function without the band
// limit. Evanescent components (spatial frequencies above 1/wavelength) are
// zeroed rather than allowed to decay, keeping the kernel unit-modulus where
// it is nonzero.
func angularSpectrumKernel(rows, cols int, dx, wavelength, distance float64) [][]complex128 {
	fy := Linspace(-0.5/dx, 0.5/dx, rows)
	fx := Linspace(-0.5/dx, 0.5/dx, cols)

	k := Wavenumber(wavelength)
	kernel := makeComplex2D(rows, cols)
	for y := 0; y < rows; y++ {
		ly2 := pow2(wavelength * fy[y])
		for x := 0; x < cols; x++ {
			arg := 1.0 - ly2 - pow2(wavelength*fx[x])
			if arg < 0 {
				continue
			}
			kernel[y][x] = cmplx.Rect(1.0, k*distance*math.Sqrt(arg))
		}
	}
	return kernel
}

// transferFunctionFresnelKernel is the paraxial approximation: a constant
// plane-wave phase times a quadratic phase in frequency.
func transferFunctionFresnelKernel(rows, cols int, dx, wavelength, distance float64) [][]complex128 {
	fy := Linspace(-0.5/dx, 0.5/dx, rows)
	fx := Linspace(-0.5/dx, 0.5/dx, cols)

	k := Wavenumber(wavelength)
	kernel := makeComplex2D(rows, cols)
	for y := 0; y < rows; y++ {
		fy2 := fy[y] * fy[y]
		for x := 0; x < cols; x++ {
			phase := k*distance - math.Pi*wavelength*distance*(fy2+fx[x]*fx[x])
			kernel[y][x] = cmplx.Rect(1.0, phase)
		}
	}
	return kernel
}

// freqAxis builds the centered frequency sampling for one axis, offset by a
// half sample so the grid stays symmetric about zero.
func freqAxis(n int, dx, size float64) []float64 {
	return Linspace(-1.0/(2.0*dx)+0.5/(2.0*size), 1.0/(2.0*dx)-0.5/(2.0*size), n)
}

func pow2(v float64) float64 { return v * v }

func normalizeName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r == '_' || r == '-':
			out = append(out, ' ')
		case 'A' <= r && r <= 'Z':
			out = append(out, r+('a'-'A'))
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
