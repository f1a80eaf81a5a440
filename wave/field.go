// Package wave implements free-space light propagation between parallel
// planes for computer-generated holography. A Propagator carries a complex
// optical field (amplitude and phase) from a source plane to one of several
// depth layers by multiplying the field's centered spectrum with a cached
// frequency-domain transfer function.
package wave

import (
	"math"
	"math/cmplx"
)

// Amplitude returns the elementwise magnitude of a complex field.
func Amplitude(field [][]complex128) [][]float64 {
	out := make([][]float64, len(field))
	for y, row := range field {
		out[y] = make([]float64, len(row))
		for x, v := range row {
			out[y][x] = cmplx.Abs(v)
		}
	}
	return out
}

// Phase returns the elementwise argument of a complex field in radians.
func Phase(field [][]complex128) [][]float64 {
	out := make([][]float64, len(field))
	for y, row := range field {
		out[y] = make([]float64, len(row))
		for x, v := range row {
			out[y][x] = cmplx.Phase(v)
		}
	}
	return out
}

// Intensity returns the elementwise squared magnitude of a complex field,
// the quantity a detector would record.
func Intensity(field [][]complex128) [][]float64 {
	out := make([][]float64, len(field))
	for y, row := range field {
		out[y] = make([]float64, len(row))
		for x, v := range row {
			out[y][x] = real(v)*real(v) + imag(v)*imag(v)
		}
	}
	return out
}

// FromPolar assembles a complex field from an amplitude matrix and a phase
// matrix of the same shape.
func FromPolar(amplitude, phase [][]float64) ([][]complex128, error) {
	h, w, err := realSize(amplitude)
	if err != nil {
		return nil, err
	}
	ph, pw, err := realSize(phase)
	if err != nil {
		return nil, err
	}
	if ph != h || pw != w {
		return nil, ErrShape
	}
	field := makeComplex2D(h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			field[y][x] = cmplx.Rect(amplitude[y][x], phase[y][x])
		}
	}
	return field, nil
}

// Wavenumber returns 2*pi/wavelength.
func Wavenumber(wavelength float64) float64 {
	return 2.0 * math.Pi / wavelength
}

// Linspace This is provided to match numpy's linspace()
func Linspace(start, end float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}

	step := (end - start) / float64(n-1)

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = start + float64(i)*step
	}
	return x
}

// -------------------- matrix utility --------------------

func makeComplex2D(h, w int) [][]complex128 {
	m := make([][]complex128, h)
	for i := range m {
		m[i] = make([]complex128, w)
	}
	return m
}

func makeReal2D(h, w int) [][]float64 {
	m := make([][]float64, h)
	for i := range m {
		m[i] = make([]float64, w)
	}
	return m
}

func cloneComplex2D(m [][]complex128) [][]complex128 {
	out := make([][]complex128, len(m))
	for i, row := range m {
		out[i] = make([]complex128, len(row))
		copy(out[i], row)
	}
	return out
}

func cloneReal2D(m [][]float64) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		copy(out[i], row)
	}
	return out
}

// complexSize reports the dimensions of a complex matrix, rejecting empty
// and ragged inputs.
func complexSize(m [][]complex128) (h, w int, err error) {
	h = len(m)
	if h == 0 {
		return 0, 0, ErrShape
	}
	w = len(m[0])
	if w == 0 {
		return 0, 0, ErrShape
	}
	for i := 1; i < h; i++ {
		if len(m[i]) != w {
			return 0, 0, ErrShape
		}
	}
	return h, w, nil
}

func realSize(m [][]float64) (h, w int, err error) {
	h = len(m)
	if h == 0 {
		return 0, 0, ErrShape
	}
	w = len(m[0])
	if w == 0 {
		return 0, 0, ErrShape
	}
	for i := 1; i < h; i++ {
		if len(m[i]) != w {
			return 0, 0, ErrShape
		}
	}
	return h, w, nil
}
