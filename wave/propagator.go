package wave

import (
	"fmt"
	"log"
)

// PropagatorStrategy selects how kernels are composed per depth layer.
type PropagatorStrategy int

const (
	// StrategyForward uses a single transfer function straight to the
	// layer distance.
	StrategyForward PropagatorStrategy = iota
	// StrategyBackAndForth composes an outward leg at the zero-mode
	// distance with a corrective return leg, which reproduces realistic
	// defocus blur better than a single idealized kernel.
	StrategyBackAndForth
)

func (s PropagatorStrategy) String() string {
	switch s {
	case StrategyForward:
		return "forward"
	case StrategyBackAndForth:
		return "back and forth"
	}
	return fmt.Sprintf("PropagatorStrategy(%d)", int(s))
}

// ParseStrategy maps a parameter-file spelling to a PropagatorStrategy.
// Matching ignores case and treats underscores as spaces.
func ParseStrategy(s string) (PropagatorStrategy, error) {
	switch normalizeName(s) {
	case "forward":
		return StrategyForward, nil
	case "back and forth":
		return StrategyBackAndForth, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Config describes a Propagator. It is copied at construction and immutable
// afterwards.
type Config struct {
	// Resolution is the unscaled field shape as {height, width} in pixels.
	Resolution [2]int
	// PixelPitch is the sample spacing in meters.
	PixelPitch float64
	// Wavelengths lists one wavelength in meters per color channel. The
	// channel count of the propagator is len(Wavelengths).
	Wavelengths []float64
	// ResolutionFactor upsamples the internal buffers; fields enter Apply
	// at (height*factor, width*factor). Zero means 1.
	ResolutionFactor int
	// Frames is the number of hologram frames, typically one per color
	// primary. Zero means 1.
	Frames int
	// DepthLayers is the number of equidistant depth layers spanning the
	// volume. Zero means 1.
	DepthLayers int
	// VolumeDepth is the extent of the target volume along the propagation
	// direction, in meters.
	VolumeDepth float64
	// ImageLocationOffset shifts the center of the volume along the
	// propagation direction, in meters.
	ImageLocationOffset float64
	// Model is the transfer-function family used for every kernel.
	Model PropagationModel
	// Strategy selects forward or back-and-forth kernel composition.
	Strategy PropagatorStrategy
	// ZeroModeDistance is the outward-leg distance used only by
	// StrategyBackAndForth.
	ZeroModeDistance float64
	// ChannelPower optionally calibrates how much of each wavelength's
	// power contributes to each frame (Frames x channels). Nil selects the
	// identity mapping.
	ChannelPower [][]float64
	// Aperture optionally supplies an amplitude mask for the Fourier
	// plane; it is zero-padded to the padded buffer shape. Nil selects a
	// centered circular mask.
	Aperture [][]float64
}

// Propagator carries complex fields from a source plane to configured depth
// layers through frequency-domain transfer functions. It owns its aperture,
// depth schedule and kernel cache; fields passed to Apply stay owned by the
// caller.
//
// A Propagator is not safe for concurrent use: the kernel cache performs a
// check-then-generate-then-store sequence that callers must serialize
// externally.
type Propagator struct {
	cfg      Config
	channels int

	distances    []float64
	channelPower [][]float64
	phaseScale   []float64
	aperture     [][]float64
	cache        *kernelCache
}

// New validates cfg and builds a Propagator. The propagator strategy is
// checked eagerly; the propagation model is only exercised (and can only
// fail) on first kernel generation, mirroring the lazy cache.
func New(cfg Config) (*Propagator, error) {
	if cfg.Resolution[0] <= 0 || cfg.Resolution[1] <= 0 {
		return nil, fmt.Errorf("%w: resolution %dx%d", ErrShape, cfg.Resolution[0], cfg.Resolution[1])
	}
	if cfg.PixelPitch <= 0 {
		return nil, fmt.Errorf("wave: pixel pitch must be positive, got %g", cfg.PixelPitch)
	}
	if len(cfg.Wavelengths) == 0 {
		return nil, fmt.Errorf("wave: at least one wavelength required")
	}
	if cfg.ResolutionFactor == 0 {
		cfg.ResolutionFactor = 1
	}
	if cfg.ResolutionFactor < 1 {
		return nil, fmt.Errorf("wave: resolution factor must be >= 1, got %d", cfg.ResolutionFactor)
	}
	if cfg.Frames == 0 {
		cfg.Frames = 1
	}
	if cfg.DepthLayers == 0 {
		cfg.DepthLayers = 1
	}
	if cfg.VolumeDepth < 0 {
		return nil, fmt.Errorf("wave: volume depth must be non-negative, got %g", cfg.VolumeDepth)
	}
	if cfg.Strategy != StrategyForward && cfg.Strategy != StrategyBackAndForth {
		return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, cfg.Strategy)
	}

	p := &Propagator{
		cfg:      cfg,
		channels: len(cfg.Wavelengths),
	}
	p.distances = depthDistances(cfg.VolumeDepth, cfg.ImageLocationOffset, cfg.DepthLayers)
	log.Printf("wave: depth schedule %v", p.distances)

	p.channelPower = cfg.ChannelPower
	if p.channelPower == nil {
		p.channelPower = identityChannelPower(cfg.Frames, p.channels)
	}
	p.phaseScale = onesPhaseScale(p.channels)
	p.cache = newKernelCache(cfg.DepthLayers, p.channels)

	if err := p.SetAperture(cfg.Aperture, 0); err != nil {
		return nil, err
	}
	return p, nil
}

// scaledRows/scaledCols are the field shape Apply expects; padded* are the
// internal buffer shape shared by kernels and the aperture.
func (p *Propagator) scaledRows() int { return p.cfg.Resolution[0] * p.cfg.ResolutionFactor }
func (p *Propagator) scaledCols() int { return p.cfg.Resolution[1] * p.cfg.ResolutionFactor }
func (p *Propagator) paddedRows() int { return 2 * p.scaledRows() }
func (p *Propagator) paddedCols() int { return 2 * p.scaledCols() }

// Channels returns the number of configured color channels.
func (p *Propagator) Channels() int { return p.channels }

// DepthLayers returns the number of configured depth layers.
func (p *Propagator) DepthLayers() int { return p.cfg.DepthLayers }

// Distances returns a copy of the depth schedule in meters.
func (p *Propagator) Distances() []float64 {
	out := make([]float64, len(p.distances))
	copy(out, p.distances)
	return out
}

// ChannelPower returns the frames x channels power calibration matrix.
func (p *Propagator) ChannelPower() [][]float64 {
	return cloneReal2D(p.channelPower)
}

// SetChannelPower replaces the power calibration matrix. The shape is the
// caller's responsibility; propagation itself never consumes it.
func (p *Propagator) SetChannelPower(power [][]float64) {
	p.channelPower = power
}

// PhaseScale returns the per-primary phase scale vector (all ones by
// default).
func (p *Propagator) PhaseScale() []float64 {
	out := make([]float64, len(p.phaseScale))
	copy(out, p.phaseScale)
	return out
}

// Aperture returns a copy of the current Fourier-plane mask at the padded
// buffer shape.
func (p *Propagator) Aperture() [][]float64 {
	return cloneReal2D(p.aperture)
}

// SetAperture replaces the Fourier-plane mask. With mask == nil a centered
// circular binary mask is synthesized; its diameter is diameter samples, or
// the larger of the scaled height and width when diameter is zero. A
// non-nil mask is zero-padded to the padded buffer shape and fails with
// ErrShape when it does not fit.
//
// Replacing the aperture deliberately leaves already-cached kernels alone:
// the mask multiplies the spectrum at propagation time and is never baked
// into a kernel. Callers that change geometry out-of-band should also call
// ResetKernels.
func (p *Propagator) SetAperture(mask [][]float64, diameter int) error {
	rows := p.paddedRows()
	cols := p.paddedCols()
	if mask == nil {
		if diameter == 0 {
			diameter = max(p.scaledRows(), p.scaledCols())
		}
		p.aperture = CircularBinaryMask(rows, cols, diameter)
		return nil
	}
	padded, err := padMaskTo(mask, rows, cols)
	if err != nil {
		return err
	}
	p.aperture = padded
	return nil
}

// ResetKernels empties the kernel cache, forcing regeneration on next use.
func (p *Propagator) ResetKernels() {
	p.cache.reset()
}

// Apply propagates field through the configured model to the given depth
// layer and channel. The field must have the scaled resolution
// (height*factor, width*factor); the result has the same shape. Repeated
// calls for the same (depth, channel) pair reuse the cached kernel.
func (p *Propagator) Apply(field [][]complex128, channelID, depthID int) ([][]complex128, error) {
	if channelID < 0 || channelID >= p.channels {
		return nil, fmt.Errorf("%w: %d (have %d channels)", ErrChannelIndex, channelID, p.channels)
	}
	if depthID < 0 || depthID >= p.cfg.DepthLayers {
		return nil, fmt.Errorf("%w: %d (have %d layers)", ErrDepthIndex, depthID, p.cfg.DepthLayers)
	}
	kernel, err := p.cache.getOrCreate(depthID, channelID, func() ([][]complex128, error) {
		return p.buildKernel(channelID, depthID)
	})
	if err != nil {
		return nil, err
	}
	return p.Propagate(field, kernel)
}

// buildKernel produces the transfer function for one cache slot. The
// back-and-forth strategy composes an outward leg at the zero-mode distance
// with a return leg covering the residual distance to the layer.
func (p *Propagator) buildKernel(channelID, depthID int) ([][]complex128, error) {
	distance := p.distances[depthID]
	wavelength := p.cfg.Wavelengths[channelID]
	rows := p.paddedRows()
	cols := p.paddedCols()

	switch p.cfg.Strategy {
	case StrategyForward:
		return GenerateKernel(rows, cols, p.cfg.PixelPitch, wavelength, distance, p.cfg.Model, p.cfg.ResolutionFactor)

	case StrategyBackAndForth:
		there, err := GenerateKernel(rows, cols, p.cfg.PixelPitch, wavelength, p.cfg.ZeroModeDistance, p.cfg.Model, p.cfg.ResolutionFactor)
		if err != nil {
			return nil, err
		}
		distanceBack := -(p.cfg.ZeroModeDistance + p.cfg.ImageLocationOffset - distance)
		back, err := GenerateKernel(rows, cols, p.cfg.PixelPitch, wavelength, distanceBack, p.cfg.Model, p.cfg.ResolutionFactor)
		if err != nil {
			return nil, err
		}
		for y := range there {
			for x := range there[y] {
				there[y][x] *= back[y][x]
			}
		}
		return there, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownStrategy, p.cfg.Strategy)
}

// Propagate runs the engine with an explicit kernel: zero-pad, centered
// forward transform, elementwise multiply by kernel and aperture, centered
// inverse transform, centered crop back to the input shape. The transform
// is linear in field for a fixed kernel and aperture.
func (p *Propagator) Propagate(field, kernel [][]complex128) ([][]complex128, error) {
	padded, err := ZeroPadCenter(field)
	if err != nil {
		return nil, err
	}
	ph, pw, _ := complexSize(padded)
	if ph != p.paddedRows() || pw != p.paddedCols() {
		return nil, fmt.Errorf("%w: field pads to %dx%d, propagator buffers are %dx%d", ErrShape, ph, pw, p.paddedRows(), p.paddedCols())
	}
	kh, kw, err := complexSize(kernel)
	if err != nil {
		return nil, err
	}
	if kh != ph || kw != pw {
		return nil, fmt.Errorf("%w: kernel %dx%d, padded field %dx%d", ErrShapeMismatch, kh, kw, ph, pw)
	}

	spectrum, err := FFT2Centered(padded)
	if err != nil {
		return nil, err
	}
	for y := 0; y < ph; y++ {
		for x := 0; x < pw; x++ {
			spectrum[y][x] *= kernel[y][x] * complex(p.aperture[y][x], 0)
		}
	}
	result, err := IFFT2Centered(spectrum)
	if err != nil {
		return nil, err
	}
	return CropCenter(result)
}

// Kernels inverse-transforms every generated kernel back to the spatial
// domain and returns per-slot amplitude and phase grids at the padded
// shape, indexed depth*Channels()+channel. Slots that were never generated
// come back as zero grids.
func (p *Propagator) Kernels() (amplitudes, phases [][][]float64, err error) {
	rows := p.paddedRows()
	cols := p.paddedCols()
	n := p.cfg.DepthLayers * p.channels
	amplitudes = make([][][]float64, n)
	phases = make([][][]float64, n)
	for d := 0; d < p.cfg.DepthLayers; d++ {
		for c := 0; c < p.channels; c++ {
			i := d*p.channels + c
			if !p.cache.generated(d, c) {
				amplitudes[i] = makeReal2D(rows, cols)
				phases[i] = makeReal2D(rows, cols)
				continue
			}
			spatial, ierr := IFFT2Centered(p.cache.entries[p.cache.slot(d, c)])
			if ierr != nil {
				return nil, nil, ierr
			}
			amplitudes[i] = Amplitude(spatial)
			phases[i] = Phase(spatial)
		}
	}
	return amplitudes, phases, nil
}
