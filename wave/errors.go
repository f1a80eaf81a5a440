package wave

import "errors"

// Sentinel errors returned by the wave package. Callers should test with
// errors.Is because most sites wrap these with additional context.
var (
	// ErrShape is returned when a matrix is empty, ragged, or cannot be
	// padded/cropped to the shape a function requires.
	ErrShape = errors.New("wave: bad matrix shape")

	// ErrShapeMismatch is returned when a kernel's shape disagrees with the
	// padded field shape it must multiply.
	ErrShapeMismatch = errors.New("wave: kernel shape does not match padded field")

	// ErrUnknownStrategy is returned for a propagator strategy that is
	// neither StrategyForward nor StrategyBackAndForth.
	ErrUnknownStrategy = errors.New("wave: unknown propagator strategy")

	// ErrUnknownModel is returned when kernel generation is asked for a
	// propagation model it does not implement.
	ErrUnknownModel = errors.New("wave: unknown propagation model")

	// ErrChannelIndex is returned for a channel id outside the configured
	// wavelength list.
	ErrChannelIndex = errors.New("wave: channel id out of range")

	// ErrDepthIndex is returned for a depth id outside the configured depth
	// schedule.
	ErrDepthIndex = errors.New("wave: depth id out of range")
)
