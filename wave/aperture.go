package wave

import "fmt"

// CircularBinaryMask rasterizes a centered disk of ones into a rows x cols
// buffer. diameter is measured in samples.
func CircularBinaryMask(rows, cols, diameter int) [][]float64 {
	mask := makeReal2D(rows, cols)
	cy := float64(rows) / 2.0
	cx := float64(cols) / 2.0
	r2 := float64(diameter) * float64(diameter) / 4.0
	for y := 0; y < rows; y++ {
		dy := float64(y) - cy
		for x := 0; x < cols; x++ {
			dx := float64(x) - cx
			if dy*dy+dx*dx < r2 {
				mask[y][x] = 1.0
			}
		}
	}
	return mask
}

// padMaskTo centers an amplitude mask inside a rows x cols buffer of zeros.
// A mask larger than the target cannot be padded and fails with ErrShape.
func padMaskTo(mask [][]float64, rows, cols int) ([][]float64, error) {
	h, w, err := realSize(mask)
	if err != nil {
		return nil, fmt.Errorf("aperture mask: %w", err)
	}
	if h > rows || w > cols {
		return nil, fmt.Errorf("%w: aperture mask %dx%d exceeds padded shape %dx%d", ErrShape, h, w, rows, cols)
	}
	out := makeReal2D(rows, cols)
	offY := (rows - h) / 2
	offX := (cols - w) / 2
	for y := 0; y < h; y++ {
		copy(out[y+offY][offX:offX+w], mask[y])
	}
	return out, nil
}
