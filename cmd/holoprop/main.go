// Command holoprop is a diagnostic harness for the wave package: it reads a
// JSON5 parameter file, propagates a uniform-amplitude source field to every
// configured depth layer, and writes Gray16 intensity images plus a mid-row
// intensity profile plot per layer.
package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/FanchLeroux/odak/wave"
)

func main() {

	programStart := time.Now()

	args := os.Args
	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: holoprop <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w", path, err))
		os.Exit(2)
	}

	jsonTable, err := parseParamFile(data)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w", path, err))
		os.Exit(3)
	}

	var params SimulationParams
	msg, ok := validateJsonFileAndFillParams(jsonTable, &params)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// Check for user wanting printout of the complete parameter table
	if params.ShowInput {
		fmt.Printf("%s", "\nPrintout of complete parameter file contents...\n")
		fmt.Println(string(data))
	}

	if err := run(params); err != nil {
		fmt.Println(fmt.Errorf("\n\t%w", err))
		os.Exit(5)
	}

	fmt.Printf("Total run time: %v\n", time.Since(programStart))
}

func run(params SimulationParams) error {
	model, err := wave.ParseModel(params.PropagationModel)
	if err != nil {
		return err
	}
	strategy, err := wave.ParseStrategy(params.PropagatorType)
	if err != nil {
		return err
	}

	wavelengths := make([]float64, len(params.WavelengthsNm))
	for i, nm := range params.WavelengthsNm {
		wavelengths[i] = nm * 1e-9
	}

	p, err := wave.New(wave.Config{
		Resolution:          [2]int{params.ResolutionHeightPixels, params.ResolutionWidthPixels},
		PixelPitch:          params.PixelPitchM,
		Wavelengths:         wavelengths,
		ResolutionFactor:    params.ResolutionFactor,
		Frames:              params.NumberOfFrames,
		DepthLayers:         params.NumberOfDepthLayers,
		VolumeDepth:         params.VolumeDepthM,
		ImageLocationOffset: params.ImageLocationOffsetM,
		Model:               model,
		Strategy:            strategy,
		ZeroModeDistance:    params.ZeroModeDistanceM,
	})
	if err != nil {
		return fmt.Errorf("building propagator: %w", err)
	}

	if params.ApertureDiameterPixels > 0 {
		if err := p.SetAperture(nil, params.ApertureDiameterPixels); err != nil {
			return fmt.Errorf("setting aperture: %w", err)
		}
	}

	rows := params.ResolutionHeightPixels * max(params.ResolutionFactor, 1)
	cols := params.ResolutionWidthPixels * max(params.ResolutionFactor, 1)
	field, err := uniformSourceField(rows, cols)
	if err != nil {
		return fmt.Errorf("assembling source field: %w", err)
	}

	power := p.ChannelPower()
	distances := p.Distances()
	fieldWidthM := params.PixelPitchM * float64(cols)

	for depth := 0; depth < p.DepthLayers(); depth++ {
		propagationStart := time.Now()

		// One propagation per channel; frames blend channels by the
		// configured power calibration.
		intensities := make([][][]float64, p.Channels())
		for c := 0; c < p.Channels(); c++ {
			out, err := p.Apply(field, c, depth)
			if err != nil {
				return fmt.Errorf("propagating channel %d to layer %d: %w", c, depth, err)
			}
			intensities[c] = wave.Intensity(out)
		}

		for frame := 0; frame < params.NumberOfFrames; frame++ {
			blended := make([][]float64, rows)
			for y := range blended {
				blended[y] = make([]float64, cols)
			}
			for c := 0; c < p.Channels(); c++ {
				if power[frame][c] == 0 {
					continue
				}
				if err := addScaledInPlace(blended, intensities[c], power[frame][c]); err != nil {
					return err
				}
			}

			img, err := MatrixToGray16Data(blended, params.IntensityScale)
			if err != nil {
				return fmt.Errorf("rendering layer %d frame %d: %w", depth, frame, err)
			}
			name := filepath.Join(params.OutputFolder, fmt.Sprintf("intensity_layer%02d_frame%02d.png", depth, frame))
			if err := SaveGray16PNG(name, img); err != nil {
				return err
			}

			if frame == 0 {
				plotImg, err := makeProfilePlotImage(blended[rows/2], fieldWidthM, distances[depth],
					float64(params.PlotWidthPixels), float64(params.PlotHeightPixels))
				if err != nil {
					return fmt.Errorf("plotting layer %d profile: %w", depth, err)
				}
				plotName := filepath.Join(params.OutputFolder, fmt.Sprintf("profile_layer%02d.png", depth))
				if err := saveImagePNG(plotName, plotImg); err != nil {
					return err
				}
			}
		}

		fmt.Printf("Layer %d at %.4f m took %v\n", depth, distances[depth], time.Since(propagationStart))
	}

	return nil
}

// uniformSourceField builds a plane wave of unit amplitude and zero phase.
func uniformSourceField(rows, cols int) ([][]complex128, error) {
	amplitude := make([][]float64, rows)
	phase := make([][]float64, rows)
	for y := range amplitude {
		amplitude[y] = make([]float64, cols)
		phase[y] = make([]float64, cols)
		for x := range amplitude[y] {
			amplitude[y][x] = 1.0
		}
	}
	return wave.FromPolar(amplitude, phase)
}

func saveImagePNG(filename string, img image.Image) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
