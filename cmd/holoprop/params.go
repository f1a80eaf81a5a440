package main

import json "github.com/KevinWang15/go-json5"

// SimulationParams collects everything the parameter file can set.
type SimulationParams struct {
	ShowInput              bool
	ResolutionHeightPixels int
	ResolutionWidthPixels  int
	PixelPitchM            float64
	WavelengthsNm          []float64
	ResolutionFactor       int
	NumberOfFrames         int
	NumberOfDepthLayers    int
	VolumeDepthM           float64
	ImageLocationOffsetM   float64
	PropagationModel       string
	PropagatorType         string
	ZeroModeDistanceM      float64
	ApertureDiameterPixels int
	OutputFolder           string
	IntensityScale         float64
	PlotWidthPixels        int
	PlotHeightPixels       int
}

func parseParamFile(data []byte) (map[string]interface{}, error) {
	var jsonTable map[string]interface{}
	err := json.Unmarshal(data, &jsonTable)
	return jsonTable, err
}

func getLeafValue(jsonTable map[string]interface{}, path ...string) (interface{}, bool) {
	var cur interface{} = jsonTable
	for _, p := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func validateJsonFileAndFillParams(jsonTable map[string]interface{}, params *SimulationParams) (string, bool) {
	msg := "No problem found in json file" // Initialize msg to presumed success.

	showInput, ok := getLeafValue(jsonTable, "show_input_bool")
	if !ok {
		params.ShowInput = false // default to false if this field is missing
	} else {
		params.ShowInput, ok = showInput.(bool)
		if !ok {
			return "show_input_bool: is not a bool", false
		}
	}

	height, ok := getLeafValue(jsonTable, "resolution_height_pixels")
	if !ok {
		return "resolution_height_pixels: not found", false
	}
	hVal, ok := height.(float64)
	if !ok {
		return "resolution_height_pixels: is not a number", false
	}
	params.ResolutionHeightPixels = int(hVal)

	width, ok := getLeafValue(jsonTable, "resolution_width_pixels")
	if !ok {
		params.ResolutionWidthPixels = params.ResolutionHeightPixels // default to square
	} else {
		wVal, ok := width.(float64)
		if !ok {
			return "resolution_width_pixels: is not a number", false
		}
		params.ResolutionWidthPixels = int(wVal)
	}

	pitch, ok := getLeafValue(jsonTable, "pixel_pitch_m")
	if !ok {
		return "pixel_pitch_m: not found", false
	}
	params.PixelPitchM, ok = pitch.(float64)
	if !ok {
		return "pixel_pitch_m: is not a number", false
	}

	wavelengths, ok := getLeafValue(jsonTable, "wavelengths_nm")
	if !ok {
		return "wavelengths_nm: not found", false
	}
	wvList, ok := wavelengths.([]interface{})
	if !ok || len(wvList) == 0 {
		return "wavelengths_nm: is not a non-empty array", false
	}
	for _, wv := range wvList {
		v, ok := wv.(float64)
		if !ok {
			return "wavelengths_nm: contains a non-number entry", false
		}
		params.WavelengthsNm = append(params.WavelengthsNm, v)
	}

	factor, ok := getLeafValue(jsonTable, "resolution_factor")
	if !ok {
		params.ResolutionFactor = 1
	} else {
		fVal, ok := factor.(float64)
		if !ok {
			return "resolution_factor: is not a number", false
		}
		params.ResolutionFactor = int(fVal)
	}

	frames, ok := getLeafValue(jsonTable, "number_of_frames")
	if !ok {
		params.NumberOfFrames = len(params.WavelengthsNm)
	} else {
		fVal, ok := frames.(float64)
		if !ok {
			return "number_of_frames: is not a number", false
		}
		params.NumberOfFrames = int(fVal)
	}

	layers, ok := getLeafValue(jsonTable, "number_of_depth_layers")
	if !ok {
		params.NumberOfDepthLayers = 1
	} else {
		lVal, ok := layers.(float64)
		if !ok {
			return "number_of_depth_layers: is not a number", false
		}
		params.NumberOfDepthLayers = int(lVal)
	}

	volume, ok := getLeafValue(jsonTable, "volume_depth_m")
	if !ok {
		params.VolumeDepthM = 1e-2
	} else {
		params.VolumeDepthM, ok = volume.(float64)
		if !ok {
			return "volume_depth_m: is not a number", false
		}
	}

	offset, ok := getLeafValue(jsonTable, "image_location_offset_m")
	if !ok {
		params.ImageLocationOffsetM = 5e-3
	} else {
		params.ImageLocationOffsetM, ok = offset.(float64)
		if !ok {
			return "image_location_offset_m: is not a number", false
		}
	}

	model, ok := getLeafValue(jsonTable, "propagation_model")
	if !ok {
		params.PropagationModel = "bandlimited angular spectrum"
	} else {
		params.PropagationModel, ok = model.(string)
		if !ok {
			return "propagation_model: is not a string", false
		}
	}

	ptype, ok := getLeafValue(jsonTable, "propagator_type")
	if !ok {
		params.PropagatorType = "forward"
	} else {
		params.PropagatorType, ok = ptype.(string)
		if !ok {
			return "propagator_type: is not a string", false
		}
	}

	zeroMode, ok := getLeafValue(jsonTable, "zero_mode_distance_m")
	if !ok {
		params.ZeroModeDistanceM = 0.3
	} else {
		params.ZeroModeDistanceM, ok = zeroMode.(float64)
		if !ok {
			return "zero_mode_distance_m: is not a number", false
		}
	}

	aperture, ok := getLeafValue(jsonTable, "aperture_diameter_pixels")
	if !ok {
		params.ApertureDiameterPixels = 0 // 0 selects the default diameter
	} else {
		aVal, ok := aperture.(float64)
		if !ok {
			return "aperture_diameter_pixels: is not a number", false
		}
		params.ApertureDiameterPixels = int(aVal)
	}

	folder, ok := getLeafValue(jsonTable, "output_folder")
	if !ok {
		params.OutputFolder = "."
	} else {
		params.OutputFolder, ok = folder.(string)
		if !ok {
			return "output_folder: is not a string", false
		}
	}

	scale, ok := getLeafValue(jsonTable, "intensity_scale")
	if !ok {
		params.IntensityScale = 4000.0
	} else {
		params.IntensityScale, ok = scale.(float64)
		if !ok {
			return "intensity_scale: is not a number", false
		}
	}

	plotW, ok := getLeafValue(jsonTable, "plot_width_pixels")
	if !ok {
		params.PlotWidthPixels = 1200
	} else {
		wVal, ok := plotW.(float64)
		if !ok {
			return "plot_width_pixels: is not a number", false
		}
		params.PlotWidthPixels = int(wVal)
	}

	plotH, ok := getLeafValue(jsonTable, "plot_height_pixels")
	if !ok {
		params.PlotHeightPixels = 500
	} else {
		hVal, ok := plotH.(float64)
		if !ok {
			return "plot_height_pixels: is not a number", false
		}
		params.PlotHeightPixels = int(hVal)
	}

	return msg, true
}
