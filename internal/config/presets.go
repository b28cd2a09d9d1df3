package config

// Dose presets per builtin model. The nhanes grids match the exposure
// levels used when validating simulated dose-response against the
// population data.
var Presets = map[string]map[string][]float64{
	"oxidative_core": {
		"default": {0, 1, 5, 10},
		"fine":    {0, 0.5, 1, 2, 5, 7.5, 10},
	},
	"lead_endothelial": {
		"nhanes": {0, 1, 5, 10, 20},
		"low":    {0, 0.25, 0.5, 1, 2},
		"high":   {10, 20, 50},
	},
	"lead_macrophage": {
		"nhanes": {0, 1, 5, 10, 20},
		"acute":  {0, 5, 25, 50},
	},
}

func GetPreset(model, preset string) []float64 {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	doses, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return doses
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}
