package rbconfig

// Presets maps a problem name to a set of named batch configurations,
// keyed by scenario name.
var Presets = map[string]map[string]*Config{
	"vanderpol": {
		"quick": {
			Problem: "vanderpol", Method: "radau", Copies: 4,
			Atol: DefaultAtol, Rtol: DefaultRtol, H0: DefaultH0, HMax: DefaultHMax, HMin: DefaultHMin,
			Workers: 4, Mode: "static",
		},
		"large-batch": {
			Problem: "vanderpol", Method: "radau", Copies: 256,
			Atol: DefaultAtol, Rtol: DefaultRtol, H0: DefaultH0, HMax: DefaultHMax, HMin: DefaultHMin,
			Workers: 16, Mode: "queue",
		},
	},
	"vanderpol-stiff": {
		"stress": {
			Problem: "vanderpol-stiff", Method: "radau", Copies: 64,
			Atol: 1e-10, Rtol: 1e-8, H0: 1e-3, HMax: 0.5, HMin: 1e-14,
			Workers: 8, Mode: "queue",
		},
	},
	"linear": {
		"nonstiff-rkf45": {
			Problem: "linear", Method: "rkf45", Copies: 16,
			Atol: DefaultAtol, Rtol: DefaultRtol, H0: DefaultH0, HMax: DefaultHMax, HMin: DefaultHMin,
			Workers: 4, Mode: "static",
		},
	},
	"singular": {
		"lu-failure": {
			Problem: "singular", Method: "radau", Copies: 1,
			Atol: DefaultAtol, Rtol: DefaultRtol, H0: 1.0, HMax: 1.0, HMin: 1e-14,
			Workers: 1, Mode: "static",
		},
	},
}

// GetPreset looks up a named preset for a problem, or nil if either the
// problem or the preset name is unknown.
func GetPreset(problem, preset string) *Config {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	cfg, ok := problemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

// ListPresets returns the preset names registered for a problem.
func ListPresets(problem string) []string {
	problemPresets, ok := Presets[problem]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(problemPresets))
	for name := range problemPresets {
		names = append(names, name)
	}
	return names
}
