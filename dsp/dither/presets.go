package dither

import "fmt"

// Preset names a built-in noise-shaping filter.
type Preset int

const (
	PresetNone Preset = iota // no shaping
	PresetEFB                // first-order error feedback
	Preset2SC                // second-order highpass
	Preset3FC                // F-weighted, third order
	Preset9FC                // F-weighted, ninth order
	PresetSBM                // Super Bit Mapping curve, twelfth order

	presetCount
)

var presetNames = [presetCount]string{"none", "efb", "2sc", "3fc", "9fc", "sbm"}

var presetCoeffs = [presetCount][]float64{
	PresetNone: nil,
	PresetEFB:  {1},
	Preset2SC:  {1.0, -0.5},
	Preset3FC:  {1.623, -0.982, 0.109},
	Preset9FC: {
		2.412, -3.370, 3.937, -4.174, 3.353,
		-2.205, 1.281, -0.569, 0.0847,
	},
	PresetSBM: {
		1.47933, -1.59032, 1.64436, -1.36613,
		0.926704, -0.557931, 0.26786, -0.106726,
		0.028516, 0.00123066, -0.00616555, 0.003067,
	},
}

// String returns the preset name.
func (p Preset) String() string {
	if p.Valid() {
		return presetNames[p]
	}
	return fmt.Sprintf("Preset(%d)", int(p))
}

// Valid reports whether p is a known preset.
func (p Preset) Valid() bool {
	return p >= 0 && p < presetCount
}

// Coefficients returns a copy of the preset's filter, nil for PresetNone.
func (p Preset) Coefficients() []float64 {
	if !p.Valid() || len(presetCoeffs[p]) == 0 {
		return nil
	}
	return append([]float64(nil), presetCoeffs[p]...)
}

// ParsePreset maps a preset name to its Preset.
func ParsePreset(name string) (Preset, error) {
	for i, n := range presetNames {
		if n == name {
			return Preset(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPreset, name)
}
