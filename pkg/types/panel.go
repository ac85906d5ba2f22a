package types

import "math"

// PanelConfiguration describes the advanced panel setup a user picked.
type PanelConfiguration struct {
	TiltAngle     float64 `json:"tiltAngle" yaml:"tiltAngle"`         // 0-90, 0 is flat
	AzimuthAngle  float64 `json:"azimuthAngle" yaml:"azimuthAngle"`   // 0-360, 180 is south
	ShadingFactor float64 `json:"shadingFactor" yaml:"shadingFactor"` // 0-1, fraction lost to shade
	Efficiency    float64 `json:"efficiency" yaml:"efficiency"`       // nominal efficiency in percent, 0-100
	Temperature   float64 `json:"temperature" yaml:"temperature"`     // ambient °C, -10..50
}

// Limits of each PanelConfiguration field.
const (
	MinTiltAngle    = 0.0
	MaxTiltAngle    = 90.0
	MinAzimuthAngle = 0.0
	MaxAzimuthAngle = 360.0
	MinShading      = 0.0
	MaxShading      = 1.0
	MinEfficiency   = 0.0
	MaxEfficiency   = 100.0
	MinTemperature  = -10.0
	MaxTemperature  = 50.0
)

// Clamp returns a copy of the configuration with every field forced into its
// valid range. NaN values are replaced with the lower bound.
func (c PanelConfiguration) Clamp() PanelConfiguration {
	return PanelConfiguration{
		TiltAngle:     clamp(c.TiltAngle, MinTiltAngle, MaxTiltAngle),
		AzimuthAngle:  clamp(c.AzimuthAngle, MinAzimuthAngle, MaxAzimuthAngle),
		ShadingFactor: clamp(c.ShadingFactor, MinShading, MaxShading),
		Efficiency:    clamp(c.Efficiency, MinEfficiency, MaxEfficiency),
		Temperature:   clamp(c.Temperature, MinTemperature, MaxTemperature),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(hi, math.Max(lo, v))
}
