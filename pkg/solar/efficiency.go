package solar

import (
	"math"

	"github.com/raterudder/solarcalc/pkg/types"
)

const (
	// ReferenceTemperature is the cell temperature in °C panels are rated at.
	ReferenceTemperature = 25.0

	// TemperatureCoefficient is the fractional power lost per °C above
	// ReferenceTemperature.
	TemperatureCoefficient = 0.004
)

// TemperatureFactor returns the multiplier applied to the nominal efficiency
// for the given ambient temperature. Panels are not credited for running
// colder than ReferenceTemperature.
func TemperatureFactor(temperature float64) float64 {
	return 1 - math.Max(0, (temperature-ReferenceTemperature)*TemperatureCoefficient)
}

// TiltFactor is 1 for a vertical panel and 0 for a flat one.
func TiltFactor(tiltAngle float64) float64 {
	return math.Cos(degToRad(90 - tiltAngle))
}

// AzimuthFactor is 1 facing due south and -1 facing due north.
func AzimuthFactor(azimuthAngle float64) float64 {
	return math.Cos(degToRad(180 - azimuthAngle))
}

// PanelEfficiency returns the effective efficiency of the panel as a fraction.
// config.Efficiency is in percent. The result is negative for orientations
// facing away from the sun; callers must clamp it to 0 before using it.
func PanelEfficiency(config types.PanelConfiguration) float64 {
	nominal := config.Efficiency / 100
	return nominal *
		TemperatureFactor(config.Temperature) *
		TiltFactor(config.TiltAngle) *
		AzimuthFactor(config.AzimuthAngle)
}

// OptimalTilt is an empirical approximation of the best fixed tilt in degrees
// for temperate latitudes.
func OptimalTilt(latitude float64) float64 {
	return latitude*0.76 + 3.1
}

// OptimalAzimuth returns 180 (south facing) in the northern hemisphere and on
// the equator, and 0 (north facing) in the southern hemisphere.
func OptimalAzimuth(latitude float64) float64 {
	if latitude >= 0 {
		return 180
	}
	return 0
}
