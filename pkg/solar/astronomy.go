package solar

import (
	"math"

	"github.com/raterudder/solarcalc/pkg/types"
)

const (
	// SolarConstant is the irradiance at the top of the atmosphere in W/m².
	SolarConstant = 1361.0

	// ReferenceHour is the hour of day used when a single representative
	// irradiance value is needed for a day. 12 is solar noon.
	ReferenceHour = 12.0

	axialTilt = 23.45
)

// Declination returns the sun's declination in degrees for the given day of
// the year (1-366).
func Declination(dayOfYear int) float64 {
	return axialTilt * math.Sin(degToRad(360.0/365.0*float64(dayOfYear-81)))
}

// HourAngle returns the hour angle in degrees for the given hour of day.
// It is 0 at solar noon and positive in the morning.
func HourAngle(hourOfDay float64) float64 {
	return 15 * (12 - hourOfDay)
}

// DaylightHours returns the hours between sunrise and sunset. During polar day
// or night the sunset hour angle saturates so the result is 24 or 0 instead of
// NaN.
func DaylightHours(latitude float64, dayOfYear int) float64 {
	latRad := degToRad(latitude)
	decRad := degToRad(Declination(dayOfYear))

	cosHourAngle := -math.Tan(latRad) * math.Tan(decRad)
	hourAngle := math.Acos(math.Max(-1, math.Min(1, cosHourAngle)))

	return 2 * hourAngle * 180 / (15 * math.Pi)
}

// CosIncidence returns the cosine of the angle between the sun and the zenith
// at the given latitude, day and hour. It is negative when the sun is below
// the horizon.
func CosIncidence(latitude float64, dayOfYear int, hourOfDay float64) float64 {
	latRad := degToRad(latitude)
	decRad := degToRad(Declination(dayOfYear))
	haRad := degToRad(HourAngle(hourOfDay))

	return math.Sin(latRad)*math.Sin(decRad) +
		math.Cos(latRad)*math.Cos(decRad)*math.Cos(haRad)
}

// Irradiance returns the effective irradiance in W/m² reaching the panel
// output for the given configuration. A negative panel efficiency is treated
// as 0, but the result itself is not clamped: a sun below the horizon yields a
// negative value that callers must floor before summing energy.
func Irradiance(latitude float64, config types.PanelConfiguration, dayOfYear int, hourOfDay float64) float64 {
	efficiency := math.Max(0, PanelEfficiency(config))
	return SolarConstant * CosIncidence(latitude, dayOfYear, hourOfDay) * efficiency * (1 - config.ShadingFactor)
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
