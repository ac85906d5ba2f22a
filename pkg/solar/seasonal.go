package solar

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/raterudder/solarcalc/pkg/types"
)

// daysInMonth of a non-leap year, January first.
var daysInMonth = [types.MonthsPerYear]float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MidMonthDay approximates the day of the year in the middle of the month.
func MidMonthDay(month int) int {
	return int(math.Floor(float64(month-1)*30.44 + 15))
}

// seasonalSwing is 1 in June, -1 in December.
func seasonalSwing(month int) float64 {
	return math.Cos(float64(month-6) * math.Pi / 6)
}

// MonthlyTemperature is a sinusoidal estimate of the average ambient
// temperature in °C, not meteorological data.
func MonthlyTemperature(latitude float64, month int) float64 {
	baseTemp := 25 - math.Abs(latitude)/3
	return baseTemp + 10*seasonalSwing(month)
}

// SeasonalShading adjusts the configured shading factor by month and latitude
// and keeps it within [0, 1].
func SeasonalShading(shading float64, month int, latitude float64) float64 {
	adjustment := 0.1 * seasonalSwing(month) * (math.Abs(latitude) / 90)
	return math.Min(1, math.Max(0, shading+adjustment))
}

// SeasonalProduction returns twelve points, January through December, with
// the expected daily production of a system of systemSize kW. Every call
// builds a new slice.
func SeasonalProduction(latitude float64, config types.PanelConfiguration, systemSize float64) []types.SeasonalDataPoint {
	config = config.Clamp()
	points := make([]types.SeasonalDataPoint, 0, types.MonthsPerYear)
	for month := 1; month <= types.MonthsPerYear; month++ {
		day := MidMonthDay(month)

		monthConfig := config
		monthConfig.Temperature = MonthlyTemperature(latitude, month)
		monthConfig.ShadingFactor = SeasonalShading(config.ShadingFactor, month, latitude)

		irradiance := Irradiance(latitude, monthConfig, day, ReferenceHour)
		daylight := DaylightHours(latitude, day)

		points = append(points, types.SeasonalDataPoint{
			Month:              month,
			SolarIrradiance:    irradiance,
			Temperature:        monthConfig.Temperature,
			ShadingFactor:      monthConfig.ShadingFactor,
			ExpectedProduction: irradiance * daylight * systemSize / 1000,
		})
	}
	return points
}

// SeasonalSummary condenses a seasonal curve for charting.
type SeasonalSummary struct {
	PeakMonth         int     `json:"peakMonth"`
	LowestMonth       int     `json:"lowestMonth"`
	MeanDailyKWH      float64 `json:"meanDailyKWH"`
	AnnualKWH         float64 `json:"annualKWH"`
	PeakToLowestRatio float64 `json:"peakToLowestRatio"` // 0 when the lowest month produces nothing
}

// Summarize aggregates a seasonal curve. Negative daily production is counted
// as 0. Points are looked up by their Month so the input order does not
// matter; months outside 1-12 are ignored.
func Summarize(curve []types.SeasonalDataPoint) SeasonalSummary {
	var daily [types.MonthsPerYear]float64
	var seen bool
	for _, p := range curve {
		if p.Month < 1 || p.Month > types.MonthsPerYear {
			continue
		}
		daily[p.Month-1] = math.Max(0, p.ExpectedProduction)
		seen = true
	}
	if !seen {
		return SeasonalSummary{}
	}

	monthly := make([]float64, types.MonthsPerYear)
	floats.MulTo(monthly, daily[:], daysInMonth[:])

	peak := floats.MaxIdx(daily[:])
	lowest := floats.MinIdx(daily[:])
	s := SeasonalSummary{
		PeakMonth:    peak + 1,
		LowestMonth:  lowest + 1,
		MeanDailyKWH: stat.Mean(daily[:], nil),
		AnnualKWH:    floats.Sum(monthly),
	}
	if daily[lowest] > 0 {
		s.PeakToLowestRatio = daily[peak] / daily[lowest]
	}
	return s
}
