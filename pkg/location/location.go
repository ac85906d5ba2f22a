// Package location estimates solar irradiance for a place when no measured
// data is available.
package location

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/raterudder/solarcalc/pkg/types"
)

// ErrInvalidCoordinates is returned for latitudes outside [-90, 90],
// longitudes outside [-180, 180] or non-finite values.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// minMonthlySunHours is the floor of every estimated monthly value.
const minMonthlySunHours = 1.0

// EstimateAnnual returns the average daily peak sun hours for a latitude
// band: tropical, temperate, subarctic or polar.
func EstimateAnnual(latitude float64) float64 {
	switch absLat := math.Abs(latitude); {
	case absLat < 23.5:
		return 6
	case absLat < 45:
		return 5
	case absLat < 66.5:
		return 4
	default:
		return 3
	}
}

// EstimateMonthly spreads annual sun hours over the year, peaking mid-year
// with a swing that grows with the distance from the equator.
func EstimateMonthly(latitude, annual float64) [types.MonthsPerYear]float64 {
	var monthly [types.MonthsPerYear]float64
	latitudeFactor := math.Abs(latitude) / 90 * 2
	for m := range monthly {
		seasonal := math.Cos((float64(m) - 5.5) * math.Pi / 6)
		monthly[m] = math.Max(annual*(1+seasonal*latitudeFactor), minMonthlySunHours)
	}
	return monthly
}

// Estimate returns the irradiance estimate for the given coordinates.
func Estimate(latitude, longitude float64) (types.LocationIrradiance, error) {
	if err := validate(latitude, longitude); err != nil {
		return types.LocationIrradiance{}, err
	}
	annual := EstimateAnnual(latitude)
	return types.LocationIrradiance{
		Latitude:          latitude,
		Longitude:         longitude,
		AnnualIrradiance:  annual,
		MonthlyIrradiance: EstimateMonthly(latitude, annual),
	}, nil
}

// AnnualFromMonthly returns the mean of the monthly values.
func AnnualFromMonthly(monthly [types.MonthsPerYear]float64) float64 {
	return stat.Mean(monthly[:], nil)
}

func validate(latitude, longitude float64) error {
	if !(latitude >= -90 && latitude <= 90) {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinates, latitude)
	}
	if !(longitude >= -180 && longitude <= 180) {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinates, longitude)
	}
	return nil
}
