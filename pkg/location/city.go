package location

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/raterudder/solarcalc/pkg/types"
)

// ErrUnknownCity is returned when a city is not in the catalog.
var ErrUnknownCity = errors.New("unknown city")

type city struct {
	name      string
	latitude  float64
	longitude float64
	sunHours  float64
}

var cities = []city{
	{"New York", 40.71, -74.01, 4.5},
	{"Los Angeles", 34.05, -118.24, 5.5},
	{"Miami", 25.76, -80.19, 5.8},
	{"Chicago", 41.88, -87.63, 4.2},
	{"Houston", 29.76, -95.37, 5.0},
	{"Phoenix", 33.45, -112.07, 6.5},
	{"Seattle", 47.61, -122.33, 3.8},
	{"Denver", 39.74, -104.99, 5.7},
	{"Boston", 42.36, -71.06, 4.3},
	{"Atlanta", 33.75, -84.39, 5.2},
	{"San Francisco", 37.77, -122.42, 5.3},
	{"Las Vegas", 36.17, -115.14, 6.4},
	{"Portland", 45.52, -122.68, 3.9},
	{"Austin", 30.27, -97.74, 5.4},
	{"Orlando", 28.54, -81.38, 5.7},
	{"Toronto", 43.65, -79.38, 3.8},
	{"Vancouver", 49.28, -123.12, 3.3},
	{"London", 51.51, -0.13, 2.8},
	{"Berlin", 52.52, 13.40, 3.0},
	{"Paris", 48.86, 2.35, 3.5},
	{"Madrid", 40.42, -3.70, 5.1},
	{"Rome", 41.90, 12.50, 4.7},
	{"Sydney", -33.87, 151.21, 4.9},
	{"Melbourne", -37.81, 144.96, 4.2},
	{"Brisbane", -27.47, 153.03, 5.2},
}

func (c city) irradiance() types.LocationIrradiance {
	return types.LocationIrradiance{
		Latitude:          c.latitude,
		Longitude:         c.longitude,
		AnnualIrradiance:  c.sunHours,
		MonthlyIrradiance: EstimateMonthly(c.latitude, c.sunHours),
	}
}

// City returns the irradiance of a catalog city. Names are case insensitive.
func City(name string) (types.LocationIrradiance, error) {
	name = strings.TrimSpace(name)
	for _, c := range cities {
		if strings.EqualFold(c.name, name) {
			return c.irradiance(), nil
		}
	}
	return types.LocationIrradiance{}, fmt.Errorf("%w: %s", ErrUnknownCity, name)
}

// Cities returns the catalog city names in alphabetical order.
func Cities() []string {
	names := make([]string, 0, len(cities))
	for _, c := range cities {
		names = append(names, c.name)
	}
	sort.Strings(names)
	return names
}

// earthRadiusKM is the mean radius used for great circle distances.
const earthRadiusKM = 6371.0

// Nearest returns the catalog city closest to the coordinates and its great
// circle distance in km.
func Nearest(latitude, longitude float64) (string, float64, error) {
	if err := validate(latitude, longitude); err != nil {
		return "", 0, err
	}
	best := -1
	bestDistance := math.Inf(1)
	for i, c := range cities {
		if d := distanceKM(latitude, longitude, c.latitude, c.longitude); d < bestDistance {
			best = i
			bestDistance = d
		}
	}
	return cities[best].name, bestDistance, nil
}

// distanceKM is the haversine distance between two points.
func distanceKM(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return 2 * earthRadiusKM * math.Asin(math.Min(1, math.Sqrt(a)))
}
