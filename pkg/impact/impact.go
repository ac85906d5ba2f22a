// Package impact converts solar production into avoided emissions.
package impact

import "math"

const (
	// CO2PerKWH is the grid average emission avoided per kWh, in kg.
	CO2PerKWH = 0.855
	// TreesPerTonCO2 is the number of trees absorbing one metric ton of CO2 a
	// year.
	TreesPerTonCO2 = 45.0
	// WaterPerKWH is the water thermal plants use per kWh, in gallons.
	WaterPerKWH = 0.5

	// DefaultLifespanYears is used when no system lifespan is given.
	DefaultLifespanYears = 25
)

// Impact is the environmental benefit of a system.
type Impact struct {
	AnnualCO2Tons   float64 `json:"annualCO2Tons"`
	LifetimeCO2Tons float64 `json:"lifetimeCO2Tons"`
	EquivalentTrees int     `json:"equivalentTrees"`
	AnnualWaterGal  int     `json:"annualWaterGallons"`
	LifespanYears   int     `json:"lifespanYears"`
}

// Calculate returns the impact of producing annualProductionKWH every year for
// lifespanYears. A non-positive lifespan uses DefaultLifespanYears and
// negative production counts as none.
func Calculate(annualProductionKWH float64, lifespanYears int) Impact {
	if lifespanYears <= 0 {
		lifespanYears = DefaultLifespanYears
	}
	if !(annualProductionKWH > 0) {
		annualProductionKWH = 0
	}
	annualCO2 := annualProductionKWH * CO2PerKWH / 1000
	return Impact{
		AnnualCO2Tons:   annualCO2,
		LifetimeCO2Tons: annualCO2 * float64(lifespanYears),
		EquivalentTrees: int(math.Round(annualCO2 * TreesPerTonCO2)),
		AnnualWaterGal:  int(math.Round(annualProductionKWH * WaterPerKWH)),
		LifespanYears:   lifespanYears,
	}
}
