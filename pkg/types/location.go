package types

// MonthsPerYear is the length of every monthly series in this module.
const MonthsPerYear = 12

// LocationIrradiance is the resolved solar resource for a location. It is
// produced by a location collaborator and read-only to the calculator.
type LocationIrradiance struct {
	Latitude  float64 `json:"latitude"`  // -90..90
	Longitude float64 `json:"longitude"` // -180..180

	// AnnualIrradiance is the average daily peak sun hours over the year.
	AnnualIrradiance float64 `json:"annualIrradiance"`
	// MonthlyIrradiance is the average daily peak sun hours for each month,
	// January first.
	MonthlyIrradiance [MonthsPerYear]float64 `json:"monthlyIrradiance"`
}
