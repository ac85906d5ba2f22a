package types

import (
	"encoding/json"
	"math"
)

// SeasonalDataPoint is the production estimate for one calendar month.
type SeasonalDataPoint struct {
	Month              int     `json:"month"`              // 1-12
	SolarIrradiance    float64 `json:"solarIrradiance"`    // W/m², after geometry, efficiency and shading
	Temperature        float64 `json:"temperature"`        // estimated ambient °C
	ShadingFactor      float64 `json:"shadingFactor"`      // seasonally adjusted, 0-1
	ExpectedProduction float64 `json:"expectedProduction"` // kWh/day for the system size
}

// CostBreakdown lists every cost line of an installation. Battery is nil when
// no battery was requested.
type CostBreakdown struct {
	Panels       float64  `json:"panels"`
	Inverter     float64  `json:"inverter"`
	Mounting     float64  `json:"mounting"`
	Battery      *float64 `json:"battery,omitempty"`
	Installation float64  `json:"installation"`
	Permits      float64  `json:"permits"`
}

// Total returns the sum of all present cost lines.
func (c CostBreakdown) Total() float64 {
	total := c.Panels + c.Inverter + c.Mounting + c.Installation + c.Permits
	if c.Battery != nil {
		total += *c.Battery
	}
	return total
}

// Costs is a breakdown along with its total.
type Costs struct {
	Total     float64       `json:"total"`
	Breakdown CostBreakdown `json:"breakdown"`
}

// SavingsCalculation is the financial projection for a system.
type SavingsCalculation struct {
	Annual  float64 `json:"annual"`
	Monthly float64 `json:"monthly"`
	// PaybackPeriod is in years and is +Inf when the system saves nothing.
	PaybackPeriod float64 `json:"paybackPeriod"`
	// TwentyYearSavings is cumulative savings minus total cost, can be negative.
	TwentyYearSavings float64 `json:"twentyYearSavings"`
}

// PaysBack reports whether the system ever recoups its cost.
func (s SavingsCalculation) PaysBack() bool {
	return !math.IsInf(s.PaybackPeriod, 1) && !math.IsNaN(s.PaybackPeriod)
}

// CalculatorResult is the sizing and financial output for one calculation.
type CalculatorResult struct {
	// SystemSize is in kW, realized from the integer panel count.
	SystemSize     float64 `json:"systemSize"`
	NumberOfPanels int     `json:"numberOfPanels"`
	// DailyProduction is in kWh/day.
	DailyProduction float64 `json:"dailyProduction"`
	// BatterySize is in Wh and nil when no battery backup was requested.
	BatterySize *float64           `json:"batterySize,omitempty"`
	Costs       Costs              `json:"costs"`
	Savings     SavingsCalculation `json:"savings"`
}

// EfficiencyLoss breaks down the fractional losses of an advanced
// configuration.
type EfficiencyLoss struct {
	Temperature float64 `json:"temperature"`
	Shading     float64 `json:"shading"`
	Soiling     float64 `json:"soiling"`
	Total       float64 `json:"total"`
}

// AdvancedCalculatorResult extends CalculatorResult with the seasonal curve
// and orientation data. It is only produced in professional mode when both an
// advanced configuration and a location latitude are known.
type AdvancedCalculatorResult struct {
	CalculatorResult
	SeasonalProduction []SeasonalDataPoint `json:"seasonalProduction"`
	OptimalTilt        float64             `json:"optimalTilt"`
	OptimalAzimuth     float64             `json:"optimalAzimuth"`
	AnnualProduction   float64             `json:"annualProduction"` // kWh
	EfficiencyLoss     EfficiencyLoss      `json:"efficiencyLoss"`
}

// Result is the outcome of a calculation. Advanced is set only when the
// professional-mode conditions were met, in which case it carries the same
// base result as Basic.
type Result struct {
	Basic    CalculatorResult
	Advanced *AdvancedCalculatorResult
}

// IsAdvanced reports whether the advanced fields were computed.
func (r Result) IsAdvanced() bool {
	return r.Advanced != nil
}

// MarshalJSON encodes the advanced result when present and the basic one
// otherwise, so consumers see a single object either way.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Advanced != nil {
		return json.Marshal(r.Advanced)
	}
	return json.Marshal(r.Basic)
}

type savingsJSON struct {
	Annual            float64  `json:"annual"`
	Monthly           float64  `json:"monthly"`
	PaybackPeriod     *float64 `json:"paybackPeriod"`
	TwentyYearSavings float64  `json:"twentyYearSavings"`
}

// MarshalJSON encodes a payback period that never happens as null since JSON
// has no representation for infinity.
func (s SavingsCalculation) MarshalJSON() ([]byte, error) {
	out := savingsJSON{
		Annual:            s.Annual,
		Monthly:           s.Monthly,
		TwentyYearSavings: s.TwentyYearSavings,
	}
	if s.PaysBack() {
		p := s.PaybackPeriod
		out.PaybackPeriod = &p
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *SavingsCalculation) UnmarshalJSON(b []byte) error {
	var in savingsJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	*s = SavingsCalculation{
		Annual:            in.Annual,
		Monthly:           in.Monthly,
		PaybackPeriod:     math.Inf(1),
		TwentyYearSavings: in.TwentyYearSavings,
	}
	if in.PaybackPeriod != nil {
		s.PaybackPeriod = *in.PaybackPeriod
	}
	return nil
}
