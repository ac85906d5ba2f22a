package calculator

import (
	"errors"
	"fmt"
	"math"

	"github.com/raterudder/solarcalc/pkg/solar"
	"github.com/raterudder/solarcalc/pkg/types"
)

// ErrInvalidParameter is wrapped by every input validation error.
var ErrInvalidParameter = errors.New("invalid parameter")

// MaxPanels is the largest panel count an estimate may require.
const MaxPanels = math.MaxInt32

// Params are the caller supplied inputs of a single estimate.
type Params struct {
	// Consumption is the daily energy use to cover in kWh. Must be positive.
	Consumption   float64 `json:"consumption"`
	BatteryBackup bool    `json:"batteryBackup"`
	// AutonomyDays is how many days the battery must carry the load. Only used
	// with BatteryBackup.
	AutonomyDays float64 `json:"autonomyDays"`
	// PanelEfficiency is the nominal panel efficiency in percent.
	PanelEfficiency float64 `json:"panelEfficiency"`
	Professional    bool    `json:"professional"`

	// Location is nil when the location could not be resolved.
	Location *types.LocationIrradiance `json:"location,omitempty"`
	// AdvancedConfig is only honored in professional mode.
	AdvancedConfig *types.PanelConfiguration `json:"advancedConfig,omitempty"`
}

// Validate checks the parameters that cannot be clamped into a meaningful
// range. The advanced configuration is clamped instead of rejected.
func (p Params) Validate() error {
	if !(p.Consumption > 0) || math.IsInf(p.Consumption, 0) {
		return fmt.Errorf("%w: consumption must be a positive number of kWh/day: %v", ErrInvalidParameter, p.Consumption)
	}
	if !(p.PanelEfficiency > 0 && p.PanelEfficiency <= 100) {
		return fmt.Errorf("%w: panel efficiency must be within (0, 100] percent: %v", ErrInvalidParameter, p.PanelEfficiency)
	}
	if p.BatteryBackup && (!(p.AutonomyDays >= 0) || math.IsInf(p.AutonomyDays, 0)) {
		return fmt.Errorf("%w: autonomy days must not be negative: %v", ErrInvalidParameter, p.AutonomyDays)
	}
	if l := p.Location; l != nil {
		if !(l.Latitude >= -90 && l.Latitude <= 90) {
			return fmt.Errorf("%w: latitude must be within [-90, 90]: %v", ErrInvalidParameter, l.Latitude)
		}
		if math.IsNaN(l.AnnualIrradiance) || math.IsInf(l.AnnualIrradiance, 0) {
			return fmt.Errorf("%w: annual irradiance must be finite: %v", ErrInvalidParameter, l.AnnualIrradiance)
		}
	}
	return nil
}

// Calculator sizes solar installations and projects their finances. It holds
// no state besides its Config and is safe for concurrent use.
type Calculator struct {
	cfg Config
}

// New creates a Calculator with the given config.
func New(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calculator config: %w", err)
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the constants the Calculator uses.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Calculate sizes a system for the given parameters. The result is advanced
// when Professional is set and both an advanced configuration and a location
// are supplied.
func (c *Calculator) Calculate(p Params) (types.Result, error) {
	if err := p.Validate(); err != nil {
		return types.Result{}, err
	}
	cfg := c.cfg

	sunHours := cfg.DefaultSunHours
	if p.Location != nil && p.Location.AnnualIrradiance > 0 {
		sunHours = p.Location.AnnualIrradiance
	}

	// only shading is folded in before sizing; temperature, tilt and azimuth
	// only shape the seasonal curve
	efficiency := p.PanelEfficiency / 100
	var advanced *types.PanelConfiguration
	if p.Professional && p.AdvancedConfig != nil {
		ac := p.AdvancedConfig.Clamp()
		advanced = &ac
		efficiency *= 1 - ac.ShadingFactor
	}
	if efficiency <= 0 {
		return types.Result{}, fmt.Errorf("%w: shading leaves no usable production", ErrInvalidParameter)
	}

	requiredSize := p.Consumption / (sunHours * efficiency * cfg.InverterEfficiency)
	panels := math.Ceil(requiredSize * 1000 / cfg.PanelWattage)
	if !(panels <= MaxPanels) {
		return types.Result{}, fmt.Errorf("%w: system would need more than %d panels: %v", ErrInvalidParameter, MaxPanels, panels)
	}
	numberOfPanels := int(panels)
	systemSize := float64(numberOfPanels) * cfg.PanelWattage / 1000
	dailyProduction := systemSize * sunHours * efficiency * cfg.InverterEfficiency

	var batterySize *float64
	if p.BatteryBackup {
		wh := p.Consumption * p.AutonomyDays * 1000 / cfg.BatteryEfficiency
		if math.IsInf(wh, 0) {
			return types.Result{}, fmt.Errorf("%w: battery size overflows: %v days", ErrInvalidParameter, p.AutonomyDays)
		}
		batterySize = &wh
	}

	breakdown := cfg.costBreakdown(systemSize, batterySize)
	costs := types.Costs{
		Total:     breakdown.Total(),
		Breakdown: breakdown,
	}
	annualProduction := dailyProduction * 365

	basic := types.CalculatorResult{
		SystemSize:      systemSize,
		NumberOfPanels:  numberOfPanels,
		DailyProduction: dailyProduction,
		BatterySize:     batterySize,
		Costs:           costs,
		Savings:         cfg.savings(annualProduction, costs.Total),
	}
	res := types.Result{Basic: basic}

	if advanced != nil && p.Location != nil {
		lat := p.Location.Latitude
		res.Advanced = &types.AdvancedCalculatorResult{
			CalculatorResult:   copyResult(basic),
			SeasonalProduction: clampedSeasonalProduction(lat, *advanced, systemSize),
			OptimalTilt:        solar.OptimalTilt(lat),
			OptimalAzimuth:     solar.OptimalAzimuth(lat),
			AnnualProduction:   annualProduction,
			EfficiencyLoss:     cfg.efficiencyLoss(*advanced),
		}
	}
	return res, nil
}

// clampedSeasonalProduction floors irradiance and production at 0 so months
// with the sun below the horizon do not subtract energy.
func clampedSeasonalProduction(latitude float64, config types.PanelConfiguration, systemSize float64) []types.SeasonalDataPoint {
	curve := solar.SeasonalProduction(latitude, config, systemSize)
	for i := range curve {
		curve[i].SolarIrradiance = math.Max(0, curve[i].SolarIrradiance)
		curve[i].ExpectedProduction = math.Max(0, curve[i].ExpectedProduction)
	}
	return curve
}

// copyResult duplicates the pointer fields so the basic and advanced results
// never share memory.
func copyResult(r types.CalculatorResult) types.CalculatorResult {
	if r.BatterySize != nil {
		v := *r.BatterySize
		r.BatterySize = &v
	}
	if r.Costs.Breakdown.Battery != nil {
		v := *r.Costs.Breakdown.Battery
		r.Costs.Breakdown.Battery = &v
	}
	return r
}
