package calculator

import (
	"math"

	"github.com/raterudder/solarcalc/pkg/solar"
	"github.com/raterudder/solarcalc/pkg/types"
)

// costBreakdown prices a system of systemSize kW. The battery line is only
// present when batterySize (Wh) is.
func (c Config) costBreakdown(systemSize float64, batterySize *float64) types.CostBreakdown {
	watts := systemSize * 1000
	b := types.CostBreakdown{
		Panels:       watts * c.PanelCostPerWatt,
		Inverter:     watts * c.InverterCostPerWatt,
		Mounting:     watts * c.MountingCostPerWatt,
		Installation: watts * c.InstallationCostPerWatt,
		Permits:      c.PermitsCost,
	}
	if batterySize != nil {
		cost := *batterySize * c.BatteryCostPerWh
		b.Battery = &cost
	}
	return b
}

// savings projects the financial return of annualProduction kWh per year
// against totalCost.
func (c Config) savings(annualProduction, totalCost float64) types.SavingsCalculation {
	annual := annualProduction * c.ElectricityRate
	payback := math.Inf(1)
	if annual > 0 {
		payback = totalCost / annual
	}
	return types.SavingsCalculation{
		Annual:            annual,
		Monthly:           annual / 12,
		PaybackPeriod:     payback,
		TwentyYearSavings: annual*float64(c.ProjectionYears) - totalCost,
	}
}

// efficiencyLoss reports the losses of an advanced configuration. Total is the
// plain sum of the three components.
func (c Config) efficiencyLoss(config types.PanelConfiguration) types.EfficiencyLoss {
	l := types.EfficiencyLoss{
		Temperature: referenceTemperatureDelta(config.Temperature),
		Shading:     config.ShadingFactor,
		Soiling:     c.SoilingLoss,
	}
	l.Total = l.Temperature + l.Shading + l.Soiling
	return l
}

// referenceTemperatureDelta is the loss figure shown next to the seasonal
// curve. It is positive below the reference temperature and negative above
// it, unlike solar.TemperatureFactor which never credits cold panels.
func referenceTemperatureDelta(temperature float64) float64 {
	return (solar.ReferenceTemperature - temperature) * solar.TemperatureCoefficient
}
