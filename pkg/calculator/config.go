package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/levenlabs/go-lflag"

	"github.com/raterudder/solarcalc/pkg/log"
	"github.com/raterudder/solarcalc/pkg/pricing"
)

// Config holds every constant the sizing and financial model uses. Amounts
// are in the units of Currency.
type Config struct {
	PanelWattage       float64 `json:"panelWattage"`       // W per panel
	InverterEfficiency float64 `json:"inverterEfficiency"` // 0-1
	BatteryEfficiency  float64 `json:"batteryEfficiency"`  // round trip, 0-1

	PanelCostPerWatt        float64 `json:"panelCostPerWatt"`
	InverterCostPerWatt     float64 `json:"inverterCostPerWatt"`
	MountingCostPerWatt     float64 `json:"mountingCostPerWatt"`
	InstallationCostPerWatt float64 `json:"installationCostPerWatt"`
	BatteryCostPerWh        float64 `json:"batteryCostPerWh"`
	PermitsCost             float64 `json:"permitsCost"`

	Currency        string  `json:"currency"`
	ElectricityRate float64 `json:"electricityRate"` // per kWh

	// DefaultSunHours is used when no location irradiance is known.
	DefaultSunHours float64 `json:"defaultSunHours"`
	SoilingLoss     float64 `json:"soilingLoss"`
	// ProjectionYears is the horizon of the long term savings figure.
	ProjectionYears int `json:"projectionYears"`
}

// DefaultConfig returns the standard estimate constants.
func DefaultConfig() Config {
	return Config{
		PanelWattage:       400,
		InverterEfficiency: 0.96,
		BatteryEfficiency:  0.9,

		PanelCostPerWatt:        0.50,
		InverterCostPerWatt:     0.30,
		MountingCostPerWatt:     0.20,
		InstallationCostPerWatt: 2.50,
		BatteryCostPerWh:        0.50,
		PermitsCost:             2500,

		Currency:        "USD",
		ElectricityRate: 0.15,

		DefaultSunHours: 5.0,
		SoilingLoss:     0.02,
		ProjectionYears: 20,
	}
}

// WithRates returns a copy of the config priced in the given currency.
func (c Config) WithRates(r pricing.Rates) Config {
	c.Currency = r.Currency
	c.ElectricityRate = r.ElectricityRate
	return c
}

// Validate checks that the config can produce finite results.
func (c Config) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"panelWattage", c.PanelWattage},
		{"inverterEfficiency", c.InverterEfficiency},
		{"batteryEfficiency", c.BatteryEfficiency},
		{"defaultSunHours", c.DefaultSunHours},
	} {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must be positive: %v", f.name, f.value)
		}
	}
	if c.InverterEfficiency > 1 || c.BatteryEfficiency > 1 {
		return errors.New("efficiencies must not exceed 1")
	}
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"panelCostPerWatt", c.PanelCostPerWatt},
		{"inverterCostPerWatt", c.InverterCostPerWatt},
		{"mountingCostPerWatt", c.MountingCostPerWatt},
		{"installationCostPerWatt", c.InstallationCostPerWatt},
		{"batteryCostPerWh", c.BatteryCostPerWh},
		{"permitsCost", c.PermitsCost},
		{"electricityRate", c.ElectricityRate},
		{"soilingLoss", c.SoilingLoss},
	} {
		if !(f.value >= 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s must not be negative: %v", f.name, f.value)
		}
	}
	if c.ProjectionYears <= 0 {
		return fmt.Errorf("projectionYears must be positive: %d", c.ProjectionYears)
	}
	return nil
}

// Configured sets up a Calculator based on flags. The returned Calculator is
// usable once lflag.Configure has run.
func Configured(rates *pricing.Map) *Calculator {
	calc := &Calculator{}

	cfg := DefaultConfig()
	lflag.JSON(&cfg, "calculator-config", cfg, "JSON object overriding estimate constants (e.g. {\"permitsCost\":1800})")
	currency := lflag.String("currency", "", "Currency whose average electricity rate replaces the default rate (available: "+strings.Join(rates.Currencies(), ", ")+" and any added by --electricity-rates)")

	lflag.Do(func() {
		if *currency != "" {
			r, err := rates.Rates(*currency)
			if err != nil {
				panic(fmt.Sprintf("currency lookup failed: %v", err))
			}
			cfg = cfg.WithRates(r)
		}
		if err := cfg.Validate(); err != nil {
			panic(fmt.Sprintf("calculator config validation failed: %v", err))
		}
		calc.cfg = cfg
		ctx := context.Background()
		log.Ctx(ctx).DebugContext(ctx, "calculator configured",
			slog.String("currency", cfg.Currency),
			slog.Float64("electricityRate", cfg.ElectricityRate),
		)
	})

	return calc
}
