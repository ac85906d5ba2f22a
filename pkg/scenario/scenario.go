// Package scenario reads estimate inputs from versioned YAML files.
package scenario

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/raterudder/solarcalc/pkg/calculator"
	"github.com/raterudder/solarcalc/pkg/incentive"
	"github.com/raterudder/solarcalc/pkg/location"
	"github.com/raterudder/solarcalc/pkg/log"
	"github.com/raterudder/solarcalc/pkg/types"
)

// SystemType is how the installation relates to the grid.
type SystemType string

const (
	OnGrid  SystemType = "on-grid"
	OffGrid SystemType = "off-grid"
	Hybrid  SystemType = "hybrid"
)

// RequiresBattery reports whether the system cannot work without storage.
func (t SystemType) RequiresBattery() bool {
	return t == OffGrid || t == Hybrid
}

// Valid reports whether t is a known system type.
func (t SystemType) Valid() bool {
	switch t {
	case OnGrid, OffGrid, Hybrid:
		return true
	}
	return false
}

// Location selects the irradiance data of a scenario. City takes precedence
// over coordinates. AnnualIrradiance and MonthlyIrradiance replace the
// estimate when set.
type Location struct {
	City              string    `yaml:"city,omitempty" json:"city,omitempty"`
	Latitude          *float64  `yaml:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude         *float64  `yaml:"longitude,omitempty" json:"longitude,omitempty"`
	AnnualIrradiance  float64   `yaml:"annualIrradiance,omitempty" json:"annualIrradiance,omitempty"`
	MonthlyIrradiance []float64 `yaml:"monthlyIrradiance,omitempty" json:"monthlyIrradiance,omitempty"`
}

// Scenario is one set of estimate inputs.
type Scenario struct {
	Version int    `yaml:"version" json:"version"`
	Name    string `yaml:"name,omitempty" json:"name,omitempty"`

	// Consumption is the daily usage in kWh.
	Consumption     float64    `yaml:"consumption" json:"consumption"`
	SystemType      SystemType `yaml:"systemType,omitempty" json:"systemType,omitempty"`
	BatteryBackup   bool       `yaml:"batteryBackup,omitempty" json:"batteryBackup,omitempty"`
	AutonomyDays    float64    `yaml:"autonomyDays,omitempty" json:"autonomyDays,omitempty"`
	PanelEfficiency float64    `yaml:"panelEfficiency,omitempty" json:"panelEfficiency,omitempty"`
	Professional    bool       `yaml:"professional,omitempty" json:"professional,omitempty"`

	Location   *Location                 `yaml:"location,omitempty" json:"location,omitempty"`
	Advanced   *types.PanelConfiguration `yaml:"advanced,omitempty" json:"advanced,omitempty"`
	Incentives *incentive.Region         `yaml:"incentives,omitempty" json:"incentives,omitempty"`
}

// Load reads and migrates the scenario at path.
func Load(ctx context.Context, path string) (Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	s, err := Parse(ctx, bytes.NewReader(b))
	if err != nil {
		return Scenario{}, fmt.Errorf("failed to load scenario %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scenario and migrates it to CurrentVersion. Unknown fields
// are rejected.
func Parse(ctx context.Context, r io.Reader) (Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Scenario{}, errors.New("empty scenario")
		}
		return Scenario{}, fmt.Errorf("failed to decode scenario: %w", err)
	}

	from := s.Version
	s, migrated, err := Migrate(s)
	if err != nil {
		return Scenario{}, err
	}
	if migrated {
		log.Ctx(ctx).InfoContext(ctx, "migrated scenario",
			slog.String("name", s.Name),
			slog.Int("from", from),
			slog.Int("to", s.Version),
		)
	}
	return s, nil
}

// Marshal encodes the scenario as YAML.
func Marshal(s Scenario) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("failed to encode scenario: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode scenario: %w", err)
	}
	return buf.Bytes(), nil
}

// Irradiance resolves the location into irradiance data. It returns nil when
// the scenario has no location.
func (s Scenario) Irradiance() (*types.LocationIrradiance, error) {
	l := s.Location
	if l == nil {
		return nil, nil
	}

	var li types.LocationIrradiance
	var err error
	switch {
	case l.City != "":
		li, err = location.City(l.City)
		if errors.Is(err, location.ErrUnknownCity) {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(location.Cities(), ", "))
		}
	case l.Latitude != nil && l.Longitude != nil:
		li, err = location.Estimate(*l.Latitude, *l.Longitude)
	case l.Latitude != nil || l.Longitude != nil:
		return nil, fmt.Errorf("%w: location needs both latitude and longitude", calculator.ErrInvalidParameter)
	default:
		return nil, fmt.Errorf("%w: location needs a city or coordinates", calculator.ErrInvalidParameter)
	}
	if err != nil {
		return nil, err
	}

	if len(l.MonthlyIrradiance) > 0 {
		if len(l.MonthlyIrradiance) != types.MonthsPerYear {
			return nil, fmt.Errorf("%w: monthly irradiance needs %d values, got %d", calculator.ErrInvalidParameter, types.MonthsPerYear, len(l.MonthlyIrradiance))
		}
		copy(li.MonthlyIrradiance[:], l.MonthlyIrradiance)
		li.AnnualIrradiance = location.AnnualFromMonthly(li.MonthlyIrradiance)
	}
	if l.AnnualIrradiance > 0 {
		li.AnnualIrradiance = l.AnnualIrradiance
	}
	return &li, nil
}

// Params converts the scenario into calculator input.
func (s Scenario) Params() (calculator.Params, error) {
	if s.SystemType != "" && !s.SystemType.Valid() {
		return calculator.Params{}, fmt.Errorf("%w: unknown system type: %q", calculator.ErrInvalidParameter, s.SystemType)
	}
	li, err := s.Irradiance()
	if err != nil {
		return calculator.Params{}, err
	}
	p := calculator.Params{
		Consumption:     s.Consumption,
		BatteryBackup:   s.BatteryBackup || s.SystemType.RequiresBattery(),
		AutonomyDays:    s.AutonomyDays,
		PanelEfficiency: s.PanelEfficiency,
		Professional:    s.Professional,
		Location:        li,
	}
	if s.Advanced != nil {
		ac := *s.Advanced
		p.AdvancedConfig = &ac
	}
	if err := p.Validate(); err != nil {
		return calculator.Params{}, err
	}
	return p, nil
}
