// Package incentive lists the tax credits and rebates that lower the cost of
// an installation.
package incentive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/raterudder/solarcalc/pkg/log"
)

// ErrUnknownProgram is returned when looking up a program that is not
// registered.
var ErrUnknownProgram = errors.New("unknown incentive program")

// Kind is the form in which an incentive is paid out.
type Kind string

const (
	KindTaxCredit Kind = "tax_credit"
	KindRebate    Kind = "rebate"
	KindGrant     Kind = "grant"
	KindLoan      Kind = "loan"
)

// Level is the authority granting an incentive.
type Level string

const (
	LevelFederal Level = "federal"
	LevelState   Level = "state"
	LevelUtility Level = "utility"
)

// Region identifies where a system is installed.
type Region struct {
	State   string `json:"state"`
	County  string `json:"county"`
	Utility string `json:"utility"`
}

// Incentive is a single program applied to a system cost.
type Incentive struct {
	Name           string   `json:"name"`
	Kind           Kind     `json:"type"`
	Amount         float64  `json:"amount"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements,omitempty"`
	ExpirationDate string   `json:"expirationDate,omitempty"`
	Link           string   `json:"link,omitempty"`
}

// Program describes how an incentive is granted.
type Program struct {
	Name         string
	Kind         Kind
	Level        Level
	Description  string
	Requirements []string
	Link         string

	// State or Utility must match the region when set. Matching is case
	// insensitive.
	State   string
	Utility string

	Valid           Period
	RequiresBattery bool

	// Amount returns the incentive for a system of the given cost.
	Amount func(systemCost float64) float64
}

func (p Program) applies(region Region, hasBattery bool, asOf time.Time) bool {
	if p.RequiresBattery && !hasBattery {
		return false
	}
	if p.State != "" && !strings.EqualFold(strings.TrimSpace(region.State), p.State) {
		return false
	}
	if p.Utility != "" && !strings.EqualFold(strings.TrimSpace(region.Utility), p.Utility) {
		return false
	}
	return p.Valid.Contains(asOf)
}

func (p Program) incentive(systemCost float64) Incentive {
	i := Incentive{
		Name:         p.Name,
		Kind:         p.Kind,
		Amount:       p.Amount(systemCost),
		Description:  p.Description,
		Requirements: slices.Clone(p.Requirements),
		Link:         p.Link,
	}
	if !p.Valid.End.IsZero() {
		i.ExpirationDate = p.Valid.End.AddDate(0, 0, -1).Format(time.DateOnly)
	}
	return i
}

// Calculation is the set of incentives a system qualifies for.
type Calculation struct {
	Total     float64     `json:"totalIncentives"`
	Available []Incentive `json:"availableIncentives"`
	Federal   []Incentive `json:"federalIncentives"`
	State     []Incentive `json:"stateIncentives"`
	Utility   []Incentive `json:"utilityIncentives"`
	// NetCost is the system cost after incentives, never below 0.
	NetCost float64 `json:"netCost"`
}

// Catalog holds the known programs.
type Catalog struct {
	mu       sync.Mutex
	programs map[string]Program
}

// NewCatalog creates a Catalog with the default programs.
func NewCatalog() *Catalog {
	c := &Catalog{
		programs: make(map[string]Program),
	}
	for _, p := range defaultPrograms() {
		c.programs[p.Name] = p
	}
	return c
}

// SetProgram adds or replaces a program.
func (c *Catalog) SetProgram(p Program) error {
	if p.Name == "" {
		return errors.New("program name is required")
	}
	if p.Amount == nil {
		return fmt.Errorf("program %s has no amount", p.Name)
	}
	switch p.Level {
	case LevelFederal, LevelState, LevelUtility:
	default:
		return fmt.Errorf("program %s has unknown level: %q", p.Name, p.Level)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.programs[p.Name] = p
	return nil
}

// Program returns the program with the given name.
func (c *Catalog) Program(name string) (Program, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.programs[name]; ok {
		return p, nil
	}
	return Program{}, fmt.Errorf("%w: %s", ErrUnknownProgram, name)
}

// Calculate applies every program the system qualifies for on the calendar
// date of asOf, taken in asOf's own location. A non-positive system cost
// qualifies for nothing.
func (c *Catalog) Calculate(ctx context.Context, systemCost float64, hasBattery bool, region Region, asOf time.Time) Calculation {
	calc := Calculation{
		Available: []Incentive{},
		Federal:   []Incentive{},
		State:     []Incentive{},
		Utility:   []Incentive{},
	}
	if !(systemCost > 0) {
		return calc
	}

	c.mu.Lock()
	programs := make([]Program, 0, len(c.programs))
	for _, p := range c.programs {
		programs = append(programs, p)
	}
	c.mu.Unlock()

	sort.Slice(programs, func(i, j int) bool {
		if programs[i].Level != programs[j].Level {
			return levelOrder(programs[i].Level) < levelOrder(programs[j].Level)
		}
		return programs[i].Name < programs[j].Name
	})

	day := Day(asOf)
	for _, p := range programs {
		if !p.applies(region, hasBattery, day) {
			continue
		}
		i := p.incentive(systemCost)
		switch p.Level {
		case LevelFederal:
			calc.Federal = append(calc.Federal, i)
		case LevelState:
			calc.State = append(calc.State, i)
		case LevelUtility:
			calc.Utility = append(calc.Utility, i)
		}
		calc.Available = append(calc.Available, i)
		calc.Total += i.Amount
	}
	calc.NetCost = max(0, systemCost-calc.Total)

	log.Ctx(ctx).DebugContext(ctx, "incentives calculated",
		slog.String("state", region.State),
		slog.String("utility", region.Utility),
		slog.Float64("systemCost", systemCost),
		slog.Float64("totalIncentives", calc.Total),
		slog.Int("programs", len(calc.Available)),
	)
	return calc
}

// Calculate applies the default programs.
func Calculate(ctx context.Context, systemCost float64, hasBattery bool, region Region, asOf time.Time) Calculation {
	return NewCatalog().Calculate(ctx, systemCost, hasBattery, region, asOf)
}

func levelOrder(l Level) int {
	switch l {
	case LevelFederal:
		return 0
	case LevelState:
		return 1
	default:
		return 2
	}
}
