// Package report assembles estimates for scenario files and writes them as
// JSON.
package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/levenlabs/go-lflag"
	"golang.org/x/sync/errgroup"

	"github.com/raterudder/solarcalc/pkg/calculator"
	"github.com/raterudder/solarcalc/pkg/comparison"
	"github.com/raterudder/solarcalc/pkg/impact"
	"github.com/raterudder/solarcalc/pkg/incentive"
	"github.com/raterudder/solarcalc/pkg/location"
	"github.com/raterudder/solarcalc/pkg/log"
	"github.com/raterudder/solarcalc/pkg/pricing"
	"github.com/raterudder/solarcalc/pkg/scenario"
	"github.com/raterudder/solarcalc/pkg/solar"
	"github.com/raterudder/solarcalc/pkg/types"
)

// Estimate is the full output for one scenario.
type Estimate struct {
	Scenario  string                 `json:"scenario"`
	Currency  string                 `json:"currency"`
	TotalCost string                 `json:"totalCost"`
	Result    types.Result           `json:"result"`
	Seasonal  *solar.SeasonalSummary `json:"seasonal,omitempty"`
	// Incentives is only set when a region is known.
	Incentives *incentive.Calculation `json:"incentives,omitempty"`
	Impact     impact.Impact          `json:"impact"`
	// NearestCity is the closest catalog city when the scenario is located
	// by coordinates.
	NearestCity   string  `json:"nearestCity,omitempty"`
	NearestCityKM float64 `json:"nearestCityKm,omitempty"`
}

// Report is what Run writes.
type Report struct {
	Estimate    Estimate           `json:"estimate"`
	Alternative *Estimate          `json:"alternative,omitempty"`
	Comparison  *comparison.Result `json:"comparison,omitempty"`
	// Ranking orders the scenario names from the shortest payback to the
	// longest.
	Ranking []string `json:"ranking,omitempty"`
}

// Runner builds reports from scenario files.
type Runner struct {
	calc       *calculator.Calculator
	rates      *pricing.Map
	incentives *incentive.Catalog

	scenarioPath string
	comparePath  string
	region       *incentive.Region
	lifespan     int
	pretty       bool
	now          func() time.Time
}

// New creates a Runner for the given scenario files. comparePath may be
// empty.
func New(calc *calculator.Calculator, rates *pricing.Map, incentives *incentive.Catalog, scenarioPath, comparePath string) *Runner {
	return &Runner{
		calc:         calc,
		rates:        rates,
		incentives:   incentives,
		scenarioPath: scenarioPath,
		comparePath:  comparePath,
		lifespan:     impact.DefaultLifespanYears,
		now:          time.Now,
	}
}

// Configured sets up a Runner based on flags.
func Configured(calc *calculator.Calculator, rates *pricing.Map, incentives *incentive.Catalog) *Runner {
	r := New(calc, rates, incentives, "", "")

	scenarioPath := lflag.RequiredString("scenario", "Path to the YAML scenario to estimate")
	comparePath := lflag.String("compare-scenario", "", "Path to a second YAML scenario to compare against --scenario")
	var region incentive.Region
	lflag.JSON(&region, "incentive-region", region, "JSON region used for incentives when the scenario has none (e.g. {\"state\":\"California\",\"utility\":\"Pacific Gas & Electric\"})")
	lifespan := lflag.Int("impact-lifespan-years", impact.DefaultLifespanYears, "System lifespan in years used for the lifetime CO2 figure")
	pretty := lflag.Bool("pretty", false, "Indent the JSON output")

	lflag.Do(func() {
		r.scenarioPath = *scenarioPath
		r.comparePath = *comparePath
		if region != (incentive.Region{}) {
			r.region = &region
		}
		if *lifespan <= 0 {
			panic(fmt.Sprintf("impact-lifespan-years must be positive: %d", *lifespan))
		}
		r.lifespan = *lifespan
		r.pretty = *pretty
	})

	return r
}

// Run estimates the configured scenarios and writes the report to w.
func (r *Runner) Run(ctx context.Context, w io.Writer) error {
	if r.scenarioPath == "" {
		return errors.New("no scenario configured")
	}

	var rep Report
	var alternative Estimate
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rep.Estimate, err = r.estimateFile(gctx, r.scenarioPath)
		return err
	})
	if r.comparePath != "" {
		g.Go(func() error {
			var err error
			alternative, err = r.estimateFile(gctx, r.comparePath)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if r.comparePath != "" {
		c := comparison.Compare(rep.Estimate.Result.Basic, alternative.Result.Basic)
		rep.Alternative = &alternative
		rep.Comparison = &c
		estimates := []Estimate{rep.Estimate, alternative}
		for _, i := range comparison.Rank([]types.CalculatorResult{rep.Estimate.Result.Basic, alternative.Result.Basic}) {
			rep.Ranking = append(rep.Ranking, estimates[i].Scenario)
		}
		log.Ctx(ctx).DebugContext(ctx, "compared scenarios",
			slog.String("recommendation", c.Recommendation),
			slog.Float64("savingsDifference", c.SavingsDifference),
		)
	}

	enc := json.NewEncoder(w)
	if r.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *Runner) estimateFile(ctx context.Context, path string) (Estimate, error) {
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}
	s, err := scenario.Load(ctx, path)
	if err != nil {
		return Estimate{}, err
	}
	if s.Name == "" {
		s.Name = path
	}
	return r.Estimate(ctx, s)
}

// Estimate runs the calculator and the collaborators for one scenario.
func (r *Runner) Estimate(ctx context.Context, s scenario.Scenario) (Estimate, error) {
	ctx = log.WithAttrs(ctx, slog.String("scenario", s.Name))

	p, err := s.Params()
	if err != nil {
		return Estimate{}, fmt.Errorf("invalid scenario %s: %w", s.Name, err)
	}
	res, err := r.calc.Calculate(p)
	if err != nil {
		return Estimate{}, fmt.Errorf("failed to estimate scenario %s: %w", s.Name, err)
	}
	basic := res.Basic

	cfg := r.calc.Config()
	e := Estimate{
		Scenario:  s.Name,
		Currency:  cfg.Currency,
		TotalCost: fmt.Sprintf("%.2f", basic.Costs.Total),
		Result:    res,
		Impact:    impact.Calculate(basic.DailyProduction*365, r.lifespan),
	}
	if rates, err := r.rates.Rates(cfg.Currency); err == nil {
		e.TotalCost = rates.Format(basic.Costs.Total)
	} else {
		log.Ctx(ctx).WarnContext(ctx, "no rates for currency", slog.String("currency", cfg.Currency))
	}
	if l := s.Location; l != nil && l.City == "" && l.Latitude != nil && l.Longitude != nil {
		name, km, err := location.Nearest(*l.Latitude, *l.Longitude)
		if err != nil {
			return Estimate{}, fmt.Errorf("invalid scenario %s: %w", s.Name, err)
		}
		e.NearestCity = name
		e.NearestCityKM = km
	}
	if res.IsAdvanced() {
		summary := solar.Summarize(res.Advanced.SeasonalProduction)
		e.Seasonal = &summary
	}

	region := r.region
	if s.Incentives != nil {
		region = s.Incentives
	}
	if region != nil {
		calc := r.incentives.Calculate(ctx, basic.Costs.Total, basic.BatterySize != nil, *region, r.now())
		e.Incentives = &calc
	}

	log.Ctx(ctx).InfoContext(ctx, "estimated scenario",
		slog.Float64("systemSize", basic.SystemSize),
		slog.Int("panels", basic.NumberOfPanels),
		slog.Float64("totalCost", basic.Costs.Total),
		slog.Bool("advanced", res.IsAdvanced()),
	)
	return e, nil
}
