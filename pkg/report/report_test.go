package report

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/levenlabs/go-lflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raterudder/solarcalc/pkg/calculator"
	"github.com/raterudder/solarcalc/pkg/comparison"
	"github.com/raterudder/solarcalc/pkg/incentive"
	"github.com/raterudder/solarcalc/pkg/pricing"
	"github.com/raterudder/solarcalc/pkg/scenario"
)

func newTestRunner(t *testing.T, scenarioPath, comparePath string) *Runner {
	t.Helper()
	calc, err := calculator.New(calculator.DefaultConfig())
	require.NoError(t, err)
	r := New(calc, pricing.NewMap(), incentive.NewCatalog(), scenarioPath, comparePath)
	r.now = func() time.Time {
		return time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	}
	return r
}

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestRun(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	home := writeFile(t, dir, "home.yaml", `
version: 3
name: home
consumption: 30
panelEfficiency: 20
incentives:
  state: California
  utility: Pacific Gas & Electric
`)
	pro := writeFile(t, dir, "pro.yaml", `
version: 3
name: pro
consumption: 30
panelEfficiency: 22
professional: true
location:
  city: Los Angeles
advanced:
  tiltAngle: 30
  azimuthAngle: 180
  shadingFactor: 0.05
  efficiency: 22
  temperature: 28
`)

	t.Run("single scenario", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, newTestRunner(t, home, "").Run(ctx, &buf))

		var out map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.NotContains(t, out, "alternative")
		assert.NotContains(t, out, "comparison")

		var est struct {
			Scenario   string                 `json:"scenario"`
			Currency   string                 `json:"currency"`
			TotalCost  string                 `json:"totalCost"`
			Result     map[string]any         `json:"result"`
			Incentives *incentive.Calculation `json:"incentives"`
		}
		require.NoError(t, json.Unmarshal(out["estimate"], &est))
		assert.Equal(t, "home", est.Scenario)
		assert.Equal(t, "USD", est.Currency)
		assert.Equal(t, "$113100.00", est.TotalCost)
		assert.EqualValues(t, 79, est.Result["numberOfPanels"])
		require.NotNil(t, est.Incentives)
		assert.Len(t, est.Incentives.Federal, 1)
		assert.Len(t, est.Incentives.Utility, 1)
	})

	t.Run("comparison", func(t *testing.T) {
		var buf bytes.Buffer
		r := newTestRunner(t, home, pro)
		r.pretty = true
		require.NoError(t, r.Run(ctx, &buf))
		assert.Contains(t, buf.String(), "\n  \"estimate\"")

		var out struct {
			Alternative *struct {
				Seasonal map[string]any `json:"seasonal"`
			} `json:"alternative"`
			Comparison *comparison.Result `json:"comparison"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		require.NotNil(t, out.Alternative)
		assert.NotEmpty(t, out.Alternative.Seasonal)
		require.NotNil(t, out.Comparison)
		assert.NotEmpty(t, out.Comparison.Recommendation)
	})

	t.Run("ranking", func(t *testing.T) {
		storage := writeFile(t, dir, "storage.yaml", `
version: 3
name: storage
consumption: 30
panelEfficiency: 20
systemType: hybrid
autonomyDays: 2
`)
		var buf bytes.Buffer
		require.NoError(t, newTestRunner(t, storage, home).Run(ctx, &buf))

		var out struct {
			Ranking []string `json:"ranking"`
		}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
		assert.Equal(t, []string{"home", "storage"}, out.Ranking)

		buf.Reset()
		require.NoError(t, newTestRunner(t, home, "").Run(ctx, &buf))
		assert.NotContains(t, buf.String(), "ranking")
	})

	t.Run("bad scenario", func(t *testing.T) {
		bad := writeFile(t, dir, "bad.yaml", "version: 3\nconsumption: -1\npanelEfficiency: 20\n")
		err := newTestRunner(t, home, bad).Run(ctx, &bytes.Buffer{})
		assert.ErrorIs(t, err, calculator.ErrInvalidParameter)
	})

	t.Run("no scenario", func(t *testing.T) {
		assert.Error(t, newTestRunner(t, "", "").Run(ctx, &bytes.Buffer{}))
	})
}

func TestEstimate(t *testing.T) {
	ctx := context.Background()
	r := newTestRunner(t, "", "")

	t.Run("default region", func(t *testing.T) {
		r.region = &incentive.Region{State: "California", Utility: "Southern California Edison"}
		t.Cleanup(func() { r.region = nil })

		e, err := r.Estimate(ctx, scenario.Scenario{
			Name:            "storage",
			Consumption:     10,
			PanelEfficiency: 20,
			SystemType:      scenario.Hybrid,
			AutonomyDays:    1,
		})
		require.NoError(t, err)
		require.NotNil(t, e.Incentives)
		assert.Len(t, e.Incentives.State, 1)
		assert.Len(t, e.Incentives.Utility, 1)
		assert.Nil(t, e.Seasonal)
	})

	t.Run("nearest city", func(t *testing.T) {
		lat, lon := 34.0, -118.3
		e, err := r.Estimate(ctx, scenario.Scenario{
			Name:            "coordinates",
			Consumption:     10,
			PanelEfficiency: 20,
			Location:        &scenario.Location{Latitude: &lat, Longitude: &lon},
		})
		require.NoError(t, err)
		assert.Equal(t, "Los Angeles", e.NearestCity)
		assert.Greater(t, e.NearestCityKM, 0.0)
		assert.Less(t, e.NearestCityKM, 20.0)

		e, err = r.Estimate(ctx, scenario.Scenario{
			Name:            "city",
			Consumption:     10,
			PanelEfficiency: 20,
			Location:        &scenario.Location{City: "Los Angeles"},
		})
		require.NoError(t, err)
		assert.Empty(t, e.NearestCity)
	})

	t.Run("impact", func(t *testing.T) {
		r.lifespan = 30
		t.Cleanup(func() { r.lifespan = 25 })

		e, err := r.Estimate(ctx, scenario.Scenario{Name: "plain", Consumption: 10, PanelEfficiency: 20})
		require.NoError(t, err)
		assert.Nil(t, e.Incentives)
		assert.Equal(t, 30, e.Impact.LifespanYears)
		assert.InDelta(t, e.Result.Basic.DailyProduction*365*0.855/1000, e.Impact.AnnualCO2Tons, 1e-9)
	})
}

func TestConfigured(t *testing.T) {
	calc, err := calculator.New(calculator.DefaultConfig())
	require.NoError(t, err)
	configure := func(src lflag.SourceStub) *Runner {
		lflag.Reset()
		t.Cleanup(lflag.Reset)
		r := Configured(calc, pricing.NewMap(), incentive.NewCatalog())
		lflag.Parse(src)
		return r
	}

	t.Run("defaults", func(t *testing.T) {
		r := configure(lflag.SourceStub{"scenario": "home.yaml"})
		assert.Equal(t, "home.yaml", r.scenarioPath)
		assert.Empty(t, r.comparePath)
		assert.Nil(t, r.region)
		assert.Equal(t, 25, r.lifespan)
		assert.False(t, r.pretty)
	})

	t.Run("all flags", func(t *testing.T) {
		r := configure(lflag.SourceStub{
			"scenario":              "home.yaml",
			"compare-scenario":      "pro.yaml",
			"incentive-region":      `{"state":"California"}`,
			"impact-lifespan-years": "30",
			"pretty":                "true",
		})
		assert.Equal(t, "pro.yaml", r.comparePath)
		require.NotNil(t, r.region)
		assert.Equal(t, "California", r.region.State)
		assert.Equal(t, 30, r.lifespan)
		assert.True(t, r.pretty)
	})

	t.Run("lifespan must be a positive integer", func(t *testing.T) {
		assert.Panics(t, func() {
			configure(lflag.SourceStub{"scenario": "home.yaml", "impact-lifespan-years": "0"})
		})
		assert.Panics(t, func() {
			configure(lflag.SourceStub{"scenario": "home.yaml", "impact-lifespan-years": "25.5"})
		})
	})
}
