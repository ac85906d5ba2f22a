package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCostBreakdownTotal(t *testing.T) {
	t.Run("without battery", func(t *testing.T) {
		c := CostBreakdown{Panels: 1, Inverter: 2, Mounting: 3, Installation: 4, Permits: 5}
		assert.Equal(t, 15.0, c.Total())
	})

	t.Run("with battery", func(t *testing.T) {
		battery := 10.0
		c := CostBreakdown{Panels: 1, Inverter: 2, Mounting: 3, Battery: &battery, Installation: 4, Permits: 5}
		assert.Equal(t, 25.0, c.Total())
	})
}

func TestSavingsCalculationJSON(t *testing.T) {
	t.Run("infinite payback encodes as null", func(t *testing.T) {
		s := SavingsCalculation{PaybackPeriod: math.Inf(1), TwentyYearSavings: -100}
		assert.False(t, s.PaysBack())

		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"annual":0,"monthly":0,"paybackPeriod":null,"twentyYearSavings":-100}`, string(b))

		var decoded SavingsCalculation
		require.NoError(t, json.Unmarshal(b, &decoded))
		assert.True(t, math.IsInf(decoded.PaybackPeriod, 1))
	})

	t.Run("finite payback", func(t *testing.T) {
		s := SavingsCalculation{Annual: 1200, Monthly: 100, PaybackPeriod: 8.5, TwentyYearSavings: 13800}
		assert.True(t, s.PaysBack())

		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.JSONEq(t, `{"annual":1200,"monthly":100,"paybackPeriod":8.5,"twentyYearSavings":13800}`, string(b))
	})
}

func TestResultMarshalJSON(t *testing.T) {
	battery := 1000.0
	basic := CalculatorResult{
		SystemSize:     4,
		NumberOfPanels: 10,
		BatterySize:    &battery,
		Savings:        SavingsCalculation{PaybackPeriod: 10},
	}

	t.Run("basic", func(t *testing.T) {
		r := Result{Basic: basic}
		assert.False(t, r.IsAdvanced())

		b, err := json.Marshal(r)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.Equal(t, 10.0, m["numberOfPanels"])
		assert.Equal(t, 1000.0, m["batterySize"])
		assert.NotContains(t, m, "seasonalProduction")
	})

	t.Run("advanced", func(t *testing.T) {
		r := Result{
			Basic: basic,
			Advanced: &AdvancedCalculatorResult{
				CalculatorResult:   basic,
				SeasonalProduction: []SeasonalDataPoint{{Month: 1}},
				OptimalAzimuth:     180,
			},
		}
		assert.True(t, r.IsAdvanced())

		b, err := json.Marshal(r)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(b, &m))
		assert.Equal(t, 10.0, m["numberOfPanels"])
		assert.Equal(t, 180.0, m["optimalAzimuth"])
		assert.Len(t, m["seasonalProduction"], 1)
	})

	t.Run("no battery omits field", func(t *testing.T) {
		b, err := json.Marshal(Result{Basic: CalculatorResult{Savings: SavingsCalculation{PaybackPeriod: 1}}})
		require.NoError(t, err)
		assert.NotContains(t, string(b), "batterySize")
		assert.NotContains(t, string(b), "battery\"")
	})
}
