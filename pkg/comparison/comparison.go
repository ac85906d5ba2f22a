// Package comparison weighs two estimates against each other.
package comparison

import (
	"encoding/json"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/raterudder/solarcalc/pkg/types"
)

// Recommendations produced by Compare.
const (
	BetterReturnsB = "System B offers better financial returns with faster payback."
	HigherSavingsB = "System B offers higher savings but takes longer to pay back."
	LongTermA      = "System A offers better long-term savings with slower payback."
	CostEffectiveA = "System A appears to be more cost-effective overall."
)

// Result holds the differences of system B relative to system A.
type Result struct {
	// SavingsDifference is the annual savings of B minus A.
	SavingsDifference float64 `json:"savingsDifference"`
	// PaybackDifference is the payback period of B minus A in years. It is
	// -Inf when only B pays back, +Inf when only A does and 0 when neither
	// does.
	PaybackDifference float64 `json:"paybackDifference"`
	// EfficiencyDifference is the daily production per installed kW of B
	// minus A.
	EfficiencyDifference float64 `json:"efficiencyDifference"`
	Recommendation       string  `json:"recommendation"`
}

// Compare returns how b differs from a.
func Compare(a, b types.CalculatorResult) Result {
	r := Result{
		SavingsDifference:    b.Savings.Annual - a.Savings.Annual,
		PaybackDifference:    paybackDifference(a.Savings, b.Savings),
		EfficiencyDifference: Yield(b) - Yield(a),
	}

	switch {
	case r.SavingsDifference > 0 && r.PaybackDifference < 0:
		r.Recommendation = BetterReturnsB
	case r.SavingsDifference > 0 && r.PaybackDifference > 0:
		r.Recommendation = HigherSavingsB
	case r.SavingsDifference < 0 && r.PaybackDifference < 0:
		r.Recommendation = LongTermA
	default:
		r.Recommendation = CostEffectiveA
	}
	return r
}

// Yield is the daily production per installed kW, 0 for an empty system.
func Yield(r types.CalculatorResult) float64 {
	if !(r.SystemSize > 0) {
		return 0
	}
	return r.DailyProduction / r.SystemSize
}

func paybackDifference(a, b types.SavingsCalculation) float64 {
	switch {
	case !a.PaysBack() && !b.PaysBack():
		return 0
	case !a.PaysBack():
		return math.Inf(-1)
	case !b.PaysBack():
		return math.Inf(1)
	}
	return b.PaybackPeriod - a.PaybackPeriod
}

// Rank orders results from the fastest to the slowest payback and returns
// their indexes. Results that never pay back come last.
func Rank(results []types.CalculatorResult) []int {
	payback := make([]float64, len(results))
	for i, r := range results {
		payback[i] = r.Savings.PaybackPeriod
		if !r.Savings.PaysBack() {
			payback[i] = math.Inf(1)
		}
	}
	idx := make([]int, len(results))
	floats.Argsort(payback, idx)
	return idx
}

type resultJSON struct {
	SavingsDifference    float64  `json:"savingsDifference"`
	PaybackDifference    *float64 `json:"paybackDifference"`
	EfficiencyDifference float64  `json:"efficiencyDifference"`
	Recommendation       string   `json:"recommendation"`
}

// MarshalJSON encodes an infinite payback difference as null.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		SavingsDifference:    r.SavingsDifference,
		EfficiencyDifference: r.EfficiencyDifference,
		Recommendation:       r.Recommendation,
	}
	if !math.IsInf(r.PaybackDifference, 0) && !math.IsNaN(r.PaybackDifference) {
		d := r.PaybackDifference
		out.PaybackDifference = &d
	}
	return json.Marshal(out)
}
