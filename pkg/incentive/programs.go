package incentive

import (
	"math"
	"time"
)

const (
	// FederalTaxCreditRate is the share of the system cost credited by the
	// residential clean energy credit.
	FederalTaxCreditRate = 0.30

	sgipRate = 0.20
	sgipCap  = 5000.0
)

func defaultPrograms() []Program {
	return []Program{
		{
			Name:        "Federal Solar Tax Credit",
			Kind:        KindTaxCredit,
			Level:       LevelFederal,
			Description: "30% federal tax credit for solar installations",
			Requirements: []string{
				"Must be installed between 2024-2032",
				"Must be a residential installation",
				"Must be used as a primary or secondary residence",
			},
			Link:  "https://www.energy.gov/savings/residential-clean-energy-credit",
			Valid: Through(2032, time.December, 31),
			Amount: func(cost float64) float64 {
				return cost * FederalTaxCreditRate
			},
		},
		{
			Name:        "Self-Generation Incentive Program (SGIP)",
			Kind:        KindRebate,
			Level:       LevelState,
			Description: "California state rebate for energy storage systems",
			Requirements: []string{
				"Must include battery storage",
				"Must be a Pacific Gas & Electric, Southern California Edison, Southern California Gas, or San Diego Gas & Electric customer",
			},
			Link:            "https://www.cpuc.ca.gov/industries-and-topics/electrical-energy/demand-side-management/self-generation-incentive-program",
			State:           "California",
			RequiresBattery: true,
			Amount: func(cost float64) float64 {
				return math.Min(cost*sgipRate, sgipCap)
			},
		},
		{
			Name:        "PG&E Solar Rebate",
			Kind:        KindRebate,
			Level:       LevelUtility,
			Description: "One-time rebate for new solar installations",
			Requirements: []string{
				"Must be a PG&E customer",
				"System must be grid-connected",
			},
			Utility: "Pacific Gas & Electric",
			Amount:  flat(1000),
		},
		{
			Name:        "SCE Storage Incentive",
			Kind:        KindRebate,
			Level:       LevelUtility,
			Description: "Rebate for adding battery storage to solar systems",
			Requirements: []string{
				"Must be an SCE customer",
				"Must install qualified battery system",
			},
			Utility:         "Southern California Edison",
			RequiresBattery: true,
			Amount:          flat(2000),
		},
	}
}

func flat(amount float64) func(float64) float64 {
	return func(float64) float64 {
		return amount
	}
}
