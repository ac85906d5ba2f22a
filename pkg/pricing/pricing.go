package pricing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/levenlabs/go-lflag"
)

// ErrUnknownCurrency is returned when no rates are known for a currency.
var ErrUnknownCurrency = errors.New("unknown currency")

// Rates are the market figures for a single currency.
type Rates struct {
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
	// ElectricityRate is the average retail price of grid electricity per kWh.
	ElectricityRate float64 `json:"electricityRate"`
}

// Format renders an amount with the currency symbol, e.g. "$1234.50".
func (r Rates) Format(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-%s%.2f", r.Symbol, -amount)
	}
	return fmt.Sprintf("%s%.2f", r.Symbol, amount)
}

var defaultRates = []Rates{
	{Currency: "USD", Symbol: "$", ElectricityRate: 0.14},
	{Currency: "EUR", Symbol: "€", ElectricityRate: 0.25},
	{Currency: "GBP", Symbol: "£", ElectricityRate: 0.21},
	{Currency: "AUD", Symbol: "A$", ElectricityRate: 0.20},
	{Currency: "CAD", Symbol: "C$", ElectricityRate: 0.13},
}

// Map manages the rates known for each currency.
type Map struct {
	mu    sync.Mutex
	rates map[string]Rates
}

// NewMap creates a Map preloaded with the default average rates.
func NewMap() *Map {
	m := &Map{
		rates: make(map[string]Rates, len(defaultRates)),
	}
	for _, r := range defaultRates {
		m.rates[r.Currency] = r
	}
	return m
}

// Rates returns the rates for the given currency code. Codes are case
// insensitive.
func (m *Map) Rates(currency string) (Rates, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.rates[strings.ToUpper(currency)]; ok {
		return r, nil
	}
	return Rates{}, fmt.Errorf("%w: %s", ErrUnknownCurrency, currency)
}

// SetRates adds or replaces the rates for r.Currency.
func (m *Map) SetRates(r Rates) error {
	if r.Currency == "" {
		return errors.New("currency is required")
	}
	if r.ElectricityRate < 0 {
		return fmt.Errorf("electricity rate for %s must not be negative", r.Currency)
	}
	r.Currency = strings.ToUpper(r.Currency)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates[r.Currency] = r
	return nil
}

// Currencies returns the known currency codes in sorted order.
func (m *Map) Currencies() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.rates))
	for c := range m.rates {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Configured creates a Map with the default rates plus any overrides given
// in flags.
func Configured() *Map {
	m := NewMap()

	var overrides []Rates
	lflag.JSON(&overrides, "electricity-rates", overrides, "JSON list of rates added to or replacing the defaults (e.g. [{\"currency\":\"JPY\",\"symbol\":\"¥\",\"electricityRate\":31}])")

	lflag.Do(func() {
		for _, r := range overrides {
			if err := m.SetRates(r); err != nil {
				panic(fmt.Sprintf("invalid electricity-rates: %v", err))
			}
		}
	})

	return m
}
