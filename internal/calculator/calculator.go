// Package calculator estimates how much money operational waste costs a
// clinic, backing the site's "Calculadora de Impacto".
package calculator

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WasteRecoveryRate is the share of operational waste the method recovers.
const WasteRecoveryRate = 0.6

// Inputs are the three slider values.
type Inputs struct {
	MonthlyRevenue int `json:"monthlyRevenue"`
	WastePercent   int `json:"wastePercent"`
	MarginPercent  int `json:"marginPercent"`
}

// Result is the raw estimate.
type Result struct {
	MonthlyWaste   float64 `json:"monthlyWaste"`
	AnnualRecovery float64 `json:"annualRecovery"`
	NewMargin      float64 `json:"newMargin"`
}

// Estimate computes annual recovery and projected margin.
func Estimate(in Inputs) Result {
	revenue := float64(in.MonthlyRevenue)
	monthlyWaste := revenue * (float64(in.WastePercent) / 100)
	annualRecovery := monthlyWaste * WasteRecoveryRate * 12

	newMargin := float64(in.MarginPercent)
	if revenue > 0 {
		newMargin += (monthlyWaste * WasteRecoveryRate / revenue) * 100
	}

	return Result{
		MonthlyWaste:   monthlyWaste,
		AnnualRecovery: annualRecovery,
		NewMargin:      newMargin,
	}
}

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

const currencyPrefix = "R$\u00a0"

// FormatCurrency renders v as whole Brazilian reais, e.g. "R$\u00a0360.000".
// The symbol is followed by a no-break space, as pt-BR Intl formats it.
func FormatCurrency(v float64) string {
	rounded := int64(math.Round(v))
	if rounded < 0 {
		return "-" + currencyPrefix + brPrinter.Sprintf("%d", -rounded)
	}
	return currencyPrefix + brPrinter.Sprintf("%d", rounded)
}

// FormatPercent renders v with the given number of decimals and a % suffix.
func FormatPercent(v float64, decimals int) string {
	return fmt.Sprintf("%.*f%%", decimals, v)
}

// Range bounds one slider.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

func (r Range) clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if r.Max > r.Min && v > r.Max {
		return r.Max
	}
	return v
}

// Limits bounds every slider of the calculator.
type Limits struct {
	MonthlyRevenue Range `json:"monthlyRevenue"`
	WastePercent   Range `json:"wastePercent"`
	MarginPercent  Range `json:"marginPercent"`
}

// DefaultLimits mirrors the slider attributes on the landing page.
func DefaultLimits() Limits {
	return Limits{
		MonthlyRevenue: Range{Min: 50000, Max: 2000000},
		WastePercent:   Range{Min: 5, Max: 40},
		MarginPercent:  Range{Min: 5, Max: 50},
	}
}

// Snapshot is what the widget displays.
type Snapshot struct {
	Inputs             Inputs `json:"inputs"`
	Result             Result `json:"result"`
	MonthlyRevenueText string `json:"monthlyRevenueText"`
	WastePercentText   string `json:"wastePercentText"`
	MarginPercentText  string `json:"marginPercentText"`
	AnnualRecoveryText string `json:"annualRecoveryText"`
	NewMarginText      string `json:"newMarginText"`
}

// Calculator is the slider-backed view-model.
type Calculator struct {
	mu     sync.RWMutex
	limits Limits
	inputs Inputs
}

// New returns a calculator with inputs clamped to limits.
func New(limits Limits, initial Inputs) *Calculator {
	c := &Calculator{limits: limits}
	c.inputs = c.clamp(initial)
	return c
}

func (c *Calculator) clamp(in Inputs) Inputs {
	return Inputs{
		MonthlyRevenue: c.limits.MonthlyRevenue.clamp(in.MonthlyRevenue),
		WastePercent:   c.limits.WastePercent.clamp(in.WastePercent),
		MarginPercent:  c.limits.MarginPercent.clamp(in.MarginPercent),
	}
}

func (c *Calculator) SetMonthlyRevenue(v int) {
	c.mu.Lock()
	c.inputs.MonthlyRevenue = c.limits.MonthlyRevenue.clamp(v)
	c.mu.Unlock()
}

func (c *Calculator) SetWastePercent(v int) {
	c.mu.Lock()
	c.inputs.WastePercent = c.limits.WastePercent.clamp(v)
	c.mu.Unlock()
}

func (c *Calculator) SetMarginPercent(v int) {
	c.mu.Lock()
	c.inputs.MarginPercent = c.limits.MarginPercent.clamp(v)
	c.mu.Unlock()
}

// Inputs returns the current (clamped) slider values.
func (c *Calculator) Inputs() Inputs {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.inputs
}

// Snapshot evaluates the current inputs.
func (c *Calculator) Snapshot() Snapshot {
	return NewSnapshot(c.Inputs())
}

// NewSnapshot evaluates in and formats every display value.
func NewSnapshot(in Inputs) Snapshot {
	res := Estimate(in)
	return Snapshot{
		Inputs:             in,
		Result:             res,
		MonthlyRevenueText: FormatCurrency(float64(in.MonthlyRevenue)),
		WastePercentText:   fmt.Sprintf("%d%%", in.WastePercent),
		MarginPercentText:  fmt.Sprintf("%d%%", in.MarginPercent),
		AnnualRecoveryText: FormatCurrency(res.AnnualRecovery),
		NewMarginText:      FormatPercent(res.NewMargin, 1),
	}
}
