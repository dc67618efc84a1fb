// cmd/chat-server/wiring.go
package main

import (
	"fmt"

	"github.com/eumatoliveira/leanhealth-websit/internal/calculator"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/config"
	"github.com/eumatoliveira/leanhealth-websit/pkg/registry"
)

func calculatorLimits(c config.CalculatorConfig) calculator.Limits {
	return calculator.Limits{
		MonthlyRevenue: calculator.Range{Min: c.MonthlyRevenue.Min, Max: c.MonthlyRevenue.Max},
		WastePercent:   calculator.Range{Min: c.WastePercent.Min, Max: c.WastePercent.Max},
		MarginPercent:  calculator.Range{Min: c.MarginPercent.Min, Max: c.MarginPercent.Max},
	}
}

// newMatcher serves the catalog at chat.catalog_path when set, otherwise the
// built-in rules rendered with the configured links.
func newMatcher(c config.ChatConfig) (*intent.Matcher, error) {
	if c.CatalogPath == "" {
		return intent.NewMatcher(intent.Config{
			SchedulingURL: c.SchedulingURL,
			SupportEmail:  c.SupportEmail,
		}), nil
	}

	catalog, err := registry.LoadCatalog(c.CatalogPath)
	if err != nil {
		return nil, err
	}
	m, err := catalog.Matcher()
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", c.CatalogPath, err)
	}
	return m, nil
}
