// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"
)

const CatalogVersion = "1.0.0"

// BuildCatalog describes rules in priority order followed by the default.
// Responses are included only when withResponses is set.
func BuildCatalog(m *intent.Matcher, withResponses bool) *IntentCatalog {
	rules := m.Rules()
	entries := make([]IntentEntry, 0, len(rules)+1)

	for i, r := range rules {
		entry := IntentEntry{
			Priority: i,
			Intent:   string(r.Intent),
			Triggers: r.Triggers,
		}
		if withResponses {
			entry.Response = r.Response
		}
		entries = append(entries, entry)
	}

	fallback := IntentEntry{
		Priority: len(rules),
		Intent:   string(intent.IntentDefault),
		Triggers: []string{},
	}
	if withResponses {
		fallback.Response = m.DefaultResponse()
	}
	entries = append(entries, fallback)

	return &IntentCatalog{
		Version:     CatalogVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Intents:     entries,
	}
}

func LoadCatalog(path string) (*IntentCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c IntentCatalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return &c, nil
}

func WriteCatalog(path string, c *IntentCatalog) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Validate checks the catalog is a well-formed rule table.
func (c *IntentCatalog) Validate() error {
	if len(c.Intents) == 0 {
		return fmt.Errorf("catalog contains no intents")
	}

	seen := make(map[string]bool)
	for i, e := range c.Intents {
		if e.Intent == "" {
			return fmt.Errorf("entry %d missing intent", i)
		}
		if seen[e.Intent] {
			return fmt.Errorf("duplicate intent: %s", e.Intent)
		}
		seen[e.Intent] = true

		if e.Priority != i {
			return fmt.Errorf("intent %s has priority %d at position %d", e.Intent, e.Priority, i)
		}

		isDefault := e.Intent == string(intent.IntentDefault)
		if isDefault && i != len(c.Intents)-1 {
			return fmt.Errorf("default intent must be last")
		}
		if !isDefault && len(e.Triggers) == 0 {
			return fmt.Errorf("intent %s has no triggers", e.Intent)
		}
		for _, t := range e.Triggers {
			if t != strings.ToLower(t) {
				return fmt.Errorf("intent %s trigger %q is not lowercase", e.Intent, t)
			}
		}
	}

	return nil
}

// Shadowed lists triggers that an earlier rule always wins over.
func (c *IntentCatalog) Shadowed() []Shadow {
	var out []Shadow
	for i, later := range c.Intents {
		for _, trigger := range later.Triggers {
			if s, ok := findShadow(c.Intents[:i], later.Intent, trigger); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func findShadow(earlier []IntentEntry, name, trigger string) (Shadow, bool) {
	for _, e := range earlier {
		for _, t := range e.Triggers {
			if t != "" && strings.Contains(trigger, t) {
				return Shadow{Intent: name, Trigger: trigger, ShadowedBy: e.Intent, ByTrigger: t}, true
			}
		}
	}
	return Shadow{}, false
}

// Rules converts the catalog back into a rule table, excluding the default.
func (c *IntentCatalog) Rules() []intent.Rule {
	rules := make([]intent.Rule, 0, len(c.Intents))
	for _, e := range c.Intents {
		if e.Intent == string(intent.IntentDefault) {
			continue
		}
		rules = append(rules, intent.Rule{
			Intent:   intent.Intent(e.Intent),
			Triggers: e.Triggers,
			Response: e.Response,
		})
	}
	return rules
}

// DefaultResponse is the reply of the default entry, or "" when the catalog
// has none.
func (c *IntentCatalog) DefaultResponse() string {
	for _, e := range c.Intents {
		if e.Intent == string(intent.IntentDefault) {
			return e.Response
		}
	}
	return ""
}

// Matcher builds a matcher serving the catalog. The catalog must be valid,
// carry responses and end with the default entry.
func (c *IntentCatalog) Matcher() (*intent.Matcher, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if last := c.Intents[len(c.Intents)-1]; last.Intent != string(intent.IntentDefault) {
		return nil, fmt.Errorf("catalog has no default intent")
	}
	for _, e := range c.Intents {
		if e.Response == "" {
			return nil, fmt.Errorf("intent %s has no response", e.Intent)
		}
	}
	return intent.NewMatcherWithRules(c.Rules(), c.DefaultResponse()), nil
}
