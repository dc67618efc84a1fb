// Package intent maps a free-text chat message to one canned response by
// evaluating an ordered table of keyword rules.
package intent

import "strings"

// Result describes which rule answered a message.
type Result struct {
	Intent   Intent `json:"intent"`
	Trigger  string `json:"trigger,omitempty"`
	Response string `json:"response"`
}

// Matcher is an immutable rule table. It is safe for concurrent use.
type Matcher struct {
	rules    []Rule
	fallback Rule
}

// NewMatcher builds the site's rule table with cfg interpolated into every
// response template.
func NewMatcher(cfg Config) *Matcher {
	templates := defaultRuleTemplates()
	rules := make([]Rule, len(templates))
	for i, t := range templates {
		rule := t.clone()
		rule.Response = cfg.render(t.Response)
		rules[i] = rule
	}

	return &Matcher{
		rules: rules,
		fallback: Rule{
			Intent:   IntentDefault,
			Response: cfg.render(responseDefault),
		},
	}
}

// NewMatcherWithRules builds a matcher over a caller supplied table. The
// slice is copied; later changes by the caller do not affect evaluation.
func NewMatcherWithRules(rules []Rule, fallback string) *Matcher {
	copied := make([]Rule, len(rules))
	for i, r := range rules {
		copied[i] = r.clone()
	}
	return &Matcher{
		rules:    copied,
		fallback: Rule{Intent: IntentDefault, Response: fallback},
	}
}

// Normalize lowercases the message. Whitespace and diacritics are kept.
func Normalize(message string) string {
	return strings.ToLower(message)
}

// Match returns the response of the first rule with a trigger contained in
// the message, or the default response.
func (m *Matcher) Match(message string) string {
	return m.Classify(message).Response
}

// Classify is Match plus the rule and trigger that fired.
func (m *Matcher) Classify(message string) Result {
	normalized := Normalize(message)

	for _, rule := range m.rules {
		if trigger, ok := rule.matches(normalized); ok {
			return Result{
				Intent:   rule.Intent,
				Trigger:  trigger,
				Response: rule.Response,
			}
		}
	}

	return Result{
		Intent:   m.fallback.Intent,
		Response: m.fallback.Response,
	}
}

// Rules returns a copy of the table in priority order, excluding the default.
func (m *Matcher) Rules() []Rule {
	out := make([]Rule, len(m.rules))
	for i, r := range m.rules {
		out[i] = r.clone()
	}
	return out
}

// DefaultResponse returns the fallback response.
func (m *Matcher) DefaultResponse() string {
	return m.fallback.Response
}

// Response returns the response configured for the intent.
func (m *Matcher) Response(i Intent) (string, bool) {
	if i == IntentDefault {
		return m.fallback.Response, true
	}
	for _, r := range m.rules {
		if r.Intent == i {
			return r.Response, true
		}
	}
	return "", false
}
