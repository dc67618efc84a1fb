// internal/chat/intent/rule.go
package intent

import "strings"

// Intent identifies one conversational intent of the rule table.
type Intent string

const (
	IntentScheduleMeeting Intent = "schedule_meeting"
	IntentSupportContact  Intent = "support_contact"
	IntentPriceObjection  Intent = "price_objection"
	IntentTimeObjection   Intent = "time_objection"
	IntentTrustObjection  Intent = "trust_objection"
	IntentMethodology     Intent = "methodology"
	IntentServices        Intent = "services"
	IntentCalculator      Intent = "calculator"
	IntentGreeting        Intent = "greeting"
	IntentThanks          Intent = "thanks"
	IntentRejection       Intent = "rejection"
	IntentDefault         Intent = "default"
)

// Placeholders replaced at construction time with Config values.
const (
	PlaceholderSchedulingURL = "{{schedulingURL}}"
	PlaceholderSupportEmail  = "{{supportEmail}}"
)

// Rule is one (trigger set, response) pair. Triggers are lowercase literals.
type Rule struct {
	Intent   Intent   `json:"intent"`
	Triggers []string `json:"triggers"`
	Response string   `json:"response"`
}

// matches reports the first trigger contained in the normalized message.
func (r Rule) matches(normalized string) (string, bool) {
	for _, trigger := range r.Triggers {
		if trigger == "" {
			continue
		}
		if strings.Contains(normalized, trigger) {
			return trigger, true
		}
	}
	return "", false
}

func (r Rule) clone() Rule {
	triggers := make([]string, len(r.Triggers))
	copy(triggers, r.Triggers)
	return Rule{Intent: r.Intent, Triggers: triggers, Response: r.Response}
}

// Config holds the two values interpolated into response templates.
type Config struct {
	SchedulingURL string
	SupportEmail  string
}

const (
	DefaultSchedulingURL = "https://glxpartners.typeform.com/agendar"
	DefaultSupportEmail  = "contato@glxpartners.com.br"
)

// DefaultConfig returns the links the site shipped with.
func DefaultConfig() Config {
	return Config{
		SchedulingURL: DefaultSchedulingURL,
		SupportEmail:  DefaultSupportEmail,
	}
}

func (c Config) render(template string) string {
	return strings.NewReplacer(
		PlaceholderSchedulingURL, c.SchedulingURL,
		PlaceholderSupportEmail, c.SupportEmail,
	).Replace(template)
}
