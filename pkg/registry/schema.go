// pkg/registry/schema.go
package registry

// IntentCatalog is the reviewable JSON form of the chat rule table.
type IntentCatalog struct {
	Version     string        `json:"version"`
	GeneratedAt string        `json:"generatedAt"`
	Intents     []IntentEntry `json:"intents"`
}

// IntentEntry is one rule. Priority 0 is evaluated first; the default entry
// has no triggers and comes last.
type IntentEntry struct {
	Priority int      `json:"priority"`
	Intent   string   `json:"intent"`
	Triggers []string `json:"triggers"`
	Response string   `json:"response,omitempty"`
}

// Shadow is a trigger that can never fire because an earlier rule has a
// trigger contained in it.
type Shadow struct {
	Intent     string `json:"intent"`
	Trigger    string `json:"trigger"`
	ShadowedBy string `json:"shadowedBy"`
	ByTrigger  string `json:"byTrigger"`
}
