// internal/workers/chat/respond-chat-message/models.go
package respondchatmessage

type Input struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	IntentAnalysis IntentAnalysis `json:"intentAnalysis"`
	Response       string         `json:"response"`
}

type IntentAnalysis struct {
	PrimaryIntent  string `json:"primaryIntent"`
	MatchedTrigger string `json:"matchedTrigger,omitempty"`
}
