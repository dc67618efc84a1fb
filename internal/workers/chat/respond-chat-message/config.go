// internal/workers/chat/respond-chat-message/config.go
package respondchatmessage

import "time"

type Config struct {
	Timeout          time.Duration
	MaxMessageLength int
	// RequireAnalytics fails the job with retries when the intent event
	// cannot be stored instead of answering without it.
	RequireAnalytics bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout:          30 * time.Second,
		MaxMessageLength: 1000,
	}
}
