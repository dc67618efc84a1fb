package widget

import (
	"errors"
	"fmt"
	"html"
	"math/rand/v2"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrEmptyMessage   = errors.New("EMPTY_MESSAGE")
	ErrMessageTooLong = errors.New("MESSAGE_TOO_LONG")
)

// Classifier is satisfied by *intent.Matcher.
type Classifier interface {
	Classify(message string) intent.Result
}

// Turn is one visitor message and Luna's reply.
type Turn struct {
	ID           string        `json:"id"`
	UserHTML     string        `json:"userHtml"`
	Intent       intent.Intent `json:"intent"`
	Trigger      string        `json:"trigger,omitempty"`
	ResponseHTML string        `json:"response"`
	Delay        time.Duration `json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// DelayMillis is the simulated typing delay the client should wait before
// rendering the reply.
func (t *Turn) DelayMillis() int64 {
	return t.Delay.Milliseconds()
}

// ConversationConfig bounds visitor input and the typing delay.
type ConversationConfig struct {
	MaxMessageLength int // runes; 0 disables the check
	MinDelay         time.Duration
	MaxDelay         time.Duration
}

// DefaultConversationConfig matches the widget as shipped.
func DefaultConversationConfig() ConversationConfig {
	return ConversationConfig{
		MaxMessageLength: 1000,
		MinDelay:         1000 * time.Millisecond,
		MaxDelay:         2000 * time.Millisecond,
	}
}

// Conversation turns visitor messages into reply turns. It keeps no history.
type Conversation struct {
	classifier Classifier
	config     ConversationConfig
	policy     *bluemonday.Policy
	randN      func(n int64) int64
	now        func() time.Time
}

func NewConversation(classifier Classifier, config ConversationConfig) *Conversation {
	return &Conversation{
		classifier: classifier,
		config:     config,
		policy:     bluemonday.StrictPolicy(),
		randN:      rand.Int64N,
		now:        time.Now,
	}
}

// Send validates message and classifies it. The returned error wraps
// ErrEmptyMessage or ErrMessageTooLong.
func (c *Conversation) Send(message string) (*Turn, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return nil, ErrEmptyMessage
	}

	if max := c.config.MaxMessageLength; max > 0 {
		if n := utf8.RuneCountInString(trimmed); n > max {
			return nil, fmt.Errorf("%w: %d characters, max %d", ErrMessageTooLong, n, max)
		}
	}

	result := c.classifier.Classify(trimmed)

	return &Turn{
		ID:           uuid.NewString(),
		UserHTML:     c.userHTML(trimmed),
		Intent:       result.Intent,
		Trigger:      result.Trigger,
		ResponseHTML: result.Response,
		Delay:        c.delay(),
		CreatedAt:    c.now().UTC(),
	}, nil
}

// userHTML escapes the visitor's text so markup is shown as typed. The strict
// policy runs over the escaped text and leaves it unchanged.
func (c *Conversation) userHTML(text string) string {
	return c.policy.Sanitize(html.EscapeString(text))
}

// delay draws from [MinDelay, MaxDelay).
func (c *Conversation) delay() time.Duration {
	spread := c.config.MaxDelay - c.config.MinDelay
	if spread <= 0 {
		return c.config.MinDelay
	}
	return c.config.MinDelay + time.Duration(c.randN(int64(spread)))
}
