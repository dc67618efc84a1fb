package widget

import (
	"strings"
	"testing"
	"time"

	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConversation(cfg ConversationConfig) *Conversation {
	return NewConversation(intent.NewMatcher(intent.DefaultConfig()), cfg)
}

func TestConversation_Send(t *testing.T) {
	c := newTestConversation(DefaultConversationConfig())

	turn, err := c.Send("  Quero agendar uma reunião  ")
	require.NoError(t, err)

	_, parseErr := uuid.Parse(turn.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, intent.IntentScheduleMeeting, turn.Intent)
	assert.Equal(t, "agendar", turn.Trigger)
	assert.Equal(t, "Quero agendar uma reunião", turn.UserHTML)
	assert.Contains(t, turn.ResponseHTML, intent.DefaultSchedulingURL)
	assert.False(t, turn.CreatedAt.IsZero())
}

func TestConversation_SendRejectsInput(t *testing.T) {
	c := newTestConversation(ConversationConfig{MaxMessageLength: 5})

	tests := []struct {
		name    string
		message string
		err     error
	}{
		{name: "empty", message: "", err: ErrEmptyMessage},
		{name: "whitespace only", message: " \t\n ", err: ErrEmptyMessage},
		{name: "too long", message: "abcdef", err: ErrMessageTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turn, err := c.Send(tt.message)
			assert.Nil(t, turn)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestConversation_LengthCountsRunes(t *testing.T) {
	c := newTestConversation(ConversationConfig{MaxMessageLength: 5})

	// five runes, ten bytes
	turn, err := c.Send("ããããã")
	require.NoError(t, err)
	assert.Equal(t, intent.IntentDefault, turn.Intent)
}

func TestConversation_EscapesUserText(t *testing.T) {
	c := newTestConversation(DefaultConversationConfig())

	turn, err := c.Send(`<img src=x onerror=alert(1)>oi & tchau`)
	require.NoError(t, err)

	assert.NotContains(t, turn.UserHTML, "<img")
	assert.Equal(t, "&lt;img src=x onerror=alert(1)&gt;oi &amp; tchau", turn.UserHTML)
	assert.Equal(t, intent.IntentGreeting, turn.Intent)
}

func TestConversation_TagsShownAsTyped(t *testing.T) {
	c := newTestConversation(DefaultConversationConfig())

	tests := []struct {
		message string
		want    string
	}{
		{"<b>oi</b>", "&lt;b&gt;oi&lt;/b&gt;"},
		{`diga "sim" & 'não'`, "diga &#34;sim&#34; &amp; &#39;não&#39;"},
		{"5 < 10", "5 &lt; 10"},
		{"&lt;já escapado&gt;", "&amp;lt;já escapado&amp;gt;"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			turn, err := c.Send(tt.message)
			require.NoError(t, err)
			assert.Equal(t, tt.want, turn.UserHTML)
		})
	}
}

func TestConversation_DelayWithinRange(t *testing.T) {
	cfg := DefaultConversationConfig()
	c := newTestConversation(cfg)

	for i := 0; i < 200; i++ {
		turn, err := c.Send("oi")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, turn.Delay, cfg.MinDelay)
		assert.Less(t, turn.Delay, cfg.MaxDelay)
		assert.Equal(t, turn.Delay.Milliseconds(), turn.DelayMillis())
	}
}

func TestConversation_DelayBounds(t *testing.T) {
	c := newTestConversation(ConversationConfig{MinDelay: time.Second, MaxDelay: 2 * time.Second})

	c.randN = func(n int64) int64 { return 0 }
	assert.Equal(t, time.Second, c.delay())

	c.randN = func(n int64) int64 { return n - 1 }
	assert.Equal(t, 2*time.Second-time.Nanosecond, c.delay())

	fixed := newTestConversation(ConversationConfig{MinDelay: 500 * time.Millisecond, MaxDelay: 500 * time.Millisecond})
	assert.Equal(t, 500*time.Millisecond, fixed.delay())
}

func TestConversation_IDsAreUnique(t *testing.T) {
	c := newTestConversation(DefaultConversationConfig())
	seen := map[string]bool{}

	for i := 0; i < 50; i++ {
		turn, err := c.Send(strings.Repeat("a", i+1))
		require.NoError(t, err)
		assert.False(t, seen[turn.ID])
		seen[turn.ID] = true
	}
}
