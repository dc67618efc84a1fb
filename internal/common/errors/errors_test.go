package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code   ErrorCode
		status int
	}{
		{ErrCodeEmptyMessage, http.StatusBadRequest},
		{ErrCodeInvalidRequest, http.StatusBadRequest},
		{ErrCodeMessageTooLong, http.StatusRequestEntityTooLarge},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeTimeout, http.StatusGatewayTimeout},
		{ErrCodeAnalyticsReadFailed, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatus(tt.code))
		})
	}
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("business error never retries", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewEmptyMessageError())
		assert.Equal(t, "EMPTY_MESSAGE", bpmn.Code)
		assert.False(t, bpmn.Retryable)
		assert.Equal(t, 0, bpmn.Retries)

		vars := bpmn.ToErrorVariables()
		assert.Equal(t, "EMPTY_MESSAGE", vars["errorCode"])
		assert.Equal(t, "EMPTY_MESSAGE", vars["originalErrorCode"])
	})

	t.Run("transient error keeps retry budget", func(t *testing.T) {
		bpmn := ConvertToBPMNError(NewAnalyticsWriteFailedError(stderrors.New("conn reset")))
		assert.True(t, bpmn.Retryable)
		assert.Equal(t, 3, bpmn.Retries)
		assert.Equal(t, "conn reset", bpmn.Details)
	})
}

func TestNormalize(t *testing.T) {
	wrapped := fmt.Errorf("respond: %w", NewMessageTooLongError(1200, 1000))

	stdErr := Normalize(wrapped)
	assert.Equal(t, ErrCodeMessageTooLong, stdErr.Code)
	assert.Equal(t, "length: 1200, max: 1000", stdErr.Details)

	plain := Normalize(stderrors.New("boom"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "boom", plain.Details)
}

func TestRateLimitedError(t *testing.T) {
	err := NewRateLimitedError(30 * time.Second)

	assert.True(t, err.Retryable)
	assert.Equal(t, 30, err.Metadata["retryAfterSeconds"])
	assert.Equal(t, "RATE_LIMIT", GetErrorCategory(err.Code))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeEmptyMessage))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidRequest))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeAnalyticsWriteFailed))
	assert.Equal(t, "INTEGRATION", GetErrorCategory(ErrCodeTimeout))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}

func TestWithMetadata(t *testing.T) {
	err := NewInvalidRequestError("message: required").WithMetadata("field", "message")

	require.NotNil(t, err.Metadata)
	assert.Equal(t, "message", err.Metadata["field"])
	assert.True(t, IsRetryableErrorCode(ErrCodeTimeout))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidRequest))
}
