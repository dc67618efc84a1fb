package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	apperrors "github.com/eumatoliveira/leanhealth-websit/internal/common/errors"
)

type errorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":{"code":"INTERNAL_ERROR","message":"encode response"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(response)
}

func respondError(w http.ResponseWriter, stdErr *apperrors.StandardError) {
	if secs, ok := stdErr.Metadata["retryAfterSeconds"].(int); ok && secs > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(secs))
	}
	respondJSON(w, apperrors.HTTPStatus(stdErr.Code), errorResponse{
		Error: errorBody{
			Code:    stdErr.Code,
			Message: stdErr.Message,
			Details: stdErr.Details,
		},
	})
}
