package api

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eumatoliveira/leanhealth-websit/internal/chat/analytics"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/widget"
	apperrors "github.com/eumatoliveira/leanhealth-websit/internal/common/errors"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/metrics"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/validation"
	"github.com/eumatoliveira/leanhealth-websit/pkg/registry"

	"go.opentelemetry.io/otel/attribute"
)

type SendMessageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type SendMessageResponse struct {
	ID       string `json:"id"`
	Intent   string `json:"intent"`
	Response string `json:"response"`
	UserHTML string `json:"userHtml"`
	DelayMs  int64  `json:"delayMs"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, span := s.deps.Observability.StartSpan(r.Context(), "chat.reply",
		attribute.String("chat.channel", analytics.ChannelHTTP))
	defer span.End()

	var req SendMessageRequest
	if stdErr := s.decode(w, r, s.messageSchema, &req); stdErr != nil {
		s.reject(w, stdErr)
		return
	}

	decision := s.deps.Limiter.Allow(ctx, clientID(r))
	if decision.Remaining >= 0 {
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
	}
	if !decision.Allowed {
		metrics.ChatRateLimited.Inc()
		respondError(w, apperrors.NewRateLimitedError(decision.RetryAfter))
		return
	}

	turn, err := s.deps.Conversation.Send(req.Message)
	if err != nil {
		switch {
		case errors.Is(err, widget.ErrEmptyMessage):
			s.reject(w, apperrors.NewEmptyMessageError())
		case errors.Is(err, widget.ErrMessageTooLong):
			s.reject(w, apperrors.NewMessageTooLongError(utf8.RuneCountInString(strings.TrimSpace(req.Message)), s.config.MaxMessageLength))
		default:
			respondError(w, apperrors.NewInternalError(err))
		}
		return
	}

	span.SetAttributes(attribute.String("chat.intent", string(turn.Intent)))
	metrics.ChatMessages.WithLabelValues(string(turn.Intent)).Inc()
	s.deps.Observability.RecordReply(ctx, string(turn.Intent), analytics.ChannelHTTP, time.Since(start))

	result := intent.Result{Intent: turn.Intent, Trigger: turn.Trigger, Response: turn.ResponseHTML}
	if err := s.deps.Recorder.Record(ctx, result, analytics.ChannelHTTP); err != nil {
		s.logger.Warn("intent event not recorded", map[string]interface{}{
			"intent": string(turn.Intent),
			"error":  err,
		})
	}

	s.logger.Info("chat reply", map[string]interface{}{
		"turnId":        turn.ID,
		"sessionId":     req.SessionID,
		"intent":        string(turn.Intent),
		"trigger":       turn.Trigger,
		"messageLength": utf8.RuneCountInString(req.Message),
	})

	respondJSON(w, http.StatusOK, SendMessageResponse{
		ID:       turn.ID,
		Intent:   string(turn.Intent),
		Response: turn.ResponseHTML,
		UserHTML: turn.UserHTML,
		DelayMs:  turn.DelayMillis(),
	})
}

func (s *Server) handleListIntents(w http.ResponseWriter, r *http.Request) {
	withResponses := r.URL.Query().Get("responses") == "true"
	respondJSON(w, http.StatusOK, registry.BuildCatalog(s.deps.Matcher, withResponses))
}

// handleIntentStats reports intent hits since ?since= (RFC 3339, default
// seven days ago).
func (s *Server) handleIntentStats(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-7 * 24 * time.Hour)
	if v := r.URL.Query().Get("since"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondError(w, apperrors.NewInvalidRequestError("since must be an RFC 3339 timestamp"))
			return
		}
		since = parsed
	}

	counts, err := s.deps.Recorder.CountsSince(r.Context(), since)
	if err != nil {
		stdErr := apperrors.Normalize(err)
		s.logger.Error("intent stats failed", map[string]interface{}{
			"errorCode": string(stdErr.Code),
			"error":     err,
		})
		respondError(w, stdErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"since":  since.UTC().Format(time.RFC3339),
		"counts": counts,
	})
}

func (s *Server) handlePanelState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.deps.Panel.State())
}

func (s *Server) handlePanelToggle(w http.ResponseWriter, r *http.Request) {
	s.deps.Panel.Toggle()
	respondJSON(w, http.StatusOK, s.deps.Panel.State())
}

func (s *Server) handlePanelOpen(w http.ResponseWriter, r *http.Request) {
	s.deps.Panel.Open()
	respondJSON(w, http.StatusOK, s.deps.Panel.State())
}

func (s *Server) handlePanelClose(w http.ResponseWriter, r *http.Request) {
	s.deps.Panel.Close()
	respondJSON(w, http.StatusOK, s.deps.Panel.State())
}

// decode reads, schema-validates and unmarshals the request body into dst.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, schema *validation.Schema, dst interface{}) *apperrors.StandardError {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewInvalidRequestError("request body too large or unreadable")
	}

	result, err := schema.ValidateBytes(body)
	if err != nil {
		return apperrors.NewInvalidRequestError("request body is not valid JSON")
	}
	if !result.Valid {
		return apperrors.NewInvalidRequestError(strings.Join(result.GetErrorMessages(), "; "))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	return nil
}

func (s *Server) reject(w http.ResponseWriter, stdErr *apperrors.StandardError) {
	metrics.ChatMessagesRejected.WithLabelValues(strings.ToLower(string(stdErr.Code))).Inc()
	respondError(w, stdErr)
}

// clientID keys the rate limiter on the caller's address, as rewritten by
// middleware.RealIP. Session ids come from the client and are not trusted.
func clientID(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
