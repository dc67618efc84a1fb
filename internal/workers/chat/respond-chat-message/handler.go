package respondchatmessage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/eumatoliveira/leanhealth-websit/internal/chat/analytics"
	"github.com/eumatoliveira/leanhealth-websit/internal/chat/intent"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/errors"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/logger"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/metrics"
	"github.com/eumatoliveira/leanhealth-websit/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const (
	TaskType = "respond-chat-message"
)

type Handler struct {
	config        *Config
	matcher       *intent.Matcher
	recorder      *analytics.Recorder
	observability *observability.Observability
	errorHandler  *errors.ErrorHandler
	logger        logger.Logger
}

// NewHandler answers chat messages arriving as process variables. recorder
// and obs may be nil.
func NewHandler(config *Config, matcher *intent.Matcher, recorder *analytics.Recorder, obs *observability.Observability, log logger.Logger) *Handler {
	if obs == nil {
		obs = &observability.Observability{}
	}
	l := log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:        config,
		matcher:       matcher,
		recorder:      recorder,
		observability: obs,
		errorHandler:  errors.NewErrorHandler(l),
		logger:        l,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.observability.StartSpan(ctx, TaskType,
		attribute.Int64("zeebe.job.key", job.Key),
		attribute.String("chat.channel", analytics.ChannelZeebe))
	var spanErr error
	defer func() { observability.EndSpan(span, spanErr) }()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		spanErr = errors.NewInvalidRequestError(fmt.Sprintf("parse input: %v", err))
		h.fail(ctx, client, job, start, spanErr)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		spanErr = err
		h.fail(ctx, client, job, start, err)
		return
	}
	span.SetAttributes(attribute.String("chat.intent", output.IntentAnalysis.PrimaryIntent))

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.observability.RecordJobProcessed(ctx, "completed")
	h.observability.RecordJobDuration(ctx, time.Since(start), "completed")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, errors.NewEmptyMessageError()
	}
	if n := utf8.RuneCountInString(message); h.config.MaxMessageLength > 0 && n > h.config.MaxMessageLength {
		return nil, errors.NewMessageTooLongError(n, h.config.MaxMessageLength)
	}

	start := time.Now()
	result := h.matcher.Classify(message)
	h.observability.RecordReply(ctx, string(result.Intent), analytics.ChannelZeebe, time.Since(start))

	if err := h.recorder.Record(ctx, result, analytics.ChannelZeebe); err != nil {
		if h.config.RequireAnalytics {
			return nil, err
		}
		h.logger.Warn("intent event not recorded", map[string]interface{}{
			"intent": string(result.Intent),
			"error":  err,
		})
	}

	h.logger.Info("chat message answered", map[string]interface{}{
		"intent":        string(result.Intent),
		"trigger":       result.Trigger,
		"messageLength": utf8.RuneCountInString(message),
	})

	return &Output{
		IntentAnalysis: IntentAnalysis{
			PrimaryIntent:  string(result.Intent),
			MatchedTrigger: result.Trigger,
		},
		Response: result.Response,
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)

	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, start time.Time, err error) {
	stdErr := errors.Normalize(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.observability.RecordJobProcessed(ctx, "failed")
	h.observability.RecordJobDuration(ctx, time.Since(start), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
