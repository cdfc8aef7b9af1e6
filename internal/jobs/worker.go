package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"retroboard/internal/llm"
	"retroboard/internal/mq"
	"retroboard/pkg/metrics"
)

type Completer interface {
	Complete(ctx context.Context, r llm.Request) (string, error)
}

// GenerateInput is the job payload submitted by the API.
type GenerateInput struct {
	OfferText       string `json:"offer_text"`
	AdditionalNotes string `json:"additional_notes,omitempty"`
	Language        string `json:"language,omitempty"`
}

// Worker runs task generation jobs consumed from the queue. Business
// failures land in the job row, not in the broker: the message is acked
// either way so pollers always reach a terminal state.
type Worker struct {
	store     Store
	completer Completer
	taskModel string
	logger    *zap.Logger
}

func NewWorker(store Store, completer Completer, taskModel string, logger *zap.Logger) *Worker {
	return &Worker{store: store, completer: completer, taskModel: taskModel, logger: logger}
}

// HandleGenerate implements mq.MessageHandler for pm.generate.requested.
func (w *Worker) HandleGenerate(ctx context.Context, data json.RawMessage) error {
	var event mq.PMGenerateRequested
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("malformed generate event", zap.Error(err))
		return nil // unparseable, drop it
	}

	log := w.logger.With(zap.Int("job_id", event.JobID))

	var input GenerateInput
	if err := json.Unmarshal(event.Input, &input); err != nil {
		return w.fail(ctx, event.JobID, "invalid job input", log)
	}
	if len(strings.TrimSpace(input.OfferText)) < llm.MinOfferTextLength {
		return w.fail(ctx, event.JobID, "offer text is required (minimum 50 characters)", log)
	}

	content, err := w.completer.Complete(ctx, llm.Request{
		Feature:     "pm_generate_tasks",
		Model:       w.taskModel,
		System:      llm.GenerateTasksSystemPrompt(input.Language),
		User:        llm.GenerateTasksUserPrompt(input.OfferText, input.AdditionalNotes),
		Temperature: llm.GenerateTasksTemperature,
		MaxTokens:   llm.GenerateTasksMaxTokens,
	})
	if err != nil {
		return w.fail(ctx, event.JobID, fmt.Sprintf("completion failed: %v", err), log)
	}

	result, _, err := llm.ExtractJSON(content)
	if err != nil {
		metrics.ExtractionFailureCount.Inc()
		return w.fail(ctx, event.JobID, "failed to parse AI response", log)
	}

	if err := w.store.Complete(ctx, event.JobID, result); err != nil {
		log.Error("failed to complete job", zap.Error(err))
		return err
	}

	metrics.IncrementJob("completed")
	log.Info("job completed")
	return nil
}

func (w *Worker) fail(ctx context.Context, id int, msg string, log *zap.Logger) error {
	if err := w.store.Fail(ctx, id, msg); err != nil {
		log.Error("failed to mark job as error", zap.Error(err))
		return err
	}
	metrics.IncrementJob("error")
	log.Warn("job failed", zap.String("reason", msg))
	return nil
}
