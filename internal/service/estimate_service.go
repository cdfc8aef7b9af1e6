package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"retroboard/internal/llm"
	"retroboard/internal/model"
	"retroboard/pkg/metrics"
)

type Completer interface {
	Complete(ctx context.Context, r llm.Request) (string, error)
}

type EstimateStore interface {
	Create(ctx context.Context, e *model.AIEstimate) error
	List(ctx context.Context, limit int) ([]model.AIEstimate, error)
	Delete(ctx context.Context, id int) error
}

type GenerateEstimateRequest struct {
	BriefText      string `json:"brief_text"`
	ProjectType    string `json:"project_type"`
	CMS            string `json:"cms"`
	Integrations   string `json:"integrations"`
	HistoricalData string `json:"historical_data"`
	ProfileStats   string `json:"profile_stats"`
}

// EstimateResult carries either the parsed estimate or, when the model's
// output could not be parsed, the raw text and a soft error for the client
// to display. Both cases are successful HTTP responses.
type EstimateResult struct {
	Estimate json.RawMessage `json:"estimate"`
	Raw      string          `json:"raw,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// EstimateService runs the three-scenario brief estimator and keeps a
// history of successful runs.
type EstimateService struct {
	completer Completer
	store     EstimateStore
	chatModel string
	logger    *zap.Logger
}

func NewEstimateService(completer Completer, store EstimateStore, chatModel string, logger *zap.Logger) *EstimateService {
	return &EstimateService{completer: completer, store: store, chatModel: chatModel, logger: logger}
}

func (s *EstimateService) Generate(ctx context.Context, req GenerateEstimateRequest) (*EstimateResult, error) {
	content, err := s.completer.Complete(ctx, llm.Request{
		Feature:     "estimate",
		Model:       s.chatModel,
		System:      llm.EstimateSystemPrompt,
		User:        llm.EstimateUserPrompt(req.BriefText, req.ProjectType, req.CMS, req.Integrations, req.HistoricalData, req.ProfileStats),
		Temperature: llm.EstimateTemperature,
		MaxTokens:   llm.EstimateMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	estimate, raw, err := llm.ExtractJSON(content)
	if err != nil {
		metrics.ExtractionFailureCount.Inc()
		s.logger.Warn("failed to parse estimate response")
		return &EstimateResult{Raw: raw, Error: "Failed to parse estimate response"}, nil
	}

	saved := &model.AIEstimate{
		BriefText:    req.BriefText,
		ProjectType:  req.ProjectType,
		CMS:          req.CMS,
		Integrations: req.Integrations,
		Estimate:     estimate,
	}
	if err := s.store.Create(ctx, saved); err != nil {
		// the estimate itself is still useful; history is best effort
		s.logger.Error("failed to save estimate", zap.Error(err))
	}

	return &EstimateResult{Estimate: estimate}, nil
}

func (s *EstimateService) List(ctx context.Context, limit int) ([]model.AIEstimate, error) {
	return s.store.List(ctx, limit)
}

func (s *EstimateService) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}
