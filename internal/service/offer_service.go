package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"retroboard/internal/extract"
	"retroboard/internal/llm"
	"retroboard/pkg/metrics"
)

// ErrOfferTooShort is a validation failure, not an upstream one.
var ErrOfferTooShort = fmt.Errorf("offer text is too short or missing")

// ParsedOfferResult mirrors EstimateResult: parsed data on success, raw
// text plus a soft error when the model output was not valid JSON.
type ParsedOfferResult struct {
	Parsed json.RawMessage `json:"parsed"`
	Raw    string          `json:"raw,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// OfferService turns offer documents into structured project drafts.
type OfferService struct {
	completer Completer
	chatModel string
	logger    *zap.Logger
}

func NewOfferService(completer Completer, chatModel string, logger *zap.Logger) *OfferService {
	return &OfferService{completer: completer, chatModel: chatModel, logger: logger}
}

// ExtractText pulls plain text from an uploaded offer document.
func (s *OfferService) ExtractText(filename string, data []byte) (string, error) {
	return extract.Text(filename, data)
}

// Parse extracts structured project data from offer text.
func (s *OfferService) Parse(ctx context.Context, offerText string) (*ParsedOfferResult, error) {
	if len(strings.TrimSpace(offerText)) < llm.MinOfferTextLength {
		return nil, ErrOfferTooShort
	}

	content, err := s.completer.Complete(ctx, llm.Request{
		Feature:     "parse_offer",
		Model:       s.chatModel,
		System:      llm.ParseOfferSystemPrompt,
		User:        llm.ParseOfferUserPrompt(offerText),
		Temperature: llm.ParseOfferTemperature,
		MaxTokens:   llm.ParseOfferMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	parsed, raw, err := llm.ExtractJSON(content)
	if err != nil {
		metrics.ExtractionFailureCount.Inc()
		s.logger.Warn("failed to parse offer response")
		return &ParsedOfferResult{Raw: raw, Error: "Failed to parse AI response"}, nil
	}

	return &ParsedOfferResult{Parsed: parsed}, nil
}
