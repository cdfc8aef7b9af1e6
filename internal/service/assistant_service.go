package service

import (
	"context"
	"fmt"

	"retroboard/internal/llm"
)

// MessageCompleter is the slice of the completion client conversational
// features need.
type MessageCompleter interface {
	CompleteMessages(ctx context.Context, feature, model string, msgs []llm.Message, temperature float64, maxTokens int) (string, error)
}

// AssistantService backs the portfolio chat assistant. Callers send the
// running conversation plus a serialized snapshot of their project data;
// the context rides in the system message on every call.
type AssistantService struct {
	completer MessageCompleter
	chatModel string
}

func NewAssistantService(completer MessageCompleter, chatModel string) *AssistantService {
	return &AssistantService{completer: completer, chatModel: chatModel}
}

func (s *AssistantService) Chat(ctx context.Context, messages []llm.Message, projectsContext string) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("messages array required")
	}

	msgs := make([]llm.Message, 0, len(messages)+1)
	msgs = append(msgs, llm.ChatSystemMessage(projectsContext))
	msgs = append(msgs, messages...)

	return s.completer.CompleteMessages(ctx, "chat", s.chatModel, msgs, llm.ChatTemperature, llm.ChatMaxTokens)
}
