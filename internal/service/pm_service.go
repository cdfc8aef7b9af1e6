package service

import (
	"context"
	"encoding/json"

	"retroboard/internal/jobs"
	"retroboard/internal/model"
	"retroboard/internal/repository"
)

// PMService fronts task generation: the polled job queue plus the saved
// generations and reusable templates.
type PMService struct {
	queue jobs.Queue
	repo  *repository.PMRepository
}

func NewPMService(queue jobs.Queue, repo *repository.PMRepository) *PMService {
	return &PMService{queue: queue, repo: repo}
}

// SubmitJob enqueues a generation and returns the job ID for polling.
func (s *PMService) SubmitJob(ctx context.Context, input jobs.GenerateInput) (int, error) {
	b, err := json.Marshal(input)
	if err != nil {
		return 0, err
	}
	return s.queue.Submit(ctx, b)
}

func (s *PMService) GetJob(ctx context.Context, id int) (*model.PMJob, error) {
	return s.queue.Poll(ctx, id)
}

// Generations

func (s *PMService) SaveGeneration(ctx context.Context, g *model.PMGeneration) error {
	return s.repo.CreateGeneration(ctx, g)
}

func (s *PMService) ListGenerations(ctx context.Context, limit int) ([]model.PMGeneration, error) {
	return s.repo.ListGenerations(ctx, limit)
}

func (s *PMService) DeleteGeneration(ctx context.Context, id int) error {
	return s.repo.DeleteGeneration(ctx, id)
}

// Templates

func (s *PMService) SaveTemplate(ctx context.Context, t *model.PMTemplate) error {
	return s.repo.CreateTemplate(ctx, t)
}

func (s *PMService) ListTemplates(ctx context.Context) ([]model.PMTemplate, error) {
	return s.repo.ListTemplates(ctx)
}

func (s *PMService) DeleteTemplate(ctx context.Context, id int) error {
	return s.repo.DeleteTemplate(ctx, id)
}
