package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"retroboard/internal/metrics"
	"retroboard/internal/model"
	"retroboard/internal/repository"
)

// ProjectService owns the project record graph: the project row plus its
// profile hours, scope items, external costs and change requests.
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	hoursRepo   *repository.ProfileHoursRepository
	scopeRepo   *repository.ScopeItemRepository
	costRepo    *repository.ExternalCostRepository
	crRepo      *repository.ChangeRequestRepository
	engine      metrics.Engine
	logger      *zap.Logger
}

func NewProjectService(
	projectRepo *repository.ProjectRepository,
	hoursRepo *repository.ProfileHoursRepository,
	scopeRepo *repository.ScopeItemRepository,
	costRepo *repository.ExternalCostRepository,
	crRepo *repository.ChangeRequestRepository,
	engine metrics.Engine,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		hoursRepo:   hoursRepo,
		scopeRepo:   scopeRepo,
		costRepo:    costRepo,
		crRepo:      crRepo,
		engine:      engine,
		logger:      logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, p *model.Project) (*model.Project, error) {
	if p.Status == "" {
		p.Status = model.StatusDraft
	}
	return s.projectRepo.Create(ctx, p)
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projectRepo.List(ctx)
}

func (s *ProjectService) Update(ctx context.Context, p *model.Project) (*model.Project, error) {
	return s.projectRepo.Update(ctx, p)
}

func (s *ProjectService) Delete(ctx context.Context, id int) error {
	// child rows go with the project via ON DELETE CASCADE
	return s.projectRepo.Delete(ctx, id)
}

// GetDetail loads the full record graph for one project. The four child
// listings are independent, so they run concurrently; change-request hours
// need the change-request IDs and load in a second phase.
func (s *ProjectService) GetDetail(ctx context.Context, id int) (*model.ProjectDetail, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load project %d: %w", id, err)
	}

	detail := &model.ProjectDetail{Project: *project}

	var crs []model.ChangeRequest
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail.ProfileHours, err = s.hoursRepo.ListByProject(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.ScopeItems, err = s.scopeRepo.ListByProject(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		detail.ExternalCosts, err = s.costRepo.ListByProject(gctx, id)
		return err
	})
	g.Go(func() error {
		var err error
		crs, err = s.crRepo.ListByProject(gctx, id)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load project %d children: %w", id, err)
	}

	detail.ChangeRequests = make([]model.ChangeRequestWithHours, 0, len(crs))
	if len(crs) > 0 {
		ids := make([]int, len(crs))
		for i, cr := range crs {
			ids[i] = cr.ID
		}
		hoursByCR, err := s.crRepo.ListHours(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("failed to load change request hours: %w", err)
		}
		for _, cr := range crs {
			detail.ChangeRequests = append(detail.ChangeRequests, model.ChangeRequestWithHours{
				ChangeRequest: cr,
				Hours:         hoursByCR[cr.ID],
			})
		}
	}

	return detail, nil
}

// GetSnapshot returns a project's detail with freshly computed metrics.
func (s *ProjectService) GetSnapshot(ctx context.Context, id int) (*metrics.ProjectSnapshot, error) {
	detail, err := s.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	return &metrics.ProjectSnapshot{
		Detail:  detail,
		Metrics: s.engine.Compute(detail),
	}, nil
}

// Profile hours

func (s *ProjectService) UpsertProfileHours(ctx context.Context, ph *model.ProfileHours) error {
	if !model.ValidProfile(ph.Profile) {
		return fmt.Errorf("unknown profile: %s", ph.Profile)
	}
	return s.hoursRepo.Upsert(ctx, ph)
}

func (s *ProjectService) DeleteProfileHours(ctx context.Context, id int) error {
	return s.hoursRepo.Delete(ctx, id)
}

// Scope items

func (s *ProjectService) CreateScopeItem(ctx context.Context, si *model.ScopeItem) error {
	return s.scopeRepo.Create(ctx, si)
}

func (s *ProjectService) UpdateScopeItem(ctx context.Context, si *model.ScopeItem) error {
	return s.scopeRepo.Update(ctx, si)
}

func (s *ProjectService) DeleteScopeItem(ctx context.Context, id int) error {
	return s.scopeRepo.Delete(ctx, id)
}

// External costs

func (s *ProjectService) CreateExternalCost(ctx context.Context, ec *model.ExternalCost) error {
	return s.costRepo.Create(ctx, ec)
}

func (s *ProjectService) UpdateExternalCost(ctx context.Context, ec *model.ExternalCost) error {
	return s.costRepo.Update(ctx, ec)
}

func (s *ProjectService) DeleteExternalCost(ctx context.Context, id int) error {
	return s.costRepo.Delete(ctx, id)
}

// Change requests

func (s *ProjectService) CreateChangeRequest(ctx context.Context, cr *model.ChangeRequest) error {
	return s.crRepo.Create(ctx, cr)
}

func (s *ProjectService) UpdateChangeRequest(ctx context.Context, cr *model.ChangeRequest) error {
	return s.crRepo.Update(ctx, cr)
}

func (s *ProjectService) DeleteChangeRequest(ctx context.Context, id int) error {
	return s.crRepo.Delete(ctx, id)
}

func (s *ProjectService) UpsertChangeRequestHours(ctx context.Context, h *model.ChangeRequestHours) error {
	if !model.ValidProfile(h.Profile) {
		return fmt.Errorf("unknown profile: %s", h.Profile)
	}
	return s.crRepo.UpsertHours(ctx, h)
}

func (s *ProjectService) DeleteChangeRequestHours(ctx context.Context, id int) error {
	return s.crRepo.DeleteHours(ctx, id)
}
