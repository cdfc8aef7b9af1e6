package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"retroboard/internal/metrics"
	"retroboard/internal/model"
)

const (
	analyticsCacheKey = "analytics:summary"
	analyticsCacheTTL = 60 * time.Second
)

// SnapshotSource lists projects and resolves per-project snapshots.
// ProjectService is the production implementation.
type SnapshotSource interface {
	List(ctx context.Context) ([]model.Project, error)
	GetSnapshot(ctx context.Context, id int) (*metrics.ProjectSnapshot, error)
}

// ProjectAnalytics is one project row on the analytics views.
type ProjectAnalytics struct {
	ID      int                  `json:"id"`
	Name    string               `json:"name"`
	Client  string               `json:"client"`
	Status  string               `json:"status"`
	Metrics model.ProjectMetrics `json:"metrics"`
}

type AnalyticsSummary struct {
	Portfolio metrics.Portfolio  `json:"portfolio"`
	Projects  []ProjectAnalytics `json:"projects"`
}

// AnalyticsService computes portfolio statistics across all projects.
// Results are cached briefly: the computation walks every record graph,
// and dashboards refetch aggressively.
type AnalyticsService struct {
	source SnapshotSource
	rdb    *redis.Client
	logger *zap.Logger
}

func NewAnalyticsService(source SnapshotSource, rdb *redis.Client, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{source: source, rdb: rdb, logger: logger}
}

func (s *AnalyticsService) GetSummary(ctx context.Context) (*AnalyticsSummary, error) {
	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, analyticsCacheKey).Bytes()
		if err == nil {
			var summary AnalyticsSummary
			if err := json.Unmarshal(cached, &summary); err == nil {
				return &summary, nil
			}
		} else if err != redis.Nil {
			// cache being down is not a reason to fail the request
			s.logger.Warn("analytics cache read failed", zap.Error(err))
		}
	}

	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if b, err := json.Marshal(summary); err == nil {
			if err := s.rdb.Set(ctx, analyticsCacheKey, b, analyticsCacheTTL).Err(); err != nil {
				s.logger.Warn("analytics cache write failed", zap.Error(err))
			}
		}
	}

	return summary, nil
}

// Invalidate drops the cached summary. Called after any write to project data.
func (s *AnalyticsService) Invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, analyticsCacheKey).Err(); err != nil {
		s.logger.Warn("analytics cache invalidation failed", zap.Error(err))
	}
}

func (s *AnalyticsService) compute(ctx context.Context) (*AnalyticsSummary, error) {
	projects, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	snapshots := make([]metrics.ProjectSnapshot, len(projects))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for i, p := range projects {
		i, p := i, p
		g.Go(func() error {
			snap, err := s.source.GetSnapshot(gctx, p.ID)
			if err != nil {
				return err
			}
			snapshots[i] = *snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &AnalyticsSummary{
		Portfolio: metrics.AggregatePortfolio(snapshots),
		Projects:  make([]ProjectAnalytics, len(snapshots)),
	}
	for i, snap := range snapshots {
		summary.Projects[i] = ProjectAnalytics{
			ID:      snap.Detail.ID,
			Name:    snap.Detail.Name,
			Client:  snap.Detail.Client,
			Status:  snap.Detail.Status,
			Metrics: snap.Metrics,
		}
	}
	return summary, nil
}
