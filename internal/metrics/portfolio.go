package metrics

import "retroboard/internal/model"

// ProjectSnapshot pairs one project's record graph with the metrics the
// engine derived from it. The aggregation below folds over these snapshots
// and never recomputes per-project figures inline, so the two layers cannot
// disagree.
type ProjectSnapshot struct {
	Detail  *model.ProjectDetail `json:"-"`
	Metrics model.ProjectMetrics `json:"metrics"`
}

// ProfileTotals sums hours for one profile across the whole project set.
type ProfileTotals struct {
	EstimatedHours  float64 `json:"estimated_hours"`
	ActualHours     float64 `json:"actual_hours"`
	VariancePercent float64 `json:"variance_percent"`
}

// Portfolio holds the cross-project statistics shown on the analytics views.
type Portfolio struct {
	TotalProjects    int                             `json:"total_projects"`
	ActiveProjects   int                             `json:"active_projects"`
	AvgHoursVariance float64                         `json:"avg_hours_variance"`
	AvgMarginDelta   float64                         `json:"avg_margin_delta"`
	ScopeCreepRate   float64                         `json:"scope_creep_rate"`
	TotalRevenue     float64                         `json:"total_revenue"`
	ProfileStats     map[model.Profile]ProfileTotals `json:"profile_stats"`
}

// AggregatePortfolio folds per-project metrics into portfolio statistics.
// Averages only cover projects that are completed or have logged hours, so
// untouched drafts do not dilute them with zeros; scope-creep rate and total
// revenue cover every project unconditionally.
func AggregatePortfolio(snapshots []ProjectSnapshot) Portfolio {
	p := Portfolio{
		ProfileStats: make(map[model.Profile]ProfileTotals),
	}
	p.TotalProjects = len(snapshots)

	completed := 0
	scopeCreep := 0
	varianceSum := 0.0
	deltaSum := 0.0

	for _, s := range snapshots {
		if s.Detail.Status == model.StatusActive {
			p.ActiveProjects++
		}
		if s.Detail.ScopeCreep {
			scopeCreep++
		}
		p.TotalRevenue += s.Metrics.TotalValue

		if s.Detail.Status == model.StatusCompleted || s.Metrics.ActualHours > 0 {
			completed++
			varianceSum += s.Metrics.HoursVariancePercent
			deltaSum += s.Metrics.MarginDelta
		}

		for _, ph := range s.Detail.ProfileHours {
			totals := p.ProfileStats[ph.Profile]
			totals.EstimatedHours += ph.EstimatedHours
			totals.ActualHours += ph.ActualHours
			p.ProfileStats[ph.Profile] = totals
		}
	}

	if completed > 0 {
		p.AvgHoursVariance = varianceSum / float64(completed)
		p.AvgMarginDelta = deltaSum / float64(completed)
	}
	if p.TotalProjects > 0 {
		p.ScopeCreepRate = float64(scopeCreep) / float64(p.TotalProjects) * 100
	}

	for profile, totals := range p.ProfileStats {
		if totals.EstimatedHours > 0 {
			totals.VariancePercent = (totals.ActualHours - totals.EstimatedHours) / totals.EstimatedHours * 100
		}
		p.ProfileStats[profile] = totals
	}

	return p
}
