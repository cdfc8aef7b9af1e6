package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"retroboard/internal/model"
)

func snapshotsFixture() []ProjectSnapshot {
	e := DefaultEngine()

	completed := detailWith(func(d *model.ProjectDetail) {
		d.Status = model.StatusCompleted
		d.ScopeCreep = true
		d.OfferValue = 20000
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileUX, EstimatedHours: 40, ActualHours: 50},
			{Profile: model.ProfileDev, EstimatedHours: 160, ActualHours: 200},
		}
	})

	active := detailWith(func(d *model.ProjectDetail) {
		d.Status = model.StatusActive
		d.OfferValue = 8000
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileDev, EstimatedHours: 50, ActualHours: 25},
		}
	})

	// Untouched draft: counts for scope-creep rate and revenue, excluded
	// from the variance/delta averages.
	draft := detailWith(func(d *model.ProjectDetail) {
		d.Status = model.StatusDraft
		d.OfferValue = 5000
	})

	details := []*model.ProjectDetail{completed, active, draft}
	snapshots := make([]ProjectSnapshot, 0, len(details))
	for _, d := range details {
		snapshots = append(snapshots, ProjectSnapshot{Detail: d, Metrics: e.Compute(d)})
	}
	return snapshots
}

func TestAggregatePortfolio(t *testing.T) {
	snapshots := snapshotsFixture()
	p := AggregatePortfolio(snapshots)

	assert.Equal(t, 3, p.TotalProjects)
	assert.Equal(t, 1, p.ActiveProjects)

	// One of three projects flagged scope creep.
	assert.InDelta(t, 100.0/3.0, p.ScopeCreepRate, 1e-9)

	// Revenue must equal the sum of per-project totals from the engine.
	wantRevenue := 0.0
	for _, s := range snapshots {
		wantRevenue += s.Metrics.TotalValue
	}
	assert.InDelta(t, wantRevenue, p.TotalRevenue, 1e-9)

	// Averages cover only the completed project and the active one with
	// logged hours: (25% + -50%) / 2.
	assert.InDelta(t, (25.0-50.0)/2, p.AvgHoursVariance, 1e-9)

	dev := p.ProfileStats[model.ProfileDev]
	assert.InDelta(t, 210, dev.EstimatedHours, 1e-9)
	assert.InDelta(t, 225, dev.ActualHours, 1e-9)
	assert.InDelta(t, (225.0-210.0)/210.0*100, dev.VariancePercent, 1e-9)

	ux := p.ProfileStats[model.ProfileUX]
	assert.InDelta(t, 25.0, ux.VariancePercent, 1e-9)
}

func TestAggregatePortfolioEmpty(t *testing.T) {
	p := AggregatePortfolio(nil)
	assert.Zero(t, p.TotalProjects)
	assert.Zero(t, p.ScopeCreepRate)
	assert.Zero(t, p.AvgHoursVariance)
	assert.Zero(t, p.AvgMarginDelta)
	assert.Zero(t, p.TotalRevenue)
	assert.Empty(t, p.ProfileStats)
}

func TestAggregateZeroEstimateProfile(t *testing.T) {
	e := DefaultEngine()
	d := detailWith(func(d *model.ProjectDetail) {
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileContent, EstimatedHours: 0, ActualHours: 12},
		}
	})
	p := AggregatePortfolio([]ProjectSnapshot{{Detail: d, Metrics: e.Compute(d)}})

	content := p.ProfileStats[model.ProfileContent]
	assert.InDelta(t, 12, content.ActualHours, 1e-9)
	assert.Zero(t, content.VariancePercent)
}
