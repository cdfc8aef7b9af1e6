package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retroboard/internal/model"
)

func detailWith(mut func(*model.ProjectDetail)) *model.ProjectDetail {
	d := &model.ProjectDetail{
		Project: model.Project{
			Name:       "Test project",
			OfferValue: 10000,
			Status:     model.StatusActive,
		},
	}
	if mut != nil {
		mut(d)
	}
	return d
}

func TestComputeScenarioFull(t *testing.T) {
	// offer 10000 + one CR of 2000, UX 20/25, DEV 80/100, external 500/600,
	// CR hours DEV 10.
	d := detailWith(func(d *model.ProjectDetail) {
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileUX, EstimatedHours: 20, ActualHours: 25},
			{Profile: model.ProfileDev, EstimatedHours: 80, ActualHours: 100},
		}
		d.ExternalCosts = []model.ExternalCost{
			{CostType: model.CostContractor, EstimatedCost: 500, ActualCost: 600},
		}
		d.ChangeRequests = []model.ChangeRequestWithHours{
			{
				ChangeRequest: model.ChangeRequest{Amount: 2000},
				Hours: []model.ChangeRequestHours{
					{Profile: model.ProfileDev, ActualHours: 10},
				},
			},
		}
	})

	m := DefaultEngine().Compute(d)

	assert.Equal(t, 12000.0, m.TotalValue)
	assert.Equal(t, 100.0, m.EstimatedHours)
	assert.Equal(t, 135.0, m.ActualHours)
	assert.Equal(t, 35.0, m.HoursVariance)
	assert.InDelta(t, 35.0, m.HoursVariancePercent, 1e-9)
	assert.Equal(t, 3000.0, m.EstimatedInternalCost)
	assert.Equal(t, 4050.0, m.ActualInternalCost)
	assert.Equal(t, 3500.0, m.EstimatedTotalCost)
	assert.Equal(t, 4650.0, m.ActualTotalCost)
	assert.InDelta(t, (12000.0-3500.0)/12000.0*100, m.EstimatedMargin, 1e-9)
	assert.InDelta(t, 61.25, m.ActualMargin, 1e-9)
	assert.Equal(t, model.HealthOnTrack, m.Health)
}

func TestComputeEmptyDraft(t *testing.T) {
	d := detailWith(func(d *model.ProjectDetail) {
		d.OfferValue = 5000
		d.Status = model.StatusDraft
	})

	m := DefaultEngine().Compute(d)

	assert.Equal(t, 5000.0, m.TotalValue)
	assert.Zero(t, m.EstimatedHours)
	assert.Zero(t, m.ActualHours)
	assert.Zero(t, m.HoursVariancePercent)
	assert.InDelta(t, 100.0, m.EstimatedMargin, 1e-9)
	assert.InDelta(t, 100.0, m.ActualMargin, 1e-9)
	assert.Equal(t, model.HealthOnTrack, m.Health)
}

func TestComputeZeroGuards(t *testing.T) {
	t.Run("zero estimated hours", func(t *testing.T) {
		d := detailWith(func(d *model.ProjectDetail) {
			d.ProfileHours = []model.ProfileHours{
				{Profile: model.ProfileDev, EstimatedHours: 0, ActualHours: 40},
			}
		})
		m := DefaultEngine().Compute(d)
		assert.Equal(t, 40.0, m.HoursVariance)
		assert.Zero(t, m.HoursVariancePercent)
		assert.Zero(t, m.EstimatedHourlyRate)
	})

	t.Run("zero total value", func(t *testing.T) {
		d := detailWith(func(d *model.ProjectDetail) {
			d.OfferValue = 0
			d.ProfileHours = []model.ProfileHours{
				{Profile: model.ProfileDev, EstimatedHours: 10, ActualHours: 10},
			}
		})
		m := DefaultEngine().Compute(d)
		assert.Zero(t, m.EstimatedMargin)
		assert.Zero(t, m.ActualMargin)
		assert.Zero(t, m.MarginDelta)
	})
}

func TestComputeActualHoursAdditivity(t *testing.T) {
	cases := []struct {
		name     string
		profile  []float64
		crHours  [][]float64
		expected float64
	}{
		{"all empty", nil, nil, 0},
		{"profiles only", []float64{12.5, 7.5}, nil, 20},
		{"crs only", nil, [][]float64{{3, 4}, {5}}, 12},
		{"mixed", []float64{10}, [][]float64{{2.5}, {0, 1.5}}, 14},
		{"all zero rows", []float64{0, 0}, [][]float64{{0}}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := detailWith(func(d *model.ProjectDetail) {
				for _, h := range tc.profile {
					d.ProfileHours = append(d.ProfileHours, model.ProfileHours{
						Profile:     model.ProfileDev,
						ActualHours: h,
					})
				}
				for _, cr := range tc.crHours {
					crh := model.ChangeRequestWithHours{}
					for _, h := range cr {
						crh.Hours = append(crh.Hours, model.ChangeRequestHours{
							Profile:     model.ProfilePM,
							ActualHours: h,
						})
					}
					d.ChangeRequests = append(d.ChangeRequests, crh)
				}
			})
			m := DefaultEngine().Compute(d)
			assert.InDelta(t, tc.expected, m.ActualHours, 1e-9)
		})
	}
}

func TestComputeMarginIdentity(t *testing.T) {
	d := detailWith(func(d *model.ProjectDetail) {
		d.OfferValue = 37419.37
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileUX, EstimatedHours: 31.25, ActualHours: 47.5},
			{Profile: model.ProfileDev, EstimatedHours: 210, ActualHours: 233.75},
		}
		d.ExternalCosts = []model.ExternalCost{
			{CostType: model.CostToolLicense, EstimatedCost: 1200.55, ActualCost: 1200.55},
			{CostType: model.CostContractor, EstimatedCost: 2000, ActualCost: 3100.10},
		}
		d.ChangeRequests = []model.ChangeRequestWithHours{
			{ChangeRequest: model.ChangeRequest{Amount: 4100.21}},
		}
	})

	m := DefaultEngine().Compute(d)

	require.Positive(t, m.TotalValue)
	assert.InDelta(t, m.TotalValue-m.ActualTotalCost, m.ActualProfit, 1e-9)
	assert.InDelta(t, m.ActualProfit/m.TotalValue*100, m.ActualMargin, 1e-9)
	assert.InDelta(t, m.ActualMargin-m.EstimatedMargin, m.MarginDelta, 1e-9)
}

// marginDetail builds a project with 10 logged hours (internal cost 300 at
// the default rate) and an external cost line sized so the actual margin
// lands exactly on the requested value: margin = (offer-300-ext)/offer*100.
func marginDetail(t *testing.T, offerValue, externalActual, wantMargin float64) *model.ProjectDetail {
	t.Helper()
	d := detailWith(func(d *model.ProjectDetail) {
		d.OfferValue = offerValue
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileDev, EstimatedHours: 10, ActualHours: 10},
		}
		d.ExternalCosts = []model.ExternalCost{
			{CostType: model.CostContractor, ActualCost: externalActual},
		}
	})
	m := DefaultEngine().Compute(d)
	require.InDelta(t, wantMargin, m.ActualMargin, 1e-9)
	return d
}

func TestHealthBoundaries(t *testing.T) {
	cases := []struct {
		offer  float64
		ext    float64
		margin float64
		health string
	}{
		{1000, 0, 70, model.HealthOnTrack},
		{100000, 34699, 65.001, model.HealthOnTrack},
		{1000, 50, 65, model.HealthOnTrack},
		{1000, 100, 60, model.HealthOnTrack},
		{1000, 180, 52, model.HealthOnTrack},
		{600, 0, 50, model.HealthOnTrack},
		{100000, 49701, 49.999, model.HealthAtRisk},
		{1000, 230, 47, model.HealthAtRisk},
		{1000, 250, 45, model.HealthAtRisk},
		{100000, 54701, 44.999, model.HealthOverBudget},
		{1000, 500, 20, model.HealthOverBudget},
		{1000, 800, -10, model.HealthOverBudget},
	}

	e := DefaultEngine()
	for _, tc := range cases {
		m := e.Compute(marginDetail(t, tc.offer, tc.ext, tc.margin))
		assert.Equalf(t, tc.health, m.Health, "margin %v", tc.margin)
	}
}

func TestHealthNoHoursDefault(t *testing.T) {
	// Even a catastrophic paper margin is not flagged before hours are logged.
	d := detailWith(func(d *model.ProjectDetail) {
		d.OfferValue = 100
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileDev, EstimatedHours: 500, ActualHours: 0},
		}
		d.ExternalCosts = []model.ExternalCost{
			{CostType: model.CostContractor, EstimatedCost: 90000, ActualCost: 0},
		}
	})
	m := DefaultEngine().Compute(d)
	assert.Equal(t, model.HealthOnTrack, m.Health)
}

func TestComputeIdempotent(t *testing.T) {
	d := detailWith(func(d *model.ProjectDetail) {
		d.ProfileHours = []model.ProfileHours{
			{Profile: model.ProfileUX, EstimatedHours: 13.37, ActualHours: 17.1},
		}
		d.ChangeRequests = []model.ChangeRequestWithHours{
			{ChangeRequest: model.ChangeRequest{Amount: 999.99}},
		}
	})

	e := DefaultEngine()
	first := e.Compute(d)
	second := e.Compute(d)
	assert.Equal(t, first, second)
}
