package metrics

import "retroboard/internal/model"

// Defaults for the agency's cost model. Startup config may override them.
const (
	DefaultInternalHourlyCost = 30
	DefaultTargetMarginMin    = 50
	DefaultTargetMarginMax    = 55
)

// Engine derives ProjectMetrics from a project's record graph. Pure
// computation: no I/O, no hidden state, deterministic given inputs. Callers
// are responsible for validating stored records first; negative hours or
// costs are undefined behavior here.
type Engine struct {
	InternalHourlyCost float64
	TargetMarginMin    float64
	TargetMarginMax    float64
}

func NewEngine(hourlyCost, marginMin, marginMax float64) Engine {
	return Engine{
		InternalHourlyCost: hourlyCost,
		TargetMarginMin:    marginMin,
		TargetMarginMax:    marginMax,
	}
}

func DefaultEngine() Engine {
	return NewEngine(DefaultInternalHourlyCost, DefaultTargetMarginMin, DefaultTargetMarginMax)
}

// Compute turns one project's full record graph into its derived metrics.
func (e Engine) Compute(d *model.ProjectDetail) model.ProjectMetrics {
	changeRequestsTotal := 0.0
	crHours := 0.0
	for _, cr := range d.ChangeRequests {
		changeRequestsTotal += cr.Amount
		for _, h := range cr.Hours {
			crHours += h.ActualHours
		}
	}
	totalValue := d.OfferValue + changeRequestsTotal

	estimatedHours := 0.0
	baseActualHours := 0.0
	for _, ph := range d.ProfileHours {
		estimatedHours += ph.EstimatedHours
		baseActualHours += ph.ActualHours
	}
	// CR hours count toward delivered effort even though they carry no
	// estimate; estimated hours deliberately exclude them.
	actualHours := baseActualHours + crHours

	hoursVariance := actualHours - estimatedHours
	hoursVariancePercent := 0.0
	if estimatedHours > 0 {
		hoursVariancePercent = hoursVariance / estimatedHours * 100
	}

	estimatedExternalCost := 0.0
	actualExternalCost := 0.0
	for _, ec := range d.ExternalCosts {
		estimatedExternalCost += ec.EstimatedCost
		actualExternalCost += ec.ActualCost
	}

	estimatedInternalCost := estimatedHours * e.InternalHourlyCost
	actualInternalCost := actualHours * e.InternalHourlyCost

	estimatedTotalCost := estimatedInternalCost + estimatedExternalCost
	actualTotalCost := actualInternalCost + actualExternalCost

	// Contract value has no estimated/actual split: change requests are
	// assumed fully realized once added.
	estimatedProfit := totalValue - estimatedTotalCost
	actualProfit := totalValue - actualTotalCost

	estimatedMargin := 0.0
	actualMargin := 0.0
	if totalValue > 0 {
		estimatedMargin = estimatedProfit / totalValue * 100
		actualMargin = actualProfit / totalValue * 100
	}
	marginDelta := actualMargin - estimatedMargin

	// Effective rate: what labor alone earns per hour once pass-through
	// external costs leave the pool.
	estimatedHourlyRate := 0.0
	if estimatedHours > 0 {
		estimatedHourlyRate = (totalValue - estimatedExternalCost) / estimatedHours
	}
	actualHourlyRate := 0.0
	if actualHours > 0 {
		actualHourlyRate = (totalValue - actualExternalCost) / actualHours
	}

	return model.ProjectMetrics{
		TotalValue:            totalValue,
		EstimatedHours:        estimatedHours,
		ActualHours:           actualHours,
		HoursVariance:         hoursVariance,
		HoursVariancePercent:  hoursVariancePercent,
		EstimatedExternalCost: estimatedExternalCost,
		ActualExternalCost:    actualExternalCost,
		EstimatedInternalCost: estimatedInternalCost,
		ActualInternalCost:    actualInternalCost,
		EstimatedTotalCost:    estimatedTotalCost,
		ActualTotalCost:       actualTotalCost,
		EstimatedProfit:       estimatedProfit,
		ActualProfit:          actualProfit,
		EstimatedMargin:       estimatedMargin,
		ActualMargin:          actualMargin,
		MarginDelta:           marginDelta,
		EstimatedHourlyRate:   estimatedHourlyRate,
		ActualHourlyRate:      actualHourlyRate,
		Health:                e.classify(actualHours, actualMargin),
	}
}

// classify maps actual margin to a health badge. A project with no logged
// hours has no health signal and defaults to on-track. Banding is
// intentionally asymmetric: shortfall below target is penalized in two tiers,
// excess above target never is. Boundary placement matters; a borderline
// project changes badge if these comparisons move.
func (e Engine) classify(actualHours, actualMargin float64) string {
	if actualHours <= 0 {
		return model.HealthOnTrack
	}
	switch {
	case actualMargin >= e.TargetMarginMin && actualMargin <= e.TargetMarginMax:
		return model.HealthOnTrack // hit the target band
	case actualMargin >= e.TargetMarginMin-5 && actualMargin < e.TargetMarginMin:
		return model.HealthAtRisk // close but below (45-50 at defaults)
	case actualMargin > e.TargetMarginMax && actualMargin <= e.TargetMarginMax+10:
		return model.HealthOnTrack // comfortably above target (55-65)
	case actualMargin < e.TargetMarginMin-5:
		return model.HealthOverBudget // below 45 at defaults
	default:
		return model.HealthOnTrack // very high margin is acceptable
	}
}
