package model

// Health classifies a project's actual margin against the target band.
const (
	HealthOnTrack    = "on-track"
	HealthAtRisk     = "at-risk"
	HealthOverBudget = "over-budget"
)

// ProjectMetrics holds the figures derived from a project's record graph.
// Never persisted; recomputed on every read so it cannot drift from source
// records.
type ProjectMetrics struct {
	TotalValue            float64 `json:"totalValue"`
	EstimatedHours        float64 `json:"estimatedHours"`
	ActualHours           float64 `json:"actualHours"`
	HoursVariance         float64 `json:"hoursVariance"`
	HoursVariancePercent  float64 `json:"hoursVariancePercent"`
	EstimatedExternalCost float64 `json:"estimatedExternalCost"`
	ActualExternalCost    float64 `json:"actualExternalCost"`
	EstimatedInternalCost float64 `json:"estimatedInternalCost"`
	ActualInternalCost    float64 `json:"actualInternalCost"`
	EstimatedTotalCost    float64 `json:"estimatedTotalCost"`
	ActualTotalCost       float64 `json:"actualTotalCost"`
	EstimatedProfit       float64 `json:"estimatedProfit"`
	ActualProfit          float64 `json:"actualProfit"`
	EstimatedMargin       float64 `json:"estimatedMargin"`
	ActualMargin          float64 `json:"actualMargin"`
	MarginDelta           float64 `json:"marginDelta"`
	EstimatedHourlyRate   float64 `json:"estimatedHourlyRate"`
	ActualHourlyRate      float64 `json:"actualHourlyRate"`
	Health                string  `json:"health"`
}
