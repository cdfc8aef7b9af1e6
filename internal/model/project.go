package model

import "time"

// Project statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

type Project struct {
	ID                    int       `json:"id"`
	Name                  string    `json:"name"`
	Client                string    `json:"client"`
	ProjectType           string    `json:"project_type"`
	CMS                   string    `json:"cms"`
	Integrations          string    `json:"integrations"`
	OfferValue            float64   `json:"offer_value"`
	EstimatedProfitMargin float64   `json:"estimated_profit_margin"`
	WentWell              string    `json:"went_well"`
	WentWrong             string    `json:"went_wrong"`
	ScopeCreep            bool      `json:"scope_creep"`
	ScopeCreepNotes       string    `json:"scope_creep_notes"`
	Status                string    `json:"status"`
	ProjectOutcome        *string   `json:"project_outcome,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// ProjectDetail is a project together with its full child-record graph.
type ProjectDetail struct {
	Project
	ProfileHours   []ProfileHours           `json:"profile_hours"`
	ScopeItems     []ScopeItem              `json:"scope_items"`
	ExternalCosts  []ExternalCost           `json:"external_costs"`
	ChangeRequests []ChangeRequestWithHours `json:"change_requests"`
}
