package model

import "time"

// External cost types.
const (
	CostContractor  = "contractor"
	CostToolLicense = "tool_license"
)

// ExternalCost is a non-labor cost line. Tool/license costs conventionally
// mirror actual into estimated at entry time; that convention is left to
// callers, not enforced here.
type ExternalCost struct {
	ID            int     `json:"id"`
	ProjectID     int     `json:"project_id"`
	Description   string  `json:"description"`
	CostType      string  `json:"cost_type"`
	EstimatedCost float64 `json:"estimated_cost"`
	ActualCost    float64 `json:"actual_cost"`
	Notes         string  `json:"notes"`
}

// ChangeRequest is a contract amendment adding value after the original
// offer. Its amount counts toward total contract value unconditionally.
type ChangeRequest struct {
	ID          int       `json:"id"`
	ProjectID   int       `json:"project_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

type ChangeRequestWithHours struct {
	ChangeRequest
	Hours []ChangeRequestHours `json:"hours"`
}
