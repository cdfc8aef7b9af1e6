package model

// Scope item types.
const (
	ScopeWireframe   = "Wireframe"
	ScopeComponent   = "Component"
	ScopePage        = "Page"
	ScopeTemplate    = "Template"
	ScopeIntegration = "Integration"
	ScopeContent     = "Content"
	ScopeCustom      = "Custom"
)

// ScopeItemTypes lists the closed set of deliverable types.
var ScopeItemTypes = []string{
	ScopeWireframe,
	ScopeComponent,
	ScopePage,
	ScopeTemplate,
	ScopeIntegration,
	ScopeContent,
	ScopeCustom,
}

// ScopeItem is a deliverable line (a page, a component). Purely descriptive;
// it has no computed relationship to hours.
type ScopeItem struct {
	ID           int    `json:"id"`
	ProjectID    int    `json:"project_id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	PlannedCount int    `json:"planned_count"`
	ActualCount  int    `json:"actual_count"`
	Notes        string `json:"notes"`
}
