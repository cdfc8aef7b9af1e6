package model

import (
	"encoding/json"
	"time"
)

// AIEstimate is a saved estimator run: the brief that was analyzed plus the
// model's structured three-scenario estimate.
type AIEstimate struct {
	ID           int             `json:"id"`
	BriefText    string          `json:"brief_text"`
	ProjectType  string          `json:"project_type"`
	CMS          string          `json:"cms"`
	Integrations string          `json:"integrations"`
	Estimate     json.RawMessage `json:"estimate"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PMGeneration is a saved task-breakdown generation.
type PMGeneration struct {
	ID           int             `json:"id"`
	ProjectName  string          `json:"project_name"`
	ProjectBrief string          `json:"project_brief"`
	Tasks        json.RawMessage `json:"tasks"`
	Summary      json.RawMessage `json:"summary"`
	CreatedAt    time.Time       `json:"created_at"`
}

// PMTemplate is a reusable task list saved from a previous generation.
type PMTemplate struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Tasks       json.RawMessage `json:"tasks"`
	ProjectType *string         `json:"project_type,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
