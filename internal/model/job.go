package model

import (
	"encoding/json"
	"time"
)

// Job states. Pending transitions to exactly one of the terminal states;
// there is no running substate and no cancellation.
const (
	JobPending   = "pending"
	JobCompleted = "completed"
	JobError     = "error"
)

// PMJob is a polled status record for a long-running task-generation request.
type PMJob struct {
	ID        int             `json:"id"`
	Status    string          `json:"status"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     *string         `json:"error,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
