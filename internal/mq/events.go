package mq

import "encoding/json"

// Routing keys for domain events.
const (
	RoutingKeyPMGenerate = "pm.generate.requested"
)

// PMGenerateRequested is published when a task generation job is submitted.
// The worker loads the job row by ID and runs the generation.
type PMGenerateRequested struct {
	JobID int             `json:"job_id"`
	Input json.RawMessage `json:"input"`
}
