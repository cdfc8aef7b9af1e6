package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyQuery(t *testing.T) {
	tests := []struct {
		name      string
		sql       string
		operation string
		table     string
	}{
		{"select", "SELECT id FROM projects WHERE id = $1", "select", "projects"},
		{"insert", "INSERT INTO pm_jobs (status) VALUES ('pending')", "insert", "pm_jobs"},
		{"update", "UPDATE projects SET name = $1", "update", "projects"},
		{"delete", "DELETE FROM ai_estimates WHERE id = $1", "delete", "ai_estimates"},
		{"multiline", "\n        SELECT id\n        FROM change_requests\n    ", "select", "change_requests"},
		{"empty", "", "unknown", "unknown"},
		{"bare keyword", "SELECT", "select", "unknown"},
		{"other statement", "BEGIN", "begin", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, table := classifyQuery(tt.sql)
			assert.Equal(t, tt.operation, op)
			assert.Equal(t, tt.table, table)
		})
	}
}
