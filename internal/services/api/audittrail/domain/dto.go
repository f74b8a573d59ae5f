// Package domain holds the audit trail query types
package domain

import (
	"context"
	"encoding/json"
)

// Sort orders accepted by Query.Sort
const (
	SortDesc = "desc"
	SortAsc  = "asc"
)

// Query limits
const (
	DefaultLimit = 500
	MaxLimit     = 1000
	PreviewLen   = 200
)

// QueryInput is what a caller sends to query an audit trail endpoint
type QueryInput struct {
	APIURL     string `json:"api_url" validate:"required,max=4096" example:"https://api.example.com/v1/nocode/record/audit_trail"`
	Token      string `json:"token" validate:"required"`
	FormDataID string `json:"form_data_id,omitempty" example:"65f0c1d2e3a4b5c6d7e8f901"`
	RecordID   string `json:"record_id,omitempty" example:"rec_42"`
	Page       int    `json:"page,omitempty" validate:"omitempty,min=1" example:"1"`
	Limit      int    `json:"limit,omitempty" validate:"omitempty,min=1,max=1000" example:"500"`
	Sort       string `json:"sort,omitempty" validate:"omitempty,oneof=desc asc" example:"desc"`
	// CustomBody replaces the generated request body when set
	CustomBody json.RawMessage `json:"custom_body,omitempty" swaggertype:"object"`
}

// Record is one readable audit entry
type Record struct {
	Action       string `json:"action"`
	Timestamp    any    `json:"timestamp,omitempty" swaggertype:"integer"`
	Time         string `json:"time,omitempty" example:"2026-05-01 09:00:00"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AutomationID string `json:"automation_id,omitempty"`
	NewData      string `json:"new_data,omitempty"`
	OldData      string `json:"old_data,omitempty"`
}

// QueryOutput is the upstream answer; Data is parsed JSON or the raw text
type QueryOutput struct {
	StatusCode int      `json:"status_code" example:"200"`
	Data       any      `json:"data"`
	Records    []Record `json:"records"`
}

// ServicePort queries a remote audit trail
type ServicePort interface {
	Query(ctx context.Context, in QueryInput) (QueryOutput, error)
}
