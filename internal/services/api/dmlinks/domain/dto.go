// Package domain holds DTOs for Data Manager link lookup
package domain

import (
	"context"

	"deploytrack/internal/core/formdata"
)

// MappingInfo describes the loaded id -> group table
type MappingInfo struct {
	Entries int    `json:"entries" example:"1240"`
	Source  string `json:"source" example:"indexed-data-managers.json"`
	Host    string `json:"host" example:"studio.example.com"`
	Error   string `json:"error,omitempty"`
}

// ServicePort defines the link lookup contract
type ServicePort interface {
	Find(ctx context.Context, raw []byte) (formdata.Resolution, error)
	Mapping(ctx context.Context) MappingInfo
}
