// Package domain holds DTOs for the component inventory http and service contracts
package domain

import "time"

// Component is one tracked low-code asset
type Component struct {
	UID         string    `json:"uid" example:"6f1c7a52-3f7e-4c39-9d6b-0a2b2c1f9e11"`
	ComponentID string    `json:"component_id" example:"VP-001"`
	Name        string    `json:"name" example:"Customer Authentication API"`
	URLLink     string    `json:"url_link" example:"https://studio.example.com/#/visual-programming/abc123"`
	ChangeType  string    `json:"change_type" example:"New"`
	Description string    `json:"description"`
	Category    string    `json:"category" example:"Visual Programming"`
	Type        string    `json:"type" example:"API"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput is the body of POST /components
type CreateInput struct {
	ComponentID string `json:"component_id" validate:"required,max=200" example:"VP-001"`
	Name        string `json:"name" validate:"required,max=300" example:"Customer Authentication API"`
	URLLink     string `json:"url_link" validate:"required,max=2048" example:"https://studio.example.com/#/visual-programming/abc123"`
	Category    string `json:"category" validate:"required" example:"Visual Programming"`
	Type        string `json:"type" validate:"required" example:"API"`
	ChangeType  string `json:"change_type" validate:"required" example:"New"`
	Description string `json:"description,omitempty" validate:"max=10000"`
}

// UpdateInput is the body of PATCH /components/{uid}; nil fields are left alone
type UpdateInput struct {
	ComponentID *string `json:"component_id,omitempty" validate:"omitempty,min=1,max=200"`
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=300"`
	URLLink     *string `json:"url_link,omitempty" validate:"omitempty,min=1,max=2048"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1"`
	Type        *string `json:"type,omitempty" validate:"omitempty,min=1"`
	ChangeType  *string `json:"change_type,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=10000"`
}

// ListQuery filters GET /components. Empty strings do not filter
type ListQuery struct {
	Category   string
	Type       string
	ChangeType string
	Search     string
	Page       int
	PageSize   int
}

// ListResult is one page of components plus the filtered total
type ListResult struct {
	Items    []Component
	Total    int
	Page     int
	PageSize int
}

// CategoryTypes lists the distinct types stored for one category
type CategoryTypes struct {
	Category string   `json:"category" example:"Data Manager"`
	Types    []string `json:"types"`
}
