// Package domain holds DTOs for the batch import workflow
package domain

import (
	"context"

	"deploytrack/internal/core/batchimport"
)

// PreviewInput is pasted text, one "name url" per line
type PreviewInput struct {
	Text   string `json:"text" validate:"max=1048576" example:"Login Flow https://studio.example.com/#/visual-programming/abc123"`
	Strict bool   `json:"strict,omitempty"`
}

// PreviewOutput lists the drafts parsed from the text. Issues is only set in strict mode
type PreviewOutput struct {
	Total      int                     `json:"total"`
	Components []batchimport.Component `json:"components"`
	Issues     []batchimport.Issue     `json:"issues,omitempty"`
}

// CommitItem is one reviewed draft. Fields are checked per item so a bad
// item fails alone
type CommitItem struct {
	Name        string `json:"name"`
	ComponentID string `json:"component_id"`
	URLLink     string `json:"url_link"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	ChangeType  string `json:"change_type"`
	Description string `json:"description"`
}

// CommitInput is the body of POST /imports/commit
type CommitInput struct {
	Items []CommitItem `json:"items" validate:"required,min=1,max=1000"`
}

// CommitResult reports one item; exactly one of UID and Error is set
type CommitResult struct {
	Index int    `json:"index"`
	UID   string `json:"uid,omitempty"`
	Error string `json:"error,omitempty"`
}

// CommitOutput summarizes a commit
type CommitOutput struct {
	Total   int            `json:"total"`
	Created int            `json:"created"`
	Failed  int            `json:"failed"`
	Results []CommitResult `json:"results"`
}

// ServicePort defines the import workflow
type ServicePort interface {
	Preview(ctx context.Context, in PreviewInput) (PreviewOutput, error)
	Commit(ctx context.Context, in CommitInput) (CommitOutput, error)
}
