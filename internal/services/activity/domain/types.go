// Package domain holds the activity log event and its ports
package domain

import "time"

// Kind names what happened
type Kind string

// Event kinds
const (
	KindComponentCreated  Kind = "component.created"
	KindComponentUpdated  Kind = "component.updated"
	KindComponentDeleted  Kind = "component.deleted"
	KindComponentImported Kind = "component.imported"
	KindRequestExecuted   Kind = "request.executed"
)

// Event is one activity log entry. Subject is the uid the event is about
type Event struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Kind    Kind      `json:"kind"`
	Subject string    `json:"subject"`
	Detail  string    `json:"detail"`
}
