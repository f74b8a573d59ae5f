package domain

import "context"

// RecorderPort accepts events without blocking the caller
type RecorderPort interface {
	Record(ctx context.Context, e Event)
}

// ReaderPort lists the newest events
type ReaderPort interface {
	Recent(ctx context.Context, limit int) ([]Event, error)
}

// WorkerPort (flush loop) is separate
type WorkerPort interface {
	Run(ctx context.Context) error
}
