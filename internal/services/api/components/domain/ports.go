package domain

import "context"

// CreatorPort creates components; the import workflow depends on it
type CreatorPort interface {
	Create(ctx context.Context, in CreateInput) (Component, error)
}

// ServicePort defines the service contract for the inventory
type ServicePort interface {
	CreatorPort
	Get(ctx context.Context, uid string) (Component, error)
	List(ctx context.Context, q ListQuery) (ListResult, error)
	Update(ctx context.Context, uid string, in UpdateInput) (Component, error)
	Delete(ctx context.Context, uid string) error
	Types(ctx context.Context, category string) (CategoryTypes, error)
	Seed(ctx context.Context) (int, error)
}
