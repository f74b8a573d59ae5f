package domain

import "context"

// ServicePort defines the API client contract
type ServicePort interface {
	Create(ctx context.Context, in SaveInput) (SavedRequest, error)
	Get(ctx context.Context, uid string) (SavedRequest, error)
	List(ctx context.Context, q ListQuery) ([]SavedRequest, error)
	Update(ctx context.Context, uid string, in SaveInput) (SavedRequest, error)
	Delete(ctx context.Context, uid string) error
	Execute(ctx context.Context, spec RequestSpec) (ResponseView, error)
	ExecuteSaved(ctx context.Context, uid string) (ResponseView, error)
}
