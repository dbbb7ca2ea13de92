package dsr

import "context"

type StoreAPI interface {
	Create(ctx context.Context, request Request) (string, error)
	Get(ctx context.Context, requestID string) (Request, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]Request, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListOpen(ctx context.Context) ([]Request, error)
	ListAll(ctx context.Context) ([]Request, error)
	UpdateStatus(ctx context.Context, request Request) error
}
