package controls

import (
	"context"
	"time"
)

type StoreAPI interface {
	Activate(ctx context.Context, libraryControlID, owner string, intervalDays int, activatedAt, nextDue time.Time) (string, error)
	Get(ctx context.Context, instanceID string) (ControlInstance, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]ControlInstance, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListAll(ctx context.Context) ([]ControlInstance, error)
	UpdateSchedule(ctx context.Context, instance ControlInstance, entry EvidenceEntry) error
	ListEvidence(ctx context.Context, instanceID string, limit, offset int) ([]EvidenceEntry, error)
	Deactivate(ctx context.Context, instanceID string) error
	IsActivated(ctx context.Context, libraryControlID string) (bool, error)
}
