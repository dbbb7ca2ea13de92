package controls

import (
	"context"
	"strings"
	"time"

	"grc/internal/domain"
	"grc/internal/domain/standards"
	"grc/internal/platform/metrics"
)

type LibraryStore interface {
	GetControl(ctx context.Context, libraryControlID string) (standards.LibraryControl, error)
}

type Service struct {
	store   StoreAPI
	library LibraryStore
	metrics *metrics.Metrics
}

func NewService(store StoreAPI, library LibraryStore, m *metrics.Metrics) *Service {
	return &Service{store: store, library: library, metrics: m}
}

type ActivateInput struct {
	Owner              string `json:"owner"`
	ReviewIntervalDays int    `json:"reviewIntervalDays"`
}

// Activate creates a ControlInstance for a library control. The review
// interval defaults to the library control's cadence when not supplied.
func (s *Service) Activate(ctx context.Context, libraryControlID string, input ActivateInput, asOf time.Time) (ControlInstance, error) {
	libraryControl, err := s.library.GetControl(ctx, libraryControlID)
	if err != nil {
		return ControlInstance{}, err
	}

	activated, err := s.store.IsActivated(ctx, libraryControlID)
	if err != nil {
		return ControlInstance{}, err
	}
	if activated {
		return ControlInstance{}, ErrAlreadyActivated
	}

	intervalDays := input.ReviewIntervalDays
	if intervalDays == 0 {
		intervalDays = libraryControl.DefaultReviewIntervalDays
	}
	if intervalDays <= 0 {
		return ControlInstance{}, domain.NewValidationError("reviewIntervalDays", "must be a positive number of days")
	}

	nextDue := asOf.AddDate(0, 0, intervalDays)
	id, err := s.store.Activate(ctx, libraryControlID, strings.TrimSpace(input.Owner), intervalDays, asOf, nextDue)
	if err != nil {
		return ControlInstance{}, err
	}
	return s.store.Get(ctx, id)
}

// RecordEvidence appends an evidence entry and moves the review schedule
// forward. Fetch, pure recompute, persist: no I/O happens inside the
// schedule computation itself.
func (s *Service) RecordEvidence(ctx context.Context, instanceID, submittedBy string, input EvidenceInput, asOf time.Time) (ControlInstance, EvidenceEntry, error) {
	instance, err := s.store.Get(ctx, instanceID)
	if err != nil {
		return ControlInstance{}, EvidenceEntry{}, err
	}

	updated, err := ApplyEvidence(instance, input, asOf)
	if err != nil {
		return ControlInstance{}, EvidenceEntry{}, err
	}

	entry := EvidenceEntry{
		ControlInstanceID: instanceID,
		ComplianceStatus:  input.ComplianceStatus,
		Notes:             strings.TrimSpace(input.Notes),
		EvidenceLink:      strings.TrimSpace(input.EvidenceLink),
		SubmittedBy:       submittedBy,
		SubmittedAt:       asOf,
	}
	if err := s.store.UpdateSchedule(ctx, updated, entry); err != nil {
		return ControlInstance{}, EvidenceEntry{}, err
	}
	if s.metrics != nil {
		s.metrics.EvidenceSubmissions.Inc()
	}
	return updated, entry, nil
}

func (s *Service) Deactivate(ctx context.Context, instanceID string) error {
	return s.store.Deactivate(ctx, instanceID)
}
