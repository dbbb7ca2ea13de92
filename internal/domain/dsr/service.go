package dsr

import (
	"context"
	"strings"
	"time"

	"grc/internal/domain"
	"grc/internal/platform/metrics"
)

type Service struct {
	store   StoreAPI
	metrics *metrics.Metrics
}

func NewService(store StoreAPI, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

type CreateInput struct {
	SubjectName  string `json:"subjectName"`
	SubjectEmail string `json:"subjectEmail"`
	RequestType  string `json:"requestType"`
	Details      string `json:"details"`
}

// Create registers a request. The statutory deadline is derived from the
// creation time once and persisted; it is immutable from then on.
func (s *Service) Create(ctx context.Context, input CreateInput, asOf time.Time) (RequestView, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(input.SubjectName) == "" {
		verr.Add("subjectName", "must not be empty")
	}
	if strings.TrimSpace(input.SubjectEmail) == "" {
		verr.Add("subjectEmail", "must not be empty")
	}
	if !ValidRequestType(input.RequestType) {
		verr.Add("requestType", "must be one of "+strings.Join(RequestTypes, ", "))
	}
	if len(verr.Issues) > 0 {
		return RequestView{}, verr
	}

	request := Request{
		SubjectName:  strings.TrimSpace(input.SubjectName),
		SubjectEmail: strings.TrimSpace(input.SubjectEmail),
		RequestType:  input.RequestType,
		Details:      strings.TrimSpace(input.Details),
		Status:       StatusSubmitted,
		CreatedAt:    asOf,
		DeadlineDate: Deadline(asOf),
	}

	id, err := s.store.Create(ctx, request)
	if err != nil {
		return RequestView{}, err
	}
	created, err := s.store.Get(ctx, id)
	if err != nil {
		return RequestView{}, err
	}
	return View(created, asOf), nil
}

func (s *Service) ChangeStatus(ctx context.Context, requestID string, input TransitionInput, asOf time.Time) (RequestView, error) {
	current, err := s.store.Get(ctx, requestID)
	if err != nil {
		return RequestView{}, err
	}

	updated, err := Transition(current, input, asOf)
	if err != nil {
		return RequestView{}, err
	}

	if err := s.store.UpdateStatus(ctx, updated); err != nil {
		return RequestView{}, err
	}
	if s.metrics != nil {
		s.metrics.DSRTransitions.Inc()
	}
	return View(updated, asOf), nil
}
