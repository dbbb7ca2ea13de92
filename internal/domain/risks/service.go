package risks

import (
	"context"
	"strings"

	"grc/internal/platform/metrics"
)

type Service struct {
	store   StoreAPI
	metrics *metrics.Metrics
}

func NewService(store StoreAPI, m *metrics.Metrics) *Service {
	return &Service{store: store, metrics: m}
}

func (s *Service) Create(ctx context.Context, assessment RiskAssessment) (ScoredRisk, error) {
	assessment.Title = strings.TrimSpace(assessment.Title)
	if err := Validate(assessment); err != nil {
		return ScoredRisk{}, err
	}
	assessment.Status = StatusIdentified

	id, err := s.store.Create(ctx, assessment)
	if err != nil {
		return ScoredRisk{}, err
	}
	created, err := s.store.Get(ctx, id)
	if err != nil {
		return ScoredRisk{}, err
	}
	return Scored(created), nil
}

// Update replaces the user-editable fields of an assessment. Status is
// not touched here; it only moves through ChangeStatus.
func (s *Service) Update(ctx context.Context, riskID string, assessment RiskAssessment) (ScoredRisk, error) {
	current, err := s.store.Get(ctx, riskID)
	if err != nil {
		return ScoredRisk{}, err
	}

	assessment.ID = current.ID
	assessment.Title = strings.TrimSpace(assessment.Title)
	if err := Validate(assessment); err != nil {
		return ScoredRisk{}, err
	}

	if err := s.store.Update(ctx, assessment); err != nil {
		return ScoredRisk{}, err
	}
	updated, err := s.store.Get(ctx, riskID)
	if err != nil {
		return ScoredRisk{}, err
	}
	return Scored(updated), nil
}

func (s *Service) ChangeStatus(ctx context.Context, riskID, to string) (ScoredRisk, error) {
	current, err := s.store.Get(ctx, riskID)
	if err != nil {
		return ScoredRisk{}, err
	}

	updated, err := Transition(current, to)
	if err != nil {
		return ScoredRisk{}, err
	}

	if err := s.store.UpdateStatus(ctx, riskID, updated.Status); err != nil {
		return ScoredRisk{}, err
	}
	if s.metrics != nil {
		s.metrics.RiskTransitions.Inc()
	}
	return Scored(updated), nil
}
