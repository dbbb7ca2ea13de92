package dashboard

import (
	"context"
	"time"

	"grc/internal/domain/controls"
	"grc/internal/domain/dsr"
	"grc/internal/domain/risks"
)

type ControlSource interface {
	ListAll(ctx context.Context) ([]controls.ControlInstance, error)
}

type RiskSource interface {
	ListAll(ctx context.Context) ([]risks.RiskAssessment, error)
}

type RequestSource interface {
	ListAll(ctx context.Context) ([]dsr.Request, error)
}

// Service reduces the collections owned by the other domains into
// dashboard payloads. It holds no state of its own.
type Service struct {
	controls ControlSource
	risks    RiskSource
	requests RequestSource
}

func NewService(controlSource ControlSource, riskSource RiskSource, requestSource RequestSource) *Service {
	return &Service{controls: controlSource, risks: riskSource, requests: requestSource}
}

func (s *Service) Summary(ctx context.Context, asOf time.Time) (ComplianceSummary, error) {
	instances, err := s.controls.ListAll(ctx)
	if err != nil {
		return ComplianceSummary{}, err
	}
	return Summarize(instances, asOf), nil
}

func (s *Service) StandardProgress(ctx context.Context) ([]StandardProgress, error) {
	instances, err := s.controls.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ProgressByStandard(instances), nil
}

func (s *Service) Matrix(ctx context.Context) ([]MatrixCell, error) {
	assessments, err := s.risks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return RiskMatrix(assessments), nil
}

func (s *Service) DSRSummary(ctx context.Context, asOf time.Time) (DSRSummary, error) {
	requests, err := s.requests.ListAll(ctx)
	if err != nil {
		return DSRSummary{}, err
	}
	return SummarizeDSR(requests, asOf), nil
}
