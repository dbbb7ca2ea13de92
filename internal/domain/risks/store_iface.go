package risks

import "context"

type StoreAPI interface {
	Create(ctx context.Context, assessment RiskAssessment) (string, error)
	Get(ctx context.Context, riskID string) (RiskAssessment, error)
	List(ctx context.Context, filter Filter, limit, offset int) ([]RiskAssessment, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ListAll(ctx context.Context) ([]RiskAssessment, error)
	Update(ctx context.Context, assessment RiskAssessment) error
	UpdateStatus(ctx context.Context, riskID, status string) error
}
