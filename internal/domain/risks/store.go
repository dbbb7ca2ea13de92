package risks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type Filter struct {
	Status   string
	Category string
}

const riskColumns = `
    id, title, COALESCE(description, ''), COALESCE(category, ''), COALESCE(owner, ''),
    likelihood, impact, residual_likelihood, residual_impact,
    COALESCE(mitigation_plan, ''), status, created_at, updated_at`

func (s *Store) Create(ctx context.Context, assessment RiskAssessment) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO risk_assessments (title, description, category, owner, likelihood, impact,
      residual_likelihood, residual_impact, mitigation_plan, status)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
    RETURNING id
  `, assessment.Title, assessment.Description, assessment.Category, assessment.Owner,
		assessment.Likelihood, assessment.Impact, assessment.ResidualLikelihood,
		assessment.ResidualImpact, assessment.MitigationPlan, assessment.Status).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, riskID string) (RiskAssessment, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+riskColumns+" FROM risk_assessments WHERE id = $1", riskID)
	assessment, err := scanRisk(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return RiskAssessment{}, ErrRiskNotFound
	}
	return assessment, err
}

func (s *Store) List(ctx context.Context, filter Filter, limit, offset int) ([]RiskAssessment, error) {
	query, args := buildRiskQuery("SELECT"+riskColumns, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RiskAssessment
	for rows.Next() {
		assessment, err := scanRisk(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, assessment)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildRiskQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListAll(ctx context.Context) ([]RiskAssessment, error) {
	rows, err := s.DB.Query(ctx, "SELECT"+riskColumns+" FROM risk_assessments ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RiskAssessment
	for rows.Next() {
		assessment, err := scanRisk(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, assessment)
	}
	return out, rows.Err()
}

func (s *Store) Update(ctx context.Context, assessment RiskAssessment) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE risk_assessments
    SET title = $1, description = $2, category = $3, owner = $4, likelihood = $5, impact = $6,
        residual_likelihood = $7, residual_impact = $8, mitigation_plan = $9, updated_at = now()
    WHERE id = $10
  `, assessment.Title, assessment.Description, assessment.Category, assessment.Owner,
		assessment.Likelihood, assessment.Impact, assessment.ResidualLikelihood,
		assessment.ResidualImpact, assessment.MitigationPlan, assessment.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRiskNotFound
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, riskID, status string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE risk_assessments SET status = $1, updated_at = now() WHERE id = $2
  `, status, riskID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRiskNotFound
	}
	return nil
}

func buildRiskQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM risk_assessments WHERE 1=1"
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	return query, args
}

func scanRisk(row pgx.Row) (RiskAssessment, error) {
	var assessment RiskAssessment
	err := row.Scan(
		&assessment.ID, &assessment.Title, &assessment.Description, &assessment.Category,
		&assessment.Owner, &assessment.Likelihood, &assessment.Impact,
		&assessment.ResidualLikelihood, &assessment.ResidualImpact,
		&assessment.MitigationPlan, &assessment.Status, &assessment.CreatedAt, &assessment.UpdatedAt,
	)
	return assessment, err
}
