package dsr

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
	Status      string
	RequestType string
}

const requestColumns = `
    id, subject_name, subject_email, request_type, COALESCE(details, ''),
    status, created_at, deadline_date, completed_date,
    COALESCE(response_summary, ''), COALESCE(rejection_reason, '')`

func (s *Store) Create(ctx context.Context, request Request) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO dsr_requests (subject_name, subject_email, request_type, details, status, created_at, deadline_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING id
  `, request.SubjectName, request.SubjectEmail, request.RequestType, request.Details,
		request.Status, request.CreatedAt, request.DeadlineDate).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) Get(ctx context.Context, requestID string) (Request, error) {
	row := s.DB.QueryRow(ctx, "SELECT"+requestColumns+" FROM dsr_requests WHERE id = $1", requestID)
	request, err := scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Request{}, ErrRequestNotFound
	}
	return request, err
}

func (s *Store) List(ctx context.Context, filter Filter, limit, offset int) ([]Request, error) {
	query, args := buildRequestQuery("SELECT"+requestColumns, filter)
	query += fmt.Sprintf(" ORDER BY deadline_date, id LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)
	return s.queryRequests(ctx, query, args...)
}

func (s *Store) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildRequestQuery("SELECT COUNT(1)", filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) ListOpen(ctx context.Context) ([]Request, error) {
	return s.queryRequests(ctx, "SELECT"+requestColumns+` FROM dsr_requests
    WHERE status NOT IN ($1, $2)
    ORDER BY deadline_date, id`, StatusCompleted, StatusRejected)
}

func (s *Store) ListAll(ctx context.Context) ([]Request, error) {
	return s.queryRequests(ctx, "SELECT"+requestColumns+" FROM dsr_requests ORDER BY deadline_date, id")
}

func (s *Store) UpdateStatus(ctx context.Context, request Request) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE dsr_requests
    SET status = $1, completed_date = $2, response_summary = NULLIF($3, ''), rejection_reason = NULLIF($4, '')
    WHERE id = $5
  `, request.Status, request.CompletedDate, request.ResponseSummary, request.RejectionReason, request.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Request
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, request)
	}
	return out, rows.Err()
}

func buildRequestQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + " FROM dsr_requests WHERE 1=1"
	var args []any
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.RequestType != "" {
		args = append(args, filter.RequestType)
		query += fmt.Sprintf(" AND request_type = $%d", len(args))
	}
	return query, args
}

func scanRequest(row pgx.Row) (Request, error) {
	var request Request
	err := row.Scan(
		&request.ID, &request.SubjectName, &request.SubjectEmail, &request.RequestType,
		&request.Details, &request.Status, &request.CreatedAt, &request.DeadlineDate,
		&request.CompletedDate, &request.ResponseSummary, &request.RejectionReason,
	)
	return request, err
}
