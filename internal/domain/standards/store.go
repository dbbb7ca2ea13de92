package standards

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrControlNotFound = errors.New("library control not found")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListStandards(ctx context.Context) ([]Standard, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, version, COALESCE(description, ''), created_at
    FROM standards
    ORDER BY name
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Standard
	for rows.Next() {
		var std Standard
		if err := rows.Scan(&std.ID, &std.Name, &std.Version, &std.Description, &std.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, std)
	}
	return out, rows.Err()
}

func (s *Store) ListControls(ctx context.Context, standardID string) ([]LibraryControl, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, standard_id, code, title, COALESCE(description, ''), default_review_interval_days, created_at
    FROM library_controls
    WHERE standard_id = $1
    ORDER BY code
  `, standardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LibraryControl
	for rows.Next() {
		var lc LibraryControl
		if err := rows.Scan(&lc.ID, &lc.StandardID, &lc.Code, &lc.Title, &lc.Description, &lc.DefaultReviewIntervalDays, &lc.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, lc)
	}
	return out, rows.Err()
}

func (s *Store) GetControl(ctx context.Context, libraryControlID string) (LibraryControl, error) {
	var lc LibraryControl
	err := s.DB.QueryRow(ctx, `
    SELECT id, standard_id, code, title, COALESCE(description, ''), default_review_interval_days, created_at
    FROM library_controls
    WHERE id = $1
  `, libraryControlID).Scan(&lc.ID, &lc.StandardID, &lc.Code, &lc.Title, &lc.Description, &lc.DefaultReviewIntervalDays, &lc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return LibraryControl{}, ErrControlNotFound
	}
	return lc, err
}
