package notifications

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	KindReviewOverdue = "control_review_overdue"
	KindDSRDueSoon    = "dsr_due_soon"
	KindDSROverdue    = "dsr_overdue"
)

type Notification struct {
	ID         string     `json:"id"`
	Kind       string     `json:"kind"`
	Message    string     `json:"message"`
	EntityType string     `json:"entityType,omitempty"`
	EntityID   string     `json:"entityId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ReadAt     *time.Time `json:"readAt,omitempty"`
}

type Service struct {
	DB *pgxpool.Pool
}

func New(db *pgxpool.Pool) *Service {
	return &Service{DB: db}
}

// Notify inserts a notification unless an unread one already exists for
// the same kind and entity, so sweep runs do not pile up duplicates.
func (s *Service) Notify(ctx context.Context, kind, message, entityType, entityID string) error {
	var count int
	if err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM notifications
    WHERE kind = $1 AND entity_type = $2 AND entity_id = $3 AND read_at IS NULL
  `, kind, entityType, entityID).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO notifications (kind, message, entity_type, entity_id)
    VALUES ($1,$2,$3,$4)
  `, kind, message, entityType, entityID)
	return err
}

func (s *Service) List(ctx context.Context, unreadOnly bool, limit, offset int) ([]Notification, error) {
	query := `
    SELECT id, kind, message, entity_type, entity_id, created_at, read_at
    FROM notifications`
	if unreadOnly {
		query += " WHERE read_at IS NULL"
	}
	query += " ORDER BY created_at DESC LIMIT $1 OFFSET $2"

	rows, err := s.DB.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.Kind, &n.Message, &n.EntityType, &n.EntityID, &n.CreatedAt, &n.ReadAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Service) MarkRead(ctx context.Context, notificationID string) error {
	_, err := s.DB.Exec(ctx, "UPDATE notifications SET read_at = now() WHERE id = $1", notificationID)
	return err
}
