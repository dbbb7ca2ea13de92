package controls

import (
	"context"
	"errors"
	"fmt"
	"time"

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
	StandardID string
	Status     string
	ActiveOnly bool
}

const instanceColumns = `
    ci.id, ci.library_control_id, lc.standard_id, s.name, lc.code, lc.title,
    ci.review_interval_days, ci.activated_at, ci.last_reviewed_at,
    ci.next_review_due, ci.status, ci.active, ci.owner, ci.created_at`

const instanceJoins = `
    FROM control_instances ci
    JOIN library_controls lc ON ci.library_control_id = lc.id
    JOIN standards s ON lc.standard_id = s.id`

func (st *Store) Activate(ctx context.Context, libraryControlID, owner string, intervalDays int, activatedAt, nextDue time.Time) (string, error) {
	var id string
	err := st.DB.QueryRow(ctx, `
    INSERT INTO control_instances (library_control_id, owner, review_interval_days, activated_at, next_review_due, status, active)
    VALUES ($1,$2,$3,$4,$5,$6,true)
    RETURNING id
  `, libraryControlID, owner, intervalDays, activatedAt, nextDue, StatusPending).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (st *Store) Get(ctx context.Context, instanceID string) (ControlInstance, error) {
	row := st.DB.QueryRow(ctx, "SELECT"+instanceColumns+instanceJoins+" WHERE ci.id = $1", instanceID)
	instance, err := scanInstance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ControlInstance{}, ErrControlNotFound
	}
	return instance, err
}

func (st *Store) List(ctx context.Context, filter Filter, limit, offset int) ([]ControlInstance, error) {
	query, args := buildListQuery("SELECT"+instanceColumns, filter)
	query += fmt.Sprintf(" ORDER BY s.name, lc.code LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := st.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ControlInstance
	for rows.Next() {
		instance, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, instance)
	}
	return out, rows.Err()
}

func (st *Store) Count(ctx context.Context, filter Filter) (int, error) {
	query, args := buildListQuery("SELECT COUNT(1)", filter)
	var total int
	if err := st.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// ListAll returns every control instance, active or not, for aggregation.
func (st *Store) ListAll(ctx context.Context) ([]ControlInstance, error) {
	rows, err := st.DB.Query(ctx, "SELECT"+instanceColumns+instanceJoins+" ORDER BY s.name, lc.code")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ControlInstance
	for rows.Next() {
		instance, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, instance)
	}
	return out, rows.Err()
}

// UpdateSchedule persists a recomputed schedule together with the
// evidence entry that produced it, in one transaction.
func (st *Store) UpdateSchedule(ctx context.Context, instance ControlInstance, entry EvidenceEntry) error {
	tx, err := st.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
    UPDATE control_instances
    SET last_reviewed_at = $1, next_review_due = $2, status = $3
    WHERE id = $4
  `, instance.LastReviewedAt, instance.NextReviewDue, instance.Status, instance.ID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
    INSERT INTO evidence_entries (control_instance_id, compliance_status, notes, evidence_link, submitted_by, submitted_at)
    VALUES ($1,$2,$3,$4,$5,$6)
  `, entry.ControlInstanceID, entry.ComplianceStatus, entry.Notes, entry.EvidenceLink, entry.SubmittedBy, entry.SubmittedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (st *Store) ListEvidence(ctx context.Context, instanceID string, limit, offset int) ([]EvidenceEntry, error) {
	rows, err := st.DB.Query(ctx, `
    SELECT id, control_instance_id, compliance_status, notes, COALESCE(evidence_link, ''), submitted_by, submitted_at
    FROM evidence_entries
    WHERE control_instance_id = $1
    ORDER BY submitted_at DESC, id DESC
    LIMIT $2 OFFSET $3
  `, instanceID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EvidenceEntry
	for rows.Next() {
		var e EvidenceEntry
		if err := rows.Scan(&e.ID, &e.ControlInstanceID, &e.ComplianceStatus, &e.Notes, &e.EvidenceLink, &e.SubmittedBy, &e.SubmittedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (st *Store) Deactivate(ctx context.Context, instanceID string) error {
	tag, err := st.DB.Exec(ctx, "UPDATE control_instances SET active = false WHERE id = $1", instanceID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrControlNotFound
	}
	return nil
}

func (st *Store) IsActivated(ctx context.Context, libraryControlID string) (bool, error) {
	var count int
	if err := st.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM control_instances WHERE library_control_id = $1 AND active = true
  `, libraryControlID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func buildListQuery(prefix string, filter Filter) (string, []any) {
	query := prefix + instanceJoins + " WHERE 1=1"
	var args []any
	if filter.StandardID != "" {
		args = append(args, filter.StandardID)
		query += fmt.Sprintf(" AND lc.standard_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND ci.status = $%d", len(args))
	}
	if filter.ActiveOnly {
		query += " AND ci.active = true"
	}
	return query, args
}

func scanInstance(row pgx.Row) (ControlInstance, error) {
	var instance ControlInstance
	err := row.Scan(
		&instance.ID, &instance.LibraryControlID, &instance.StandardID, &instance.StandardName,
		&instance.Code, &instance.Title, &instance.ReviewIntervalDays, &instance.ActivatedAt,
		&instance.LastReviewedAt, &instance.NextReviewDue, &instance.Status, &instance.Active,
		&instance.Owner, &instance.CreatedAt,
	)
	return instance, err
}
