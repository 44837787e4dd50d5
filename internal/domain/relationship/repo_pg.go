package relationship

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/caresense/caresense/internal/platform/apperr"
	"github.com/caresense/caresense/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type relationshipRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &relationshipRepoPG{pool: pool}
}

func (r *relationshipRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func storeErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	// SQLSTATE 23505: two racing requests for the same pair; the partial
	// unique index rejects the loser.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%s: %w: relationship already exists", op, apperr.ErrConflict)
	}
	return fmt.Errorf("%s: %w: %s", op, apperr.ErrStoreUnavailable, err)
}

const relationshipCols = `id, caregiver_id, caregiver_email, senior_email, senior_id,
	status, verification_code, requested_at, approved_at`

func scanRelationship(row pgx.Row) (*Relationship, error) {
	var rel Relationship
	err := row.Scan(&rel.ID, &rel.CaregiverID, &rel.CaregiverEmail, &rel.SeniorEmail, &rel.SeniorID,
		&rel.Status, &rel.VerificationCode, &rel.RequestedAt, &rel.ApprovedAt)
	return &rel, err
}

func (r *relationshipRepoPG) Create(ctx context.Context, rel *Relationship) error {
	rel.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO relationship (id, caregiver_id, caregiver_email, senior_email,
			status, verification_code, requested_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rel.ID, rel.CaregiverID, rel.CaregiverEmail, rel.SeniorEmail,
		rel.Status, rel.VerificationCode, rel.RequestedAt)
	if err != nil {
		return storeErr("create relationship", err)
	}
	return nil
}

func (r *relationshipRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Relationship, error) {
	rel, err := scanRelationship(r.conn(ctx).QueryRow(ctx,
		`SELECT `+relationshipCols+` FROM relationship WHERE id = $1`, id))
	if err != nil {
		return nil, storeErr("get relationship", err)
	}
	return rel, nil
}

func (r *relationshipRepoPG) Resolve(ctx context.Context, id uuid.UUID, status Status, seniorID uuid.UUID, at time.Time) (bool, error) {
	var approvedAt *time.Time
	if status == StatusApproved {
		approvedAt = &at
	}
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE relationship SET status = $2, senior_id = $3, approved_at = $4
		WHERE id = $1 AND status = 'pending'`,
		id, status, seniorID, approvedAt)
	if err != nil {
		return false, storeErr("resolve relationship", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *relationshipRepoPG) HasOpenRequest(ctx context.Context, caregiverID uuid.UUID, seniorEmail string) (bool, error) {
	var exists bool
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM relationship
			WHERE caregiver_id = $1 AND senior_email = $2 AND status <> 'rejected'
		)`, caregiverID, seniorEmail).Scan(&exists)
	if err != nil {
		return false, storeErr("check open request", err)
	}
	return exists, nil
}

func (r *relationshipRepoPG) LatestApproved(ctx context.Context, caregiverID, seniorID uuid.UUID) (*Relationship, error) {
	rel, err := scanRelationship(r.conn(ctx).QueryRow(ctx, `
		SELECT `+relationshipCols+` FROM relationship
		WHERE caregiver_id = $1 AND senior_id = $2 AND status = 'approved'
		ORDER BY approved_at DESC LIMIT 1`, caregiverID, seniorID))
	if err != nil {
		return nil, storeErr("latest approved relationship", err)
	}
	return rel, nil
}

func (r *relationshipRepoPG) ListByCaregiver(ctx context.Context, caregiverID uuid.UUID, limit, offset int) ([]*Relationship, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM relationship WHERE caregiver_id = $1`, caregiverID).Scan(&total); err != nil {
		return nil, 0, storeErr("count relationships", err)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+relationshipCols+` FROM relationship
		WHERE caregiver_id = $1
		ORDER BY requested_at DESC LIMIT $2 OFFSET $3`, caregiverID, limit, offset)
	if err != nil {
		return nil, 0, storeErr("list relationships", err)
	}
	defer rows.Close()
	items, err := collect(rows)
	if err != nil {
		return nil, 0, storeErr("list relationships", err)
	}
	return items, total, nil
}

func (r *relationshipRepoPG) CountPendingByCaregiver(ctx context.Context, caregiverID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM relationship
		WHERE caregiver_id = $1 AND status = 'pending'`, caregiverID).Scan(&count)
	if err != nil {
		return 0, storeErr("count pending relationships", err)
	}
	return count, nil
}

func (r *relationshipRepoPG) ListApprovedByCaregiver(ctx context.Context, caregiverID uuid.UUID) ([]*Relationship, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+relationshipCols+` FROM relationship
		WHERE caregiver_id = $1 AND status = 'approved'
		ORDER BY approved_at DESC`, caregiverID)
	if err != nil {
		return nil, storeErr("list approved relationships", err)
	}
	defer rows.Close()
	items, err := collect(rows)
	if err != nil {
		return nil, storeErr("list approved relationships", err)
	}
	return items, nil
}

func (r *relationshipRepoPG) ListPendingBySeniorEmail(ctx context.Context, seniorEmail string) ([]*Relationship, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+relationshipCols+` FROM relationship
		WHERE senior_email = $1 AND status = 'pending'
		ORDER BY requested_at DESC`, seniorEmail)
	if err != nil {
		return nil, storeErr("list pending relationships", err)
	}
	defer rows.Close()
	items, err := collect(rows)
	if err != nil {
		return nil, storeErr("list pending relationships", err)
	}
	return items, nil
}

func collect(rows pgx.Rows) ([]*Relationship, error) {
	var items []*Relationship
	for rows.Next() {
		rel, err := scanRelationship(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, rel)
	}
	return items, rows.Err()
}
