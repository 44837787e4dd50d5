package activity

import (
	"context"
	"errors"
	"fmt"

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

type activityRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &activityRepoPG{pool: pool}
}

func (r *activityRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func storeErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return fmt.Errorf("%s: %w: %s", op, apperr.ErrStoreUnavailable, err)
}

const recordCols = `id, owner_id, type, duration_seconds, calories_burned, distance, created_at`

func scanRecord(row pgx.Row) (*Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.OwnerID, &rec.Type, &rec.DurationSeconds,
		&rec.CaloriesBurned, &rec.Distance, &rec.CreatedAt)
	return &rec, err
}

func (r *activityRepoPG) Create(ctx context.Context, rec *Record) error {
	rec.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO activity_record (id, owner_id, type, duration_seconds, calories_burned, distance, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rec.ID, rec.OwnerID, rec.Type, rec.DurationSeconds, rec.CaloriesBurned, rec.Distance, rec.CreatedAt)
	if err != nil {
		return storeErr("create activity", err)
	}
	return nil
}

func (r *activityRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Record, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_record WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, storeErr("count activity", err)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+recordCols+` FROM activity_record
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, storeErr("list activity", err)
	}
	defer rows.Close()
	var items []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, storeErr("list activity", err)
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list activity", err)
	}
	return items, total, nil
}

func (r *activityRepoPG) Latest(ctx context.Context, ownerID uuid.UUID) (*Record, error) {
	rec, err := scanRecord(r.conn(ctx).QueryRow(ctx, `
		SELECT `+recordCols+` FROM activity_record
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT 1`, ownerID))
	if err != nil {
		return nil, storeErr("latest activity", err)
	}
	return rec, nil
}
