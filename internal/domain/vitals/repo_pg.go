package vitals

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

type vitalsRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &vitalsRepoPG{pool: pool}
}

func (r *vitalsRepoPG) conn(ctx context.Context) queryable {
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

const sampleCols = `id, owner_id, metric_type, value, systolic, diastolic, unit, recorded_at`

func scanSample(row pgx.Row) (*Sample, error) {
	var s Sample
	err := row.Scan(&s.ID, &s.OwnerID, &s.MetricType, &s.Value, &s.Systolic, &s.Diastolic, &s.Unit, &s.RecordedAt)
	return &s, err
}

func (r *vitalsRepoPG) Create(ctx context.Context, sample *Sample) error {
	sample.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO health_metric_sample (id, owner_id, metric_type, value, systolic, diastolic, unit, recorded_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		sample.ID, sample.OwnerID, sample.MetricType, sample.Value, sample.Systolic, sample.Diastolic,
		sample.Unit, sample.RecordedAt)
	if err != nil {
		return storeErr("create sample", err)
	}
	return nil
}

func (r *vitalsRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]*Sample, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM health_metric_sample WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, storeErr("count samples", err)
	}
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+sampleCols+` FROM health_metric_sample
		WHERE owner_id = $1 ORDER BY recorded_at DESC LIMIT $2 OFFSET $3`, ownerID, limit, offset)
	if err != nil {
		return nil, 0, storeErr("list samples", err)
	}
	defer rows.Close()
	items, err := collect(rows)
	if err != nil {
		return nil, 0, storeErr("list samples", err)
	}
	return items, total, nil
}

func (r *vitalsRepoPG) ListSince(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]*Sample, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+sampleCols+` FROM health_metric_sample
		WHERE owner_id = $1 AND recorded_at >= $2 ORDER BY recorded_at DESC`, ownerID, since)
	if err != nil {
		return nil, storeErr("list recent samples", err)
	}
	defer rows.Close()
	items, err := collect(rows)
	if err != nil {
		return nil, storeErr("list recent samples", err)
	}
	return items, nil
}

func collect(rows pgx.Rows) ([]*Sample, error) {
	var items []*Sample
	for rows.Next() {
		s, err := scanSample(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, rows.Err()
}
