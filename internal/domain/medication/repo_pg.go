package medication

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

type medicationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &medicationRepoPG{pool: pool}
}

func (r *medicationRepoPG) conn(ctx context.Context) queryable {
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

const definitionCols = `id, owner_id, name, dosage, med_type, frequency, times,
	is_daily, is_active, refill_date, created_at, updated_at`

func scanDefinition(row pgx.Row) (*Definition, error) {
	var def Definition
	err := row.Scan(&def.ID, &def.OwnerID, &def.Name, &def.Dosage, &def.Type, &def.Frequency, &def.Times,
		&def.IsDaily, &def.IsActive, &def.RefillDate, &def.CreatedAt, &def.UpdatedAt)
	return &def, err
}

func (r *medicationRepoPG) CreateDefinition(ctx context.Context, def *Definition) error {
	def.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication_definition (id, owner_id, name, dosage, med_type, frequency,
			times, is_daily, is_active, refill_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		def.ID, def.OwnerID, def.Name, def.Dosage, def.Type, def.Frequency,
		def.Times, def.IsDaily, def.IsActive, def.RefillDate)
	if err != nil {
		return storeErr("create medication", err)
	}
	return nil
}

func (r *medicationRepoPG) GetDefinition(ctx context.Context, id uuid.UUID) (*Definition, error) {
	def, err := scanDefinition(r.conn(ctx).QueryRow(ctx,
		`SELECT `+definitionCols+` FROM medication_definition WHERE id = $1`, id))
	if err != nil {
		return nil, storeErr("get medication", err)
	}
	return def, nil
}

func (r *medicationRepoPG) UpdateDefinition(ctx context.Context, def *Definition) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE medication_definition SET name=$2, dosage=$3, med_type=$4, frequency=$5,
			times=$6, is_daily=$7, is_active=$8, refill_date=$9, updated_at=NOW()
		WHERE id = $1`,
		def.ID, def.Name, def.Dosage, def.Type, def.Frequency,
		def.Times, def.IsDaily, def.IsActive, def.RefillDate)
	if err != nil {
		return storeErr("update medication", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *medicationRepoPG) ListByOwner(ctx context.Context, ownerID uuid.UUID, activeOnly bool) ([]*Definition, error) {
	q := `SELECT ` + definitionCols + ` FROM medication_definition WHERE owner_id = $1`
	if activeOnly {
		q += ` AND is_active`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.conn(ctx).Query(ctx, q, ownerID)
	if err != nil {
		return nil, storeErr("list medications", err)
	}
	defer rows.Close()
	var items []*Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, storeErr("list medications", err)
		}
		items = append(items, def)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list medications", err)
	}
	return items, nil
}

func (r *medicationRepoPG) CreateUsageEvent(ctx context.Context, evt *UsageEvent) error {
	evt.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO medication_usage_event (id, medication_id, owner_id, taken_at)
		VALUES ($1,$2,$3,$4)`,
		evt.ID, evt.MedicationID, evt.OwnerID, evt.TakenAt)
	if err != nil {
		return storeErr("create usage event", err)
	}
	return nil
}

func (r *medicationRepoPG) ListUsageBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*UsageEvent, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT id, medication_id, owner_id, taken_at FROM medication_usage_event
		WHERE owner_id = $1 AND taken_at >= $2 AND taken_at < $3
		ORDER BY taken_at`, ownerID, from, to)
	if err != nil {
		return nil, storeErr("list usage events", err)
	}
	defer rows.Close()
	var items []*UsageEvent
	for rows.Next() {
		var evt UsageEvent
		if err := rows.Scan(&evt.ID, &evt.MedicationID, &evt.OwnerID, &evt.TakenAt); err != nil {
			return nil, storeErr("list usage events", err)
		}
		items = append(items, &evt)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list usage events", err)
	}
	return items, nil
}
