package relationship

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/caresense/caresense/internal/platform/apperr"
)

func TestStoreErrMapping(t *testing.T) {
	if err := storeErr("get relationship", pgx.ErrNoRows); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found for no rows, got %v", err)
	}

	// A unique-index violation means two requests raced for the same pair;
	// the caller sees the same conflict as the pre-insert check.
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "relationship_open_pair_idx"}
	if err := storeErr("create relationship", unique); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("expected conflict for unique violation, got %v", err)
	}

	if err := storeErr("create relationship", errors.New("connection reset")); !errors.Is(err, apperr.ErrStoreUnavailable) {
		t.Errorf("expected store unavailable for other errors, got %v", err)
	}
}
