package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{ErrNotAuthenticated, "not_authenticated"},
		{ErrNotApproved, "not_approved"},
		{ErrConflict, "conflict"},
		{ErrNotFound, "not_found"},
		{ErrValidation, "validation_error"},
		{ErrStoreUnavailable, "store_unavailable"},
		{errors.New("boom"), "internal"},
	}
	for _, tc := range cases {
		if got := Kind(tc.err); got != tc.want {
			t.Errorf("Kind(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestKindWrapped(t *testing.T) {
	err := fmt.Errorf("approve relationship: %w", ErrNotFound)
	if got := Kind(err); got != "not_found" {
		t.Errorf("Kind(wrapped) = %q, want not_found", got)
	}
}

func TestValidationf(t *testing.T) {
	err := Validationf("time %q is not HH:MM", "25:99")
	if !errors.Is(err, ErrValidation) {
		t.Error("expected Validationf error to wrap ErrValidation")
	}
	if err.Error() != `validation error: time "25:99" is not HH:MM` {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
