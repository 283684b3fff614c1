// file: internals/features/academics/sessions/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	model "kelasku_backend/internals/features/academics/sessions/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGroupNotFound   = errors.New("group not found")
	ErrGroupInactive   = errors.New("group is not active")

	// ErrStaleVersion: kalah race optimistic lock; caller wajib re-check state
	// sebelum retry (transisi lifecycle TIDAK idempotent).
	ErrStaleVersion = errors.New("session was modified concurrently, reload and retry")

	// ErrGenerateConflict: generate bentrok dgn generate lain utk grup sama;
	// retryable setelah rollback penuh.
	ErrGenerateConflict = errors.New("concurrent generation conflict, retry")

	ErrDateRangeInvalid = errors.New("start_date must be on or before end_date")
	ErrDateRangeTooLong = errors.New("date range too long")
)

// InvalidTransitionError: guard state machine ditolak.
// Non-retryable — caller harus menampilkan state sekarang ke user.
type InvalidTransitionError struct {
	From   model.SessionStatus
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: cannot %s a session in status %q", e.Action, e.From)
}

// PlacementConflictError: drag/drop menimpa item lain di bucket tujuan.
type PlacementConflictError struct {
	ConflictingID uuid.UUID
}

func (e *PlacementConflictError) Error() string {
	return fmt.Sprintf("placement conflict with %s", e.ConflictingID)
}
