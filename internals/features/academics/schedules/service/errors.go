// file: internals/features/academics/schedules/service/errors.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	helper "kelasku_backend/internals/helpers"

	model "kelasku_backend/internals/features/academics/schedules/model"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrGroupNotFound    = errors.New("group not found")
	ErrGroupInactive    = errors.New("group is not active")
)

// ScheduleConflictError: bentrok jadwal mingguan dalam satu grup.
// Cek overlap classroom-agnostic: satu grup tidak bisa di dua tempat sekaligus.
type ScheduleConflictError struct {
	ConflictingID uuid.UUID
	DayOfWeek     model.DayOfWeek
	StartMinutes  int
	EndMinutes    int
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf(
		"schedule conflict with %s (%s %s–%s)",
		e.ConflictingID,
		e.DayOfWeek,
		helper.FromMinutes(e.StartMinutes),
		helper.FromMinutes(e.EndMinutes),
	)
}
