// file: internals/features/academics/schedules/dto/class_schedule_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
	helper "kelasku_backend/internals/helpers"

	model "kelasku_backend/internals/features/academics/schedules/model"
)

/* =========================================================
   Errors (ringan)
   ========================================================= */

var (
	ErrInvalidStartTime = fmtErr("invalid start_time (use HH:MM)")
	ErrInvalidEndTime   = fmtErr("invalid end_time (use HH:MM)")
	ErrInvalidTimeRange = fmtErr("start_time must be before end_time")
	ErrInvalidDayOfWeek = fmtErr("invalid day_of_week (monday..saturday)")
	ErrInvalidClassroom = fmtErr("invalid classroom")
	ErrInvalidMode      = fmtErr("invalid mode (in_person|online|dual)")
)

type fmtErr string

func (e fmtErr) Error() string { return string(e) }

/* =========================================================
   Helpers
   ========================================================= */

func parseDay(s string) (model.DayOfWeek, bool) {
	d := model.DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	return d, d.Valid()
}

func parseClassroom(s string) (constants.Classroom, bool) {
	c := constants.Classroom(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

func parseMode(s string) (constants.ClassMode, bool) {
	m := constants.ClassMode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

/* =========================================================
   1) REQUESTS
   ========================================================= */

type CreateClassScheduleRequest struct {
	ClassScheduleGroupID   uuid.UUID `json:"class_schedule_group_id" validate:"required"`
	ClassScheduleDayOfWeek string    `json:"class_schedule_day_of_week" validate:"required"`
	ClassScheduleStartTime string    `json:"class_schedule_start_time" validate:"required"` // "HH:MM"
	ClassScheduleEndTime   string    `json:"class_schedule_end_time" validate:"required"`   // "HH:MM"
	ClassScheduleClassroom string    `json:"class_schedule_classroom" validate:"required"`
	ClassScheduleMode      *string   `json:"class_schedule_mode" validate:"omitempty"` // default ikut classroom
}

func (r CreateClassScheduleRequest) ToModel() (model.ClassScheduleModel, error) {
	day, ok := parseDay(r.ClassScheduleDayOfWeek)
	if !ok {
		return model.ClassScheduleModel{}, ErrInvalidDayOfWeek
	}
	start, err := helper.ToMinutes(r.ClassScheduleStartTime)
	if err != nil {
		return model.ClassScheduleModel{}, ErrInvalidStartTime
	}
	end, err := helper.ToMinutes(r.ClassScheduleEndTime)
	if err != nil {
		return model.ClassScheduleModel{}, ErrInvalidEndTime
	}
	if start >= end {
		return model.ClassScheduleModel{}, ErrInvalidTimeRange
	}
	room, ok := parseClassroom(r.ClassScheduleClassroom)
	if !ok {
		return model.ClassScheduleModel{}, ErrInvalidClassroom
	}

	// mode: eksplisit > derived dari ruangan
	mode := constants.ModeInPerson
	if room.IsVirtual() {
		mode = constants.ModeOnline
	}
	if r.ClassScheduleMode != nil {
		m, ok := parseMode(*r.ClassScheduleMode)
		if !ok {
			return model.ClassScheduleModel{}, ErrInvalidMode
		}
		mode = m
	}

	return model.ClassScheduleModel{
		ClassScheduleGroupID:      r.ClassScheduleGroupID,
		ClassScheduleDayOfWeek:    day,
		ClassScheduleStartMinutes: start,
		ClassScheduleEndMinutes:   end,
		ClassScheduleClassroom:    room,
		ClassScheduleMode:         mode,
	}, nil
}

type UpdateClassScheduleRequest struct {
	ClassScheduleDayOfWeek *string `json:"class_schedule_day_of_week" validate:"omitempty"`
	ClassScheduleStartTime *string `json:"class_schedule_start_time" validate:"omitempty"`
	ClassScheduleEndTime   *string `json:"class_schedule_end_time" validate:"omitempty"`
	ClassScheduleClassroom *string `json:"class_schedule_classroom" validate:"omitempty"`
	ClassScheduleMode      *string `json:"class_schedule_mode" validate:"omitempty"`
}

// Apply partial update ke model; invariant start<end dicek setelah merge.
func (r UpdateClassScheduleRequest) Apply(m *model.ClassScheduleModel) error {
	if r.ClassScheduleDayOfWeek != nil {
		day, ok := parseDay(*r.ClassScheduleDayOfWeek)
		if !ok {
			return ErrInvalidDayOfWeek
		}
		m.ClassScheduleDayOfWeek = day
	}
	if r.ClassScheduleStartTime != nil {
		v, err := helper.ToMinutes(*r.ClassScheduleStartTime)
		if err != nil {
			return ErrInvalidStartTime
		}
		m.ClassScheduleStartMinutes = v
	}
	if r.ClassScheduleEndTime != nil {
		v, err := helper.ToMinutes(*r.ClassScheduleEndTime)
		if err != nil {
			return ErrInvalidEndTime
		}
		m.ClassScheduleEndMinutes = v
	}
	if m.ClassScheduleStartMinutes >= m.ClassScheduleEndMinutes {
		return ErrInvalidTimeRange
	}
	if r.ClassScheduleClassroom != nil {
		room, ok := parseClassroom(*r.ClassScheduleClassroom)
		if !ok {
			return ErrInvalidClassroom
		}
		m.ClassScheduleClassroom = room
	}
	if r.ClassScheduleMode != nil {
		mode, ok := parseMode(*r.ClassScheduleMode)
		if !ok {
			return ErrInvalidMode
		}
		m.ClassScheduleMode = mode
	}
	return nil
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type ClassScheduleResponse struct {
	ClassScheduleID uuid.UUID `json:"class_schedule_id"`

	ClassScheduleGroupID uuid.UUID `json:"class_schedule_group_id"`

	ClassScheduleDayOfWeek string `json:"class_schedule_day_of_week"`
	ClassScheduleStartTime string `json:"class_schedule_start_time"` // "HH:MM"
	ClassScheduleEndTime   string `json:"class_schedule_end_time"`   // "HH:MM"
	ClassScheduleClassroom string `json:"class_schedule_classroom"`
	ClassScheduleMode      string `json:"class_schedule_mode"`

	ClassScheduleCreatedAt time.Time `json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time `json:"class_schedule_updated_at"`
}

func FromModel(m model.ClassScheduleModel) ClassScheduleResponse {
	return ClassScheduleResponse{
		ClassScheduleID:        m.ClassScheduleID,
		ClassScheduleGroupID:   m.ClassScheduleGroupID,
		ClassScheduleDayOfWeek: string(m.ClassScheduleDayOfWeek),
		ClassScheduleStartTime: helper.FromMinutes(m.ClassScheduleStartMinutes),
		ClassScheduleEndTime:   helper.FromMinutes(m.ClassScheduleEndMinutes),
		ClassScheduleClassroom: string(m.ClassScheduleClassroom),
		ClassScheduleMode:      string(m.ClassScheduleMode),
		ClassScheduleCreatedAt: m.ClassScheduleCreatedAt,
		ClassScheduleUpdatedAt: m.ClassScheduleUpdatedAt,
	}
}

func FromModels(list []model.ClassScheduleModel) []ClassScheduleResponse {
	out := make([]ClassScheduleResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(list[i]))
	}
	return out
}
