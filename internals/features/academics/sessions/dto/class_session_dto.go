// file: internals/features/academics/sessions/dto/class_session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"kelasku_backend/internals/constants"
	helper "kelasku_backend/internals/helpers"

	model "kelasku_backend/internals/features/academics/sessions/model"
)

const dateLayout = "2006-01-02"

/* =========================================================
   Errors (ringan)
   ========================================================= */

var (
	ErrInvalidDate       = fmtErr("invalid date (use YYYY-MM-DD)")
	ErrInvalidStartTime  = fmtErr("invalid start_time (use HH:MM)")
	ErrInvalidEndTime    = fmtErr("invalid end_time (use HH:MM)")
	ErrInvalidTimeRange  = fmtErr("start_time must be before end_time")
	ErrInvalidClassroom  = fmtErr("invalid classroom")
	ErrInvalidMode       = fmtErr("invalid mode (in_person|online|dual)")
	ErrInvalidType       = fmtErr("invalid type (extra|scheduling)")
	ErrGroupRequired   = fmtErr("group_id is required for extra sessions")
	ErrGroupNotAllowed = fmtErr("group_id must be empty for scheduling sessions")
)

type fmtErr string

func (e fmtErr) Error() string { return string(e) }

/* =========================================================
   Helpers
   ========================================================= */

func parseClassroom(s string) (constants.Classroom, bool) {
	c := constants.Classroom(strings.ToLower(strings.TrimSpace(s)))
	return c, c.Valid()
}

func parseMode(s string) (constants.ClassMode, bool) {
	m := constants.ClassMode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
	return t, err == nil
}

/* =========================================================
   1) REQUESTS
   ========================================================= */

// CreateClassSessionRequest: sesi manual (type extra/scheduling).
// Sesi regular lahir lewat generate, bukan endpoint ini.
type CreateClassSessionRequest struct {
	ClassSessionGroupID   *uuid.UUID `json:"class_session_group_id" validate:"omitempty"`
	ClassSessionSubjectID uuid.UUID  `json:"class_session_subject_id" validate:"required"`
	ClassSessionType      string     `json:"class_session_type" validate:"required"`
	ClassSessionDate      string     `json:"class_session_date" validate:"required"` // "YYYY-MM-DD"
	ClassSessionStartTime string     `json:"class_session_start_time" validate:"required"`
	ClassSessionEndTime   string     `json:"class_session_end_time" validate:"required"`
	ClassSessionClassroom string     `json:"class_session_classroom" validate:"required"`
	ClassSessionMode      *string    `json:"class_session_mode" validate:"omitempty"`
}

func (r CreateClassSessionRequest) ToModel() (model.ClassSessionModel, error) {
	typ := model.SessionType(strings.ToLower(strings.TrimSpace(r.ClassSessionType)))
	switch typ {
	case model.SessionTypeExtra:
		if r.ClassSessionGroupID == nil {
			return model.ClassSessionModel{}, ErrGroupRequired
		}
	case model.SessionTypeScheduling:
		if r.ClassSessionGroupID != nil {
			return model.ClassSessionModel{}, ErrGroupNotAllowed
		}
	default:
		// regular sengaja tidak diterima di sini
		return model.ClassSessionModel{}, ErrInvalidType
	}

	date, ok := parseDate(r.ClassSessionDate)
	if !ok {
		return model.ClassSessionModel{}, ErrInvalidDate
	}
	start, err := helper.ToMinutes(r.ClassSessionStartTime)
	if err != nil {
		return model.ClassSessionModel{}, ErrInvalidStartTime
	}
	end, err := helper.ToMinutes(r.ClassSessionEndTime)
	if err != nil {
		return model.ClassSessionModel{}, ErrInvalidEndTime
	}
	if start >= end {
		return model.ClassSessionModel{}, ErrInvalidTimeRange
	}
	room, ok := parseClassroom(r.ClassSessionClassroom)
	if !ok {
		return model.ClassSessionModel{}, ErrInvalidClassroom
	}

	mode := constants.ModeInPerson
	if room.IsVirtual() {
		mode = constants.ModeOnline
	}
	if r.ClassSessionMode != nil {
		m, ok := parseMode(*r.ClassSessionMode)
		if !ok {
			return model.ClassSessionModel{}, ErrInvalidMode
		}
		mode = m
	}

	return model.ClassSessionModel{
		ClassSessionGroupID:      r.ClassSessionGroupID,
		ClassSessionSubjectID:    r.ClassSessionSubjectID,
		ClassSessionClassroom:    room,
		ClassSessionDate:         date,
		ClassSessionStartMinutes: start,
		ClassSessionEndMinutes:   end,
		ClassSessionStatus:       model.SessionStatusScheduled,
		ClassSessionType:         typ,
		ClassSessionMode:         mode,
		ClassSessionVersion:      1,
	}, nil
}

// GenerateSessionsRequest: materialisasi jadwal mingguan → sesi bertanggal.
type GenerateSessionsRequest struct {
	GroupID   uuid.UUID `json:"group_id" validate:"required"`
	StartDate string    `json:"start_date" validate:"required"` // "YYYY-MM-DD"
	EndDate   string    `json:"end_date" validate:"required"`
	Preview   bool      `json:"preview"` // true → hitung saja, jangan tulis
}

func (r GenerateSessionsRequest) Range() (time.Time, time.Time, error) {
	from, ok := parseDate(r.StartDate)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	to, ok := parseDate(r.EndDate)
	if !ok {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	return from, to, nil
}

// PostponeClassSessionRequest: field nil → pertahankan nilai lama.
type PostponeClassSessionRequest struct {
	NewDate      string  `json:"new_date" validate:"required"` // "YYYY-MM-DD"
	NewStartTime *string `json:"new_start_time" validate:"omitempty"`
	NewEndTime   *string `json:"new_end_time" validate:"omitempty"`
	NewClassroom *string `json:"new_classroom" validate:"omitempty"`
	NewMode      *string `json:"new_mode" validate:"omitempty"`
}

// MoveClassSessionRequest: drag/drop kalender. raw_start_minutes = posisi
// mentah drop (boleh tidak rapi); server yang snap ke kelipatan granularity.
type MoveClassSessionRequest struct {
	NewDate         string  `json:"new_date" validate:"required"`
	RawStartMinutes int     `json:"raw_start_minutes" validate:"gte=0"`
	Granularity     *int    `json:"granularity" validate:"omitempty,gt=0"` // default 30
	NewEndTime      *string `json:"new_end_time" validate:"omitempty"`     // default: durasi dipertahankan
	NewClassroom    *string `json:"new_classroom" validate:"omitempty"`
}

// ListClassSessionQuery: filter list (semua opsional, AND-ed).
type ListClassSessionQuery struct {
	GroupID    *uuid.UUID
	SubjectID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *model.SessionStatus
	Type       *model.SessionType
	Mode       *constants.ClassMode
	Classrooms pq.StringArray // dari ?classrooms=ruang_1,aula
}

/* =========================================================
   2) RESPONSES
   ========================================================= */

type ClassSessionResponse struct {
	ClassSessionID uuid.UUID `json:"class_session_id"`

	ClassSessionGroupID    *uuid.UUID `json:"class_session_group_id,omitempty"`
	ClassSessionSubjectID  uuid.UUID  `json:"class_session_subject_id"`
	ClassSessionScheduleID *uuid.UUID `json:"class_session_schedule_id,omitempty"`

	ClassSessionClassroom string `json:"class_session_classroom"`
	ClassSessionDate      string `json:"class_session_date"`       // "YYYY-MM-DD"
	ClassSessionStartTime string `json:"class_session_start_time"` // "HH:MM"
	ClassSessionEndTime   string `json:"class_session_end_time"`   // "HH:MM"

	ClassSessionStatus string `json:"class_session_status"`
	ClassSessionType   string `json:"class_session_type"`
	ClassSessionMode   string `json:"class_session_mode"`

	ClassSessionPostponedToDate *string `json:"class_session_postponed_to_date,omitempty"`
	ClassSessionVersion         int     `json:"class_session_version"`

	// enrichment (diisi kalau query join-nya ada)
	ClassSessionGroupName   *string `json:"class_session_group_name,omitempty"`
	ClassSessionSubjectName *string `json:"class_session_subject_name,omitempty"`

	ClassSessionCreatedAt time.Time `json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time `json:"class_session_updated_at"`
}

func FromModel(m model.ClassSessionModel) ClassSessionResponse {
	resp := ClassSessionResponse{
		ClassSessionID:         m.ClassSessionID,
		ClassSessionGroupID:    m.ClassSessionGroupID,
		ClassSessionSubjectID:  m.ClassSessionSubjectID,
		ClassSessionScheduleID: m.ClassSessionScheduleID,
		ClassSessionClassroom:  string(m.ClassSessionClassroom),
		ClassSessionDate:       m.ClassSessionDate.Format(dateLayout),
		ClassSessionStartTime:  helper.FromMinutes(m.ClassSessionStartMinutes),
		ClassSessionEndTime:    helper.FromMinutes(m.ClassSessionEndMinutes),
		ClassSessionStatus:     string(m.ClassSessionStatus),
		ClassSessionType:       string(m.ClassSessionType),
		ClassSessionMode:       string(m.ClassSessionMode),
		ClassSessionVersion:    m.ClassSessionVersion,
		ClassSessionCreatedAt:  m.ClassSessionCreatedAt,
		ClassSessionUpdatedAt:  m.ClassSessionUpdatedAt,
	}
	if m.ClassSessionPostponedToDate != nil {
		d := m.ClassSessionPostponedToDate.Format(dateLayout)
		resp.ClassSessionPostponedToDate = &d
	}
	return resp
}

func FromModels(list []model.ClassSessionModel) []ClassSessionResponse {
	out := make([]ClassSessionResponse, 0, len(list))
	for i := range list {
		out = append(out, FromModel(list[i]))
	}
	return out
}
