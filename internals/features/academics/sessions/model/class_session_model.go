// file: internals/features/academics/sessions/model/class_session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

// SessionStatus merepresentasikan enum session_status_enum di Postgres.
type SessionStatus string

const (
	SessionStatusScheduled  SessionStatus = "scheduled"
	SessionStatusInProgress SessionStatus = "in_progress"
	SessionStatusCompleted  SessionStatus = "completed"
	SessionStatusCanceled   SessionStatus = "canceled"
	SessionStatusPostponed  SessionStatus = "postponed"
)

var AllSessionStatuses = []SessionStatus{
	SessionStatusScheduled,
	SessionStatusInProgress,
	SessionStatusCompleted,
	SessionStatusCanceled,
	SessionStatusPostponed,
}

func (s SessionStatus) Valid() bool {
	for _, v := range AllSessionStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// SessionType merepresentasikan enum session_type_enum di Postgres.
type SessionType string

const (
	SessionTypeRegular    SessionType = "regular"    // hasil generate dari jadwal
	SessionTypeExtra      SessionType = "extra"      // tambahan manual milik grup
	SessionTypeScheduling SessionType = "scheduling" // ad-hoc, tanpa grup
)

var AllSessionTypes = []SessionType{
	SessionTypeRegular,
	SessionTypeExtra,
	SessionTypeScheduling,
}

func (t SessionType) Valid() bool {
	for _, v := range AllSessionTypes {
		if t == v {
			return true
		}
	}
	return false
}

/* =========================================
   Model: class_sessions (okurensi konkret)
========================================= */

// ClassSessionModel = satu pertemuan kelas bertanggal.
// Unique partial index (alive): (class_session_group_id, class_session_date,
// class_session_start_minutes) — backing idempotensi generator.
type ClassSessionModel struct {
	ClassSessionID uuid.UUID `gorm:"column:class_session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_session_id"`

	// null untuk sesi "scheduling" (ad-hoc, tanpa grup)
	ClassSessionGroupID   *uuid.UUID `gorm:"column:class_session_group_id;type:uuid;index" json:"class_session_group_id,omitempty"`
	ClassSessionSubjectID uuid.UUID  `gorm:"column:class_session_subject_id;type:uuid;not null" json:"class_session_subject_id"`
	// null untuk sesi manual (extra/scheduling)
	ClassSessionScheduleID *uuid.UUID `gorm:"column:class_session_schedule_id;type:uuid" json:"class_session_schedule_id,omitempty"`

	ClassSessionClassroom    constants.Classroom `gorm:"column:class_session_classroom;type:classroom_enum;not null" json:"class_session_classroom"`
	ClassSessionDate         time.Time           `gorm:"column:class_session_date;type:date;not null" json:"class_session_date"`
	ClassSessionStartMinutes int                 `gorm:"column:class_session_start_minutes;not null" json:"class_session_start_minutes"`
	ClassSessionEndMinutes   int                 `gorm:"column:class_session_end_minutes;not null" json:"class_session_end_minutes"`

	ClassSessionStatus SessionStatus       `gorm:"column:class_session_status;type:session_status_enum;not null;default:'scheduled'" json:"class_session_status"`
	ClassSessionType   SessionType         `gorm:"column:class_session_type;type:session_type_enum;not null;default:'regular'" json:"class_session_type"`
	ClassSessionMode   constants.ClassMode `gorm:"column:class_session_mode;type:class_mode_enum;not null;default:'in_person'" json:"class_session_mode"`

	// diisi hanya saat status=postponed
	ClassSessionPostponedToDate *time.Time `gorm:"column:class_session_postponed_to_date;type:date" json:"class_session_postponed_to_date,omitempty"`

	// snapshot jadwal asal saat generate (jejak slot mingguan aslinya)
	ClassSessionScheduleSnapshot datatypes.JSONMap `gorm:"column:class_session_schedule_snapshot;type:jsonb" json:"class_session_schedule_snapshot,omitempty"`

	// optimistic lock untuk transisi lifecycle
	ClassSessionVersion int `gorm:"column:class_session_version;not null;default:1" json:"class_session_version"`

	ClassSessionCreatedAt time.Time      `gorm:"column:class_session_created_at;type:timestamptz;not null;autoCreateTime" json:"class_session_created_at"`
	ClassSessionUpdatedAt time.Time      `gorm:"column:class_session_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_session_updated_at"`
	ClassSessionDeletedAt gorm.DeletedAt `gorm:"column:class_session_deleted_at;index" json:"class_session_deleted_at,omitempty"`
}

func (ClassSessionModel) TableName() string { return "class_sessions" }

// IsTerminal: completed/canceled tidak boleh dimutasi lagi.
func (m ClassSessionModel) IsTerminal() bool {
	return m.ClassSessionStatus == SessionStatusCompleted ||
		m.ClassSessionStatus == SessionStatusCanceled
}

// DurationMinutes durasi sesi dalam menit.
func (m ClassSessionModel) DurationMinutes() int {
	return m.ClassSessionEndMinutes - m.ClassSessionStartMinutes
}
