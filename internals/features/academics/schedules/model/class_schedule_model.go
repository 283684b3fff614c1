// file: internals/features/academics/schedules/model/class_schedule_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
)

/* =========================
   Enums (selaras dgn DB)
========================= */

// DayOfWeek merepresentasikan enum day_of_week_enum di Postgres.
// Hari operasional: Senin–Sabtu (tidak ada kelas hari Minggu).
type DayOfWeek string

const (
	DayMonday    DayOfWeek = "monday"
	DayTuesday   DayOfWeek = "tuesday"
	DayWednesday DayOfWeek = "wednesday"
	DayThursday  DayOfWeek = "thursday"
	DayFriday    DayOfWeek = "friday"
	DaySaturday  DayOfWeek = "saturday"
)

var AllDaysOfWeek = []DayOfWeek{
	DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday,
}

func (d DayOfWeek) Valid() bool {
	for _, v := range AllDaysOfWeek {
		if d == v {
			return true
		}
	}
	return false
}

// Weekday konversi ke time.Weekday.
func (d DayOfWeek) Weekday() time.Weekday {
	switch d {
	case DayMonday:
		return time.Monday
	case DayTuesday:
		return time.Tuesday
	case DayWednesday:
		return time.Wednesday
	case DayThursday:
		return time.Thursday
	case DayFriday:
		return time.Friday
	case DaySaturday:
		return time.Saturday
	}
	return time.Sunday // invalid sentinel
}

// DayOfWeekFromWeekday kebalikan Weekday(); Minggu → ok=false.
func DayOfWeekFromWeekday(w time.Weekday) (DayOfWeek, bool) {
	switch w {
	case time.Monday:
		return DayMonday, true
	case time.Tuesday:
		return DayTuesday, true
	case time.Wednesday:
		return DayWednesday, true
	case time.Thursday:
		return DayThursday, true
	case time.Friday:
		return DayFriday, true
	case time.Saturday:
		return DaySaturday, true
	}
	return "", false
}

/* =========================================
   Model: class_schedules (pola mingguan)
========================================= */

// ClassScheduleModel = satu blok waktu mingguan milik satu grup.
// Jam disimpan sebagai menit-sejak-00:00 supaya cek overlap integer-exact.
type ClassScheduleModel struct {
	ClassScheduleID uuid.UUID `gorm:"column:class_schedule_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_schedule_id"`

	ClassScheduleGroupID uuid.UUID `gorm:"column:class_schedule_group_id;type:uuid;not null;index" json:"class_schedule_group_id"`

	ClassScheduleDayOfWeek    DayOfWeek           `gorm:"column:class_schedule_day_of_week;type:day_of_week_enum;not null" json:"class_schedule_day_of_week"`
	ClassScheduleStartMinutes int                 `gorm:"column:class_schedule_start_minutes;not null" json:"class_schedule_start_minutes"`
	ClassScheduleEndMinutes   int                 `gorm:"column:class_schedule_end_minutes;not null" json:"class_schedule_end_minutes"`
	ClassScheduleClassroom    constants.Classroom `gorm:"column:class_schedule_classroom;type:classroom_enum;not null" json:"class_schedule_classroom"`
	ClassScheduleMode         constants.ClassMode `gorm:"column:class_schedule_mode;type:class_mode_enum;not null;default:'in_person'" json:"class_schedule_mode"`

	ClassScheduleCreatedAt time.Time      `gorm:"column:class_schedule_created_at;type:timestamptz;not null;autoCreateTime" json:"class_schedule_created_at"`
	ClassScheduleUpdatedAt time.Time      `gorm:"column:class_schedule_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_schedule_updated_at"`
	ClassScheduleDeletedAt gorm.DeletedAt `gorm:"column:class_schedule_deleted_at;index" json:"class_schedule_deleted_at,omitempty"`
}

func (ClassScheduleModel) TableName() string { return "class_schedules" }

// DurationMinutes durasi blok dalam menit (invariant: > 0).
func (m ClassScheduleModel) DurationMinutes() int {
	return m.ClassScheduleEndMinutes - m.ClassScheduleStartMinutes
}
