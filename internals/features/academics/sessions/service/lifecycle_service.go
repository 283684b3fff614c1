// file: internals/features/academics/sessions/service/lifecycle_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kelasku_backend/internals/constants"
	model "kelasku_backend/internals/features/academics/sessions/model"
)

/* =========================
   State machine (pure guard)
========================= */

const (
	ActionStart    = "start"
	ActionComplete = "complete"
	ActionCancel   = "cancel"
	ActionPostpone = "postpone"
	ActionDelete   = "delete"
	ActionMove     = "move"
)

// requiredStatus: status asal yang sah per action.
// scheduled → start|cancel|postpone|delete|move; in_progress → complete;
// completed/canceled/postponed → terminal, tidak ada aksi.
var requiredStatus = map[string]model.SessionStatus{
	ActionStart:    model.SessionStatusScheduled,
	ActionComplete: model.SessionStatusInProgress,
	ActionCancel:   model.SessionStatusScheduled,
	ActionPostpone: model.SessionStatusScheduled,
	ActionDelete:   model.SessionStatusScheduled,
	ActionMove:     model.SessionStatusScheduled,
}

func guardAction(m model.ClassSessionModel, action string) error {
	want, ok := requiredStatus[action]
	if !ok || m.ClassSessionStatus != want {
		return &InvalidTransitionError{From: m.ClassSessionStatus, Action: action}
	}
	return nil
}

/* =========================
   Postpone patch (pure merge)
========================= */

// PostponePatch: field nil → pertahankan nilai lama (relokasi in-place,
// id & history sesi tetap).
type PostponePatch struct {
	NewDate      time.Time
	StartMinutes *int
	EndMinutes   *int
	Classroom    *constants.Classroom
	Mode         *constants.ClassMode
}

func applyPostpone(m *model.ClassSessionModel, p PostponePatch) error {
	start := m.ClassSessionStartMinutes
	end := m.ClassSessionEndMinutes
	if p.StartMinutes != nil {
		start = *p.StartMinutes
	}
	if p.EndMinutes != nil {
		end = *p.EndMinutes
	}
	if start >= end {
		return errors.New("start_time must be before end_time")
	}

	newDate := dateOnly(p.NewDate)
	m.ClassSessionStatus = model.SessionStatusPostponed
	m.ClassSessionPostponedToDate = &newDate
	m.ClassSessionDate = newDate
	m.ClassSessionStartMinutes = start
	m.ClassSessionEndMinutes = end
	if p.Classroom != nil {
		m.ClassSessionClassroom = *p.Classroom
	}
	if p.Mode != nil {
		m.ClassSessionMode = *p.Mode
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

/* =========================
   Lifecycle service
========================= */

type Lifecycle struct{ DB *gorm.DB }

func NewLifecycle(db *gorm.DB) *Lifecycle { return &Lifecycle{DB: db} }

func (l *Lifecycle) Get(ctx context.Context, id uuid.UUID) (model.ClassSessionModel, error) {
	var m model.ClassSessionModel
	if err := l.DB.WithContext(ctx).
		Where("class_session_id = ?", id).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return m, ErrSessionNotFound
		}
		return m, err
	}
	return m, nil
}

// guardedUpdate: UPDATE ... WHERE version = n (optimistic lock).
// RowsAffected 0 → kalah race → ErrStaleVersion, state tidak berubah.
func (l *Lifecycle) guardedUpdate(ctx context.Context, m model.ClassSessionModel, updates map[string]any) (model.ClassSessionModel, error) {
	prev := m.ClassSessionVersion
	updates["class_session_version"] = prev + 1

	res := l.DB.WithContext(ctx).
		Model(&model.ClassSessionModel{}).
		Where("class_session_id = ? AND class_session_version = ?", m.ClassSessionID, prev).
		Updates(updates)
	if res.Error != nil {
		return m, res.Error
	}
	if res.RowsAffected == 0 {
		return m, ErrStaleVersion
	}
	return l.Get(ctx, m.ClassSessionID)
}

// Start: scheduled → in_progress.
func (l *Lifecycle) Start(ctx context.Context, id uuid.UUID) (model.ClassSessionModel, error) {
	m, err := l.Get(ctx, id)
	if err != nil {
		return m, err
	}
	if err := guardAction(m, ActionStart); err != nil {
		return m, err
	}
	return l.guardedUpdate(ctx, m, map[string]any{
		"class_session_status": model.SessionStatusInProgress,
	})
}

// Complete: in_progress → completed (terminal).
func (l *Lifecycle) Complete(ctx context.Context, id uuid.UUID) (model.ClassSessionModel, error) {
	m, err := l.Get(ctx, id)
	if err != nil {
		return m, err
	}
	if err := guardAction(m, ActionComplete); err != nil {
		return m, err
	}
	return l.guardedUpdate(ctx, m, map[string]any{
		"class_session_status": model.SessionStatusCompleted,
	})
}

// Cancel: scheduled → canceled (terminal). Kelas yang sudah jalan/selesai
// tidak bisa dibatalkan retroaktif.
func (l *Lifecycle) Cancel(ctx context.Context, id uuid.UUID) (model.ClassSessionModel, error) {
	m, err := l.Get(ctx, id)
	if err != nil {
		return m, err
	}
	if err := guardAction(m, ActionCancel); err != nil {
		return m, err
	}
	return l.guardedUpdate(ctx, m, map[string]any{
		"class_session_status": model.SessionStatusCanceled,
	})
}

// Postpone: scheduled → postponed. Satu mutasi atomik — BUKAN cancel+recreate.
func (l *Lifecycle) Postpone(ctx context.Context, id uuid.UUID, p PostponePatch) (model.ClassSessionModel, error) {
	m, err := l.Get(ctx, id)
	if err != nil {
		return m, err
	}
	if err := guardAction(m, ActionPostpone); err != nil {
		return m, err
	}
	if err := applyPostpone(&m, p); err != nil {
		return m, err
	}
	return l.guardedUpdate(ctx, m, map[string]any{
		"class_session_status":            m.ClassSessionStatus,
		"class_session_postponed_to_date": m.ClassSessionPostponedToDate,
		"class_session_date":              m.ClassSessionDate,
		"class_session_start_minutes":     m.ClassSessionStartMinutes,
		"class_session_end_minutes":       m.ClassSessionEndMinutes,
		"class_session_classroom":         m.ClassSessionClassroom,
		"class_session_mode":              m.ClassSessionMode,
	})
}

// Delete: hanya saat scheduled (soft delete). Bukan transisi, tapi guard sama.
func (l *Lifecycle) Delete(ctx context.Context, id uuid.UUID) (model.ClassSessionModel, error) {
	m, err := l.Get(ctx, id)
	if err != nil {
		return m, err
	}
	if err := guardAction(m, ActionDelete); err != nil {
		return m, err
	}

	res := l.DB.WithContext(ctx).
		Where("class_session_id = ? AND class_session_version = ?", m.ClassSessionID, m.ClassSessionVersion).
		Delete(&model.ClassSessionModel{})
	if res.Error != nil {
		return m, res.Error
	}
	if res.RowsAffected == 0 {
		return m, ErrStaleVersion
	}
	return m, nil
}

// Move: relokasi drag/drop sesi scheduled ke slot lain.
// Start sudah di-snap oleh caller (helper.Snap); durasi dipertahankan
// kalau endMinutes tidak dikirim.
func (l *Lifecycle) Move(ctx context.Context, id uuid.UUID, newDate time.Time, startMinutes int, endMinutes *int, newClassroom *constants.Classroom) (model.ClassSessionModel, error) {
	m, err := l.Get(ctx, id)
	if err != nil {
		return m, err
	}
	if err := guardAction(m, ActionMove); err != nil {
		return m, err
	}

	end := startMinutes + m.DurationMinutes()
	if endMinutes != nil {
		end = *endMinutes
	}
	if startMinutes >= end {
		return m, errors.New("start_time must be before end_time")
	}
	room := m.ClassSessionClassroom
	if newClassroom != nil {
		room = *newClassroom
	}
	day := dateOnly(newDate)

	// overlap check vs penghuni bucket tujuan (tanggal+ruang), exclude diri.
	var siblings []model.ClassSessionModel
	if err := l.DB.WithContext(ctx).
		Where("class_session_date = ? AND class_session_classroom = ? AND class_session_id <> ?", day, room, id).
		Where("class_session_status NOT IN ?", []model.SessionStatus{model.SessionStatusCanceled, model.SessionStatusPostponed}).
		Order("class_session_start_minutes").
		Find(&siblings).Error; err != nil {
		return m, err
	}
	items := ItemsFromSessions(siblings)
	if _, err := ProposeMove(items, id, DayKeyFromDate(day), startMinutes, end, room); err != nil {
		return m, err
	}

	return l.guardedUpdate(ctx, m, map[string]any{
		"class_session_date":          day,
		"class_session_start_minutes": startMinutes,
		"class_session_end_minutes":   end,
		"class_session_classroom":     room,
	})
}
