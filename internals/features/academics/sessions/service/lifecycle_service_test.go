// file: internals/features/academics/sessions/service/lifecycle_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
	model "kelasku_backend/internals/features/academics/sessions/model"
)

func sampleSession(status model.SessionStatus) model.ClassSessionModel {
	gid := uuid.New()
	return model.ClassSessionModel{
		ClassSessionID:           uuid.New(),
		ClassSessionGroupID:      &gid,
		ClassSessionSubjectID:    uuid.New(),
		ClassSessionClassroom:    constants.ClassroomRuang1,
		ClassSessionDate:         time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
		ClassSessionStartMinutes: 9 * 60,
		ClassSessionEndMinutes:   11 * 60,
		ClassSessionStatus:       status,
		ClassSessionType:         model.SessionTypeRegular,
		ClassSessionMode:         constants.ModeInPerson,
		ClassSessionVersion:      1,
	}
}

func TestGuardAction(t *testing.T) {
	allActions := []string{ActionStart, ActionComplete, ActionCancel, ActionPostpone, ActionDelete, ActionMove}

	// aksi yang sah per status asal
	legal := map[model.SessionStatus][]string{
		model.SessionStatusScheduled:  {ActionStart, ActionCancel, ActionPostpone, ActionDelete, ActionMove},
		model.SessionStatusInProgress: {ActionComplete},
		model.SessionStatusCompleted:  {},
		model.SessionStatusCanceled:   {},
		model.SessionStatusPostponed:  {},
	}

	for status, allowed := range legal {
		for _, action := range allActions {
			wantOK := false
			for _, a := range allowed {
				if a == action {
					wantOK = true
				}
			}
			t.Run(string(status)+"/"+action, func(t *testing.T) {
				err := guardAction(sampleSession(status), action)
				if wantOK && err != nil {
					t.Fatalf("expected %s from %s to be legal, got %v", action, status, err)
				}
				if !wantOK {
					ite, ok := err.(*InvalidTransitionError)
					if !ok {
						t.Fatalf("expected InvalidTransitionError, got %v", err)
					}
					if ite.From != status || ite.Action != action {
						t.Fatalf("error fields = (%s, %s), want (%s, %s)", ite.From, ite.Action, status, action)
					}
				}
			})
		}
	}
}

func TestGuardActionUnknownAction(t *testing.T) {
	if err := guardAction(sampleSession(model.SessionStatusScheduled), "archive"); err == nil {
		t.Fatal("expected unknown action to be rejected")
	}
}

func TestApplyPostpone(t *testing.T) {
	newDate := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC) // jam diabaikan

	t.Run("date only keeps time and room", func(t *testing.T) {
		m := sampleSession(model.SessionStatusScheduled)
		origID := m.ClassSessionID

		if err := applyPostpone(&m, PostponePatch{NewDate: newDate}); err != nil {
			t.Fatalf("applyPostpone: %v", err)
		}
		if m.ClassSessionID != origID {
			t.Fatal("postpone must not change session id")
		}
		if m.ClassSessionStatus != model.SessionStatusPostponed {
			t.Fatalf("status = %s, want postponed", m.ClassSessionStatus)
		}
		wantDate := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		if !m.ClassSessionDate.Equal(wantDate) {
			t.Fatalf("date = %v, want %v", m.ClassSessionDate, wantDate)
		}
		if m.ClassSessionPostponedToDate == nil || !m.ClassSessionPostponedToDate.Equal(wantDate) {
			t.Fatalf("postponed_to_date = %v, want %v", m.ClassSessionPostponedToDate, wantDate)
		}
		if m.ClassSessionStartMinutes != 9*60 || m.ClassSessionEndMinutes != 11*60 {
			t.Fatal("omitted time fields must keep prior values")
		}
		if m.ClassSessionClassroom != constants.ClassroomRuang1 {
			t.Fatal("omitted classroom must keep prior value")
		}
	})

	t.Run("partial overrides", func(t *testing.T) {
		m := sampleSession(model.SessionStatusScheduled)
		start := 8 * 60 // end lama 11:00 dipertahankan, merged range tetap sah
		room := constants.ClassroomOnline1
		mode := constants.ModeOnline

		err := applyPostpone(&m, PostponePatch{
			NewDate:      newDate,
			StartMinutes: &start,
			Classroom:    &room,
			Mode:         &mode,
		})
		if err != nil {
			t.Fatalf("applyPostpone: %v", err)
		}
		if m.ClassSessionStartMinutes != 8*60 || m.ClassSessionEndMinutes != 11*60 {
			t.Fatalf("merged range = [%d, %d), want [480, 660)", m.ClassSessionStartMinutes, m.ClassSessionEndMinutes)
		}
		if m.ClassSessionClassroom != room || m.ClassSessionMode != mode {
			t.Fatal("classroom/mode overrides not applied")
		}
	})

	t.Run("merged start after end rejected", func(t *testing.T) {
		m := sampleSession(model.SessionStatusScheduled)
		start := 12 * 60 // end lama 11:00 → invalid
		if err := applyPostpone(&m, PostponePatch{NewDate: newDate, StartMinutes: &start}); err == nil {
			t.Fatal("expected merged start >= end to be rejected")
		}
		if m.ClassSessionStatus != model.SessionStatusScheduled {
			t.Fatal("failed postpone must not mutate status")
		}
	})
}
