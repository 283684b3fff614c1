package service

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
	model "kelasku_backend/internals/features/academics/schedules/model"
)

func mkSchedule(day model.DayOfWeek, start, end int, room constants.Classroom) model.ClassScheduleModel {
	return model.ClassScheduleModel{
		ClassScheduleID:           uuid.New(),
		ClassScheduleGroupID:      uuid.New(),
		ClassScheduleDayOfWeek:    day,
		ClassScheduleStartMinutes: start,
		ClassScheduleEndMinutes:   end,
		ClassScheduleClassroom:    room,
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd int
		want                           bool
	}{
		{name: "identical", aStart: 540, aEnd: 660, bStart: 540, bEnd: 660, want: true},
		{name: "partial overlap", aStart: 600, aEnd: 720, bStart: 540, bEnd: 660, want: true},
		{name: "containment", aStart: 560, aEnd: 580, bStart: 540, bEnd: 660, want: true},
		{name: "touching edges is legal", aStart: 660, aEnd: 720, bStart: 540, bEnd: 660, want: false},
		{name: "disjoint", aStart: 720, aEnd: 780, bStart: 540, bEnd: 660, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("overlaps(%d,%d,%d,%d) = %v, want %v", tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}
		})
	}
}

func TestFindOverlap(t *testing.T) {
	// Senin 09:00–11:00 ruang_1 (skenario spek: kandidat Senin 10:00–12:00 harus bentrok)
	monday := mkSchedule(model.DayMonday, 540, 660, constants.ClassroomRuang1)
	tuesday := mkSchedule(model.DayTuesday, 540, 660, constants.ClassroomRuang1)
	siblings := []model.ClassScheduleModel{monday, tuesday}

	t.Run("same day overlapping regardless of classroom", func(t *testing.T) {
		// ruang beda tetap bentrok: grup tidak bisa di dua tempat sekaligus
		hit := findOverlap(siblings, uuid.Nil, model.DayMonday, 600, 720)
		if hit == nil {
			t.Fatal("expected overlap, got nil")
		}
		if hit.ClassScheduleID != monday.ClassScheduleID {
			t.Errorf("conflicting id = %s, want %s", hit.ClassScheduleID, monday.ClassScheduleID)
		}
	})

	t.Run("different day no overlap", func(t *testing.T) {
		if hit := findOverlap(siblings, uuid.Nil, model.DayWednesday, 540, 660); hit != nil {
			t.Errorf("expected nil, got %s", hit.ClassScheduleID)
		}
	})

	t.Run("back to back no overlap", func(t *testing.T) {
		if hit := findOverlap(siblings, uuid.Nil, model.DayMonday, 660, 780); hit != nil {
			t.Errorf("expected nil, got %s", hit.ClassScheduleID)
		}
	})

	t.Run("update excludes itself", func(t *testing.T) {
		if hit := findOverlap(siblings, monday.ClassScheduleID, model.DayMonday, 540, 660); hit != nil {
			t.Errorf("expected nil (self excluded), got %s", hit.ClassScheduleID)
		}
	})

	t.Run("update still conflicts with other sibling", func(t *testing.T) {
		if hit := findOverlap(siblings, monday.ClassScheduleID, model.DayTuesday, 600, 700); hit == nil {
			t.Error("expected overlap with tuesday sibling")
		}
	})
}

func TestScheduleConflictErrorMessage(t *testing.T) {
	id := uuid.New()
	err := &ScheduleConflictError{
		ConflictingID: id,
		DayOfWeek:     model.DayMonday,
		StartMinutes:  540,
		EndMinutes:    660,
	}
	msg := err.Error()
	for _, want := range []string{id.String(), "monday", "09:00", "11:00"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}
