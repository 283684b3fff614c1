// file: internals/features/academics/sessions/service/generate_sessions_service_test.go
package service

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
	groupmodel "kelasku_backend/internals/features/academics/groups/model"
	schedmodel "kelasku_backend/internals/features/academics/schedules/model"
	model "kelasku_backend/internals/features/academics/sessions/model"
)

func sampleGroup() groupmodel.GroupModel {
	return groupmodel.GroupModel{
		GroupID:        uuid.New(),
		GroupName:      "Tahsin Pagi",
		GroupSubjectID: uuid.New(),
		GroupIsActive:  true,
	}
}

func sampleSchedule(groupID uuid.UUID, day schedmodel.DayOfWeek, start, end int) schedmodel.ClassScheduleModel {
	return schedmodel.ClassScheduleModel{
		ClassScheduleID:           uuid.New(),
		ClassScheduleGroupID:      groupID,
		ClassScheduleDayOfWeek:    day,
		ClassScheduleStartMinutes: start,
		ClassScheduleEndMinutes:   end,
		ClassScheduleClassroom:    constants.ClassroomRuang1,
		ClassScheduleMode:         constants.ModeInPerson,
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandCandidatesTwoMondays(t *testing.T) {
	grp := sampleGroup()
	sched := sampleSchedule(grp.GroupID, schedmodel.DayMonday, 9*60, 11*60)

	// 1 Jan 2024 = Senin; rentang s.d. Minggu 14 Jan memuat tepat 2 Senin.
	got := expandCandidates(grp, []schedmodel.ClassScheduleModel{sched},
		date(2024, 1, 1), date(2024, 1, 14), nil)

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	wantDates := []time.Time{date(2024, 1, 1), date(2024, 1, 8)}
	for i, s := range got {
		if !s.ClassSessionDate.Equal(wantDates[i]) {
			t.Fatalf("got[%d].date = %v, want %v", i, s.ClassSessionDate, wantDates[i])
		}
		if s.ClassSessionDate.Weekday() != time.Monday {
			t.Fatalf("got[%d] falls on %s, want Monday", i, s.ClassSessionDate.Weekday())
		}
		if s.ClassSessionStartMinutes != 9*60 || s.ClassSessionEndMinutes != 11*60 {
			t.Fatalf("got[%d] time = [%d, %d), want [540, 660)", i, s.ClassSessionStartMinutes, s.ClassSessionEndMinutes)
		}
		if s.ClassSessionStatus != model.SessionStatusScheduled || s.ClassSessionType != model.SessionTypeRegular {
			t.Fatalf("got[%d] status/type = %s/%s", i, s.ClassSessionStatus, s.ClassSessionType)
		}
		if s.ClassSessionGroupID == nil || *s.ClassSessionGroupID != grp.GroupID {
			t.Fatalf("got[%d] group mismatch", i)
		}
		if s.ClassSessionSubjectID != grp.GroupSubjectID {
			t.Fatalf("got[%d] subject must come from the group", i)
		}
		if s.ClassSessionScheduleID == nil || *s.ClassSessionScheduleID != sched.ClassScheduleID {
			t.Fatalf("got[%d] schedule backlink missing", i)
		}
	}
}

func TestExpandCandidatesSnapshot(t *testing.T) {
	grp := sampleGroup()
	sched := sampleSchedule(grp.GroupID, schedmodel.DayFriday, 19*60+30, 21*60)

	got := expandCandidates(grp, []schedmodel.ClassScheduleModel{sched},
		date(2024, 1, 5), date(2024, 1, 5), nil)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	snap := got[0].ClassSessionScheduleSnapshot
	if snap["day_of_week"] != "friday" {
		t.Fatalf("snapshot day = %v", snap["day_of_week"])
	}
	if snap["start_time"] != "19:30" || snap["end_time"] != "21:00" {
		t.Fatalf("snapshot times = %v–%v", snap["start_time"], snap["end_time"])
	}
	if snap["schedule_id"] != sched.ClassScheduleID.String() {
		t.Fatalf("snapshot schedule_id = %v", snap["schedule_id"])
	}
}

func TestExpandCandidatesOrdering(t *testing.T) {
	grp := sampleGroup()
	schedules := []schedmodel.ClassScheduleModel{
		sampleSchedule(grp.GroupID, schedmodel.DayMonday, 15*60, 17*60),
		sampleSchedule(grp.GroupID, schedmodel.DayMonday, 9*60, 11*60),
		sampleSchedule(grp.GroupID, schedmodel.DayWednesday, 8*60, 10*60),
	}

	got := expandCandidates(grp, schedules, date(2024, 1, 1), date(2024, 1, 7), nil)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// tanggal ascending, lalu start ascending di hari yang sama
	prev := got[0]
	for _, cur := range got[1:] {
		if cur.ClassSessionDate.Before(prev.ClassSessionDate) {
			t.Fatal("dates out of order")
		}
		if cur.ClassSessionDate.Equal(prev.ClassSessionDate) && cur.ClassSessionStartMinutes < prev.ClassSessionStartMinutes {
			t.Fatal("same-day sessions out of order by start")
		}
		prev = cur
	}
}

func TestExpandCandidatesIdempotent(t *testing.T) {
	grp := sampleGroup()
	sched := sampleSchedule(grp.GroupID, schedmodel.DayMonday, 9*60, 11*60)
	from, to := date(2024, 1, 1), date(2024, 1, 14)

	first := expandCandidates(grp, []schedmodel.ClassScheduleModel{sched}, from, to, nil)

	existing := make(map[sessionKey]struct{}, len(first))
	for _, s := range first {
		existing[keyOf(s.ClassSessionDate, s.ClassSessionStartMinutes)] = struct{}{}
	}

	// generate ulang rentang sama → tidak ada kandidat baru, tanpa error
	second := expandCandidates(grp, []schedmodel.ClassScheduleModel{sched}, from, to, existing)
	if len(second) != 0 {
		t.Fatalf("re-expansion produced %d duplicates", len(second))
	}

	// rentang diperpanjang → hanya tanggal baru yang muncul
	extended := expandCandidates(grp, []schedmodel.ClassScheduleModel{sched}, from, date(2024, 1, 21), existing)
	if len(extended) != 1 {
		t.Fatalf("extension len = %d, want 1", len(extended))
	}
	if !extended[0].ClassSessionDate.Equal(date(2024, 1, 15)) {
		t.Fatalf("extension date = %v, want 2024-01-15", extended[0].ClassSessionDate)
	}
}

func TestExpandCandidatesEmptySchedules(t *testing.T) {
	got := expandCandidates(sampleGroup(), nil, date(2024, 1, 1), date(2024, 1, 31), nil)
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name    string
		from    time.Time
		to      time.Time
		wantErr error
	}{
		{"single day", date(2024, 1, 1), date(2024, 1, 1), nil},
		{"full year", date(2024, 1, 1), date(2024, 12, 31), nil},
		{"inverted", date(2024, 1, 2), date(2024, 1, 1), ErrDateRangeInvalid},
		{"too long", date(2024, 1, 1), date(2025, 6, 1), ErrDateRangeTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validateRange(tt.from, tt.to); err != tt.wantErr {
				t.Fatalf("validateRange() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
