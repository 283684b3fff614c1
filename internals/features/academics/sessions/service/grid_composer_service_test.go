// file: internals/features/academics/sessions/service/grid_composer_service_test.go
package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
	schedmodel "kelasku_backend/internals/features/academics/schedules/model"
)

func item(day string, room constants.Classroom, start, end int) GridItem {
	return GridItem{
		ID:           uuid.New(),
		Day:          day,
		Classroom:    room,
		StartMinutes: start,
		EndMinutes:   end,
	}
}

func TestComposeBuckets(t *testing.T) {
	a := item("monday", constants.ClassroomRuang1, 9*60, 11*60)
	b := item("monday", constants.ClassroomRuang1, 7*60, 8*60)
	c := item("monday", constants.ClassroomRuang2, 9*60, 11*60)
	d := item("tuesday", constants.ClassroomRuang1, 9*60, 11*60)

	got := Compose([]GridItem{a, b, c, d}, nil)

	if len(got) != 3 {
		t.Fatalf("bucket count = %d, want 3", len(got))
	}
	mon1 := got[BucketKey{Day: "monday", Classroom: constants.ClassroomRuang1}]
	if len(mon1) != 2 {
		t.Fatalf("monday/ruang_1 len = %d, want 2", len(mon1))
	}
	// terurut start ascending
	if mon1[0].ID != b.ID || mon1[1].ID != a.ID {
		t.Fatal("bucket not ordered by start minutes")
	}
	if len(got[BucketKey{Day: "tuesday", Classroom: constants.ClassroomRuang1}]) != 1 {
		t.Fatal("tuesday bucket missing")
	}
}

func TestItemsFromSchedules(t *testing.T) {
	gid := uuid.New()
	schedules := []schedmodel.ClassScheduleModel{
		sampleSchedule(gid, schedmodel.DayMonday, 9*60, 11*60),
		sampleSchedule(gid, schedmodel.DayFriday, 19*60, 21*60),
	}

	items := ItemsFromSchedules(schedules)
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Day != "monday" || items[1].Day != "friday" {
		t.Fatalf("days = %s, %s", items[0].Day, items[1].Day)
	}
	if items[0].Status != "" {
		t.Fatal("schedule items must not carry a session status")
	}

	got := Compose(items, nil)
	if len(got) != 2 {
		t.Fatalf("bucket count = %d, want 2", len(got))
	}
	if len(got[BucketKey{Day: "monday", Classroom: constants.ClassroomRuang1}]) != 1 {
		t.Fatal("monday schedule bucket missing")
	}
}

func TestComposeClassroomFilter(t *testing.T) {
	a := item("monday", constants.ClassroomRuang1, 9*60, 11*60)
	b := item("monday", constants.ClassroomOnline1, 9*60, 11*60)

	room := constants.ClassroomOnline1
	got := Compose([]GridItem{a, b}, &room)

	if len(got) != 1 {
		t.Fatalf("bucket count = %d, want 1", len(got))
	}
	only := got[BucketKey{Day: "monday", Classroom: constants.ClassroomOnline1}]
	if len(only) != 1 || only[0].ID != b.ID {
		t.Fatal("filter kept the wrong item")
	}
}

func TestProposeMove(t *testing.T) {
	occupied := item("2024-01-08", constants.ClassroomRuang1, 9*60, 11*60)
	moving := item("2024-01-08", constants.ClassroomRuang1, 13*60, 15*60)
	items := []GridItem{occupied, moving}

	t.Run("free slot accepted", func(t *testing.T) {
		key, err := ProposeMove(items, moving.ID, "2024-01-08", 11*60, 13*60, constants.ClassroomRuang1)
		if err != nil {
			t.Fatalf("ProposeMove: %v", err)
		}
		want := BucketKey{Day: "2024-01-08", Classroom: constants.ClassroomRuang1}
		if key != want {
			t.Fatalf("key = %+v, want %+v", key, want)
		}
	})

	t.Run("back-to-back is legal", func(t *testing.T) {
		// tepat menempel occupied [540, 660): mulai 660 sah (half-open)
		if _, err := ProposeMove(items, moving.ID, "2024-01-08", 11*60, 12*60, constants.ClassroomRuang1); err != nil {
			t.Fatalf("ProposeMove: %v", err)
		}
	})

	t.Run("overlap rejected with conflicting id", func(t *testing.T) {
		_, err := ProposeMove(items, moving.ID, "2024-01-08", 10*60, 12*60, constants.ClassroomRuang1)
		var pce *PlacementConflictError
		if !errors.As(err, &pce) {
			t.Fatalf("expected PlacementConflictError, got %v", err)
		}
		if pce.ConflictingID != occupied.ID {
			t.Fatalf("conflicting id = %s, want %s", pce.ConflictingID, occupied.ID)
		}
	})

	t.Run("other classroom same time accepted", func(t *testing.T) {
		if _, err := ProposeMove(items, moving.ID, "2024-01-08", 10*60, 12*60, constants.ClassroomRuang2); err != nil {
			t.Fatalf("ProposeMove: %v", err)
		}
	})

	t.Run("moving item ignores itself", func(t *testing.T) {
		// geser 1 jam, masih beririsan dgn posisi lamanya sendiri → tetap sah
		if _, err := ProposeMove(items, moving.ID, "2024-01-08", 14*60, 16*60, constants.ClassroomRuang1); err != nil {
			t.Fatalf("ProposeMove: %v", err)
		}
	})
}
