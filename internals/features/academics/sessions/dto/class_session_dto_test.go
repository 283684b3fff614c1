// file: internals/features/academics/sessions/dto/class_session_dto_test.go
package dto

import (
	"testing"

	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
	model "kelasku_backend/internals/features/academics/sessions/model"
)

func baseCreateRequest() CreateClassSessionRequest {
	gid := uuid.New()
	return CreateClassSessionRequest{
		ClassSessionGroupID:   &gid,
		ClassSessionSubjectID: uuid.New(),
		ClassSessionType:      "extra",
		ClassSessionDate:      "2024-03-04",
		ClassSessionStartTime: "09:00",
		ClassSessionEndTime:   "11:00",
		ClassSessionClassroom: "ruang_1",
	}
}

func TestCreateClassSessionToModel(t *testing.T) {
	t.Run("extra session", func(t *testing.T) {
		req := baseCreateRequest()
		m, err := req.ToModel()
		if err != nil {
			t.Fatalf("ToModel: %v", err)
		}
		if m.ClassSessionType != model.SessionTypeExtra {
			t.Fatalf("type = %s", m.ClassSessionType)
		}
		if m.ClassSessionStartMinutes != 540 || m.ClassSessionEndMinutes != 660 {
			t.Fatalf("minutes = [%d, %d)", m.ClassSessionStartMinutes, m.ClassSessionEndMinutes)
		}
		if m.ClassSessionStatus != model.SessionStatusScheduled {
			t.Fatalf("status = %s, want scheduled", m.ClassSessionStatus)
		}
		if m.ClassSessionMode != constants.ModeInPerson {
			t.Fatalf("mode = %s, want in_person default for physical room", m.ClassSessionMode)
		}
	})

	t.Run("extra without group rejected", func(t *testing.T) {
		req := baseCreateRequest()
		req.ClassSessionGroupID = nil
		if _, err := req.ToModel(); err != ErrGroupRequired {
			t.Fatalf("err = %v, want ErrGroupRequired", err)
		}
	})

	t.Run("scheduling with group rejected", func(t *testing.T) {
		req := baseCreateRequest()
		req.ClassSessionType = "scheduling"
		if _, err := req.ToModel(); err != ErrGroupNotAllowed {
			t.Fatalf("err = %v, want ErrGroupNotAllowed", err)
		}
	})

	t.Run("scheduling without group ok", func(t *testing.T) {
		req := baseCreateRequest()
		req.ClassSessionType = "scheduling"
		req.ClassSessionGroupID = nil
		m, err := req.ToModel()
		if err != nil {
			t.Fatalf("ToModel: %v", err)
		}
		if m.ClassSessionGroupID != nil {
			t.Fatal("scheduling session must not carry a group")
		}
	})

	t.Run("regular rejected here", func(t *testing.T) {
		req := baseCreateRequest()
		req.ClassSessionType = "regular"
		if _, err := req.ToModel(); err != ErrInvalidType {
			t.Fatalf("err = %v, want ErrInvalidType", err)
		}
	})

	t.Run("virtual room defaults mode online", func(t *testing.T) {
		req := baseCreateRequest()
		req.ClassSessionClassroom = "online_1"
		m, err := req.ToModel()
		if err != nil {
			t.Fatalf("ToModel: %v", err)
		}
		if m.ClassSessionMode != constants.ModeOnline {
			t.Fatalf("mode = %s, want online", m.ClassSessionMode)
		}
	})

	t.Run("inverted time range rejected", func(t *testing.T) {
		req := baseCreateRequest()
		req.ClassSessionStartTime = "11:00"
		req.ClassSessionEndTime = "09:00"
		if _, err := req.ToModel(); err != ErrInvalidTimeRange {
			t.Fatalf("err = %v, want ErrInvalidTimeRange", err)
		}
	})

	t.Run("bad date rejected", func(t *testing.T) {
		req := baseCreateRequest()
		req.ClassSessionDate = "04-03-2024"
		if _, err := req.ToModel(); err != ErrInvalidDate {
			t.Fatalf("err = %v, want ErrInvalidDate", err)
		}
	})
}
