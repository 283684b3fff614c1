// file: internals/features/academics/sessions/controller/class_session_lifecycle_controller.go
package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"kelasku_backend/internals/constants"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"

	d "kelasku_backend/internals/features/academics/sessions/dto"
	svc "kelasku_backend/internals/features/academics/sessions/service"
)

/* =========================================================
   Lifecycle endpoints (start/complete/cancel/postpone/
   delete/move) — semua staff only, 409 kalau guard menolak.
   ========================================================= */

func (ctl *ClassSessionController) Start(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	m, err := ctl.Lifecycle.Start(c.UserContext(), id)
	if err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonUpdated(c, "Session started", d.FromModel(m))
}

func (ctl *ClassSessionController) Complete(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	m, err := ctl.Lifecycle.Complete(c.UserContext(), id)
	if err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonUpdated(c, "Session completed", d.FromModel(m))
}

func (ctl *ClassSessionController) Cancel(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	m, err := ctl.Lifecycle.Cancel(c.UserContext(), id)
	if err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonUpdated(c, "Session canceled", d.FromModel(m))
}

func (ctl *ClassSessionController) Postpone(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var req d.PostponeClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}

	patch, err := buildPostponePatch(req)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	m, err := ctl.Lifecycle.Postpone(c.UserContext(), id, patch)
	if err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonUpdated(c, "Session postponed", d.FromModel(m))
}

func buildPostponePatch(req d.PostponeClassSessionRequest) (svc.PostponePatch, error) {
	var patch svc.PostponePatch

	newDate, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.NewDate), time.UTC)
	if err != nil {
		return patch, d.ErrInvalidDate
	}
	patch.NewDate = newDate

	if req.NewStartTime != nil {
		v, err := helper.ToMinutes(*req.NewStartTime)
		if err != nil {
			return patch, d.ErrInvalidStartTime
		}
		patch.StartMinutes = &v
	}
	if req.NewEndTime != nil {
		v, err := helper.ToMinutes(*req.NewEndTime)
		if err != nil {
			return patch, d.ErrInvalidEndTime
		}
		patch.EndMinutes = &v
	}
	if req.NewClassroom != nil {
		room := constants.Classroom(strings.ToLower(strings.TrimSpace(*req.NewClassroom)))
		if !room.Valid() {
			return patch, d.ErrInvalidClassroom
		}
		patch.Classroom = &room
	}
	if req.NewMode != nil {
		mode := constants.ClassMode(strings.ToLower(strings.TrimSpace(*req.NewMode)))
		if !mode.Valid() {
			return patch, d.ErrInvalidMode
		}
		patch.Mode = &mode
	}
	return patch, nil
}

func (ctl *ClassSessionController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	m, err := ctl.Lifecycle.Delete(c.UserContext(), id)
	if err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonDeleted(c, "Session deleted", d.FromModel(m))
}

// Move: drag/drop kalender — posisi drop mentah di-snap server side.
func (ctl *ClassSessionController) Move(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	var req d.MoveClassSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}

	newDate, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(req.NewDate), time.UTC)
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, d.ErrInvalidDate.Error())
	}
	if wd := newDate.Weekday(); wd == time.Sunday {
		return helper.JsonError(c, http.StatusBadRequest, "sessions cannot be moved to a Sunday")
	}

	granularity := helper.DefaultSnapStep
	if req.Granularity != nil {
		granularity = *req.Granularity
	}
	start := helper.Snap(req.RawStartMinutes, granularity)
	if start < 0 || start >= helper.MinutesPerDay {
		return helper.JsonError(c, http.StatusBadRequest, "snapped start falls outside the day")
	}

	var end *int
	if req.NewEndTime != nil {
		v, err := helper.ToMinutes(*req.NewEndTime)
		if err != nil {
			return helper.JsonError(c, http.StatusBadRequest, d.ErrInvalidEndTime.Error())
		}
		end = &v
	}

	var room *constants.Classroom
	if req.NewClassroom != nil {
		r := constants.Classroom(strings.ToLower(strings.TrimSpace(*req.NewClassroom)))
		if !r.Valid() {
			return helper.JsonError(c, http.StatusBadRequest, d.ErrInvalidClassroom.Error())
		}
		room = &r
	}

	m, err := ctl.Lifecycle.Move(c.UserContext(), id, newDate, start, end, room)
	if err != nil {
		return writeSessionError(c, err)
	}
	return helper.JsonUpdated(c, "Session moved", d.FromModel(m))
}
