// file: internals/features/academics/schedules/controller/class_schedule_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"

	d "kelasku_backend/internals/features/academics/schedules/dto"
	svc "kelasku_backend/internals/features/academics/schedules/service"
)

/* =========================
   Controller & Constructor
   ========================= */

type ClassScheduleController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Registry *svc.Registry
}

func New(db *gorm.DB, v *validator.Validate) *ClassScheduleController {
	return &ClassScheduleController{DB: db, Validate: v, Registry: svc.NewRegistry(db)}
}

/* =========================
   Helpers
   ========================= */

func parseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	idStr := strings.TrimSpace(c.Params(name))
	if idStr == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(idStr)
}

// writeServiceError memetakan error service registry → HTTP status.
func writeServiceError(c *fiber.Ctx, err error) error {
	var conflict *svc.ScheduleConflictError
	switch {
	case errors.As(err, &conflict):
		return helper.JsonError(c, http.StatusConflict, conflict.Error())
	case errors.Is(err, svc.ErrScheduleNotFound):
		return helper.JsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrGroupNotFound):
		return helper.JsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrGroupInactive):
		return helper.JsonError(c, http.StatusConflict, err.Error())
	default:
		return helper.JsonError(c, http.StatusInternalServerError, err.Error())
	}
}

/*
========================= Create =========================
*/

func (ctl *ClassScheduleController) Create(c *fiber.Ctx) error {
	// --- guard
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	// --- body
	var req d.CreateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ClassSchedule.Create] BodyParser error: %v", err)
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	// --- validate
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			log.Printf("[ClassSchedule.Create] Validation error: %v", err)
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}

	model, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := ctl.Registry.Create(c.UserContext(), &model); err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonCreated(c, "Schedule created", d.FromModel(model))
}

/* =========================
   Patch (Partial) — DTO Update pointer-based
   ========================= */

func (ctl *ClassScheduleController) Patch(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	existing, err := ctl.Registry.Get(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	var req d.UpdateClassScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}
	if ctl.Validate != nil {
		if err := ctl.Validate.Struct(req); err != nil {
			return helper.JsonError(c, http.StatusBadRequest, err.Error())
		}
	}
	if err := req.Apply(&existing); err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := ctl.Registry.Update(c.UserContext(), &existing); err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonUpdated(c, "Schedule updated", d.FromModel(existing))
}

/* =========================
   Soft Delete
   ========================= */

func (ctl *ClassScheduleController) Delete(c *fiber.Ctx) error {
	if !helperAuth.IsStaff(c) {
		return helper.JsonError(c, http.StatusForbidden, "Akses ditolak")
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, err.Error())
	}

	// Hapus definisi saja; sesi yang sudah digenerate tetap hidup.
	deleted, err := ctl.Registry.Delete(c.UserContext(), id)
	if err != nil {
		return writeServiceError(c, err)
	}

	return helper.JsonDeleted(c, "Schedule deleted", d.FromModel(deleted))
}

/* =========================
   List by group
   ========================= */

func (ctl *ClassScheduleController) ListByGroup(c *fiber.Ctx) error {
	groupID, err := uuid.Parse(strings.TrimSpace(c.Query("group_id")))
	if err != nil {
		return helper.JsonError(c, http.StatusBadRequest, "group_id is required")
	}

	list, err := ctl.Registry.ListByGroup(c.UserContext(), groupID)
	if err != nil {
		return writeServiceError(c, err)
	}
	return helper.JsonOK(c, "ok", d.FromModels(list))
}
