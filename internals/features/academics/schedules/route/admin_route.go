// file: internals/features/academics/schedules/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedctl "kelasku_backend/internals/features/academics/schedules/controller"
)

// ClassScheduleAdminRoutes mendaftarkan route CRUD jadwal mingguan (staff only).
func ClassScheduleAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := schedctl.New(db, v)

	grp := admin.Group("/class-schedules")
	grp.Post("/", ctl.Create)
	grp.Patch("/:id", ctl.Patch)
	grp.Delete("/:id", ctl.Delete)
	grp.Get("/", ctl.ListByGroup)
}
