// file: internals/features/academics/sessions/route/admin_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessctl "kelasku_backend/internals/features/academics/sessions/controller"
	"kelasku_backend/internals/middlewares"
)

// ClassSessionAdminRoutes mendaftarkan route mutasi sesi (staff only).
func ClassSessionAdminRoutes(admin fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := sessctl.New(db, v)

	grp := admin.Group("/class-sessions")
	grp.Post("/generate", middlewares.GenerateRateLimiter(), ctl.Generate)
	grp.Post("/", ctl.Create)
	grp.Post("/:id/start", ctl.Start)
	grp.Post("/:id/complete", ctl.Complete)
	grp.Post("/:id/cancel", ctl.Cancel)
	grp.Post("/:id/postpone", ctl.Postpone)
	grp.Post("/:id/move", ctl.Move)
	grp.Delete("/:id", ctl.Delete)
}
