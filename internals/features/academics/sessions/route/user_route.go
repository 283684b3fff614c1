// file: internals/features/academics/sessions/route/user_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessctl "kelasku_backend/internals/features/academics/sessions/controller"
)

// ClassSessionUserRoutes: read-only (list + grid kalender), tanpa guard role.
func ClassSessionUserRoutes(user fiber.Router, db *gorm.DB, v *validator.Validate) {
	ctl := sessctl.New(db, v)

	grp := user.Group("/class-sessions")
	grp.Get("/grid", ctl.Grid)
	grp.Get("/", ctl.List)
}
