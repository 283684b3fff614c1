// file: internals/route/index.go
package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	schedroute "kelasku_backend/internals/features/academics/schedules/route"
	sessroute "kelasku_backend/internals/features/academics/sessions/route"
	authmw "kelasku_backend/internals/middlewares/auth"
)

// SetupRoutes mendaftarkan seluruh route aplikasi.
// /api/a = mutasi (login + staff), /api/u = read-only publik.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	validate := validator.New()

	api := app.Group("/api")

	admin := api.Group("/a", authmw.AuthMiddleware(), authmw.StaffOnly())
	schedroute.ClassScheduleAdminRoutes(admin, db, validate)
	sessroute.ClassSessionAdminRoutes(admin, db, validate)

	user := api.Group("/u")
	sessroute.ClassSessionUserRoutes(user, db, validate)
}
