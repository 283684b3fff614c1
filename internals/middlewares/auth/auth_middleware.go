// file: internals/middlewares/auth/auth_middleware.go
package auth

import (
	"github.com/gofiber/fiber/v2"

	"kelasku_backend/internals/configs"
	"kelasku_backend/internals/constants"
	helper "kelasku_backend/internals/helpers"
	helperAuth "kelasku_backend/internals/helpers/auth"
)

// AuthMiddleware: wajib Bearer token; isi Locals role & user_id.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := helperAuth.ParseBearerToken(c, configs.JWTSecret)
		if err != nil {
			return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
		}

		if v, ok := claims["role"].(string); ok {
			c.Locals("role", v)
		}
		if v, ok := claims["sub"].(string); ok {
			c.Locals("user_id", v)
		}
		return c.Next()
	}
}

// StaffOnly: guard tambahan setelah AuthMiddleware.
func StaffOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !helperAuth.IsStaff(c) {
			return helper.JsonError(c, fiber.StatusForbidden, constants.RoleErrorTeacher("jadwal & sesi"))
		}
		return c.Next()
	}
}
