// file: internals/helpers/auth/token.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"kelasku_backend/internals/constants"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ParseBearerToken membaca header Authorization, verifikasi HS256,
// dan mengembalikan claims-nya.
func ParseBearerToken(c *fiber.Ctx, secret string) (jwt.MapClaims, error) {
	authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if authz == "" || !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return nil, ErrMissingToken
	}
	raw := strings.TrimSpace(authz[len("bearer "):])

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

/* =========================
   Locals accessors (diisi AuthMiddleware)
========================= */

func RoleFromLocals(c *fiber.Ctx) string {
	if v, ok := c.Locals("role").(string); ok {
		return v
	}
	return ""
}

func UserIDFromLocals(c *fiber.Ctx) uuid.UUID {
	if v, ok := c.Locals("user_id").(string); ok {
		if id, err := uuid.Parse(v); err == nil {
			return id
		}
	}
	return uuid.Nil
}

func IsOwner(c *fiber.Ctx) bool   { return RoleFromLocals(c) == constants.RoleOwner }
func IsAdmin(c *fiber.Ctx) bool   { return RoleFromLocals(c) == constants.RoleAdmin }
func IsTeacher(c *fiber.Ctx) bool { return RoleFromLocals(c) == constants.RoleTeacher }

// IsStaff: teacher/admin/owner — boleh mengelola jadwal & sesi.
func IsStaff(c *fiber.Ctx) bool {
	role := RoleFromLocals(c)
	for _, r := range constants.StaffRoles {
		if role == r {
			return true
		}
	}
	return false
}
