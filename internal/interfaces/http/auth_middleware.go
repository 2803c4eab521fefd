package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/pkg/jwt"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

// Locals keys para el usuario autenticado y sus claims.
const (
	LocalUser   = "user"
	LocalClaims = "claims"
)

// AuthMiddleware acepta el token por "Authorization: Bearer <token>" o por la cookie
// cookieName, lo valida con el caso de uso (firma, revocación, usuario vigente) y deja
// usuario y claims en c.Locals.
func AuthMiddleware(uc *auth.AuthUseCase, cookieName string, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get("Authorization"))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		if token == "" && cookieName != "" {
			token = c.Cookies(cookieName)
		}
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token requerido"})
		}
		user, claims, err := uc.Authenticate(c.UserContext(), token)
		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
			}
			return writeError(c, log, err)
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalClaims, claims)
		return c.Next()
	}
}

// bearerToken: header vacío -> ("", true); header con otro esquema -> ("", false).
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", true
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// GetActor devuelve el usuario autenticado (después del middleware de auth).
func GetActor(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetClaims devuelve los claims del token de la petición.
func GetClaims(c *fiber.Ctx) *jwt.Claims {
	cl, _ := c.Locals(LocalClaims).(*jwt.Claims)
	return cl
}

// GetUserID devuelve el ID del usuario autenticado o "".
func GetUserID(c *fiber.Ctx) string {
	if u := GetActor(c); u != nil {
		return u.ID
	}
	return ""
}
