package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/access"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

// RequireAction corta la petición si el rol del actor no tiene permitida la acción.
// Debe usarse DESPUÉS de AuthMiddleware. deniedStatus permite responder 405 en rutas que
// no existen para ese rol (alta de delegados) en lugar de 403.
func RequireAction(action access.Action, deniedStatus int, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		_, err := access.Require(GetActor(c), action)
		if err == nil {
			return c.Next()
		}
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(deniedStatus).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "operación no permitida para el rol del usuario",
			})
		}
		return writeError(c, log, err)
	}
}

// RequestLogger registra método, ruta, status, latencia y usuario de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
