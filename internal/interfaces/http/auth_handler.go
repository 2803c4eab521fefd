package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/auth"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
	"github.com/jhoicas/Marketplace-api/pkg/validator"
)

// CookieConfig cookie de sesión que acompaña al token.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

// AuthHandler maneja registro, login y sesión.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	v      *validator.Validator
	cookie CookieConfig
	log    *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, v *validator.Validator, cookie CookieConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, v: v, cookie: cookie, log: log}
}

// Register godoc
// @Summary      Registrar consumidor u owner de proveedor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, first_name, is_supplier_owner"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register/ [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if fields := h.v.Struct(in); fields != nil {
		return validationFailed(c, fields)
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// RegisterMember godoc
// @Summary      Alta de manager o representante (solo owner)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMemberRequest  true  "datos del delegado"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      405   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register_supplier_member/ [post]
func (h *AuthHandler) RegisterMember(c *fiber.Ctx) error {
	var in dto.RegisterMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if fields := h.v.Struct(in); fields != nil {
		return validationFailed(c, fields)
	}
	if in.IsSupplierManager == in.IsSupplierRepr {
		return validationFailed(c, map[string]string{
			"is_supplier_manager": "indique exactamente uno: is_supplier_manager o is_supplier_repr",
		})
	}
	user, err := h.uc.RegisterMember(c.UserContext(), GetActor(c), in)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusMethodNotAllowed).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo el owner puede registrar delegados"})
		}
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login/ [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if fields := h.v.Struct(in); fields != nil {
		return validationFailed(c, fields)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if auth.IsCredentialError(err) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
		}
		return writeError(c, h.log, err)
	}
	if h.cookie.Name != "" {
		c.Cookie(&fiber.Cookie{
			Name:     h.cookie.Name,
			Value:    out.AccessToken,
			Path:     "/",
			Expires:  time.Now().Add(h.cookie.MaxAge),
			HTTPOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión (revoca el token y borra la cookie)
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.MessageResponse
// @Router       /api/auth/logout/ [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.UserContext(), GetClaims(c)); err != nil {
		return writeError(c, h.log, err)
	}
	if h.cookie.Name != "" {
		c.ClearCookie(h.cookie.Name)
	}
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {object}  dto.UserResponse
// @Router       /api/auth/me/ [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(auth.ToUserResponse(GetActor(c)))
}

// Team godoc
// @Summary      Delegados del proveedor del usuario
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200   {array}   dto.UserResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/team/ [get]
func (h *AuthHandler) Team(c *fiber.Ctx) error {
	list, err := h.uc.Team(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}
