package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/link"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

// LinkHandler solicitudes y vínculos proveedor-consumidor.
type LinkHandler struct {
	uc  *link.UseCase
	log *logger.Logger
}

// NewLinkHandler construye el handler.
func NewLinkHandler(uc *link.UseCase, log *logger.Logger) *LinkHandler {
	return &LinkHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Links del usuario según su rol
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Param        approved  query  bool  false  "true (por defecto) o false"
// @Success      200  {array}   dto.LinkResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/links/ [get]
func (h *LinkHandler) List(c *fiber.Ctx) error {
	approved := true
	if raw := c.Query("approved"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return validationFailed(c, map[string]string{"approved": "debe ser true o false"})
		}
		approved = v
	}
	list, err := h.uc.ListLinks(c.UserContext(), GetActor(c), approved)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Suppliers godoc
// @Summary      Proveedores con link aprobado (consumidor)
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LinkResponse
// @Router       /api/links/suppliers/ [get]
func (h *LinkHandler) Suppliers(c *fiber.Ctx) error {
	return h.forConsumer(c, true)
}

// Sent godoc
// @Summary      Solicitudes pendientes enviadas (consumidor)
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LinkResponse
// @Router       /api/links/sent/ [get]
func (h *LinkHandler) Sent(c *fiber.Ctx) error {
	return h.forConsumer(c, false)
}

// Consumers godoc
// @Summary      Consumidores con link aprobado (owner o manager)
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LinkResponse
// @Router       /api/links/consumers/ [get]
func (h *LinkHandler) Consumers(c *fiber.Ctx) error {
	return h.forSupplier(c, true)
}

// Received godoc
// @Summary      Solicitudes pendientes recibidas (owner o manager)
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.LinkResponse
// @Router       /api/links/received/ [get]
func (h *LinkHandler) Received(c *fiber.Ctx) error {
	return h.forSupplier(c, false)
}

// SendRequest godoc
// @Summary      Solicitar vínculo con un proveedor
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  true  "Owner del proveedor"
// @Success      201  {object}  dto.LinkResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/links/send-request/ [post]
func (h *LinkHandler) SendRequest(c *fiber.Ctx) error {
	supplierID := queryValue(c, "supplier_id")
	if supplierID == "" {
		return validationFailed(c, map[string]string{"supplier_id": "es obligatorio"})
	}
	out, err := h.uc.SendRequest(c.UserContext(), GetActor(c), supplierID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ApproveRequest godoc
// @Summary      Aprobar solicitud (crea el chat)
// @Tags         links
// @Security     Bearer
// @Produce      json
// @Param        consumer_id  query  string  true  "Consumidor"
// @Success      200  {object}  dto.ChatResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/links/approve-request/ [put]
func (h *LinkHandler) ApproveRequest(c *fiber.Ctx) error {
	consumerID := queryValue(c, "consumer_id")
	if consumerID == "" {
		return validationFailed(c, map[string]string{"consumer_id": "es obligatorio"})
	}
	out, err := h.uc.ApproveRequest(c.UserContext(), GetActor(c), consumerID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// RejectRequest godoc
// @Summary      Rechazar o deshacer un vínculo (borra link y chat)
// @Tags         links
// @Security     Bearer
// @Param        consumer_id  query  string  true  "Consumidor"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/links/reject-request/ [delete]
func (h *LinkHandler) RejectRequest(c *fiber.Ctx) error {
	consumerID := queryValue(c, "consumer_id")
	if consumerID == "" {
		return validationFailed(c, map[string]string{"consumer_id": "es obligatorio"})
	}
	if err := h.uc.RejectRequest(c.UserContext(), GetActor(c), consumerID); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *LinkHandler) forConsumer(c *fiber.Ctx, approved bool) error {
	list, err := h.uc.ListForConsumer(c.UserContext(), GetActor(c), approved)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

func (h *LinkHandler) forSupplier(c *fiber.Ctx, approved bool) error {
	list, err := h.uc.ListForSupplier(c.UserContext(), GetActor(c), approved)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

