package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Marketplace-api/internal/application/chat"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
	"github.com/jhoicas/Marketplace-api/pkg/validator"
)

// ChatHandler chats y mensajes.
type ChatHandler struct {
	uc  *chat.UseCase
	v   *validator.Validator
	log *logger.Logger
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *chat.UseCase, v *validator.Validator, log *logger.Logger) *ChatHandler {
	return &ChatHandler{uc: uc, v: v, log: log}
}

// List godoc
// @Summary      Chats del usuario
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ChatResponse
// @Router       /api/chat/ [get]
func (h *ChatHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.ListChats(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Messages godoc
// @Summary      Mensajes de un chat (solo participantes)
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        chat_id  path  string  true  "Chat"
// @Success      200  {array}   dto.MessageItem
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/{chat_id}/ [get]
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	list, err := h.uc.ListChatMessages(c.UserContext(), GetActor(c), c.Params("chat_id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(list)
}

// Send godoc
// @Summary      Enviar mensaje (query content o cuerpo JSON)
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        chat_id  path   string                  true   "Chat"
// @Param        content  query  string                  false  "Contenido"
// @Param        body     body   dto.SendMessageRequest  false  "Contenido"
// @Success      201  {object}  dto.MessageItem
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/{chat_id}/ [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	in := dto.SendMessageRequest{Content: queryValue(c, "content")}
	if in.Content == "" && len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if fields := h.v.Struct(in); fields != nil {
		return validationFailed(c, fields)
	}
	out, err := h.uc.SendMessage(c.UserContext(), GetActor(c), c.Params("chat_id"), in.Content)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
