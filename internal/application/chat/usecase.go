package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/access"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

// Metrics contador de mensajes enviados.
type Metrics interface {
	MessageSent()
}

type nopMetrics struct{}

func (nopMetrics) MessageSent() {}

// UseCase listado de chats y compuerta de mensajería.
type UseCase struct {
	chats    repository.ChatRepository
	messages repository.MessageRepository
	metrics  Metrics
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewUseCase(chats repository.ChatRepository, messages repository.MessageRepository, metrics Metrics, log *logger.Logger) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{chats: chats, messages: messages, metrics: metrics, log: log}
}

// ListChats devuelve los chats del consumidor, o los del proveedor del equipo del actor.
func (uc *UseCase) ListChats(ctx context.Context, actor *entity.User) ([]dto.ChatResponse, error) {
	role, err := access.Require(actor, access.ActionChat)
	if err != nil {
		return nil, err
	}
	var filter repository.ChatFilter
	if role == entity.RoleConsumer {
		filter.ConsumerID = &actor.ID
	} else {
		supplierID, err := actor.TeamSupplierID()
		if err != nil {
			return nil, err
		}
		filter.SupplierID = &supplierID
	}
	list, err := uc.chats.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChatResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toChatResponse(c))
	}
	return out, nil
}

// ListChatMessages devuelve los mensajes del chat si el actor participa en él.
func (uc *UseCase) ListChatMessages(ctx context.Context, actor *entity.User, chatID string) ([]dto.MessageItem, error) {
	c, _, err := uc.authorize(ctx, actor, chatID)
	if err != nil {
		return nil, err
	}
	list, err := uc.messages.ListByChat(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageItem, 0, len(list))
	for _, m := range list {
		out = append(out, toMessageItem(m))
	}
	return out, nil
}

// SendMessage registra un mensaje. SenderID queda como el principal del actor en el chat.
// El chat y la participación se verifican antes que el contenido.
func (uc *UseCase) SendMessage(ctx context.Context, actor *entity.User, chatID, content string) (*dto.MessageItem, error) {
	c, principal, err := uc.authorize(ctx, actor, chatID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidInput
	}
	msg := &entity.Message{
		ID:        uuid.New().String(),
		ChatID:    c.ID,
		SenderID:  principal,
		AuthorID:  actor.ID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	uc.metrics.MessageSent()
	uc.log.Debug().Str("chat_id", c.ID).Str("author_id", actor.ID).Msg("mensaje enviado")
	out := toMessageItem(msg)
	return &out, nil
}

// authorize carga el chat y resuelve el principal del actor dentro de él.
// Chat inexistente: ErrNotFound. Actor ajeno al chat: ErrForbidden.
func (uc *UseCase) authorize(ctx context.Context, actor *entity.User, chatID string) (*entity.Chat, string, error) {
	role, err := access.Require(actor, access.ActionChat)
	if err != nil {
		return nil, "", err
	}
	if chatID == "" {
		return nil, "", domain.ErrNotFound
	}
	c, err := uc.chats.GetByID(ctx, chatID)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", domain.ErrNotFound
	}
	principal := actor.ID
	if role != entity.RoleConsumer {
		if principal, err = actor.TeamSupplierID(); err != nil {
			return nil, "", err
		}
	}
	if !c.HasParticipant(principal) {
		return nil, "", domain.ErrForbidden
	}
	return c, principal, nil
}

func toChatResponse(c *entity.Chat) dto.ChatResponse {
	return dto.ChatResponse{
		ID:         c.ID,
		SupplierID: c.SupplierID,
		ConsumerID: c.ConsumerID,
		CreatedAt:  c.CreatedAt,
	}
}

// ToChatResponse expuesto para el caso de uso de links (respuesta de aprobación).
func ToChatResponse(c *entity.Chat) *dto.ChatResponse {
	if c == nil {
		return nil
	}
	out := toChatResponse(c)
	return &out
}

func toMessageItem(m *entity.Message) dto.MessageItem {
	return dto.MessageItem{
		ID:        m.ID,
		ChatID:    m.ChatID,
		SenderID:  m.SenderID,
		AuthorID:  m.AuthorID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
