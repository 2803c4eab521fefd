package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// ChatFilter criterios de igualdad; los campos nil no participan del filtro.
type ChatFilter struct {
	SupplierID *string
	ConsumerID *string
}

// ChatRepository puerto de persistencia para Chat. Un chat por par (supplier, consumer).
type ChatRepository interface {
	// CreateIfAbsent inserta el chat salvo que el par ya tenga uno; siempre devuelve
	// el chat vigente del par y si fue creado en esta llamada.
	CreateIfAbsent(ctx context.Context, chat *entity.Chat) (*entity.Chat, bool, error)
	GetByID(ctx context.Context, id string) (*entity.Chat, error)
	GetByPair(ctx context.Context, supplierID, consumerID string) (*entity.Chat, error)
	// DeleteByPair elimina el chat del par junto con sus mensajes. false si no existía.
	DeleteByPair(ctx context.Context, supplierID, consumerID string) (bool, error)
	List(ctx context.Context, filter ChatFilter) ([]*entity.Chat, error)
}

// MessageRepository puerto de persistencia para Message (solo alta y lectura).
type MessageRepository interface {
	Create(ctx context.Context, msg *entity.Message) error
	// ListByChat devuelve los mensajes en orden de creación.
	ListByChat(ctx context.Context, chatID string) ([]*entity.Message, error)
}
