package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// CreateChat aprovisiona el chat del par (supplier, consumer). Se invoca solo desde la
// aprobación de un link, con el repo atado a la misma transacción. Si el par ya tiene
// chat lo devuelve sin crear otro.
func CreateChat(ctx context.Context, chats repository.ChatRepository, supplierID, consumerID string) (*entity.Chat, error) {
	if supplierID == "" || consumerID == "" {
		return nil, domain.ErrInvalidInput
	}
	c, _, err := chats.CreateIfAbsent(ctx, &entity.Chat{
		ID:         uuid.New().String(),
		SupplierID: supplierID,
		ConsumerID: consumerID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("crear chat: %w", err)
	}
	return c, nil
}

// DeleteChat elimina el chat del par (y sus mensajes). Se invoca desde el rechazo de
// un link dentro de la misma transacción. Devuelve false si el par no tenía chat.
func DeleteChat(ctx context.Context, chats repository.ChatRepository, supplierID, consumerID string) (bool, error) {
	deleted, err := chats.DeleteByPair(ctx, supplierID, consumerID)
	if err != nil {
		return false, fmt.Errorf("eliminar chat: %w", err)
	}
	return deleted, nil
}
