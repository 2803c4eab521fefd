package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var (
	_ repository.ChatRepository    = (*ChatRepo)(nil)
	_ repository.MessageRepository = (*MessageRepo)(nil)
)

// ChatRepo implementación del puerto ChatRepository sobre PostgreSQL (usable con pool o tx).
type ChatRepo struct {
	q Querier
}

// NewChatRepository construye el adaptador. Pasar pool o tx (Querier).
func NewChatRepository(q Querier) *ChatRepo {
	return &ChatRepo{q: q}
}

// CreateIfAbsent inserta el chat; si el par ya tiene uno (UNIQUE) devuelve el existente.
func (r *ChatRepo) CreateIfAbsent(ctx context.Context, c *entity.Chat) (*entity.Chat, bool, error) {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO chats (id, supplier_id, consumer_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (supplier_id, consumer_id) DO NOTHING`,
		c.ID, c.SupplierID, c.ConsumerID, c.CreatedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("insert chat: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		out := *c
		return &out, true, nil
	}
	existing, err := r.GetByPair(ctx, c.SupplierID, c.ConsumerID)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("chat %s/%s: conflicto sin fila", c.SupplierID, c.ConsumerID)
	}
	return existing, false, nil
}

// GetByID obtiene un chat por ID.
func (r *ChatRepo) GetByID(ctx context.Context, id string) (*entity.Chat, error) {
	if !validIDs(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT id, supplier_id, consumer_id, created_at FROM chats WHERE id = $1`, id)
}

// GetByPair obtiene el chat del par.
func (r *ChatRepo) GetByPair(ctx context.Context, supplierID, consumerID string) (*entity.Chat, error) {
	if !validIDs(supplierID, consumerID) {
		return nil, nil
	}
	return r.getOne(ctx, `
		SELECT id, supplier_id, consumer_id, created_at
		FROM chats WHERE supplier_id = $1 AND consumer_id = $2`, supplierID, consumerID)
}

// DeleteByPair elimina el chat del par; los mensajes caen por ON DELETE CASCADE.
func (r *ChatRepo) DeleteByPair(ctx context.Context, supplierID, consumerID string) (bool, error) {
	if !validIDs(supplierID, consumerID) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM chats WHERE supplier_id = $1 AND consumer_id = $2`, supplierID, consumerID)
	if err != nil {
		return false, fmt.Errorf("delete chat: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List filtra por igualdad sobre los campos no nil.
func (r *ChatRepo) List(ctx context.Context, f repository.ChatFilter) ([]*entity.Chat, error) {
	var w where
	w.addUUID("supplier_id", f.SupplierID)
	w.addUUID("consumer_id", f.ConsumerID)
	if w.none {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, supplier_id, consumer_id, created_at FROM chats`+w.sql()+` ORDER BY created_at`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()
	var list []*entity.Chat
	for rows.Next() {
		var c entity.Chat
		if err := rows.Scan(&c.ID, &c.SupplierID, &c.ConsumerID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chat: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *ChatRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Chat, error) {
	var c entity.Chat
	err := r.q.QueryRow(ctx, query, args...).Scan(&c.ID, &c.SupplierID, &c.ConsumerID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get chat: %w", err)
	}
	return &c, nil
}

// MessageRepo implementación del puerto MessageRepository sobre PostgreSQL.
type MessageRepo struct {
	q Querier
}

// NewMessageRepository construye el adaptador de mensajes.
func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

// Create persiste un mensaje.
func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO messages (id, chat_id, sender_id, author_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.ChatID, m.SenderID, m.AuthorID, m.Content, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// ListByChat mensajes del chat en orden de creación.
func (r *MessageRepo) ListByChat(ctx context.Context, chatID string) ([]*entity.Message, error) {
	if !validIDs(chatID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, chat_id, sender_id, author_id, content, created_at
		FROM messages WHERE chat_id = $1 ORDER BY created_at, id`, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Message
	for rows.Next() {
		var m entity.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.AuthorID, &m.Content, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
