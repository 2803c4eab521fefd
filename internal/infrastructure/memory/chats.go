package memory

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var (
	_ repository.ChatRepository    = (*ChatRepo)(nil)
	_ repository.MessageRepository = (*MessageRepo)(nil)
)

// ChatRepo chats en memoria; un chat por par.
type ChatRepo struct {
	acc accessor
}

// CreateIfAbsent inserta el chat salvo que el par ya tenga uno.
func (r *ChatRepo) CreateIfAbsent(_ context.Context, c *entity.Chat) (*entity.Chat, bool, error) {
	var (
		out     entity.Chat
		created bool
	)
	err := r.acc.with(func(st *state) error {
		for _, existing := range st.chats {
			if existing.SupplierID == c.SupplierID && existing.ConsumerID == c.ConsumerID {
				out = existing
				return nil
			}
		}
		st.chats[c.ID] = *c
		out, created = *c, true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &out, created, nil
}

// GetByID obtiene un chat por ID.
func (r *ChatRepo) GetByID(_ context.Context, id string) (*entity.Chat, error) {
	var out *entity.Chat
	err := r.acc.with(func(st *state) error {
		if c, ok := st.chats[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// GetByPair obtiene el chat del par.
func (r *ChatRepo) GetByPair(_ context.Context, supplierID, consumerID string) (*entity.Chat, error) {
	var out *entity.Chat
	err := r.acc.with(func(st *state) error {
		for _, c := range st.chats {
			if c.SupplierID == supplierID && c.ConsumerID == consumerID {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

// DeleteByPair elimina el chat del par y sus mensajes.
func (r *ChatRepo) DeleteByPair(_ context.Context, supplierID, consumerID string) (bool, error) {
	var ok bool
	err := r.acc.with(func(st *state) error {
		for id, c := range st.chats {
			if c.SupplierID != supplierID || c.ConsumerID != consumerID {
				continue
			}
			delete(st.chats, id)
			kept := st.messages[:0]
			for _, m := range st.messages {
				if m.ChatID != id {
					kept = append(kept, m)
				}
			}
			st.messages = kept
			ok = true
		}
		return nil
	})
	return ok, err
}

// List filtra por igualdad sobre los campos no nil.
func (r *ChatRepo) List(_ context.Context, f repository.ChatFilter) ([]*entity.Chat, error) {
	var out []*entity.Chat
	err := r.acc.with(func(st *state) error {
		for _, c := range st.chats {
			if strEq(f.SupplierID, c.SupplierID) && strEq(f.ConsumerID, c.ConsumerID) {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sortByCreated(out, func(c *entity.Chat) int64 { return c.CreatedAt.UnixNano() })
	return out, err
}

// MessageRepo mensajes en memoria, en orden de inserción.
type MessageRepo struct {
	acc accessor
}

// Create agrega el mensaje; el chat debe existir (FK).
func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	return r.acc.with(func(st *state) error {
		if _, ok := st.chats[m.ChatID]; !ok {
			return errChatMissing
		}
		st.messages = append(st.messages, *m)
		return nil
	})
}

// ListByChat mensajes del chat en orden de creación.
func (r *MessageRepo) ListByChat(_ context.Context, chatID string) ([]*entity.Message, error) {
	var out []*entity.Message
	err := r.acc.with(func(st *state) error {
		for _, m := range st.messages {
			if m.ChatID == chatID {
				m := m
				out = append(out, &m)
			}
		}
		return nil
	})
	return out, err
}
