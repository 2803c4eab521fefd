// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con DB_DRIVER=memory (desarrollo local) y en los tests de casos de uso.
// Respeta las mismas restricciones que el esquema PostgreSQL: email único,
// link único por par, chat único por par y borrado en cascada de mensajes.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Marketplace-api/internal/application/link"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ link.TxRunner = (*Store)(nil)

type pair struct{ supplierID, consumerID string }

type state struct {
	users    map[string]entity.User
	links    map[pair]entity.Link
	chats    map[string]entity.Chat
	messages []entity.Message
	products map[string]entity.Product
}

func newState() *state {
	return &state{
		users:    map[string]entity.User{},
		links:    map[pair]entity.Link{},
		chats:    map[string]entity.Chat{},
		products: map[string]entity.Product{},
	}
}

// clone copia superficial suficiente: las entidades se guardan por valor.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.links {
		c.links[k] = v
	}
	for k, v := range s.chats {
		c.chats[k] = v
	}
	c.messages = append([]entity.Message(nil), s.messages...)
	for k, v := range s.products {
		c.products[k] = v
	}
	return c
}

// accessor da acceso exclusivo al estado: el Store toma su mutex, una tx ya lo tiene.
type accessor interface {
	with(fn func(st *state) error) error
}

// Store raíz del almacenamiento en memoria.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) with(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

type txAccessor struct{ st *state }

func (t txAccessor) with(fn func(st *state) error) error { return fn(t.st) }

// RunLinkTx ejecuta fn sobre una copia del estado y la publica solo si fn no falla.
// El mutex se mantiene durante toda la tx: las transacciones quedan serializadas.
func (s *Store) RunLinkTx(ctx context.Context, fn func(
	links repository.LinkRepository,
	chats repository.ChatRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	work := s.st.clone()
	acc := txAccessor{st: work}
	if err := fn(&LinkRepo{acc: acc}, &ChatRepo{acc: acc}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{acc: s} }

// Links devuelve el repositorio de links.
func (s *Store) Links() *LinkRepo { return &LinkRepo{acc: s} }

// Chats devuelve el repositorio de chats.
func (s *Store) Chats() *ChatRepo { return &ChatRepo{acc: s} }

// Messages devuelve el repositorio de mensajes.
func (s *Store) Messages() *MessageRepo { return &MessageRepo{acc: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{acc: s} }

func strEq(filter *string, v string) bool { return filter == nil || *filter == v }

func sortByCreated[T any](list []*T, created func(*T) int64) {
	sort.SliceStable(list, func(i, j int) bool { return created(list[i]) < created(list[j]) })
}
