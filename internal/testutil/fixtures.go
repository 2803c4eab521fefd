// Package testutil arma escenarios de prueba sobre el almacén en memoria.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
)

// Team proveedor con su owner y un delegado de cada tipo.
type Team struct {
	Owner   *entity.User
	Manager *entity.User
	Repr    *entity.User
}

// NewConsumer persiste un consumidor.
func NewConsumer(t *testing.T, s *memory.Store, email string) *entity.User {
	t.Helper()
	return save(t, s, &entity.User{Email: email, FirstName: "Consumidor", IsConsumer: true})
}

// NewOwner persiste un owner de proveedor.
func NewOwner(t *testing.T, s *memory.Store, email string) *entity.User {
	t.Helper()
	return save(t, s, &entity.User{Email: email, FirstName: "Owner", IsSupplierOwner: true})
}

// NewManager persiste un manager del owner.
func NewManager(t *testing.T, s *memory.Store, owner *entity.User, email string) *entity.User {
	t.Helper()
	id := owner.ID
	return save(t, s, &entity.User{Email: email, FirstName: "Manager", IsSupplierManager: true, SupplierOwnerID: &id})
}

// NewRepr persiste un representante del owner.
func NewRepr(t *testing.T, s *memory.Store, owner *entity.User, email string) *entity.User {
	t.Helper()
	id := owner.ID
	return save(t, s, &entity.User{Email: email, FirstName: "Repr", IsSupplierRepr: true, SupplierOwnerID: &id})
}

// NewTeam persiste owner, manager y representante con el prefijo de email dado.
func NewTeam(t *testing.T, s *memory.Store, prefix string) Team {
	t.Helper()
	owner := NewOwner(t, s, prefix+"-owner@test.co")
	return Team{
		Owner:   owner,
		Manager: NewManager(t, s, owner, prefix+"-manager@test.co"),
		Repr:    NewRepr(t, s, owner, prefix+"-repr@test.co"),
	}
}

// Link persiste un link entre supplier y consumer.
func Link(t *testing.T, s *memory.Store, supplier, consumer *entity.User, approved bool) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, s.Links().Create(context.Background(), &entity.Link{
		SupplierID: supplier.ID,
		ConsumerID: consumer.ID,
		IsApproved: approved,
		CreatedAt:  now,
		UpdatedAt:  now,
	}))
}

func save(t *testing.T, s *memory.Store, u *entity.User) *entity.User {
	t.Helper()
	now := time.Now().UTC()
	u.ID = uuid.New().String()
	u.PasswordHash = "x"
	u.CreatedAt, u.UpdatedAt = now, now
	require.NoError(t, s.Users().Create(context.Background(), u))
	return u
}
