package link_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Marketplace-api/internal/application/link"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/internal/infrastructure/memory"
	"github.com/jhoicas/Marketplace-api/internal/testutil"
)

type countingMetrics struct {
	mu     sync.Mutex
	events map[string]int
}

func (m *countingMetrics) LinkEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.events == nil {
		m.events = map[string]int{}
	}
	m.events[event]++
}

func newUseCase(s *memory.Store) (*link.UseCase, *countingMetrics) {
	m := &countingMetrics{}
	return link.NewUseCase(s, s.Links(), s.Users(), m, nil), m
}

func chatCount(t *testing.T, s *memory.Store, supplierID, consumerID string) int {
	t.Helper()
	list, err := s.Chats().List(context.Background(), repository.ChatFilter{SupplierID: &supplierID, ConsumerID: &consumerID})
	require.NoError(t, err)
	return len(list)
}

// ──────────────────────────────────────────────────────────────────────────────
// SendRequest
// ──────────────────────────────────────────────────────────────────────────────

func TestSendRequest_CreaLinkPendiente(t *testing.T) {
	s := memory.NewStore()
	uc, m := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")

	out, err := uc.SendRequest(context.Background(), c1, team.Owner.ID)
	require.NoError(t, err)
	assert.Equal(t, team.Owner.ID, out.SupplierID)
	assert.Equal(t, c1.ID, out.ConsumerID)
	assert.False(t, out.IsApproved)
	assert.Equal(t, 1, m.events[link.EventRequested])
}

func TestSendRequest_Duplicado(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")

	_, err := uc.SendRequest(context.Background(), c1, team.Owner.ID)
	require.NoError(t, err)
	_, err = uc.SendRequest(context.Background(), c1, team.Owner.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Solo los owners reciben solicitudes; un delegado o un id inexistente no es un proveedor.
func TestSendRequest_DestinoNoEsOwner(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	c2 := testutil.NewConsumer(t, s, "c2@test.co")

	for _, target := range []string{team.Manager.ID, c2.ID, "no-existe"} {
		_, err := uc.SendRequest(context.Background(), c1, target)
		assert.ErrorIs(t, err, domain.ErrNotFound, target)
	}
}

func TestSendRequest_SoloConsumidores(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	s1 := testutil.NewTeam(t, s, "s1")
	s2 := testutil.NewOwner(t, s, "s2@test.co")

	_, err := uc.SendRequest(context.Background(), s1.Owner, s2.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.SendRequest(context.Background(), s1.Manager, s2.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.SendRequest(context.Background(), s1.Repr, s2.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.SendRequest(context.Background(), nil, s2.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// ApproveRequest
// ──────────────────────────────────────────────────────────────────────────────

func TestApprove_CreaExactamenteUnChat(t *testing.T) {
	s := memory.NewStore()
	uc, m := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, team.Owner, c1, false)

	chat, err := uc.ApproveRequest(context.Background(), team.Owner, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, team.Owner.ID, chat.SupplierID)
	assert.Equal(t, c1.ID, chat.ConsumerID)
	assert.Equal(t, 1, chatCount(t, s, team.Owner.ID, c1.ID))
	assert.Equal(t, 1, m.events[link.EventApproved])

	l, err := s.Links().Get(context.Background(), team.Owner.ID, c1.ID)
	require.NoError(t, err)
	assert.True(t, l.IsApproved)
}

// Aprobar dos veces no duplica el chat: la segunda no encuentra link pendiente.
func TestApprove_SegundaVezNoDuplicaChat(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, team.Owner, c1, false)

	_, err := uc.ApproveRequest(context.Background(), team.Owner, c1.ID)
	require.NoError(t, err)
	_, err = uc.ApproveRequest(context.Background(), team.Manager, c1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 1, chatCount(t, s, team.Owner.ID, c1.ID))
}

func TestApprove_SinLinkNoCreaChat(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")

	_, err := uc.ApproveRequest(context.Background(), team.Owner, c1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, chatCount(t, s, team.Owner.ID, c1.ID))
}

func TestApprove_ManagerActuaPorSuOwner(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, team.Owner, c1, false)

	chat, err := uc.ApproveRequest(context.Background(), team.Manager, c1.ID)
	require.NoError(t, err)
	assert.Equal(t, team.Owner.ID, chat.SupplierID)
}

func TestApprove_RepresentanteYConsumidorNoDeciden(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, team.Owner, c1, false)

	_, err := uc.ApproveRequest(context.Background(), team.Repr, c1.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ApproveRequest(context.Background(), c1, c1.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, 0, chatCount(t, s, team.Owner.ID, c1.ID))
}

// Otro proveedor no puede aprobar un link que no le pertenece.
func TestApprove_OtroProveedor(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	s1 := testutil.NewTeam(t, s, "s1")
	s2 := testutil.NewTeam(t, s, "s2")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, s1.Owner, c1, false)

	_, err := uc.ApproveRequest(context.Background(), s2.Owner, c1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	l, err := s.Links().Get(context.Background(), s1.Owner.ID, c1.ID)
	require.NoError(t, err)
	assert.False(t, l.IsApproved)
}

func TestApprove_Concurrente(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, team.Owner, c1, false)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := team.Owner
			if i%2 == 1 {
				actor = team.Manager
			}
			_, errs[i] = uc.ApproveRequest(context.Background(), actor, c1.ID)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, chatCount(t, s, team.Owner.ID, c1.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// RejectRequest
// ──────────────────────────────────────────────────────────────────────────────

func TestReject_BorraLinkYChat(t *testing.T) {
	s := memory.NewStore()
	uc, m := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, team.Owner, c1, false)
	_, err := uc.ApproveRequest(context.Background(), team.Owner, c1.ID)
	require.NoError(t, err)

	require.NoError(t, uc.RejectRequest(context.Background(), team.Manager, c1.ID))

	l, err := s.Links().Get(context.Background(), team.Owner.ID, c1.ID)
	require.NoError(t, err)
	assert.Nil(t, l)
	assert.Equal(t, 0, chatCount(t, s, team.Owner.ID, c1.ID))
	assert.Equal(t, 1, m.events[link.EventRejected])
}

func TestReject_Pendiente(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	testutil.Link(t, s, team.Owner, c1, false)

	require.NoError(t, uc.RejectRequest(context.Background(), team.Owner, c1.ID))

	// El consumidor puede volver a solicitar.
	_, err := uc.SendRequest(context.Background(), c1, team.Owner.ID)
	assert.NoError(t, err)
}

func TestReject_SinLink(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	team := testutil.NewTeam(t, s, "s1")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")

	err := uc.RejectRequest(context.Background(), team.Owner, c1.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.RejectRequest(context.Background(), team.Owner, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listados
// ──────────────────────────────────────────────────────────────────────────────

func TestListLinks_PorRol(t *testing.T) {
	s := memory.NewStore()
	uc, _ := newUseCase(s)
	s1 := testutil.NewTeam(t, s, "s1")
	s2 := testutil.NewOwner(t, s, "s2@test.co")
	c1 := testutil.NewConsumer(t, s, "c1@test.co")
	c2 := testutil.NewConsumer(t, s, "c2@test.co")
	testutil.Link(t, s, s1.Owner, c1, true)
	testutil.Link(t, s, s1.Owner, c2, false)
	testutil.Link(t, s, s2, c1, false)
	ctx := context.Background()

	// Consumidor: aprobados = proveedores, pendientes = enviados.
	approved, err := uc.ListLinks(ctx, c1, true)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, s1.Owner.ID, approved[0].SupplierID)

	sent, err := uc.ListForConsumer(ctx, c1, false)
	require.NoError(t, err)
	require.Len(t, sent, 1)
	assert.Equal(t, s2.ID, sent[0].SupplierID)

	// Manager: ve los links de su owner.
	received, err := uc.ListLinks(ctx, s1.Manager, false)
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, c2.ID, received[0].ConsumerID)

	consumers, err := uc.ListForSupplier(ctx, s1.Owner, true)
	require.NoError(t, err)
	require.Len(t, consumers, 1)
	assert.Equal(t, c1.ID, consumers[0].ConsumerID)

	// Representante: sin acceso a la gestión de links.
	_, err = uc.ListLinks(ctx, s1.Repr, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	// Listados cruzados.
	_, err = uc.ListForSupplier(ctx, c1, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.ListForConsumer(ctx, s1.Owner, true)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
