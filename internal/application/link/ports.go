package link

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, con repos de links y chats atados a ella.
// Aprobación (link + chat) y rechazo (link + chat) son una sola unidad de trabajo.
type TxRunner interface {
	RunLinkTx(ctx context.Context, fn func(
		links repository.LinkRepository,
		chats repository.ChatRepository,
	) error) error
}

// Metrics contador de eventos del ciclo de vida (requested, approved, rejected).
type Metrics interface {
	LinkEvent(event string)
}

// Eventos reportados a Metrics.
const (
	EventRequested = "requested"
	EventApproved  = "approved"
	EventRejected  = "rejected"
)

type nopMetrics struct{}

func (nopMetrics) LinkEvent(string) {}
