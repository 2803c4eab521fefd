package link

import (
	"context"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/application/chat"
	"github.com/jhoicas/Marketplace-api/internal/application/dto"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/access"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
	"github.com/jhoicas/Marketplace-api/pkg/logger"
)

// UseCase ciclo de vida de los links proveedor-consumidor:
// solicitud → aprobación (con chat) | rechazo (borra link y chat).
type UseCase struct {
	txRunner TxRunner
	links    repository.LinkRepository
	users    repository.UserRepository
	metrics  Metrics
	log      *logger.Logger
}

// NewUseCase construye el caso de uso. metrics y log pueden ser nil.
func NewUseCase(
	txRunner TxRunner,
	links repository.LinkRepository,
	users repository.UserRepository,
	metrics Metrics,
	log *logger.Logger,
) *UseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{txRunner: txRunner, links: links, users: users, metrics: metrics, log: log}
}

// SendRequest crea un link pendiente del consumidor hacia el proveedor supplierID.
// El destino debe ser un owner. Un par existente devuelve ErrConflict.
func (uc *UseCase) SendRequest(ctx context.Context, actor *entity.User, supplierID string) (*dto.LinkResponse, error) {
	if _, err := access.Require(actor, access.ActionSendLinkRequest); err != nil {
		return nil, err
	}
	if supplierID == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.users.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.IsSupplierOwner {
		return nil, domain.ErrNotFound
	}
	now := time.Now().UTC()
	l := &entity.Link{
		SupplierID: supplierID,
		ConsumerID: actor.ID,
		IsApproved: false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.links.Create(ctx, l); err != nil {
		return nil, err
	}
	uc.metrics.LinkEvent(EventRequested)
	uc.log.Info().Str("supplier_id", supplierID).Str("consumer_id", actor.ID).Msg("solicitud de link enviada")
	return toLinkResponse(l), nil
}

// ApproveRequest aprueba el link pendiente (proveedor efectivo del actor, consumerID) y
// aprovisiona su chat en la misma transacción. Sin link pendiente: ErrNotFound y sin chat.
// Una segunda aprobación (o una concurrente) ya no encuentra link pendiente.
func (uc *UseCase) ApproveRequest(ctx context.Context, actor *entity.User, consumerID string) (*dto.ChatResponse, error) {
	supplierID, err := uc.deciderSupplierID(actor, consumerID)
	if err != nil {
		return nil, err
	}
	var created *entity.Chat
	err = uc.txRunner.RunLinkTx(ctx, func(links repository.LinkRepository, chats repository.ChatRepository) error {
		ok, err := links.Approve(ctx, supplierID, consumerID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		created, err = chat.CreateChat(ctx, chats, supplierID, consumerID)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.LinkEvent(EventApproved)
	uc.log.Info().
		Str("supplier_id", supplierID).
		Str("consumer_id", consumerID).
		Str("approved_by", actor.ID).
		Str("chat_id", created.ID).
		Msg("link aprobado")
	return chat.ToChatResponse(created), nil
}

// RejectRequest elimina el link (pendiente o ya aprobado) y el chat asociado en una
// transacción. Sin link: ErrNotFound.
func (uc *UseCase) RejectRequest(ctx context.Context, actor *entity.User, consumerID string) error {
	supplierID, err := uc.deciderSupplierID(actor, consumerID)
	if err != nil {
		return err
	}
	var wasApproved bool
	err = uc.txRunner.RunLinkTx(ctx, func(links repository.LinkRepository, chats repository.ChatRepository) error {
		current, err := links.Get(ctx, supplierID, consumerID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		wasApproved = current.IsApproved
		ok, err := links.Delete(ctx, supplierID, consumerID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrNotFound
		}
		_, err = chat.DeleteChat(ctx, chats, supplierID, consumerID)
		return err
	})
	if err != nil {
		return err
	}
	uc.metrics.LinkEvent(EventRejected)
	uc.log.Info().
		Str("supplier_id", supplierID).
		Str("consumer_id", consumerID).
		Str("rejected_by", actor.ID).
		Bool("was_approved", wasApproved).
		Msg("link rechazado")
	return nil
}

// ListLinks listado según el rol: consumidores ven sus links, owner/manager los de su
// proveedor efectivo. Representantes: ErrForbidden.
func (uc *UseCase) ListLinks(ctx context.Context, actor *entity.User, approved bool) ([]dto.LinkResponse, error) {
	role, err := access.Require(actor, access.ActionChat)
	if err != nil {
		return nil, err
	}
	if role == entity.RoleConsumer {
		return uc.ListForConsumer(ctx, actor, approved)
	}
	return uc.ListForSupplier(ctx, actor, approved)
}

// ListForConsumer links del consumidor actor (/links/suppliers/ y /links/sent/).
func (uc *UseCase) ListForConsumer(ctx context.Context, actor *entity.User, approved bool) ([]dto.LinkResponse, error) {
	if _, err := access.Require(actor, access.ActionListConsumerLinks); err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.LinkFilter{ConsumerID: &actor.ID, IsApproved: &approved})
}

// ListForSupplier links del proveedor efectivo del actor (/links/consumers/ y /links/received/).
func (uc *UseCase) ListForSupplier(ctx context.Context, actor *entity.User, approved bool) ([]dto.LinkResponse, error) {
	if _, err := access.Require(actor, access.ActionListSupplierLinks); err != nil {
		return nil, err
	}
	supplierID, err := actor.EffectiveSupplierID()
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, repository.LinkFilter{SupplierID: &supplierID, IsApproved: &approved})
}

func (uc *UseCase) list(ctx context.Context, filter repository.LinkFilter) ([]dto.LinkResponse, error) {
	list, err := uc.links.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LinkResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLinkResponse(l))
	}
	return out, nil
}

func (uc *UseCase) deciderSupplierID(actor *entity.User, consumerID string) (string, error) {
	if _, err := access.Require(actor, access.ActionDecideLink); err != nil {
		return "", err
	}
	if consumerID == "" {
		return "", domain.ErrInvalidInput
	}
	return actor.EffectiveSupplierID()
}

func toLinkResponse(l *entity.Link) *dto.LinkResponse {
	return &dto.LinkResponse{
		SupplierID: l.SupplierID,
		ConsumerID: l.ConsumerID,
		IsApproved: l.IsApproved,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}
