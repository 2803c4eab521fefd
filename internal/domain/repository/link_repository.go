package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// LinkFilter criterios de igualdad; los campos nil no participan del filtro.
type LinkFilter struct {
	SupplierID *string
	ConsumerID *string
	IsApproved *bool
}

// LinkRepository puerto de persistencia para Link. El par (supplier, consumer) es único.
type LinkRepository interface {
	// Create inserta un link; si el par ya existe devuelve domain.ErrConflict.
	Create(ctx context.Context, link *entity.Link) error
	Get(ctx context.Context, supplierID, consumerID string) (*entity.Link, error)
	// Approve marca como aprobado un link pendiente. false si no había link pendiente.
	Approve(ctx context.Context, supplierID, consumerID string) (bool, error)
	// Delete elimina el link (pendiente o aprobado). false si no existía.
	Delete(ctx context.Context, supplierID, consumerID string) (bool, error)
	List(ctx context.Context, filter LinkFilter) ([]*entity.Link, error)
}
