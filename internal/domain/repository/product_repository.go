package repository

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
)

// ProductFilter criterios de igualdad. Los punteros nil se excluyen del filtro
// (no significan "igual a NULL"). SupplierIDs acota a un conjunto de proveedores;
// un slice no-nil vacío no coincide con nada.
type ProductFilter struct {
	ID          *string
	Name        *string
	SupplierID  *string
	SupplierIDs []string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
}
