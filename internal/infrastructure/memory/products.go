package memory

import (
	"context"
	"errors"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var errChatMissing = errors.New("memory: chat inexistente (violación de FK)")

// ProductRepo productos en memoria.
type ProductRepo struct {
	acc accessor
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.acc.with(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrConflict
		}
		st.products[p.ID] = *p
		return nil
	})
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.acc.with(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// Update reemplaza el producto existente; no cambia SupplierID ni CreatedAt.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.acc.with(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		next := *p
		next.SupplierID = cur.SupplierID
		next.CreatedAt = cur.CreatedAt
		st.products[p.ID] = next
		return nil
	})
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(_ context.Context, id string) (bool, error) {
	var ok bool
	err := r.acc.with(func(st *state) error {
		if _, ok = st.products[id]; ok {
			delete(st.products, id)
		}
		return nil
	})
	return ok, err
}

// List filtra por igualdad; los filtros nil no participan.
func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var allowed map[string]bool
	if f.SupplierIDs != nil {
		allowed = make(map[string]bool, len(f.SupplierIDs))
		for _, id := range f.SupplierIDs {
			allowed[id] = true
		}
	}
	var out []*entity.Product
	err := r.acc.with(func(st *state) error {
		for _, p := range st.products {
			if !strEq(f.ID, p.ID) || !strEq(f.Name, p.Name) || !strEq(f.SupplierID, p.SupplierID) {
				continue
			}
			if allowed != nil && !allowed[p.SupplierID] {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sortByCreated(out, func(p *entity.Product) int64 { return p.CreatedAt.UnixNano() })
	return out, err
}
