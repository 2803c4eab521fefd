package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.LinkRepository = (*LinkRepo)(nil)

// LinkRepo links en memoria, indexados por el par (supplier, consumer).
type LinkRepo struct {
	acc accessor
}

// Create inserta el link; un par existente devuelve ErrConflict.
func (r *LinkRepo) Create(_ context.Context, l *entity.Link) error {
	return r.acc.with(func(st *state) error {
		k := pair{l.SupplierID, l.ConsumerID}
		if _, ok := st.links[k]; ok {
			return domain.ErrConflict
		}
		st.links[k] = *l
		return nil
	})
}

// Get obtiene el link del par.
func (r *LinkRepo) Get(_ context.Context, supplierID, consumerID string) (*entity.Link, error) {
	var out *entity.Link
	err := r.acc.with(func(st *state) error {
		if l, ok := st.links[pair{supplierID, consumerID}]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

// Approve marca el link pendiente como aprobado.
func (r *LinkRepo) Approve(_ context.Context, supplierID, consumerID string) (bool, error) {
	var ok bool
	err := r.acc.with(func(st *state) error {
		k := pair{supplierID, consumerID}
		l, found := st.links[k]
		if !found || l.IsApproved {
			return nil
		}
		l.IsApproved = true
		l.UpdatedAt = time.Now().UTC()
		st.links[k] = l
		ok = true
		return nil
	})
	return ok, err
}

// Delete elimina el link del par.
func (r *LinkRepo) Delete(_ context.Context, supplierID, consumerID string) (bool, error) {
	var ok bool
	err := r.acc.with(func(st *state) error {
		k := pair{supplierID, consumerID}
		if _, ok = st.links[k]; ok {
			delete(st.links, k)
		}
		return nil
	})
	return ok, err
}

// List filtra por igualdad sobre los campos no nil.
func (r *LinkRepo) List(_ context.Context, f repository.LinkFilter) ([]*entity.Link, error) {
	var out []*entity.Link
	err := r.acc.with(func(st *state) error {
		for _, l := range st.links {
			if !strEq(f.SupplierID, l.SupplierID) || !strEq(f.ConsumerID, l.ConsumerID) {
				continue
			}
			if f.IsApproved != nil && *f.IsApproved != l.IsApproved {
				continue
			}
			l := l
			out = append(out, &l)
		}
		return nil
	})
	sortByCreated(out, func(l *entity.Link) int64 { return l.CreatedAt.UnixNano() })
	return out, err
}
