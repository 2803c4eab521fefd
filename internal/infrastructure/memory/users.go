package memory

import (
	"context"

	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	acc accessor
}

// Create persiste un nuevo usuario; email duplicado devuelve ErrEmailAlreadyExists.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	return r.acc.with(func(st *state) error {
		for _, u := range st.users {
			if u.Email == user.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		if _, ok := st.users[user.ID]; ok {
			return domain.ErrConflict
		}
		st.users[user.ID] = *user
		return nil
	})
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.acc.with(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	var out *entity.User
	err := r.acc.with(func(st *state) error {
		for _, u := range st.users {
			if u.Email == email {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

// ListTeam lista los delegados de ownerID.
func (r *UserRepo) ListTeam(_ context.Context, ownerID string) ([]*entity.User, error) {
	var out []*entity.User
	err := r.acc.with(func(st *state) error {
		for _, u := range st.users {
			if u.SupplierOwnerID != nil && *u.SupplierOwnerID == ownerID {
				u := u
				out = append(out, &u)
			}
		}
		return nil
	})
	sortByCreated(out, func(u *entity.User) int64 { return u.CreatedAt.UnixNano() })
	return out, err
}
