package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Marketplace-api/internal/domain"
	"github.com/jhoicas/Marketplace-api/internal/domain/entity"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ repository.LinkRepository = (*LinkRepo)(nil)

// LinkRepo implementación del puerto LinkRepository sobre PostgreSQL (usable con pool o tx).
type LinkRepo struct {
	q Querier
}

// NewLinkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLinkRepository(q Querier) *LinkRepo {
	return &LinkRepo{q: q}
}

// Create inserta el link; la PK (supplier_id, consumer_id) rechaza duplicados.
func (r *LinkRepo) Create(ctx context.Context, l *entity.Link) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO links (supplier_id, consumer_id, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		l.SupplierID, l.ConsumerID, l.IsApproved, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert link: %w", err)
	}
	return nil
}

// Get obtiene el link del par.
func (r *LinkRepo) Get(ctx context.Context, supplierID, consumerID string) (*entity.Link, error) {
	if !validIDs(supplierID, consumerID) {
		return nil, nil
	}
	var l entity.Link
	err := r.q.QueryRow(ctx, `
		SELECT supplier_id, consumer_id, is_approved, created_at, updated_at
		FROM links WHERE supplier_id = $1 AND consumer_id = $2`, supplierID, consumerID,
	).Scan(&l.SupplierID, &l.ConsumerID, &l.IsApproved, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get link: %w", err)
	}
	return &l, nil
}

// Approve solo toca links pendientes: dos aprobaciones concurrentes no pueden ganar ambas.
func (r *LinkRepo) Approve(ctx context.Context, supplierID, consumerID string) (bool, error) {
	if !validIDs(supplierID, consumerID) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE links SET is_approved = TRUE, updated_at = now()
		WHERE supplier_id = $1 AND consumer_id = $2 AND is_approved = FALSE`,
		supplierID, consumerID,
	)
	if err != nil {
		return false, fmt.Errorf("approve link: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// Delete elimina el link del par.
func (r *LinkRepo) Delete(ctx context.Context, supplierID, consumerID string) (bool, error) {
	if !validIDs(supplierID, consumerID) {
		return false, nil
	}
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM links WHERE supplier_id = $1 AND consumer_id = $2`, supplierID, consumerID)
	if err != nil {
		return false, fmt.Errorf("delete link: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List filtra por igualdad sobre los campos no nil.
func (r *LinkRepo) List(ctx context.Context, f repository.LinkFilter) ([]*entity.Link, error) {
	var w where
	w.addUUID("supplier_id", f.SupplierID)
	w.addUUID("consumer_id", f.ConsumerID)
	if f.IsApproved != nil {
		w.add("is_approved = $%d", *f.IsApproved)
	}
	if w.none {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT supplier_id, consumer_id, is_approved, created_at, updated_at
		FROM links`+w.sql()+` ORDER BY created_at`, w.args...)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	defer rows.Close()
	var list []*entity.Link
	for rows.Next() {
		var l entity.Link
		if err := rows.Scan(&l.SupplierID, &l.ConsumerID, &l.IsApproved, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
