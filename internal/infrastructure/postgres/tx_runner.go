package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Marketplace-api/internal/application/link"
	"github.com/jhoicas/Marketplace-api/internal/domain/repository"
)

var _ link.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLinkTx inicia una transacción con repos de links y chats atados a ella y hace
// Commit si fn no falla (Rollback en otro caso).
func (r *TxRunner) RunLinkTx(ctx context.Context, fn func(
	links repository.LinkRepository,
	chats repository.ChatRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewLinkRepository(tx), NewChatRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
