package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/gigledger/internal/repository"
)

type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// ledgerLockKey is the advisory lock every write transaction takes, so all
// operations on the ledger are applied one at a time.
const ledgerLockKey int64 = 0x6769676c6564 // "gigled"

const (
	defaultMaxRetries = 3
	retryBackoff      = 20 * time.Millisecond
)

type Store struct {
	pool       *pgxpool.Pool
	maxRetries int
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:       pool,
		maxRetries: defaultMaxRetries,
	}
}

// RunTx runs fn in a serializable transaction holding the ledger lock.
// Serialization failures and deadlocks are retried a bounded number of
// times; every other error from fn is returned unchanged after rollback.
func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	const op = "postgres.Store.RunTx"

	var err error
	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		err = s.runOnce(ctx, fn)
		if err == nil || !IsRetryable(err) {
			return err
		}
	}

	return fmt.Errorf("%s: gave up after %d attempts: %w", op, s.maxRetries+1, err)
}

func (s *Store) runOnce(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.Serializable,
		AccessMode: pgx.ReadWrite,
	})
	if err != nil {
		return err
	}

	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, ledgerLockKey); err != nil {
		return fmt.Errorf("ledger lock: %w", err)
	}

	if err := fn(ctx, view{s: s, db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

// Reader runs each call on its own pooled connection, outside any
// transaction.
func (s *Store) Reader() repository.Tx {
	return view{s: s}
}

// view binds the repositories to a transaction, or to the pool when db is
// nil.
type view struct {
	s  *Store
	db DB
}

func (v view) Concerts() repository.Concerts {
	return (&ConcertRepo{pool: v.s.pool}).With(v.db)
}

func (v view) Roles() repository.Roles {
	return (&RoleRepo{pool: v.s.pool}).With(v.db)
}

func (v view) Tokens() repository.Tokens {
	return (&TokenRepo{pool: v.s.pool}).With(v.db)
}

func (v view) Accounts() repository.Accounts {
	return (&AccountRepo{pool: v.s.pool}).With(v.db)
}

func (v view) Journal() repository.Journal {
	return (&JournalRepo{pool: v.s.pool}).With(v.db)
}

func (v view) Documents() repository.Documents {
	return (&DocumentRepo{pool: v.s.pool}).With(v.db)
}
