package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/gigledger/internal/domain"
)

type DocumentRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *DocumentRepo) With(db DB) *DocumentRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *DocumentRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Put stores d once; storing the same hash again is a no-op.
func (r *DocumentRepo) Put(ctx context.Context, d *domain.Document) error {
	const op = "postgres.DocumentRepo.Put"

	if _, err := r.handle().Exec(ctx,
		`INSERT INTO documents (hash, body)
		 VALUES ($1, $2)
		 ON CONFLICT (hash) DO NOTHING`,
		d.Hash, d.Body,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *DocumentRepo) Get(ctx context.Context, hash string) (*domain.Document, error) {
	const op = "postgres.DocumentRepo.Get"

	var d domain.Document
	if err := r.handle().QueryRow(ctx,
		`SELECT hash, body, created_at FROM documents WHERE hash = $1`, hash,
	).Scan(&d.Hash, &d.Body, &d.CreatedAt); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &d, nil
}
