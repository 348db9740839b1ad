package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository"
)

type RoleRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *RoleRepo) With(db DB) *RoleRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *RoleRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *RoleRepo) IsApproved(ctx context.Context, role domain.Role, id domain.Identity) (bool, error) {
	const op = "postgres.RoleRepo.IsApproved"

	var ok bool
	if err := r.handle().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM role_approvals WHERE role = $1 AND identity = $2)`,
		role, id,
	).Scan(&ok); err != nil {
		return false, wrapDBErr(op, err)
	}

	return ok, nil
}

func (r *RoleRepo) Approve(ctx context.Context, role domain.Role, id domain.Identity) error {
	const op = "postgres.RoleRepo.Approve"

	if _, err := r.handle().Exec(ctx,
		`INSERT INTO role_approvals (role, identity)
		 VALUES ($1, $2)
		 ON CONFLICT (role, identity) DO NOTHING`,
		role, id,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *RoleRepo) Revoke(ctx context.Context, role domain.Role, id domain.Identity) error {
	const op = "postgres.RoleRepo.Revoke"

	tag, err := r.handle().Exec(ctx,
		`DELETE FROM role_approvals WHERE role = $1 AND identity = $2`,
		role, id,
	)
	if err != nil {
		return wrapDBErr(op, err)
	}

	if tag.RowsAffected() == 0 {
		return wrapDBErr(op, repository.ErrNotFound)
	}

	return nil
}
