package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/shopspring/decimal"
)

type AccountRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AccountRepo) With(db DB) *AccountRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AccountRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *AccountRepo) Credit(ctx context.Context, owner domain.Identity, amount decimal.Decimal) error {
	const op = "postgres.AccountRepo.Credit"

	if _, err := r.handle().Exec(ctx,
		`INSERT INTO accounts (identity, balance)
		 VALUES ($1, $2::numeric)
		 ON CONFLICT (identity) DO UPDATE
		 SET balance = accounts.balance + EXCLUDED.balance, updated_at = now()`,
		owner, amount.String(),
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

// Balance is zero for an identity that was never credited.
func (r *AccountRepo) Balance(ctx context.Context, owner domain.Identity) (decimal.Decimal, error) {
	const op = "postgres.AccountRepo.Balance"

	var s string
	err := r.handle().QueryRow(ctx,
		`SELECT balance::text FROM accounts WHERE identity = $1`, owner,
	).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, wrapDBErr(op, err)
	}

	b, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, wrapDBErr(op, err)
	}

	return b, nil
}
