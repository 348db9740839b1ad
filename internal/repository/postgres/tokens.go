package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/shopspring/decimal"
)

type TokenRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *TokenRepo) With(db DB) *TokenRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *TokenRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Mint stores t under the next id of its kind.
func (r *TokenRepo) Mint(ctx context.Context, t *domain.Token) (int64, error) {
	const op = "postgres.TokenRepo.Mint"

	var id int64
	err := r.handle().QueryRow(ctx,
		`INSERT INTO tokens (kind, id, concert_id, owner, unit_price, metadata_uri, royalty_recipient)
		 SELECT $1, COALESCE(MAX(id) + 1, 0), $2, $3, $4::numeric, $5, $6
		 FROM tokens WHERE kind = $1
		 RETURNING id`,
		t.Kind, t.ConcertID, t.Owner, t.UnitPrice.String(), t.MetadataURI, t.RoyaltyRecipient,
	).Scan(&id)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *TokenRepo) Get(ctx context.Context, kind domain.TokenKind, id int64) (*domain.Token, error) {
	const op = "postgres.TokenRepo.Get"

	var (
		t     domain.Token
		price string
	)
	err := r.handle().QueryRow(ctx,
		`SELECT kind, id, concert_id, owner, unit_price::text, metadata_uri, royalty_recipient, minted_at
		 FROM tokens WHERE kind = $1 AND id = $2`,
		kind, id,
	).Scan(&t.Kind, &t.ID, &t.ConcertID, &t.Owner, &price, &t.MetadataURI, &t.RoyaltyRecipient, &t.MintedAt)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	if t.UnitPrice, err = decimal.NewFromString(price); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return &t, nil
}

func (r *TokenRepo) HoldersByConcert(ctx context.Context, kind domain.TokenKind, concertID int64) ([]domain.Identity, error) {
	const op = "postgres.TokenRepo.HoldersByConcert"

	rows, err := r.handle().Query(ctx,
		`SELECT owner FROM tokens
		 WHERE kind = $1 AND concert_id = $2
		 ORDER BY id`,
		kind, concertID,
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Identity
	for rows.Next() {
		var owner domain.Identity
		if err := rows.Scan(&owner); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, owner)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *TokenRepo) IsMinter(ctx context.Context, kind domain.TokenKind, id domain.Identity) (bool, error) {
	const op = "postgres.TokenRepo.IsMinter"

	var ok bool
	if err := r.handle().QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM minters WHERE kind = $1 AND identity = $2)`,
		kind, id,
	).Scan(&ok); err != nil {
		return false, wrapDBErr(op, err)
	}

	return ok, nil
}

func (r *TokenRepo) SetMinter(ctx context.Context, kind domain.TokenKind, id domain.Identity) error {
	const op = "postgres.TokenRepo.SetMinter"

	if _, err := r.handle().Exec(ctx,
		`INSERT INTO minters (kind, identity)
		 VALUES ($1, $2)
		 ON CONFLICT (kind, identity) DO NOTHING`,
		kind, id,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}
