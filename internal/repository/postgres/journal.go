package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository"
)

type JournalRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *JournalRepo) With(db DB) *JournalRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *JournalRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func (r *JournalRepo) Head(ctx context.Context) (int64, []byte, error) {
	const op = "postgres.JournalRepo.Head"

	var (
		seq  int64
		hash []byte
	)
	err := r.handle().QueryRow(ctx,
		`SELECT seq, hash FROM journal ORDER BY seq DESC LIMIT 1`,
	).Scan(&seq, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return -1, nil, nil
		}
		return 0, nil, wrapDBErr(op, err)
	}

	return seq, hash, nil
}

// Append inserts e. A sequence number that is already taken is
// repository.ErrConflict.
func (r *JournalRepo) Append(ctx context.Context, e *domain.JournalEntry) error {
	const op = "postgres.JournalRepo.Append"

	if _, err := r.handle().Exec(ctx,
		`INSERT INTO journal (seq, kind, concert_id, actor, state, payload, prev_hash, hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.Seq, e.Kind, e.ConcertID, e.Actor, e.State, e.Payload, e.PrevHash, e.Hash, e.CreatedAt,
	); err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *JournalRepo) List(ctx context.Context, f repository.JournalFilter) ([]domain.JournalEntry, error) {
	const op = "postgres.JournalRepo.List"

	where := []string{"seq >= $1"}
	args := []any{f.FromSeq}

	if f.ConcertID != nil {
		args = append(args, *f.ConcertID)
		where = append(where, fmt.Sprintf("concert_id = $%d", len(args)))
	}
	if f.Kind != "" {
		args = append(args, f.Kind)
		where = append(where, fmt.Sprintf("kind = $%d", len(args)))
	}

	q := `SELECT seq, kind, concert_id, actor, state, payload, prev_hash, hash, created_at
		  FROM journal WHERE ` + strings.Join(where, " AND ") + ` ORDER BY seq`
	if f.Limit > 0 {
		args = append(args, f.Limit)
		q += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.handle().Query(ctx, q, args...)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		var e domain.JournalEntry
		if err := rows.Scan(
			&e.Seq, &e.Kind, &e.ConcertID, &e.Actor, &e.State,
			&e.Payload, &e.PrevHash, &e.Hash, &e.CreatedAt,
		); err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, e)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}
