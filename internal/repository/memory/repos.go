package memory

import (
	"context"
	"fmt"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/shopspring/decimal"
)

type concertRepo struct{ t *tx }

func (r concertRepo) Create(ctx context.Context, c *domain.Concert) (int64, error) {
	st, done := r.t.write()
	defer done()

	now := r.t.now().UTC()
	rec := *c
	rec.ID = int64(len(st.concerts))
	rec.CreatedAt = now
	rec.UpdatedAt = now
	st.concerts = append(st.concerts, rec)

	return rec.ID, nil
}

func (r concertRepo) Get(ctx context.Context, id int64) (*domain.Concert, error) {
	const op = "memory.ConcertRepo.Get"

	st, done := r.t.read()
	defer done()

	if id < 0 || id >= int64(len(st.concerts)) {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	c := st.concerts[id]
	return &c, nil
}

// GetForUpdate is Get: the transaction already owns the whole state.
func (r concertRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Concert, error) {
	return r.Get(ctx, id)
}

func (r concertRepo) Update(ctx context.Context, c *domain.Concert) error {
	const op = "memory.ConcertRepo.Update"

	st, done := r.t.write()
	defer done()

	if c.ID < 0 || c.ID >= int64(len(st.concerts)) {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	rec := *c
	rec.UpdatedAt = r.t.now().UTC()
	st.concerts[c.ID] = rec
	c.UpdatedAt = rec.UpdatedAt

	return nil
}

func (r concertRepo) List(ctx context.Context, limit, offset int) ([]domain.Concert, error) {
	st, done := r.t.read()
	defer done()

	return page(st.concerts, limit, offset), nil
}

func (r concertRepo) NextID(ctx context.Context) (int64, error) {
	st, done := r.t.read()
	defer done()

	return int64(len(st.concerts)), nil
}

type roleRepo struct{ t *tx }

func (r roleRepo) IsApproved(ctx context.Context, role domain.Role, id domain.Identity) (bool, error) {
	st, done := r.t.read()
	defer done()

	return st.roles[roleKey{role, id}], nil
}

func (r roleRepo) Approve(ctx context.Context, role domain.Role, id domain.Identity) error {
	st, done := r.t.write()
	defer done()

	st.roles[roleKey{role, id}] = true
	return nil
}

func (r roleRepo) Revoke(ctx context.Context, role domain.Role, id domain.Identity) error {
	const op = "memory.RoleRepo.Revoke"

	st, done := r.t.write()
	defer done()

	k := roleKey{role, id}
	if !st.roles[k] {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	delete(st.roles, k)
	return nil
}

type tokenRepo struct{ t *tx }

func (r tokenRepo) Mint(ctx context.Context, tok *domain.Token) (int64, error) {
	st, done := r.t.write()
	defer done()

	rec := *tok
	rec.ID = int64(len(st.tokens[tok.Kind]))
	rec.MintedAt = r.t.now().UTC()
	st.tokens[tok.Kind] = append(st.tokens[tok.Kind], rec)

	return rec.ID, nil
}

func (r tokenRepo) Get(ctx context.Context, kind domain.TokenKind, id int64) (*domain.Token, error) {
	const op = "memory.TokenRepo.Get"

	st, done := r.t.read()
	defer done()

	list := st.tokens[kind]
	if id < 0 || id >= int64(len(list)) {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	tok := list[id]
	return &tok, nil
}

func (r tokenRepo) HoldersByConcert(ctx context.Context, kind domain.TokenKind, concertID int64) ([]domain.Identity, error) {
	st, done := r.t.read()
	defer done()

	var out []domain.Identity
	for _, tok := range st.tokens[kind] {
		if tok.ConcertID == concertID {
			out = append(out, tok.Owner)
		}
	}
	return out, nil
}

func (r tokenRepo) IsMinter(ctx context.Context, kind domain.TokenKind, id domain.Identity) (bool, error) {
	st, done := r.t.read()
	defer done()

	return st.minters[minterKey{kind, id}], nil
}

func (r tokenRepo) SetMinter(ctx context.Context, kind domain.TokenKind, id domain.Identity) error {
	st, done := r.t.write()
	defer done()

	st.minters[minterKey{kind, id}] = true
	return nil
}

type accountRepo struct{ t *tx }

func (r accountRepo) Credit(ctx context.Context, owner domain.Identity, amount decimal.Decimal) error {
	st, done := r.t.write()
	defer done()

	st.accounts[owner] = st.accounts[owner].Add(amount)
	return nil
}

func (r accountRepo) Balance(ctx context.Context, owner domain.Identity) (decimal.Decimal, error) {
	st, done := r.t.read()
	defer done()

	return st.accounts[owner], nil
}

type journalRepo struct{ t *tx }

func (r journalRepo) Head(ctx context.Context) (int64, []byte, error) {
	st, done := r.t.read()
	defer done()

	if len(st.journal) == 0 {
		return -1, nil, nil
	}
	last := st.journal[len(st.journal)-1]
	return last.Seq, last.Hash, nil
}

func (r journalRepo) Append(ctx context.Context, e *domain.JournalEntry) error {
	const op = "memory.JournalRepo.Append"

	st, done := r.t.write()
	defer done()

	if e.Seq != int64(len(st.journal)) {
		return fmt.Errorf("%s:%w", op, repository.ErrConflict)
	}
	st.journal = append(st.journal, *e)
	return nil
}

func (r journalRepo) List(ctx context.Context, f repository.JournalFilter) ([]domain.JournalEntry, error) {
	st, done := r.t.read()
	defer done()

	var out []domain.JournalEntry
	for _, e := range st.journal {
		if e.Seq < f.FromSeq {
			continue
		}
		if f.ConcertID != nil && e.ConcertID != *f.ConcertID {
			continue
		}
		if f.Kind != "" && e.Kind != f.Kind {
			continue
		}
		out = append(out, e)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}

type documentRepo struct{ t *tx }

func (r documentRepo) Put(ctx context.Context, d *domain.Document) error {
	st, done := r.t.write()
	defer done()

	if _, ok := st.documents[d.Hash]; ok {
		return nil
	}
	rec := *d
	rec.CreatedAt = r.t.now().UTC()
	st.documents[d.Hash] = rec
	return nil
}

func (r documentRepo) Get(ctx context.Context, hash string) (*domain.Document, error) {
	const op = "memory.DocumentRepo.Get"

	st, done := r.t.read()
	defer done()

	d, ok := st.documents[hash]
	if !ok {
		return nil, fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}
	return &d, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return nil
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]T(nil), items[offset:end]...)
}
