package repository

import (
	"context"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Store runs operations against the concert ledger. RunTx applies fn as one
// serialised, all-or-nothing transaction: if fn returns an error nothing it
// did is kept. Reader gives non-transactional access for queries.
type Store interface {
	RunTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	Reader() Tx
}

type Tx interface {
	Concerts() Concerts
	Roles() Roles
	Tokens() Tokens
	Accounts() Accounts
	Journal() Journal
	Documents() Documents
}

type Concerts interface {
	// Create stores c under the next id and returns it. Ids start at 0 and
	// are never reused.
	Create(ctx context.Context, c *domain.Concert) (int64, error)
	Get(ctx context.Context, id int64) (*domain.Concert, error)
	// GetForUpdate is Get with the row locked for the rest of the transaction.
	GetForUpdate(ctx context.Context, id int64) (*domain.Concert, error)
	Update(ctx context.Context, c *domain.Concert) error
	List(ctx context.Context, limit, offset int) ([]domain.Concert, error)
	NextID(ctx context.Context) (int64, error)
}

type Roles interface {
	IsApproved(ctx context.Context, role domain.Role, id domain.Identity) (bool, error)
	Approve(ctx context.Context, role domain.Role, id domain.Identity) error
	Revoke(ctx context.Context, role domain.Role, id domain.Identity) error
}

type Tokens interface {
	Mint(ctx context.Context, t *domain.Token) (int64, error)
	Get(ctx context.Context, kind domain.TokenKind, id int64) (*domain.Token, error)
	HoldersByConcert(ctx context.Context, kind domain.TokenKind, concertID int64) ([]domain.Identity, error)
	IsMinter(ctx context.Context, kind domain.TokenKind, id domain.Identity) (bool, error)
	SetMinter(ctx context.Context, kind domain.TokenKind, id domain.Identity) error
}

type Accounts interface {
	Credit(ctx context.Context, owner domain.Identity, amount decimal.Decimal) error
	Balance(ctx context.Context, owner domain.Identity) (decimal.Decimal, error)
}

type JournalFilter struct {
	ConcertID *int64
	Kind      string
	FromSeq   int64
	Limit     int
}

type Journal interface {
	// Head returns the last sequence number and hash, or -1 and nil when the
	// journal is empty.
	Head(ctx context.Context) (int64, []byte, error)
	Append(ctx context.Context, e *domain.JournalEntry) error
	List(ctx context.Context, f JournalFilter) ([]domain.JournalEntry, error)
}

type Documents interface {
	Put(ctx context.Context, d *domain.Document) error
	Get(ctx context.Context, hash string) (*domain.Document, error)
}
