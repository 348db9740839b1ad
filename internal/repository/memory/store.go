// Package memory is an in-process implementation of repository.Store. A
// transaction works on a private copy of the state which replaces the
// committed state only when the transaction function succeeds, so a failed
// operation leaves no trace. Transactions are serialised by a store-wide lock.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/shopspring/decimal"
)

type roleKey struct {
	role domain.Role
	id   domain.Identity
}

type minterKey struct {
	kind domain.TokenKind
	id   domain.Identity
}

type state struct {
	concerts  []domain.Concert
	roles     map[roleKey]bool
	tokens    map[domain.TokenKind][]domain.Token
	minters   map[minterKey]bool
	accounts  map[domain.Identity]decimal.Decimal
	journal   []domain.JournalEntry
	documents map[string]domain.Document
}

func newState() *state {
	return &state{
		roles:     map[roleKey]bool{},
		tokens:    map[domain.TokenKind][]domain.Token{},
		minters:   map[minterKey]bool{},
		accounts:  map[domain.Identity]decimal.Decimal{},
		documents: map[string]domain.Document{},
	}
}

// clone copies everything a transaction may mutate. Slices of value types
// are copied element-wise; the byte slices inside journal entries and
// documents are never mutated after append, so they are shared.
func (s *state) clone() *state {
	cp := &state{
		concerts:  append([]domain.Concert(nil), s.concerts...),
		roles:     make(map[roleKey]bool, len(s.roles)),
		tokens:    make(map[domain.TokenKind][]domain.Token, len(s.tokens)),
		minters:   make(map[minterKey]bool, len(s.minters)),
		accounts:  make(map[domain.Identity]decimal.Decimal, len(s.accounts)),
		journal:   append([]domain.JournalEntry(nil), s.journal...),
		documents: make(map[string]domain.Document, len(s.documents)),
	}
	for k, v := range s.roles {
		cp.roles[k] = v
	}
	for k, v := range s.tokens {
		cp.tokens[k] = append([]domain.Token(nil), v...)
	}
	for k, v := range s.minters {
		cp.minters[k] = v
	}
	for k, v := range s.accounts {
		cp.accounts[k] = v
	}
	for k, v := range s.documents {
		cp.documents[k] = v
	}
	return cp
}

type Store struct {
	mu  sync.RWMutex
	st  *state
	now func() time.Time
}

func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// WithClock replaces the clock used for created/updated timestamps.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(ctx, &tx{st: work, now: s.now}); err != nil {
		return err
	}

	s.st = work
	return nil
}

func (s *Store) Reader() repository.Tx {
	return &tx{store: s, now: s.now}
}

// tx is bound either to a transaction's working state (st) or, for readers,
// to the store, in which case each call locks the committed state for its
// own duration.
type tx struct {
	st    *state
	store *Store
	now   func() time.Time
}

func (t *tx) read() (*state, func()) {
	if t.st != nil {
		return t.st, func() {}
	}
	t.store.mu.RLock()
	return t.store.st, t.store.mu.RUnlock
}

func (t *tx) write() (*state, func()) {
	if t.st != nil {
		return t.st, func() {}
	}
	t.store.mu.Lock()
	return t.store.st, t.store.mu.Unlock
}

func (t *tx) Concerts() repository.Concerts   { return concertRepo{t} }
func (t *tx) Roles() repository.Roles         { return roleRepo{t} }
func (t *tx) Tokens() repository.Tokens       { return tokenRepo{t} }
func (t *tx) Accounts() repository.Accounts   { return accountRepo{t} }
func (t *tx) Journal() repository.Journal     { return journalRepo{t} }
func (t *tx) Documents() repository.Documents { return documentRepo{t} }
