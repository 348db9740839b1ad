package concert

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/issuer"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/registry"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/repository/memory"
	"github.com/shopspring/decimal"
)

var (
	operator  = domain.MustIdentity("0x00000000000000000000000000000000000000f0")
	engine    = domain.MustIdentity("0x00000000000000000000000000000000000000e0")
	organiser = domain.MustIdentity("0x00000000000000000000000000000000000000d1")
	venue     = domain.MustIdentity("0x00000000000000000000000000000000000000b1")
	artist    = domain.MustIdentity("0x00000000000000000000000000000000000000a1")
	buyer1    = domain.MustIdentity("0x00000000000000000000000000000000000000c1")
	buyer2    = domain.MustIdentity("0x00000000000000000000000000000000000000c2")
)

var testNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func ether(s string) decimal.Decimal {
	return decimal.RequireFromString(s).Shift(18)
}

type recorder struct {
	notes       []domain.StatusNotification
	invalidated []int64
}

func (r *recorder) PublishStatus(ctx context.Context, n domain.StatusNotification) error {
	r.notes = append(r.notes, n)
	return nil
}

func (r *recorder) InvalidateConcert(ctx context.Context, id int64) error {
	r.invalidated = append(r.invalidated, id)
	return nil
}

func (r *recorder) states() []domain.State {
	out := make([]domain.State, len(r.notes))
	for i, n := range r.notes {
		out[i] = n.State
	}
	return out
}

type fixture struct {
	svc      *Service
	store    repository.Store
	tickets  *issuer.Issuer
	supports *issuer.Issuer
	rec      *recorder
}

type fixtureOpts struct {
	store        repository.Store
	policy       PayoutPolicy
	limiter      RateLimiter
	noMinter     bool
	skipApproval bool
}

func newFixture(t *testing.T, opts fixtureOpts) *fixture {
	t.Helper()
	ctx := context.Background()

	if opts.store == nil {
		opts.store = memory.NewStore()
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	ops := domain.NewIdentitySet(operator)
	journal := ledger.NewWriter(nil)

	reg := registry.New(opts.store, journal, ops, log)
	tickets := issuer.New(domain.TokenTicket, opts.store, journal, ops, log)
	supporters := issuer.New(domain.TokenSupporter, opts.store, journal, ops, log)

	if !opts.skipApproval {
		for role, id := range map[domain.Role]domain.Identity{
			domain.RoleOrganiser: organiser,
			domain.RoleVenue:     venue,
			domain.RoleArtist:    artist,
		} {
			if err := reg.Approve(ctx, operator, role, id); err != nil {
				t.Fatalf("approve %s: %v", role, err)
			}
		}
	}

	if !opts.noMinter {
		for _, iss := range []*issuer.Issuer{tickets, supporters} {
			if err := iss.EnsureMinter(ctx, engine); err != nil {
				t.Fatalf("EnsureMinter: %v", err)
			}
		}
	}

	rec := &recorder{}
	svc := New(opts.store, journal, tickets, supporters,
		Deps{Cache: rec, Notifier: rec, Limiter: opts.limiter},
		Config{Engine: engine, Operators: ops, PayoutPolicy: opts.policy, Now: func() time.Time { return testNow }},
		log,
	)

	return &fixture{svc: svc, store: opts.store, tickets: tickets, supports: supporters, rec: rec}
}

// scenarioTerms is the reference concert: two tickets, one of them presale,
// 0.1 and 0.2 ether, 40/40/10 split.
func scenarioTerms() domain.Terms {
	return domain.Terms{
		Artist:             artist,
		Venue:              venue,
		ArtistPayoutPct:    40,
		OrganiserPayoutPct: 40,
		VenuePayoutPct:     10,
		TotalTickets:       2,
		PresaleTickets:     1,
		MetadataURI:        "ipfs://concert",
		PresaleUnitPrice:   ether("0.1"),
		GeneralUnitPrice:   ether("0.2"),
	}
}

// openForSale creates a concert from terms and takes it through venue and
// artist approval.
func (f *fixture) openForSale(t *testing.T, terms domain.Terms) int64 {
	t.Helper()
	ctx := context.Background()

	id, err := f.svc.CreateConcert(ctx, organiser, terms)
	if err != nil {
		t.Fatalf("CreateConcert: %v", err)
	}
	if _, err := f.svc.ApproveAsVenue(ctx, venue, id); err != nil {
		t.Fatalf("ApproveAsVenue: %v", err)
	}
	if _, err := f.svc.ApproveAsArtist(ctx, artist, id); err != nil {
		t.Fatalf("ApproveAsArtist: %v", err)
	}
	return id
}

func (f *fixture) concert(t *testing.T, id int64) *domain.Concert {
	t.Helper()
	c, err := f.store.Reader().Concerts().Get(context.Background(), id)
	if err != nil {
		t.Fatalf("Get(%d): %v", id, err)
	}
	return c
}

func (f *fixture) balance(t *testing.T, id domain.Identity) decimal.Decimal {
	t.Helper()
	b, err := f.store.Reader().Accounts().Balance(context.Background(), id)
	if err != nil {
		t.Fatalf("Balance(%s): %v", id, err)
	}
	return b
}

func (f *fixture) journalHead(t *testing.T) int64 {
	t.Helper()
	seq, _, err := f.store.Reader().Journal().Head(context.Background())
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	return seq
}

func wantErr(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("error = %v, want %v", err, target)
	}
}

func equalStates(a, b []domain.State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// failingStore refuses every credit to one identity.
type failingStore struct {
	*memory.Store
	refuse domain.Identity
}

func (s failingStore) RunTx(ctx context.Context, fn func(ctx context.Context, tx repository.Tx) error) error {
	return s.Store.RunTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		return fn(ctx, failingTx{Tx: tx, refuse: s.refuse})
	})
}

type failingTx struct {
	repository.Tx
	refuse domain.Identity
}

func (t failingTx) Accounts() repository.Accounts {
	return failingAccounts{Accounts: t.Tx.Accounts(), refuse: t.refuse}
}

type failingAccounts struct {
	repository.Accounts
	refuse domain.Identity
}

func (a failingAccounts) Credit(ctx context.Context, owner domain.Identity, amount decimal.Decimal) error {
	if owner == a.refuse {
		return errors.New("account frozen")
	}
	return a.Accounts.Credit(ctx, owner, amount)
}

type denyLimiter struct{ retry time.Duration }

func (l denyLimiter) Allow(ctx context.Context, suffix string) (bool, int64, time.Duration, error) {
	return false, 1, l.retry, nil
}
