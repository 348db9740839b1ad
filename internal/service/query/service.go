package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	redisrepo "github.com/kirinyoku/gigledger/internal/repository/redis"
	"github.com/kirinyoku/gigledger/internal/service/concert"
)

type Config struct {
	ConcertSummaryTTL time.Duration
	ConcertStateTTL   time.Duration
	DefaultPage       int
	MaxPage           int
}

type Service struct {
	store repository.Store
	cache *redisrepo.Cache
	cfg   Config
}

// New builds the read side. cache may be nil, in which case every read
// goes to the store.
func New(store repository.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ConcertSummaryTTL <= 0 {
		cfg.ConcertSummaryTTL = 60 * time.Second
	}

	if cfg.ConcertStateTTL <= 0 {
		cfg.ConcertStateTTL = 5 * time.Second
	}

	if cfg.DefaultPage <= 0 {
		cfg.DefaultPage = 50
	}

	if cfg.MaxPage <= 0 {
		cfg.MaxPage = 500
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

func cached[T any](
	ctx context.Context,
	s *Service,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	return redisrepo.GetOrSetJSON(ctx, s.cache, key, ttl, loader)
}

func (s *Service) loadConcert(ctx context.Context, id int64) (domain.Concert, error) {
	c, err := s.store.Reader().Concerts().Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Concert{}, ErrConcertNotFound
		}
		return domain.Concert{}, err
	}
	return *c, nil
}

// GetConcert retrieves a concert record by its ID, through the cache.
//
// Parameters:
//   - ctx: request-scoped context.
//   - id: concert id.
//
// Returns:
//   - *domain.Concert: the concert record.
//   - error: query.ErrConcertNotFound if the concert does not exist.
func (s *Service) GetConcert(ctx context.Context, id int64) (*domain.Concert, error) {
	const op = "service.query.GetConcert"

	c, err := cached(ctx, s, redisrepo.KeyConcertSummary(id), s.cfg.ConcertSummaryTTL, func(ctx context.Context) (domain.Concert, error) {
		return s.loadConcert(ctx, id)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &c, nil
}

// GetState returns only the lifecycle state of a concert. It is cached
// separately, with a short TTL, for clients that poll.
func (s *Service) GetState(ctx context.Context, id int64) (domain.State, error) {
	const op = "service.query.GetState"

	state, err := cached(ctx, s, redisrepo.KeyConcertState(id), s.cfg.ConcertStateTTL, func(ctx context.Context) (domain.State, error) {
		c, err := s.loadConcert(ctx, id)
		return c.State, err
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}

// ListConcerts pages through concerts in id order. Default and max page
// sizes are enforced.
func (s *Service) ListConcerts(ctx context.Context, limit, offset int) ([]domain.Concert, error) {
	const op = "service.query.ListConcerts"

	if limit <= 0 {
		limit = s.cfg.DefaultPage
	}

	if limit > s.cfg.MaxPage {
		limit = s.cfg.MaxPage
	}

	list, err := s.store.Reader().Concerts().List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return list, nil
}

// NextConcertID is the id the next created concert will get.
func (s *Service) NextConcertID(ctx context.Context) (int64, error) {
	const op = "service.query.NextConcertID"

	id, err := s.store.Reader().Concerts().NextID(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Holders lists the owners of kind tokens minted for a concert.
//
// Returns:
//   - []domain.Identity: one entry per token, in mint order.
//   - error: query.ErrConcertNotFound if the concert does not exist.
func (s *Service) Holders(ctx context.Context, kind domain.TokenKind, concertID int64) ([]domain.Identity, error) {
	const op = "service.query.Holders"

	r := s.store.Reader()
	if _, err := s.loadConcert(ctx, concertID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	holders, err := r.Tokens().HoldersByConcert(ctx, kind, concertID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return holders, nil
}

// Notifications replays the status notifications of a concert from the
// journal, oldest first, starting at sequence fromSeq.
func (s *Service) Notifications(ctx context.Context, concertID, fromSeq int64, limit int) ([]domain.StatusNotification, error) {
	const op = "service.query.Notifications"

	if _, err := s.loadConcert(ctx, concertID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if limit <= 0 || limit > s.cfg.MaxPage {
		limit = s.cfg.MaxPage
	}

	entries, err := s.store.Reader().Journal().List(ctx, repository.JournalFilter{
		ConcertID: &concertID,
		Kind:      ledger.KindConcertStatus,
		FromSeq:   fromSeq,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.StatusNotification, len(entries))
	for i, e := range entries {
		out[i] = domain.StatusNotification{ConcertID: e.ConcertID, State: e.State, Seq: e.Seq, At: e.CreatedAt}
	}

	return out, nil
}

// Settlement returns the payout of a settled concert.
//
// Returns:
//   - error: query.ErrConcertNotFound if the concert does not exist.
//   - error: query.ErrNotSettled if no payout has happened yet.
func (s *Service) Settlement(ctx context.Context, concertID int64) (*domain.Settlement, error) {
	const op = "service.query.Settlement"

	if _, err := s.loadConcert(ctx, concertID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	entries, err := s.store.Reader().Journal().List(ctx, repository.JournalFilter{
		ConcertID: &concertID,
		Kind:      ledger.KindSettlement,
		Limit:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNotSettled)
	}

	st, err := concert.DecodeSettlement(&entries[0])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}

// Balance is the total credited to an identity by payouts (and, for the
// platform identity, retained funds).
func (s *Service) Balance(ctx context.Context, id domain.Identity) (domain.AccountBalance, error) {
	const op = "service.query.Balance"

	b, err := s.store.Reader().Accounts().Balance(ctx, id)
	if err != nil {
		return domain.AccountBalance{}, fmt.Errorf("%s: %w", op, err)
	}

	return domain.AccountBalance{Owner: id, Balance: b}, nil
}

// Document returns a stored metadata document by content hash, given bare
// or as a "blake3:" URI.
func (s *Service) Document(ctx context.Context, hash string) (*domain.Document, error) {
	const op = "service.query.Document"

	h, err := ledger.ParseContentHash(hash)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrDocumentNotFound)
	}

	doc, err := s.store.Reader().Documents().Get(ctx, h.String())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrDocumentNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return doc, nil
}

type LedgerReport struct {
	Entries int    `json:"entries"`
	Head    string `json:"head"`
	Valid   bool   `json:"valid"`
	Error   string `json:"error,omitempty"`
}

// VerifyLedger recomputes the whole journal hash chain. A broken chain is
// reported in the result, not as an error.
func (s *Service) VerifyLedger(ctx context.Context) (*LedgerReport, error) {
	const op = "service.query.VerifyLedger"

	entries, err := s.store.Reader().Journal().List(ctx, repository.JournalFilter{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rep := &LedgerReport{Entries: len(entries), Valid: true}

	head, err := ledger.Verify(entries)
	if err != nil {
		rep.Valid = false
		rep.Error = err.Error()
	}
	if !head.IsZero() {
		rep.Head = head.String()
	}

	return rep, nil
}
