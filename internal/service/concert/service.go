// Package concert runs the concert lifecycle: creation, venue and artist
// approval, organiser-driven transitions, ticket sales and the one-time
// payout. Every operation is a single transaction over repository.Store;
// status notifications are journaled inside it and published after commit.
package concert

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/issuer"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/uow"
)

type Notifier interface {
	PublishStatus(ctx context.Context, n domain.StatusNotification) error
}

type CacheInvalidator interface {
	InvalidateConcert(ctx context.Context, concertID int64) error
}

type RateLimiter interface {
	Allow(ctx context.Context, suffix string) (allowed bool, current int64, retryAfter time.Duration, err error)
}

// Deps are the optional collaborators. Any of them may be nil.
type Deps struct {
	Cache    CacheInvalidator
	Notifier Notifier
	Limiter  RateLimiter
}

type Config struct {
	// Engine is the platform identity that mints tokens and receives
	// retained funds.
	Engine       domain.Identity
	Operators    domain.IdentitySet
	PayoutPolicy PayoutPolicy
	Now          func() time.Time
}

type Service struct {
	uow        *uow.UoW
	journal    *ledger.Writer
	tickets    *issuer.Issuer
	supporters *issuer.Issuer
	deps       Deps
	cfg        Config
	log        *slog.Logger
}

func New(
	store repository.Store,
	journal *ledger.Writer,
	tickets, supporters *issuer.Issuer,
	deps Deps,
	cfg Config,
	log *slog.Logger,
) *Service {
	if cfg.PayoutPolicy == "" {
		cfg.PayoutPolicy = PayoutByOrganiser
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if log == nil {
		log = slog.Default()
	}

	return &Service{
		uow:        uow.NewUoW(store),
		journal:    journal,
		tickets:    tickets,
		supporters: supporters,
		deps:       deps,
		cfg:        cfg,
		log:        log,
	}
}

type statusDetail struct {
	From string `cbor:"1,keyasint"`
}

// lock loads the concert for the rest of tx.
func lock(ctx context.Context, tx repository.Tx, id int64) (*domain.Concert, error) {
	c, err := tx.Concerts().GetForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConcertNotFound
		}
		return nil, err
	}
	return c, nil
}

// emit journals that c moved from one state to c's current state and
// schedules the matching notification for after commit.
func (s *Service) emit(
	ctx context.Context,
	tx repository.Tx,
	after func(uow.AfterCommit),
	c *domain.Concert,
	actor domain.Identity,
	from, to domain.State,
) error {
	e, err := s.journal.Append(ctx, tx.Journal(), ledger.Event{
		Kind:      ledger.KindConcertStatus,
		ConcertID: c.ID,
		Actor:     actor,
		State:     to,
		Detail:    statusDetail{From: string(from)},
	})
	if err != nil {
		return err
	}

	n := domain.StatusNotification{ConcertID: c.ID, State: to, Seq: e.Seq, At: e.CreatedAt}
	after(func(ctx context.Context) {
		s.log.Info("concert status",
			slog.Int64("concert_id", n.ConcertID),
			slog.String("from", string(from)),
			slog.String("to", string(n.State)),
		)

		if s.deps.Notifier == nil {
			return
		}
		if err := s.deps.Notifier.PublishStatus(ctx, n); err != nil {
			s.log.Warn("publish status", slog.Int64("concert_id", n.ConcertID), slog.Any("err", err))
		}
	})

	return nil
}

// invalidate drops cached reads of a concert once the transaction commits.
func (s *Service) invalidate(after func(uow.AfterCommit), id int64) {
	if s.deps.Cache == nil {
		return
	}
	after(func(ctx context.Context) {
		if err := s.deps.Cache.InvalidateConcert(ctx, id); err != nil {
			s.log.Warn("invalidate concert cache", slog.Int64("concert_id", id), slog.Any("err", err))
		}
	})
}
