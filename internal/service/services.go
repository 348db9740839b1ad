package service

import (
	"log/slog"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/issuer"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/registry"
	"github.com/kirinyoku/gigledger/internal/repository"
	redis "github.com/kirinyoku/gigledger/internal/repository/redis"
	"github.com/kirinyoku/gigledger/internal/service/concert"
	"github.com/kirinyoku/gigledger/internal/service/query"
)

type Services struct {
	Registry   *registry.Service
	Tickets    *issuer.Issuer
	Supporters *issuer.Issuer
	Concert    *concert.Service
	Query      *query.Service
}

type Config struct {
	Engine       domain.Identity
	Operators    domain.IdentitySet
	PayoutPolicy concert.PayoutPolicy
	Query        query.Config
	Now          func() time.Time
}

// Deps are the optional collaborators, usually redis-backed. Nil fields
// are left out so the services work without them.
type Deps struct {
	Cache    *redis.Cache
	Notifier concert.Notifier
	Limiter  *redis.SlidingWindowLimiter
}

func NewServices(store repository.Store, deps Deps, cfg Config, log *slog.Logger) *Services {
	if log == nil {
		log = slog.Default()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	// one writer for every service so the chain has a single clock
	journal := ledger.NewWriter(now)

	tickets := issuer.New(domain.TokenTicket, store, journal, cfg.Operators, log)
	supporters := issuer.New(domain.TokenSupporter, store, journal, cfg.Operators, log)

	cdeps := concert.Deps{Notifier: deps.Notifier}
	if deps.Cache != nil {
		cdeps.Cache = deps.Cache
	}
	if deps.Limiter != nil {
		cdeps.Limiter = deps.Limiter
	}

	return &Services{
		Registry:   registry.New(store, journal, cfg.Operators, log.With(slog.String("service", "registry"))),
		Tickets:    tickets,
		Supporters: supporters,
		Concert: concert.New(store, journal, tickets, supporters, cdeps, concert.Config{
			Engine:       cfg.Engine,
			Operators:    cfg.Operators,
			PayoutPolicy: cfg.PayoutPolicy,
			Now:          now,
		}, log.With(slog.String("service", "concert"))),
		Query: query.New(store, deps.Cache, cfg.Query),
	}
}

// Issuer returns the issuer for kind.
func (s *Services) Issuer(kind domain.TokenKind) (*issuer.Issuer, error) {
	switch kind {
	case domain.TokenTicket:
		return s.Tickets, nil
	case domain.TokenSupporter:
		return s.Supporters, nil
	}
	return nil, issuer.ErrUnknownKind
}
