// Package registry keeps the platform's list of approved organisers, venues
// and artists. Only platform operators may change it.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/uow"
)

type roleDetail struct {
	Role     string `cbor:"1,keyasint"`
	Identity string `cbor:"2,keyasint"`
}

type Service struct {
	uow       *uow.UoW
	journal   *ledger.Writer
	operators domain.IdentitySet
	log       *slog.Logger
}

func New(
	store repository.Store,
	journal *ledger.Writer,
	operators domain.IdentitySet,
	log *slog.Logger,
) *Service {
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		uow:       uow.NewUoW(store),
		journal:   journal,
		operators: operators,
		log:       log,
	}
}

// IsOperator reports whether id is a configured platform operator.
func (s *Service) IsOperator(id domain.Identity) bool {
	return s.operators.Has(id)
}

// IsApproved reports whether identity currently holds role.
//
// Parameters:
//   - ctx: request-scoped context.
//   - role: organiser, venue or artist.
//   - identity: the account to check.
//
// Returns:
//   - bool: true if the role is held.
//   - error: registry.ErrUnknownRole for an unrecognised role.
func (s *Service) IsApproved(ctx context.Context, role domain.Role, identity domain.Identity) (bool, error) {
	const op = "service.registry.IsApproved"

	if !role.Valid() {
		return false, fmt.Errorf("%s:%w", op, ErrUnknownRole)
	}

	ok, err := s.uow.Reader().Roles().IsApproved(ctx, role, identity)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	return ok, nil
}

// Approve grants role to identity. Approving an identity twice is not an
// error and records a second journal entry.
//
// Parameters:
//   - ctx: request-scoped context.
//   - caller: must be a platform operator.
//   - role: organiser, venue or artist.
//   - identity: the account being approved.
//
// Returns:
//   - error: domain.ErrUnauthorized if caller is not an operator.
//   - error: registry.ErrUnknownRole for an unrecognised role.
func (s *Service) Approve(ctx context.Context, caller domain.Identity, role domain.Role, identity domain.Identity) error {
	const op = "service.registry.Approve"

	if !s.operators.Has(caller) {
		return fmt.Errorf("%s:%w", op, domain.ErrUnauthorized)
	}
	if !role.Valid() {
		return fmt.Errorf("%s:%w", op, ErrUnknownRole)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Roles().Approve(ctx, role, identity); err != nil {
			return err
		}

		_, err := s.journal.Append(ctx, tx.Journal(), ledger.Event{
			Kind:      ledger.KindRoleApproved,
			ConcertID: ledger.NoConcert,
			Actor:     caller,
			Detail:    roleDetail{Role: string(role), Identity: string(identity)},
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.log.Info("role approved", slog.String("role", string(role)), slog.String("identity", identity.String()))

	return nil
}

// Revoke removes role from identity.
//
// Returns:
//   - error: domain.ErrUnauthorized if caller is not an operator.
//   - error: registry.ErrNotApproved if identity did not hold role.
func (s *Service) Revoke(ctx context.Context, caller domain.Identity, role domain.Role, identity domain.Identity) error {
	const op = "service.registry.Revoke"

	if !s.operators.Has(caller) {
		return fmt.Errorf("%s:%w", op, domain.ErrUnauthorized)
	}
	if !role.Valid() {
		return fmt.Errorf("%s:%w", op, ErrUnknownRole)
	}

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Roles().Revoke(ctx, role, identity); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotApproved
			}
			return err
		}

		_, err := s.journal.Append(ctx, tx.Journal(), ledger.Event{
			Kind:      ledger.KindRoleRevoked,
			ConcertID: ledger.NoConcert,
			Actor:     caller,
			Detail:    roleDetail{Role: string(role), Identity: string(identity)},
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	s.log.Info("role revoked", slog.String("role", string(role)), slog.String("identity", identity.String()))

	return nil
}
