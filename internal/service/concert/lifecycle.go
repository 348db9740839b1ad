package concert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/uow"
	"github.com/shopspring/decimal"
)

// CreateConcert records a new concert organised by caller. The concert
// starts in OrganiserApproved and one status notification is emitted.
//
// Parameters:
//   - ctx: request-scoped context.
//   - caller: must be an approved organiser; becomes the concert organiser.
//   - terms: artist, venue, payout split, capacities, prices and metadata URI.
//
// Returns:
//   - int64: the new concert id.
//   - error: domain.ErrUnauthorized if caller is not an approved organiser.
//   - error: domain.ErrInvalidConfiguration if terms are invalid.
func (s *Service) CreateConcert(ctx context.Context, caller domain.Identity, terms domain.Terms) (int64, error) {
	const op = "service.concert.CreateConcert"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		var err error
		id, err = s.create(ctx, tx, after, caller, terms)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

func (s *Service) create(
	ctx context.Context,
	tx repository.Tx,
	after func(uow.AfterCommit),
	caller domain.Identity,
	terms domain.Terms,
) (int64, error) {
	if err := requireRole(ctx, tx, domain.RoleOrganiser, caller); err != nil {
		return 0, err
	}

	if err := domain.ValidateTerms(terms); err != nil {
		return 0, err
	}

	c := &domain.Concert{
		Artist:              terms.Artist,
		Venue:               terms.Venue,
		Organiser:           caller,
		ArtistPayoutPct:     terms.ArtistPayoutPct,
		OrganiserPayoutPct:  terms.OrganiserPayoutPct,
		VenuePayoutPct:      terms.VenuePayoutPct,
		TotalTicketCapacity: terms.TotalTickets,
		PresaleCapacity:     terms.PresaleTickets,
		PresaleUnitPrice:    terms.PresaleUnitPrice,
		GeneralUnitPrice:    terms.GeneralUnitPrice,
		AccumulatedBalance:  decimal.Zero,
		State:               domain.StateOrganiserApproved,
		MetadataURI:         terms.MetadataURI,
	}

	id, err := tx.Concerts().Create(ctx, c)
	if err != nil {
		return 0, err
	}
	c.ID = id

	if err := s.emit(ctx, tx, after, c, caller, domain.StateCreated, c.State); err != nil {
		return 0, err
	}

	return id, nil
}

// ApproveAsVenue is the venue's confirmation of a concert. It moves
// OrganiserApproved to PendingArtistApproval.
//
// Returns:
//   - domain.State: the new state.
//   - error: concert.ErrConcertNotFound if id is unknown.
//   - error: domain.ErrUnauthorized if caller is not the concert's venue or
//     is no longer an approved venue.
//   - error: domain.ErrInvalidStateTransition if the concert is not
//     waiting for the venue.
func (s *Service) ApproveAsVenue(ctx context.Context, caller domain.Identity, id int64) (domain.State, error) {
	const op = "service.concert.ApproveAsVenue"

	state, err := s.approve(ctx, caller, id, domain.RoleVenue)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	return state, nil
}

// ApproveAsArtist is the artist's confirmation. The concert opens for
// sale: PreSale when it has presale capacity, GeneralSale otherwise.
//
// Returns:
//   - domain.State: the new state.
//   - error: concert.ErrConcertNotFound if id is unknown.
//   - error: domain.ErrUnauthorized if caller is not the concert's artist
//     or is no longer an approved artist.
//   - error: domain.ErrInvalidStateTransition if the concert is not
//     waiting for the artist.
func (s *Service) ApproveAsArtist(ctx context.Context, caller domain.Identity, id int64) (domain.State, error) {
	const op = "service.concert.ApproveAsArtist"

	state, err := s.approve(ctx, caller, id, domain.RoleArtist)
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	return state, nil
}

func (s *Service) approve(ctx context.Context, caller domain.Identity, id int64, role domain.Role) (domain.State, error) {
	var state domain.State

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		c, err := lock(ctx, tx, id)
		if err != nil {
			return err
		}

		var party domain.Identity
		var want, next domain.State
		switch role {
		case domain.RoleVenue:
			party, want, next = c.Venue, domain.StateOrganiserApproved, domain.StatePendingArtistApproval
		case domain.RoleArtist:
			party, want, next = c.Artist, domain.StatePendingArtistApproval, domain.StateGeneralSale
			if c.PresaleCapacity > 0 {
				next = domain.StatePreSale
			}
		}

		if caller != party {
			return domain.ErrUnauthorized
		}
		if err := requireRole(ctx, tx, role, caller); err != nil {
			return err
		}
		if c.State != want {
			return fmt.Errorf("%w: %s approval needs %s, concert is %s",
				domain.ErrInvalidStateTransition, role, want, c.State)
		}

		return s.move(ctx, tx, after, c, caller, next, &state)
	})

	return state, err
}

// OrganiserUpdateState applies one of the transitions the organiser drives
// by hand: closing presale early (PreSale to GeneralSale), closing sales
// (GeneralSale to SoldOut), going live (SoldOut to Live) and cancelling any
// concert that has not gone live.
//
// Returns:
//   - domain.State: the new state.
//   - error: concert.ErrConcertNotFound if id is unknown.
//   - error: domain.ErrUnauthorized if caller is not the concert organiser.
//   - error: domain.ErrInvalidStateTransition for any other move.
func (s *Service) OrganiserUpdateState(
	ctx context.Context,
	caller domain.Identity,
	id int64,
	target domain.State,
) (domain.State, error) {
	const op = "service.concert.OrganiserUpdateState"

	var state domain.State

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		c, err := lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if caller != c.Organiser {
			return domain.ErrUnauthorized
		}
		if !domain.OrganiserMayMove(c.State, target) {
			return fmt.Errorf("%w: organiser cannot move %s to %s",
				domain.ErrInvalidStateTransition, c.State, target)
		}

		return s.move(ctx, tx, after, c, caller, target, &state)
	})
	if err != nil {
		return "", fmt.Errorf("%s:%w", op, err)
	}

	return state, nil
}

// move persists c in state next and emits the notification.
func (s *Service) move(
	ctx context.Context,
	tx repository.Tx,
	after func(uow.AfterCommit),
	c *domain.Concert,
	actor domain.Identity,
	next domain.State,
	out *domain.State,
) error {
	from := c.State
	c.State = next

	if err := tx.Concerts().Update(ctx, c); err != nil {
		return err
	}
	if err := s.emit(ctx, tx, after, c, actor, from, next); err != nil {
		return err
	}
	s.invalidate(after, c.ID)

	*out = next

	if next == domain.StateCancelled {
		id, balance := c.ID, c.AccumulatedBalance
		after(func(ctx context.Context) {
			// No refunds: the balance stays frozen on the record.
			s.log.Info("concert cancelled", slog.Int64("concert_id", id), slog.String("balance", balance.String()))
		})
	}

	return nil
}

func requireRole(ctx context.Context, tx repository.Tx, role domain.Role, id domain.Identity) error {
	ok, err := tx.Roles().IsApproved(ctx, role, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s is not an approved %s", domain.ErrUnauthorized, id, role)
	}
	return nil
}
