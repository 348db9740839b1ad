package concert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/uow"
	"github.com/shopspring/decimal"
)

// PayoutPolicy decides who may trigger a payout.
type PayoutPolicy string

const (
	PayoutByOrganiser           PayoutPolicy = "organiser"
	PayoutByOperator            PayoutPolicy = "operator"
	PayoutByOrganiserOrOperator PayoutPolicy = "organiser_or_operator"
)

func ParsePayoutPolicy(s string) (PayoutPolicy, error) {
	switch p := PayoutPolicy(s); p {
	case PayoutByOrganiser, PayoutByOperator, PayoutByOrganiserOrOperator:
		return p, nil
	case "":
		return PayoutByOrganiser, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

func (s *Service) mayPayout(caller domain.Identity, c *domain.Concert) bool {
	switch s.cfg.PayoutPolicy {
	case PayoutByOperator:
		return s.cfg.Operators.Has(caller)
	case PayoutByOrganiserOrOperator:
		return caller == c.Organiser || s.cfg.Operators.Has(caller)
	default:
		return caller == c.Organiser
	}
}

// settlementDetail is the journaled form of a settlement. Amounts are
// decimal strings so the encoding does not depend on decimal internals.
type settlementDetail struct {
	Balance   string `cbor:"1,keyasint"`
	Artist    string `cbor:"2,keyasint"`
	Organiser string `cbor:"3,keyasint"`
	Venue     string `cbor:"4,keyasint"`
	Retained  string `cbor:"5,keyasint"`
}

// TriggerPayout settles a live concert once: the accumulated balance is
// split by the payout percentages, rounded down, and credited to artist,
// organiser and venue; the rounding remainder is credited to the platform.
// The concert ends Settled with a zero balance.
//
// Parameters:
//   - ctx: request-scoped context.
//   - caller: must satisfy the configured PayoutPolicy.
//   - id: concert id.
//
// Returns:
//   - *domain.Settlement: the amounts paid.
//   - error: concert.ErrConcertNotFound if id is unknown.
//   - error: domain.ErrUnauthorized if caller may not trigger the payout.
//   - error: domain.ErrAlreadySettled on a second payout.
//   - error: domain.ErrInvalidStateTransition if the concert is not Live.
//   - error: domain.ErrTransferFailure if a credit fails; nothing is paid.
func (s *Service) TriggerPayout(ctx context.Context, caller domain.Identity, id int64) (*domain.Settlement, error) {
	const op = "service.concert.TriggerPayout"

	var st *domain.Settlement

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		c, err := lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if !s.mayPayout(caller, c) {
			return domain.ErrUnauthorized
		}
		switch c.State {
		case domain.StateLive:
		case domain.StateSettled:
			return domain.ErrAlreadySettled
		default:
			return fmt.Errorf("%w: payout needs %s, concert is %s",
				domain.ErrInvalidStateTransition, domain.StateLive, c.State)
		}

		balance := c.AccumulatedBalance
		p := domain.SplitConcert(c)

		credits := []struct {
			to     domain.Identity
			amount decimal.Decimal
		}{
			{c.Artist, p.Artist},
			{c.Organiser, p.Organiser},
			{c.Venue, p.Venue},
			{s.cfg.Engine, p.Retained},
		}
		for _, cr := range credits {
			if cr.amount.IsZero() {
				continue
			}
			if err := tx.Accounts().Credit(ctx, cr.to, cr.amount); err != nil {
				return fmt.Errorf("%w: credit %s: %v", domain.ErrTransferFailure, cr.to, err)
			}
		}

		c.AccumulatedBalance = decimal.Zero
		from := c.State
		c.State = domain.StateSettled
		if err := tx.Concerts().Update(ctx, c); err != nil {
			return err
		}

		e, err := s.journal.Append(ctx, tx.Journal(), ledger.Event{
			Kind:      ledger.KindSettlement,
			ConcertID: c.ID,
			Actor:     caller,
			State:     c.State,
			Detail: settlementDetail{
				Balance:   balance.String(),
				Artist:    p.Artist.String(),
				Organiser: p.Organiser.String(),
				Venue:     p.Venue.String(),
				Retained:  p.Retained.String(),
			},
		})
		if err != nil {
			return err
		}

		if err := s.emit(ctx, tx, after, c, caller, from, c.State); err != nil {
			return err
		}
		s.invalidate(after, c.ID)

		st = &domain.Settlement{
			ConcertID: c.ID,
			Balance:   balance,
			Payouts:   p,
			SettledBy: caller,
			SettledAt: e.CreatedAt,
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.Info("concert settled",
		slog.Int64("concert_id", st.ConcertID),
		slog.String("balance", st.Balance.String()),
		slog.String("artist", st.Payouts.Artist.String()),
		slog.String("organiser", st.Payouts.Organiser.String()),
		slog.String("venue", st.Payouts.Venue.String()),
		slog.String("retained", st.Payouts.Retained.String()),
	)

	return st, nil
}

// DecodeSettlement rebuilds a settlement from its journal entry.
func DecodeSettlement(e *domain.JournalEntry) (*domain.Settlement, error) {
	const op = "service.concert.DecodeSettlement"

	if e.Kind != ledger.KindSettlement {
		return nil, fmt.Errorf("%s: entry %d is %s", op, e.Seq, e.Kind)
	}

	var d settlementDetail
	if err := ledger.DecodeDetail(e, &d); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	amounts := make([]decimal.Decimal, 5)
	for i, s := range []string{d.Balance, d.Artist, d.Organiser, d.Venue, d.Retained} {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		amounts[i] = v
	}

	return &domain.Settlement{
		ConcertID: e.ConcertID,
		Balance:   amounts[0],
		Payouts: domain.Payouts{
			Artist:    amounts[1],
			Organiser: amounts[2],
			Venue:     amounts[3],
			Retained:  amounts[4],
		},
		SettledBy: e.Actor,
		SettledAt: e.CreatedAt,
	}, nil
}
