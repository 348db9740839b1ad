package concert

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/issuer"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/uow"
	"github.com/shopspring/decimal"
)

// PurchaseRequest carries the attached payment and the metadata URIs of the
// two tokens a purchase mints. Empty URIs fall back to the concert's
// metadata URI.
type PurchaseRequest struct {
	TicketURI    string
	SupporterURI string
	Value        decimal.Decimal
}

type Purchase struct {
	ConcertID   int64           `json:"concert_id"`
	Buyer       domain.Identity `json:"buyer"`
	TicketID    int64           `json:"ticket_id"`
	SupporterID int64           `json:"supporter_id"`
	Price       decimal.Decimal `json:"price"`
	Overpayment decimal.Decimal `json:"overpayment"`
	State       domain.State    `json:"state"`
	// Transitions are the states the purchase moved the concert through.
	Transitions []domain.State `json:"transitions,omitempty"`
}

type purchaseDetail struct {
	Buyer       string `cbor:"1,keyasint"`
	TicketID    int64  `cbor:"2,keyasint"`
	SupporterID int64  `cbor:"3,keyasint"`
	Price       string `cbor:"4,keyasint"`
	Overpayment string `cbor:"5,keyasint"`
}

// BuyTicket sells one ticket at the current tier price. The buyer receives
// one ticket token and one supporter token, both minted by the engine
// identity with the artist as royalty recipient. Payment above the price is
// kept by the platform. Selling the last presale ticket moves the concert
// to GeneralSale; selling the last ticket moves it to SoldOut.
//
// Parameters:
//   - ctx: request-scoped context.
//   - caller: the buyer.
//   - id: concert id.
//   - req: attached payment in wei and token metadata URIs.
//
// Returns:
//   - *Purchase: minted token ids, price paid and resulting state.
//   - error: concert.ErrConcertNotFound if id is unknown.
//   - error: domain.ErrSaleNotOpen outside PreSale and GeneralSale.
//   - error: domain.ErrInsufficientPayment if value is below the tier price.
//   - error: issuer.ErrMinterNotApproved if the engine may not mint.
//   - error: concert.RateLimitedError if caller is buying too fast.
func (s *Service) BuyTicket(
	ctx context.Context,
	caller domain.Identity,
	id int64,
	req PurchaseRequest,
) (*Purchase, error) {
	const op = "service.concert.BuyTicket"

	if s.deps.Limiter != nil {
		ok, _, retry, err := s.deps.Limiter.Allow(ctx, caller.String())
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s:%w", op, RateLimitedError{RetryAfter: retry})
		}
	}

	var p *Purchase

	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		c, err := lock(ctx, tx, id)
		if err != nil {
			return err
		}

		if !c.State.SaleOpen() {
			return fmt.Errorf("%w: concert is %s", domain.ErrSaleNotOpen, c.State)
		}

		price := c.UnitPrice()
		if !domain.IsWei(req.Value) || req.Value.LessThan(price) {
			return fmt.Errorf("%w: price is %s wei, got %s", domain.ErrInsufficientPayment, price, req.Value)
		}

		from := c.State
		moved := c.RecordSale(price)

		ticketID, err := s.tickets.Mint(ctx, tx, s.cfg.Engine, issuer.MintRequest{
			Owner:            caller,
			ConcertID:        c.ID,
			UnitPrice:        price,
			MetadataURI:      orDefault(req.TicketURI, c.MetadataURI),
			RoyaltyRecipient: c.Artist,
		})
		if err != nil {
			return err
		}

		supporterID, err := s.supporters.Mint(ctx, tx, s.cfg.Engine, issuer.MintRequest{
			Owner:            caller,
			ConcertID:        c.ID,
			UnitPrice:        price,
			MetadataURI:      orDefault(req.SupporterURI, c.MetadataURI),
			RoyaltyRecipient: c.Artist,
		})
		if err != nil {
			return err
		}

		over := req.Value.Sub(price)
		if over.IsPositive() {
			if err := tx.Accounts().Credit(ctx, s.cfg.Engine, over); err != nil {
				return fmt.Errorf("%w: retain overpayment: %v", domain.ErrTransferFailure, err)
			}
		}

		if err := tx.Concerts().Update(ctx, c); err != nil {
			return err
		}

		if _, err := s.journal.Append(ctx, tx.Journal(), ledger.Event{
			Kind:      ledger.KindTicketPurchased,
			ConcertID: c.ID,
			Actor:     caller,
			State:     c.State,
			Detail: purchaseDetail{
				Buyer:       caller.String(),
				TicketID:    ticketID,
				SupporterID: supporterID,
				Price:       price.String(),
				Overpayment: over.String(),
			},
		}); err != nil {
			return err
		}

		for _, next := range moved {
			if err := s.emit(ctx, tx, after, c, s.cfg.Engine, from, next); err != nil {
				return err
			}
			from = next
		}
		s.invalidate(after, c.ID)

		p = &Purchase{
			ConcertID:   c.ID,
			Buyer:       caller,
			TicketID:    ticketID,
			SupporterID: supporterID,
			Price:       price,
			Overpayment: over,
			State:       c.State,
			Transitions: moved,
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	s.log.Debug("ticket sold",
		slog.Int64("concert_id", p.ConcertID),
		slog.Int64("ticket_id", p.TicketID),
		slog.String("price", p.Price.String()),
	)

	return p, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
