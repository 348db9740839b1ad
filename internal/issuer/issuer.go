// Package issuer mints the per-purchase ticket and supporter tokens. An
// Issuer serves one token kind; only identities approved as its minter may
// mint, and minting always happens inside the caller's transaction so a
// failed purchase leaves no token behind.
package issuer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/uow"
	"github.com/shopspring/decimal"
)

type MintRequest struct {
	Owner            domain.Identity
	ConcertID        int64
	UnitPrice        decimal.Decimal
	MetadataURI      string
	RoyaltyRecipient domain.Identity
}

type minterDetail struct {
	Kind   string `cbor:"1,keyasint"`
	Minter string `cbor:"2,keyasint"`
}

type Issuer struct {
	kind      domain.TokenKind
	uow       *uow.UoW
	journal   *ledger.Writer
	operators domain.IdentitySet
	log       *slog.Logger
}

func New(
	kind domain.TokenKind,
	store repository.Store,
	journal *ledger.Writer,
	operators domain.IdentitySet,
	log *slog.Logger,
) *Issuer {
	if log == nil {
		log = slog.Default()
	}

	return &Issuer{
		kind:      kind,
		uow:       uow.NewUoW(store),
		journal:   journal,
		operators: operators,
		log:       log.With(slog.String("issuer", string(kind))),
	}
}

func (i *Issuer) Kind() domain.TokenKind { return i.kind }

// Mint creates one token inside tx and returns its id.
//
// Parameters:
//   - ctx: request-scoped context.
//   - tx: the enclosing transaction.
//   - minter: the identity asking to mint.
//   - req: owner, concert and token attributes.
//
// Returns:
//   - int64: the new token id, sequential per kind from 0.
//   - error: issuer.ErrMinterNotApproved if minter was never approved.
func (i *Issuer) Mint(ctx context.Context, tx repository.Tx, minter domain.Identity, req MintRequest) (int64, error) {
	const op = "issuer.Issuer.Mint"

	ok, err := tx.Tokens().IsMinter(ctx, i.kind, minter)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}
	if !ok {
		return 0, fmt.Errorf("%s:%w", op, ErrMinterNotApproved)
	}

	id, err := tx.Tokens().Mint(ctx, &domain.Token{
		Kind:             i.kind,
		ConcertID:        req.ConcertID,
		Owner:            req.Owner,
		UnitPrice:        req.UnitPrice,
		MetadataURI:      req.MetadataURI,
		RoyaltyRecipient: req.RoyaltyRecipient,
	})
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return id, nil
}

// SetApprovedMinter lets minter mint tokens of this kind.
//
// Returns:
//   - error: domain.ErrUnauthorized if caller is not a platform operator.
func (i *Issuer) SetApprovedMinter(ctx context.Context, caller, minter domain.Identity) error {
	const op = "issuer.Issuer.SetApprovedMinter"

	if !i.operators.Has(caller) {
		return fmt.Errorf("%s:%w", op, domain.ErrUnauthorized)
	}

	if err := i.approve(ctx, caller, minter); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

// EnsureMinter approves minter on behalf of the platform unless it already
// is one. It is used at start-up for the engine identity.
func (i *Issuer) EnsureMinter(ctx context.Context, minter domain.Identity) error {
	const op = "issuer.Issuer.EnsureMinter"

	ok, err := i.uow.Reader().Tokens().IsMinter(ctx, i.kind, minter)
	if err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}
	if ok {
		return nil
	}

	if err := i.approve(ctx, "", minter); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}

func (i *Issuer) approve(ctx context.Context, actor, minter domain.Identity) error {
	err := i.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := tx.Tokens().SetMinter(ctx, i.kind, minter); err != nil {
			return err
		}

		_, err := i.journal.Append(ctx, tx.Journal(), ledger.Event{
			Kind:      ledger.KindMinterApproved,
			ConcertID: ledger.NoConcert,
			Actor:     actor,
			Detail:    minterDetail{Kind: string(i.kind), Minter: string(minter)},
		})
		return err
	})
	if err != nil {
		return err
	}

	i.log.Info("minter approved", slog.String("minter", minter.String()))

	return nil
}

// Token returns the token with the given id.
//
// Returns:
//   - error: issuer.ErrTokenNotFound if no such token was minted.
func (i *Issuer) Token(ctx context.Context, id int64) (*domain.Token, error) {
	const op = "issuer.Issuer.Token"

	tok, err := i.uow.Reader().Tokens().Get(ctx, i.kind, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrTokenNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return tok, nil
}

func (i *Issuer) OwnerOf(ctx context.Context, id int64) (domain.Identity, error) {
	tok, err := i.Token(ctx, id)
	if err != nil {
		return "", err
	}
	return tok.Owner, nil
}

// Holders lists the owner of every token minted for concertID, in mint
// order. An identity that bought several tickets appears once per token.
func (i *Issuer) Holders(ctx context.Context, concertID int64) ([]domain.Identity, error) {
	const op = "issuer.Issuer.Holders"

	holders, err := i.uow.Reader().Tokens().HoldersByConcert(ctx, i.kind, concertID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return holders, nil
}
