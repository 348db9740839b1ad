package concert

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kirinyoku/gigledger/internal/codec"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/uow"
)

// DetailsLayout is the datetime format of every Details field.
const DetailsLayout = "2006-01-02 15:04:05"

// Details describe a concert for ticket buyers. They are stored as a
// content-addressed document whose URI becomes the concert metadata URI.
// Presale times are optional.
type Details struct {
	Name             string `cbor:"1,keyasint" json:"concert_name"`
	Description      string `cbor:"2,keyasint" json:"concert_description"`
	ConcertStart     string `cbor:"3,keyasint" json:"concert_start_datetime"`
	PresaleStart     string `cbor:"4,keyasint,omitempty" json:"pre_sale_start_datetime,omitempty"`
	PresaleEnd       string `cbor:"5,keyasint,omitempty" json:"pre_sale_end_datetime,omitempty"`
	GeneralSaleStart string `cbor:"6,keyasint" json:"general_sale_start_datetime"`
}

type documentDetail struct {
	Hash string `cbor:"1,keyasint"`
}

// Validate checks the datetimes against now: presale start no later than
// presale end, presale end no later than general sale start, and every
// given time in the future.
func (d Details) Validate(now time.Time) error {
	if strings.TrimSpace(d.Name) == "" {
		return invalidDetails("concert name is required")
	}

	concertStart, err := parseDetailTime(d.ConcertStart)
	if err != nil || concertStart.IsZero() {
		return invalidDetails("concert start is required as %q", DetailsLayout)
	}
	generalStart, err := parseDetailTime(d.GeneralSaleStart)
	if err != nil || generalStart.IsZero() {
		return invalidDetails("general sale start is required as %q", DetailsLayout)
	}
	presaleStart, err := parseDetailTime(d.PresaleStart)
	if err != nil {
		return invalidDetails("invalid presale start")
	}
	presaleEnd, err := parseDetailTime(d.PresaleEnd)
	if err != nil {
		return invalidDetails("invalid presale end")
	}

	if !presaleStart.IsZero() && !presaleEnd.IsZero() && presaleStart.After(presaleEnd) {
		return invalidDetails("presale start must be before presale end")
	}
	if !presaleEnd.IsZero() && presaleEnd.After(generalStart) {
		return invalidDetails("presale end must be before general sale start")
	}
	if !presaleStart.IsZero() && presaleStart.Before(now) {
		return invalidDetails("presale start must be in the future")
	}
	if generalStart.Before(now) {
		return invalidDetails("general sale start must be in the future")
	}
	if concertStart.Before(now) {
		return invalidDetails("concert start must be in the future")
	}

	return nil
}

// CreateConcertWithDetails stores details as a metadata document and
// creates the concert pointing at it, in one transaction. terms.MetadataURI
// is replaced by the document URI.
//
// Returns:
//   - int64: the new concert id.
//   - string: the metadata URI.
//   - error: as CreateConcert, plus domain.ErrInvalidConfiguration for
//     invalid details.
func (s *Service) CreateConcertWithDetails(
	ctx context.Context,
	caller domain.Identity,
	terms domain.Terms,
	details Details,
) (int64, string, error) {
	const op = "service.concert.CreateConcertWithDetails"

	var id int64
	err := s.uow.Do(ctx, func(ctx context.Context, tx repository.Tx, after func(uow.AfterCommit)) error {
		if err := requireRole(ctx, tx, domain.RoleOrganiser, caller); err != nil {
			return err
		}
		if err := details.Validate(s.cfg.Now()); err != nil {
			return err
		}

		body, err := codec.Marshal(details)
		if err != nil {
			return err
		}
		h := ledger.ContentHash(body)

		if err := tx.Documents().Put(ctx, &domain.Document{Hash: h.String(), Body: body}); err != nil {
			return err
		}
		if _, err := s.journal.Append(ctx, tx.Journal(), ledger.Event{
			Kind:      ledger.KindDocumentStored,
			ConcertID: ledger.NoConcert,
			Actor:     caller,
			Detail:    documentDetail{Hash: h.String()},
		}); err != nil {
			return err
		}

		terms.MetadataURI = ledger.ContentURI(h)
		id, err = s.create(ctx, tx, after, caller, terms)
		return err
	})
	if err != nil {
		return 0, "", fmt.Errorf("%s:%w", op, err)
	}

	return id, terms.MetadataURI, nil
}

// DecodeDetails reads a stored metadata document body.
func DecodeDetails(body []byte) (Details, error) {
	var d Details
	if err := codec.Unmarshal(body, &d); err != nil {
		return Details{}, fmt.Errorf("service.concert.DecodeDetails:%w", err)
	}
	return d, nil
}

func parseDetailTime(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(DetailsLayout, s, time.UTC)
}

func invalidDetails(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}
