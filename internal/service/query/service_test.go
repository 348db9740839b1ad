package query

import (
	"context"
	"errors"
	"testing"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/ledger"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/repository/memory"
	"github.com/shopspring/decimal"
)

var buyer = domain.MustIdentity("0x00000000000000000000000000000000000000c1")

// seed stores one concert with two journaled status changes and one ticket.
func seed(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	w := ledger.NewWriter(nil)

	err := store.RunTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		id, err := tx.Concerts().Create(ctx, &domain.Concert{
			State:               domain.StateGeneralSale,
			TotalTicketCapacity: 10,
			GeneralUnitPrice:    decimal.NewFromInt(5),
		})
		if err != nil {
			return err
		}
		for _, s := range []domain.State{domain.StateOrganiserApproved, domain.StateGeneralSale} {
			if _, err := w.Append(ctx, tx.Journal(), ledger.Event{Kind: ledger.KindConcertStatus, ConcertID: id, State: s}); err != nil {
				return err
			}
		}
		if _, err := tx.Tokens().Mint(ctx, &domain.Token{Kind: domain.TokenTicket, ConcertID: id, Owner: buyer}); err != nil {
			return err
		}
		return tx.Documents().Put(ctx, &domain.Document{Hash: ledger.ContentHash([]byte("doc")).String(), Body: []byte("doc")})
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return store
}

func TestConcertReads(t *testing.T) {
	ctx := context.Background()
	s := New(seed(t), nil, Config{})

	c, err := s.GetConcert(ctx, 0)
	if err != nil || c.TotalTicketCapacity != 10 {
		t.Fatalf("GetConcert = %+v, %v", c, err)
	}
	if st, err := s.GetState(ctx, 0); err != nil || st != domain.StateGeneralSale {
		t.Errorf("GetState = %s, %v", st, err)
	}
	if _, err := s.GetConcert(ctx, 1); !errors.Is(err, ErrConcertNotFound) {
		t.Errorf("GetConcert(1) error = %v", err)
	}
	if _, err := s.GetState(ctx, 1); !errors.Is(err, ErrConcertNotFound) {
		t.Errorf("GetState(1) error = %v", err)
	}
	if next, _ := s.NextConcertID(ctx); next != 1 {
		t.Errorf("NextConcertID = %d", next)
	}
	if list, _ := s.ListConcerts(ctx, 0, 0); len(list) != 1 {
		t.Errorf("ListConcerts = %d concerts", len(list))
	}

	holders, err := s.Holders(ctx, domain.TokenTicket, 0)
	if err != nil || len(holders) != 1 || holders[0] != buyer {
		t.Errorf("Holders = %v, %v", holders, err)
	}
	if _, err := s.Holders(ctx, domain.TokenTicket, 3); !errors.Is(err, ErrConcertNotFound) {
		t.Errorf("Holders(3) error = %v", err)
	}
}

func TestNotificationsAndSettlement(t *testing.T) {
	ctx := context.Background()
	s := New(seed(t), nil, Config{})

	notes, err := s.Notifications(ctx, 0, 0, 0)
	if err != nil || len(notes) != 2 || notes[1].State != domain.StateGeneralSale || notes[1].Seq != 1 {
		t.Fatalf("Notifications = %+v, %v", notes, err)
	}
	if notes, _ := s.Notifications(ctx, 0, 1, 0); len(notes) != 1 {
		t.Errorf("Notifications from seq 1 = %+v", notes)
	}

	if _, err := s.Settlement(ctx, 0); !errors.Is(err, ErrNotSettled) {
		t.Errorf("Settlement error = %v, want ErrNotSettled", err)
	}
}

func TestDocumentAndLedger(t *testing.T) {
	ctx := context.Background()
	s := New(seed(t), nil, Config{})

	uri := ledger.ContentURI(ledger.ContentHash([]byte("doc")))
	doc, err := s.Document(ctx, uri)
	if err != nil || string(doc.Body) != "doc" {
		t.Fatalf("Document = %+v, %v", doc, err)
	}
	if _, err := s.Document(ctx, "not-a-hash"); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("Document(bad) error = %v", err)
	}
	if _, err := s.Document(ctx, ledger.ContentHash([]byte("other")).String()); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("Document(unknown) error = %v", err)
	}

	rep, err := s.VerifyLedger(ctx)
	if err != nil || !rep.Valid || rep.Entries != 2 || rep.Head == "" {
		t.Errorf("VerifyLedger = %+v, %v", rep, err)
	}

	bal, err := s.Balance(ctx, buyer)
	if err != nil || !bal.Balance.IsZero() || bal.Owner != buyer {
		t.Errorf("Balance = %+v, %v", bal, err)
	}
}
