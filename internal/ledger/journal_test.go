package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository"
	"github.com/kirinyoku/gigledger/internal/repository/memory"
)

type statusDetail struct {
	From string `cbor:"1,keyasint"`
}

func appendAll(t *testing.T, store *memory.Store, w *Writer, events ...Event) []domain.JournalEntry {
	t.Helper()
	ctx := context.Background()

	err := store.RunTx(ctx, func(ctx context.Context, tx repository.Tx) error {
		for _, ev := range events {
			if _, err := w.Append(ctx, tx.Journal(), ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := store.Reader().Journal().List(ctx, repository.JournalFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return entries
}

func fixedClock() func() time.Time {
	at := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	return func() time.Time {
		at = at.Add(time.Second)
		return at
	}
}

func TestAppendBuildsVerifiableChain(t *testing.T) {
	store := memory.NewStore()
	w := NewWriter(fixedClock())

	entries := appendAll(t, store, w,
		Event{Kind: KindConcertStatus, ConcertID: 0, State: domain.StateOrganiserApproved},
		Event{Kind: KindConcertStatus, ConcertID: 0, State: domain.StatePendingArtistApproval, Detail: statusDetail{From: "organiser_approved"}},
		Event{Kind: KindRoleApproved, ConcertID: NoConcert, Detail: map[string]string{"role": "artist"}},
	)
	if len(entries) != 3 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].PrevHash != nil {
		t.Errorf("genesis entry has prev hash %x", entries[0].PrevHash)
	}
	if entries[0].CreatedAt.Nanosecond()%1000 != 0 {
		t.Errorf("timestamp not truncated to microseconds: %v", entries[0].CreatedAt)
	}

	head, err := Verify(entries)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if head.String() != HashOf(entries[2]).String() {
		t.Errorf("head %s does not match last entry", head)
	}

	var d statusDetail
	if err := DecodeDetail(&entries[1], &d); err != nil || d.From != "organiser_approved" {
		t.Errorf("DecodeDetail = %+v, %v", d, err)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	store := memory.NewStore()
	w := NewWriter(fixedClock())

	entries := appendAll(t, store, w,
		Event{Kind: KindConcertStatus, ConcertID: 0, State: domain.StateOrganiserApproved},
		Event{Kind: KindTicketPurchased, ConcertID: 0, State: domain.StateGeneralSale},
		Event{Kind: KindConcertStatus, ConcertID: 0, State: domain.StateSoldOut},
	)

	cases := map[string]func([]domain.JournalEntry){
		"state rewritten": func(e []domain.JournalEntry) { e[1].State = domain.StateSoldOut },
		"actor rewritten": func(e []domain.JournalEntry) { e[0].Actor = "0x00000000000000000000000000000000000000ff" },
		"entry dropped":   func(e []domain.JournalEntry) { copy(e[1:], e[2:]) },
		"time rewritten":  func(e []domain.JournalEntry) { e[2].CreatedAt = e[2].CreatedAt.Add(time.Hour) },
	}
	for name, tamper := range cases {
		cp := append([]domain.JournalEntry(nil), entries...)
		tamper(cp)
		if _, err := Verify(cp); !errors.Is(err, ErrChainBroken) {
			t.Errorf("%s: Verify error = %v, want ErrChainBroken", name, err)
		}
	}
}

func TestContentHashRoundTrip(t *testing.T) {
	h := ContentHash([]byte(`{"name":"gig"}`))
	uri := ContentURI(h)

	parsed, err := ParseContentHash(uri)
	if err != nil || parsed != h {
		t.Fatalf("ParseContentHash(%q) = %s, %v", uri, parsed, err)
	}
	if parsed, err = ParseContentHash(h.String()); err != nil || parsed != h {
		t.Fatalf("ParseContentHash(bare) = %s, %v", parsed, err)
	}
	if _, err := ParseContentHash("blake3:beef"); err == nil {
		t.Error("short hash accepted")
	}
	if ContentHash([]byte("a")) == ContentHash([]byte("b")) {
		t.Error("distinct documents share a hash")
	}
}

func TestDomainsAreSeparated(t *testing.T) {
	body := []byte("same bytes")
	if keyedHash(journalDomainKey, body) == keyedHash(documentDomainKey, body) {
		t.Error("journal and document domains produce the same hash")
	}
}
