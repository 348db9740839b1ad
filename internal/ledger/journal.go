// Package ledger seals every state-changing operation into a single
// append-only hash chain. Each entry's hash covers the previous entry's hash
// and the deterministic CBOR encoding of the entry itself, so rewriting any
// past entry breaks every hash after it.
package ledger

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/gigledger/internal/codec"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/repository"
)

const (
	KindConcertStatus   = "concert.status"
	KindTicketPurchased = "ticket.purchased"
	KindSettlement      = "concert.settled"
	KindRoleApproved    = "role.approved"
	KindRoleRevoked     = "role.revoked"
	KindMinterApproved  = "minter.approved"
	KindDocumentStored  = "document.stored"
)

// NoConcert is the ConcertID of entries that are not about a concert, such
// as role approvals.
const NoConcert int64 = -1

var ErrChainBroken = errors.New("ledger chain broken")

// Event is what callers append. Detail is encoded with codec and kept
// verbatim as the entry payload.
type Event struct {
	Kind      string
	ConcertID int64
	Actor     domain.Identity
	State     domain.State
	Detail    any
}

// record is the hashed form of an entry. Field keys are fixed integers so
// renaming a Go field never changes a hash.
type record struct {
	Seq       int64  `cbor:"1,keyasint"`
	Kind      string `cbor:"2,keyasint"`
	ConcertID int64  `cbor:"3,keyasint"`
	Actor     string `cbor:"4,keyasint"`
	State     string `cbor:"5,keyasint"`
	Payload   []byte `cbor:"6,keyasint"`
	At        int64  `cbor:"7,keyasint"`
}

type Writer struct {
	now func() time.Time
}

func NewWriter(now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{now: now}
}

// Append seals ev onto the end of the journal held by j.
func (w *Writer) Append(ctx context.Context, j repository.Journal, ev Event) (*domain.JournalEntry, error) {
	const op = "ledger.Writer.Append"

	var payload []byte
	if ev.Detail != nil {
		b, err := codec.Marshal(ev.Detail)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		payload = b
	}

	headSeq, headHash, err := j.Head(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	prev, err := HashFromBytes(headHash)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	// Postgres keeps microseconds; truncate so a stored entry re-hashes the same.
	at := w.now().UTC().Truncate(time.Microsecond)

	e := &domain.JournalEntry{
		Seq:       headSeq + 1,
		Kind:      ev.Kind,
		ConcertID: ev.ConcertID,
		Actor:     ev.Actor,
		State:     ev.State,
		Payload:   payload,
		CreatedAt: at,
	}
	if !prev.IsZero() {
		e.PrevHash = prev[:]
	}

	h, err := seal(prev, e)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}
	e.Hash = h[:]

	if err := j.Append(ctx, e); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return e, nil
}

// Verify recomputes the chain over entries, which must start at sequence 0
// and be in order. It returns the head hash on success.
func Verify(entries []domain.JournalEntry) (Hash, error) {
	var prev Hash
	for i := range entries {
		e := &entries[i]
		if e.Seq != int64(i) {
			return prev, fmt.Errorf("%w: expected seq %d, found %d", ErrChainBroken, i, e.Seq)
		}

		linked, err := HashFromBytes(e.PrevHash)
		if err != nil || linked != prev {
			return prev, fmt.Errorf("%w: seq %d does not link to its predecessor", ErrChainBroken, e.Seq)
		}

		h, err := seal(prev, e)
		if err != nil {
			return prev, fmt.Errorf("%w: seq %d: %v", ErrChainBroken, e.Seq, err)
		}
		if !bytes.Equal(h[:], e.Hash) {
			return prev, fmt.Errorf("%w: seq %d hash mismatch", ErrChainBroken, e.Seq)
		}
		prev = h
	}
	return prev, nil
}

// HashOf returns the stored hash of e. A malformed hash yields the zero Hash.
func HashOf(e domain.JournalEntry) Hash {
	h, _ := HashFromBytes(e.Hash)
	return h
}

// DecodeDetail decodes an entry payload written from an Event.Detail.
func DecodeDetail(e *domain.JournalEntry, v any) error {
	if len(e.Payload) == 0 {
		return nil
	}
	return codec.Unmarshal(e.Payload, v)
}

func seal(prev Hash, e *domain.JournalEntry) (Hash, error) {
	b, err := codec.Marshal(record{
		Seq:       e.Seq,
		Kind:      e.Kind,
		ConcertID: e.ConcertID,
		Actor:     string(e.Actor),
		State:     string(e.State),
		Payload:   nilIfEmpty(e.Payload),
		At:        e.CreatedAt.UTC().UnixMicro(),
	})
	if err != nil {
		return Hash{}, err
	}
	return chainHash(prev, b), nil
}

func nilIfEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
