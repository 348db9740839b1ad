package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleOrganiser Role = "organiser"
	RoleVenue     Role = "venue"
	RoleArtist    Role = "artist"
)

func (r Role) Valid() bool {
	switch r {
	case RoleOrganiser, RoleVenue, RoleArtist:
		return true
	}
	return false
}

type TokenKind string

const (
	TokenTicket    TokenKind = "ticket"
	TokenSupporter TokenKind = "supporter"
)

func (k TokenKind) Valid() bool {
	return k == TokenTicket || k == TokenSupporter
}

// Concert is the durable per-event record. Artist, venue, organiser, the
// payout percentages, capacities, prices and MetadataURI never change after
// creation; the counters, AccumulatedBalance and State are owned by the
// lifecycle, sale and settlement operations.
type Concert struct {
	ID        int64
	Artist    Identity
	Venue     Identity
	Organiser Identity

	ArtistPayoutPct    int
	OrganiserPayoutPct int
	VenuePayoutPct     int

	TotalTicketCapacity int
	PresaleCapacity     int
	PresaleUnitPrice    decimal.Decimal
	GeneralUnitPrice    decimal.Decimal

	TicketsSold        int
	PresaleTicketsSold int
	AccumulatedBalance decimal.Decimal

	State       State
	MetadataURI string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Terms are the creation parameters of a concert.
type Terms struct {
	Artist             Identity
	Venue              Identity
	ArtistPayoutPct    int
	OrganiserPayoutPct int
	VenuePayoutPct     int
	TotalTickets       int
	PresaleTickets     int
	MetadataURI        string
	PresaleUnitPrice   decimal.Decimal
	GeneralUnitPrice   decimal.Decimal
}

type Token struct {
	ID               int64
	Kind             TokenKind
	ConcertID        int64
	Owner            Identity
	UnitPrice        decimal.Decimal
	MetadataURI      string
	RoyaltyRecipient Identity
	MintedAt         time.Time
}

// Payouts is the result of splitting a concert balance. Retained is whatever
// the floor-rounded shares leave behind and stays with the platform.
type Payouts struct {
	Artist    decimal.Decimal
	Organiser decimal.Decimal
	Venue     decimal.Decimal
	Retained  decimal.Decimal
}

type Settlement struct {
	ConcertID int64
	Balance   decimal.Decimal
	Payouts   Payouts
	SettledBy Identity
	SettledAt time.Time
}

type StatusNotification struct {
	ConcertID int64     `json:"concert_id"`
	State     State     `json:"state"`
	Seq       int64     `json:"seq"`
	At        time.Time `json:"at"`
}

// JournalEntry is one sealed record of the append-only ledger.
type JournalEntry struct {
	Seq       int64
	Kind      string
	ConcertID int64
	Actor     Identity
	State     State
	Payload   []byte
	PrevHash  []byte
	Hash      []byte
	CreatedAt time.Time
}

type AccountBalance struct {
	Owner   Identity
	Balance decimal.Decimal
}

// Document is a content-addressed metadata document.
type Document struct {
	Hash      string
	Body      []byte
	CreatedAt time.Time
}
