package httpgin

import (
	"fmt"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/service/concert"
	"github.com/shopspring/decimal"
)

// Amounts are wei, written as base-10 strings.

type CreateConcertRequest struct {
	Artist             string           `json:"artist" binding:"required"`
	Venue              string           `json:"venue" binding:"required"`
	ArtistPayoutPct    int              `json:"artist_payout_pct"`
	OrganiserPayoutPct int              `json:"organiser_payout_pct"`
	VenuePayoutPct     int              `json:"venue_payout_pct"`
	TotalTickets       int              `json:"total_tickets"`
	PresaleTickets     int              `json:"presale_tickets"`
	PresaleUnitPrice   string           `json:"presale_unit_price" binding:"required"`
	GeneralUnitPrice   string           `json:"general_unit_price" binding:"required"`
	MetadataURI        string           `json:"metadata_uri"`
	Details            *concert.Details `json:"details,omitempty"`
}

func (r CreateConcertRequest) terms() (domain.Terms, error) {
	artist, err := domain.ParseIdentity(r.Artist)
	if err != nil {
		return domain.Terms{}, fmt.Errorf("artist: %w", err)
	}

	venue, err := domain.ParseIdentity(r.Venue)
	if err != nil {
		return domain.Terms{}, fmt.Errorf("venue: %w", err)
	}

	presale, err := decimal.NewFromString(r.PresaleUnitPrice)
	if err != nil {
		return domain.Terms{}, fmt.Errorf("presale_unit_price: %w", err)
	}

	general, err := decimal.NewFromString(r.GeneralUnitPrice)
	if err != nil {
		return domain.Terms{}, fmt.Errorf("general_unit_price: %w", err)
	}

	return domain.Terms{
		Artist:             artist,
		Venue:              venue,
		ArtistPayoutPct:    r.ArtistPayoutPct,
		OrganiserPayoutPct: r.OrganiserPayoutPct,
		VenuePayoutPct:     r.VenuePayoutPct,
		TotalTickets:       r.TotalTickets,
		PresaleTickets:     r.PresaleTickets,
		MetadataURI:        r.MetadataURI,
		PresaleUnitPrice:   presale,
		GeneralUnitPrice:   general,
	}, nil
}

type CreateConcertResponse struct {
	ConcertID   int64  `json:"concert_id"`
	MetadataURI string `json:"metadata_uri"`
}

type UpdateStateRequest struct {
	State string `json:"state" binding:"required"`
}

type BuyTicketRequest struct {
	Value        string `json:"value" binding:"required"`
	TicketURI    string `json:"ticket_uri"`
	SupporterURI string `json:"supporter_uri"`
}

type ApproveRoleRequest struct {
	Identity string `json:"identity" binding:"required"`
}

type SetMinterRequest struct {
	Minter string `json:"minter" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ConcertResponse struct {
	ID                  int64           `json:"id"`
	Artist              domain.Identity `json:"artist"`
	Venue               domain.Identity `json:"venue"`
	Organiser           domain.Identity `json:"organiser"`
	ArtistPayoutPct     int             `json:"artist_payout_pct"`
	OrganiserPayoutPct  int             `json:"organiser_payout_pct"`
	VenuePayoutPct      int             `json:"venue_payout_pct"`
	TotalTicketCapacity int             `json:"total_ticket_capacity"`
	PresaleCapacity     int             `json:"presale_capacity"`
	PresaleUnitPrice    decimal.Decimal `json:"presale_unit_price"`
	GeneralUnitPrice    decimal.Decimal `json:"general_unit_price"`
	TicketsSold         int             `json:"tickets_sold"`
	PresaleTicketsSold  int             `json:"presale_tickets_sold"`
	AccumulatedBalance  decimal.Decimal `json:"accumulated_balance"`
	State               domain.State    `json:"state"`
	MetadataURI         string          `json:"metadata_uri"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

func toConcertResponse(c *domain.Concert) ConcertResponse {
	return ConcertResponse{
		ID:                  c.ID,
		Artist:              c.Artist,
		Venue:               c.Venue,
		Organiser:           c.Organiser,
		ArtistPayoutPct:     c.ArtistPayoutPct,
		OrganiserPayoutPct:  c.OrganiserPayoutPct,
		VenuePayoutPct:      c.VenuePayoutPct,
		TotalTicketCapacity: c.TotalTicketCapacity,
		PresaleCapacity:     c.PresaleCapacity,
		PresaleUnitPrice:    c.PresaleUnitPrice,
		GeneralUnitPrice:    c.GeneralUnitPrice,
		TicketsSold:         c.TicketsSold,
		PresaleTicketsSold:  c.PresaleTicketsSold,
		AccumulatedBalance:  c.AccumulatedBalance,
		State:               c.State,
		MetadataURI:         c.MetadataURI,
		UpdatedAt:           c.UpdatedAt,
	}
}

type StateResponse struct {
	ConcertID int64        `json:"concert_id"`
	State     domain.State `json:"state"`
}

type NextIDResponse struct {
	NextConcertID int64 `json:"next_concert_id"`
}

type RoleResponse struct {
	Role     domain.Role     `json:"role"`
	Identity domain.Identity `json:"identity"`
	Approved bool            `json:"approved"`
}

type HoldersResponse struct {
	ConcertID int64             `json:"concert_id"`
	Kind      domain.TokenKind  `json:"kind"`
	Holders   []domain.Identity `json:"holders"`
}

type TokenResponse struct {
	ID               int64            `json:"id"`
	Kind             domain.TokenKind `json:"kind"`
	ConcertID        int64            `json:"concert_id"`
	Owner            domain.Identity  `json:"owner"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	MetadataURI      string           `json:"metadata_uri"`
	RoyaltyRecipient domain.Identity  `json:"royalty_recipient"`
	MintedAt         time.Time        `json:"minted_at"`
}

func toTokenResponse(t *domain.Token) TokenResponse {
	return TokenResponse{
		ID:               t.ID,
		Kind:             t.Kind,
		ConcertID:        t.ConcertID,
		Owner:            t.Owner,
		UnitPrice:        t.UnitPrice,
		MetadataURI:      t.MetadataURI,
		RoyaltyRecipient: t.RoyaltyRecipient,
		MintedAt:         t.MintedAt,
	}
}

type SettlementResponse struct {
	ConcertID int64           `json:"concert_id"`
	Balance   decimal.Decimal `json:"balance"`
	Artist    decimal.Decimal `json:"artist"`
	Organiser decimal.Decimal `json:"organiser"`
	Venue     decimal.Decimal `json:"venue"`
	Retained  decimal.Decimal `json:"retained"`
	SettledBy domain.Identity `json:"settled_by"`
	SettledAt time.Time       `json:"settled_at"`
}

func toSettlementResponse(s *domain.Settlement) SettlementResponse {
	return SettlementResponse{
		ConcertID: s.ConcertID,
		Balance:   s.Balance,
		Artist:    s.Payouts.Artist,
		Organiser: s.Payouts.Organiser,
		Venue:     s.Payouts.Venue,
		Retained:  s.Payouts.Retained,
		SettledBy: s.SettledBy,
		SettledAt: s.SettledAt,
	}
}

type BalanceResponse struct {
	Identity domain.Identity `json:"identity"`
	Balance  decimal.Decimal `json:"balance"`
}

type DocumentResponse struct {
	Hash    string          `json:"hash"`
	URI     string          `json:"uri"`
	Details concert.Details `json:"details"`
}
