package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitPrice is the price of the tier currently on sale.
func (c *Concert) UnitPrice() decimal.Decimal {
	if c.State == StatePreSale {
		return c.PresaleUnitPrice
	}
	return c.GeneralUnitPrice
}

// RecordSale books one ticket at price and returns the implicit transitions
// the sale triggers, in the order they apply: presale exhausted moves the
// concert to GeneralSale, total capacity exhausted then moves it to SoldOut.
// The caller must have checked that the sale is open.
func (c *Concert) RecordSale(price decimal.Decimal) []State {
	presale := c.State == StatePreSale

	c.TicketsSold++
	if presale {
		c.PresaleTicketsSold++
	}
	c.AccumulatedBalance = c.AccumulatedBalance.Add(price)

	var moved []State
	if presale && c.PresaleTicketsSold == c.PresaleCapacity {
		c.State = StateGeneralSale
		moved = append(moved, StateGeneralSale)
	}
	if c.TicketsSold == c.TotalTicketCapacity {
		c.State = StateSoldOut
		moved = append(moved, StateSoldOut)
	}

	return moved
}

// ValidateTerms checks creation parameters against the record invariants.
// Every failure wraps ErrInvalidConfiguration.
func ValidateTerms(t Terms) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
	}

	if t.Artist.IsZero() || t.Venue.IsZero() {
		return fail("artist and venue are required")
	}

	for name, pct := range map[string]int{
		"artist":    t.ArtistPayoutPct,
		"organiser": t.OrganiserPayoutPct,
		"venue":     t.VenuePayoutPct,
	} {
		if pct < 0 || pct > 100 {
			return fail("%s payout percentage %d out of range", name, pct)
		}
	}

	if sum := t.ArtistPayoutPct + t.OrganiserPayoutPct + t.VenuePayoutPct; sum > 100 {
		return fail("payout percentages sum to %d", sum)
	}

	if t.TotalTickets <= 0 {
		return fail("total tickets must be positive")
	}

	if t.PresaleTickets < 0 || t.PresaleTickets > t.TotalTickets {
		return fail("presale tickets must be within [0, %d]", t.TotalTickets)
	}

	if !IsWei(t.PresaleUnitPrice) || !IsWei(t.GeneralUnitPrice) {
		return fail("prices must be non-negative whole wei amounts")
	}

	return nil
}

// IsWei reports whether d is a non-negative integral amount.
func IsWei(d decimal.Decimal) bool {
	return !d.IsNegative() && d.IsInteger()
}
