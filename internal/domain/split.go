package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Split divides balance by the three payout percentages. Each share is
// balance*pct/100 rounded down; the leftover is retained, never spread.
func Split(balance decimal.Decimal, artistPct, organiserPct, venuePct int) Payouts {
	p := Payouts{
		Artist:    share(balance, artistPct),
		Organiser: share(balance, organiserPct),
		Venue:     share(balance, venuePct),
	}
	p.Retained = balance.Sub(p.Artist).Sub(p.Organiser).Sub(p.Venue)
	return p
}

// SplitConcert splits the concert's accumulated balance.
func SplitConcert(c *Concert) Payouts {
	return Split(c.AccumulatedBalance, c.ArtistPayoutPct, c.OrganiserPayoutPct, c.VenuePayoutPct)
}

func share(balance decimal.Decimal, pct int) decimal.Decimal {
	q, _ := balance.Mul(decimal.NewFromInt(int64(pct))).QuoRem(hundred, 0)
	return q
}
