package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func ether(s string) decimal.Decimal {
	return decimal.RequireFromString(s).Shift(18)
}

func TestParseIdentity(t *testing.T) {
	cases := []struct {
		in   string
		want Identity
		ok   bool
	}{
		{"0x00000000000000000000000000000000000000aA", "0x00000000000000000000000000000000000000aa", true},
		{"  0xABCDEF0123456789abcdef0123456789ABCDEF01 ", "0xabcdef0123456789abcdef0123456789abcdef01", true},
		{"0x123", "", false},
		{"00000000000000000000000000000000000000aa00", "", false},
		{"0xzz000000000000000000000000000000000000aa", "", false},
	}
	for _, tc := range cases {
		got, err := ParseIdentity(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseIdentity(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidIdentity) {
			t.Errorf("ParseIdentity(%q) error = %v; want ErrInvalidIdentity", tc.in, err)
		}
	}
}

func TestTransitionGraphOnlyMovesForward(t *testing.T) {
	for from, tos := range edges {
		for _, to := range tos {
			if to == StateCancelled {
				if !from.IsPreLive() {
					t.Errorf("cancel edge from %s which is not pre-live", from)
				}
				continue
			}
			if rank[to] <= rank[from] {
				t.Errorf("edge %s -> %s moves backwards", from, to)
			}
		}
	}
	for from, tos := range organiserEdges {
		for _, to := range tos {
			if !CanAdvance(from, to) {
				t.Errorf("organiser edge %s -> %s is not in the lifecycle graph", from, to)
			}
		}
	}
}

func TestOrganiserMayMove(t *testing.T) {
	cases := []struct {
		from, to State
		want     bool
	}{
		{StateSoldOut, StateLive, true},
		{StatePreSale, StateGeneralSale, true},
		{StateGeneralSale, StateSoldOut, true},
		{StateGeneralSale, StateCancelled, true},
		{StateOrganiserApproved, StateCancelled, true},
		{StateGeneralSale, StateLive, false},
		{StateLive, StateCancelled, false},
		{StateLive, StateSettled, false},
		{StateSettled, StateCancelled, false},
		{StateOrganiserApproved, StatePendingArtistApproval, false},
		{StateSoldOut, StateGeneralSale, false},
	}
	for _, tc := range cases {
		if got := OrganiserMayMove(tc.from, tc.to); got != tc.want {
			t.Errorf("OrganiserMayMove(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParseState(t *testing.T) {
	for _, s := range []State{StateCreated, StateLive, StateCancelled, StateSettled} {
		if got, ok := ParseState(string(s)); !ok || got != s {
			t.Errorf("ParseState(%q) = %q, %v", s, got, ok)
		}
	}
	if _, ok := ParseState("on_fire"); ok {
		t.Error("ParseState accepted an unknown state")
	}
}

func TestRecordSalePresaleRollover(t *testing.T) {
	c := &Concert{
		State:               StatePreSale,
		TotalTicketCapacity: 2,
		PresaleCapacity:     1,
		PresaleUnitPrice:    ether("0.1"),
		GeneralUnitPrice:    ether("0.2"),
		AccumulatedBalance:  decimal.Zero,
	}

	if !c.UnitPrice().Equal(ether("0.1")) {
		t.Fatalf("presale price = %s", c.UnitPrice())
	}
	moved := c.RecordSale(c.UnitPrice())
	if len(moved) != 1 || moved[0] != StateGeneralSale || c.State != StateGeneralSale {
		t.Fatalf("after first sale moved=%v state=%s", moved, c.State)
	}

	if !c.UnitPrice().Equal(ether("0.2")) {
		t.Fatalf("general price = %s", c.UnitPrice())
	}
	moved = c.RecordSale(c.UnitPrice())
	if len(moved) != 1 || moved[0] != StateSoldOut || c.State != StateSoldOut {
		t.Fatalf("after second sale moved=%v state=%s", moved, c.State)
	}

	if c.TicketsSold != 2 || c.PresaleTicketsSold != 1 {
		t.Errorf("counters = %d/%d", c.TicketsSold, c.PresaleTicketsSold)
	}
	if !c.AccumulatedBalance.Equal(ether("0.3")) {
		t.Errorf("balance = %s, want 0.3 ether", c.AccumulatedBalance)
	}
}

func TestRecordSalePresaleCoversWholeCapacity(t *testing.T) {
	c := &Concert{State: StatePreSale, TotalTicketCapacity: 1, PresaleCapacity: 1}
	moved := c.RecordSale(decimal.Zero)
	if len(moved) != 2 || moved[0] != StateGeneralSale || moved[1] != StateSoldOut {
		t.Fatalf("moved = %v", moved)
	}
}

func TestValidateTerms(t *testing.T) {
	base := Terms{
		Artist:             MustIdentity("0x0000000000000000000000000000000000000002"),
		Venue:              MustIdentity("0x0000000000000000000000000000000000000001"),
		ArtistPayoutPct:    40,
		OrganiserPayoutPct: 40,
		VenuePayoutPct:     10,
		TotalTickets:       100,
		PresaleTickets:     0,
		PresaleUnitPrice:   ether("0.1"),
		GeneralUnitPrice:   ether("0.2"),
	}
	if err := ValidateTerms(base); err != nil {
		t.Fatalf("valid terms rejected: %v", err)
	}

	cases := map[string]func(*Terms){
		"sum over 100":      func(t *Terms) { t.VenuePayoutPct = 21 },
		"negative pct":      func(t *Terms) { t.ArtistPayoutPct = -1 },
		"pct over 100":      func(t *Terms) { t.ArtistPayoutPct = 101; t.OrganiserPayoutPct = 0; t.VenuePayoutPct = 0 },
		"zero capacity":     func(t *Terms) { t.TotalTickets = 0 },
		"presale over cap":  func(t *Terms) { t.PresaleTickets = 101 },
		"negative presale":  func(t *Terms) { t.PresaleTickets = -1 },
		"fractional price":  func(t *Terms) { t.GeneralUnitPrice = decimal.RequireFromString("0.5") },
		"negative price":    func(t *Terms) { t.PresaleUnitPrice = decimal.NewFromInt(-1) },
		"missing artist":    func(t *Terms) { t.Artist = "" },
		"missing the venue": func(t *Terms) { t.Venue = "" },
	}
	for name, mutate := range cases {
		terms := base
		mutate(&terms)
		if err := ValidateTerms(terms); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("%s: err = %v, want ErrInvalidConfiguration", name, err)
		}
	}

	exact := base
	exact.ArtistPayoutPct, exact.OrganiserPayoutPct, exact.VenuePayoutPct = 50, 30, 20
	if err := ValidateTerms(exact); err != nil {
		t.Errorf("sum of exactly 100 rejected: %v", err)
	}
}

func TestSplit(t *testing.T) {
	p := Split(ether("0.3"), 40, 40, 10)
	if !p.Artist.Equal(ether("0.12")) || !p.Organiser.Equal(ether("0.12")) || !p.Venue.Equal(ether("0.03")) {
		t.Fatalf("split = %+v", p)
	}
	if !p.Retained.Equal(ether("0.03")) {
		t.Fatalf("retained = %s", p.Retained)
	}
}

func TestSplitFloorsAndKeepsRemainder(t *testing.T) {
	cases := []struct {
		balance          int64
		a, o, v          int
		wantA, wantO, wV int64
	}{
		{999, 33, 33, 33, 329, 329, 329},
		{1, 50, 50, 0, 0, 0, 0},
		{101, 100, 0, 0, 101, 0, 0},
		{0, 40, 40, 10, 0, 0, 0},
	}
	for _, tc := range cases {
		bal := decimal.NewFromInt(tc.balance)
		p := Split(bal, tc.a, tc.o, tc.v)
		if p.Artist.IntPart() != tc.wantA || p.Organiser.IntPart() != tc.wantO || p.Venue.IntPart() != tc.wV {
			t.Errorf("Split(%d) = %+v", tc.balance, p)
		}
		total := p.Artist.Add(p.Organiser).Add(p.Venue).Add(p.Retained)
		if !total.Equal(bal) || p.Retained.IsNegative() {
			t.Errorf("Split(%d) does not conserve value: %+v", tc.balance, p)
		}
	}
}
