package concert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/issuer"
)

func TestPresaleRollsOverToGeneralSale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})

	terms := scenarioTerms()
	terms.TotalTickets = 3
	id := f.openForSale(t, terms)

	p, err := f.svc.BuyTicket(ctx, buyer1, id, PurchaseRequest{Value: ether("0.1")})
	if err != nil {
		t.Fatalf("BuyTicket: %v", err)
	}
	if p.State != domain.StateGeneralSale || !equalStates(p.Transitions, []domain.State{domain.StateGeneralSale}) {
		t.Fatalf("purchase = %+v", p)
	}

	// The second buyer pays the general price now; the presale price is refused.
	_, err = f.svc.BuyTicket(ctx, buyer2, id, PurchaseRequest{Value: ether("0.1")})
	wantErr(t, err, domain.ErrInsufficientPayment)

	p, err = f.svc.BuyTicket(ctx, buyer2, id, PurchaseRequest{Value: ether("0.2")})
	if err != nil || !p.Price.Equal(ether("0.2")) || len(p.Transitions) != 0 {
		t.Fatalf("second purchase = %+v, %v", p, err)
	}

	c := f.concert(t, id)
	if c.TicketsSold != 2 || c.PresaleTicketsSold != 1 || !c.AccumulatedBalance.Equal(ether("0.3")) {
		t.Errorf("concert after two sales = %+v", c)
	}
}

func TestPurchaseMintsTicketAndSupporter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	id := f.openForSale(t, scenarioTerms())

	p, err := f.svc.BuyTicket(ctx, buyer1, id, PurchaseRequest{TicketURI: "ipfs://seat-1", Value: ether("0.1")})
	if err != nil {
		t.Fatalf("BuyTicket: %v", err)
	}

	ticket, err := f.tickets.Token(ctx, p.TicketID)
	if err != nil {
		t.Fatalf("ticket: %v", err)
	}
	if ticket.Owner != buyer1 || ticket.RoyaltyRecipient != artist || ticket.MetadataURI != "ipfs://seat-1" {
		t.Errorf("ticket = %+v", ticket)
	}

	supporter, err := f.supports.Token(ctx, p.SupporterID)
	if err != nil {
		t.Fatalf("supporter: %v", err)
	}
	if supporter.Owner != buyer1 || supporter.MetadataURI != "ipfs://concert" {
		t.Errorf("supporter = %+v", supporter)
	}

	attendees, _ := f.tickets.Holders(ctx, id)
	supporters, _ := f.supports.Holders(ctx, id)
	if len(attendees) != 1 || attendees[0] != buyer1 || len(supporters) != 1 {
		t.Errorf("holders = %v / %v", attendees, supporters)
	}
}

func TestOverpaymentIsRetained(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	id := f.openForSale(t, scenarioTerms())

	p, err := f.svc.BuyTicket(ctx, buyer1, id, PurchaseRequest{Value: ether("0.15")})
	if err != nil {
		t.Fatalf("BuyTicket: %v", err)
	}
	if !p.Overpayment.Equal(ether("0.05")) {
		t.Errorf("overpayment = %s", p.Overpayment)
	}
	if got := f.concert(t, id).AccumulatedBalance; !got.Equal(ether("0.1")) {
		t.Errorf("balance counts overpayment: %s", got)
	}
	if got := f.balance(t, engine); !got.Equal(ether("0.05")) {
		t.Errorf("platform account = %s, want 0.05 ether", got)
	}
}

func TestPurchaseRejections(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})

	created, _ := f.svc.CreateConcert(ctx, organiser, scenarioTerms())
	open := f.openForSale(t, scenarioTerms())

	tests := []struct {
		name  string
		id    int64
		value string
		want  error
	}{
		{"before sale opens", created, "1", domain.ErrSaleNotOpen},
		{"underpaid presale", open, "0.09", domain.ErrInsufficientPayment},
		{"negative value", open, "-1", domain.ErrInsufficientPayment},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := f.concert(t, tt.id)
			head := f.journalHead(t)

			_, err := f.svc.BuyTicket(ctx, buyer1, tt.id, PurchaseRequest{Value: ether(tt.value)})
			wantErr(t, err, tt.want)

			after := f.concert(t, tt.id)
			if after.TicketsSold != before.TicketsSold || !after.AccumulatedBalance.Equal(before.AccumulatedBalance) {
				t.Errorf("rejected purchase changed the record: %+v", after)
			}
			if f.journalHead(t) != head {
				t.Error("rejected purchase was journaled")
			}
		})
	}
}

func TestPurchaseAfterSoldOut(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	id := f.openForSale(t, scenarioTerms())

	for _, b := range []struct {
		who   domain.Identity
		value string
	}{{buyer1, "0.1"}, {buyer2, "0.2"}} {
		if _, err := f.svc.BuyTicket(ctx, b.who, id, PurchaseRequest{Value: ether(b.value)}); err != nil {
			t.Fatalf("BuyTicket: %v", err)
		}
	}
	if s := f.concert(t, id).State; s != domain.StateSoldOut {
		t.Fatalf("state = %s, want sold_out", s)
	}

	_, err := f.svc.BuyTicket(ctx, buyer1, id, PurchaseRequest{Value: ether("1")})
	wantErr(t, err, domain.ErrSaleNotOpen)

	c := f.concert(t, id)
	if c.TicketsSold != 2 || !c.AccumulatedBalance.Equal(ether("0.3")) {
		t.Errorf("record changed after sold out: %+v", c)
	}
	attendees, _ := f.tickets.Holders(ctx, id)
	if len(attendees) != 2 {
		t.Errorf("%d tickets minted, want 2", len(attendees))
	}
}

func TestMintFailureRollsBackPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{noMinter: true})
	id := f.openForSale(t, scenarioTerms())
	head := f.journalHead(t)
	notes := len(f.rec.notes)

	_, err := f.svc.BuyTicket(ctx, buyer1, id, PurchaseRequest{Value: ether("0.1")})
	wantErr(t, err, issuer.ErrMinterNotApproved)

	c := f.concert(t, id)
	if c.State != domain.StatePreSale || c.TicketsSold != 0 || c.PresaleTicketsSold != 0 || !c.AccumulatedBalance.IsZero() {
		t.Errorf("record after failed mint = %+v", c)
	}
	if f.journalHead(t) != head || len(f.rec.notes) != notes {
		t.Error("failed purchase left journal entries or notifications")
	}
	if holders, _ := f.tickets.Holders(ctx, id); len(holders) != 0 {
		t.Errorf("tickets minted: %v", holders)
	}
}

func TestBuyTicketRateLimited(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{limiter: denyLimiter{retry: 2 * time.Second}})
	id := f.openForSale(t, scenarioTerms())

	_, err := f.svc.BuyTicket(ctx, buyer1, id, PurchaseRequest{Value: ether("0.1")})
	wantErr(t, err, ErrRateLimited)

	var rl RateLimitedError
	if !errors.As(err, &rl) || rl.RetryAfter != 2*time.Second {
		t.Errorf("RetryAfter = %v", rl.RetryAfter)
	}
	if c := f.concert(t, id); c.TicketsSold != 0 {
		t.Errorf("rate limited purchase sold a ticket")
	}
}
