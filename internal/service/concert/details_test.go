package concert

import (
	"context"
	"strings"
	"testing"

	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/kirinyoku/gigledger/internal/ledger"
)

func validDetails() Details {
	return Details{
		Name:             "Night Shift",
		Description:      "Two sets, no openers",
		ConcertStart:     "2026-09-01 20:00:00",
		PresaleStart:     "2026-06-01 09:00:00",
		PresaleEnd:       "2026-06-15 09:00:00",
		GeneralSaleStart: "2026-06-20 09:00:00",
	}
}

func TestDetailsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Details)
		want   string
	}{
		{name: "valid"},
		{name: "no presale", mutate: func(d *Details) { d.PresaleStart, d.PresaleEnd = "", "" }},
		{name: "missing name", mutate: func(d *Details) { d.Name = " " }, want: "name"},
		{name: "bad layout", mutate: func(d *Details) { d.ConcertStart = "2026-09-01T20:00:00Z" }, want: "concert start"},
		{name: "missing general start", mutate: func(d *Details) { d.GeneralSaleStart = "" }, want: "general sale start"},
		{name: "presale reversed", mutate: func(d *Details) { d.PresaleEnd = "2026-05-20 09:00:00" }, want: "before presale end"},
		{name: "presale overlaps general", mutate: func(d *Details) { d.PresaleEnd = "2026-06-25 09:00:00" }, want: "before general sale start"},
		{name: "presale in the past", mutate: func(d *Details) { d.PresaleStart = "2026-04-01 09:00:00" }, want: "presale start must be in the future"},
		{name: "concert in the past", mutate: func(d *Details) { d.ConcertStart = "2025-09-01 20:00:00" }, want: "concert start must be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDetails()
			if tt.mutate != nil {
				tt.mutate(&d)
			}
			err := d.Validate(testNow)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			wantErr(t, err, domain.ErrInvalidConfiguration)
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestCreateConcertWithDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})

	id, uri, err := f.svc.CreateConcertWithDetails(ctx, organiser, scenarioTerms(), validDetails())
	if err != nil {
		t.Fatalf("CreateConcertWithDetails: %v", err)
	}
	if !strings.HasPrefix(uri, "blake3:") || f.concert(t, id).MetadataURI != uri {
		t.Fatalf("metadata uri = %q, concert has %q", uri, f.concert(t, id).MetadataURI)
	}

	h, err := ledger.ParseContentHash(uri)
	if err != nil {
		t.Fatalf("ParseContentHash: %v", err)
	}
	doc, err := f.store.Reader().Documents().Get(ctx, h.String())
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if ledger.ContentHash(doc.Body) != h {
		t.Error("stored document does not hash to its address")
	}
	got, err := DecodeDetails(doc.Body)
	if err != nil || got != validDetails() {
		t.Errorf("DecodeDetails = %+v, %v", got, err)
	}

	// Same details, same address.
	_, again, err := f.svc.CreateConcertWithDetails(ctx, organiser, scenarioTerms(), validDetails())
	if err != nil || again != uri {
		t.Errorf("second document uri = %q, %v", again, err)
	}
}

func TestCreateConcertWithInvalidDetails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, fixtureOpts{})
	head := f.journalHead(t)

	d := validDetails()
	d.GeneralSaleStart = "2026-06-10 09:00:00"

	_, _, err := f.svc.CreateConcertWithDetails(ctx, organiser, scenarioTerms(), d)
	wantErr(t, err, domain.ErrInvalidConfiguration)

	_, _, err = f.svc.CreateConcertWithDetails(ctx, buyer1, scenarioTerms(), validDetails())
	wantErr(t, err, domain.ErrUnauthorized)

	if f.journalHead(t) != head {
		t.Error("rejected creation wrote to the journal")
	}
}
