package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/gigledger/internal/domain"
	"github.com/shopspring/decimal"
)

// Amounts are NUMERIC(78,0) columns, read back as text so no precision is
// lost on the way into decimal.Decimal.
const concertColumns = `id, artist, venue, organiser,
	artist_pct, organiser_pct, venue_pct,
	total_capacity, presale_capacity, presale_price::text, general_price::text,
	tickets_sold, presale_sold, balance::text,
	state, metadata_uri, created_at, updated_at`

type ConcertRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ConcertRepo) With(db DB) *ConcertRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ConcertRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

func scanConcert(row pgx.Row) (*domain.Concert, error) {
	var (
		c                        domain.Concert
		presale, general, amount string
	)

	err := row.Scan(
		&c.ID, &c.Artist, &c.Venue, &c.Organiser,
		&c.ArtistPayoutPct, &c.OrganiserPayoutPct, &c.VenuePayoutPct,
		&c.TotalTicketCapacity, &c.PresaleCapacity, &presale, &general,
		&c.TicketsSold, &c.PresaleTicketsSold, &amount,
		&c.State, &c.MetadataURI, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if c.PresaleUnitPrice, err = decimal.NewFromString(presale); err != nil {
		return nil, err
	}
	if c.GeneralUnitPrice, err = decimal.NewFromString(general); err != nil {
		return nil, err
	}
	if c.AccumulatedBalance, err = decimal.NewFromString(amount); err != nil {
		return nil, err
	}

	return &c, nil
}

// Create takes the next id after the highest one stored. Callers hold the
// ledger lock, so two creations never race for an id.
func (r *ConcertRepo) Create(ctx context.Context, c *domain.Concert) (int64, error) {
	const op = "postgres.ConcertRepo.Create"

	db := r.handle()

	var id int64
	err := db.QueryRow(ctx,
		`INSERT INTO concerts (
			id, artist, venue, organiser,
			artist_pct, organiser_pct, venue_pct,
			total_capacity, presale_capacity, presale_price, general_price,
			tickets_sold, presale_sold, balance, state, metadata_uri)
		 SELECT COALESCE(MAX(id) + 1, 0), $1, $2, $3, $4, $5, $6, $7, $8,
			$9::numeric, $10::numeric, $11, $12, $13::numeric, $14, $15
		 FROM concerts
		 RETURNING id`,
		c.Artist, c.Venue, c.Organiser,
		c.ArtistPayoutPct, c.OrganiserPayoutPct, c.VenuePayoutPct,
		c.TotalTicketCapacity, c.PresaleCapacity, c.PresaleUnitPrice.String(), c.GeneralUnitPrice.String(),
		c.TicketsSold, c.PresaleTicketsSold, c.AccumulatedBalance.String(), c.State, c.MetadataURI,
	).Scan(&id)
	if err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}

func (r *ConcertRepo) Get(ctx context.Context, id int64) (*domain.Concert, error) {
	const op = "postgres.ConcertRepo.Get"

	c, err := scanConcert(r.handle().QueryRow(ctx,
		`SELECT `+concertColumns+` FROM concerts WHERE id = $1`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return c, nil
}

func (r *ConcertRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Concert, error) {
	const op = "postgres.ConcertRepo.GetForUpdate"

	c, err := scanConcert(r.handle().QueryRow(ctx,
		`SELECT `+concertColumns+` FROM concerts WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, wrapDBErr(op, err)
	}

	return c, nil
}

// Update writes the mutable part of the record: counters, balance and
// state. The creation terms are never rewritten.
func (r *ConcertRepo) Update(ctx context.Context, c *domain.Concert) error {
	const op = "postgres.ConcertRepo.Update"

	err := r.handle().QueryRow(ctx,
		`UPDATE concerts
		 SET tickets_sold = $2, presale_sold = $3, balance = $4::numeric,
			 state = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at`,
		c.ID, c.TicketsSold, c.PresaleTicketsSold, c.AccumulatedBalance.String(), c.State,
	).Scan(&c.UpdatedAt)
	if err != nil {
		return wrapDBErr(op, err)
	}

	return nil
}

func (r *ConcertRepo) List(ctx context.Context, limit, offset int) ([]domain.Concert, error) {
	const op = "postgres.ConcertRepo.List"

	rows, err := r.handle().Query(ctx,
		`SELECT `+concertColumns+` FROM concerts
		 ORDER BY id
		 LIMIT NULLIF($1::int, 0) OFFSET $2`,
		limit, max(offset, 0),
	)
	if err != nil {
		return nil, wrapDBErr(op, err)
	}
	defer rows.Close()

	var out []domain.Concert
	for rows.Next() {
		c, err := scanConcert(rows)
		if err != nil {
			return nil, wrapDBErr(op, err)
		}
		out = append(out, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBErr(op, err)
	}

	return out, nil
}

func (r *ConcertRepo) NextID(ctx context.Context) (int64, error) {
	const op = "postgres.ConcertRepo.NextID"

	var id int64
	if err := r.handle().QueryRow(ctx,
		`SELECT COALESCE(MAX(id) + 1, 0) FROM concerts`,
	).Scan(&id); err != nil {
		return 0, wrapDBErr(op, err)
	}

	return id, nil
}
