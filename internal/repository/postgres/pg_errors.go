package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/kirinyoku/gigledger/internal/repository"
)

// IsRetryable reports serialization failures and deadlocks, after which the
// whole transaction can be run again.
func IsRetryable(err error) bool {
	var pgErr *pgconn.PgError

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return true
		}
	}

	return false
}

func translateDBErr(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		// unique_violation
		if pge.Code == "23505" {
			return repository.ErrConflict
		}
	}

	return err
}

// wrapDBErr translates err and wraps it with the operation name. A
// retryable error keeps its *pgconn.PgError in the chain so RunTx can see
// it.
func wrapDBErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if t := translateDBErr(err); t != err {
		return fmt.Errorf("%s:%w", op, t)
	}

	return fmt.Errorf("%s:%w", op, err)
}
