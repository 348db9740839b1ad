package concert

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrConcertNotFound = errors.New("concert not found")
	ErrRateLimited     = errors.New("rate limited")
	ErrUnknownPolicy   = errors.New("unknown payout policy")
)

// RateLimitedError is returned by BuyTicket when the caller is over the
// purchase rate. It matches ErrRateLimited.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

func (e RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}
