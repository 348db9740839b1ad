package domain

import "errors"

// Failure taxonomy shared by every operation. Each one aborts the whole
// operation; callers tell them apart with errors.Is.
var (
	ErrUnauthorized           = errors.New("unauthorized")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInvalidConfiguration   = errors.New("invalid configuration")
	ErrSaleNotOpen            = errors.New("tickets are not on sale now")
	ErrInsufficientPayment    = errors.New("insufficient payment")
	ErrAlreadySettled         = errors.New("already settled")
	ErrTransferFailure        = errors.New("transfer failure")
)
