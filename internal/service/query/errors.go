package query

import (
	"errors"
)

var (
	ErrConcertNotFound  = errors.New("concert not found")
	ErrDocumentNotFound = errors.New("document not found")
	ErrNotSettled       = errors.New("concert not settled")
)
