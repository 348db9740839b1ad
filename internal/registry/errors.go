package registry

import "errors"

var (
	ErrUnknownRole = errors.New("unknown role")
	ErrNotApproved = errors.New("identity does not hold this role")
)
