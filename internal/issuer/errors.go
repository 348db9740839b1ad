package issuer

import "errors"

var (
	ErrMinterNotApproved = errors.New("minter not approved")
	ErrTokenNotFound     = errors.New("token not found")
	ErrUnknownKind       = errors.New("unknown token kind")
)
