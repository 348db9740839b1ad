package domain

import (
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is an account address: "0x" followed by 40 hex digits, kept in
// lower case so that comparisons are plain string equality.
type Identity string

func ParseIdentity(s string) (Identity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 42 || !strings.HasPrefix(s, "0x") {
		return "", ErrInvalidIdentity
	}
	if _, err := hex.DecodeString(s[2:]); err != nil {
		return "", ErrInvalidIdentity
	}
	return Identity(s), nil
}

func MustIdentity(s string) Identity {
	id, err := ParseIdentity(s)
	if err != nil {
		panic("domain: bad identity " + s)
	}
	return id
}

func (i Identity) String() string { return string(i) }

func (i Identity) IsZero() bool { return i == "" }

// IdentitySet is a read-only set of identities, e.g. the platform operators.
type IdentitySet map[Identity]struct{}

func NewIdentitySet(ids ...Identity) IdentitySet {
	s := make(IdentitySet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IdentitySet) Has(id Identity) bool {
	_, ok := s[id]
	return ok
}

// Slice returns the members in no particular order.
func (s IdentitySet) Slice() []Identity {
	out := make([]Identity, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
