package ledger

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

type domainKey [32]byte

// Domain keys are ASCII names zero-padded to 32 bytes. Changing one
// invalidates every hash already written in that domain.
var (
	journalDomainKey = domainKey{
		'g', 'i', 'g', 'l', 'e', 'd', 'g', 'e', 'r', '.', 'j', 'o', 'u', 'r', 'n', 'a',
		'l', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	documentDomainKey = domainKey{
		'g', 'i', 'g', 'l', 'e', 'd', 'g', 'e', 'r', '.', 'd', 'o', 'c', 'u', 'm', 'e',
		'n', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

const contentPrefix = "blake3:"

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

func (h Hash) IsZero() bool { return h == Hash{} }

func HashFromBytes(b []byte) (Hash, error) {
	var h Hash
	if len(b) == 0 {
		return h, nil
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("ledger: hash is %d bytes, want %d", len(b), len(h))
	}
	copy(h[:], b)
	return h, nil
}

// ContentHash addresses a document by the document-domain hash of its bytes.
func ContentHash(body []byte) Hash {
	return keyedHash(documentDomainKey, body)
}

// ContentURI is the URI form of a content hash, e.g. "blake3:9f2c...".
func ContentURI(h Hash) string {
	return contentPrefix + h.String()
}

// ParseContentHash accepts either a bare hex hash or a ContentURI.
func ParseContentHash(s string) (Hash, error) {
	if len(s) > len(contentPrefix) && s[:len(contentPrefix)] == contentPrefix {
		s = s[len(contentPrefix):]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return Hash{}, fmt.Errorf("ledger: bad content hash: %w", err)
	}
	if len(b) != len(Hash{}) {
		return Hash{}, fmt.Errorf("ledger: bad content hash length %d", len(b))
	}
	return HashFromBytes(b)
}

func chainHash(prev Hash, record []byte) Hash {
	buf := make([]byte, 0, len(prev)+len(record))
	buf = append(buf, prev[:]...)
	buf = append(buf, record...)
	return keyedHash(journalDomainKey, buf)
}

func keyedHash(key domainKey, data []byte) Hash {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed only fails on a key that is not 32 bytes.
		panic("ledger: blake3 keyed hasher: " + err.Error())
	}
	_, _ = hasher.Write(data)
	var h Hash
	copy(h[:], hasher.Sum(nil))
	return h
}
