package secret

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/text/secure/precis"
)

const (
	// SaltLen is the length of per-user salts.
	SaltLen = 16
	// DigestLen is the length of password digests.
	DigestLen = 32
)

// Hash derives the 32-byte digest of password under salt. The password is
// canonicalized first (PRECIS OpaqueString) so composed and decomposed
// spellings of the same string map to the same digest. The salt doubles as
// the BLAKE2b key, which binds the digest to the account it was generated
// for; the salt is stored in the clear next to the digest.
func Hash(password string, salt []byte) ([]byte, error) {
	canonical, err := precis.OpaqueString.String(password)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize password: %w", err)
	}

	h, err := blake2b.New256(salt)
	if err != nil {
		return nil, fmt.Errorf("failed to init digest: %w", err)
	}
	h.Write([]byte(canonical))

	return h.Sum(nil), nil
}

// NewSalt returns a fresh random salt from the system CSPRNG. Salts are
// generated once per account, at registration, and never rotated.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to read random salt: %w", err)
	}
	return salt, nil
}
