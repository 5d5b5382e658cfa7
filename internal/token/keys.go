package token

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Keypair bundles a signing key with its identifier. The key id ends up in
// the kid header of every issued token.
type Keypair struct {
	Private ed25519.PrivateKey
	Public  ed25519.PublicKey
	KeyID   string
}

// GenerateKeypair creates a fresh ed25519 keypair with a random key id.
func GenerateKeypair() (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, fmt.Errorf("failed to generate keypair: %w", err)
	}

	return Keypair{Private: priv, Public: pub, KeyID: uuid.NewString()}, nil
}

// KeypairFromSeed derives a deterministic keypair from a hex-encoded
// 32-byte seed, for deployments that pin the signing key via config.
func KeypairFromSeed(seedHex, keyID string) (Keypair, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return Keypair{}, fmt.Errorf("failed to decode key seed: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return Keypair{}, fmt.Errorf("key seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}

	priv := ed25519.NewKeyFromSeed(seed)
	if keyID == "" {
		keyID = uuid.NewString()
	}

	return Keypair{
		Private: priv,
		Public:  priv.Public().(ed25519.PublicKey),
		KeyID:   keyID,
	}, nil
}
