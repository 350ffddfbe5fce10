package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const (
	// InviteTokenBytes is the entropy of a freshly minted invite token.
	InviteTokenBytes = 32
)

// GenerateRandomToken generates a random hex token of length bytes
func GenerateRandomToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateInviteToken mints the single-use invite token.
func GenerateInviteToken() (string, error) {
	return GenerateRandomToken(InviteTokenBytes)
}

// HashToken returns the SHA-256 hex digest of a token. Only the digest is
// ever stored; lookups re-hash the presented token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
