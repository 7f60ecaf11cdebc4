package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GenerateClientSecret creates a cryptographically random delegate client
// secret. Returns both the raw secret (shown exactly once to the operator)
// and its bcrypt hash (stored in the database).
func GenerateClientSecret(cost int) (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)

	h, err := bcrypt.GenerateFromPassword([]byte(raw), cost)
	if err != nil {
		return "", "", fmt.Errorf("hash secret: %w", err)
	}

	return raw, string(h), nil
}

// CompareClientSecret checks a raw secret against its stored bcrypt hash.
// bcrypt's comparison runs in constant time with respect to the secret.
func CompareClientSecret(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// GenerateVerificationToken creates a random out-of-band binding
// verification token. Returns the raw token (delivered to the clinician over
// a separate channel) and its SHA-256 hash (stored in the database).
func GenerateVerificationToken() (raw string, hash string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate random bytes: %w", err)
	}

	raw = base64.RawURLEncoding.EncodeToString(b)
	hash = HashToken(raw)

	return raw, hash, nil
}

// HashToken computes the SHA-256 hash of a token and returns it as a hex
// string. Verification tokens are stored hashed so a database leak does not
// expose usable tokens.
func HashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
