// Package credentials derives and verifies salted password keys.
package credentials

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultRounds   = 100
	DefaultKeyBytes = 32
	SaltBytes       = 16
	TokenBytes      = 32
)

// Verifier derives fixed-length keys from a password and a per-account salt.
type Verifier struct {
	rounds   int
	keyBytes int
}

// NewVerifier creates a Verifier. Non-positive arguments fall back to the defaults.
func NewVerifier(rounds, keyBytes int) *Verifier {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if keyBytes <= 0 {
		keyBytes = DefaultKeyBytes
	}
	return &Verifier{rounds: rounds, keyBytes: keyBytes}
}

// Hash generates a fresh salt and returns the derived key with it.
func (v *Verifier) Hash(password string) (hash, salt []byte, err error) {
	salt = make([]byte, SaltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, fmt.Errorf("read salt: %w", err)
	}
	return v.derive(password, salt), salt, nil
}

// Verify recomputes the key for password and compares it in constant time.
func (v *Verifier) Verify(password string, salt, hash []byte) bool {
	if len(salt) == 0 || len(hash) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(v.derive(password, salt), hash) == 1
}

func (v *Verifier) derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, v.rounds, v.keyBytes, sha256.New)
}

// NewToken returns a random url-safe token, used for session ids and
// account validation links.
func NewToken() (string, error) {
	b := make([]byte, TokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
