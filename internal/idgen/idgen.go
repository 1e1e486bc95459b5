// Package idgen generates fixed-alphabet random identifiers and checks them
// against the record store before handing them out.
package idgen

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

const (
	Digits             = "0123456789"
	UpperAlphanumerics = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// DefaultMaxAttempts bounds how many candidates Unique tries before giving up.
const DefaultMaxAttempts = 32

// ErrExhausted is returned when no unused identifier was found within the attempt budget.
var ErrExhausted = errors.New("idgen: no unused identifier found")

// ExistsFunc reports whether id is already taken in the store.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

// Generator produces identifiers of Length characters drawn from Alphabet.
type Generator struct {
	Alphabet    string
	Length      int
	MaxAttempts int
}

// UserIDs returns the generator for 10-digit user identifiers.
func UserIDs() *Generator {
	return &Generator{Alphabet: Digits, Length: 10}
}

// GameIDs returns the generator for 12-character game identifiers.
func GameIDs() *Generator {
	return &Generator{Alphabet: UpperAlphanumerics, Length: 12}
}

// New returns a single random candidate.
func (g *Generator) New() (string, error) {
	if g.Length <= 0 || len(g.Alphabet) == 0 {
		return "", fmt.Errorf("idgen: invalid generator (alphabet %d chars, length %d)", len(g.Alphabet), g.Length)
	}
	max := big.NewInt(int64(len(g.Alphabet)))
	buf := make([]byte, g.Length)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("idgen: read random: %w", err)
		}
		buf[i] = g.Alphabet[n.Int64()]
	}
	return string(buf), nil
}

// Unique draws candidates until exists reports one as unused.
func (g *Generator) Unique(ctx context.Context, exists ExistsFunc) (string, error) {
	attempts := g.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		id, err := g.New()
		if err != nil {
			return "", err
		}
		taken, err := exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrExhausted
}
