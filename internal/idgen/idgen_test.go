package idgen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_NewFormat(t *testing.T) {
	tests := []struct {
		name     string
		gen      *Generator
		length   int
		alphabet string
	}{
		{"user ids", UserIDs(), 10, Digits},
		{"game ids", GameIDs(), 12, UpperAlphanumerics},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := tt.gen.New()
			require.NoError(t, err)
			assert.Len(t, id, tt.length)
			for _, r := range id {
				assert.True(t, strings.ContainsRune(tt.alphabet, r), "unexpected character %q", r)
			}
		})
	}
}

func TestGenerator_InvalidConfig(t *testing.T) {
	_, err := (&Generator{Alphabet: "", Length: 4}).New()
	assert.Error(t, err)

	_, err = (&Generator{Alphabet: Digits, Length: 0}).New()
	assert.Error(t, err)
}

func TestGenerator_UniqueNeverReturnsTakenID(t *testing.T) {
	// A two-character alphabet of length 4 gives 16 ids, so collisions are frequent.
	g := &Generator{Alphabet: "ab", Length: 4, MaxAttempts: 1000}
	store := map[string]bool{}
	exists := func(_ context.Context, id string) (bool, error) {
		return store[id], nil
	}

	for i := 0; i < 16; i++ {
		id, err := g.Unique(context.Background(), exists)
		require.NoError(t, err)
		assert.False(t, store[id], "generator returned taken id %s", id)
		store[id] = true
	}
	assert.Len(t, store, 16)
}

func TestGenerator_UniqueExhausted(t *testing.T) {
	g := &Generator{Alphabet: "a", Length: 2, MaxAttempts: 3}
	calls := 0
	_, err := g.Unique(context.Background(), func(context.Context, string) (bool, error) {
		calls++
		return true, nil
	})
	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 3, calls)
}

func TestGenerator_UniqueStoreError(t *testing.T) {
	storeErr := errors.New("db down")
	_, err := UserIDs().Unique(context.Background(), func(context.Context, string) (bool, error) {
		return false, storeErr
	})
	assert.ErrorIs(t, err, storeErr)
}

func TestGenerator_UniqueCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GameIDs().Unique(ctx, func(context.Context, string) (bool, error) {
		return false, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
