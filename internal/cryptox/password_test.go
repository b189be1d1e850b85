package cryptox

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophcatalog/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cheapParams = Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestHashPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$argon2id$v=19$m=65536,t=3,p=4$"), h)

	ok, err := VerifyPassword("hunter22", h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("hunter23", h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPassword_FreshSaltEachCall(t *testing.T) {
	a, err := hashWithParams("password", cheapParams)
	require.NoError(t, err)
	b, err := hashWithParams("password", cheapParams)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)

	for _, h := range []string{a, b} {
		ok, err := VerifyPassword("password", h)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, common.ErrInvalidCredential)
}

func TestVerifyPassword_InvalidInput(t *testing.T) {
	good, err := hashWithParams("password", cheapParams)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		encoded  string
	}{
		{"empty password", "", good},
		{"empty hash", "password", ""},
		{"not phc", "password", "plaintext"},
		{"wrong algorithm", "password", strings.Replace(good, "argon2id", "argon2i", 1)},
		{"wrong version", "password", strings.Replace(good, "v=19", "v=16", 1)},
		{"bad params", "password", strings.Replace(good, "m=1024", "m=abc", 1)},
		{"zero params", "password", strings.Replace(good, "t=1", "t=0", 1)},
		{"bad salt", "password", "$argon2id$v=19$m=1024,t=1,p=1$!!!$AAAA"},
		{"bad key", "password", "$argon2id$v=19$m=1024,t=1,p=1$AAAAAAAAAAAAAAAAAAAAAA$!!!"},
		{"truncated", "password", "$argon2id$v=19$m=1024,t=1,p=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				ok, err := VerifyPassword(tt.password, tt.encoded)
				assert.False(t, ok)
				assert.ErrorIs(t, err, common.ErrInvalidCredential)
			})
		})
	}
}

func TestHasher_RespectsParamsAndContext(t *testing.T) {
	h := NewHasherWithParams(1, cheapParams)
	ctx := context.Background()

	enc, err := h.Hash(ctx, "password")
	require.NoError(t, err)
	assert.Contains(t, enc, "$m=1024,t=1,p=1$")

	ok, err := h.Verify(ctx, "password", enc)
	require.NoError(t, err)
	assert.True(t, ok)

	// Hold the only slot so the next call has to wait for the context.
	require.NoError(t, h.sem.Acquire(ctx, 1))
	defer h.sem.Release(1)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = h.Hash(cancelled, "password")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = h.Verify(cancelled, "password", enc)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewHasher_ClampsConcurrency(t *testing.T) {
	h := NewHasher(0)
	assert.True(t, h.sem.TryAcquire(1))
	assert.False(t, h.sem.TryAcquire(1))
	h.sem.Release(1)
	assert.Equal(t, DefaultParams, h.params)
}
