package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryOTPStore_VerifyConsumesCode(t *testing.T) {
	s := NewMemoryOTPStore()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "ada@example.com", "123456"))

	ok, err := s.Verify(ctx, "ada@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)

	// Consumed on first success.
	ok, err = s.Verify(ctx, "ada@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryOTPStore_WrongCode(t *testing.T) {
	s := NewMemoryOTPStore()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "ada@example.com", "123456"))

	ok, err := s.Verify(ctx, "ada@example.com", "654321")
	require.NoError(t, err)
	assert.False(t, ok)

	// A wrong guess does not consume the code.
	ok, err = s.Verify(ctx, "ada@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryOTPStore_EmailNormalization(t *testing.T) {
	s := NewMemoryOTPStore()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "Ada@Example.com", "123456"))

	ok, err := s.Verify(ctx, "ada@example.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryOTPStore_ExpiredCode(t *testing.T) {
	s := NewMemoryOTPStore()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "ada@example.com", "123456"))

	// Force the entry past its expiry instead of waiting out the TTL.
	s.mu.Lock()
	entry := s.entries["ada@example.com"]
	entry.expiresAt = time.Now().Add(-time.Second)
	s.entries["ada@example.com"] = entry
	s.mu.Unlock()

	ok, err := s.Verify(ctx, "ada@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryOTPStore_SweepEvictsExpired(t *testing.T) {
	s := NewMemoryOTPStore()
	defer s.Close()
	ctx := context.Background()

	require.NoError(t, s.Store(ctx, "ada@example.com", "123456"))

	s.mu.Lock()
	entry := s.entries["ada@example.com"]
	entry.expiresAt = time.Now().Add(-time.Second)
	s.entries["ada@example.com"] = entry
	s.mu.Unlock()

	s.sweepExpired()

	s.mu.Lock()
	_, exists := s.entries["ada@example.com"]
	s.mu.Unlock()
	assert.False(t, exists)
}
