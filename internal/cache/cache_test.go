package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bruhhgnik/DCLG-outfitrec/internal/domain"
)

func TestFingerprintCache_PutGet_Hit(t *testing.T) {
	c, err := New(8, time.Minute)
	require.NoError(t, err)

	key := Key{Anchor: "SKU_X", NumLooks: 3}
	resp := domain.LooksResponse{Anchor: domain.Product{SKU: "SKU_X"}, TotalLooks: 1}
	c.Put(key, resp)

	got, ok := c.Get(key)
	assert.True(t, ok)
	assert.Equal(t, resp, got)
}

func TestFingerprintCache_Miss(t *testing.T) {
	c, err := New(8, time.Minute)
	require.NoError(t, err)

	_, ok := c.Get(Key{Anchor: "UNKNOWN", NumLooks: 1})
	assert.False(t, ok)
}

func TestFingerprintCache_TTLExpiry(t *testing.T) {
	c, err := New(8, time.Millisecond)
	require.NoError(t, err)

	key := Key{Anchor: "SKU_X", NumLooks: 3}
	c.Put(key, domain.LooksResponse{})

	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get(key)
	assert.False(t, ok)
}

func TestFingerprintCache_PutResetsTTL(t *testing.T) {
	c, err := New(8, 20*time.Millisecond)
	require.NoError(t, err)

	key := Key{Anchor: "SKU_X", NumLooks: 3}
	c.Put(key, domain.LooksResponse{TotalLooks: 1})
	time.Sleep(15 * time.Millisecond)
	c.Put(key, domain.LooksResponse{TotalLooks: 2})
	time.Sleep(15 * time.Millisecond)

	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, 2, got.TotalLooks)
}

func TestFingerprintCache_OverflowEvictsLRU(t *testing.T) {
	c, err := New(2, time.Minute)
	require.NoError(t, err)

	c.Put(Key{Anchor: "A", NumLooks: 1}, domain.LooksResponse{TotalLooks: 1})
	c.Put(Key{Anchor: "B", NumLooks: 1}, domain.LooksResponse{TotalLooks: 2})
	c.Put(Key{Anchor: "C", NumLooks: 1}, domain.LooksResponse{TotalLooks: 3})

	assert.LessOrEqual(t, c.Len(), 2)
	_, ok := c.Get(Key{Anchor: "C", NumLooks: 1})
	assert.True(t, ok)
}

func TestFingerprintCache_DistinctKeysDoNotCollide(t *testing.T) {
	c, err := New(8, time.Minute)
	require.NoError(t, err)

	c.Put(Key{Anchor: "SKU:1", NumLooks: 2}, domain.LooksResponse{TotalLooks: 1})
	c.Put(Key{Anchor: "SKU", NumLooks: 1}, domain.LooksResponse{TotalLooks: 2}) // anchor that is a prefix of a colon-bearing anchor

	a, ok := c.Get(Key{Anchor: "SKU:1", NumLooks: 2})
	require.True(t, ok)
	assert.Equal(t, 1, a.TotalLooks)

	b, ok := c.Get(Key{Anchor: "SKU", NumLooks: 1})
	require.True(t, ok)
	assert.Equal(t, 2, b.TotalLooks)
}
