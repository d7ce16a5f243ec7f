package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	s := NewMemoryStore()

	s.Put("one piece", "https://example.com/op.jpg", 0.9, "googlebooks")

	entry, ok := s.Get("one piece")
	require.True(t, ok)
	require.Equal(t, "one piece", entry.Key)
	require.Equal(t, "https://example.com/op.jpg", entry.URL)
	require.InDelta(t, 0.9, entry.Score, 1e-9)
	require.Equal(t, "googlebooks", entry.Source)
	require.Equal(t, SchemaVersion, entry.SchemaVersion)
}

func TestMemoryStoreMiss(t *testing.T) {
	s := NewMemoryStore()

	entry, ok := s.Get("nope")
	require.False(t, ok)
	require.Nil(t, entry)
}

func TestMemoryStoreExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(
		WithTTL(time.Hour),
		WithClock(func() time.Time { return now }),
	)

	s.Put("one piece", "https://example.com/op.jpg", 0.9, "googlebooks")

	_, ok := s.Get("one piece")
	require.True(t, ok)

	// Step past the TTL without sleeping.
	now = now.Add(time.Hour + time.Second)
	_, ok = s.Get("one piece")
	require.False(t, ok)
}

func TestMemoryStoreSchemaMismatch(t *testing.T) {
	s := NewMemoryStore()

	s.Put("one piece", "https://example.com/op.jpg", 0.9, "googlebooks")
	s.entries["one piece"].SchemaVersion = "1"

	_, ok := s.Get("one piece")
	require.False(t, ok)
}

func TestMemoryStoreOverwrite(t *testing.T) {
	s := NewMemoryStore()

	s.Put("one piece", "https://example.com/v1.jpg", 0.8, "community")
	s.Put("one piece", "https://example.com/v2.jpg", 0.95, "googlebooks")

	entry, ok := s.Get("one piece")
	require.True(t, ok)
	require.Equal(t, "https://example.com/v2.jpg", entry.URL)
	require.Equal(t, "googlebooks", entry.Source)
	require.Equal(t, 1, s.Len())
}

func TestMemoryStoreEvictsOldestAtCapacity(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryStore(
		WithMaxEntries(3),
		WithClock(func() time.Time { return now }),
	)

	for i := 0; i < 4; i++ {
		s.Put(fmt.Sprintf("title-%d", i), "https://example.com/x.jpg", 0.5, "test")
		now = now.Add(time.Minute)
	}

	require.Equal(t, 3, s.Len())

	// The oldest-created entry is gone; the rest survive.
	_, ok := s.Get("title-0")
	require.False(t, ok)
	for i := 1; i < 4; i++ {
		_, ok := s.Get(fmt.Sprintf("title-%d", i))
		require.True(t, ok)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	s.Put("one piece", "https://example.com/op.jpg", 0.9, "googlebooks")

	entry, ok := s.Get("one piece")
	require.True(t, ok)
	entry.URL = "mutated"

	fresh, ok := s.Get("one piece")
	require.True(t, ok)
	require.Equal(t, "https://example.com/op.jpg", fresh.URL)
}
