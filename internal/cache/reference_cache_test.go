package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/pharmreg_api/internal/models"
)

type memStore struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) (string, error) {
	if m.failGet {
		return "", errors.New("connection refused")
	}
	v, ok := m.data[key]
	if !ok {
		return "", ErrMiss
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *memStore) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestReferenceCache_PutGetInvalidate(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	c := NewReferenceCache(store, 10*time.Minute)

	_, ok := c.Get(ctx, "DRSTATUS", "EL")
	assert.False(t, ok)

	text := "Εγκεκριμένο"
	c.Put(ctx, "DRSTATUS", "EL", []models.PltabEntry{{Column: "DRSTATUS", Code: "1", Language: "EL", LongText: &text, Selectable: 1}})
	assert.Equal(t, 10*time.Minute, store.ttls["pltab:DRSTATUS:EL"])

	entries, ok := c.Get(ctx, "DRSTATUS", "EL")
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "Εγκεκριμένο", *entries[0].LongText)

	c.Invalidate(ctx, "DRSTATUS", "EL")
	_, ok = c.Get(ctx, "DRSTATUS", "EL")
	assert.False(t, ok)
}

func TestReferenceCache_StoreErrorIsMiss(t *testing.T) {
	store := newMemStore()
	store.failGet = true

	_, ok := NewReferenceCache(store, time.Minute).Get(context.Background(), "FORM", "EN")
	assert.False(t, ok)
}

func TestReferenceCache_NilIsDisabled(t *testing.T) {
	var c *ReferenceCache
	ctx := context.Background()

	c.Put(ctx, "FORM", "EN", nil)
	c.Invalidate(ctx, "FORM", "EN")
	_, ok := c.Get(ctx, "FORM", "EN")
	assert.False(t, ok)
}
