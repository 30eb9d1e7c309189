package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[*int]()

	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	v := 7
	require.NoError(t, s.Save(ctx, "a", &v))
	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Same(t, &v, got)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[int]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := string(rune('a' + i))
			_ = s.Save(ctx, id, i)
			_, _ = s.Get(ctx, id)
		}()
	}
	wg.Wait()
	v, err := s.Get(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 2, v)
}
