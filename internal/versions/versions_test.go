package versions

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/model"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store"
	"github.com/Akashyo7/Ai-Nidhi-sub000/internal/store/memory"
)

// conflictingVersions fails the first n Appends with a version conflict.
type conflictingVersions struct {
	store.Versions
	mu        sync.Mutex
	conflicts int
	calls     int
}

func (c *conflictingVersions) Append(ctx context.Context, rec *model.VersionRecord) (*model.VersionRecord, error) {
	c.mu.Lock()
	c.calls++
	if c.conflicts > 0 {
		c.conflicts--
		c.mu.Unlock()
		return nil, store.ErrVersionConflict
	}
	c.mu.Unlock()
	return c.Versions.Append(ctx, rec)
}

func TestUpdateOrCreate_Sequential(t *testing.T) {
	s := New(memory.New().Versions(), zerolog.Nop(), 0)
	ctx := context.Background()

	_, err := s.FindLatestByType(ctx, "o1", model.CategoryContext)
	assert.True(t, model.IsNotFoundError(err))

	for i := 1; i <= 3; i++ {
		rec, err := s.UpdateOrCreate(ctx, "o1", model.CategoryContext, "text", []byte(`{}`))
		require.NoError(t, err)
		assert.Equal(t, i, rec.Version)
	}
	latest, err := s.FindLatestByType(ctx, "o1", model.CategoryContext)
	require.NoError(t, err)
	assert.Equal(t, 3, latest.Version)

	other, err := s.UpdateOrCreate(ctx, "o2", model.CategoryContext, "text", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, other.Version, "owners have independent sequences")

	hist, err := s.History(ctx, "o1", model.CategoryContext)
	require.NoError(t, err)
	assert.Len(t, hist, 3)
}

func TestUpdateOrCreate_Concurrent(t *testing.T) {
	s := New(memory.New().Versions(), zerolog.Nop(), 0)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	seen := make(chan int, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := s.UpdateOrCreate(ctx, "o1", model.CategoryContext, "text", nil)
			if err != nil {
				t.Errorf("append: %v", err)
				return
			}
			seen <- rec.Version
		}()
	}
	wg.Wait()
	close(seen)

	got := make(map[int]bool)
	for v := range seen {
		assert.False(t, got[v], "version %d allocated twice", v)
		got[v] = true
	}
	for v := 1; v <= writers; v++ {
		assert.True(t, got[v], "version %d missing", v)
	}
}

func TestUpdateOrCreate_RetriesConflicts(t *testing.T) {
	fake := &conflictingVersions{Versions: memory.New().Versions(), conflicts: 2}
	s := New(fake, zerolog.Nop(), 5)
	s.backoff = 0

	rec, err := s.UpdateOrCreate(context.Background(), "o1", model.CategoryContext, "text", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Version)
	assert.Equal(t, 3, fake.calls)
}

func TestUpdateOrCreate_GivesUp(t *testing.T) {
	fake := &conflictingVersions{Versions: memory.New().Versions(), conflicts: 100}
	s := New(fake, zerolog.Nop(), 3)
	s.backoff = 0

	_, err := s.UpdateOrCreate(context.Background(), "o1", model.CategoryWritingStyle, "text", nil)
	require.Error(t, err)
	assert.True(t, model.IsConcurrencyError(err))
	var ce model.ConcurrencyError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 3, ce.Attempts)
	assert.Equal(t, 3, fake.calls)

	hist, err := s.History(context.Background(), "o1", model.CategoryWritingStyle)
	require.NoError(t, err)
	assert.Empty(t, hist, "failed attempts leave no record")
}

func TestUpdateOrCreate_Validation(t *testing.T) {
	s := New(memory.New().Versions(), zerolog.Nop(), 0)
	_, err := s.UpdateOrCreate(context.Background(), "", model.CategoryContext, "text", nil)
	assert.True(t, model.IsValidationError(err))
	_, err = s.UpdateOrCreate(context.Background(), "o1", "", "text", nil)
	assert.True(t, model.IsValidationError(err))
}
