package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellandwilde/landing-be/internal/models"
)

func TestStore_InsertAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	s := New()
	start := time.Now().UTC()

	first, err := s.Insert(ctx, "a@b.com")
	require.NoError(t, err)
	second, err := s.Insert(ctx, "c@d.com")
	require.NoError(t, err)

	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, "a@b.com", first.Email)
	assert.False(t, first.SubscribedAt.Before(start))
}

func TestStore_InsertDuplicate(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.Insert(ctx, "a@b.com")
	require.NoError(t, err)

	_, err = s.Insert(ctx, "a@b.com")
	assert.ErrorIs(t, err, models.ErrDuplicate)

	// Case-sensitive: a differently cased address is a distinct subscriber.
	_, err = s.Insert(ctx, "A@b.com")
	assert.NoError(t, err)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_FindByEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.FindByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, models.ErrNotFound)

	created, err := s.Insert(ctx, "a@b.com")
	require.NoError(t, err)

	found, err := s.FindByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = s.FindByEmail(ctx, "A@B.COM")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestStore_ListAllSortedByID(t *testing.T) {
	ctx := context.Background()
	s := New()

	const n = 25
	for i := 0; i < n; i++ {
		_, err := s.Insert(ctx, fmt.Sprintf("user%d@example.com", i))
		require.NoError(t, err)
	}

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	emails := make(map[string]bool)
	for i, sub := range all {
		assert.Equal(t, int64(i+1), sub.ID)
		emails[sub.Email] = true
	}
	assert.Len(t, emails, n)
}

func TestStore_ConcurrentInsertSameEmail(t *testing.T) {
	ctx := context.Background()
	s := New()

	const callers = 50
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			if _, err := s.Insert(ctx, "race@example.com"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestStore_Users(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.GetByUsername(ctx, "admin")
	assert.ErrorIs(t, err, models.ErrNotFound)

	u, err := s.Create(ctx, "admin", "hash")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)

	_, err = s.Create(ctx, "admin", "other")
	assert.ErrorIs(t, err, models.ErrDuplicate)

	got, err := s.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "hash", got.PasswordHash)
}
