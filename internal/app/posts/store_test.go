package posts

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.uber.org/fx/fxtest"

	"blogd/internal/app/database"
	"blogd/internal/app/errors"
	"blogd/internal/config"
	"blogd/internal/config/logger"
)

func newTestLogger() logger.Logger {
	return logger.NewLoggerWithOutput(config.DefaultConfig(), io.Discard)
}

func newTestDB(t *testing.T, maxOpenConns int) *bun.DB {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.DSN = filepath.Join(t.TempDir(), "blog.db")
	cfg.Database.MaxOpenConns = maxOpenConns

	db, err := database.Open(context.Background(), cfg, newTestLogger())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, CreateSchema(context.Background(), db))

	return db
}

// stores returns a constructor per Store implementation so every contract test runs against both
func stores() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"sqlite": func(t *testing.T) Store {
			return NewSQLStore(newTestDB(t, 2), newTestLogger())
		},
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
	}
}

func Test_Store_CreateAndGet(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			first, err := store.Create(ctx, NewBlogPost{Title: "A", Body: "B"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), first.ID)
			assert.Equal(t, "A", first.Title)
			assert.Equal(t, "B", first.Body)
			assert.Nil(t, first.Published)

			second, err := store.Create(ctx, NewBlogPost{Title: "C", Body: "D"})
			require.NoError(t, err)
			assert.NotEqual(t, first.ID, second.ID)

			got, err := store.Get(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, first, got)
		})
	}
}

func Test_Store_Update(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			created, err := store.Create(ctx, NewBlogPost{Title: "A", Body: "B"})
			require.NoError(t, err)

			updated, err := store.Update(ctx, created.ID, BlogPost{ID: 42, Title: "A2", Body: "B2", Published: boolPtr(true)})
			require.NoError(t, err)
			assert.Equal(t, BlogPost{ID: created.ID, Title: "A2", Body: "B2", Published: boolPtr(true)}, updated)

			got, err := store.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, got)

			_, err = store.Get(ctx, 42)
			assert.ErrorIs(t, err, errors.ErrPostNotFound)

			cleared, err := store.Update(ctx, created.ID, BlogPost{Title: "A3", Body: "B3"})
			require.NoError(t, err)
			assert.Nil(t, cleared.Published)
		})
	}
}

func Test_Store_NotFound(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Get(ctx, 404)
			assert.ErrorIs(t, err, errors.ErrPostNotFound)

			_, err = store.Update(ctx, 404, BlogPost{Title: "A", Body: "B"})
			assert.ErrorIs(t, err, errors.ErrPostNotFound)

			_, err = store.Delete(ctx, 404)
			assert.ErrorIs(t, err, errors.ErrPostNotFound)

			posts, err := store.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, posts)
		})
	}
}

func Test_Store_DeleteTwice(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			created, err := store.Create(ctx, NewBlogPost{Title: "A", Body: "B"})
			require.NoError(t, err)

			_, err = store.Update(ctx, created.ID, BlogPost{Title: "A", Body: "B", Published: boolPtr(false)})
			require.NoError(t, err)

			deleted, err := store.Delete(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, BlogPost{ID: created.ID, Title: "A", Body: "B", Published: boolPtr(false)}, deleted)

			_, err = store.Delete(ctx, created.ID)
			assert.ErrorIs(t, err, errors.ErrPostNotFound)

			_, err = store.Get(ctx, created.ID)
			assert.ErrorIs(t, err, errors.ErrPostNotFound)
		})
	}
}

func Test_Store_ListAfterCreatesAndDeletes(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			var created []BlogPost
			for _, title := range []string{"one", "two", "three", "four", "five"} {
				post, err := store.Create(ctx, NewBlogPost{Title: title, Body: title + " body"})
				require.NoError(t, err)

				created = append(created, post)
			}

			_, err := store.Delete(ctx, created[1].ID)
			require.NoError(t, err)

			_, err = store.Delete(ctx, created[3].ID)
			require.NoError(t, err)

			updated, err := store.Update(ctx, created[4].ID, BlogPost{Title: "five", Body: "rewritten", Published: boolPtr(true)})
			require.NoError(t, err)

			posts, err := store.List(ctx)
			require.NoError(t, err)
			assert.Equal(t, []BlogPost{created[0], created[2], updated}, posts)
		})
	}
}

func Test_Store_IDsAreNotReused(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			first, err := store.Create(ctx, NewBlogPost{Title: "A", Body: "B"})
			require.NoError(t, err)

			_, err = store.Delete(ctx, first.ID)
			require.NoError(t, err)

			second, err := store.Create(ctx, NewBlogPost{Title: "A", Body: "B"})
			require.NoError(t, err)
			assert.Greater(t, second.ID, first.ID)
		})
	}
}

func Test_Store_Random(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Random(ctx)
			assert.ErrorIs(t, err, errors.ErrNoPosts)
			assert.Equal(t, errors.KindNotFound, errors.KindOf(err))

			existing := make(map[int64]bool)
			for i := 0; i < 4; i++ {
				post, err := store.Create(ctx, NewBlogPost{Title: "T", Body: "B"})
				require.NoError(t, err)

				existing[post.ID] = true
			}

			deleted, err := store.Delete(ctx, 2)
			require.NoError(t, err)
			delete(existing, deleted.ID)

			for i := 0; i < 50; i++ {
				post, err := store.Random(ctx)
				require.NoError(t, err)
				assert.True(t, existing[post.ID], "random returned id %d which does not exist", post.ID)
			}
		})
	}
}

func Test_Store_RandomIndexesByModulo(t *testing.T) {
	tests := []struct {
		name     string
		random   int
		expected int64
	}{
		{name: "zero picks first id", random: 0, expected: 1},
		{name: "within range", random: 2, expected: 4},
		{name: "wraps around", random: 7, expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()

			sqlBacked := NewSQLStore(newTestDB(t, 1), newTestLogger()).(*sqlStore)
			sqlBacked.random = func() int { return tt.random }

			mem := NewMemoryStore().(*memoryStore)
			mem.random = func() int { return tt.random }

			for _, store := range []Store{sqlBacked, mem} {
				for i := 0; i < 4; i++ {
					_, err := store.Create(ctx, NewBlogPost{Title: "T", Body: "B"})
					require.NoError(t, err)
				}

				_, err := store.Delete(ctx, 2)
				require.NoError(t, err)

				post, err := store.Random(ctx)
				require.NoError(t, err)
				assert.Equal(t, tt.expected, post.ID)
			}
		})
	}
}

func Test_SQLStore_ReleasesConnectionOnEveryPath(t *testing.T) {
	store := NewSQLStore(newTestDB(t, 1), newTestLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := store.Get(ctx, 1)
	require.ErrorIs(t, err, errors.ErrPostNotFound)

	_, err = store.Delete(ctx, 1)
	require.ErrorIs(t, err, errors.ErrPostNotFound)

	_, err = store.Random(ctx)
	require.ErrorIs(t, err, errors.ErrNoPosts)

	created, err := store.Create(ctx, NewBlogPost{Title: "A", Body: "B"})
	require.NoError(t, err)

	posts, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []BlogPost{created}, posts)
}

func Test_SQLStore_StoreUnavailable(t *testing.T) {
	db := newTestDB(t, 1)
	store := NewSQLStore(db, newTestLogger())

	require.NoError(t, db.Close())

	ctx := context.Background()

	_, err := store.List(ctx)
	assert.ErrorIs(t, err, errors.ErrStoreUnavailable)

	_, err = store.Get(ctx, 1)
	assert.ErrorIs(t, err, errors.ErrStoreUnavailable)

	_, err = store.Create(ctx, NewBlogPost{Title: "A", Body: "B"})
	assert.ErrorIs(t, err, errors.ErrStoreUnavailable)
	assert.Equal(t, errors.KindStoreUnavailable, errors.KindOf(err))
}

func Test_MemoryStore_Fixtures(t *testing.T) {
	store := NewMemoryStore(Fixtures()...)

	posts, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, len(Fixtures()))

	for i, post := range posts {
		assert.Equal(t, int64(i+1), post.ID)
		assert.Equal(t, Fixtures()[i], post.NewBlogPost())
		assert.Nil(t, post.Published)
	}
}

func Test_MemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(NewBlogPost{Title: "A", Body: "B"})

	updated, err := store.Update(ctx, 1, BlogPost{Title: "A", Body: "B", Published: boolPtr(false)})
	require.NoError(t, err)

	*updated.Published = true

	got, err := store.Get(ctx, 1)
	require.NoError(t, err)
	assert.False(t, *got.Published)
}

func Test_NewStore(t *testing.T) {
	t.Run("memory driver serves fixtures", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Database.Driver = config.DriverMemory

		lc := fxtest.NewLifecycle(t)
		store, err := NewStore(lc, cfg, newTestLogger())
		require.NoError(t, err)

		posts, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, posts, len(Fixtures()))
	})

	t.Run("sqlite driver creates schema", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Database.DSN = filepath.Join(t.TempDir(), "nested", "blog.db")

		lc := fxtest.NewLifecycle(t)
		store, err := NewStore(lc, cfg, newTestLogger())
		require.NoError(t, err)

		lc.RequireStart()
		defer lc.RequireStop()

		posts, err := store.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("unreachable store fails startup", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Database.DSN = t.TempDir()

		lc := fxtest.NewLifecycle(t)
		store, err := NewStore(lc, cfg, newTestLogger())
		assert.Error(t, err)
		assert.Nil(t, store)
		assert.Equal(t, errors.KindStartupFailure, errors.KindOf(err))
	})
}
