// Package storetest holds behaviour checks shared by every storage backend.
package storetest

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"carnet/internal/domain/entry"
	"carnet/internal/domain/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Backend is what a storage implementation exposes to the checks.
type Backend interface {
	Users() user.Repository
	Entries() entry.Store
	Ping(ctx context.Context) error
}

// Run exercises b against a migrated, empty database.
func Run(t *testing.T, b Backend) {
	t.Helper()

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, b.Ping(context.Background()))
	})
	t.Run("users", func(t *testing.T) { testUsers(t, b.Users()) })
	t.Run("entries", func(t *testing.T) { testEntries(t, b.Users(), b.Entries()) })
	t.Run("list cap", func(t *testing.T) { testListCap(t, b.Users(), b.Entries()) })
	t.Run("unknown collection", func(t *testing.T) { testUnknownCollection(t, b.Entries()) })
}

func newUser(t *testing.T, users user.Repository, id string) user.User {
	t.Helper()
	u := user.User{
		ID:           id,
		Email:        id + "@example.com",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func testUsers(t *testing.T, users user.Repository) {
	ctx := context.Background()
	u := newUser(t, users, "user-a")

	byEmail, err := users.FindByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, u.PasswordHash, byEmail.PasswordHash)
	assert.True(t, u.CreatedAt.Equal(byEmail.CreatedAt.UTC()))

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)

	err = users.Create(ctx, user.User{ID: "user-dup", Email: u.Email, PasswordHash: "x", CreatedAt: time.Now()})
	assert.ErrorIs(t, err, user.ErrAlreadyExists)

	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = users.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func testEntries(t *testing.T, users user.Repository, store entry.Store) {
	ctx := context.Background()
	alice := newUser(t, users, "alice")
	bob := newUser(t, users, "bob")

	for i := 0; i < 3; i++ {
		err := store.InsertOne(ctx, "punitions", entry.Record{
			ID:     fmt.Sprintf("a%d", i),
			UserID: alice.ID,
			Data:   json.RawMessage(fmt.Sprintf(`{"date":"2024-01-0%d","nature":"n","raison":"r"}`, i+1)),
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.InsertOne(ctx, "punitions", entry.Record{
		ID: "b0", UserID: bob.ID, Data: json.RawMessage(`{"date":"2024-02-01","nature":"n","raison":"r"}`),
	}))

	recs, err := store.Find(ctx, "punitions", entry.Filter{UserID: alice.ID}, entry.MaxList)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for i, rec := range recs {
		assert.Equal(t, fmt.Sprintf("a%d", i), rec.ID, "insertion order")
		assert.Equal(t, alice.ID, rec.UserID)
	}
	assert.JSONEq(t, `{"date":"2024-01-01","nature":"n","raison":"r"}`, string(recs[0].Data))

	limited, err := store.Find(ctx, "punitions", entry.Filter{UserID: alice.ID}, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	one, err := store.Find(ctx, "punitions", entry.Filter{ID: "a1", UserID: alice.ID}, entry.MaxList)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, "a1", one[0].ID)

	empty, err := store.Find(ctx, "orgasmes", entry.Filter{UserID: alice.ID}, entry.MaxList)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	// bob cannot touch alice's entry
	matched, err := store.UpdateOne(ctx, "punitions", entry.Filter{ID: "a0", UserID: bob.ID}, json.RawMessage(`{"date":"x","nature":"x","raison":"x"}`))
	require.NoError(t, err)
	assert.False(t, matched)
	matched, err = store.DeleteOne(ctx, "punitions", entry.Filter{ID: "a0", UserID: bob.ID})
	require.NoError(t, err)
	assert.False(t, matched)

	matched, err = store.UpdateOne(ctx, "punitions", entry.Filter{ID: "a0", UserID: alice.ID}, json.RawMessage(`{"date":"2024-03-03","nature":"z","raison":"w"}`))
	require.NoError(t, err)
	assert.True(t, matched)

	one, err = store.Find(ctx, "punitions", entry.Filter{ID: "a0", UserID: alice.ID}, entry.MaxList)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.JSONEq(t, `{"date":"2024-03-03","nature":"z","raison":"w"}`, string(one[0].Data))

	matched, err = store.DeleteOne(ctx, "punitions", entry.Filter{ID: "a0", UserID: alice.ID})
	require.NoError(t, err)
	assert.True(t, matched)

	matched, err = store.DeleteOne(ctx, "punitions", entry.Filter{ID: "a0", UserID: alice.ID})
	require.NoError(t, err)
	assert.False(t, matched)

	recs, err = store.Find(ctx, "punitions", entry.Filter{UserID: bob.ID}, entry.MaxList)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "b0", recs[0].ID)
}

func testListCap(t *testing.T, users user.Repository, store entry.Store) {
	ctx := context.Background()
	owner := newUser(t, users, "user-cap")

	for i := 0; i < entry.MaxList+5; i++ {
		require.NoError(t, store.InsertOne(ctx, "carnet", entry.Record{
			ID:     fmt.Sprintf("c%04d", i),
			UserID: owner.ID,
			Data:   json.RawMessage(`{"date":"2024-01-01","content":"x"}`),
		}))
	}

	recs, err := store.Find(ctx, "carnet", entry.Filter{UserID: owner.ID}, entry.MaxList)
	require.NoError(t, err)
	require.Len(t, recs, entry.MaxList)
	assert.Equal(t, "c0000", recs[0].ID)
	assert.Equal(t, fmt.Sprintf("c%04d", entry.MaxList-1), recs[len(recs)-1].ID)
}

func testUnknownCollection(t *testing.T, store entry.Store) {
	ctx := context.Background()

	_, err := store.Find(ctx, "users", entry.Filter{UserID: "alice"}, entry.MaxList)
	assert.ErrorIs(t, err, entry.ErrUnknownCollection)

	err = store.InsertOne(ctx, "punitions; DROP TABLE users", entry.Record{ID: "x", UserID: "alice", Data: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, entry.ErrUnknownCollection)

	_, err = store.UpdateOne(ctx, "nope", entry.Filter{ID: "x", UserID: "alice"}, json.RawMessage(`{}`))
	assert.ErrorIs(t, err, entry.ErrUnknownCollection)

	_, err = store.DeleteOne(ctx, "nope", entry.Filter{ID: "x", UserID: "alice"})
	assert.ErrorIs(t, err, entry.ErrUnknownCollection)
}
