package inmem

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/persistence"
)

func TestInmemRunStore(t *testing.T) {
	var wg sync.WaitGroup
	store := NewInmemRunStore(30*time.Minute, &wg)

	record := model.NewSubmissionRecord("run-1", "login")
	require.NoError(t, store.Save(record))

	loaded, err := store.Get("run-1")
	require.NoError(t, err)
	require.Equal(t, "login", loaded.Workflow)

	// the loaded record is a copy; mutating it does not touch the store
	loaded.Step = 5
	again, err := store.Get("run-1")
	require.NoError(t, err)
	require.Equal(t, 0, again.Step)

	require.NoError(t, store.Delete("run-1"))
	_, err = store.Get("run-1")
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)
}

func TestInmemRunStoreDoesNotAliasCallerMaps(t *testing.T) {
	var wg sync.WaitGroup
	store := NewInmemRunStore(30*time.Minute, &wg)

	record := model.NewSubmissionRecord("run-1", "login")
	record.Values["email"] = "a@b.com"
	require.NoError(t, store.Save(record))

	// mutating the caller's maps after save does not leak into the store
	record.Values["email"] = "changed@b.com"
	record.Errors["email"] = "oops"
	loaded, err := store.Get("run-1")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", loaded.Values["email"])
	require.Empty(t, loaded.Errors)

	// nor do mutations through a loaded copy leak back
	loaded.Values["email"] = "other@b.com"
	again, err := store.Get("run-1")
	require.NoError(t, err)
	require.Equal(t, "a@b.com", again.Values["email"])

	require.NoError(t, store.Delete("run-1"))
	_, err = store.Get("run-1")
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)
}

func TestInmemRunStoreExpiry(t *testing.T) {
	var wg sync.WaitGroup
	store := NewInmemRunStore(10*time.Millisecond, &wg)

	record := model.NewSubmissionRecord("run-1", "login")
	require.NoError(t, store.Save(record))

	time.Sleep(20 * time.Millisecond)
	_, err := store.Get("run-1")
	_, ok := err.(persistence.NotFoundError)
	require.True(t, ok)

	// sweep removes the expired entry entirely
	store.sweep()
	store.mu.RLock()
	defer store.mu.RUnlock()
	require.Empty(t, store.runs)
}
