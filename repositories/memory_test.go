package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tharoon321/event-attendance/models"
)

func TestInMemoryUserStore_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryUserStore()

	_, err := store.FindByEmail(ctx, "a@example.com")
	require.ErrorIs(t, err, ErrNotFound)

	user := &models.User{Email: "a@example.com", UserName: "Ada"}
	require.NoError(t, store.Create(ctx, user))
	assert.False(t, user.ID.IsZero())
	assert.Equal(t, []string{}, user.Events)

	got, err := store.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.UserName)

	err = store.Create(ctx, &models.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	users, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestInMemoryUserStore_AddEventIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryUserStore()
	require.NoError(t, store.Create(ctx, &models.User{Email: "a@example.com"}))

	_, err := store.AddEvent(ctx, "missing@example.com", "ev-1")
	require.ErrorIs(t, err, ErrNotFound)

	for i := 0; i < 2; i++ {
		user, err := store.AddEvent(ctx, "a@example.com", "ev-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"ev-1"}, user.Events)
	}

	user, err := store.AddEvent(ctx, "a@example.com", "ev-2")
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-1", "ev-2"}, user.Events)
}

func TestInMemoryUserStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryUserStore()
	require.NoError(t, store.Create(ctx, &models.User{Email: "a@example.com"}))

	got, err := store.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	got.Events = append(got.Events, "leak")

	again, err := store.FindByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Empty(t, again.Events)
}

func TestInMemoryEventStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryEventStore()

	events, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, events)

	require.NoError(t, store.Create(ctx, &models.Event{UID: "u1", Title: "First"}))
	require.NoError(t, store.Create(ctx, &models.Event{UID: "u2", Title: "Second"}))
	assert.ErrorIs(t, store.Create(ctx, &models.Event{UID: "u1"}), ErrDuplicate)

	events, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "First", events[0].Title)
	assert.Equal(t, "Second", events[1].Title)
}

func TestInMemoryAttendanceEventStore_SingleActive(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryAttendanceEventStore()

	require.NoError(t, store.Activate(ctx, &models.AttendanceEvent{Title: "A", WifiSSID: "x"}))
	require.NoError(t, store.Activate(ctx, &models.AttendanceEvent{Title: "B", WifiSSID: "y"}))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.False(t, all[0].IsActive)
	assert.True(t, all[1].IsActive)

	require.NoError(t, store.DeactivateAll(ctx))
	all, err = store.List(ctx)
	require.NoError(t, err)
	for _, ev := range all {
		assert.False(t, ev.IsActive)
	}
}
