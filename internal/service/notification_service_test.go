package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recetario/backend/internal/model"
)

func TestNotifyRendersMessages(t *testing.T) {
	ctx := context.Background()
	store := newFakeNotificationStore()
	svc := NewNotificationService(store)

	emitter := model.User{ID: 2, Username: "bruno"}
	recipe := model.Recipe{ID: 10, AuthorID: 1, Title: "Paella"}

	tests := []struct {
		name       string
		ev         Event
		wantMsg    string
		wantRecipe bool
	}{
		{
			name:    "new follower",
			ev:      Event{Type: model.NotificationNewFollower, RecipientID: 1, Emitter: emitter},
			wantMsg: "El usuario bruno ha comenzado a seguirte.",
		},
		{
			name:       "new like",
			ev:         Event{Type: model.NotificationNewLike, RecipientID: 1, Emitter: emitter, Recipe: &recipe},
			wantMsg:    "A bruno le ha gustado tu receta 'Paella'.",
			wantRecipe: true,
		},
		{
			name:       "new comment",
			ev:         Event{Type: model.NotificationNewComment, RecipientID: 1, Emitter: emitter, Recipe: &recipe},
			wantMsg:    "bruno ha comentado en tu receta 'Paella'.",
			wantRecipe: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(store.rows)
			svc.Notify(ctx, tt.ev)
			require.Len(t, store.rows, before+1)

			n := store.rows[uint64(before+1)]
			assert.Equal(t, tt.ev.Type, n.Type)
			assert.Equal(t, uint64(1), n.RecipientID)
			assert.Equal(t, tt.wantMsg, n.Message)
			assert.False(t, n.Read)
			require.NotNil(t, n.EmitterID)
			assert.Equal(t, emitter.ID, *n.EmitterID)
			if tt.wantRecipe {
				require.NotNil(t, n.RecipeID)
				assert.Equal(t, recipe.ID, *n.RecipeID)
			} else {
				assert.Nil(t, n.RecipeID)
			}
		})
	}

	t.Run("unknown type stores nothing", func(t *testing.T) {
		before := len(store.rows)
		svc.Notify(ctx, Event{Type: "SOMETHING_ELSE", RecipientID: 1, Emitter: emitter})
		assert.Len(t, store.rows, before)
	})
}

func TestNotificationRecipientAccess(t *testing.T) {
	ctx := context.Background()
	store := newFakeNotificationStore()
	svc := NewNotificationService(store)

	svc.Notify(ctx, Event{
		Type:        model.NotificationNewFollower,
		RecipientID: 1,
		Emitter:     model.User{ID: 2, Username: "bruno"},
	})
	require.Len(t, store.rows, 1)
	id := uint64(1)

	t.Run("list is scoped to the recipient", func(t *testing.T) {
		mine, err := svc.List(ctx, 1, 20, 0)
		require.NoError(t, err)
		assert.Len(t, mine, 1)

		theirs, err := svc.List(ctx, 2, 20, 0)
		require.NoError(t, err)
		assert.Empty(t, theirs)
	})

	t.Run("foreign mark-read looks like not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.MarkRead(ctx, 2, id), ErrNotFound)
		assert.False(t, store.rows[id].Read)
	})

	t.Run("recipient marks read", func(t *testing.T) {
		require.NoError(t, svc.MarkRead(ctx, 1, id))
		assert.True(t, store.rows[id].Read)
	})

	t.Run("foreign delete looks like not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(ctx, 2, id), ErrNotFound)
		assert.Len(t, store.rows, 1)
	})

	t.Run("recipient deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, 1, id))
		assert.Empty(t, store.rows)
	})

	t.Run("missing notification", func(t *testing.T) {
		assert.ErrorIs(t, svc.MarkRead(ctx, 1, 999), ErrNotFound)
		assert.ErrorIs(t, svc.Delete(ctx, 1, 999), ErrNotFound)
	})
}
