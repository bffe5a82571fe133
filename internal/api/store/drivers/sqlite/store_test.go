package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/internal/api/store"
	"github.com/taskden/taskden/pkg/idx"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func insertUser(t *testing.T, st *Store, username string) domain.User {
	t.Helper()

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), u))
	return u
}

func TestUsersRepo(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	alice := insertUser(t, st, "alice")

	t.Run("unique constraint maps to ErrAlreadyExists", func(t *testing.T) {
		dup := domain.User{
			ID:           idx.New().String(),
			Username:     "alice",
			Email:        "other@example.com",
			PasswordHash: "hash",
		}
		err := st.Users().CreateUser(ctx, dup)
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("lookup by either unique field", func(t *testing.T) {
		got, err := st.Users().GetUserByUsernameOrEmail(ctx, "alice", "")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		got, err = st.Users().GetUserByUsernameOrEmail(ctx, "", "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, alice.ID, got.ID)

		_, err = st.Users().GetUserByUsernameOrEmail(ctx, "", "")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("existence check is a disjunction", func(t *testing.T) {
		exists, err := st.Users().ExistsByUsernameOrEmail(ctx, "alice", "fresh@example.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = st.Users().ExistsByUsernameOrEmail(ctx, "fresh", "alice@example.com")
		require.NoError(t, err)
		require.True(t, exists)

		exists, err = st.Users().ExistsByUsernameOrEmail(ctx, "fresh", "fresh@example.com")
		require.NoError(t, err)
		require.False(t, exists)
	})

	t.Run("missing id is ErrNotFound", func(t *testing.T) {
		_, err := st.Users().GetUserByID(ctx, idx.New().String())
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestTodosRepoSubtasksRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := insertUser(t, st, "alice")

	todo := domain.Todo{
		ID:          idx.New().String(),
		UserID:      alice.ID,
		Title:       "t",
		Description: "d",
		Status:      domain.StatusPending,
		Subtasks:    []domain.Subtask{{Text: "one"}, {Text: "two", Done: true}},
	}
	require.NoError(t, st.Todos().CreateTodo(ctx, todo))

	got, err := st.Todos().GetTodoByIDForOwner(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, got.Subtasks, 2)
	require.Equal(t, "one", got.Subtasks[0].Text)
	require.True(t, got.Subtasks[1].Done)
}

func TestTodosRepoOwnershipFilter(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := insertUser(t, st, "alice")
	bob := insertUser(t, st, "bob")

	todo := domain.Todo{
		ID:          idx.New().String(),
		UserID:      alice.ID,
		Title:       "t",
		Description: "d",
		Status:      domain.StatusPending,
	}
	require.NoError(t, st.Todos().CreateTodo(ctx, todo))

	t.Run("foreign reads miss", func(t *testing.T) {
		_, err := st.Todos().GetTodoByIDForOwner(ctx, todo.ID, bob.ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("foreign updates miss and leave the row alone", func(t *testing.T) {
		title := "hijacked"
		_, err := st.Todos().UpdateTodoForOwner(ctx, todo.ID, bob.ID, domain.TodoPatch{Title: &title})
		require.ErrorIs(t, err, store.ErrNotFound)

		got, err := st.Todos().GetTodoByIDForOwner(ctx, todo.ID, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "t", got.Title)
	})

	t.Run("foreign deletes miss", func(t *testing.T) {
		require.ErrorIs(t, st.Todos().DeleteTodoForOwner(ctx, todo.ID, bob.ID), store.ErrNotFound)
	})
}

func TestTodosRepoPatchSemantics(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	alice := insertUser(t, st, "alice")

	todo := domain.Todo{
		ID:          idx.New().String(),
		UserID:      alice.ID,
		Title:       "original",
		Description: "desc",
		Status:      domain.StatusPending,
		Subtasks:    []domain.Subtask{{Text: "a"}},
	}
	require.NoError(t, st.Todos().CreateTodo(ctx, todo))

	t.Run("nil fields untouched", func(t *testing.T) {
		status := domain.StatusCompleted
		got, err := st.Todos().UpdateTodoForOwner(ctx, todo.ID, alice.ID, domain.TodoPatch{Status: &status})
		require.NoError(t, err)
		require.Equal(t, domain.StatusCompleted, got.Status)
		require.Equal(t, "original", got.Title)
		require.Len(t, got.Subtasks, 1)
	})

	t.Run("subtasks replaced wholesale", func(t *testing.T) {
		subtasks := []domain.Subtask{{Text: "x"}, {Text: "y"}}
		got, err := st.Todos().UpdateTodoForOwner(ctx, todo.ID, alice.ID, domain.TodoPatch{Subtasks: &subtasks})
		require.NoError(t, err)
		require.Len(t, got.Subtasks, 2)
	})

	t.Run("empty patch returns the current row", func(t *testing.T) {
		got, err := st.Todos().UpdateTodoForOwner(ctx, todo.ID, alice.ID, domain.TodoPatch{})
		require.NoError(t, err)
		require.Equal(t, "original", got.Title)
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)

	t.Run("commits on success", func(t *testing.T) {
		id := idx.New().String()
		err := st.WithTx(ctx, func(tx store.Tx) error {
			return tx.Users().CreateUser(ctx, domain.User{
				ID:           id,
				Username:     "committed",
				Email:        "committed@example.com",
				PasswordHash: "hash",
			})
		})
		require.NoError(t, err)

		_, err = st.Users().GetUserByID(ctx, id)
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		id := idx.New().String()
		boom := errors.New("boom")

		err := st.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, domain.User{
				ID:           id,
				Username:     "rolledback",
				Email:        "rolledback@example.com",
				PasswordHash: "hash",
			}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = st.Users().GetUserByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
