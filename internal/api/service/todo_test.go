package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/internal/api/store"
	"github.com/taskden/taskden/pkg/idx"
)

func seedUser(t *testing.T, st store.Store, username string) domain.User {
	t.Helper()

	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, st.Users().CreateUser(context.Background(), user))
	return user
}

func TestCreateTodo(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	svc := &TodoService{Store: st}
	owner := seedUser(t, st, "alice")

	t.Run("defaults to pending with empty subtasks", func(t *testing.T) {
		todo, err := svc.Create(ctx, owner.ID, CreateTodoInput{
			Title:       "Buy groceries",
			Description: "Milk, eggs, bread",
		})
		require.NoError(t, err)
		require.NotEmpty(t, todo.ID)
		require.Equal(t, owner.ID, todo.UserID)
		require.Equal(t, domain.StatusPending, todo.Status)
		require.Empty(t, todo.Subtasks)
		require.False(t, todo.CreatedAt.IsZero())
	})

	t.Run("keeps provided subtasks", func(t *testing.T) {
		todo, err := svc.Create(ctx, owner.ID, CreateTodoInput{
			Title:       "Plan trip",
			Description: "Weekend away",
			Subtasks:    []domain.Subtask{{Text: "Book hotel"}, {Text: "Pack bags"}},
		})
		require.NoError(t, err)
		require.Len(t, todo.Subtasks, 2)
		require.Equal(t, "Book hotel", todo.Subtasks[0].Text)
		require.False(t, todo.Subtasks[0].Done)
	})

	t.Run("requires title and description", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, CreateTodoInput{Title: "only title"})
		require.ErrorIs(t, err, ErrMissingFields)

		_, err = svc.Create(ctx, owner.ID, CreateTodoInput{Description: "only description"})
		require.ErrorIs(t, err, ErrMissingFields)

		_, err = svc.Create(ctx, owner.ID, CreateTodoInput{Title: "   ", Description: "x"})
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := svc.Create(ctx, owner.ID, CreateTodoInput{
			Title:       "t",
			Description: "d",
			Status:      domain.Status("archived"),
		})
		require.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestListTodosScopedToOwner(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	svc := &TodoService{Store: st}
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	_, err := svc.Create(ctx, alice.ID, CreateTodoInput{Title: "a1", Description: "d"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, alice.ID, CreateTodoInput{Title: "a2", Description: "d"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, CreateTodoInput{Title: "b1", Description: "d"})
	require.NoError(t, err)

	aliceTodos, err := svc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceTodos, 2)
	for _, todo := range aliceTodos {
		require.Equal(t, alice.ID, todo.UserID)
	}

	bobTodos, err := svc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobTodos, 1)
	require.Equal(t, "b1", bobTodos[0].Title)

	empty, err := svc.List(ctx, idx.New().String())
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestUpdateTodo(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	svc := &TodoService{Store: st}
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	todo, err := svc.Create(ctx, alice.ID, CreateTodoInput{Title: "original", Description: "desc"})
	require.NoError(t, err)

	t.Run("patches only provided fields", func(t *testing.T) {
		status := domain.StatusCompleted
		updated, err := svc.Update(ctx, alice.ID, todo.ID, domain.TodoPatch{Status: &status})
		require.NoError(t, err)
		require.Equal(t, domain.StatusCompleted, updated.Status)
		require.Equal(t, "original", updated.Title)
		require.Equal(t, "desc", updated.Description)
	})

	t.Run("status change is visible in a subsequent list", func(t *testing.T) {
		todos, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		require.Equal(t, domain.StatusCompleted, todos[0].Status)
	})

	t.Run("another user's todo reads as missing", func(t *testing.T) {
		title := "hijacked"
		_, err := svc.Update(ctx, bob.ID, todo.ID, domain.TodoPatch{Title: &title})
		require.ErrorIs(t, err, ErrTodoNotFound)

		// The record is untouched.
		todos, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Equal(t, "original", todos[0].Title)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		bad := domain.Status("paused")
		_, err := svc.Update(ctx, alice.ID, todo.ID, domain.TodoPatch{Status: &bad})
		require.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("rejects blanking required fields", func(t *testing.T) {
		blank := "  "
		_, err := svc.Update(ctx, alice.ID, todo.ID, domain.TodoPatch{Title: &blank})
		require.ErrorIs(t, err, ErrMissingFields)

		_, err = svc.Update(ctx, alice.ID, todo.ID, domain.TodoPatch{Description: &blank})
		require.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("unknown id", func(t *testing.T) {
		title := "x"
		_, err := svc.Update(ctx, alice.ID, idx.New().String(), domain.TodoPatch{Title: &title})
		require.ErrorIs(t, err, ErrTodoNotFound)
	})

	t.Run("empty patch returns the record without writing", func(t *testing.T) {
		before, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)

		got, err := svc.Update(ctx, alice.ID, todo.ID, domain.TodoPatch{})
		require.NoError(t, err)
		require.Equal(t, "original", got.Title)
		require.Equal(t, before[0].UpdatedAt, got.UpdatedAt)

		// Ownership still applies to the read path.
		_, err = svc.Update(ctx, bob.ID, todo.ID, domain.TodoPatch{})
		require.ErrorIs(t, err, ErrTodoNotFound)
	})
}

func TestDeleteTodo(t *testing.T) {
	ctx := context.Background()

	st := newTestStore(t)
	svc := &TodoService{Store: st}
	alice := seedUser(t, st, "alice")
	bob := seedUser(t, st, "bob")

	todo, err := svc.Create(ctx, alice.ID, CreateTodoInput{Title: "t", Description: "d"})
	require.NoError(t, err)

	t.Run("another user's delete reads as missing", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, bob.ID, todo.ID), ErrTodoNotFound)

		todos, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, todos, 1)
	})

	t.Run("owner delete removes the record", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, alice.ID, todo.ID))

		todos, err := svc.List(ctx, alice.ID)
		require.NoError(t, err)
		require.Empty(t, todos)
	})

	t.Run("repeat delete degrades to not found", func(t *testing.T) {
		require.ErrorIs(t, svc.Delete(ctx, alice.ID, todo.ID), ErrTodoNotFound)
	})
}
