package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/internal/api/store"
	"github.com/taskden/taskden/pkg/idx"
	"github.com/taskden/taskden/pkg/slogx"
)

var (
	ErrMissingFields = errors.New("missing_fields")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrTodoNotFound  = errors.New("todo_not_found")
)

// TodoService implements ownership-scoped CRUD. Every operation takes the
// authenticated caller's id and only ever reads or writes rows that caller
// owns; another user's todo is indistinguishable from a missing one.
type TodoService struct {
	Store store.Store
}

type CreateTodoInput struct {
	Title       string
	Description string
	Status      domain.Status
	Subtasks    []domain.Subtask
}

// Create persists a new todo owned by ownerID. The owner always comes from
// the authenticated session, never from the request body.
func (s *TodoService) Create(ctx context.Context, ownerID string, in CreateTodoInput) (domain.Todo, error) {
	log := slogx.FromContext(ctx)

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" || in.Description == "" {
		return domain.Todo{}, ErrMissingFields
	}

	if in.Status == "" {
		in.Status = domain.StatusPending
	}
	if !domain.ValidStatus(in.Status) {
		return domain.Todo{}, ErrInvalidStatus
	}

	todo := domain.Todo{
		ID:          idx.New().String(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Subtasks:    in.Subtasks,
	}

	if err := s.Store.Todos().CreateTodo(ctx, todo); err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}

	created, err := s.Store.Todos().GetTodoByIDForOwner(ctx, todo.ID, ownerID)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("load created todo: %w", err)
	}

	log.Info("todo created", slog.String("todo_id", todo.ID), slog.String("user_id", ownerID))
	return created, nil
}

// List returns every todo the caller owns. The contract is unordered; the
// store may return any stable order it likes.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	todos, err := s.Store.Todos().ListTodosByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Update applies a partial patch to a todo the caller owns. The store query
// filters by {id, owner} in one statement so a blind update-by-id can never
// touch another user's record.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, patch domain.TodoPatch) (domain.Todo, error) {
	if patch.Status != nil && !domain.ValidStatus(*patch.Status) {
		return domain.Todo{}, ErrInvalidStatus
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return domain.Todo{}, ErrMissingFields
	}
	if patch.Description != nil && strings.TrimSpace(*patch.Description) == "" {
		return domain.Todo{}, ErrMissingFields
	}

	// A no-op patch reads instead of writes, so updated_at is not bumped.
	if patch.Empty() {
		todo, err := s.Store.Todos().GetTodoByIDForOwner(ctx, id, ownerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return domain.Todo{}, ErrTodoNotFound
			}
			return domain.Todo{}, fmt.Errorf("load todo: %w", err)
		}
		return todo, nil
	}

	updated, err := s.Store.Todos().UpdateTodoForOwner(ctx, id, ownerID, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Todo{}, ErrTodoNotFound
		}
		return domain.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	return updated, nil
}

// Delete removes a todo the caller owns. Deleting an already-deleted or
// foreign todo yields ErrTodoNotFound, never a crash, so a repeated delete
// degrades to success-then-not-found.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Todos().DeleteTodoForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}

	log.Info("todo deleted", slog.String("todo_id", id), slog.String("user_id", ownerID))
	return nil
}
