package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/taskden/taskden/internal/api/domain"
	"github.com/taskden/taskden/internal/api/store"
)

type todosRepo struct {
	db dbtx
}

const todoColumns = `id, user_id, title, description, status, subtasks, created_at, updated_at`

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) error {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = now
	}
	if t.Status == "" {
		t.Status = domain.StatusPending
	}

	subtasks, err := marshalSubtasks(t.Subtasks)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO todos (id, user_id, title, description, status, subtasks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Title, t.Description, string(t.Status), subtasks, t.CreatedAt, t.UpdatedAt,
	)
	return mapConflict(err)
}

func (r *todosRepo) GetTodoByIDForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+todoColumns+` FROM todos WHERE id = ? AND user_id = ?`, id, ownerID)
	return scanTodo(row)
}

func (r *todosRepo) ListTodosByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+todoColumns+` FROM todos WHERE user_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var todos []domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// UpdateTodoForOwner is a combined filter-and-mutate: the WHERE clause pins
// both id and owner so another user's record can never be touched, and zero
// affected rows surfaces as ErrNotFound.
func (r *todosRepo) UpdateTodoForOwner(ctx context.Context, id, ownerID string, patch domain.TodoPatch) (domain.Todo, error) {
	set := []string{"updated_at = ?"}
	args := []any{time.Now().UTC()}

	if patch.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Status != nil {
		set = append(set, "status = ?")
		args = append(args, string(*patch.Status))
	}
	if patch.Subtasks != nil {
		subtasks, err := marshalSubtasks(*patch.Subtasks)
		if err != nil {
			return domain.Todo{}, err
		}
		set = append(set, "subtasks = ?")
		args = append(args, subtasks)
	}

	args = append(args, id, ownerID)
	res, err := r.db.ExecContext(ctx, `
		UPDATE todos SET `+strings.Join(set, ", ")+` WHERE id = ? AND user_id = ?`, args...)
	if err != nil {
		return domain.Todo{}, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Todo{}, err
	}
	if affected == 0 {
		return domain.Todo{}, store.ErrNotFound
	}

	return r.GetTodoByIDForOwner(ctx, id, ownerID)
}

func (r *todosRepo) DeleteTodoForOwner(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM todos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func scanTodo(row rowScanner) (domain.Todo, error) {
	var (
		t        domain.Todo
		status   string
		subtasks string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &status, &subtasks, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}

	t.Status = domain.Status(status)
	t.Subtasks, err = unmarshalSubtasks(subtasks)
	if err != nil {
		return domain.Todo{}, err
	}
	return t, nil
}
