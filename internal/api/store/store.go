package store

import (
	"context"
	"errors"

	"github.com/taskden/taskden/internal/api/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Todos() Todos

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the username or email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsernameOrEmail looks a user up by either unique field.
	// Used during login where the client may supply one or the other.
	GetUserByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error)

	// ExistsByUsernameOrEmail reports whether any user holds either value.
	// Disjunction: a collision on just one field is enough.
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type Todos interface {
	// CreateTodo inserts a new todo. The owner comes from the record, which
	// services populate from the authenticated caller, never from the client.
	CreateTodo(ctx context.Context, t domain.Todo) error

	// GetTodoByIDForOwner fetches a todo only if it belongs to ownerID.
	// Another user's todo is ErrNotFound, indistinguishable from absence.
	GetTodoByIDForOwner(ctx context.Context, id, ownerID string) (domain.Todo, error)

	// ListTodosByOwner returns every todo owned by ownerID. The result
	// order is an implementation detail; callers must treat it as unordered.
	ListTodosByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)

	// UpdateTodoForOwner applies a partial patch filtered by {id, owner}.
	// Returns ErrNotFound when no such row exists, never touching rows the
	// owner does not hold.
	UpdateTodoForOwner(ctx context.Context, id, ownerID string, patch domain.TodoPatch) (domain.Todo, error)

	// DeleteTodoForOwner removes the todo matching {id, owner}. Zero rows
	// deleted is ErrNotFound, not a failure of the store.
	DeleteTodoForOwner(ctx context.Context, id, ownerID string) error
}
